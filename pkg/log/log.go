// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/walteh/proserc/pkg/chapter"
	"github.com/walteh/proserc/pkg/status"
	"github.com/walteh/proserc/pkg/text"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent entries
	nameWidth   = 35 // Base width for filename
	kindWidth   = 10 // Width for output kind
	statusWidth = 10 // Width for status text
	countWidth  = 6  // Width for counts
)

// 🎯 FileOperation represents one written or printed output
type FileOperation struct {
	Path         string            // Output path, "stdout" for printed results
	Kind         string            // "replace", "part 3", ...
	Status       status.FileStatus // Outcome of the write
	Replacements int               // Substitutions made, for replace outputs
	Words        int               // Word count, for split outputs
}

// 📦 InputOperation represents processing of one input
type InputOperation struct {
	Name  string // Input path, "-" for stdin
	Mode  string // Active mode name
	Rules int    // Number of rules in the mode
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// inputReport holds the console lines of one input until EndInput
type inputReport struct {
	op      InputOperation
	buf     bytes.Buffer
	outputs int
	ended   bool
}

type reportKey struct{}

// writer returns where console lines for ctx go: the input's report when
// one was started, the console otherwise. Callers hold l.mu.
func (l *Logger) writer(ctx context.Context) (io.Writer, *inputReport) {
	if r, ok := ctx.Value(reportKey{}).(*inputReport); ok && !r.ended {
		return &r.buf, r
	}
	return l.console, nil
}

// 🏭 New creates a new logger. Every console line is mirrored to zlog.
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, or one that discards
// everything when none was installed
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return New(io.Discard, zerolog.Nop())
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch op.Status {
	case status.StatusFailed:
		symbol = '!'
		symbolColor = color.FgRed
	case status.StatusDeleted:
		symbol = '✗'
		symbolColor = color.FgRed
	case status.StatusNew:
		symbol = '✓'
		symbolColor = color.FgGreen
	case status.StatusModified:
		symbol = '⟳'
		symbolColor = color.FgBlue
	default:
		symbol = '-'
		symbolColor = color.FgYellow
	}

	detail := fmt.Sprintf("%d words", op.Words)
	if op.Kind == "replace" {
		detail = fmt.Sprintf("%d changes", op.Replacements)
	}

	return fmt.Sprintf("%s%s %s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(color.FgCyan).Sprint(fmt.Sprintf("%-*s", kindWidth, op.Kind)),
		fmt.Sprintf("%-*s", statusWidth, op.Status),
		detail)
}

// 📝 LogFileOperation logs a file operation
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, report := l.writer(ctx)
	if report != nil {
		report.outputs++
	}

	fmt.Fprintln(w, l.formatFileOperation(op))

	l.zlog.Info().
		Str("file", op.Path).
		Str("kind", op.Kind).
		Str("status", op.Status.String()).
		Int("replacements", op.Replacements).
		Int("words", op.Words).
		Msg("file operation")
}

// 📝 StartInput starts reporting on a new input. Lines logged with the
// returned context are held back and printed together by EndInput, so
// inputs processed concurrently never interleave.
func (l *Logger) StartInput(ctx context.Context, op InputOperation) context.Context {
	report := &inputReport{op: op}

	fmt.Fprintf(&report.buf, "[processing %s]\n",
		color.New(color.FgCyan).Sprint(op.Name))

	if op.Mode != "" {
		fmt.Fprintf(&report.buf, "%s %s %s %s\n",
			color.New(color.FgMagenta).Sprint("◆"),
			color.New(color.Bold).Sprint(op.Mode),
			color.New(color.Faint).Sprint("•"),
			color.New(color.FgYellow).Sprintf("%d rules", op.Rules))
	}

	l.zlog.Info().
		Str("input", op.Name).
		Str("mode", op.Mode).
		Int("rules", op.Rules).
		Msg("starting input")

	return context.WithValue(ctx, reportKey{}, report)
}

// 📝 EndInput prints the report of the input started on ctx
func (l *Logger) EndInput(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, report := l.writer(ctx)
	if report == nil {
		return
	}
	report.ended = true

	if _, err := l.console.Write(report.buf.Bytes()); err != nil {
		l.zlog.Debug().Err(err).Msg("writing input report")
	}

	l.zlog.Info().
		Str("input", report.op.Name).
		Int("outputs", report.outputs).
		Msg("input complete")
}

// 🔢 LogRuleStats prints one row per rule with its substitution count, then
// one row per skipped rule
func (l *Logger) LogRuleStats(ctx context.Context, result *text.Result) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, _ := l.writer(ctx)

	for _, stat := range result.Rules {
		countColor := color.FgGreen
		if stat.Count == 0 {
			countColor = color.Faint
		}
		fmt.Fprintf(w, "%*s%s %s %s %s\n",
			fileIndent, "",
			color.New(countColor).Sprintf("%*d×", countWidth, stat.Count),
			strconv.Quote(stat.Find),
			color.New(color.Faint).Sprint("→"),
			strconv.Quote(stat.Replace))

		l.zlog.Debug().
			Int("rule", stat.Index).
			Str("find", stat.Find).
			Str("replace", stat.Replace).
			Int("count", stat.Count).
			Msg("rule applied")
	}

	for _, d := range result.Diagnostics {
		fmt.Fprintf(w, "%*s%s %s\n",
			fileIndent, "",
			color.New(color.FgRed).Sprintf("%*s", countWidth+1, "✗"),
			d.String())

		l.zlog.Warn().Int("rule", d.Index).Str("find", d.Find).Err(d.Err).Msg("rule skipped")
	}
}

// 📚 LogParts prints one row per split part with its word count and header
func (l *Logger) LogParts(ctx context.Context, result *chapter.Result) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, _ := l.writer(ctx)

	for _, part := range result.Parts {
		wordColor := color.FgGreen
		if part.Empty() {
			wordColor = color.Faint
		} else if part.WordCount > result.TargetWords+text.CountWords(part.Header) {
			wordColor = color.FgYellow
		}
		fmt.Fprintf(w, "%*spart %-3d %s %s\n",
			fileIndent, "",
			part.Index,
			color.New(wordColor).Sprintf("%*d words", countWidth, part.WordCount),
			part.Header)

		l.zlog.Debug().
			Int("part", part.Index).
			Int("words", part.WordCount).
			Str("header", part.Header).
			Msg("part")
	}

	l.zlog.Info().
		Int("parts", len(result.Parts)).
		Int("total_words", result.TotalWords).
		Int("target_words", result.TargetWords).
		Msg("split complete")
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("proserc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
