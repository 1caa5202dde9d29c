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

package text

import (
	"context"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/unicode/norm"
)

var _ TextReplacer = (*Engine)(nil)

// Engine implements TextReplacer. It holds no state, so one value can be
// shared between goroutines.
type Engine struct{}

// NewEngine creates a new Engine
func NewEngine() *Engine {
	return &Engine{}
}

// Apply runs rules over text with a fresh Engine.
func Apply(text string, rules []Rule, opts Options) (*Result, error) {
	return NewEngine().Apply(text, rules, opts)
}

// 🎯 Apply rewrites text with the ordered rules.
//
// Rules compose left to right: each one sees the output of the previous one.
// A rule that cannot be compiled is skipped and recorded in Result.Diagnostics.
// Paragraph spacing is normalised once after the last rule. Empty text yields
// an empty Result together with ErrNothingToProcess.
func (e *Engine) Apply(text string, rules []Rule, opts Options) (*Result, error) {
	result := &Result{Original: text}
	if text == "" {
		return result, errors.WithStack(ErrNothingToProcess)
	}

	current := text
	if opts.Normalize {
		current = norm.NFC.String(current)
	}

	for i, rule := range rules {
		if !rule.Eligible() {
			continue
		}

		find, replace := rule.Find, rule.Replace
		if opts.Normalize {
			find, replace = norm.NFC.String(find), norm.NFC.String(replace)
		}

		re, err := compileRule(find, opts)
		if err != nil {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{Index: i, Find: rule.Find, Err: err})
			continue
		}

		next, count := applyRule(current, re, replace, opts)
		result.Rules = append(result.Rules, RuleStat{
			Index:   i,
			Find:    rule.Find,
			Replace: rule.Replace,
			Count:   count,
		})
		result.ReplacementCount += count
		current = next
	}

	result.Text = NormalizeParagraphs(current)
	result.WasModified = result.Text != text
	return result, nil
}

// ReplaceText implements TextReplacer.ReplaceText
func (e *Engine) ReplaceText(ctx context.Context, content io.Reader, rules []Rule, opts Options) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	raw, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result, err := e.Apply(string(raw), rules, opts)
	if err != nil {
		return result, err
	}

	for _, d := range result.Diagnostics {
		logger.Warn().Int("rule", d.Index).Str("find", d.Find).Err(d.Err).Msg("skipping rule")
	}
	logger.Debug().
		Int("rules", len(result.Rules)).
		Int("replacements", result.ReplacementCount).
		Bool("modified", result.WasModified).
		Msg("rules applied")

	return result, nil
}

// ValidateRules implements TextReplacer.ValidateRules. Every unusable rule is
// reported, not only the first one.
func (e *Engine) ValidateRules(rules []Rule) error {
	var errs []error
	for i, rule := range rules {
		if !rule.Eligible() {
			errs = append(errs, errors.Errorf("rule %d: find is required", i))
			continue
		}
		if _, err := compileRule(rule.Find, Options{}); err != nil {
			errs = append(errs, errors.Errorf("rule %d: %w", i, err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

// compileRule builds a literal matcher for find. Metacharacters are escaped,
// so user input is never interpreted as a regular expression.
func compileRule(find string, opts Options) (*regexp.Regexp, error) {
	pattern := regexp.QuoteMeta(find)
	if !opts.CaseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Errorf("compiling pattern: %w", err)
	}
	return re, nil
}

// applyRule replaces every accepted, non-overlapping match of re in s.
// A match rejected by the whole-word check does not consume its text: the
// scan resumes one character after the rejected start.
func applyRule(s string, re *regexp.Regexp, replace string, opts Options) (string, int) {
	var b strings.Builder
	count, last, pos := 0, 0, 0

	for pos < len(s) {
		loc := re.FindStringIndex(s[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]

		if end == start || (opts.WholeWord && !atWordBoundary(s, start, end)) {
			_, size := utf8.DecodeRuneInString(s[start:])
			pos = start + max(size, 1)
			continue
		}

		b.WriteString(s[last:start])
		b.WriteString(render(s[:start], s[start:end], replace, opts))
		count++
		last, pos = end, end
	}

	if count == 0 {
		return s, 0
	}
	b.WriteString(s[last:])
	return b.String(), count
}

// render produces the text that replaces match, given the text before it.
func render(before, match, replace string, opts Options) string {
	out := replace
	if !opts.CaseSensitive {
		out = adaptCase(match, out)
	}
	if out != "" && startsSentence(before) {
		out = capitalizeFirst(out)
	}
	return out
}
