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
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/proserc/pkg/chapter"
	"github.com/walteh/proserc/pkg/status"
	"github.com/walteh/proserc/pkg/text"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_file_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Path:         "story.txt",
					Kind:         "replace",
					Status:       status.StatusNew,
					Replacements: 3,
				})
			},
			wantLogs: []string{
				"✓ story.txt                           replace    new        3 changes",
			},
		},
		{
			name: "log_input_operation",
			op: func(t *testing.T, logger *Logger) {
				ctx := logger.StartInput(context.Background(), InputOperation{
					Name:  "chapter1.txt",
					Mode:  "novel",
					Rules: 12,
				})
				logger.EndInput(ctx)
			},
			wantLogs: []string{
				"[processing chapter1.txt]",
				"◆ novel • 12 rules",
			},
		},
		{
			name: "log_input_without_mode",
			op: func(t *testing.T, logger *Logger) {
				ctx := logger.StartInput(context.Background(), InputOperation{Name: "-"})
				logger.LogFileOperation(ctx, FileOperation{Path: "stdout", Kind: "replace", Status: status.StatusModified, Replacements: 1})
				logger.EndInput(ctx)
			},
			wantLogs: []string{
				"[processing -]",
				"⟳ stdout                              replace    modified   1 changes",
			},
		},
		{
			name: "unfinished_input_prints_nothing",
			op: func(t *testing.T, logger *Logger) {
				ctx := logger.StartInput(context.Background(), InputOperation{Name: "ch1.txt"})
				logger.LogFileOperation(ctx, FileOperation{Path: "out/ch1.txt", Kind: "replace"})
				logger.Info("done")
			},
			wantLogs: []string{
				"ℹ️  done",
			},
		},
		{
			name: "log_rule_stats",
			op: func(t *testing.T, logger *Logger) {
				logger.LogRuleStats(context.Background(), &text.Result{
					Rules: []text.RuleStat{
						{Index: 0, Find: " ,", Replace: ",", Count: 2},
						{Index: 1, Find: "x", Replace: "y", Count: 0},
					},
					Diagnostics: []text.Diagnostic{
						{Index: 2, Find: "\xff", Err: assert.AnError},
					},
				})
			},
			wantLogs: []string{
				`2× " ," → ","`,
				`0× "x" → "y"`,
				`✗ rule 2 ("\xff"): ` + assert.AnError.Error(),
			},
		},
		{
			name: "log_parts",
			op: func(t *testing.T, logger *Logger) {
				result, err := chapter.Split("Chapter 7\nA b c.\nD e f.", 3)
				require.NoError(t, err)
				logger.LogParts(context.Background(), result)
			},
			wantLogs: []string{
				"part 1        5 words Chapter 7.1",
				"part 2        5 words Chapter 7.2",
				"part 3        0 words",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("replacing with mode novel")
			},
			wantLogs: []string{
				"proserc • replacing with mode novel",
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("first")
				logger.LogNewline()
				logger.Info("second")
			},
			wantLogs: []string{
				"ℹ️  first",
				"",
				"ℹ️  second",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Nop())

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLogger_MirrorsToZerolog(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var zbuf bytes.Buffer
	logger := New(io.Discard, zerolog.New(&zbuf))

	logger.LogFileOperation(context.Background(), FileOperation{
		Path:   "out/ch1.part2.txt",
		Kind:   "part 2",
		Status: status.StatusUnchanged,
		Words:  120,
	})

	assert.Contains(t, zbuf.String(), `"file":"out/ch1.part2.txt"`)
	assert.Contains(t, zbuf.String(), `"status":"unchanged"`)
	assert.Contains(t, zbuf.String(), `"words":120`)
}

func TestLogger_InputReportsDoNotInterleave(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	buf := &bytes.Buffer{}
	logger := New(buf, zerolog.Nop())

	ctxA := logger.StartInput(context.Background(), InputOperation{Name: "a/ch1.txt"})
	ctxB := logger.StartInput(context.Background(), InputOperation{Name: "b/ch1.txt"})
	logger.LogFileOperation(ctxA, FileOperation{Path: "fixed/a/ch1.txt", Kind: "replace", Status: status.StatusNew})
	logger.LogFileOperation(ctxB, FileOperation{Path: "fixed/b/ch1.txt", Kind: "replace", Status: status.StatusNew})
	assert.Empty(t, buf.String(), "reports should be held until the input ends")

	logger.EndInput(ctxB)
	logger.EndInput(ctxA)
	logger.EndInput(ctxA)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4, "each report should be printed once")
	assert.Equal(t, "[processing b/ch1.txt]", lines[0])
	assert.Contains(t, lines[1], "fixed/b/ch1.txt")
	assert.Equal(t, "[processing a/ch1.txt]", lines[2])
	assert.Contains(t, lines[3], "fixed/a/ch1.txt")
}

func TestLogger_ConcurrentInputs(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	buf := &bytes.Buffer{}
	logger := New(buf, zerolog.Nop())

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := fmt.Sprintf("input%d.txt", i)
			ctx := logger.StartInput(context.Background(), InputOperation{Name: name})
			defer logger.EndInput(ctx)
			for part := 1; part <= 3; part++ {
				logger.LogFileOperation(ctx, FileOperation{Path: name, Kind: fmt.Sprintf("part %d", part), Status: status.StatusNew})
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 8*4)
	for i := 0; i < len(lines); i += 4 {
		name, ok := strings.CutPrefix(lines[i], "[processing ")
		require.True(t, ok, "line %d should start a report", i)
		name = strings.TrimSuffix(name, "]")
		for j := 1; j <= 3; j++ {
			assert.Contains(t, lines[i+j], name, "rows of %s should follow its header", name)
		}
	}
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.Nop())

	ctx := NewContext(context.Background(), logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	assert.NotPanics(t, func() {
		FromContext(context.Background()).Info("dropped")
	}, "FromContext should fall back to a discarding logger")
}

func TestFileOperationFormatting(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		op   FileOperation
		want string
	}{
		{
			name: "new_replace_output",
			op:   FileOperation{Path: "story.txt", Kind: "replace", Status: status.StatusNew, Replacements: 3},
			want: "    ✓ story.txt                           replace    new        3 changes",
		},
		{
			name: "unchanged_part",
			op:   FileOperation{Path: "out/ch1.part2.txt", Kind: "part 2", Status: status.StatusUnchanged, Words: 120},
			want: "    - out/ch1.part2.txt                   part 2     unchanged  120 words",
		},
		{
			name: "modified_part",
			op:   FileOperation{Path: "a.txt", Kind: "part 1", Status: status.StatusModified, Words: 7},
			want: "    ⟳ a.txt                               part 1     modified   7 words",
		},
		{
			name: "removed_part",
			op:   FileOperation{Path: "a.part4.txt", Kind: "part 4", Status: status.StatusDeleted},
			want: "    ✗ a.part4.txt                         part 4     deleted    0 words",
		},
		{
			name: "failed_replace",
			op:   FileOperation{Path: "a.txt", Kind: "replace", Status: status.StatusFailed},
			want: "    ! a.txt                               replace    failed     0 changes",
		},
	}

	logger := New(io.Discard, zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.formatFileOperation(tt.op))
		})
	}
}
