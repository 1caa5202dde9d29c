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

package operation

import (
	"bytes"
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/proserc/pkg/log"
	"github.com/walteh/proserc/pkg/status"
	"github.com/walteh/proserc/pkg/text"
)

var _ Operation = (*ReplaceOperation)(nil)

// ✏️ ReplaceOperation rewrites one input with an ordered rule list
type ReplaceOperation struct {
	// Input is a file path or "-" for standard input
	Input string

	// Output is the file to write. Empty prints the result to IO.Stdout.
	Output string

	// Mode names the rule set, for reporting only
	Mode string

	Rules    []text.Rule
	Options  text.Options
	Replacer text.TextReplacer
	IO       IO

	// Result is filled in by Execute
	Result *text.Result
}

// Name implements Operation.Name
func (op *ReplaceOperation) Name() string {
	return op.Input
}

// 🏃 Execute implements Operation.Execute
func (op *ReplaceOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx).With().Str("input", op.Input).Logger()
	ctx = logger.WithContext(ctx)
	console := log.FromContext(ctx)

	replacer := op.Replacer
	if replacer == nil {
		replacer = text.NewEngine()
	}

	data, err := op.IO.readInput(op.Input)
	if err != nil {
		return err
	}

	ctx = console.StartInput(ctx, log.InputOperation{Name: op.Input, Mode: op.Mode, Rules: len(op.Rules)})
	defer console.EndInput(ctx)

	result, err := replacer.ReplaceText(ctx, bytes.NewReader(data), op.Rules, op.Options)
	if errors.Is(err, text.ErrNothingToProcess) {
		console.Warningf("%s: nothing to process", op.Input)
		op.Result = result
		return nil
	}
	if err != nil {
		return errors.Errorf("replacing %s: %w", op.Input, err)
	}
	op.Result = result

	console.LogRuleStats(ctx, result)

	fileOp := log.FileOperation{
		Path:         op.Output,
		Kind:         "replace",
		Replacements: result.ReplacementCount,
	}

	if op.Output == "" {
		var buf bytes.Buffer
		buf.WriteString(result.Text)
		buf.WriteString("\n")
		if err := writeBlock(op.IO.Stdout, &buf); err != nil {
			return err
		}
		fileOp.Path = stdoutName
		fileOp.Status = status.StatusUnknown
		if result.WasModified {
			fileOp.Status = status.StatusModified
		}
		console.LogFileOperation(ctx, fileOp)
		return nil
	}

	if op.IO.Files == nil {
		return errors.New("no file manager configured")
	}

	info, err := op.IO.Files.WriteOutput(ctx, op.Output, []byte(result.Text+"\n"))
	fileOp.Status = info.Status
	console.LogFileOperation(ctx, fileOp)
	if err != nil {
		return errors.Errorf("writing %s: %w", op.Output, err)
	}

	logger.Debug().Str("output", op.Output).Stringer("status", info.Status).Msg("replace output written")
	return nil
}
