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
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/proserc/pkg/chapter"
	"github.com/walteh/proserc/pkg/log"
	"github.com/walteh/proserc/pkg/status"
)

var _ Operation = (*SplitOperation)(nil)

// ✂️ SplitOperation divides one chapter into word-balanced parts
type SplitOperation struct {
	// Input is a file path or "-" for standard input
	Input string

	// Parts is the number of parts to produce
	Parts int

	// OutDir receives one file per non-empty part. Empty prints parts to IO.Stdout.
	OutDir string

	// OutName places the parts under OutDir, see OutputNames. Empty uses the
	// base name of Input.
	OutName string

	// Prune removes part files of this input left over from an earlier
	// split into more parts
	Prune bool

	IO IO

	// Result is filled in by Execute
	Result *chapter.Result
}

// Name implements Operation.Name
func (op *SplitOperation) Name() string {
	return op.Input
}

// 🏃 Execute implements Operation.Execute
func (op *SplitOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx).With().Str("input", op.Input).Int("parts", op.Parts).Logger()
	ctx = logger.WithContext(ctx)
	console := log.FromContext(ctx)

	data, err := op.IO.readInput(op.Input)
	if err != nil {
		return err
	}

	ctx = console.StartInput(ctx, log.InputOperation{Name: op.Input})
	defer console.EndInput(ctx)

	result, err := chapter.Split(string(data), op.Parts)
	if errors.Is(err, chapter.ErrNothingToSplit) {
		console.Warningf("%s: nothing to split", op.Input)
		return nil
	}
	if err != nil {
		return errors.Errorf("splitting %s: %w", op.Input, err)
	}
	op.Result = result

	console.LogParts(ctx, result)

	if op.OutDir == "" {
		return op.print(result)
	}
	return op.write(ctx, result)
}

// print renders every part, empty ones included, as a single block
func (op *SplitOperation) print(result *chapter.Result) error {
	var buf bytes.Buffer
	for i, part := range result.Parts {
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "--- part %d (%d words) ---\n", part.Index, part.WordCount)
		if part.Text != "" {
			buf.WriteString(part.Text)
			buf.WriteString("\n")
		}
	}
	return writeBlock(op.IO.Stdout, &buf)
}

// write stores non-empty parts in OutDir and optionally prunes stale ones
func (op *SplitOperation) write(ctx context.Context, result *chapter.Result) error {
	logger := zerolog.Ctx(ctx)
	console := log.FromContext(ctx)

	if op.IO.Files == nil {
		return errors.New("no file manager configured")
	}

	name := op.outName()
	written := make(map[string]bool, len(result.Parts))
	for _, part := range result.Parts {
		path := PartPath(op.OutDir, name, part.Index)
		kind := fmt.Sprintf("part %d", part.Index)

		if part.Empty() {
			logger.Debug().Int("part", part.Index).Msg("empty part, no file written")
			console.LogFileOperation(ctx, log.FileOperation{Path: path, Kind: kind, Status: status.StatusUnknown})
			continue
		}

		info, err := op.IO.Files.WriteOutput(ctx, path, []byte(part.Text+"\n"))
		console.LogFileOperation(ctx, log.FileOperation{Path: path, Kind: kind, Status: info.Status, Words: part.WordCount})
		if err != nil {
			return errors.Errorf("writing part %d: %w", part.Index, err)
		}
		written[filepath.Clean(path)] = true
	}

	if !op.Prune {
		return nil
	}

	dir := filepath.Join(op.OutDir, filepath.Dir(name))
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.Errorf("listing old parts: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !isPartOf(entry.Name(), name) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if written[filepath.Clean(path)] {
			continue
		}
		info, err := op.IO.Files.RemoveOutput(ctx, path)
		console.LogFileOperation(ctx, log.FileOperation{Path: path, Kind: "stale", Status: info.Status})
		if err != nil {
			return errors.Errorf("removing %s: %w", path, err)
		}
	}

	return nil
}

func (op *SplitOperation) outName() string {
	if op.OutName != "" {
		return op.OutName
	}
	if op.Input == Stdin {
		return "stdin.txt"
	}
	return filepath.Base(op.Input)
}
