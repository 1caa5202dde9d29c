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

	"github.com/rs/zerolog"

	"github.com/walteh/proserc/pkg/text"
)

var _ Operation = (*CountOperation)(nil)

// 🔢 CountOperation counts the words of one input
type CountOperation struct {
	Input string
	IO    IO

	// Words is filled in by Execute
	Words int
}

// Name implements Operation.Name
func (op *CountOperation) Name() string {
	return op.Input
}

// 🏃 Execute implements Operation.Execute
func (op *CountOperation) Execute(ctx context.Context) error {
	data, err := op.IO.readInput(op.Input)
	if err != nil {
		return err
	}

	op.Words = text.CountWords(string(data))
	zerolog.Ctx(ctx).Debug().Str("input", op.Input).Int("words", op.Words).Msg("counted words")

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%8d %s\n", op.Words, op.Input)
	return writeBlock(op.IO.Stdout, &buf)
}

// CountTotal prints the combined count of ops. Nothing is printed for a
// single input.
func CountTotal(ops []*CountOperation, streams IO) error {
	if len(ops) < 2 {
		return nil
	}
	total := 0
	for _, op := range ops {
		total += op.Words
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%8d total\n", total)
	return writeBlock(streams.Stdout, &buf)
}
