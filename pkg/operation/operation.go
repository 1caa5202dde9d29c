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
	"io"
	"os"
	"sync"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/proserc/pkg/status"
)

// Stdin is the input name that reads standard input instead of a file
const Stdin = "-"

// stdoutName labels printed results in console reports
const stdoutName = "stdout"

// 🎯 Operation is one unit of work over one input
type Operation interface {
	// Name identifies the operation's input in logs and errors
	Name() string

	// Execute runs the operation
	Execute(ctx context.Context) error
}

// 🔌 IO holds the streams and file manager operations read from and write to
type IO struct {
	// Stdin is read when an input is named "-"
	Stdin io.Reader

	// Stdout receives results that have no output file. It must be safe for
	// concurrent use when operations run async; see NewSyncWriter.
	Stdout io.Writer

	// Files writes output files and tracks their status
	Files status.FileManager
}

// readInput reads a named input in full
func (o IO) readInput(name string) ([]byte, error) {
	if name == Stdin {
		if o.Stdin == nil {
			return nil, errors.New("no standard input available")
		}
		data, err := io.ReadAll(o.Stdin)
		if err != nil {
			return nil, errors.Errorf("reading standard input: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// 🔒 SyncWriter serializes whole writes to an underlying writer
type SyncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewSyncWriter wraps w so concurrent operations do not interleave mid-write
func NewSyncWriter(w io.Writer) *SyncWriter {
	return &SyncWriter{w: w}
}

func (s *SyncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// writeBlock sends a fully rendered block in a single Write call
func writeBlock(w io.Writer, buf *bytes.Buffer) error {
	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.Errorf("writing output: %w", err)
	}
	return nil
}
