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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountOperation(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "ch1.txt")
	require.NoError(t, os.WriteFile(file, []byte("Một hai ba\n\nbốn năm"), 0644))

	var stdout bytes.Buffer
	streams := IO{Stdin: strings.NewReader(" one  two\tthree\n four "), Stdout: &stdout}
	ops := []*CountOperation{
		{Input: Stdin, IO: streams},
		{Input: file, IO: streams},
	}

	for _, op := range ops {
		require.NoError(t, op.Execute(ctx), "count should succeed")
	}
	require.NoError(t, CountTotal(ops, streams))

	assert.Equal(t, 4, ops[0].Words)
	assert.Equal(t, 5, ops[1].Words)
	assert.Equal(t, "       4 -\n       5 "+file+"\n       9 total\n", stdout.String())
}

func TestCountTotal_SingleInput(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, CountTotal([]*CountOperation{{Input: "a", Words: 3}}, IO{Stdout: &stdout}))
	assert.Empty(t, stdout.String(), "single input should have no total line")
}
