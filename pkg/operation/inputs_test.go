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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandInputs(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "notes.md", "sub/c.txt"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "creating dir should succeed")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644), "writing file should succeed")
	}
	in := func(name string) string { return filepath.Join(dir, name) }

	tests := []struct {
		name        string
		args        []string
		ignore      []string
		want        []string
		errContains string
	}{
		{
			name: "plain_files_keep_order",
			args: []string{in("b.txt"), in("a.txt")},
			want: []string{in("b.txt"), in("a.txt")},
		},
		{
			name: "glob_is_sorted",
			args: []string{in("*.txt")},
			want: []string{in("a.txt"), in("b.txt")},
		},
		{
			name: "double_star",
			args: []string{in("**/*.txt")},
			want: []string{in("a.txt"), in("b.txt"), in("sub/c.txt")},
		},
		{
			name:   "ignore_base_name",
			args:   []string{in("**/*")},
			ignore: []string{"*.md", "c.txt"},
			want:   []string{in("a.txt"), in("b.txt")},
		},
		{
			name: "duplicates_removed",
			args: []string{in("a.txt"), in("*.txt")},
			want: []string{in("a.txt"), in("b.txt")},
		},
		{
			name: "stdin",
			args: []string{"-", in("a.txt"), "-"},
			want: []string{"-", in("a.txt")},
		},
		{
			name:        "missing_file",
			args:        []string{in("nope.txt")},
			errContains: "nope.txt",
		},
		{
			name:        "directory",
			args:        []string{in("sub")},
			errContains: "is a directory",
		},
		{
			name:        "pattern_without_match",
			args:        []string{in("*.rst")},
			errContains: "matched no files",
		},
		{
			name:        "invalid_ignore",
			args:        []string{in("a.txt")},
			ignore:      []string{"[a-"},
			errContains: "invalid ignore pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandInputs(ctx, tt.args, tt.ignore)
			if tt.errContains != "" {
				require.Error(t, err, "expanding should fail")
				assert.Contains(t, err.Error(), tt.errContains, "error should describe the problem")
				return
			}
			require.NoError(t, err, "expanding should succeed")
			assert.Equal(t, tt.want, got, "inputs should match")
		})
	}
}

func TestShouldIgnore(t *testing.T) {
	ctx := testContext(t)

	tests := []struct {
		name     string
		path     string
		patterns []string
		want     bool
	}{
		{name: "no_patterns", path: "ch1.txt", want: false},
		{name: "base_name_match", path: "notes/ch1.bak", patterns: []string{"*.bak"}, want: true},
		{name: "path_match", path: "drafts/old/ch1.txt", patterns: []string{"drafts/**"}, want: true},
		{name: "path_pattern_not_tried_on_base", path: "final/ch1.txt", patterns: []string{"drafts/*"}, want: false},
		{name: "no_match", path: "ch1.txt", patterns: []string{"*.md", "*.bak"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldIgnore(ctx, tt.path, tt.patterns), "ignore result should match")
		})
	}
}

func TestPartPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "ch1.part2.txt"), PartPath("out", "ch1.txt", 2))
	assert.Equal(t, filepath.Join("out", "vol1", "ch1.part1.txt"), PartPath("out", "vol1/ch1.txt", 1))
	assert.Equal(t, filepath.Join("out", "vol2", "ch1.part1.txt"), PartPath("out", "vol2/ch1.txt", 1))
	assert.Equal(t, filepath.Join("out", "stdin.part1.txt"), PartPath("out", Stdin, 1))
	assert.Equal(t, filepath.Join("out", "notes.part3"), PartPath("out", "notes", 3))
	assert.Equal(t, filepath.Join("fixed", "a", "ch1.txt"), OutputPath("fixed", "a/ch1.txt"))
	assert.Equal(t, filepath.Join("out", "stdin.txt"), OutputPath("out", Stdin))
}

func TestOutputNames(t *testing.T) {
	dir := t.TempDir()
	in := func(name string) string { return filepath.Join(dir, name) }

	tests := []struct {
		name        string
		inputs      []string
		want        map[string]string
		wantErr     bool
		errContains string
	}{
		{
			name:   "single_file_keeps_base_name",
			inputs: []string{in("chapters/a/ch1.txt")},
			want:   map[string]string{in("chapters/a/ch1.txt"): "ch1.txt"},
		},
		{
			name:   "same_name_in_different_folders",
			inputs: []string{in("chapters/a/ch1.txt"), in("chapters/b/ch1.txt")},
			want: map[string]string{
				in("chapters/a/ch1.txt"): filepath.Join("a", "ch1.txt"),
				in("chapters/b/ch1.txt"): filepath.Join("b", "ch1.txt"),
			},
		},
		{
			name:   "nested_and_flat",
			inputs: []string{in("book/ch1.txt"), in("book/extra/ch2.txt")},
			want: map[string]string{
				in("book/ch1.txt"):       "ch1.txt",
				in("book/extra/ch2.txt"): filepath.Join("extra", "ch2.txt"),
			},
		},
		{
			name:   "stdin_with_file",
			inputs: []string{Stdin, in("book/ch1.txt")},
			want: map[string]string{
				Stdin:              "stdin.txt",
				in("book/ch1.txt"): "ch1.txt",
			},
		},
		{
			name:        "stdin_clashes_with_file",
			inputs:      []string{Stdin, in("stdin.txt")},
			wantErr:     true,
			errContains: "would both write stdin.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OutputNames(tt.inputs)
			if tt.wantErr {
				require.Error(t, err, "OutputNames should fail")
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err, "OutputNames should succeed")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsPartOf(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		input string
		want  bool
	}{
		{name: "part_file", file: "ch1.part3.txt", input: "drafts/ch1.txt", want: true},
		{name: "multi_digit", file: "ch1.part12.txt", input: "ch1.txt", want: true},
		{name: "other_input", file: "ch10.part1.txt", input: "ch1.txt", want: false},
		{name: "other_extension", file: "ch1.part1.md", input: "ch1.txt", want: false},
		{name: "not_a_number", file: "ch1.partial.txt", input: "ch1.txt", want: false},
		{name: "signed_number", file: "ch1.part-1.txt", input: "ch1.txt", want: false},
		{name: "stdin", file: "stdin.part2.txt", input: Stdin, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isPartOf(tt.file, tt.input))
		})
	}
}
