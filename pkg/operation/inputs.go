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
	"context"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📂 ExpandInputs turns command line arguments into input names. Glob
// patterns (including **) are expanded in sorted order, plain paths must
// exist, "-" is kept as standard input. Inputs matching an ignore pattern
// are dropped and duplicates are removed.
func ExpandInputs(ctx context.Context, args []string, ignore []string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	for _, pattern := range ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	seen := make(map[string]bool)
	var inputs []string
	add := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		if name != Stdin && ShouldIgnore(ctx, name, ignore) {
			return
		}
		inputs = append(inputs, name)
	}

	for _, arg := range args {
		if arg == Stdin {
			add(Stdin)
			continue
		}

		if !isGlob(arg) {
			info, err := os.Stat(arg)
			if err != nil {
				return nil, errors.Errorf("input %s: %w", arg, err)
			}
			if info.IsDir() {
				return nil, errors.Errorf("input %s is a directory", arg)
			}
			add(filepath.Clean(arg))
			continue
		}

		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, errors.Errorf("pattern %q matched no files", arg)
		}
		sort.Strings(matches)
		logger.Debug().Str("pattern", arg).Int("matches", len(matches)).Msg("expanded input pattern")
		for _, m := range matches {
			add(m)
		}
	}

	return inputs, nil
}

// 🔍 ShouldIgnore reports whether path matches any ignore pattern. A pattern
// without a slash is also tried against the base name.
func ShouldIgnore(ctx context.Context, path string, patterns []string) bool {
	logger := zerolog.Ctx(ctx)
	slashed := filepath.ToSlash(path)

	for _, pattern := range patterns {
		candidates := []string{slashed}
		if !strings.Contains(pattern, "/") {
			candidates = append(candidates, filepath.Base(path))
		}
		for _, c := range candidates {
			matched, err := doublestar.Match(pattern, c)
			if err != nil {
				logger.Debug().Str("pattern", pattern).Str("path", path).Err(err).Msg("error matching pattern")
				continue
			}
			if matched {
				logger.Debug().Str("file", path).Str("pattern", pattern).Msg("file ignored by pattern")
				return true
			}
		}
	}

	return false
}

func isGlob(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// splitName returns the stem and extension used to name outputs of input.
// Standard input is named "stdin.txt".
func splitName(input string) (stem, ext string) {
	if input == Stdin {
		return "stdin", ".txt"
	}
	base := filepath.Base(input)
	ext = filepath.Ext(base)
	return strings.TrimSuffix(base, ext), ext
}

// 🗂️ OutputNames gives every input a distinct relative name to use under an
// output directory. File inputs keep their path relative to the deepest
// directory they all share, so chapters/a/ch1.txt and chapters/b/ch1.txt
// become a/ch1.txt and b/ch1.txt. Standard input is named "stdin.txt".
func OutputNames(inputs []string) (map[string]string, error) {
	names := make(map[string]string, len(inputs))
	abs := make(map[string]string, len(inputs))
	var dirs []string

	for _, input := range inputs {
		if input == Stdin {
			continue
		}
		a, err := filepath.Abs(input)
		if err != nil {
			return nil, errors.Errorf("resolving %s: %w", input, err)
		}
		abs[input] = a
		dirs = append(dirs, filepath.Dir(a))
	}

	root := commonDir(dirs)
	owner := make(map[string]string, len(inputs))

	for _, input := range inputs {
		name := "stdin.txt"
		if input != Stdin {
			rel, err := filepath.Rel(root, abs[input])
			if err != nil {
				return nil, errors.Errorf("naming output of %s: %w", input, err)
			}
			name = rel
		}

		if prev, ok := owner[name]; ok {
			return nil, errors.Errorf("inputs %s and %s would both write %s", prev, input, name)
		}
		owner[name] = input
		names[input] = name
	}

	return names, nil
}

// commonDir returns the deepest directory containing every dir
func commonDir(dirs []string) string {
	if len(dirs) == 0 {
		return ""
	}
	root := dirs[0]
	for _, dir := range dirs[1:] {
		for !within(dir, root) {
			parent := filepath.Dir(root)
			if parent == root {
				break
			}
			root = parent
		}
	}
	return root
}

func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// 🏷️ PartPath names the file for part index of an input whose output name is
// name: <dir>/<stem>.part<i><ext> under outDir
func PartPath(outDir, name string, index int) string {
	stem, ext := splitName(name)
	dir := "."
	if name != Stdin {
		dir = filepath.Dir(name)
	}
	return filepath.Join(outDir, dir, stem+".part"+strconv.Itoa(index)+ext)
}

// isPartOf reports whether name is a part file PartPath produced for input
func isPartOf(name, input string) bool {
	stem, ext := splitName(input)
	rest, ok := strings.CutPrefix(name, stem+".part")
	if !ok {
		return false
	}
	digits, ok := strings.CutSuffix(rest, ext)
	if !ok || digits == "" {
		return false
	}
	_, err := strconv.Atoi(digits)
	return err == nil && !strings.ContainsAny(digits, "+-")
}

// OutputPath places the rewritten copy of an input whose output name is name
// inside outDir
func OutputPath(outDir, name string) string {
	if name == Stdin {
		name = "stdin.txt"
	}
	return filepath.Join(outDir, name)
}
