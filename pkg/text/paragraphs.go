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
	"strings"
)

// ParagraphSeparator is placed between every pair of paragraphs in rendered output.
const ParagraphSeparator = "\n\n"

// 🔢 CountWords counts maximal runs of non-whitespace characters
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// Paragraphs splits s on line breaks and returns the trimmed, non-empty lines.
// Every non-blank line is its own paragraph.
func Paragraphs(s string) []string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// 📝 NormalizeParagraphs leaves exactly one blank line between paragraphs
func NormalizeParagraphs(s string) string {
	return strings.Join(Paragraphs(s), ParagraphSeparator)
}
