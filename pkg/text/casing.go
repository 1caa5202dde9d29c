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
	"unicode"
	"unicode/utf8"
)

// 🔠 adaptCase renders replacement in the casing pattern of the matched text.
// Order matters: an all-caps match must not collapse to sentence case.
func adaptCase(match, replacement string) string {
	if replacement == "" || !hasCase(match) {
		return replacement
	}
	switch {
	case match == strings.ToUpper(match):
		return strings.ToUpper(replacement)
	case match == strings.ToLower(match):
		return strings.ToLower(replacement)
	}
	if r, _ := utf8.DecodeRuneInString(match); unicode.IsUpper(r) {
		return capitalizeFirst(replacement)
	}
	return replacement
}

// hasCase reports whether s contains at least one case-bearing character.
func hasCase(s string) bool {
	return strings.ToUpper(s) != strings.ToLower(s)
}

// capitalizeFirst upper-cases the first character of s and leaves the rest alone.
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	upper := unicode.ToUpper(r)
	if upper == r {
		return s
	}
	return string(upper) + s[size:]
}

// 📍 startsSentence reports whether a replacement placed right after before
// opens a line or a sentence.
func startsSentence(before string) bool {
	line := before
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		line = before[i+1:]
	}
	if strings.TrimSpace(line) == "" {
		return true
	}

	trimmed := strings.TrimRightFunc(before, unicode.IsSpace)
	last, _ := utf8.DecodeLastRuneInString(trimmed)
	switch last {
	case '.', '?', '!':
		return true
	}
	return false
}
