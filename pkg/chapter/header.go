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

package chapter

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	headerPattern = regexp.MustCompile(`^(?i:chương|chapter)\s+\d+`)
	numberPattern = regexp.MustCompile(`\d+`)
)

// 🔍 DetectHeader inspects the first line of text. When it is a chapter header
// ("Chương 3", "CHAPTER 12: The Storm") the trimmed header and the remaining
// body are returned. Otherwise header is empty and body is text unchanged.
func DetectHeader(text string) (header, body string) {
	first, rest, _ := strings.Cut(text, "\n")
	candidate := norm.NFC.String(strings.TrimSpace(first))
	if !headerPattern.MatchString(candidate) {
		return "", text
	}
	return candidate, rest
}

// 🏷️ NumberHeader inserts ".part" right after the first number in header, so
// "Chapter 5: Rain" becomes "Chapter 5.2: Rain" for part 2. A header without a
// number is returned unchanged.
func NumberHeader(header string, part int) string {
	loc := numberPattern.FindStringIndex(header)
	if loc == nil {
		return header
	}
	return header[:loc[1]] + "." + strconv.Itoa(part) + header[loc[1]:]
}
