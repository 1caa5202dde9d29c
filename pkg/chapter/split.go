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
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/proserc/pkg/text"
)

var (
	// ErrNothingToSplit is returned for empty or whitespace-only input.
	ErrNothingToSplit = errors.Base("nothing to split")

	// ErrInvalidPartCount is returned when fewer than one part is requested.
	ErrInvalidPartCount = errors.Base("part count must be at least 1")
)

// 📄 Part is one paragraph-aligned segment of a split
type Part struct {
	// Index is the 1-based position of the part
	Index int

	// Header is the renumbered chapter header, empty when the input had none
	// or the part is empty
	Header string

	// Text is the rendered part: header, blank line, then paragraphs
	// separated by blank lines
	Text string

	// WordCount is counted on Text, header included
	WordCount int
}

// Empty reports whether no paragraph landed in the part.
func (p Part) Empty() bool {
	return p.Text == ""
}

// 📚 Result holds the outcome of a split
type Result struct {
	// Header is the detected chapter header as it appeared in the input
	Header string

	// Parts always has exactly the requested number of entries
	Parts []Part

	// TotalWords is the word count of the body, header excluded
	TotalWords int

	// TargetWords is the per-part budget, ceil(TotalWords / parts)
	TargetWords int
}

// Texts returns the rendered text of every part, in order.
func (r *Result) Texts() []string {
	out := make([]string, len(r.Parts))
	for i, p := range r.Parts {
		out[i] = p.Text
	}
	return out
}

// ✂️ Split divides text into parts contiguous segments of roughly equal word
// count without breaking paragraphs. Every non-blank line is a paragraph.
//
// Paragraphs are accumulated greedily: a part is closed when the next
// paragraph would push it strictly over the budget, unless it is already the
// last part, which absorbs whatever is left. Parts that receive no paragraph
// are returned empty. A leading chapter header is renumbered per part.
func Split(input string, parts int) (*Result, error) {
	if parts < 1 {
		return nil, errors.Errorf("%w: got %d", ErrInvalidPartCount, parts)
	}
	if strings.TrimSpace(input) == "" {
		return nil, errors.WithStack(ErrNothingToSplit)
	}

	header, body := DetectHeader(input)
	paragraphs := text.Paragraphs(body)
	total := text.CountWords(body)

	result := &Result{
		Header:      header,
		TotalWords:  total,
		TargetWords: (total + parts - 1) / parts,
	}

	if parts == 1 {
		single := render(1, header, paragraphs)
		if single.Empty() && header != "" {
			single = Part{Index: 1, Header: header, Text: header, WordCount: text.CountWords(header)}
		}
		result.Parts = []Part{single}
		return result, nil
	}

	groups := make([][]string, 1, parts)
	current := 0
	for _, p := range paragraphs {
		words := text.CountWords(p)
		last := len(groups) - 1
		if len(groups[last]) > 0 && current+words > result.TargetWords && len(groups) < parts {
			groups = append(groups, nil)
			last++
			current = 0
		}
		groups[last] = append(groups[last], p)
		current += words
	}

	result.Parts = make([]Part, parts)
	for i := range parts {
		var group []string
		if i < len(groups) {
			group = groups[i]
		}
		partHeader := header
		if header != "" {
			partHeader = NumberHeader(header, i+1)
		}
		result.Parts[i] = render(i+1, partHeader, group)
	}

	return result, nil
}

func render(index int, header string, paragraphs []string) Part {
	part := Part{Index: index}
	if len(paragraphs) == 0 {
		return part
	}

	part.Text = strings.Join(paragraphs, text.ParagraphSeparator)
	if header != "" {
		part.Text = header + text.ParagraphSeparator + part.Text
	}
	part.Header = header
	part.WordCount = text.CountWords(part.Text)
	return part
}
