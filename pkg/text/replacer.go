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
	"context"
	"fmt"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrNothingToProcess is returned when there is no input text to rewrite.
var ErrNothingToProcess = errors.Base("nothing to process")

// 🔄 Rule defines a single literal find/replace pair
type Rule struct {
	// Find is the literal text to look for. Rules whose Find is empty after
	// trimming are skipped.
	Find string `json:"find" yaml:"find"`

	// Replace is the replacement text. It is never trimmed: an empty value
	// deletes the match and a single space is a valid replacement.
	Replace string `json:"replace" yaml:"replace"`
}

// Eligible reports whether the rule takes part in a replace pass.
func (r Rule) Eligible() bool {
	return strings.TrimSpace(r.Find) != ""
}

// ⚙️ Options applies uniformly to every rule of one invocation
type Options struct {
	// CaseSensitive disables case-insensitive matching and case adaptation.
	CaseSensitive bool

	// WholeWord rejects matches bordered by a letter, digit or underscore.
	WholeWord bool

	// Normalize converts text and rules to Unicode NFC before matching.
	Normalize bool
}

// 📊 RuleStat records the outcome of one rule
type RuleStat struct {
	Index   int
	Find    string
	Replace string
	Count   int
}

// ⚠️ Diagnostic records a rule that was skipped because it could not be compiled
type Diagnostic struct {
	Index int
	Find  string
	Err   error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("rule %d (%q): %v", d.Index, d.Find, d.Err)
}

// 📦 Result contains the results of a replace pass
type Result struct {
	// WasModified indicates if the rewritten text differs from the original
	WasModified bool

	// ReplacementCount is the number of accepted substitutions across all rules
	ReplacementCount int

	// Original is the text before any rule ran
	Original string

	// Text is the rewritten, paragraph-normalised text
	Text string

	// Rules holds one entry per eligible rule, in execution order
	Rules []RuleStat

	// Diagnostics lists the rules that were skipped
	Diagnostics []Diagnostic
}

// TextReplacer defines the interface for rule-based text rewriting
type TextReplacer interface {
	// ReplaceText applies the ordered rules to the content read from r.
	ReplaceText(ctx context.Context, content io.Reader, rules []Rule, opts Options) (*Result, error)

	// ValidateRules checks that all rules are usable
	ValidateRules(rules []Rule) error
}
