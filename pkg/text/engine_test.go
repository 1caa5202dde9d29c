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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Apply(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		rules        []Rule
		opts         Options
		want         string
		wantCount    int
		wantModified bool
	}{
		{
			name:    "simple_replacement",
			content: "Hello World",
			rules: []Rule{
				{Find: "World", Replace: "Universe"},
			},
			want:         "Hello Universe",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "multiple_replacements",
			content: "Hello World World",
			rules: []Rule{
				{Find: "World", Replace: "Universe"},
			},
			want:         "Hello Universe Universe",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:    "multiple_rules",
			content: "Hello World",
			rules: []Rule{
				{Find: "Hello", Replace: "Hi"},
				{Find: "World", Replace: "Universe"},
			},
			want:         "Hi Universe",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:    "no_match",
			content: "Hello World",
			rules: []Rule{
				{Find: "Goodbye", Replace: "Hi"},
			},
			want: "Hello World",
		},
		{
			name:    "empty_rules",
			content: "Hello World",
			rules:   []Rule{},
			want:    "Hello World",
		},
		{
			name:    "blank_find_is_skipped",
			content: "a b",
			rules: []Rule{
				{Find: "  ", Replace: "x"},
				{Find: "", Replace: "y"},
			},
			want: "a b",
		},
		{
			name:    "replacement_space_is_kept",
			content: "a,b",
			rules: []Rule{
				{Find: ",", Replace: ", "},
			},
			want:         "a, b",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "deletion_drops_emptied_lines",
			content: "keep\nDROP\nkeep too",
			rules: []Rule{
				{Find: "DROP", Replace: ""},
			},
			want:         "keep\n\nkeep too",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "case_adaptation_per_match",
			content: "x THE cat, The dog, the fox",
			rules: []Rule{
				{Find: "the", Replace: "a"},
			},
			want:         "x A cat, A dog, a fox",
			wantCount:    3,
			wantModified: true,
		},
		{
			name:    "acronym_stays_upper",
			content: "say NASA now",
			rules: []Rule{
				{Find: "nasa", Replace: "space agency"},
			},
			want:         "say SPACE AGENCY now",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "mixed_case_match_keeps_authored_replacement",
			content: "x tHe y",
			rules: []Rule{
				{Find: "the", Replace: "aN"},
			},
			want:         "x aN y",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "capitalize_after_period",
			content: "Hello. the dog",
			rules: []Rule{
				{Find: "the", Replace: "a"},
			},
			want:         "Hello. A dog",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "capitalize_after_question_and_exclamation",
			content: "Why? the end! the start",
			rules: []Rule{
				{Find: "the", Replace: "a"},
			},
			want:         "Why? A end! A start",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:    "capitalize_at_line_start",
			content: "line one\n  the end",
			rules: []Rule{
				{Find: "the", Replace: "a"},
			},
			want:         "line one\n\nA end",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "capitalize_at_text_start",
			content: "the end",
			rules: []Rule{
				{Find: "the", Replace: "a"},
			},
			want:         "A end",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "no_capitalize_after_comma",
			content: "yes, the end",
			rules: []Rule{
				{Find: "the", Replace: "a"},
			},
			want:         "yes, a end",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "case_sensitive_matches_exact_case_only",
			content: "The the THE",
			rules: []Rule{
				{Find: "the", Replace: "a"},
			},
			opts:         Options{CaseSensitive: true},
			want:         "The a THE",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "case_sensitive_still_capitalizes_sentence_start",
			content: "x. the",
			rules: []Rule{
				{Find: "the", Replace: "a"},
			},
			opts:         Options{CaseSensitive: true},
			want:         "x. A",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "whole_word_rejects_vietnamese_neighbours",
			content: "an đan an.",
			rules: []Rule{
				{Find: "an", Replace: "một"},
			},
			opts:         Options{WholeWord: true},
			want:         "Một đan một.",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:    "substring_match_without_whole_word",
			content: "an đan an.",
			rules: []Rule{
				{Find: "an", Replace: "một"},
			},
			want:         "Một đmột một.",
			wantCount:    3,
			wantModified: true,
		},
		{
			name:    "whole_word_rescans_after_rejection",
			content: "aaa aa",
			rules: []Rule{
				{Find: "aa", Replace: "b"},
			},
			opts:         Options{WholeWord: true},
			want:         "aaa b",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "whole_word_rejects_digits_and_underscore",
			content: "an1 _an an",
			rules: []Rule{
				{Find: "an", Replace: "x"},
			},
			opts:         Options{WholeWord: true},
			want:         "an1 _an x",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "non_overlapping_global_replace",
			content: "aaaa",
			rules: []Rule{
				{Find: "aa", Replace: "b"},
			},
			want:         "Bb",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:    "metacharacters_are_literal",
			content: "1+1=2 (really?) a.b",
			rules: []Rule{
				{Find: "(really?)", Replace: "[yes]"},
				{Find: ".", Replace: "-"},
			},
			want:         "1+1=2 [yes] a-b",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:         "paragraphs_are_normalised_without_rules",
			content:      "  first line  \n\n\n second\n",
			want:         "first line\n\nsecond",
			wantModified: true,
		},
		{
			name:    "nfc_normalisation_matches_decomposed_text",
			content: "học tie\u0302\u0301ng",
			rules: []Rule{
				{Find: "tiếng", Replace: "lời"},
			},
			opts:         Options{Normalize: true},
			want:         "học lời",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "decomposed_text_without_normalisation",
			content: "học tie\u0302\u0301ng",
			rules: []Rule{
				{Find: "tiếng", Replace: "lời"},
			},
			want: "học tie\u0302\u0301ng",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine()
			result, err := engine.Apply(tt.content, tt.rules, tt.opts)

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.content, result.Original)
			assert.Equal(t, tt.want, result.Text)
			assert.Equal(t, tt.wantCount, result.ReplacementCount)
			assert.Equal(t, tt.wantModified, result.WasModified)
			assert.Empty(t, result.Diagnostics)
		})
	}
}

func TestEngine_ApplyEmptyInput(t *testing.T) {
	result, err := Apply("", []Rule{{Find: "a", Replace: "b"}}, Options{})

	require.ErrorIs(t, err, ErrNothingToProcess)
	require.NotNil(t, result)
	assert.Equal(t, "", result.Text)
	assert.Equal(t, 0, result.ReplacementCount)
}

func TestEngine_ApplyEmptyRuleSetOnlyNormalises(t *testing.T) {
	content := "one\r\n\r\n\r\ntwo  \n   three"

	result, err := Apply(content, nil, Options{})
	require.NoError(t, err)

	assert.Equal(t, NormalizeParagraphs(content), result.Text)
	assert.Equal(t, 0, result.ReplacementCount)
	assert.Empty(t, result.Rules)
}

func TestEngine_RuleOrderMatters(t *testing.T) {
	catToDog := Rule{Find: "cat", Replace: "dog"}
	dogToBird := Rule{Find: "dog", Replace: "bird"}

	forward, err := Apply("a cat", []Rule{catToDog, dogToBird}, Options{})
	require.NoError(t, err)
	backward, err := Apply("a cat", []Rule{dogToBird, catToDog}, Options{})
	require.NoError(t, err)

	assert.Equal(t, "a bird", forward.Text)
	assert.Equal(t, 2, forward.ReplacementCount)
	assert.Equal(t, "a dog", backward.Text)
	assert.Equal(t, 1, backward.ReplacementCount)
}

func TestEngine_InvalidRuleIsSkipped(t *testing.T) {
	rules := []Rule{
		{Find: "\xff", Replace: "x"},
		{Find: "cat", Replace: "dog"},
	}

	result, err := Apply("a cat", rules, Options{})
	require.NoError(t, err)

	assert.Equal(t, "a dog", result.Text)
	assert.Equal(t, 1, result.ReplacementCount)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, 0, result.Diagnostics[0].Index)
	assert.Error(t, result.Diagnostics[0].Err)
	assert.Contains(t, result.Diagnostics[0].String(), "rule 0")
	require.Len(t, result.Rules, 1)
	assert.Equal(t, 1, result.Rules[0].Index)
}

func TestEngine_RuleStats(t *testing.T) {
	rules := []Rule{
		{Find: "a", Replace: "b"},
		{Find: "   ", Replace: "ignored"},
		{Find: "zzz", Replace: "y"},
	}

	result, err := Apply("x a a", rules, Options{})
	require.NoError(t, err)

	require.Len(t, result.Rules, 2)
	assert.Equal(t, RuleStat{Index: 0, Find: "a", Replace: "b", Count: 2}, result.Rules[0])
	assert.Equal(t, RuleStat{Index: 2, Find: "zzz", Replace: "y", Count: 0}, result.Rules[1])
}

func TestEngine_ReplaceText(t *testing.T) {
	engine := NewEngine()

	result, err := engine.ReplaceText(
		context.Background(),
		strings.NewReader("Hello World"),
		[]Rule{{Find: "world", Replace: "there"}},
		Options{},
	)
	require.NoError(t, err)
	assert.Equal(t, "Hello There", result.Text)

	_, err = engine.ReplaceText(context.Background(), strings.NewReader(""), nil, Options{})
	assert.ErrorIs(t, err, ErrNothingToProcess)
}

func TestEngine_ValidateRules(t *testing.T) {
	tests := []struct {
		name      string
		rules     []Rule
		wantError string
	}{
		{
			name: "valid_rules",
			rules: []Rule{
				{Find: "foo", Replace: "bar"},
				{Find: ",", Replace: ""},
			},
		},
		{
			name: "missing_find",
			rules: []Rule{
				{Find: "foo", Replace: "bar"},
				{Find: " ", Replace: "bar"},
			},
			wantError: "rule 1: find is required",
		},
		{
			name: "every_missing_find_reported",
			rules: []Rule{
				{Find: "", Replace: "a"},
				{Find: "ok", Replace: "b"},
				{Find: "\t", Replace: "c"},
			},
			wantError: "rule 2: find is required",
		},
		{
			name: "invalid_utf8",
			rules: []Rule{
				{Find: "\xff", Replace: "bar"},
			},
			wantError: "rule 0",
		},
		{
			name:  "empty_rules",
			rules: []Rule{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewEngine().ValidateRules(tt.rules)

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
		})
	}
}
