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

package config

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/proserc/pkg/text"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files. HCL settings
// are hand-written, so there is no encoder.
//
//	current_mode = "novel"
//
//	mode "novel" {
//	  whole_word = true
//
//	  pair {
//	    find    = "..."
//	    replace = ellipsis
//	  }
//	}
//
// The variables nbsp and ellipsis are available in expressions.
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// 📝 Parse parses the settings from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "settings.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"nbsp":     cty.StringVal("\u00a0"),
			"ellipsis": cty.StringVal("\u2026"),
		},
	}

	type hclPair struct {
		Find    string `hcl:"find"`
		Replace string `hcl:"replace,optional"`
	}
	type hclMode struct {
		Name      string    `hcl:"name,label"`
		MatchCase bool      `hcl:"match_case,optional"`
		WholeWord bool      `hcl:"whole_word,optional"`
		Pairs     []hclPair `hcl:"pair,block"`
	}
	type hclConfig struct {
		CurrentMode string    `hcl:"current_mode,optional"`
		Modes       []hclMode `hcl:"mode,block"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		CurrentMode: hclCfg.CurrentMode,
		Modes:       make(map[string]*Mode, len(hclCfg.Modes)),
	}
	for _, m := range hclCfg.Modes {
		if _, dup := cfg.Modes[m.Name]; dup {
			return nil, errors.Errorf("%w: %q declared twice", ErrModeExists, m.Name)
		}
		mode := &Mode{
			Rules:     make([]text.Rule, 0, len(m.Pairs)),
			MatchCase: m.MatchCase,
			WholeWord: m.WholeWord,
		}
		for _, pair := range m.Pairs {
			mode.Rules = append(mode.Rules, text.Rule{Find: pair.Find, Replace: pair.Replace})
		}
		cfg.Modes[m.Name] = mode
	}

	return cfg, nil
}
