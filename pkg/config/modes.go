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
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/proserc/pkg/text"
)

// 🎯 Mode returns the mode with the given name
func (cfg *Config) Mode(name string) (*Mode, error) {
	mode, ok := cfg.Modes[name]
	if !ok {
		return nil, errors.Errorf("%w: %q", ErrModeNotFound, name)
	}
	return mode, nil
}

// Active returns the current mode. Normalize guarantees it exists.
func (cfg *Config) Active() *Mode {
	if mode, ok := cfg.Modes[cfg.CurrentMode]; ok {
		return mode
	}
	cfg.Normalize()
	return cfg.Modes[cfg.CurrentMode]
}

// Use switches the current mode
func (cfg *Config) Use(name string) error {
	if _, err := cfg.Mode(name); err != nil {
		return err
	}
	cfg.CurrentMode = name
	return nil
}

// ➕ AddMode creates an empty mode with both flags off and makes it current
func (cfg *Config) AddMode(name string) error {
	if err := cfg.checkFree(name); err != nil {
		return err
	}
	cfg.Modes[name] = &Mode{Rules: []text.Rule{}}
	cfg.CurrentMode = name
	return nil
}

// 📋 CopyMode stores a deep copy of the current mode under name and makes it
// current
func (cfg *Config) CopyMode(name string) error {
	if err := cfg.checkFree(name); err != nil {
		return err
	}
	cfg.Modes[name] = cfg.Active().Clone()
	cfg.CurrentMode = name
	return nil
}

// ✏️ RenameMode renames a mode. The default mode keeps its name.
func (cfg *Config) RenameMode(from, to string) error {
	if from == DefaultModeName {
		return errors.WithStack(ErrDefaultMode)
	}
	mode, err := cfg.Mode(from)
	if err != nil {
		return err
	}
	if from == to {
		return nil
	}
	if err := cfg.checkFree(to); err != nil {
		return err
	}

	cfg.Modes[to] = mode
	delete(cfg.Modes, from)
	if cfg.CurrentMode == from {
		cfg.CurrentMode = to
	}
	return nil
}

// 🗑️ DeleteMode removes a mode. If it was current, default becomes current.
func (cfg *Config) DeleteMode(name string) error {
	if name == DefaultModeName {
		return errors.WithStack(ErrDefaultMode)
	}
	if _, err := cfg.Mode(name); err != nil {
		return err
	}

	delete(cfg.Modes, name)
	if cfg.CurrentMode == name {
		cfg.CurrentMode = DefaultModeName
	}
	return nil
}

// ModeFlags holds optional flag updates; nil leaves a flag as it is
type ModeFlags struct {
	MatchCase *bool
	WholeWord *bool
}

// SetFlags updates the flags of the named mode
func (cfg *Config) SetFlags(name string, flags ModeFlags) error {
	mode, err := cfg.Mode(name)
	if err != nil {
		return err
	}
	if flags.MatchCase != nil {
		mode.MatchCase = *flags.MatchCase
	}
	if flags.WholeWord != nil {
		mode.WholeWord = *flags.WholeWord
	}
	return nil
}

// AddRule appends a rule to the named mode. A blank find is rejected here
// rather than silently pruned on save.
func (cfg *Config) AddRule(name string, rule text.Rule) error {
	mode, err := cfg.Mode(name)
	if err != nil {
		return err
	}
	if !rule.Eligible() {
		return errors.New("find is required")
	}
	mode.Rules = append(mode.Rules, rule)
	return nil
}

// RemoveRule deletes the rule at index from the named mode
func (cfg *Config) RemoveRule(name string, index int) error {
	mode, err := cfg.Mode(name)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(mode.Rules) {
		return errors.Errorf("rule index %d out of range (mode %q has %d rules)", index, name, len(mode.Rules))
	}
	mode.Rules = append(mode.Rules[:index], mode.Rules[index+1:]...)
	return nil
}

// 🔄 Replace swaps every mode for those of other, keeping this config's file
func (cfg *Config) Replace(other *Config) {
	cfg.CurrentMode = other.CurrentMode
	cfg.Modes = other.Modes
	cfg.Normalize()
}

func (cfg *Config) checkFree(name string) error {
	if !ValidModeName(name) {
		return errors.Errorf("%w: %q", ErrInvalidModeName, name)
	}
	if _, ok := cfg.Modes[name]; ok {
		return errors.Errorf("%w: %q", ErrModeExists, name)
	}
	return nil
}
