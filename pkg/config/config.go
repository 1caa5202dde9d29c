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
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/proserc/pkg/status"
	"github.com/walteh/proserc/pkg/text"
)

const (
	// DefaultModeName is the mode that always exists
	DefaultModeName = "default"

	// DefaultPath is where settings are read from when no path is given
	DefaultPath = ".proserc.json"
)

var (
	ErrModeNotFound      = errors.Base("mode not found")
	ErrModeExists        = errors.Base("mode already exists")
	ErrDefaultMode       = errors.Base("the default mode cannot be renamed or deleted")
	ErrUnsupportedFormat = errors.Base("unsupported settings format")
	ErrInvalidModeName   = errors.Base("invalid mode name")
)

// 🔌 Parser is the interface for settings parsers
type Parser interface {
	// 📝 Parse parses the settings from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

// 💾 Encoder is implemented by parsers whose format can also be written
type Encoder interface {
	Encode(ctx context.Context, cfg *Config) ([]byte, error)
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// GetEncoder returns an encoder for the given file, or nil when its format
// is read-only or unknown
func GetEncoder(filename string) Encoder {
	if e, ok := GetParser(filename).(Encoder); ok {
		return e
	}
	return nil
}

// 🔄 Mode is a named rule list with its own matching flags
type Mode struct {
	Rules     []text.Rule `json:"pairs" yaml:"pairs"`
	MatchCase bool        `json:"matchCase" yaml:"match_case"`
	WholeWord bool        `json:"wholeWord" yaml:"whole_word"`
}

// Options returns the engine options for this mode
func (m *Mode) Options() text.Options {
	return text.Options{
		CaseSensitive: m.MatchCase,
		WholeWord:     m.WholeWord,
	}
}

// Clone returns a deep copy of m
func (m *Mode) Clone() *Mode {
	out := *m
	out.Rules = append([]text.Rule(nil), m.Rules...)
	return &out
}

// 📚 Config holds every mode and the name of the active one
type Config struct {
	CurrentMode string           `json:"currentMode" yaml:"current_mode" validate:"required,modename"`
	Modes       map[string]*Mode `json:"modes" yaml:"modes" validate:"required,dive,keys,modename,endkeys,required"`

	location string
}

// 🏭 Default returns the settings used when no file exists yet
func Default() *Config {
	return &Config{
		CurrentMode: DefaultModeName,
		Modes: map[string]*Mode{
			DefaultModeName: {Rules: []text.Rule{}},
		},
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("modename", func(fl validator.FieldLevel) bool {
		return ValidModeName(fl.Field().String())
	})
	return v
}

// ValidModeName reports whether name can be used as a mode name
func ValidModeName(name string) bool {
	return strings.TrimSpace(name) != "" && !strings.ContainsAny(name, "\r\n")
}

// 🎯 Load loads settings from path. A missing file yields Default() bound to
// path, so the first Save creates it.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	if path == "" {
		path = DefaultPath
	}
	logger.Debug().Str("path", path).Msg("loading settings")

	cfg, err := read(ctx, path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug().Str("path", path).Msg("settings file not found, using defaults")
		cfg = Default()
	} else if err != nil {
		return nil, err
	}

	cfg.location = path
	return cfg, nil
}

// 📥 Import reads settings from any supported file. Unlike Load, the file
// must exist.
func Import(ctx context.Context, path string) (*Config, error) {
	cfg, err := read(ctx, path)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().Str("path", path).Int("modes", len(cfg.Modes)).Msg("imported settings")
	return cfg, nil
}

func read(ctx context.Context, path string) (*Config, error) {
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading settings file: %w", err)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing settings: %w", err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating settings: %w", err)
	}

	return cfg, nil
}

// 💾 Save writes the settings back to the file they were loaded from
func (cfg *Config) Save(ctx context.Context) error {
	return cfg.Export(ctx, cfg.location)
}

// 📤 Export writes the settings to path in the format its extension names.
// Rules with an empty find are dropped first.
func (cfg *Config) Export(ctx context.Context, path string) error {
	data, err := cfg.Encode(ctx, path)
	if err != nil {
		return err
	}
	if err := status.WriteFileAtomic(path, data, 0644); err != nil {
		return errors.Errorf("writing settings: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("saved settings")
	return nil
}

// Encode renders the settings in the format of filename without writing them
func (cfg *Config) Encode(ctx context.Context, filename string) ([]byte, error) {
	enc := GetEncoder(filename)
	if enc == nil {
		return nil, errors.Errorf("%w: cannot write %s", ErrUnsupportedFormat, filepath.Base(filename))
	}

	cfg.Prune()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating settings: %w", err)
	}

	data, err := enc.Encode(ctx, cfg)
	if err != nil {
		return nil, errors.Errorf("encoding settings: %w", err)
	}
	return data, nil
}

// Location returns the file the settings are bound to
func (cfg *Config) Location() string {
	return cfg.location
}

// SetLocation binds the settings to a file for Save
func (cfg *Config) SetLocation(path string) {
	cfg.location = path
}

// 🔧 Normalize fills in what a hand-written or imported file may lack: the
// default mode always exists and the current mode always names a real mode.
func (cfg *Config) Normalize() {
	if cfg.Modes == nil {
		cfg.Modes = map[string]*Mode{}
	}
	for name, mode := range cfg.Modes {
		if mode == nil {
			cfg.Modes[name] = &Mode{}
		}
	}
	if _, ok := cfg.Modes[DefaultModeName]; !ok {
		cfg.Modes[DefaultModeName] = &Mode{}
	}
	if _, ok := cfg.Modes[cfg.CurrentMode]; !ok {
		cfg.CurrentMode = DefaultModeName
	}
	for _, mode := range cfg.Modes {
		if mode.Rules == nil {
			mode.Rules = []text.Rule{}
		}
	}
}

// Prune drops rules whose find is blank. Replacements are kept verbatim.
func (cfg *Config) Prune() {
	for _, mode := range cfg.Modes {
		kept := make([]text.Rule, 0, len(mode.Rules))
		for _, r := range mode.Rules {
			if r.Eligible() {
				kept = append(kept, r)
			}
		}
		mode.Rules = kept
	}
}

// 🔍 Validate checks the settings against their struct rules
func (cfg *Config) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		return errors.Errorf("invalid settings: %w", err)
	}
	return nil
}

// ModeNames returns every mode name, sorted
func (cfg *Config) ModeNames() []string {
	names := make([]string, 0, len(cfg.Modes))
	for name := range cfg.Modes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
