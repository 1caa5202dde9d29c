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
	"github.com/caarlos0/env/v10"
	"gitlab.com/tozd/go/errors"
)

// ⚙️ Settings are the process-level defaults read from the environment.
// Command line flags take precedence over every field.
type Settings struct {
	ConfigPath string `env:"PROSERC_CONFIG" envDefault:".proserc.json"`
	Mode       string `env:"PROSERC_MODE"`
	Debug      bool   `env:"PROSERC_DEBUG"`
	Parts      int    `env:"PROSERC_PARTS" envDefault:"2" validate:"min=1"`
	Async      bool   `env:"PROSERC_ASYNC"`
}

// LoadSettings reads Settings from the process environment
func LoadSettings() (Settings, error) {
	return parseSettings(env.Options{})
}

// LoadSettingsFrom reads Settings from the given variables instead of the
// process environment
func LoadSettingsFrom(environ map[string]string) (Settings, error) {
	return parseSettings(env.Options{Environment: environ})
}

func parseSettings(opts env.Options) (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, opts); err != nil {
		return Settings{}, errors.Errorf("parsing environment: %w", err)
	}
	if err := validate.Struct(s); err != nil {
		return Settings{}, errors.Errorf("invalid environment: %w", err)
	}
	return s, nil
}
