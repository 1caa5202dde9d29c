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

package log

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback for CLI commands
type UserLogger struct {
	log    zerolog.Logger // for debug/error logging
	writer io.Writer
}

// 🎨 FileChangeType represents the type of change made to a file
type FileChangeType int

const (
	FileAdded FileChangeType = iota
	FileUpdated
	FileUnchanged
	FileSkipped
	FileRemoved
	FileError
)

// 🖼️ FileChange represents a change to a file
type FileChange struct {
	Type        FileChangeType
	Path        string
	Description string
	Error       error
}

// 🎯 NewUserLogger creates a new user logger that prints to stdout
func NewUserLogger(ctx context.Context) *UserLogger {
	return NewUserLoggerTo(ctx, os.Stdout)
}

// NewUserLoggerTo creates a user logger that prints to w
func NewUserLoggerTo(ctx context.Context, w io.Writer) *UserLogger {
	return &UserLogger{
		log:    *zerolog.Ctx(ctx),
		writer: w,
	}
}

func (u *UserLogger) printer(base pterm.PrefixPrinter, prefix string) *pterm.PrefixPrinter {
	return base.WithPrefix(pterm.Prefix{Text: prefix, Style: base.Prefix.Style}).WithWriter(u.writer)
}

// 📝 LogFileChange logs a file change with appropriate emoji and formatting
func (u *UserLogger) LogFileChange(change FileChange) {
	var action string
	var printer *pterm.PrefixPrinter
	switch change.Type {
	case FileAdded:
		action = "Created"
		printer = u.printer(pterm.Success, "✨")
	case FileUpdated:
		action = "Updated"
		printer = u.printer(pterm.Info, "🔄")
	case FileUnchanged:
		action = "Unchanged"
		printer = u.printer(pterm.Info, "👍")
	case FileSkipped:
		action = "Skipped"
		printer = u.printer(pterm.Debug, "⏭️")
	case FileRemoved:
		action = "Removed"
		printer = u.printer(pterm.Info, "🗑️")
	default:
		action = "Error"
		printer = u.printer(pterm.Error, "❌")
	}

	msg := fmt.Sprintf("%s %s", action, change.Path)
	if change.Description != "" {
		msg += fmt.Sprintf(" (%s)", change.Description)
	}

	printer.Println(msg)
	if change.Error != nil {
		u.printer(pterm.Error, "ERROR").Println(change.Error)
		u.log.Error().Err(change.Error).Msg(msg)
		return
	}
	u.log.Info().Msg(msg)
}

// 📊 LogModeChange logs a change to the saved modes
func (u *UserLogger) LogModeChange(description string) {
	u.printer(pterm.Info, "📦").Println(description)
	u.log.Info().Msg(description)
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	switch {
	case valid:
		u.printer(pterm.Success, "✅").Println(description)
		u.log.Info().Msg(description)
	case err != nil:
		u.printer(pterm.Error, "❌").Println(description)
		u.printer(pterm.Error, "ERROR").Println(err)
		u.log.Error().Err(err).Msg(description)
	default:
		u.printer(pterm.Warning, "⚠️").Println(description)
		u.log.Warn().Msg(description)
	}
}

// 📈 LogCount logs the outcome of a replace pass
func (u *UserLogger) LogCount(name string, replacements int) {
	msg := fmt.Sprintf("%s: %d replacements", name, replacements)
	if replacements == 0 {
		u.printer(pterm.Info, "🔎").Println(msg)
	} else {
		u.printer(pterm.Success, "✍️").Println(msg)
	}
	u.log.Info().Str("input", name).Int("replacements", replacements).Msg("replace complete")
}
