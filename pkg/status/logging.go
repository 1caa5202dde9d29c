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

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	kindWidth   = 10 // Width for the output kind
	statusWidth = 10 // Width for status text
)

// 🎯 FormatFileOperation formats a file operation as an aligned, colored
// console row: symbol, path, kind ("replace", "part 2") and status.
func FormatFileOperation(path, kind string, status FileStatus) string {
	var prefix string
	switch status {
	case StatusNew:
		prefix = color.GreenString("✓")
	case StatusModified:
		prefix = color.YellowString("⟳")
	case StatusDeleted:
		prefix = color.RedString("✗")
	case StatusFailed:
		prefix = color.RedString("!")
	default:
		prefix = color.HiBlackString("-")
	}

	namePart := fmt.Sprintf("%-*s", nameWidth, path)
	kindPart := fmt.Sprintf("%-*s", kindWidth, kind)
	statusPart := fmt.Sprintf("%-*s", statusWidth, status.String())

	return fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		namePart,
		kindPart,
		statusPart,
	)
}

// ConsoleFormatter renders Manager messages as colored table rows
type ConsoleFormatter struct {
	DefaultFileFormatter

	// Kind is printed in the kind column of every row
	Kind string
}

// NewConsoleFormatter creates a ConsoleFormatter for outputs of the given kind
func NewConsoleFormatter(kind string) *ConsoleFormatter {
	return &ConsoleFormatter{Kind: kind}
}

// FormatFileOperation implements FileFormatter
func (f *ConsoleFormatter) FormatFileOperation(path string, status FileStatus) string {
	return FormatFileOperation(path, f.Kind, status)
}

// FormatError implements FileFormatter
func (f *ConsoleFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s%s %v", strings.Repeat(" ", fileIndent), color.RedString("✗"), err)
}
