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
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/proserc/pkg/text"
)

// utf8BOM lets spreadsheet applications detect the encoding
const utf8BOM = "\uFEFF"

var csvHeader = []string{"find", "replace", "mode"}

// 🔧 CSVParser implements the Parser and Encoder interfaces for the
// three-column find,replace,mode rule sheet. Flags do not survive a CSV
// round trip.
type CSVParser struct{}

func init() {
	Register(&CSVParser{})
}

func (p *CSVParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".csv")
}

// 📝 Parse groups rows by their mode column, keeping row order inside each
// mode. A missing or blank mode column means the default mode. The first
// mode seen becomes current.
func (p *CSVParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), utf8BOM)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	cfg := &Config{Modes: map[string]*Mode{}}
	for row := 0; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Errorf("parsing CSV: %w", err)
		}
		if row == 0 && isCSVHeader(record) {
			continue
		}
		if len(record) < 2 {
			line, _ := reader.FieldPos(0)
			return nil, errors.Errorf("parsing CSV: line %d: expected find,replace[,mode]", line)
		}

		name := DefaultModeName
		if len(record) > 2 && strings.TrimSpace(record[2]) != "" {
			name = strings.TrimSpace(record[2])
		}

		mode, ok := cfg.Modes[name]
		if !ok {
			mode = &Mode{Rules: []text.Rule{}}
			cfg.Modes[name] = mode
			if cfg.CurrentMode == "" {
				cfg.CurrentMode = name
			}
		}
		mode.Rules = append(mode.Rules, text.Rule{Find: record[0], Replace: record[1]})
	}

	return cfg, nil
}

// 💾 Encode writes a BOM, a header row and one fully quoted row per rule,
// modes in name order
func (p *CSVParser) Encode(ctx context.Context, cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	writeCSVRow(&buf, csvHeader...)
	for _, name := range cfg.ModeNames() {
		for _, rule := range cfg.Modes[name].Rules {
			writeCSVRow(&buf, rule.Find, rule.Replace, name)
		}
	}
	return buf.Bytes(), nil
}

// writeCSVRow writes fields as one row, every field quoted and embedded
// quotes doubled.
func writeCSVRow(buf *bytes.Buffer, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteString("\r\n")
}

func isCSVHeader(record []string) bool {
	return len(record) >= 2 &&
		strings.EqualFold(strings.TrimSpace(record[0]), csvHeader[0]) &&
		strings.EqualFold(strings.TrimSpace(record[1]), csvHeader[1])
}
