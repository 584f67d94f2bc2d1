// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package file

import (
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/NVIDIA/hostmetrics/pkg/defaults"
	"github.com/NVIDIA/hostmetrics/pkg/errors"
)

// Option configures a Parser.
type Option func(*Parser)

// Parser reads small host configuration files (os-release, login.defs,
// passwd) into maps or field records.
type Parser struct {
	maxSize         int
	skipComments    bool
	kvDelimiter     string
	fieldDelimiter  string
	vTrimChars      string
	skipEmptyValues bool
}

// WithMaxSize caps the file size in bytes. Default is defaults.MaxLineSize.
func WithMaxSize(size int) Option {
	return func(p *Parser) {
		p.maxSize = size
	}
}

// WithSkipComments drops lines starting with '#'. Default is true.
func WithSkipComments(skip bool) Option {
	return func(p *Parser) {
		p.skipComments = skip
	}
}

// WithKVDelimiter sets the key-value separator used by GetMap.
// An empty delimiter splits on the first run of whitespace, as in login.defs.
// Default is "=".
func WithKVDelimiter(kvDelim string) Option {
	return func(p *Parser) {
		p.kvDelimiter = kvDelim
	}
}

// WithFieldDelimiter sets the separator used by GetRecords. Default is ":".
func WithFieldDelimiter(delim string) Option {
	return func(p *Parser) {
		p.fieldDelimiter = delim
	}
}

// WithVTrimChars sets characters trimmed from both ends of each value.
func WithVTrimChars(trimChars string) Option {
	return func(p *Parser) {
		p.vTrimChars = trimChars
	}
}

// WithSkipEmptyValues drops keys whose value is empty or absent.
func WithSkipEmptyValues(skip bool) Option {
	return func(p *Parser) {
		p.skipEmptyValues = skip
	}
}

// NewParser creates a parser with the provided options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		maxSize:        defaults.MaxLineSize,
		skipComments:   true,
		kvDelimiter:    "=",
		fieldDelimiter: ":",
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetMap parses the file at path into key-value pairs. The last occurrence of
// a key wins.
func (p *Parser) GetMap(path string) (map[string]string, error) {
	lines, err := p.GetLines(path)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(lines))
	for _, line := range lines {
		key, value, ok := p.splitKV(line)
		if !ok {
			if p.skipEmptyValues {
				slog.Debug("skipping key without value", "path", path, "key", key)
				continue
			}
			result[key] = ""
			continue
		}

		if p.vTrimChars != "" {
			value = strings.Trim(value, p.vTrimChars)
		}

		if p.skipEmptyValues && value == "" {
			slog.Debug("skipping empty value", "path", path, "key", key)
			continue
		}

		result[key] = value
	}

	return result, nil
}

func (p *Parser) splitKV(line string) (string, string, bool) {
	if p.kvDelimiter == "" {
		i := strings.IndexAny(line, " \t")
		if i < 0 {
			return line, "", false
		}
		return line[:i], strings.TrimSpace(line[i:]), true
	}

	key, value, ok := strings.Cut(line, p.kvDelimiter)
	return strings.TrimSpace(key), strings.TrimSpace(value), ok
}

// GetRecords splits every line of the file at path on the field delimiter.
// Records keep empty fields so column positions stay stable.
func (p *Parser) GetRecords(path string) ([][]string, error) {
	lines, err := p.GetLines(path)
	if err != nil {
		return nil, err
	}

	records := make([][]string, 0, len(lines))
	for _, line := range lines {
		records = append(records, strings.Split(line, p.fieldDelimiter))
	}
	return records, nil
}

// GetLines returns the trimmed non-empty lines of the file at path.
func (p *Parser) GetLines(path string) ([]string, error) {
	if path == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "file path cannot be empty")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IO(path, err)
	}

	if len(b) > p.maxSize {
		return nil, errors.Malformed(path, "file exceeds maximum size of %d bytes", p.maxSize)
	}

	if !utf8.Valid(b) {
		return nil, errors.Malformed(path, "content is not valid UTF-8")
	}

	parts := strings.Split(string(b), "\n")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		line := strings.TrimSpace(part)
		if line == "" {
			continue
		}
		if p.skipComments && strings.HasPrefix(line, "#") {
			continue
		}
		result = append(result, line)
	}

	return result, nil
}
