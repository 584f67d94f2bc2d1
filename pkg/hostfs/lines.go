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

package hostfs

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/NVIDIA/hostmetrics/pkg/defaults"
	"github.com/NVIDIA/hostmetrics/pkg/errors"
)

// LineFunc receives one line without its trailing newline. The slice aliases a
// buffer that is reused for the next line, so it must not be retained.
// Returning more=false stops the scan without error.
type LineFunc func(line []byte) (more bool, err error)

// ScanLines streams the file at path line by line into fn.
// Open and read failures are returned as ErrCodeIO errors wrapping the
// original *fs.PathError. Errors returned by fn pass through unchanged.
func ScanLines(path string, fn LineFunc) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.IO(path, err)
	}
	defer f.Close()

	return Scan(path, f, fn)
}

// Scan streams r line by line into fn. A single buffer backs every line; lines
// longer than the buffer are assembled in a second buffer that is also reused.
// source names r in errors.
func Scan(source string, r io.Reader, fn LineFunc) error {
	br := bufio.NewReaderSize(r, defaults.LineBufferSize)
	var long []byte

	for {
		chunk, err := br.ReadSlice('\n')
		if err == bufio.ErrBufferFull {
			if len(long)+len(chunk) > defaults.MaxLineSize {
				return errors.Malformed(source, "line exceeds %d bytes", defaults.MaxLineSize)
			}
			long = append(long, chunk...)
			continue
		}

		if err != nil && err != io.EOF {
			return errors.IO(source, err)
		}

		line := chunk
		if len(long) > 0 {
			long = append(long, chunk...)
			line = long
		}

		if len(line) > 0 {
			more, ferr := fn(bytes.TrimSuffix(line, []byte{'\n'}))
			long = long[:0]
			if ferr != nil {
				return ferr
			}
			if !more {
				return nil
			}
		}

		if err == io.EOF {
			return nil
		}
	}
}

// ReadTrimmed reads a small single-value file such as /etc/machine-id and
// trims surrounding whitespace.
func ReadTrimmed(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.IO(path, err)
	}
	return strings.TrimSpace(string(b)), nil
}

// ParseUint parses a decimal unsigned integer without allocating.
func ParseUint(b []byte) (uint64, bool) {
	if len(b) == 0 {
		return 0, false
	}
	var n uint64
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		d := uint64(c - '0')
		if n > (^uint64(0)-d)/10 {
			return 0, false
		}
		n = n*10 + d
	}
	return n, true
}

// HasPrefix reports whether line starts with prefix. It is the cheap
// classification step run before a line is split.
func HasPrefix(line []byte, prefix string) bool {
	return len(line) >= len(prefix) && string(line[:len(prefix)]) == prefix
}
