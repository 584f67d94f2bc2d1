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

// Package version parses dotted release strings such as kernel releases
// ("6.8.0-1028-aws") and build versions ("v1.2.3").
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Error types for version parsing failures
var (
	ErrEmptyVersion      = errors.New("version string is empty")
	ErrTooManyComponents = errors.New("version has more than 3 components")
	ErrNonNumeric        = errors.New("version component is not numeric")
)

// Version is a release number with up to three significant components.
type Version struct {
	Major int `json:"major" yaml:"major"`
	Minor int `json:"minor,omitempty" yaml:"minor,omitempty"`
	Patch int `json:"patch,omitempty" yaml:"patch,omitempty"`

	// Precision indicates how many components are significant (1, 2, or 3)
	Precision int `json:"precision,omitempty" yaml:"precision,omitempty"`

	// Extras stores the distribution suffix like "-1028-aws" or "+"
	Extras string `json:"extras,omitempty" yaml:"extras,omitempty"`
}

// String returns the significant components without extras.
func (v Version) String() string {
	switch v.Precision {
	case 1:
		return strconv.Itoa(v.Major)
	case 2:
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	default:
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
}

// ParseVersion parses "1", "1.2" or "1.2.3" with an optional "v" prefix.
// Anything after a '-' or '+' that follows a digit is kept as Extras.
func ParseVersion(s string) (Version, error) {
	if s == "" {
		return Version{}, ErrEmptyVersion
	}
	s = strings.TrimPrefix(s, "v")

	var v Version
	main := s
	for i := 1; i < len(s); i++ {
		if (s[i] == '-' || s[i] == '+') && isDigit(s[i-1]) {
			main, v.Extras = s[:i], s[i:]
			break
		}
	}

	parts := strings.Split(main, ".")
	if len(parts) > 3 {
		return Version{}, ErrTooManyComponents
	}
	if err := v.setComponents(parts); err != nil {
		return Version{}, err
	}
	return v, nil
}

// ParseKernel parses a kernel release as reported by uname. The release
// starts with a dotted numeric run; everything after it, including any
// fourth numeric component ("2.6.32.54-0.3-default"), becomes Extras.
func ParseKernel(release string) (Version, error) {
	release = strings.TrimSpace(release)
	if release == "" {
		return Version{}, ErrEmptyVersion
	}

	end := 0
	dots := 0
	for end < len(release) {
		c := release[end]
		if c == '.' {
			if dots == 2 || end+1 >= len(release) || !isDigit(release[end+1]) {
				break
			}
			dots++
		} else if !isDigit(c) {
			break
		}
		end++
	}
	if end == 0 {
		return Version{}, fmt.Errorf("%w: %q", ErrNonNumeric, release)
	}

	v := Version{Extras: release[end:]}
	if err := v.setComponents(strings.Split(release[:end], ".")); err != nil {
		return Version{}, err
	}
	return v, nil
}

func (v *Version) setComponents(parts []string) error {
	for i, part := range parts {
		if part == "" {
			return fmt.Errorf("%w: empty component", ErrNonNumeric)
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 {
			return fmt.Errorf("%w: %q", ErrNonNumeric, part)
		}
		switch i {
		case 0:
			v.Major = num
		case 1:
			v.Minor = num
		case 2:
			v.Patch = num
		}
	}
	v.Precision = len(parts)
	return nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Compare returns -1, 0 or 1 comparing v to other over the components both
// of them carry.
func (v Version) Compare(other Version) int {
	precision := min(v.Precision, other.Precision)

	pairs := [3][2]int{{v.Major, other.Major}, {v.Minor, other.Minor}, {v.Patch, other.Patch}}
	for i := 0; i < precision && i < len(pairs); i++ {
		switch {
		case pairs[i][0] < pairs[i][1]:
			return -1
		case pairs[i][0] > pairs[i][1]:
			return 1
		}
	}
	return 0
}

// AtLeast reports whether v is the same as or newer than other.
func (v Version) AtLeast(other Version) bool {
	return v.Compare(other) >= 0
}
