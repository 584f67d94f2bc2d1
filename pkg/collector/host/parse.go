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

package host

import (
	"bytes"
	"encoding/binary"
	stderrors "errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/google/uuid"

	"github.com/NVIDIA/hostmetrics/pkg/collector/file"
	"github.com/NVIDIA/hostmetrics/pkg/defaults"
	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/NVIDIA/hostmetrics/pkg/hostfs"
)

// readOSVersion returns PRETTY_NAME from the first os-release file that
// exists, or NAME and VERSION_ID when PRETTY_NAME is absent.
func readOSVersion(paths ...string) (string, error) {
	parser := file.NewParser(
		file.WithKVDelimiter("="),
		file.WithVTrimChars(`"'`),
		file.WithSkipEmptyValues(true),
	)

	var lastErr error
	for _, path := range paths {
		params, err := parser.GetMap(path)
		if err != nil {
			slog.Debug("os-release unavailable", "path", path, "error", err)
			lastErr = err
			continue
		}
		if v := params["PRETTY_NAME"]; v != "" {
			return v, nil
		}
		if name := params["NAME"]; name != "" {
			if ver := params["VERSION_ID"]; ver != "" {
				return name + " " + ver, nil
			}
			return name, nil
		}
		return "", errors.NewWithContext(errors.ErrCodeNotFound, "os-release has no PRETTY_NAME or NAME", map[string]any{
			"path": path,
		})
	}
	return "", lastErr
}

// readMachineID returns the trimmed content of the first path holding a
// valid machine id. Missing, empty and unparsable files fall through to the
// next path.
func readMachineID(paths ...string) (string, error) {
	var lastErr error
	for _, path := range paths {
		id, err := hostfs.ReadTrimmed(path)
		if err != nil {
			slog.Debug("machine id unavailable", "path", path, "error", err)
			lastErr = err
			continue
		}
		if id == "" || id == "uninitialized" {
			lastErr = errors.NewWithContext(errors.ErrCodeNotFound, "machine id not initialized", map[string]any{
				"path": path,
			})
			continue
		}
		if err := validateUUID(path, id); err != nil {
			slog.Debug("machine id rejected", "path", path, "error", err)
			lastErr = err
			continue
		}
		return id, nil
	}
	return "", lastErr
}

// validateUUID reports a malformed record when id does not parse as a UUID.
// The id itself is reported as read.
func validateUUID(source, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.Malformed(source, "not a uuid: %q", id)
	}
	return nil
}

// readUIDRange returns UID_MIN and UID_MAX from login.defs. A missing file or
// key yields the default bound.
func readUIDRange(path string) (lo, hi uint32, err error) {
	lo, hi = defaults.UIDMin, defaults.UIDMax

	params, err := file.NewParser(file.WithKVDelimiter("")).GetMap(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			slog.Debug("login.defs not found, using default uid range", "path", path)
			return lo, hi, nil
		}
		return 0, 0, err
	}

	parse := func(key string, def uint32) (uint32, error) {
		v, ok := params[key]
		if !ok {
			return def, nil
		}
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return 0, errors.Malformed(path, "%s is not a number: %q", key, v)
		}
		return uint32(n), nil
	}

	if lo, err = parse("UID_MIN", lo); err != nil {
		return 0, 0, err
	}
	if hi, err = parse("UID_MAX", hi); err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

const passwdFields = 7

// readPasswdUsers returns the passwd accounts whose UID lies in [lo, hi].
func readPasswdUsers(path string, lo, hi uint32) ([]User, error) {
	records, err := file.NewParser(file.WithFieldDelimiter(":")).GetRecords(path)
	if err != nil {
		return nil, err
	}

	var out []User
	for _, r := range records {
		if len(r) < passwdFields {
			return nil, errors.Malformed(path, "passwd entry has %d fields, want %d", len(r), passwdFields)
		}
		uid, err := strconv.ParseUint(r[2], 10, 32)
		if err != nil {
			return nil, errors.Malformed(path, "uid of %s is not a number: %q", r[0], r[2])
		}
		if uint32(uid) < lo || uint32(uid) > hi {
			continue
		}
		out = append(out, User{Name: r[0], UID: uint32(uid), Home: r[5], Shell: r[6]})
	}
	return out, nil
}

// glibc struct utmp layout.
const (
	utmpRecordSize  = 384
	utmpUserOffset  = 44
	utmpUserSize    = 32
	utmpUserProcess = 7
)

// parseUtmp returns the user names of USER_PROCESS records in r.
func parseUtmp(source string, r io.Reader) ([]string, error) {
	var (
		names []string
		rec   [utmpRecordSize]byte
	)
	for {
		_, err := io.ReadFull(r, rec[:])
		if err == io.EOF {
			return names, nil
		}
		if err == io.ErrUnexpectedEOF {
			return nil, errors.Malformed(source, "truncated utmp record after %d names", len(names))
		}
		if err != nil {
			return nil, errors.IO(source, err)
		}

		typ := int16(binary.NativeEndian.Uint16(rec[:2]))
		user := rec[utmpUserOffset : utmpUserOffset+utmpUserSize]
		if typ != utmpUserProcess || user[0] == 0 {
			continue
		}
		if i := bytes.IndexByte(user, 0); i >= 0 {
			user = user[:i]
		}
		names = append(names, string(user))
	}
}

func readUtmp(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.IO(path, err)
	}
	defer f.Close()

	return parseUtmp(path, f)
}

// dedupe keeps the first occurrence of each name.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
