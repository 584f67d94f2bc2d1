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

package cpu

import (
	"bytes"
	"encoding/binary"
	stderrors "errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/NVIDIA/hostmetrics/pkg/hostfs"
)

// minTimesColumns is the number of counters every kernel reports on a cpu
// line of /proc/stat. Steal, guest and guest_nice are newer and optional.
const minTimesColumns = 7

// parseTimesLine parses one "cpu" or "cpuN" line of /proc/stat.
func parseTimesLine(source string, line []byte, core int) (Times, error) {
	fields := bytes.Fields(line)
	if len(fields) < 1+minTimesColumns {
		return Times{}, errors.Malformed(source, "cpu line has %d counters, want at least %d",
			len(fields)-1, minTimesColumns)
	}

	var vals [10]uint64
	for i, f := range fields[1:] {
		if i == len(vals) {
			break
		}
		v, ok := hostfs.ParseUint(f)
		if !ok {
			return Times{}, errors.Malformed(source, "cpu counter %d is not a number: %q", i+1, f)
		}
		vals[i] = v
	}

	return Times{
		Core:      core,
		User:      vals[0],
		Nice:      vals[1],
		System:    vals[2],
		Idle:      vals[3],
		IOWait:    vals[4],
		IRQ:       vals[5],
		SoftIRQ:   vals[6],
		Steal:     vals[7],
		Guest:     vals[8],
		GuestNice: vals[9],
	}, nil
}

// readTimes returns the aggregate times from the first line of path.
func readTimes(path string) (Times, error) {
	var (
		t     Times
		found bool
	)
	err := hostfs.ScanLines(path, func(line []byte) (bool, error) {
		if !hostfs.HasPrefix(line, "cpu ") {
			return true, nil
		}
		var err error
		t, err = parseTimesLine(path, line, Aggregate)
		found = err == nil
		return false, err
	})
	if err != nil {
		return Times{}, err
	}
	if !found {
		return Times{}, errors.Malformed(path, "no aggregate cpu line")
	}
	return t, nil
}

// readPerCoreTimes returns one Times per cpuN line of path. The cpu lines form
// a contiguous block at the top of the file, so the scan stops at the first
// line after it.
func readPerCoreTimes(path string) ([]Times, error) {
	var out []Times
	err := hostfs.ScanLines(path, func(line []byte) (bool, error) {
		if !hostfs.HasPrefix(line, "cpu") {
			return len(out) == 0, nil
		}
		if len(line) > 3 && line[3] == ' ' {
			return true, nil
		}

		name, _, _ := bytes.Cut(line, []byte{' '})
		core, ok := hostfs.ParseUint(name[3:])
		if !ok {
			return false, errors.Malformed(path, "bad cpu line label %q", name)
		}

		t, err := parseTimesLine(path, line, int(core))
		if err != nil {
			return false, err
		}
		out = append(out, t)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// readStats returns the intr, ctxt and softirq totals of path.
func readStats(path string) (Stats, error) {
	var (
		s    Stats
		seen int
	)
	err := hostfs.ScanLines(path, func(line []byte) (bool, error) {
		var dst *uint64
		switch {
		case hostfs.HasPrefix(line, "intr"):
			dst = &s.Interrupts
		case hostfs.HasPrefix(line, "ctxt"):
			dst = &s.ContextSwitches
		case hostfs.HasPrefix(line, "soft"):
			dst = &s.SoftInterrupts
		default:
			return true, nil
		}

		fields := bytes.Fields(line)
		if len(fields) < 2 {
			return false, errors.Malformed(path, "%s line has no counter", fields[0])
		}
		v, ok := hostfs.ParseUint(fields[1])
		if !ok {
			return false, errors.Malformed(path, "%s counter is not a number: %q", fields[0], fields[1])
		}
		*dst = v
		seen++
		return seen < 3, nil
	})
	if err != nil {
		return Stats{}, err
	}
	if seen < 3 {
		return Stats{}, errors.Malformed(path, "missing intr, ctxt or softirq line")
	}
	return s, nil
}

// cpuinfoValue returns the value of the first "key : value" line of path
// whose key is key and whose value parse accepts.
func cpuinfoValue[T any](path, key string, parse func(string) (T, error)) (T, error) {
	var (
		out   T
		found bool
	)
	err := hostfs.ScanLines(path, func(line []byte) (bool, error) {
		if !hostfs.HasPrefix(line, key) {
			return true, nil
		}
		k, v, ok := bytes.Cut(line, []byte{':'})
		if !ok || string(bytes.TrimSpace(k)) != key {
			return true, nil
		}
		val, err := parse(string(bytes.TrimSpace(v)))
		if err != nil {
			slog.Debug("skipping unparsable cpuinfo value", "key", key, "value", string(v))
			return true, nil
		}
		out, found = val, true
		return false, nil
	})
	if err != nil {
		return out, err
	}
	if !found {
		return out, errors.NewWithContext(errors.ErrCodeNotFound, "no "+key+" entry", map[string]any{
			"path": path,
			"key":  key,
		})
	}
	return out, nil
}

// readFrequency returns the first "cpu MHz" value of path.
func readFrequency(path string) (float64, error) {
	return cpuinfoValue(path, "cpu MHz", func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// readCoresPerPackage returns the first "cpu cores" value of path.
func readCoresPerPackage(path string) (int, error) {
	return cpuinfoValue(path, "cpu cores", strconv.Atoi)
}

// countTopologyCores counts distinct (physical_package_id, core_id) pairs
// below the sysfs cpu directory.
func countTopologyCores(cpuDir string) (int, error) {
	ids, err := filepath.Glob(filepath.Join(cpuDir, "cpu[0-9]*", "topology", "core_id"))
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, "invalid topology pattern", err)
	}
	if len(ids) == 0 {
		return 0, errors.NewWithContext(errors.ErrCodeNotFound, "no cpu topology", map[string]any{
			"path": cpuDir,
		})
	}

	pairs := make(map[string]struct{}, len(ids))
	for _, coreFile := range ids {
		core, err := hostfs.ReadTrimmed(coreFile)
		if err != nil {
			return 0, err
		}
		pkg, err := hostfs.ReadTrimmed(filepath.Join(filepath.Dir(coreFile), "physical_package_id"))
		if err != nil {
			if !stderrors.Is(err, fs.ErrNotExist) {
				return 0, err
			}
			pkg = "0"
		}
		pairs[pkg+":"+core] = struct{}{}
	}
	return len(pairs), nil
}

// parseLoadavg decodes a darwin struct loadavg: three 32-bit fixed-point
// averages followed by the 64-bit scale, naturally aligned.
func parseLoadavg(b []byte) (LoadAvg, error) {
	if len(b) < 24 {
		return LoadAvg{}, errors.Malformed("vm.loadavg", "got %d bytes, want 24", len(b))
	}
	scale := float64(binary.LittleEndian.Uint64(b[16:24]))
	if scale == 0 {
		return LoadAvg{}, errors.Malformed("vm.loadavg", "zero fixed-point scale")
	}
	return LoadAvg{
		One:     float64(binary.LittleEndian.Uint32(b[0:4])) / scale,
		Five:    float64(binary.LittleEndian.Uint32(b[4:8])) / scale,
		Fifteen: float64(binary.LittleEndian.Uint32(b[8:12])) / scale,
	}, nil
}

// fromSysinfoLoads converts sysinfo(2) loads, fixed point with 16 fractional
// bits.
func fromSysinfoLoads(one, five, fifteen uint64) LoadAvg {
	const shift = 1 << 16
	return LoadAvg{
		One:     float64(one) / shift,
		Five:    float64(five) / shift,
		Fifteen: float64(fifteen) / shift,
	}
}

func validLogicalCount(n int64, source string) (int, bool) {
	if n < 1 {
		slog.Debug("discarding logical cpu count", "source", source, "count", n)
		return 0, false
	}
	return int(n), true
}
