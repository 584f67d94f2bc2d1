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

package measurement

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Reading keys shared by collectors, the table serializer and the exporter.
const (
	// CPU
	KeyUser            = "user"
	KeyNice            = "nice"
	KeySystem          = "system"
	KeyIdle            = "idle"
	KeyIOWait          = "iowait"
	KeyIRQ             = "irq"
	KeySoftIRQ         = "softirq"
	KeySteal           = "steal"
	KeyGuest           = "guest"
	KeyGuestNice       = "guest_nice"
	KeyBusy            = "busy"
	KeyTotal           = "total"
	KeyInterrupts      = "interrupts"
	KeyContextSwitches = "context_switches"
	KeySoftInterrupts  = "soft_interrupts"
	KeyFrequencyMHz    = "frequency_mhz"
	KeyLogicalCount    = "logical_count"
	KeyPhysicalCount   = "physical_count"
	KeyLoad1           = "load1"
	KeyLoad5           = "load5"
	KeyLoad15          = "load15"

	// Memory and swap
	KeyFree    = "free"
	KeyUsed    = "used"
	KeyShared  = "shared"
	KeyBuffers = "buffers"
	KeyCached  = "cached"
	KeyEnabled = "enabled"

	// Disk
	KeyMountPoint = "mount_point"
	KeyFSType     = "fs_type"
	KeyAvail      = "avail"
	KeyReadCount  = "read_count"
	KeyReadBytes  = "read_bytes"
	KeyWriteCount = "write_count"
	KeyWriteBytes = "write_bytes"
	KeyBusyTimeMS = "busy_time_ms"

	// Network
	KeyRxBytes   = "rx_bytes"
	KeyRxPackets = "rx_packets"
	KeyRxErrs    = "rx_errs"
	KeyRxDrop    = "rx_drop"
	KeyTxBytes   = "tx_bytes"
	KeyTxPackets = "tx_packets"
	KeyTxErrs    = "tx_errs"
	KeyTxDrop    = "tx_drop"

	// Host
	KeyOSName      = "system"
	KeyOSVersion   = "os_version"
	KeyKernel      = "kernel_version"
	KeyKernelMajor = "kernel_major"
	KeyKernelMinor = "kernel_minor"
	KeyHostname    = "hostname"
	KeyUUID        = "uuid"
	KeyUptime      = "uptime_seconds"
	KeyUsers       = "users"
	KeyLoggedIn    = "logged_users"
	KeyVirtSystem  = "virtualization"
)

// Context keys attached to per-device subtypes.
const (
	ContextDevice    = "device"
	ContextInterface = "interface"
	ContextCore      = "core"
)

// Type represents the category of a measurement.
type Type string

// String returns the string representation of the measurement Type.
func (mt Type) String() string {
	return string(mt)
}

const (
	TypeCPU     Type = "CPU"
	TypeMemory  Type = "Memory"
	TypeDisk    Type = "Disk"
	TypeNetwork Type = "Network"
	TypeHost    Type = "Host"
)

// Types is the list of all supported measurement types.
var Types = []Type{
	TypeCPU,
	TypeMemory,
	TypeDisk,
	TypeNetwork,
	TypeHost,
}

// ParseType parses a string into a measurement Type.
// Matching ignores case, so "cpu" parses as TypeCPU.
// Returns the Type and true if parsing succeeds, or empty Type and false if the string is invalid.
func ParseType(s string) (Type, bool) {
	for _, mt := range Types {
		if strings.EqualFold(string(mt), s) {
			return mt, true
		}
	}
	return "", false
}

// Measurement represents collected data of a specific type with multiple subtypes.
// A CPU measurement for example carries an "aggregate" subtype plus one subtype
// per core.
type Measurement struct {
	Type     Type      `json:"type" yaml:"type"`
	Subtypes []Subtype `json:"subtypes,omitempty" yaml:"subtypes,omitempty"`
}

// Subtype represents a specific subcategory of measurement with associated data.
// Context carries labels such as the device or interface name.
type Subtype struct {
	Name    string             `json:"subtype,omitempty" yaml:"subtype,omitempty"`
	Data    map[string]Reading `json:"data" yaml:"data"`
	Context map[string]string  `json:"context,omitempty" yaml:"context,omitempty"`
}

type rawSubtype struct {
	Name    string            `json:"subtype" yaml:"subtype"`
	Data    map[string]any    `json:"data" yaml:"data"`
	Context map[string]string `json:"context" yaml:"context"`
}

func (st *Subtype) fromRaw(tmp rawSubtype) {
	st.Name = tmp.Name
	st.Context = tmp.Context
	st.Data = make(map[string]Reading, len(tmp.Data))
	for k, v := range tmp.Data {
		st.Data[k] = ToReading(v)
	}
}

// UnmarshalJSON restores readings from their plain JSON scalars.
func (st *Subtype) UnmarshalJSON(data []byte) error {
	var tmp rawSubtype
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	st.fromRaw(tmp)
	return nil
}

// UnmarshalYAML restores readings from their plain YAML scalars.
func (st *Subtype) UnmarshalYAML(node *yaml.Node) error {
	var tmp rawSubtype
	if err := node.Decode(&tmp); err != nil {
		return err
	}
	st.fromRaw(tmp)
	return nil
}

// AllowedScalar is a constraint (compile-time) for what we allow as readings.
type AllowedScalar interface {
	~int | ~int64 | ~uint64 | ~float64 | ~bool | ~string
}

// Reading is a *runtime* interface (so it can be stored in a map with mixed types).
type Reading interface {
	isReading()
	Any() any
	String() string

	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Scalar wraps an allowed scalar type.
type Scalar[T AllowedScalar] struct {
	V T
}

func (Scalar[T]) isReading() {}

func (s Scalar[T]) Any() any { return s.V }

// String returns the string representation of the underlying scalar value.
func (s Scalar[T]) String() string {
	return fmt.Sprintf("%v", s.V)
}

// MarshalJSON makes the JSON value be the underlying scalar (not an object wrapper).
func (s Scalar[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.V)
}

// MarshalYAML makes the YAML value be the underlying scalar (not an object wrapper).
func (s Scalar[T]) MarshalYAML() (any, error) {
	return s.V, nil
}

// UnmarshalJSON unmarshals a JSON value into the underlying scalar.
func (s *Scalar[T]) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &s.V)
}

// UnmarshalYAML unmarshals a YAML value into the underlying scalar.
func (s *Scalar[T]) UnmarshalYAML(node *yaml.Node) error {
	return node.Decode(&s.V)
}

// ToReading creates a Reading from any allowed scalar type.
// Decoded JSON numbers arrive as float64; YAML integers as int.
// Anything else is kept as its string form.
func ToReading(v any) Reading {
	switch val := v.(type) {
	case int:
		return Int(val)
	case int64:
		return Int64(val)
	case uint64:
		return Uint64(val)
	case float64:
		return Float64(val)
	case bool:
		return Bool(val)
	case string:
		return Str(val)
	default:
		return Str(fmt.Sprintf("%v", val))
	}
}

// Convenience constructors for each allowed scalar type.
func Int(v int) Reading         { return &Scalar[int]{V: v} }
func Int64(v int64) Reading     { return &Scalar[int64]{V: v} }
func Uint64(v uint64) Reading   { return &Scalar[uint64]{V: v} }
func Float64(v float64) Reading { return &Scalar[float64]{V: v} }
func Bool(v bool) Reading       { return &Scalar[bool]{V: v} }
func Str(v string) Reading      { return &Scalar[string]{V: v} }

// Validate checks if the measurement is properly formed.
func (m *Measurement) Validate() error {
	if m.Type == "" {
		return errors.New("measurement type cannot be empty")
	}
	if len(m.Subtypes) == 0 {
		return errors.New("measurement must have at least one subtype")
	}
	seen := make(map[string]struct{}, len(m.Subtypes))
	for i, st := range m.Subtypes {
		if err := st.Validate(); err != nil {
			return fmt.Errorf("subtype[%d]: %w", i, err)
		}
		if _, dup := seen[st.Name]; dup {
			return fmt.Errorf("subtype[%d]: duplicate name %q", i, st.Name)
		}
		seen[st.Name] = struct{}{}
	}
	return nil
}

// GetSubtype retrieves a subtype by name, returning nil if not found.
func (m *Measurement) GetSubtype(name string) *Subtype {
	for i := range m.Subtypes {
		if m.Subtypes[i].Name == name {
			return &m.Subtypes[i]
		}
	}
	return nil
}

// SubtypeNames returns all subtype names.
func (m *Measurement) SubtypeNames() []string {
	names := make([]string, len(m.Subtypes))
	for i, st := range m.Subtypes {
		names[i] = st.Name
	}
	return names
}

// Validate checks if the subtype is properly formed.
func (st *Subtype) Validate() error {
	if st.Name == "" {
		return errors.New("subtype name cannot be empty")
	}
	if len(st.Data) == 0 {
		return errors.New("subtype data cannot be empty")
	}
	return nil
}

// Has checks if a key exists in the subtype data.
func (st *Subtype) Has(key string) bool {
	_, exists := st.Data[key]
	return exists
}

// Get retrieves a reading by key, returning nil if not found.
func (st *Subtype) Get(key string) Reading {
	return st.Data[key]
}

// Keys returns all keys in the subtype data in sorted order.
func (st *Subtype) Keys() []string {
	keys := make([]string, 0, len(st.Data))
	for k := range st.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetString attempts to retrieve a string value, returning an error if not found or wrong type.
func (st *Subtype) GetString(key string) (string, error) {
	reading := st.Data[key]
	if reading == nil {
		return "", fmt.Errorf("key %q not found", key)
	}
	v, ok := reading.Any().(string)
	if !ok {
		return "", fmt.Errorf("key %q is not a string", key)
	}
	return v, nil
}

// GetUint64 attempts to retrieve a uint64 value, returning an error if not found or wrong type.
func (st *Subtype) GetUint64(key string) (uint64, error) {
	reading := st.Data[key]
	if reading == nil {
		return 0, fmt.Errorf("key %q not found", key)
	}
	v, ok := reading.Any().(uint64)
	if !ok {
		return 0, fmt.Errorf("key %q is not an unsigned integer", key)
	}
	return v, nil
}

// Numeric returns the reading as a float64 when it holds a number.
// The exporter uses it to turn any numeric reading into a sample.
func Numeric(r Reading) (float64, bool) {
	if r == nil {
		return 0, false
	}
	switch v := r.Any().(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float64:
		return v, true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
