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

package iokit

import (
	"github.com/NVIDIA/hostmetrics/pkg/errors"
)

// Registry classes, planes and property keys.
const (
	ClassMedia              = "IOMedia"
	ClassBlockStorageDriver = "IOBlockStorageDriver"
	ClassPlatformExpert     = "IOPlatformExpertDevice"

	PlaneService = "IOService"

	KeyBSDName      = "BSD Name"
	KeyRemovable    = "Removable"
	KeyStatistics   = "Statistics"
	KeyPlatformUUID = "IOPlatformUUID"

	KeyReadOps        = "Operations (Read)"
	KeyReadBytes      = "Bytes (Read)"
	KeyWriteOps       = "Operations (Write)"
	KeyWriteBytes     = "Bytes (Write)"
	KeyReadTotalTime  = "Total Time (Read)"
	KeyWriteTotalTime = "Total Time (Write)"
)

// Registry opens iterators over registry services.
type Registry interface {
	// MatchingServices returns an iterator over every service of class.
	MatchingServices(class string) (Iterator, error)
}

// Iterator walks matched services.
type Iterator interface {
	// Next returns the next entry, or false when the iterator is exhausted.
	// A returned entry is owned by the caller.
	Next() (Entry, bool)
	Release()
}

// Entry is one registry object.
type Entry interface {
	// Parent returns the parent of the entry in plane. The parent is owned by
	// the caller.
	Parent(plane string) (Entry, error)
	// ConformsTo reports whether the entry is an instance of class or a
	// subclass of it.
	ConformsTo(class string) bool
	// Properties snapshots the entry's properties. The Dict is owned by the
	// caller.
	Properties() (Dict, error)
	Release()
}

// Dict is a property dictionary.
type Dict interface {
	String(key string) (string, error)
	Int64(key string) (int64, error)
	Bool(key string) (bool, error)
	// Dict returns a nested dictionary borrowed from the receiver. It must not
	// be used after the receiver is released.
	Dict(key string) (Dict, error)
	Release()
}

// MissingKey reports a required property that is absent.
func MissingKey(key string) error {
	return errors.NewWithContext(errors.ErrCodeMalformed, "registry property missing", map[string]any{
		"key": key,
	})
}

// WrongType reports a property whose value is not of the requested type.
func WrongType(key, want string) error {
	return errors.NewWithContext(errors.ErrCodeMalformed, "registry property is not a "+want, map[string]any{
		"key": key,
	})
}
