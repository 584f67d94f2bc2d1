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


//go:build darwin && cgo

package iokit

/*
#cgo LDFLAGS: -framework CoreFoundation -framework IOKit
#include <stdlib.h>
#include <stdint.h>
#include <CoreFoundation/CoreFoundation.h>
#include <IOKit/IOKitLib.h>

enum { HM_OK = 0, HM_MISSING = 1, HM_TYPE = 2 };

static kern_return_t hm_matching(const char *cls, io_iterator_t *it) {
	return IOServiceGetMatchingServices(MACH_PORT_NULL, IOServiceMatching(cls), it);
}

static kern_return_t hm_parent(io_registry_entry_t e, const char *plane, io_registry_entry_t *out) {
	return IORegistryEntryGetParentEntry(e, plane, out);
}

static kern_return_t hm_properties(io_registry_entry_t e, CFDictionaryRef *out) {
	CFMutableDictionaryRef d = NULL;
	kern_return_t kr = IORegistryEntryCreateCFProperties(e, &d, kCFAllocatorDefault, 0);
	if (kr == KERN_SUCCESS) {
		*out = d;
	}
	return kr;
}

static CFTypeRef hm_lookup(CFDictionaryRef d, const char *key) {
	CFStringRef k = CFStringCreateWithCString(kCFAllocatorDefault, key, kCFStringEncodingUTF8);
	if (k == NULL) {
		return NULL;
	}
	CFTypeRef v = CFDictionaryGetValue(d, k);
	CFRelease(k);
	return v;
}

static int hm_int64(CFDictionaryRef d, const char *key, int64_t *out) {
	CFTypeRef v = hm_lookup(d, key);
	if (v == NULL) {
		return HM_MISSING;
	}
	if (CFGetTypeID(v) != CFNumberGetTypeID()) {
		return HM_TYPE;
	}
	return CFNumberGetValue((CFNumberRef)v, kCFNumberSInt64Type, out) ? HM_OK : HM_TYPE;
}

static int hm_bool(CFDictionaryRef d, const char *key, int *out) {
	CFTypeRef v = hm_lookup(d, key);
	if (v == NULL) {
		return HM_MISSING;
	}
	if (CFGetTypeID(v) != CFBooleanGetTypeID()) {
		return HM_TYPE;
	}
	*out = CFBooleanGetValue((CFBooleanRef)v) ? 1 : 0;
	return HM_OK;
}

static int hm_string(CFDictionaryRef d, const char *key, char *buf, CFIndex len) {
	CFTypeRef v = hm_lookup(d, key);
	if (v == NULL) {
		return HM_MISSING;
	}
	if (CFGetTypeID(v) != CFStringGetTypeID()) {
		return HM_TYPE;
	}
	return CFStringGetCString((CFStringRef)v, buf, len, kCFStringEncodingUTF8) ? HM_OK : HM_TYPE;
}

static int hm_dict(CFDictionaryRef d, const char *key, CFDictionaryRef *out) {
	CFTypeRef v = hm_lookup(d, key);
	if (v == NULL) {
		return HM_MISSING;
	}
	if (CFGetTypeID(v) != CFDictionaryGetTypeID()) {
		return HM_TYPE;
	}
	*out = (CFDictionaryRef)v;
	return HM_OK;
}

static void hm_release(CFDictionaryRef d) {
	CFRelease(d);
}
*/
import "C"

import (
	"unsafe"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/NVIDIA/hostmetrics/pkg/mach"
)

// maxStringLen bounds string properties such as BSD names and UUIDs.
const maxStringLen = 256

type registry struct{}

// Open returns the live IOKit registry.
func Open() (Registry, error) {
	return registry{}, nil
}

func (registry) MatchingServices(class string) (Iterator, error) {
	cls := C.CString(class)
	defer C.free(unsafe.Pointer(cls))

	var it C.io_iterator_t
	if kr := C.hm_matching(cls, &it); kr != C.KERN_SUCCESS {
		return nil, errors.OSCall("IOServiceGetMatchingServices", mach.KernReturn(kr))
	}
	return &iterator{it: it}, nil
}

type iterator struct {
	it C.io_iterator_t
}

func (i *iterator) Next() (Entry, bool) {
	obj := C.IOIteratorNext(i.it)
	if obj == 0 {
		return nil, false
	}
	return &entry{obj: obj}, true
}

func (i *iterator) Release() {
	C.IOObjectRelease(C.io_object_t(i.it))
}

type entry struct {
	obj C.io_registry_entry_t
}

func (e *entry) Parent(plane string) (Entry, error) {
	p := C.CString(plane)
	defer C.free(unsafe.Pointer(p))

	var parent C.io_registry_entry_t
	if kr := C.hm_parent(e.obj, p, &parent); kr != C.KERN_SUCCESS {
		return nil, errors.OSCall("IORegistryEntryGetParentEntry", mach.KernReturn(kr))
	}
	return &entry{obj: parent}, nil
}

func (e *entry) ConformsTo(class string) bool {
	cls := C.CString(class)
	defer C.free(unsafe.Pointer(cls))
	return C.IOObjectConformsTo(C.io_object_t(e.obj), cls) != 0
}

func (e *entry) Properties() (Dict, error) {
	var d C.CFDictionaryRef
	if kr := C.hm_properties(e.obj, &d); kr != C.KERN_SUCCESS {
		return nil, errors.OSCall("IORegistryEntryCreateCFProperties", mach.KernReturn(kr))
	}
	return &dict{ref: d, owned: true}, nil
}

func (e *entry) Release() {
	C.IOObjectRelease(C.io_object_t(e.obj))
}

type dict struct {
	ref   C.CFDictionaryRef
	owned bool
}

func lookupError(rc C.int, key, want string) error {
	if rc == C.HM_MISSING {
		return MissingKey(key)
	}
	return WrongType(key, want)
}

func (d *dict) String(key string) (string, error) {
	k := C.CString(key)
	defer C.free(unsafe.Pointer(k))

	buf := (*C.char)(C.malloc(maxStringLen))
	defer C.free(unsafe.Pointer(buf))

	if rc := C.hm_string(d.ref, k, buf, maxStringLen); rc != C.HM_OK {
		return "", lookupError(rc, key, "string")
	}
	return C.GoString(buf), nil
}

func (d *dict) Int64(key string) (int64, error) {
	k := C.CString(key)
	defer C.free(unsafe.Pointer(k))

	var v C.int64_t
	if rc := C.hm_int64(d.ref, k, &v); rc != C.HM_OK {
		return 0, lookupError(rc, key, "number")
	}
	return int64(v), nil
}

func (d *dict) Bool(key string) (bool, error) {
	k := C.CString(key)
	defer C.free(unsafe.Pointer(k))

	var v C.int
	if rc := C.hm_bool(d.ref, k, &v); rc != C.HM_OK {
		return false, lookupError(rc, key, "bool")
	}
	return v != 0, nil
}

func (d *dict) Dict(key string) (Dict, error) {
	k := C.CString(key)
	defer C.free(unsafe.Pointer(k))

	var nested C.CFDictionaryRef
	if rc := C.hm_dict(d.ref, k, &nested); rc != C.HM_OK {
		return nil, lookupError(rc, key, "dictionary")
	}
	return &dict{ref: nested}, nil
}

func (d *dict) Release() {
	if d.owned && d.ref != 0 {
		C.hm_release(d.ref)
		d.ref = 0
	}
}
