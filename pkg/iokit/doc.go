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

// Package iokit exposes the macOS IOKit device registry through small typed
// interfaces: a Registry yields an Iterator of Entry values, and each Entry
// can resolve its parent and snapshot its properties into a Dict.
//
// Every Iterator, Entry and Dict returned by a Registry holds a kernel or
// CoreFoundation reference and must be released exactly once. Dicts returned
// by Dict.Dict are borrowed from their parent and their Release is a no-op.
//
// Property lookups are typed (String, Int64, Bool, Dict). A missing key or a
// value of another type is an errors.ErrCodeMalformed error.
//
// Open returns the live registry on darwin builds with cgo and an
// errors.ErrCodeNotImplemented error everywhere else. Package iokittest
// provides a fake for tests.
package iokit
