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

// Package file reads the small host configuration files that identity
// collectors consult: /etc/os-release, /etc/login.defs and /etc/passwd.
//
// # Usage
//
//	release, err := file.NewParser(
//	    file.WithVTrimChars(`"'`),
//	    file.WithSkipEmptyValues(true),
//	).GetMap("/etc/os-release")
//
//	defs, err := file.NewParser(file.WithKVDelimiter("")).GetMap("/etc/login.defs")
//
//	users, err := file.NewParser().GetRecords("/etc/passwd")
//
// Open and read failures are errors.ErrCodeIO errors wrapping the original
// *fs.PathError. Oversized and non UTF-8 files are errors.ErrCodeMalformed.
package file
