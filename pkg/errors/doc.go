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

// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Acquisition failures fall into four classes, each with its own code:
//
//	ErrCodeIO             open or read of a kernel source failed
//	ErrCodeOSCall         a system call or kernel API returned a failure
//	ErrCodeMalformed      a required field or key is absent
//	ErrCodeNotImplemented no implementation exists on this platform
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeMalformed,
//	    "diskstats record has too few fields",
//	    nil,
//	    map[string]any{
//	        "path": "/proc/diskstats",
//	        "line": 12,
//	    },
//	)
//
// Use IsCode to branch on the class of a returned error:
//
//	if errors.IsCode(err, errors.ErrCodeNotImplemented) {
//	    // skip the metric on this platform
//	}
package errors
