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

//go:build !linux && !darwin

package units

import (
	"runtime"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
)

// ClockTicks is not available on this platform.
func ClockTicks() (uint64, error) {
	return 0, errors.NotImplemented("clock ticks", runtime.GOOS)
}

// PageSize is not available on this platform.
func PageSize() (uint64, error) {
	return 0, errors.NotImplemented("page size", runtime.GOOS)
}
