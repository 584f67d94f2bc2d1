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


//go:build !darwin || !cgo

package iokit

import (
	"runtime"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
)

// Open is not available without IOKit.
func Open() (Registry, error) {
	return nil, errors.NotImplemented("iokit registry", runtime.GOOS)
}
