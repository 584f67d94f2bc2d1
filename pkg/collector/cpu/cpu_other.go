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

package cpu

import (
	"runtime"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/NVIDIA/hostmetrics/pkg/hostfs"
)

type unsupported struct{}

func newPlatform(hostfs.FS) platform {
	return unsupported{}
}

func (unsupported) times() (Times, error) {
	return Times{}, errors.NotImplemented("cpu times", runtime.GOOS)
}

func (unsupported) perCoreTimes() ([]Times, error) {
	return nil, errors.NotImplemented("per-core cpu times", runtime.GOOS)
}

func (unsupported) stats() (Stats, error) {
	return Stats{}, errors.NotImplemented("cpu stats", runtime.GOOS)
}

func (unsupported) frequencyMHz() (float64, error) {
	return 0, errors.NotImplemented("cpu frequency", runtime.GOOS)
}

func (unsupported) logicalCount() (int, error) {
	return 0, errors.NotImplemented("logical cpu count", runtime.GOOS)
}

func (unsupported) physicalCount() (int, error) {
	return 0, errors.NotImplemented("physical cpu count", runtime.GOOS)
}

func (unsupported) loadAvg() (LoadAvg, error) {
	return LoadAvg{}, errors.NotImplemented("load average", runtime.GOOS)
}
