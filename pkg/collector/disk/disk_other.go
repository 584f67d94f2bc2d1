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

package disk

import (
	"runtime"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/NVIDIA/hostmetrics/pkg/hostfs"
)

type unsupported struct{}

func newPlatform(hostfs.FS) platform {
	return unsupported{}
}

func (unsupported) partitions(bool) ([]Partition, error) {
	return nil, errors.NotImplemented("disk partitions", runtime.GOOS)
}

func (unsupported) ioCounters(bool) ([]IOCounters, error) {
	return nil, errors.NotImplemented("disk io counters", runtime.GOOS)
}
