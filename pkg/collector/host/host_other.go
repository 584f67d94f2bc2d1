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

package host

import (
	"runtime"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/NVIDIA/hostmetrics/pkg/hostfs"
)

type unsupported struct{}

func newPlatform(hostfs.FS) platform {
	return unsupported{}
}

func uname() (utsname, error) {
	return utsname{}, errors.NotImplemented("uname", runtime.GOOS)
}

func (unsupported) osVersion() (string, error) {
	return "", errors.NotImplemented("os version", runtime.GOOS)
}

func (unsupported) uuid() (string, error) {
	return "", errors.NotImplemented("host uuid", runtime.GOOS)
}

func (unsupported) uptime() (uint64, error) {
	return 0, errors.NotImplemented("uptime", runtime.GOOS)
}

func (unsupported) users() ([]User, error) {
	return nil, errors.NotImplemented("user accounts", runtime.GOOS)
}

func (unsupported) loggedUsers() ([]string, error) {
	return nil, errors.NotImplemented("logged users", runtime.GOOS)
}
