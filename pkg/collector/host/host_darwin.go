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


//go:build darwin

package host

import (
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sys/unix"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/NVIDIA/hostmetrics/pkg/hostfs"
	"github.com/NVIDIA/hostmetrics/pkg/iokit"
)

type darwinPlatform struct{}

func newPlatform(hostfs.FS) platform {
	return darwinPlatform{}
}

func (darwinPlatform) osVersion() (string, error) {
	v, err := unix.Sysctl("kern.osproductversion")
	if err != nil {
		return "", errors.OSCall("sysctl kern.osproductversion", err)
	}
	return "macOS " + v, nil
}

func (darwinPlatform) uuid() (string, error) {
	reg, err := iokit.Open()
	if err == nil {
		id, err := platformUUID(reg)
		if err == nil {
			return id, nil
		}
		slog.Debug("platform uuid unavailable, using kern.uuid", "error", err)
	}

	id, err := unix.Sysctl("kern.uuid")
	if err != nil {
		return "", errors.OSCall("sysctl kern.uuid", err)
	}
	if err := validateUUID("kern.uuid", id); err != nil {
		return "", err
	}
	return id, nil
}

func (darwinPlatform) uptime() (uint64, error) {
	tv, err := unix.SysctlTimeval("kern.boottime")
	if err != nil {
		return 0, errors.OSCall("sysctl kern.boottime", err)
	}
	up := time.Since(time.Unix(tv.Unix()))
	return uint64(max(up, 0) / time.Second), nil
}

func (darwinPlatform) users() ([]User, error) {
	return nil, errors.NotImplemented("user accounts", runtime.GOOS)
}

func (darwinPlatform) loggedUsers() ([]string, error) {
	return utmpxUsers()
}
