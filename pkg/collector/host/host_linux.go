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


//go:build linux

package host

import (
	stderrors "errors"
	"io/fs"
	"log/slog"

	"github.com/coreos/go-systemd/v22/login1"
	"golang.org/x/sys/unix"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/NVIDIA/hostmetrics/pkg/hostfs"
)

type linuxPlatform struct {
	fs hostfs.FS
	// sessionUsers is asked when the host keeps no utmp file.
	sessionUsers func() ([]string, error)
}

func newPlatform(fs hostfs.FS) platform {
	return &linuxPlatform{fs: fs, sessionUsers: logindUsers}
}

func (p *linuxPlatform) osVersion() (string, error) {
	return readOSVersion(p.fs.EtcPath("os-release"), p.fs.RootPath("usr", "lib", "os-release"))
}

func (p *linuxPlatform) uuid() (string, error) {
	return readMachineID(p.fs.EtcPath("machine-id"), p.fs.VarPath("lib", "dbus", "machine-id"))
}

func (p *linuxPlatform) uptime() (uint64, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, errors.OSCall("sysinfo", err)
	}
	return uint64(max(info.Uptime, 0)), nil
}

func (p *linuxPlatform) users() ([]User, error) {
	lo, hi, err := readUIDRange(p.fs.EtcPath("login.defs"))
	if err != nil {
		return nil, err
	}
	return readPasswdUsers(p.fs.EtcPath("passwd"), lo, hi)
}

func (p *linuxPlatform) loggedUsers() ([]string, error) {
	names, err := readUtmp(p.fs.RunPath("utmp"))
	if err == nil {
		return names, nil
	}
	if !stderrors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	slog.Debug("utmp not found, asking logind", "error", err)
	return p.sessionUsers()
}

func logindUsers() ([]string, error) {
	conn, err := login1.New()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, "no utmp and logind unreachable", err)
	}
	defer conn.Close()

	users, err := conn.ListUsers()
	if err != nil {
		return nil, errors.OSCall("login1 ListUsers", err)
	}

	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Name)
	}
	return names, nil
}
