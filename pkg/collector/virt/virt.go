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

package virt

import (
	"bufio"
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/NVIDIA/hostmetrics/pkg/hostfs"
)

// System names a virtualization or container technology.
type System string

const (
	OpenVZ        System = "openvz"
	LXC           System = "lxc"
	LXCLibvirt    System = "lxc-libvirt"
	SystemdNspawn System = "systemd-nspawn"
	Docker        System = "docker"
	Podman        System = "podman"
	Rkt           System = "rkt"
	WSL           System = "wsl"
	Xen           System = "xen"
	KVM           System = "kvm"
	QEMU          System = "qemu"
	VMware        System = "vmware"
	Oracle        System = "oracle"
	Bochs         System = "bochs"
	Parallels     System = "parallels"
	Bhyve         System = "bhyve"
	Unknown       System = "unknown"
)

// String implements fmt.Stringer.
func (s System) String() string {
	return string(s)
}

// IsContainer reports whether s is a container runtime rather than a
// hypervisor.
func (s System) IsContainer() bool {
	switch s {
	case OpenVZ, LXC, LXCLibvirt, SystemdNspawn, Docker, Podman, Rkt, WSL:
		return true
	default:
		return false
	}
}

// probe inspects one source. ok is false when the source is absent or does
// not name anything known.
type probe struct {
	name string
	fn   func(fs hostfs.FS) (System, bool)
}

var probes = []probe{
	{name: "openvz", fn: detectOpenVZ},
	{name: "wsl", fn: detectWSL},
	{name: "systemd-container", fn: detectSystemdContainer},
	{name: "dockerenv", fn: detectDockerEnv},
	{name: "containerenv", fn: detectContainerEnv},
	{name: "dmi", fn: detectDMI},
}

// Detect returns the first system recognized by the probes, or Unknown.
func Detect(fs hostfs.FS) System {
	fs = fs.WithDefaults()
	for _, p := range probes {
		if s, ok := p.fn(fs); ok {
			slog.Debug("virtualization detected", "probe", p.name, "system", s)
			return s
		}
		slog.Debug("virtualization probe fell through", "probe", p.name)
	}
	return Unknown
}

// /proc/vz exists inside and outside an OpenVZ container, /proc/bc only
// outside.
func detectOpenVZ(fs hostfs.FS) (System, bool) {
	if hostfs.Exists(fs.ProcPath("vz")) && !hostfs.Exists(fs.ProcPath("bc")) {
		return OpenVZ, true
	}
	return "", false
}

func detectWSL(fs hostfs.FS) (System, bool) {
	release, err := hostfs.ReadTrimmed(fs.ProcPath("sys", "kernel", "osrelease"))
	if err != nil {
		return "", false
	}
	if strings.Contains(release, "Microsoft") || strings.Contains(release, "WSL") {
		return WSL, true
	}
	return "", false
}

var containerNames = map[string]System{
	"lxc":            LXC,
	"lxc-libvirt":    LXCLibvirt,
	"systemd-nspawn": SystemdNspawn,
	"docker":         Docker,
	"podman":         Podman,
	"rkt":            Rkt,
	"wsl":            WSL,
}

// systemd as PID 1 records the container manager in /run/systemd/container.
func detectSystemdContainer(fs hostfs.FS) (System, bool) {
	f, err := os.Open(fs.RunPath("systemd", "container"))
	if err != nil {
		return "", false
	}
	defer f.Close()

	line, err := bufio.NewReaderSize(f, 512).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", false
	}
	s, ok := containerNames[strings.TrimSpace(line)]
	return s, ok
}

func detectDockerEnv(fs hostfs.FS) (System, bool) {
	if hostfs.Exists(fs.RootPath(".dockerenv")) {
		return Docker, true
	}
	return "", false
}

func detectContainerEnv(fs hostfs.FS) (System, bool) {
	if hostfs.Exists(fs.RunPath(".containerenv")) {
		return Podman, true
	}
	return "", false
}

var dmiFiles = []string{"product_name", "sys_vendor", "board_vendor", "bios_vendor"}

// DMI vendor strings are matched on their first three bytes.
var dmiVendors = []struct {
	prefix string
	system System
}{
	{prefix: "Xen", system: Xen},
	{prefix: "KVM", system: KVM},
	{prefix: "QEM", system: QEMU},
	{prefix: "VMw", system: VMware},
	{prefix: "VMW", system: VMware},
	{prefix: "inn", system: Oracle},
	{prefix: "Boc", system: Bochs},
	{prefix: "Par", system: Parallels},
	{prefix: "BHY", system: Bhyve},
}

func detectDMI(fs hostfs.FS) (System, bool) {
	for _, name := range dmiFiles {
		head, err := readHead(fs.SysPath("class", "dmi", "id", name), 3)
		if err != nil {
			continue
		}
		for _, v := range dmiVendors {
			if bytes.Equal(head, []byte(v.prefix)) {
				return v.system, true
			}
		}
	}
	return "", false
}

func readHead(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, n)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
