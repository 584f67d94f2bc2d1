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

package hostfs

import (
	"os"
	"path/filepath"
	"strings"
)

// Default mount points of the host's pseudo and configuration filesystems.
const (
	DefaultProc = "/proc"
	DefaultSys  = "/sys"
	DefaultEtc  = "/etc"
	DefaultRun  = "/run"
	DefaultVar  = "/var"
	DefaultRoot = "/"
)

// FS locates the kernel and configuration sources of the host being measured.
// Every root can be relocated, which is how a containerized agent reads the
// host's /proc mounted at /host/proc, and how tests point collectors at a
// fixture tree.
type FS struct {
	Proc string `json:"proc" yaml:"proc"`
	Sys  string `json:"sys" yaml:"sys"`
	Etc  string `json:"etc" yaml:"etc"`
	Run  string `json:"run" yaml:"run"`
	Var  string `json:"var" yaml:"var"`
	Root string `json:"root" yaml:"root"`
}

// Default returns the FS of the running host.
func Default() FS {
	return FS{
		Proc: DefaultProc,
		Sys:  DefaultSys,
		Etc:  DefaultEtc,
		Run:  DefaultRun,
		Var:  DefaultVar,
		Root: DefaultRoot,
	}
}

// Under returns an FS with every root placed below dir, mirroring the host
// layout (dir/proc, dir/sys and so on).
func Under(dir string) FS {
	return FS{
		Proc: filepath.Join(dir, DefaultProc),
		Sys:  filepath.Join(dir, DefaultSys),
		Etc:  filepath.Join(dir, DefaultEtc),
		Run:  filepath.Join(dir, DefaultRun),
		Var:  filepath.Join(dir, DefaultVar),
		Root: dir,
	}
}

// WithDefaults fills empty roots from Default.
func (f FS) WithDefaults() FS {
	d := Default()
	if f.Proc == "" {
		f.Proc = d.Proc
	}
	if f.Sys == "" {
		f.Sys = d.Sys
	}
	if f.Etc == "" {
		f.Etc = d.Etc
	}
	if f.Run == "" {
		f.Run = d.Run
	}
	if f.Var == "" {
		f.Var = d.Var
	}
	if f.Root == "" {
		f.Root = d.Root
	}
	return f
}

// ProcPath joins elem below the proc root.
func (f FS) ProcPath(elem ...string) string {
	return join(f.Proc, elem)
}

// SysPath joins elem below the sys root.
func (f FS) SysPath(elem ...string) string {
	return join(f.Sys, elem)
}

// EtcPath joins elem below the etc root.
func (f FS) EtcPath(elem ...string) string {
	return join(f.Etc, elem)
}

// RunPath joins elem below the run root.
func (f FS) RunPath(elem ...string) string {
	return join(f.Run, elem)
}

// VarPath joins elem below the var root.
func (f FS) VarPath(elem ...string) string {
	return join(f.Var, elem)
}

// RootPath joins elem below the filesystem root.
func (f FS) RootPath(elem ...string) string {
	return join(f.Root, elem)
}

func join(root string, elem []string) string {
	return filepath.Join(append([]string{root}, elem...)...)
}

// BlockDevicePath returns the companion descriptor whose presence marks name
// as a hardware-backed block device. Slashes in names such as cciss/c0d0 are
// spelled as '!' in sysfs.
func (f FS) BlockDevicePath(name string) string {
	return f.SysPath("block", strings.ReplaceAll(name, "/", "!"), "device")
}

// VirtualNetPath returns the sysfs entry that exists only for virtual
// network interfaces.
func (f FS) VirtualNetPath(iface string) string {
	return f.SysPath("devices", "virtual", "net", iface)
}

// Exists reports whether path exists. Only presence is checked, so a dangling
// symlink still counts.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
