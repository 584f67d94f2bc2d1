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

package host

import (
	"github.com/NVIDIA/hostmetrics/pkg/collector/cpu"
	"github.com/NVIDIA/hostmetrics/pkg/collector/virt"
	"github.com/NVIDIA/hostmetrics/pkg/version"
)

// Identity names the host and its operating system.
type Identity struct {
	System        string `json:"system" yaml:"system"`
	OSVersion     string `json:"os_version" yaml:"os_version"`
	KernelVersion string `json:"kernel_version" yaml:"kernel_version"`
	Hostname      string `json:"hostname" yaml:"hostname"`
	UUID          string `json:"uuid,omitempty" yaml:"uuid,omitempty"`
}

// Kernel parses KernelVersion.
func (id Identity) Kernel() (version.Version, error) {
	return version.ParseKernel(id.KernelVersion)
}

// Info is the identity plus the host's uptime in seconds and load.
type Info struct {
	Identity       `yaml:",inline"`
	Uptime         uint64      `json:"uptime" yaml:"uptime"`
	Load           cpu.LoadAvg `json:"load" yaml:"load"`
	Virtualization virt.System `json:"virtualization" yaml:"virtualization"`
}

// User is a regular login account.
type User struct {
	Name  string `json:"name" yaml:"name"`
	UID   uint32 `json:"uid" yaml:"uid"`
	Home  string `json:"home" yaml:"home"`
	Shell string `json:"shell" yaml:"shell"`
}

// utsname holds the uname fields used here.
type utsname struct {
	sysname  string
	nodename string
	release  string
}

type platform interface {
	osVersion() (string, error)
	uuid() (string, error)
	uptime() (uint64, error)
	users() ([]User, error)
	loggedUsers() ([]string, error)
}
