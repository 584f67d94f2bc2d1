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
	"context"
	"log/slog"
	"strings"

	"github.com/NVIDIA/hostmetrics/pkg/collector/cpu"
	"github.com/NVIDIA/hostmetrics/pkg/collector/virt"
	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/NVIDIA/hostmetrics/pkg/hostfs"
	"github.com/NVIDIA/hostmetrics/pkg/measurement"
)

// Collector acquires host identity and accounts.
type Collector struct {
	fs       hostfs.FS
	platform platform
	uname    func() (utsname, error)
	cpu      *cpu.Collector
}

// Option configures a Collector.
type Option func(*Collector)

// WithFS sets the host filesystem roots used on Linux.
func WithFS(fs hostfs.FS) Option {
	return func(c *Collector) {
		c.fs = fs
	}
}

// NewCollector returns a host collector for the running platform.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{fs: hostfs.Default()}
	for _, opt := range opts {
		opt(c)
	}
	c.fs = c.fs.WithDefaults()
	c.platform = newPlatform(c.fs)
	c.uname = uname
	c.cpu = cpu.NewCollector(cpu.WithFS(c.fs))
	return c
}

// Identity returns the host identity. uname failures are returned; the OS
// version falls back to "<system> <release>" and the UUID is left empty when
// their sources are unavailable.
func (c *Collector) Identity() (Identity, error) {
	u, err := c.uname()
	if err != nil {
		return Identity{}, err
	}

	id := Identity{
		System:        u.sysname,
		KernelVersion: u.release,
		Hostname:      u.nodename,
	}

	id.OSVersion, err = c.platform.osVersion()
	if err != nil {
		slog.Debug("os version unavailable, using uname", "error", err)
		id.OSVersion = u.sysname + " " + u.release
	}

	id.UUID, err = c.platform.uuid()
	if err != nil {
		slog.Debug("host uuid unavailable", "error", err)
	}

	return id, nil
}

// OSVersion returns the distribution name and release.
func (c *Collector) OSVersion() (string, error) {
	return c.platform.osVersion()
}

// UUID returns the machine UUID.
func (c *Collector) UUID() (string, error) {
	return c.platform.uuid()
}

// Uptime returns the seconds since boot.
func (c *Collector) Uptime() (uint64, error) {
	return c.platform.uptime()
}

// Users returns the regular login accounts.
func (c *Collector) Users() ([]User, error) {
	return c.platform.users()
}

// LoggedUsers returns the names of users with an active session, each once.
func (c *Collector) LoggedUsers() ([]string, error) {
	names, err := c.platform.loggedUsers()
	if err != nil {
		return nil, err
	}
	return dedupe(names), nil
}

// Virtualization returns the detected container runtime or hypervisor.
func (c *Collector) Virtualization() virt.System {
	return virt.Detect(c.fs)
}

// Info returns identity, uptime, load and virtualization.
func (c *Collector) Info() (Info, error) {
	id, err := c.Identity()
	if err != nil {
		return Info{}, err
	}

	up, err := c.Uptime()
	if err != nil {
		return Info{}, err
	}

	load, err := c.cpu.LoadAvg()
	if err != nil {
		return Info{}, err
	}

	return Info{
		Identity:       id,
		Uptime:         up,
		Load:           load,
		Virtualization: c.Virtualization(),
	}, nil
}

// Collect returns the subtypes identity, uptime and users. Account sources
// that are unavailable on the host are left out, and users is omitted when
// none is available.
func (c *Collector) Collect(ctx context.Context) (*measurement.Measurement, error) {
	slog.Debug("collecting host metrics")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := c.Info()
	if err != nil {
		return nil, err
	}

	identity := measurement.NewSubtypeBuilder("identity").
		SetString(measurement.KeyOSName, info.System).
		SetString(measurement.KeyOSVersion, info.OSVersion).
		SetString(measurement.KeyKernel, info.KernelVersion).
		SetString(measurement.KeyHostname, info.Hostname).
		SetString(measurement.KeyVirtSystem, info.Virtualization.String())
	if info.UUID != "" {
		identity.SetString(measurement.KeyUUID, info.UUID)
	}
	if k, err := info.Kernel(); err == nil {
		identity.SetInt(measurement.KeyKernelMajor, k.Major).
			SetInt(measurement.KeyKernelMinor, k.Minor)
	} else {
		slog.Debug("kernel release not parseable", "release", info.KernelVersion, "error", err)
	}

	uptime := measurement.NewSubtypeBuilder("uptime").
		SetUint64(measurement.KeyUptime, info.Uptime).
		SetFloat64(measurement.KeyLoad1, info.Load.One).
		SetFloat64(measurement.KeyLoad5, info.Load.Five).
		SetFloat64(measurement.KeyLoad15, info.Load.Fifteen)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	users := measurement.NewSubtypeBuilder("users")
	hasUsers := false
	accounts, err := c.Users()
	switch {
	case err == nil:
		users.SetInt(measurement.KeyUsers, len(accounts))
		hasUsers = true
	case errors.IsCode(err, errors.ErrCodeNotImplemented):
		slog.Debug("user accounts unavailable", "error", err)
	default:
		return nil, err
	}

	logged, err := c.LoggedUsers()
	switch {
	case err == nil:
		users.SetString(measurement.KeyLoggedIn, strings.Join(logged, ","))
		hasUsers = true
	case errors.IsCode(err, errors.ErrCodeNotImplemented), errors.IsCode(err, errors.ErrCodeNotFound):
		slog.Debug("logged users unavailable", "error", err)
	default:
		return nil, err
	}

	m := measurement.NewMeasurement(measurement.TypeHost).
		WithSubtypeBuilder(identity).
		WithSubtypeBuilder(uptime)
	if hasUsers {
		m.WithSubtypeBuilder(users)
	}
	return m.Build(), nil
}
