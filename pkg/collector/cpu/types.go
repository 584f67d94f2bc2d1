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

package cpu

import (
	"strconv"

	"github.com/NVIDIA/hostmetrics/pkg/units"
)

// Aggregate is the Core index of host-wide Times.
const Aggregate = -1

// Times holds cumulative CPU time counters in clock ticks.
type Times struct {
	Core      int    `json:"core" yaml:"core"`
	User      uint64 `json:"user" yaml:"user"`
	Nice      uint64 `json:"nice" yaml:"nice"`
	System    uint64 `json:"system" yaml:"system"`
	Idle      uint64 `json:"idle" yaml:"idle"`
	IOWait    uint64 `json:"iowait" yaml:"iowait"`
	IRQ       uint64 `json:"irq" yaml:"irq"`
	SoftIRQ   uint64 `json:"softirq" yaml:"softirq"`
	Steal     uint64 `json:"steal" yaml:"steal"`
	Guest     uint64 `json:"guest" yaml:"guest"`
	GuestNice uint64 `json:"guest_nice" yaml:"guest_nice"`
}

// Busy is the time spent doing work. Guest time is already part of User and
// Nice and is not added again.
func (t Times) Busy() uint64 {
	return t.User + t.Nice + t.System + t.IRQ + t.SoftIRQ + t.Steal
}

// IdleTotal is idle plus I/O wait.
func (t Times) IdleTotal() uint64 {
	return t.Idle + t.IOWait
}

// Total is Busy plus IdleTotal.
func (t Times) Total() uint64 {
	return t.Busy() + t.IdleTotal()
}

// Name is "aggregate" for host-wide times and "cpuN" for core N.
func (t Times) Name() string {
	if t.Core == Aggregate {
		return "aggregate"
	}
	return "cpu" + strconv.Itoa(t.Core)
}

// Seconds converts every counter from ticks to whole seconds at hz ticks per
// second. Fractions are truncated.
func (t Times) Seconds(hz uint64) Times {
	return Times{
		Core:      t.Core,
		User:      units.TicksToSeconds(t.User, hz),
		Nice:      units.TicksToSeconds(t.Nice, hz),
		System:    units.TicksToSeconds(t.System, hz),
		Idle:      units.TicksToSeconds(t.Idle, hz),
		IOWait:    units.TicksToSeconds(t.IOWait, hz),
		IRQ:       units.TicksToSeconds(t.IRQ, hz),
		SoftIRQ:   units.TicksToSeconds(t.SoftIRQ, hz),
		Steal:     units.TicksToSeconds(t.Steal, hz),
		Guest:     units.TicksToSeconds(t.Guest, hz),
		GuestNice: units.TicksToSeconds(t.GuestNice, hz),
	}
}

// Stats holds kernel activity counters since boot.
type Stats struct {
	Interrupts      uint64 `json:"interrupts" yaml:"interrupts"`
	ContextSwitches uint64 `json:"context_switches" yaml:"context_switches"`
	SoftInterrupts  uint64 `json:"soft_interrupts" yaml:"soft_interrupts"`
}

// LoadAvg holds the 1, 5 and 15 minute run queue averages.
type LoadAvg struct {
	One     float64 `json:"one" yaml:"one"`
	Five    float64 `json:"five" yaml:"five"`
	Fifteen float64 `json:"fifteen" yaml:"fifteen"`
}

// platform is the per-OS acquisition backend.
type platform interface {
	times() (Times, error)
	perCoreTimes() ([]Times, error)
	stats() (Stats, error)
	frequencyMHz() (float64, error)
	logicalCount() (int, error)
	physicalCount() (int, error)
	loadAvg() (LoadAvg, error)
}
