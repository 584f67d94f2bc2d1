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

// Package iokittest provides an in-memory iokit.Registry that counts every
// acquisition and release and can inject failures at each traversal step.
package iokittest

import (
	"fmt"
	"sync"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/NVIDIA/hostmetrics/pkg/iokit"
)

// Node is a registry object. Props values are string, int64, bool or
// map[string]any for nested dictionaries.
type Node struct {
	Classes []string
	Parent  *Node
	Props   map[string]any

	// FailParent makes Parent lookups on this node fail.
	FailParent bool
	// FailProps makes Properties on this node fail.
	FailProps bool
}

// Registry is a fake iokit.Registry.
type Registry struct {
	// Services lists the nodes returned for each class.
	Services map[string][]*Node
	// FailIterator makes MatchingServices fail.
	FailIterator bool

	mu       sync.Mutex
	acquired int
	released int
	doubles  int
}

var _ iokit.Registry = (*Registry)(nil)

// Acquired returns the number of handles handed out.
func (r *Registry) Acquired() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.acquired
}

// Released returns the number of handles released.
func (r *Registry) Released() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.released
}

// DoubleReleases returns the number of Release calls on already released
// handles.
func (r *Registry) DoubleReleases() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.doubles
}

// Balanced reports whether every acquired handle was released exactly once.
func (r *Registry) Balanced() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.acquired == r.released && r.doubles == 0
}

func (r *Registry) acquire() *handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.acquired++
	return &handle{reg: r}
}

type handle struct {
	reg      *Registry
	released bool
}

func (h *handle) Release() {
	h.reg.mu.Lock()
	defer h.reg.mu.Unlock()
	if h.released {
		h.reg.doubles++
		return
	}
	h.released = true
	h.reg.released++
}

// MatchingServices implements iokit.Registry.
func (r *Registry) MatchingServices(class string) (iokit.Iterator, error) {
	if r.FailIterator {
		return nil, errors.OSCall("IOServiceGetMatchingServices", fmt.Errorf("injected"))
	}
	return &iterator{handle: r.acquire(), reg: r, nodes: r.Services[class]}, nil
}

type iterator struct {
	*handle
	reg   *Registry
	nodes []*Node
	pos   int
}

func (i *iterator) Next() (iokit.Entry, bool) {
	if i.pos >= len(i.nodes) {
		return nil, false
	}
	n := i.nodes[i.pos]
	i.pos++
	return &entry{handle: i.reg.acquire(), reg: i.reg, node: n}, true
}

type entry struct {
	*handle
	reg  *Registry
	node *Node
}

func (e *entry) Parent(plane string) (iokit.Entry, error) {
	if e.node.FailParent || e.node.Parent == nil {
		return nil, errors.OSCall("IORegistryEntryGetParentEntry", fmt.Errorf("no parent in %s", plane))
	}
	return &entry{handle: e.reg.acquire(), reg: e.reg, node: e.node.Parent}, nil
}

func (e *entry) ConformsTo(class string) bool {
	for _, c := range e.node.Classes {
		if c == class {
			return true
		}
	}
	return false
}

func (e *entry) Properties() (iokit.Dict, error) {
	if e.node.FailProps {
		return nil, errors.OSCall("IORegistryEntryCreateCFProperties", fmt.Errorf("injected"))
	}
	return &dict{release: e.reg.acquire().Release, props: e.node.Props}, nil
}

type dict struct {
	release func()
	props   map[string]any
}

func (d *dict) Release() {
	if d.release != nil {
		d.release()
	}
}

func (d *dict) String(key string) (string, error) {
	v, ok := d.props[key]
	if !ok {
		return "", iokit.MissingKey(key)
	}
	s, ok := v.(string)
	if !ok {
		return "", iokit.WrongType(key, "string")
	}
	return s, nil
}

func (d *dict) Int64(key string) (int64, error) {
	v, ok := d.props[key]
	if !ok {
		return 0, iokit.MissingKey(key)
	}
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	default:
		return 0, iokit.WrongType(key, "number")
	}
}

func (d *dict) Bool(key string) (bool, error) {
	v, ok := d.props[key]
	if !ok {
		return false, iokit.MissingKey(key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, iokit.WrongType(key, "bool")
	}
	return b, nil
}

// Dict returns a borrowed nested dictionary. It is not counted.
func (d *dict) Dict(key string) (iokit.Dict, error) {
	v, ok := d.props[key]
	if !ok {
		return nil, iokit.MissingKey(key)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, iokit.WrongType(key, "dictionary")
	}
	return &dict{props: m}, nil
}
