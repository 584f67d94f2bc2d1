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

package memory

// Memory is a snapshot of physical memory usage in bytes.
type Memory struct {
	Total   uint64 `json:"total" yaml:"total"`
	Free    uint64 `json:"free" yaml:"free"`
	Used    uint64 `json:"used" yaml:"used"`
	Shared  uint64 `json:"shared" yaml:"shared"`
	Buffers uint64 `json:"buffers" yaml:"buffers"`
	Cached  uint64 `json:"cached" yaml:"cached"`
}

// Swap is a snapshot of swap usage in bytes.
type Swap struct {
	Total uint64 `json:"total" yaml:"total"`
	Free  uint64 `json:"free" yaml:"free"`
	Used  uint64 `json:"used" yaml:"used"`
}

// newSwap derives Used from total and free.
func newSwap(total, free uint64) Swap {
	s := Swap{Total: total, Free: free}
	if free < total {
		s.Used = total - free
	}
	return s
}

type platform interface {
	memory() (Memory, error)
	swap() (Swap, error)
	hasSwap() (bool, error)
}
