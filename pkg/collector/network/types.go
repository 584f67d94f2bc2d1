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

package network

// IOCounters are cumulative traffic counters of one network interface.
type IOCounters struct {
	Interface string `json:"interface" yaml:"interface"`
	RxBytes   uint64 `json:"rx_bytes" yaml:"rx_bytes"`
	RxPackets uint64 `json:"rx_packets" yaml:"rx_packets"`
	RxErrs    uint64 `json:"rx_errs" yaml:"rx_errs"`
	RxDrop    uint64 `json:"rx_drop" yaml:"rx_drop"`
	TxBytes   uint64 `json:"tx_bytes" yaml:"tx_bytes"`
	TxPackets uint64 `json:"tx_packets" yaml:"tx_packets"`
	TxErrs    uint64 `json:"tx_errs" yaml:"tx_errs"`
	TxDrop    uint64 `json:"tx_drop" yaml:"tx_drop"`
}

type platform interface {
	ioCounters(physicalOnly bool) ([]IOCounters, error)
}
