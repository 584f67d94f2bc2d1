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

// Package network acquires per-interface traffic counters.
//
// On Linux the counters come from /proc/net/dev; in the physical-only view
// interfaces listed under /sys/devices/virtual/net are dropped. On macOS they
// come from the NET_RT_IFLIST2 routing sysctl, whose if_msghdr2 records are
// decoded by parseIfList2; the physical-only view drops loopback interfaces.
package network
