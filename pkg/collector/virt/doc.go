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

// Package virt guesses which container runtime or hypervisor the host runs
// under.
//
// Detection runs a fixed list of cheap file probes against the host
// filesystem: OpenVZ, WSL, the systemd container marker, the Docker and
// Podman marker files, then the DMI vendor strings. The first probe that
// recognizes something wins. A probe that cannot read its source falls
// through to the next one, and when every probe falls through the result is
// Unknown. Detection never fails.
package virt
