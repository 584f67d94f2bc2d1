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

// Package host acquires host identity, uptime and user accounts.
//
// Identity combines uname with the distribution release (os-release
// PRETTY_NAME on Linux, kern.osproductversion on macOS) and the machine UUID
// (/etc/machine-id falling back to /var/lib/dbus/machine-id on Linux, the
// IOPlatformExpertDevice IOPlatformUUID falling back to kern.uuid on macOS).
// UUIDs are normalized to the canonical hyphenated form.
//
// Logged-in users come from utmp USER_PROCESS records, deduplicated in
// first-seen order. On Linux hosts without a utmp file, systemd-logind is
// asked over D-Bus instead.
//
// Usage:
//
//	c := host.NewCollector()
//	info, err := c.Info()
//	if err != nil {
//	    return err
//	}
//	fmt.Println(info.Hostname, info.Uptime)
package host
