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
	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/NVIDIA/hostmetrics/pkg/iokit"
)

// platformUUID reads IOPlatformUUID from the first platform expert device.
func platformUUID(reg iokit.Registry) (string, error) {
	it, err := reg.MatchingServices(iokit.ClassPlatformExpert)
	if err != nil {
		return "", err
	}
	defer it.Release()

	dev, ok := it.Next()
	if !ok {
		return "", errors.NewWithContext(errors.ErrCodeNotFound, "no platform expert device", map[string]any{
			"class": iokit.ClassPlatformExpert,
		})
	}
	defer dev.Release()

	props, err := dev.Properties()
	if err != nil {
		return "", err
	}
	defer props.Release()

	id, err := props.String(iokit.KeyPlatformUUID)
	if err != nil {
		return "", err
	}
	if err := validateUUID(iokit.KeyPlatformUUID, id); err != nil {
		return "", err
	}
	return id, nil
}
