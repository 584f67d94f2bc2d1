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

import (
	"encoding/binary"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
)

// Layout of the darwin if_msghdr2 routing message and its embedded
// if_data64, as returned by the NET_RT_IFLIST2 sysctl. Both darwin
// architectures are little endian.
const (
	rtmIfInfo2  = 0x12
	iffLoopback = 0x8

	offMsgLen   = 0
	offType     = 3
	offFlags    = 8
	offIndex    = 12
	offSndDrops = 24
	offData     = 32

	offIPackets = offData + 24
	offIErrors  = offData + 32
	offOPackets = offData + 40
	offOErrors  = offData + 48
	offIBytes   = offData + 64
	offOBytes   = offData + 72
	offIQDrops  = offData + 96

	ifMsghdr2Size = 160
	msgHeaderSize = 4
)

// ifInfo is one RTM_IFINFO2 record.
type ifInfo struct {
	Index    uint16
	Loopback bool
	Counters IOCounters
}

// parseIfList2 walks the routing messages in b and decodes every RTM_IFINFO2
// record. Other message types (address records) are skipped by length.
func parseIfList2(b []byte) ([]ifInfo, error) {
	const source = "net.route.0.0.iflist2"
	var out []ifInfo

	for pos := 0; pos < len(b); {
		if len(b)-pos < msgHeaderSize {
			return nil, errors.Malformed(source, "truncated message header at offset %d", pos)
		}
		msgLen := int(binary.LittleEndian.Uint16(b[pos+offMsgLen:]))
		if msgLen < msgHeaderSize || pos+msgLen > len(b) {
			return nil, errors.Malformed(source, "bad message length %d at offset %d", msgLen, pos)
		}
		msg := b[pos : pos+msgLen]
		pos += msgLen

		if msg[offType] != rtmIfInfo2 {
			continue
		}
		if len(msg) < ifMsghdr2Size {
			return nil, errors.Malformed(source, "if_msghdr2 is %d bytes, want %d", len(msg), ifMsghdr2Size)
		}

		u64 := func(off int) uint64 { return binary.LittleEndian.Uint64(msg[off:]) }
		out = append(out, ifInfo{
			Index:    binary.LittleEndian.Uint16(msg[offIndex:]),
			Loopback: binary.LittleEndian.Uint32(msg[offFlags:])&iffLoopback != 0,
			Counters: IOCounters{
				RxBytes:   u64(offIBytes),
				RxPackets: u64(offIPackets),
				RxErrs:    u64(offIErrors),
				RxDrop:    u64(offIQDrops),
				TxBytes:   u64(offOBytes),
				TxPackets: u64(offOPackets),
				TxErrs:    u64(offOErrors),
				TxDrop:    uint64(binary.LittleEndian.Uint32(msg[offSndDrops:])),
			},
		})
	}
	return out, nil
}
