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


//go:build darwin && cgo

package mach

/*
#include <mach/mach.h>
#include <mach/mach_host.h>
#include <mach/processor_info.h>
#include <mach/vm_map.h>

static kern_return_t hm_cpu_load(host_cpu_load_info_data_t *out) {
	mach_msg_type_number_t count = HOST_CPU_LOAD_INFO_COUNT;
	mach_port_t host = mach_host_self();
	kern_return_t kr = host_statistics(host, HOST_CPU_LOAD_INFO, (host_info_t)out, &count);
	mach_port_deallocate(mach_task_self(), host);
	return kr;
}

static kern_return_t hm_vm_stats(vm_statistics64_data_t *out) {
	mach_msg_type_number_t count = HOST_VM_INFO64_COUNT;
	mach_port_t host = mach_host_self();
	kern_return_t kr = host_statistics64(host, HOST_VM_INFO64, (host_info64_t)out, &count);
	mach_port_deallocate(mach_task_self(), host);
	return kr;
}

static kern_return_t hm_processor_info(natural_t *ncpu, processor_info_array_t *info, mach_msg_type_number_t *count) {
	mach_port_t host = mach_host_self();
	kern_return_t kr = host_processor_info(host, PROCESSOR_CPU_LOAD_INFO, ncpu, info, count);
	mach_port_deallocate(mach_task_self(), host);
	return kr;
}

static void hm_processor_info_release(processor_info_array_t info, mach_msg_type_number_t count) {
	vm_deallocate(mach_task_self(), (vm_address_t)info, count * sizeof(integer_t));
}
*/
import "C"

import (
	"unsafe"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
)

// HostCPULoad returns the aggregate tick counters of the host.
func HostCPULoad() (CPULoad, error) {
	var info C.host_cpu_load_info_data_t
	if kr := C.hm_cpu_load(&info); kr != C.KERN_SUCCESS {
		return CPULoad{}, errors.OSCall("host_statistics", KernReturn(kr))
	}

	return CPULoad{
		User:   uint64(info.cpu_ticks[cpuStateUser]),
		System: uint64(info.cpu_ticks[cpuStateSystem]),
		Idle:   uint64(info.cpu_ticks[cpuStateIdle]),
		Nice:   uint64(info.cpu_ticks[cpuStateNice]),
	}, nil
}

// ProcessorLoads returns the tick counters of every processor in index order.
func ProcessorLoads() ([]CPULoad, error) {
	var (
		ncpu  C.natural_t
		info  C.processor_info_array_t
		count C.mach_msg_type_number_t
	)
	if kr := C.hm_processor_info(&ncpu, &info, &count); kr != C.KERN_SUCCESS {
		return nil, errors.OSCall("host_processor_info", KernReturn(kr))
	}
	defer C.hm_processor_info_release(info, count)

	ticks := unsafe.Slice((*int32)(unsafe.Pointer(info)), int(count))
	return loadsFromTicks(ticks, int(ncpu)), nil
}

// HostVMStats returns the virtual memory page counters of the host.
func HostVMStats() (VMStats, error) {
	var vm C.vm_statistics64_data_t
	if kr := C.hm_vm_stats(&vm); kr != C.KERN_SUCCESS {
		return VMStats{}, errors.OSCall("host_statistics64", KernReturn(kr))
	}

	return VMStats{
		Free:        uint64(vm.free_count),
		Active:      uint64(vm.active_count),
		Inactive:    uint64(vm.inactive_count),
		Wired:       uint64(vm.wire_count),
		Speculative: uint64(vm.speculative_count),
		Compressed:  uint64(vm.compressor_page_count),
		Purgeable:   uint64(vm.purgeable_count),
		External:    uint64(vm.external_page_count),
	}, nil
}
