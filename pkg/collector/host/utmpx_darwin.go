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

package host

/*
#include <string.h>
#include <utmpx.h>

static int hm_next_user(char *buf, size_t n) {
	struct utmpx *e;
	while ((e = getutxent()) != NULL) {
		if (e->ut_type != USER_PROCESS || e->ut_user[0] == 0) {
			continue;
		}
		size_t l = strnlen(e->ut_user, sizeof(e->ut_user));
		if (l >= n) {
			l = n - 1;
		}
		memcpy(buf, e->ut_user, l);
		buf[l] = 0;
		return 1;
	}
	return 0;
}
*/
import "C"

import "sync"

// getutxent keeps a process-wide cursor.
var utmpxMu sync.Mutex

func utmpxUsers() ([]string, error) {
	utmpxMu.Lock()
	defer utmpxMu.Unlock()

	C.setutxent()
	defer C.endutxent()

	var (
		names []string
		buf   [257]C.char
	)
	for C.hm_next_user(&buf[0], C.size_t(len(buf))) != 0 {
		names = append(names, C.GoString(&buf[0]))
	}
	return names, nil
}
