// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package esp

import "testing"

func TestBootMountpoint(t *testing.T) {
	for _, td := range []struct{ in, want string }{
		{"/boot/loader/entries", "/boot"},
		{"/boot", "/boot"},
		{"/efi/loader/entries", "/efi"},
		{"/boot/loader/entries/", "/boot"},
		{"/", "/boot"},
		{"", "/boot"},
	} {
		if got := bootMountpoint(td.in); got != td.want {
			t.Errorf("%q: got %q, want %q", td.in, got, td.want)
		}
	}
}
