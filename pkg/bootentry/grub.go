// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package bootentry

import (
	"os/exec"

	"github.com/jgranate/arch-i3-setup/pkg/log"
)

// HaveGrub reports whether grub-mkconfig is available.
func HaveGrub() bool {
	_, err := exec.LookPath("grub-mkconfig")
	return err == nil
}

// RegenGrub regenerates the grub config. Used when no loader entries dir
// exists. This is regenerate-and-trust: grub-mkconfig exposes nothing we
// can verify beyond its exit status, so unlike the entry patcher there is
// no after-the-fact check that the new config boots the variant kernel.
func RegenGrub() (success bool) {
	_, success = log.Cmd(exec.Command("grub-mkconfig", "-o", "/boot/grub/grub.cfg"))
	return
}
