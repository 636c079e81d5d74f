// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package initramfs regenerates initial ramdisk images and sanity-checks
// the results. mkinitcpio does the real work; this package confirms the
// images it leaves behind decode, and that the early microcode image is a
// cpio archive actually carrying microcode.
package initramfs

import (
	"fmt"
	"os/exec"

	"github.com/jgranate/arch-i3-setup/pkg/log"
)

// Regen regenerates all initramfs images per the installed presets
// (mkinitcpio -P). Blocks until mkinitcpio exits; image files appearing
// under /boot are logged as they land.
func Regen() error {
	stop := watchImages("/boot")
	defer stop()
	if _, success := log.Cmd(exec.Command("mkinitcpio", "-P")); !success {
		return fmt.Errorf("mkinitcpio -P failed")
	}
	return nil
}

// Check validates the initramfs for the given kernel name, ex
// /boot/initramfs-linux-g14.img and its fallback image. The fallback being
// absent is logged, not an error - presets vary.
func Check(kernelName string) error {
	img := "/boot/initramfs-" + kernelName + ".img"
	if err := Inspect(img); err != nil {
		return err
	}
	fb := "/boot/initramfs-" + kernelName + "-fallback.img"
	if err := Inspect(fb); err != nil {
		log.Logf("fallback image: %s", err)
	}
	return nil
}
