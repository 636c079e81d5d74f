// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package kernel installs the hardware-specific kernel package and verifies
// the image that lands in /boot really is a kernel of the expected variant.
package kernel

import (
	"fmt"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/jgranate/arch-i3-setup/pkg/log"
	"github.com/jgranate/arch-i3-setup/pkg/pacman"
	"github.com/jgranate/arch-i3-setup/pkg/platform"
)

// Install installs the variant's kernel package (and headers) via pacman.
func Install(v *platform.Variant) error {
	return pacman.Install([]string{v.KernelPkg, v.KernelPkg + "-headers"})
}

// Verify checks that /boot/vmlinuz-<base>-<suffix> exists, parses as a
// bzImage, and carries the variant suffix in its local version.
func Verify(v *platform.Variant) error {
	img := "/boot/vmlinuz-" + v.KernelName()
	ki, err := ReadInfo(img)
	if err != nil {
		return fmt.Errorf("verify %s: %w", img, err)
	}
	if !strings.Contains(ki.LocalVer, v.KernelSuffix) {
		return fmt.Errorf("verify %s: local version %q lacks suffix %q", img, ki.LocalVer, v.KernelSuffix)
	}
	log.Logf("kernel image %s: release %s (%s)", img, ki.Release, ki.Builder)
	return nil
}

// RunningRelease returns the running kernel's release string (uname -r).
func RunningRelease() (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", err
	}
	return unix.ByteSliceToString(uts.Release[:]), nil
}

// RemoveStock removes the stock kernel package once the variant kernel is
// the one running. Best effort - refuses (harmlessly) while the stock
// kernel is still booted.
func RemoveStock(v *platform.Variant) {
	rel, err := RunningRelease()
	if err != nil {
		log.Logf("uname: %s", err)
		return
	}
	if !strings.Contains(rel, v.KernelSuffix) {
		log.Logf("running kernel %s is not the %s variant; keeping stock kernel", rel, v.KernelSuffix)
		return
	}
	if !pacman.IsInstalled(v.KernelBase) {
		return
	}
	if err := pacman.Remove([]string{v.KernelBase}); err != nil {
		log.Logf("stock kernel removal: %s", err)
	}
}
