// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package esp makes sure the EFI system partition is mounted before anyone
// touches kernels or loader entries under /boot.
package esp

import (
	"fmt"
	fp "path/filepath"
	"strings"

	"github.com/u-root/u-root/pkg/mount"

	"github.com/jgranate/arch-i3-setup/pkg/fileutil"
	"github.com/jgranate/arch-i3-setup/pkg/log"
)

// EnsureMounted checks that the filesystem holding entriesDir is mounted.
// If it is not and dev is non-empty, the device is mounted at the boot
// mount point (entriesDir's root, ex /boot for /boot/loader/entries).
// With no device to try, a missing mount is an error - installing kernels
// onto the root fs shadowed by an unmounted ESP bricks the boot sequence.
func EnsureMounted(entriesDir, dev string) error {
	mp := bootMountpoint(entriesDir)
	if fileutil.IsMountpoint(mp) {
		return nil
	}
	if dev == "" {
		return fmt.Errorf("%s is not a mountpoint; mount the ESP first (or pass --esp-dev)", mp)
	}
	log.Logf("mounting %s at %s", dev, mp)
	if _, err := mount.TryMount(dev, mp, "", 0); err != nil {
		return fmt.Errorf("mount %s at %s: %w", dev, mp, err)
	}
	return nil
}

// bootMountpoint reduces an entries dir to the mount point holding it:
// /boot/loader/entries -> /boot, /efi/loader/entries -> /efi.
func bootMountpoint(entriesDir string) string {
	clean := fp.Clean(entriesDir)
	parts := strings.SplitN(strings.TrimPrefix(clean, "/"), "/", 2)
	if len(parts) == 0 || parts[0] == "" || parts[0] == "." {
		return "/boot"
	}
	return "/" + parts[0]
}
