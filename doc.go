// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Arch-i3-setup turns a minimal Arch install on a supported ROG Zephyrus
// laptop into a ready-to-use system. It is meant to run exactly once after
// the installer reboots, as root, and to be safe to re-run if a pass is
// interrupted.
//
// A pass works through the following stages, in order:
//
//   - verify a usable network link
//   - full package sync and install of the package manifest
//   - bootstrap of an AUR helper and install of AUR-only packages
//   - install of the hardware kernel and regeneration of its initramfs
//   - rewrite of boot-loader entries to point at the hardware kernel,
//     inserting the microcode image where missing; falls back to
//     grub-mkconfig on systems without BLS entries
//   - dotfiles sync into the target user's home
//   - service enablement and firewall rules
//   - removal of the stock kernel once the hardware kernel is running
//
// Stages that affect whether the machine boots are required and abort the
// pass on failure; cosmetic stages log their errors and continue. Platform
// detection uses DMI data, and unknown hardware is rejected before anything
// is modified. Hooks defined in a platform profile run between stages.
//
// Use `mage` (or go run magerunner.go) to build.
package archi3setup
