// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Abstraction for strings that someone adapting this tool to different
// hardware or a different distro will likely wish to change.
package strs

import (
	"github.com/jgranate/arch-i3-setup/pkg/log"
)

// Abstraction for strings that adopters will likely wish to change.
type Stringer interface {
	//Prefix used for env vars.
	EnvPrefix() string
	//Base name of the stock kernel, as in /vmlinuz-<base>.
	KernelBase() string
	//Suffix identifying the hardware-specific kernel variant.
	KernelSuffix() string
	//Package providing the hardware-specific kernel.
	KernelPkg() string
	//File name of the early microcode image under /boot.
	UcodeImage() string
	//Directory holding boot-loader entry files.
	EntriesDir() string
	//Default path of the package manifest.
	PkgManifest() string
	//Name of the AUR helper binary.
	AURHelper() string
	//Git URL the AUR helper is built from.
	AURHelperRepo() string
	//Dir for run logs.
	RunLogDir() string
}

var stringImpl Stringer

// Override defaults.
func SetStringer(s Stringer) {
	if stringImpl != nil {
		log.Log("strs: overriding non-nil impl")
	}
	stringImpl = s
}

// Prefix used for env vars.
func EnvPrefix() string {
	if stringImpl != nil {
		return stringImpl.EnvPrefix()
	}
	return "AIS_"
}

// Base name of the stock kernel, as in /vmlinuz-<base>.
func KernelBase() string {
	if stringImpl != nil {
		return stringImpl.KernelBase()
	}
	return "linux"
}

// Suffix identifying the hardware-specific kernel variant.
func KernelSuffix() string {
	if stringImpl != nil {
		return stringImpl.KernelSuffix()
	}
	return "g14"
}

// Package providing the hardware-specific kernel.
func KernelPkg() string {
	if stringImpl != nil {
		return stringImpl.KernelPkg()
	}
	return "linux-g14"
}

// File name of the early microcode image under /boot.
func UcodeImage() string {
	if stringImpl != nil {
		return stringImpl.UcodeImage()
	}
	return "amd-ucode.img"
}

// Directory holding boot-loader entry files.
func EntriesDir() string {
	if stringImpl != nil {
		return stringImpl.EntriesDir()
	}
	return "/boot/loader/entries"
}

// Default path of the package manifest.
func PkgManifest() string {
	if stringImpl != nil {
		return stringImpl.PkgManifest()
	}
	return "/usr/share/arch-i3-setup/pkglist.txt"
}

// Name of the AUR helper binary.
func AURHelper() string {
	if stringImpl != nil {
		return stringImpl.AURHelper()
	}
	return "yay"
}

// Git URL the AUR helper is built from.
func AURHelperRepo() string {
	if stringImpl != nil {
		return stringImpl.AURHelperRepo()
	}
	return "https://aur.archlinux.org/yay-bin.git"
}

// Dir for run logs.
func RunLogDir() string {
	if stringImpl != nil {
		return stringImpl.RunLogDir()
	}
	return "/var/log/arch-i3-setup"
}
