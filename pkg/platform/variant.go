// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package platform contains data on the laptop models this tool knows how
// to provision. This includes sufficient data for identification of a
// particular variant, plus the bits that differ between models: which
// hardware kernel to install, which microcode image applies, which services
// to enable.
package platform

import (
	"regexp"

	"github.com/jgranate/arch-i3-setup/pkg/steps"
)

// Variant describes a particular laptop model.
type Variant struct {
	Familyname string `yaml:"family"` //generic family code name, lower case. ex: zephyrus

	DmiSysVendor  string      `yaml:"dmiSysVendor"`  //system-manufacturer from DMI
	DmiProdRegex  string      `yaml:"dmiProdRegex"`  //regex matching system-product-name from DMI
	SerNumField   string      `yaml:"serNumField"`   //'dmidecode -s' field holding the serial number
	KernelBase    string      `yaml:"kernelBase"`    //stock kernel base name, as in /vmlinuz-<base>
	KernelSuffix  string      `yaml:"kernelSuffix"`  //suffix of the hardware kernel variant
	KernelPkg     string      `yaml:"kernelPkg"`     //package providing the hardware kernel
	UcodeImage    string      `yaml:"ucodeImage"`    //early microcode image file name under /boot
	Services      []string    `yaml:"services"`      //systemd units to enable
	ExtraPkgs     []string    `yaml:"extraPkgs"`     //packages beyond the manifest
	AURPkgs       []string    `yaml:"aurPkgs"`       //packages built via the AUR helper
	FirewallAllow []string    `yaml:"firewallAllow"` //ufw allow rules
	Hooks         steps.Steps `yaml:"hooks"`         //post-install hook steps

	prodRE *regexp.Regexp
}

// Matches reports whether the variant's DMI identifiers match the given
// vendor and product name.
func (v *Variant) Matches(vendor, product string) bool {
	if v.DmiSysVendor != vendor {
		return false
	}
	if v.prodRE == nil {
		re, err := regexp.Compile(v.DmiProdRegex)
		if err != nil {
			return false
		}
		v.prodRE = re
	}
	return v.prodRE.MatchString(product)
}

// KernelName returns the full name of the hardware kernel variant,
// <base>-<suffix>.
func (v *Variant) KernelName() string { return v.KernelBase + "-" + v.KernelSuffix }

// models this tool ships knowledge of. a profile file can replace or extend
// this list.
var variants = []*Variant{
	{
		Familyname:   "zephyrus-g14",
		DmiSysVendor: "ASUSTeK COMPUTER INC.",
		DmiProdRegex: `^ROG Zephyrus G14 GA40[12]`,
		SerNumField:  "system-serial-number",
		KernelBase:   "linux",
		KernelSuffix: "g14",
		KernelPkg:    "linux-g14",
		UcodeImage:   "amd-ucode.img",
		Services: []string{
			"NetworkManager.service",
			"bluetooth.service",
			"asusd.service",
			"supergfxd.service",
			"power-profiles-daemon.service",
			"fstrim.timer",
		},
		AURPkgs:       []string{"asusctl", "supergfxctl"},
		FirewallAllow: []string{"ssh"},
	},
	{
		Familyname:   "zephyrus-g15",
		DmiSysVendor: "ASUSTeK COMPUTER INC.",
		DmiProdRegex: `^ROG Zephyrus G15 GA50[23]`,
		SerNumField:  "system-serial-number",
		KernelBase:   "linux",
		KernelSuffix: "g14", //g15 uses the same community kernel
		KernelPkg:    "linux-g14",
		UcodeImage:   "amd-ucode.img",
		Services: []string{
			"NetworkManager.service",
			"bluetooth.service",
			"asusd.service",
			"power-profiles-daemon.service",
			"fstrim.timer",
		},
		AURPkgs:       []string{"asusctl"},
		FirewallAllow: []string{"ssh"},
	},
}

// Known returns the variants this build knows about.
func Known() []*Variant { return variants }
