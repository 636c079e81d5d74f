// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package platform

import (
	"fmt"

	"github.com/jgranate/arch-i3-setup/pkg/hw/dmi"
	"github.com/jgranate/arch-i3-setup/pkg/log"
)

var EUnknownPlatform = fmt.Errorf("no known variant matches this machine")

// Identify picks the variant matching this machine's DMI data. dmidecode
// requires root, which main() checks before anything else.
func Identify() (*Variant, error) {
	vendor := dmi.String("system-manufacturer")
	product := dmi.String("system-product-name")
	for _, v := range variants {
		if v.Matches(vendor, product) {
			log.Logf("identified platform %s (%s / %s)", v.Familyname, vendor, product)
			return v, nil
		}
	}
	log.Logf("unidentified platform: vendor=%q product=%q", vendor, product)
	return nil, EUnknownPlatform
}

// Serial returns the unit serial number, or "" if unavailable.
func (v *Variant) Serial() string {
	if v.SerNumField == "" {
		return ""
	}
	return dmi.String(v.SerNumField)
}
