// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package platform

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jgranate/arch-i3-setup/pkg/log"
	"github.com/jgranate/arch-i3-setup/pkg/strs"
)

// LoadProfile reads a YAML profile describing one variant and either
// replaces the matching built-in (same family name) or appends a new
// variant. Lets a user provision hardware this build doesn't know, or
// override the service/package lists for a known model.
func LoadProfile(path string) (*Variant, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	v := new(Variant)
	if err := yaml.Unmarshal(raw, v); err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	if v.Familyname == "" {
		return nil, fmt.Errorf("profile %s: family is required", path)
	}
	if v.KernelBase == "" {
		v.KernelBase = strs.KernelBase()
	}
	if v.KernelSuffix == "" {
		v.KernelSuffix = strs.KernelSuffix()
	}
	if v.KernelPkg == "" {
		v.KernelPkg = strs.KernelPkg()
	}
	for i, known := range variants {
		if known.Familyname == v.Familyname {
			log.Logf("profile %s replaces built-in variant %s", path, v.Familyname)
			variants[i] = v
			return v, nil
		}
	}
	variants = append(variants, v)
	return v, nil
}
