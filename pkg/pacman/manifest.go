// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package pacman

import (
	"fmt"
	"strings"

	"github.com/jgranate/arch-i3-setup/pkg/fileutil"
)

// arbitrary cap, far above any sane package list
const maxManifestLines = 4096

// LoadManifest reads the package manifest: one package per line, blank
// lines and #-comments ignored. A line with whitespace inside it is
// rejected - almost certainly a mangled edit, better to stop than install
// half a list.
func LoadManifest(path string) ([]string, error) {
	lines, err := fileutil.ReadConfigLines(path, maxManifestLines)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		if strings.ContainsAny(l, " \t") {
			return nil, fmt.Errorf("manifest %s: malformed line %q", path, l)
		}
	}
	return lines, nil
}
