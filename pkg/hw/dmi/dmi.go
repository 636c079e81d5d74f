// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package dmi reads DMI (aka SMBIOS) data via dmidecode.
package dmi

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/jgranate/arch-i3-setup/pkg/log"
)

type DmiStrMap map[string]string

// cache data so it's not necessary to call dmidecode over and over. has the
// side effect of making mocking easy.
type dmiCache struct {
	strings   DmiStrMap
	onlyCache bool //use with TestingMock() - only allow cache lookups
}

var cache = dmiCache{strings: DmiStrMap{}}

// effectively mocks this package by pre-populating the cache and only
// allowing cache lookups
func TestingMock(s DmiStrMap) {
	cache = dmiCache{strings: s, onlyCache: true}
}

// String returns the result of 'dmidecode -s <key>'
func String(key string) string {
	return cache.str(key)
}

func (d dmiCache) str(key string) string {
	str, ok := d.strings[key]
	if ok || d.onlyCache {
		return str
	}
	dmiCmd := exec.Command("dmidecode", "-s", key)
	out, err := dmiCmd.CombinedOutput()
	if err != nil {
		log.Logf("error %s executing %v\noutput:%s\n", err, dmiCmd.Args, out)
		return ""
	}
	if len(out) > 3 {
		e := bytes.LastIndex(out, []byte("\n"))
		nl := bytes.LastIndex(out[:e], []byte("\n"))
		//if dmidecode doesn't like the data presented, it may print a second line with an error
		if bytes.HasPrefix(out[nl+1:e], []byte("Invalid entry")) {
			e = nl
		}
		out = out[:e]
		if nl = bytes.LastIndex(out, []byte("\n")); nl >= 0 {
			out = out[nl+1:]
		}
	}
	str = strings.TrimSpace(string(out))
	d.strings[key] = str
	return str
}
