// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package pacman

import (
	"strings"
	"testing"

	"github.com/jgranate/arch-i3-setup/pkg/id"
	"github.com/jgranate/arch-i3-setup/pkg/log/testlog"
)

func TestBootstrapHelperBadRepo(t *testing.T) {
	tlog := testlog.NewTestLog(t, false)
	defer tlog.Freeze()
	tlog.UseMappedCmdHijacker(testlog.CmdMap{}) //nothing may execute

	u := id.User{Name: "tester", UID: 1000, GID: 1000, Home: "/home/tester"}
	for _, repo := range []string{
		"git://aur.archlinux.org/yay-bin.git",
		"http://aur.archlinux.org/yay-bin.git",
		"ssh://aur@aur.archlinux.org/yay-bin.git",
	} {
		err := BootstrapHelper("definitely-not-on-path", repo, u)
		if err == nil {
			t.Errorf("%s: want refusal", repo)
			continue
		}
		if !strings.Contains(err.Error(), repo) {
			t.Errorf("%s: error does not name the url: %s", repo, err)
		}
	}
}

func TestBootstrapHelperNoUser(t *testing.T) {
	tlog := testlog.NewTestLog(t, false)
	defer tlog.Freeze()
	tlog.UseMappedCmdHijacker(testlog.CmdMap{})

	err := BootstrapHelper("definitely-not-on-path", "https://aur.archlinux.org/yay-bin.git", id.User{})
	if err == nil {
		t.Error("want error without a target user")
	}
}
