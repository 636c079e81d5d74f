// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package firewall

import (
	"os"
	fp "path/filepath"
	"testing"

	"github.com/jgranate/arch-i3-setup/pkg/log/testlog"
)

// LookPath needs a real executable file; the hijacker keeps it from running
func fakeUfw(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(fp.Join(dir, "ufw"), []byte("#!/bin/sh\nexit 1\n"), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir)
}

func TestApply(t *testing.T) {
	tlog := testlog.NewTestLog(t, false)
	defer tlog.Freeze()
	fakeUfw(t)

	ok := testlog.Result{Success: true}
	cmds := testlog.CmdMap{
		testlog.CmdKey([]string{"ufw", "default", "deny", "incoming"}):  {Result: ok},
		testlog.CmdKey([]string{"ufw", "default", "allow", "outgoing"}): {Result: ok},
		testlog.CmdKey([]string{"ufw", "allow", "ssh"}):                 {Result: ok},
		testlog.CmdKey([]string{"ufw", "--force", "enable"}):            {Result: ok},
	}
	tlog.UseMappedCmdHijacker(cmds)

	if !Apply([]string{"ssh"}) {
		t.Error("apply failed")
	}
	for k, d := range cmds {
		if d.RunCount != 1 {
			t.Errorf("%s ran %d times", k, d.RunCount)
		}
	}
}

func TestApplyRuleFails(t *testing.T) {
	tlog := testlog.NewTestLog(t, false)
	defer tlog.Freeze()
	fakeUfw(t)

	ok := testlog.Result{Success: true}
	cmds := testlog.CmdMap{
		testlog.CmdKey([]string{"ufw", "default", "deny", "incoming"}):  {Result: ok},
		testlog.CmdKey([]string{"ufw", "default", "allow", "outgoing"}): {Result: ok},
		//"allow bogus" absent from the map: reports failure
		testlog.CmdKey([]string{"ufw", "--force", "enable"}): {Result: ok},
	}
	tlog.UseMappedCmdHijacker(cmds)

	if Apply([]string{"bogus"}) {
		t.Error("failure not reported")
	}
	//enable still runs after the failed rule
	k := testlog.CmdKey([]string{"ufw", "--force", "enable"})
	if cmds[k].RunCount != 1 {
		t.Error("enable skipped after rule failure")
	}
}

func TestApplyNoUfw(t *testing.T) {
	tlog := testlog.NewTestLog(t, false)
	defer tlog.Freeze()
	t.Setenv("PATH", t.TempDir())
	tlog.UseMappedCmdHijacker(testlog.CmdMap{})

	if !Apply([]string{"ssh"}) {
		t.Error("missing ufw should not count as failure")
	}
}
