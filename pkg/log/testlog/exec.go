// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package testlog

import (
	"fmt"
	"os/exec"

	"github.com/jgranate/arch-i3-setup/pkg/log"
)

// represents a Cmd in CmdMap
type Key string

// generates key for given command
func CmdKey(args []string) Key {
	k := ""
	for _, arg := range args {
		k += fmt.Sprintf("%s|", arg)
	}
	return Key(k)
}

// canned execution result
type Result struct {
	Res     string
	Success bool
}

// data for use with UseMappedCmdHijacker
type HijackerData struct {
	Result   Result
	RunCount int //number of times the command has been invoked
}

// CmdMap maps command lines to canned results. Commands not present in the
// map report failure.
type CmdMap map[Key]HijackerData

// UseMappedCmdHijacker replaces log.Cmd with one that never executes
// anything: results come from the map, and invocation counts are recorded
// back into it. Freeze() restores log.DefaultCmd.
func (tlog *TstLog) UseMappedCmdHijacker(m CmdMap) {
	log.Cmd = func(cmd *exec.Cmd) (res string, success bool) {
		tlog.t.Helper()
		key := CmdKey(cmd.Args)
		log.Logf("running %v...", cmd.Args)
		data, ok := m[key]
		data.RunCount++
		m[key] = data
		if !ok {
			log.Logf("running %v: no canned result", cmd.Args)
			return "", false
		}
		return data.Result.Res, data.Result.Success
	}
}

// UseCmdHijacker replaces log.Cmd with fn, restoring nothing - pair with
// Freeze().
func (tlog *TstLog) UseCmdHijacker(fn log.CommandFunc) { log.Cmd = fn }
