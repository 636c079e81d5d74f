// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package log

import (
	"os/exec"
)

type CommandFunc func(cmd *exec.Cmd) (out string, success bool)

// Cmd wraps exec.Cmd.CombinedOutput(). Every external tool this project
// runs - pacman, mkinitcpio, systemctl, ... - goes through it, so execs can
// be mocked and tracked by testlog.
var Cmd CommandFunc = DefaultCmd

// DefaultCmd runs a command to completion, capturing combined output and
// logging on failure. On failure returns "", false.
func DefaultCmd(cmd *exec.Cmd) (res string, success bool) {
	Logf("running %v...", cmd.Args)
	out, err := cmd.CombinedOutput()
	if err == nil {
		return string(out), true
	}
	Logf("running %v: error %s\noutput:\n%s\n", cmd.Args, err, string(out))
	return "", false
}
