// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package firewall applies a basic ufw policy. Everything here is best
// effort: a machine without ufw installed, or with rules already present,
// logs and moves on.
package firewall

import (
	"os/exec"

	"github.com/jgranate/arch-i3-setup/pkg/log"
)

// Apply sets default deny-incoming/allow-outgoing, adds the given allow
// rules, and enables ufw. Returns false if any command failed.
func Apply(allow []string) (success bool) {
	if _, err := exec.LookPath("ufw"); err != nil {
		log.Log("ufw not installed, skipping firewall configuration")
		return true
	}
	success = true
	run := func(args ...string) {
		if _, ok := log.Cmd(exec.Command("ufw", args...)); !ok {
			success = false
		}
	}
	run("default", "deny", "incoming")
	run("default", "allow", "outgoing")
	for _, a := range allow {
		run("allow", a)
	}
	run("--force", "enable")
	return
}
