// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package systemd queries and manipulates services. Shells out to
// 'systemctl'. Defaults to the system service manager; use UserContext()
// for user services.
package systemd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/jgranate/arch-i3-setup/pkg/log"
)

// Methods called on this operate in system context.
func SystemContext() (ctx sysdCtx) {
	return
}

// Methods called on this operate in user context.
func UserContext() (ctx sysdCtx) {
	ctx.user = true
	return
}

// True if systemctl reports service is active.
func IsActive(service string) bool { return SystemContext().IsActive(service) }
func (ctx sysdCtx) IsActive(service string) bool {
	return ctx.sysctlCmdBool("is-active", service)
}

// True if systemctl reports service is enabled.
func IsEnabled(service string) bool { return SystemContext().IsEnabled(service) }
func (ctx sysdCtx) IsEnabled(service string) bool {
	return ctx.sysctlCmdBool("is-enabled", service)
}

// Enable and start a unit in one shot, returning any error.
func EnableNow(unit string) error { return SystemContext().EnableNow(unit) }
func (ctx sysdCtx) EnableNow(unit string) error {
	sysctl := exec.Command("systemctl", ctx.arg(), "enable", "--now", unit)
	if _, success := log.Cmd(sysctl); !success {
		return fmt.Errorf("enable --now %s failed", unit)
	}
	return nil
}

// Start a service, returning any error.
func Start(service string) error { return SystemContext().Start(service) }
func (ctx sysdCtx) Start(service string) error {
	return ctx.sysctlCmdErr("start", service)
}

// Stop a service, returning any error.
func Stop(service string) error { return SystemContext().Stop(service) }
func (ctx sysdCtx) Stop(service string) error {
	return ctx.sysctlCmdErr("stop", service)
}

// List any services that are failed.
func Failed() []string { return SystemContext().Failed() }
func (ctx sysdCtx) Failed() (list []string) {
	sysctl := exec.Command("systemctl", ctx.arg(), "--failed", "--no-legend")
	out, err := sysctl.Output()
	if err != nil {
		log.Logf("error %s running %v", err, sysctl.Args)
		return nil
	}
	for _, l := range strings.Split(string(out), "\n") {
		svc := strings.TrimSpace(strings.SplitN(strings.TrimSpace(l), " ", 2)[0])
		if len(svc) > 0 {
			list = append(list, svc)
		}
	}
	return
}

// Reboot.
func Reboot() error {
	return exec.Command("systemctl", "--system", "reboot", "-q").Run()
}

// Is the current init system systemd?
func IsSystemd() bool {
	data, err := os.ReadFile("/proc/1/cmdline")
	if err != nil {
		log.Logf("error determining init system: %s", err)
	}
	return strings.Contains(string(data), "systemd")
}

type sysdCtx struct {
	user bool
}

func (ctx sysdCtx) arg() string {
	if ctx.user {
		return "--user"
	}
	return "--system"
}

func (ctx sysdCtx) sysctlCmdBool(cmd, arg string) bool {
	err := ctx.sysctlCmdErr(cmd, arg)
	if err == nil {
		return true
	}
	if _, ok := err.(*exec.ExitError); ok {
		//process exited with non-zero error code
		return false
	}
	log.Logf("error %s running systemctl with cmd=%s, arg=%s", err, cmd, arg)
	return false
}

func (ctx sysdCtx) sysctlCmdErr(cmd, arg string) error {
	sysctl := exec.Command("systemctl", ctx.arg(), cmd, "-q", arg)
	return sysctl.Run()
}
