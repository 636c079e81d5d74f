// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package pacman wraps the system package manager. Shells out to 'pacman';
// all invocations are single-attempt and non-interactive.
package pacman

import (
	"fmt"
	"os/exec"

	"github.com/hashicorp/go-multierror"

	"github.com/jgranate/arch-i3-setup/pkg/log"
)

// Refresh syncs the package databases and applies pending upgrades.
func Refresh() error {
	_, success := log.Cmd(exec.Command("pacman", "-Syu", "--noconfirm"))
	if !success {
		return fmt.Errorf("pacman -Syu failed")
	}
	return nil
}

// Install installs the given packages in one transaction. On failure it
// retries per package so one broken package doesn't sink the rest, and
// returns the per-package errors aggregated.
func Install(pkgs []string) error {
	if len(pkgs) == 0 {
		return nil
	}
	args := append([]string{"-S", "--needed", "--noconfirm"}, pkgs...)
	if _, success := log.Cmd(exec.Command("pacman", args...)); success {
		return nil
	}
	log.Logf("batch install failed, retrying %d packages individually", len(pkgs))
	var errs *multierror.Error
	for _, p := range pkgs {
		if _, success := log.Cmd(exec.Command("pacman", "-S", "--needed", "--noconfirm", p)); !success {
			errs = multierror.Append(errs, fmt.Errorf("install %s failed", p))
		}
	}
	return errs.ErrorOrNil()
}

// Remove removes packages, recursively pruning now-unneeded deps.
// Best effort.
func Remove(pkgs []string) error {
	if len(pkgs) == 0 {
		return nil
	}
	args := append([]string{"-Rns", "--noconfirm"}, pkgs...)
	if _, success := log.Cmd(exec.Command("pacman", args...)); !success {
		return fmt.Errorf("pacman -Rns %v failed", pkgs)
	}
	return nil
}

// IsInstalled reports whether pkg is installed.
func IsInstalled(pkg string) bool {
	err := exec.Command("pacman", "-Qi", pkg).Run()
	return err == nil
}
