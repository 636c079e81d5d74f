// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package pacman

import (
	"fmt"
	"os"
	"os/exec"

	giturls "github.com/whilp/git-urls"

	"github.com/jgranate/arch-i3-setup/pkg/id"
	"github.com/jgranate/arch-i3-setup/pkg/log"
)

// HaveHelper reports whether the AUR helper binary is on PATH.
func HaveHelper(helper string) bool {
	_, err := exec.LookPath(helper)
	return err == nil
}

// BootstrapHelper builds and installs the AUR helper from its repo.
// makepkg refuses to run as root, so the clone and build run as the target
// user in a temp dir owned by them.
func BootstrapHelper(helper, repo string, user id.User) error {
	if HaveHelper(helper) {
		log.Logf("%s already installed", helper)
		return nil
	}
	if user.Name == "" {
		return fmt.Errorf("bootstrap %s: no target user to build as", helper)
	}
	u, err := giturls.Parse(repo)
	if err != nil {
		return fmt.Errorf("bootstrap %s: bad repo url %q: %w", helper, repo, err)
	}
	if u.Scheme != "https" {
		return fmt.Errorf("bootstrap %s: refusing non-https repo url %q", helper, repo)
	}

	dir, err := os.MkdirTemp("", helper+"-build")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)
	if err := os.Chown(dir, user.UID, user.GID); err != nil {
		return err
	}

	clone := exec.Command("runuser", "-u", user.Name, "--", "git", "clone", "--depth", "1", repo, dir+"/src")
	if _, success := log.Cmd(clone); !success {
		return fmt.Errorf("bootstrap %s: clone failed", helper)
	}
	build := exec.Command("runuser", "-u", user.Name, "--", "makepkg", "-si", "--noconfirm")
	build.Dir = dir + "/src"
	if _, success := log.Cmd(build); !success {
		return fmt.Errorf("bootstrap %s: makepkg failed", helper)
	}
	return nil
}

// InstallAUR installs packages via the AUR helper, as the target user.
// Individual failures are logged and do not stop the rest.
func InstallAUR(helper string, user id.User, pkgs []string) {
	if len(pkgs) == 0 {
		return
	}
	if user.Name == "" {
		log.Log("no target user; skipping AUR packages")
		return
	}
	args := append([]string{"-u", user.Name, "--", helper, "-S", "--noconfirm", "--needed"}, pkgs...)
	if _, success := log.Cmd(exec.Command("runuser", args...)); !success {
		log.Logf("AUR install of %v failed; continuing", pkgs)
	}
}
