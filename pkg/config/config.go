// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package config resolves everything the provisioning pass needs to know -
// target user, package manifest, dotfiles source, platform variant - once,
// at startup. Nothing else reads the environment or passwd ad hoc; the
// resolved Config is passed down as a parameter.
package config

import (
	"fmt"
	"os"
	fp "path/filepath"

	"github.com/jgranate/arch-i3-setup/pkg/id"
	"github.com/jgranate/arch-i3-setup/pkg/log"
	"github.com/jgranate/arch-i3-setup/pkg/platform"
	"github.com/jgranate/arch-i3-setup/pkg/strs"
)

var (
	ENoManifest = fmt.Errorf("package manifest does not exist")
	ENoUser     = fmt.Errorf("cannot determine target user")
)

// Options are the knobs the command line exposes.
type Options struct {
	Profile      string //path to a platform profile file, or ""
	EntriesDir   string //override boot-loader entries dir
	Manifest     string //override package manifest path
	Dotfiles     string //override dotfiles source
	User         string //override target user
	SkipAUR      bool
	SkipDotfiles bool
	DryRun       bool
}

// Config is the run-once resolved state for a provisioning pass.
type Config struct {
	TargetUser id.User //the human the machine is being set up for; never root
	Manifest   string  //package manifest path
	Dotfiles   string  //dotfiles source dir or archive; "" disables the step
	EntriesDir string  //boot-loader entries dir
	UcodePath  string  //full path of the early microcode image
	Platform   *platform.Variant
	Serial     string

	SkipAUR      bool
	SkipDotfiles bool
	DryRun       bool
}

// Resolve builds a Config from options, environment, DMI, and passwd. The
// platform must be identifiable (possibly via profile); the manifest must
// exist. Target user resolution failure is not fatal here - steps needing a
// user are skipped later - but is logged.
func Resolve(opts Options) (*Config, error) {
	if opts.Profile != "" {
		if _, err := platform.LoadProfile(opts.Profile); err != nil {
			return nil, err
		}
	}
	plat, err := platform.Identify()
	if err != nil {
		return nil, err
	}

	c := &Config{
		Platform:     plat,
		Serial:       plat.Serial(),
		SkipAUR:      opts.SkipAUR,
		SkipDotfiles: opts.SkipDotfiles,
		DryRun:       opts.DryRun,
	}

	c.Manifest = firstNonEmpty(opts.Manifest, os.Getenv(strs.PkgManifestEnv()), strs.PkgManifest())
	if _, err := os.Stat(c.Manifest); err != nil {
		return nil, fmt.Errorf("%w: %s", ENoManifest, c.Manifest)
	}

	c.EntriesDir = firstNonEmpty(opts.EntriesDir, strs.EntriesDir())
	ucode := plat.UcodeImage
	if ucode == "" {
		ucode = strs.UcodeImage()
	}
	c.UcodePath = fp.Join("/boot", ucode)

	user := firstNonEmpty(opts.User, os.Getenv("SUDO_USER"))
	if user == "" || user == "root" {
		log.Log("no target user (run under sudo or pass --user); user steps will be skipped")
	} else {
		c.TargetUser, err = id.LookupUser("/", user)
		if err != nil {
			log.Logf("target user: %s", err)
			return nil, ENoUser
		}
	}

	c.Dotfiles = firstNonEmpty(opts.Dotfiles, os.Getenv(strs.DotfilesEnv()))
	if c.Dotfiles == "" && c.TargetUser.Home != "" {
		//convention from the shell era: ~/dotfiles if present
		def := fp.Join(c.TargetUser.Home, "dotfiles")
		if _, err := os.Stat(def); err == nil {
			c.Dotfiles = def
		}
	}
	return c, nil
}

// HaveUser reports whether a non-root target user was resolved.
func (c *Config) HaveUser() bool { return c.TargetUser.Name != "" }

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
