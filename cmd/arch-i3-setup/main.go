// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// arch-i3-setup provisions a freshly installed Arch system on supported
// laptops: packages, AUR helper, hardware kernel, boot entries, dotfiles,
// services.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/jgranate/arch-i3-setup/pkg/config"
	"github.com/jgranate/arch-i3-setup/pkg/log"
	"github.com/jgranate/arch-i3-setup/pkg/log/flags"
	"github.com/jgranate/arch-i3-setup/pkg/provision"
	"github.com/jgranate/arch-i3-setup/pkg/strs"
)

// exit codes. nothing else is defined.
const (
	exitOK         = 0
	exitPrivileges = 1
	exitNoManifest = 2
)

func main() {
	var opts config.Options
	var espDev string
	var verbose bool

	pflag.StringVar(&opts.Profile, "profile", "", "platform profile file (YAML)")
	pflag.StringVar(&opts.EntriesDir, "entries-dir", "", "boot-loader entries dir (default "+strs.EntriesDir()+")")
	pflag.StringVar(&opts.Manifest, "manifest", "", "package manifest (default $"+strs.PkgManifestEnv()+" or "+strs.PkgManifest()+")")
	pflag.StringVar(&opts.Dotfiles, "dotfiles", "", "dotfiles dir or archive (default $"+strs.DotfilesEnv()+")")
	pflag.StringVar(&opts.User, "user", "", "target user (default $SUDO_USER)")
	pflag.StringVar(&espDev, "esp-dev", "", "device to mount if the boot mount point is empty")
	pflag.BoolVar(&opts.SkipAUR, "skip-aur", false, "skip AUR helper bootstrap and AUR packages")
	pflag.BoolVar(&opts.SkipDotfiles, "skip-dotfiles", false, "skip dotfiles sync")
	pflag.BoolVar(&opts.DryRun, "dry-run", false, "validate inputs and preview boot entry changes only")
	pflag.BoolVar(&verbose, "verbose", os.Getenv(strs.VerboseEnv()) != "", "log everything to the console")
	pflag.Parse()

	if os.Geteuid() != 0 {
		fmt.Fprintln(os.Stderr, "must run with elevated privileges (try sudo)")
		os.Exit(exitPrivileges)
	}

	log.SetPrefix("arch-i3-setup.")
	if verbose {
		log.AddConsoleSink(flags.NA)
	} else {
		log.AddConsoleSink(flags.User | flags.Fatal)
	}
	if !opts.DryRun {
		if path, err := log.AddFileSink(strs.RunLogDir()); err != nil {
			log.Logf("no run log: %s", err)
		} else {
			log.Logf("run log at %s", path)
		}
	}
	defer log.Close()

	c, err := config.Resolve(opts)
	if err != nil {
		if errors.Is(err, config.ENoManifest) {
			log.Msgf("%s", err)
			log.Close()
			os.Exit(exitNoManifest)
		}
		log.Fatalf("%s", err)
	}

	if err := provision.Run(c, espDev); err != nil {
		log.Fatalf("%s", err)
	}
}
