// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package provision runs the post-install pass: packages, AUR helper,
// hardware kernel, boot entries, dotfiles, services, firewall. Strictly
// sequential; each external tool runs to completion before the next step.
package provision

import (
	"fmt"

	"github.com/jgranate/arch-i3-setup/pkg/bootentry"
	"github.com/jgranate/arch-i3-setup/pkg/config"
	"github.com/jgranate/arch-i3-setup/pkg/dotfiles"
	"github.com/jgranate/arch-i3-setup/pkg/esp"
	"github.com/jgranate/arch-i3-setup/pkg/fileutil"
	"github.com/jgranate/arch-i3-setup/pkg/firewall"
	"github.com/jgranate/arch-i3-setup/pkg/initramfs"
	"github.com/jgranate/arch-i3-setup/pkg/kernel"
	"github.com/jgranate/arch-i3-setup/pkg/log"
	"github.com/jgranate/arch-i3-setup/pkg/netcheck"
	"github.com/jgranate/arch-i3-setup/pkg/pacman"
	"github.com/jgranate/arch-i3-setup/pkg/steps"
	"github.com/jgranate/arch-i3-setup/pkg/strs"
	"github.com/jgranate/arch-i3-setup/pkg/systemd"
)

// Run executes the provisioning pass. espDev optionally names a device to
// mount if the boot mount point is empty. Returns an error when a required
// step fails; best-effort failures are logged, summarized, and swallowed.
func Run(c *config.Config, espDev string) error {
	v := c.Platform
	log.Msgf("provisioning %s (serial %s)", v.Familyname, c.Serial)
	p := &pass{}
	hooks := hookRunner(c, p)

	if c.DryRun {
		return dryRun(c, p)
	}

	if err := p.run("network check", Required, netcheck.Require); err != nil {
		return err
	}

	hooks(steps.RunBeforePackages)
	if err := p.run("package db refresh", Required, pacman.Refresh); err != nil {
		return err
	}
	if err := p.run("manifest install", Required, func() error {
		pkgs, err := pacman.LoadManifest(c.Manifest)
		if err != nil {
			return err
		}
		return pacman.Install(append(pkgs, v.ExtraPkgs...))
	}); err != nil {
		return err
	}
	hooks(steps.RunAfterPackages)

	if c.SkipAUR {
		p.skip("AUR helper", "--skip-aur")
	} else {
		_ = p.run("AUR helper", BestEffort, func() error {
			if err := pacman.BootstrapHelper(strs.AURHelper(), strs.AURHelperRepo(), c.TargetUser); err != nil {
				return err
			}
			pacman.InstallAUR(strs.AURHelper(), c.TargetUser, v.AURPkgs)
			return nil
		})
	}

	hooks(steps.RunBeforeKernel)
	_ = p.run("ESP mount check", BestEffort, func() error {
		return esp.EnsureMounted(c.EntriesDir, espDev)
	})
	if err := p.run("hardware kernel install", Required, func() error {
		return kernel.Install(v)
	}); err != nil {
		return err
	}
	if err := p.run("kernel image verify", Required, func() error {
		return kernel.Verify(v)
	}); err != nil {
		return err
	}
	if err := p.run("initramfs regen", Required, initramfs.Regen); err != nil {
		return err
	}
	_ = p.run("initramfs check", BestEffort, func() error {
		return initramfs.Check(v.KernelName())
	})
	_ = p.run("boot entry patch", BestEffort, func() error {
		return patchBoot(c)
	})
	hooks(steps.RunAfterKernel)

	if c.SkipDotfiles || c.Dotfiles == "" {
		p.skip("dotfiles", "no source configured")
	} else {
		_ = p.run("dotfiles", BestEffort, func() error {
			return dotfiles.Sync(c.Dotfiles, c.TargetUser)
		})
	}
	hooks(steps.RunAfterDotfiles)

	_ = p.run("services", BestEffort, func() error { return enableServices(v.Services) })
	_ = p.run("firewall", BestEffort, func() error {
		if !firewall.Apply(v.FirewallAllow) {
			return fmt.Errorf("one or more ufw commands failed")
		}
		return nil
	})
	_ = p.run("stock kernel removal", BestEffort, func() error {
		kernel.RemoveStock(v)
		return nil
	})
	hooks(steps.RunFinal)

	if n := p.summary(); n > 0 {
		log.Msgf("done, with %d ignored failure(s) - see run log", n)
	} else {
		log.Msg("done - reboot to the new kernel")
	}
	return nil
}

// patchBoot rewrites loader entries, or falls back to grub config
// regeneration when there are none to patch.
func patchBoot(c *config.Config) error {
	v := c.Platform

	//only reference the microcode image if it validates as one
	ucode := c.UcodePath
	if ucode != "" && fileutil.Exists(ucode) {
		if err := initramfs.ValidUcode(ucode); err != nil {
			log.Logf("microcode image rejected: %s", err)
			ucode = ""
		}
	}

	patcher := &bootentry.Patcher{
		EntriesDir: c.EntriesDir,
		Base:       v.KernelBase,
		Suffix:     v.KernelSuffix,
		UcodePath:  ucode,
		DryRun:     c.DryRun,
	}
	rep := patcher.Patch()
	if rep.Inspected == 0 {
		if bootentry.HaveGrub() {
			log.Logf("no loader entries; regenerating grub config instead")
			if !bootentry.RegenGrub() {
				return fmt.Errorf("grub-mkconfig failed")
			}
			return nil
		}
		return fmt.Errorf("no loader entries under %s and no grub-mkconfig", c.EntriesDir)
	}
	return rep.Err()
}

func enableServices(units []string) error {
	if !systemd.IsSystemd() {
		return fmt.Errorf("init is not systemd; cannot enable services")
	}
	var firstErr error
	for _, u := range units {
		if systemd.IsEnabled(u) && systemd.IsActive(u) {
			continue
		}
		if err := systemd.EnableNow(u); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// hookRunner binds profile hook steps to the pass. Hook failures are
// always best-effort.
func hookRunner(c *config.Config, p *pass) func(steps.WhenType) {
	data := steps.StepData{
		User:     c.TargetUser.Name,
		Home:     c.TargetUser.Home,
		Manifest: c.Manifest,
		Dotfiles: c.Dotfiles,
	}
	hooks := c.Platform.Hooks
	return func(when steps.WhenType) {
		if len(hooks) == 0 {
			return
		}
		_ = p.run(fmt.Sprintf("hooks(%s)", when), BestEffort, func() error {
			if !hooks.RunApplicable(when, data) {
				return fmt.Errorf("hook step failed")
			}
			return nil
		})
	}
}

// dryRun validates inputs and previews the boot entry rewrite without
// changing anything.
func dryRun(c *config.Config, p *pass) error {
	_ = p.run("network check", BestEffort, netcheck.Require)
	if err := p.run("manifest parse", Required, func() error {
		pkgs, err := pacman.LoadManifest(c.Manifest)
		if err == nil {
			log.Logf("manifest %s: %d packages", c.Manifest, len(pkgs))
		}
		return err
	}); err != nil {
		return err
	}
	_ = p.run("boot entry patch (dry run)", BestEffort, func() error {
		return patchBoot(c)
	})
	p.summary()
	log.Msg("dry run complete; nothing was changed")
	return nil
}
