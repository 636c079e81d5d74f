// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package dotfiles installs a dotfiles tree into the target user's home.
// The source is either a directory (typically a checked-out repo) or an
// archive; either way the tree is copied with the user's uid/gid so a
// root-run pass doesn't leave root-owned files in $HOME.
package dotfiles

import (
	"fmt"
	"os"
	fp "path/filepath"

	"github.com/mholt/archiver"

	"github.com/jgranate/arch-i3-setup/pkg/fileutil"
	"github.com/jgranate/arch-i3-setup/pkg/id"
	"github.com/jgranate/arch-i3-setup/pkg/log"
)

// Sync copies the dotfiles tree at src into user's home. src may be a dir
// or an archive (zip, tar.gz, ...). A .git dir at the top level is not
// copied. Per-file failures are logged; the first error is returned after
// the copy completes.
func Sync(src string, user id.User) error {
	if user.Name == "" {
		return fmt.Errorf("dotfiles: no target user")
	}
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	dir := src
	if !info.IsDir() {
		ar := archiver.MatchingFormat(src)
		if ar == nil {
			return fmt.Errorf("dotfiles: %s is neither a dir nor a recognized archive", src)
		}
		tmp, err := os.MkdirTemp("", "dotfiles")
		if err != nil {
			return err
		}
		defer os.RemoveAll(tmp)
		if err := ar.Open(src, tmp); err != nil {
			return fmt.Errorf("dotfiles: extract %s: %w", src, err)
		}
		dir = tmp
		//archives often wrap everything in a single top-level dir
		if entries, err := os.ReadDir(tmp); err == nil && len(entries) == 1 && entries[0].IsDir() {
			dir = fp.Join(tmp, entries[0].Name())
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var firstErr error
	for _, ent := range entries {
		if ent.Name() == ".git" {
			continue
		}
		srcPath := fp.Join(dir, ent.Name())
		destPath := fp.Join(user.Home, ent.Name())
		if ent.IsDir() {
			err = fileutil.CopyTreeOwned(srcPath, destPath, user.UID, user.GID)
		} else {
			err = fileutil.CopyFileOwned(srcPath, destPath, user.UID, user.GID)
		}
		if err != nil {
			log.Logf("dotfiles: %s: %s", ent.Name(), err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	log.Logf("dotfiles synced from %s to %s", src, user.Home)
	return firstErr
}
