// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package fileutil

import (
	"io"
	"os"
	fp "path/filepath"
	"strings"

	"github.com/jgranate/arch-i3-setup/pkg/log"
)

// CopyFileOwned copies src to dest, creating or truncating dest, and chowns
// the result to uid/gid. Parent dirs must already exist. Mode is taken from
// src with group/other write stripped.
func CopyFileOwned(src, dest string, uid, gid int) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	if err = out.Chmod(info.Mode().Perm() &^ 0022); err != nil {
		return err
	}
	if err = out.Chown(uid, gid); err != nil {
		log.Logf("error %s setting uid/gid of %s", err, dest)
	}
	return nil
}

// CopyTreeOwned walks the tree rooted at src and recreates it under dest,
// chowning everything to uid/gid. Per-file errors are logged; the first one
// is also returned once the walk completes.
func CopyTreeOwned(src, dest string, uid, gid int) error {
	var firstErr error
	keep := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}
	walker := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Logf("error %s walking %s, skipping\n", err, path)
			keep(err)
			return fp.SkipDir
		}
		rel := strings.TrimPrefix(path, src)
		destPath := fp.Join(dest, rel)
		if info.IsDir() {
			if err := os.Mkdir(destPath, 0755); err != nil && !os.IsExist(err) {
				log.Logf("error %s creating %s\n", err, destPath)
				keep(err)
				return fp.SkipDir
			}
			if err := os.Chown(destPath, uid, gid); err != nil {
				log.Logf("chown %s: %s", destPath, err)
			}
			return nil
		}
		if err := CopyFileOwned(path, destPath, uid, gid); err != nil {
			log.Logf("error %s copying %s to %s\n", err, path, destPath)
			keep(err)
		}
		return nil
	}
	if err := fp.Walk(src, walker); err != nil {
		keep(err)
	}
	return firstErr
}

// IsMountpoint searches for given dir in /proc/self/mountinfo, returns true if found
func IsMountpoint(dir string) bool {
	mi, err := os.ReadFile("/proc/self/mountinfo")
	if err != nil {
		log.Logf("error %s", err)
		return false
	}
	for _, line := range strings.Split(string(mi), "\n") {
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if mpFromLine(line) == dir {
			return true
		}
	}
	return false
}

// used by IsMountpoint
func mpFromLine(line string) string {
	elements := strings.Split(line, " ")
	if len(elements) < 6 {
		//elements towards end of line can vary, but those towards beginning
		//seem to stay the same
		log.Logf("failed to parse mountinfo line, skipping: %s", line)
		return ""
	}
	return elements[4]
}
