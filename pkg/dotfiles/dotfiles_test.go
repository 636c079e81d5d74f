// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package dotfiles

import (
	"os"
	fp "path/filepath"
	"testing"

	"github.com/mholt/archiver"
	"github.com/stretchr/testify/require"

	"github.com/jgranate/arch-i3-setup/pkg/fileutil"
	"github.com/jgranate/arch-i3-setup/pkg/id"
	"github.com/jgranate/arch-i3-setup/pkg/log/testlog"
)

// a user whose chowns always succeed, whoever runs the test
func selfUser(home string) id.User {
	return id.User{Name: "tester", UID: os.Getuid(), GID: os.Getgid(), Home: home}
}

func writeTree(t *testing.T, root string) {
	t.Helper()
	require := require.New(t)
	require.NoError(os.MkdirAll(fp.Join(root, ".config", "i3"), 0755))
	require.NoError(os.MkdirAll(fp.Join(root, ".git", "objects"), 0755))
	require.NoError(os.WriteFile(fp.Join(root, ".bashrc"), []byte("export EDITOR=vim\n"), 0644))
	require.NoError(os.WriteFile(fp.Join(root, ".config", "i3", "config"), []byte("font pango:monospace 10\n"), 0644))
	require.NoError(os.WriteFile(fp.Join(root, ".git", "HEAD"), []byte("ref: refs/heads/main\n"), 0644))
}

func checkHome(t *testing.T, home string) {
	t.Helper()
	for _, f := range []string{".bashrc", ".config/i3/config"} {
		if !fileutil.Exists(fp.Join(home, f)) {
			t.Errorf("%s not copied", f)
		}
	}
	if fileutil.Exists(fp.Join(home, ".git")) {
		t.Error(".git copied into home")
	}
}

func TestSyncDir(t *testing.T) {
	tlog := testlog.NewTestLog(t, false)
	defer tlog.Freeze()

	src := t.TempDir()
	home := t.TempDir()
	writeTree(t, src)

	if err := Sync(src, selfUser(home)); err != nil {
		t.Fatal(err)
	}
	checkHome(t, home)
}

func TestSyncArchive(t *testing.T) {
	tlog := testlog.NewTestLog(t, false)
	defer tlog.Freeze()

	//dotfiles wrapped in a single top-level dir, like a repo tarball
	stage := t.TempDir()
	writeTree(t, fp.Join(stage, "dotfiles-main"))
	arc := fp.Join(t.TempDir(), "dotfiles.zip")
	require.NoError(t, archiver.Zip.Make(arc, []string{fp.Join(stage, "dotfiles-main")}))

	home := t.TempDir()
	if err := Sync(arc, selfUser(home)); err != nil {
		t.Fatal(err)
	}
	checkHome(t, home)
}

func TestSyncBadSource(t *testing.T) {
	tlog := testlog.NewTestLog(t, false)
	defer tlog.Freeze()

	home := t.TempDir()
	if err := Sync(fp.Join(t.TempDir(), "nonexistent"), selfUser(home)); err == nil {
		t.Error("want error for missing source")
	}

	//exists, but neither dir nor archive
	junk := fp.Join(t.TempDir(), "file.bin")
	if err := os.WriteFile(junk, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Sync(junk, selfUser(home)); err == nil {
		t.Error("want error for unrecognized source")
	}

	if err := Sync(t.TempDir(), id.User{}); err == nil {
		t.Error("want error without target user")
	}
}
