// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package fileutil

import (
	"os"
	fp "path/filepath"
	"strings"
	"testing"

	"github.com/jgranate/arch-i3-setup/pkg/log/testlog"
)

func TestReadConfigLines(t *testing.T) {
	tlog := testlog.NewTestLog(t, false)
	defer tlog.Freeze()

	path := fp.Join(t.TempDir(), "conf")
	content := "# header comment\n\nfirst\n  second  \nthird # trailing\n#only comment\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	lines, err := ReadConfigLines(path, 100)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"first", "second", "third"}
	if strings.Join(lines, ",") != strings.Join(want, ",") {
		t.Errorf("got %v, want %v", lines, want)
	}

	//maxLines caps the result
	lines, err = ReadConfigLines(path, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 {
		t.Errorf("maxLines=2, got %v", lines)
	}
}

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := fp.Join(dir, "f")

	//new file gets perm
	if err := WriteAtomic(path, []byte("one"), 0600); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode %o, want 0600", info.Mode().Perm())
	}

	//overwrite preserves existing mode, ignoring perm arg
	if err := os.Chmod(path, 0640); err != nil {
		t.Fatal(err)
	}
	if err := WriteAtomic(path, []byte("two"), 0666); err != nil {
		t.Fatal(err)
	}
	info, err = os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0640 {
		t.Errorf("mode %o, want 0640", info.Mode().Perm())
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "two" {
		t.Errorf("content %q", raw)
	}

	//no temp files left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("leftover files: %v", entries)
	}
}

func TestReadHeader(t *testing.T) {
	path := fp.Join(t.TempDir(), "f")
	if err := os.WriteFile(path, []byte("0123456789"), 0644); err != nil {
		t.Fatal(err)
	}
	head, err := ReadHeader(path, 4)
	if err != nil {
		t.Fatal(err)
	}
	if string(head) != "0123" {
		t.Errorf("got %q", head)
	}
	//short file is an error, not a short read
	if _, err = ReadHeader(path, 64); err == nil {
		t.Error("want error for short file")
	}
}
