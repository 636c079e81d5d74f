// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package initramfs

import (
	"bytes"
	"compress/gzip"
	"os"
	fp "path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/jgranate/arch-i3-setup/pkg/log/testlog"
)

// 1 KiB of compressible not-quite-cpio content
func payload() []byte {
	return bytes.Repeat([]byte("07070100000000initramfs test data\n"), 30)
}

func writeZstd(t *testing.T, path string) {
	t.Helper()
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = enc.Write(payload()); err != nil {
		t.Fatal(err)
	}
	if err = enc.Close(); err != nil {
		t.Fatal(err)
	}
	if err = os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func writeGzip(t *testing.T, path string) {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(payload()); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func writeXz(t *testing.T, path string) {
	t.Helper()
	var buf bytes.Buffer
	xw, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = xw.Write(payload()); err != nil {
		t.Fatal(err)
	}
	if err = xw.Close(); err != nil {
		t.Fatal(err)
	}
	if err = os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestSniff(t *testing.T) {
	dir := t.TempDir()

	writeZstd(t, fp.Join(dir, "z.img"))
	writeGzip(t, fp.Join(dir, "g.img"))
	writeXz(t, fp.Join(dir, "x.img"))
	if err := os.WriteFile(fp.Join(dir, "junk.img"), []byte("not compressed"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, td := range []struct {
		name string
		want Kind
	}{
		{"z.img", Zstd},
		{"g.img", Gzip},
		{"x.img", XZ},
		{"junk.img", Unknown},
	} {
		kind, err := Sniff(fp.Join(dir, td.name))
		if err != nil {
			t.Errorf("%s: %s", td.name, err)
			continue
		}
		if kind != td.want {
			t.Errorf("%s: got %s, want %s", td.name, kind, td.want)
		}
	}
}

func TestInspect(t *testing.T) {
	tlog := testlog.NewTestLog(t, false)
	defer tlog.Freeze()
	dir := t.TempDir()

	writeZstd(t, fp.Join(dir, "z.img"))
	writeGzip(t, fp.Join(dir, "g.img"))
	writeXz(t, fp.Join(dir, "x.img"))
	for _, name := range []string{"z.img", "g.img", "x.img"} {
		if err := Inspect(fp.Join(dir, name)); err != nil {
			t.Errorf("%s: %s", name, err)
		}
	}
}

func TestInspectRejectsGarbage(t *testing.T) {
	tlog := testlog.NewTestLog(t, false)
	defer tlog.Freeze()
	dir := t.TempDir()

	//zero-length, as left by a crashed image build
	empty := fp.Join(dir, "empty.img")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := Inspect(empty); err == nil {
		t.Error("empty image accepted")
	}

	//valid magic but truncated/corrupt stream
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(payload()); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	trunc := fp.Join(dir, "trunc.img")
	if err := os.WriteFile(trunc, buf.Bytes()[:12], 0644); err != nil {
		t.Fatal(err)
	}
	if err := Inspect(trunc); err == nil {
		t.Error("truncated image accepted")
	}

	//exists but no recognized magic
	junk := fp.Join(dir, "junk.img")
	if err := os.WriteFile(junk, []byte("plain text, definitely not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Inspect(junk); err == nil {
		t.Error("uncompressed junk accepted")
	}

	if err := Inspect(fp.Join(dir, "missing.img")); err == nil {
		t.Error("missing image accepted")
	}
}
