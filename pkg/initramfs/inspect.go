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
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/jgranate/arch-i3-setup/pkg/fileutil"
	"github.com/jgranate/arch-i3-setup/pkg/log"
)

// Kind is the compression format of an initramfs image.
type Kind int

const (
	Unknown Kind = iota
	Zstd
	Gzip
	XZ
)

func (k Kind) String() string {
	switch k {
	case Zstd:
		return "zstd"
	case Gzip:
		return "gzip"
	case XZ:
		return "xz"
	}
	return "unknown"
}

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	gzipMagic = []byte{0x1f, 0x8b}
	xzMagic   = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
)

// Sniff returns the compression format of the file at path, from its
// leading magic bytes.
func Sniff(path string) (Kind, error) {
	head, err := fileutil.ReadHeader(path, 6)
	if err != nil {
		return Unknown, err
	}
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		return Zstd, nil
	case bytes.HasPrefix(head, gzipMagic):
		return Gzip, nil
	case bytes.HasPrefix(head, xzMagic):
		return XZ, nil
	}
	return Unknown, nil
}

// Inspect confirms the image at path exists, has a recognized compression
// format, and that its first block actually decodes. Catches the truncated
// or zero-length images a crashed mkinitcpio leaves behind.
func Inspect(path string) error {
	kind, err := Sniff(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if kind == Unknown {
		return fmt.Errorf("%s: unrecognized compression", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader
	switch kind {
	case Zstd:
		dec, derr := zstd.NewReader(f)
		if derr != nil {
			return fmt.Errorf("%s: %w", path, derr)
		}
		defer dec.Close()
		r = dec
	case Gzip:
		gz, derr := gzip.NewReader(f)
		if derr != nil {
			return fmt.Errorf("%s: %w", path, derr)
		}
		defer gz.Close()
		r = gz
	case XZ:
		xr, derr := xz.NewReader(f)
		if derr != nil {
			return fmt.Errorf("%s: %w", path, derr)
		}
		r = xr
	}
	//decoding one block is enough to reject garbage without paying for a
	//full decompress of a several-hundred-MB fallback image
	if _, err := io.CopyN(io.Discard, r, 512); err != nil && err != io.EOF {
		return fmt.Errorf("%s: decode: %w", path, err)
	}
	log.Logf("%s: %s, decodes ok", path, kind)
	return nil
}
