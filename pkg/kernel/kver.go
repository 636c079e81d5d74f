// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package kernel

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"strings"
)

/*
bzImage layout, from kernel documentation and libmagic src

off val
510 0xAA55
514 HdrS
526 (2 bytes, little endian) + 0x200 -> start of null-terminated version string
*/

var (
	EBootSig = errors.New("missing 0x55AA boot sig")
	EBadSig  = errors.New("missing kernel header sig")
	EBadOff  = errors.New("null version string offset")
	EBadStr  = errors.New("missing termination in version string")
	EParse   = errors.New("parse error")
)

// Info is what we extract from an on-disk kernel image's version string.
// A full string looks like
//
//	6.9.7-g14 (builder@host) #1 SMP PREEMPT_DYNAMIC Thu, 27 Jun 2024 ...
type Info struct {
	Release  string //uname -r equivalent, ex 6.9.7-g14
	Builder  string //user@host in parens; shown by `file`, not `uname`
	Version  string //everything from '#' on
	LocalVer string //the -suffix part of Release, ex g14
}

// ReadInfo extracts version info from the kernel image at path.
func ReadInfo(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()
	desc, err := readDesc(f)
	if err != nil {
		return Info{}, err
	}
	return parseDesc(desc)
}

// read the raw version string out of a bzImage
func readDesc(k io.ReadSeeker) (string, error) {
	var buf [1024]byte
	if _, err := k.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	if _, err := io.ReadFull(k, buf[:530]); err != nil {
		return "", err
	}
	if !bytes.Equal(buf[510:512], []byte{0x55, 0xaa}) {
		return "", EBootSig
	}
	if string(buf[514:518]) != "HdrS" {
		return "", EBadSig
	}
	if bytes.Equal(buf[526:530], []byte{0, 0, 0, 0}) {
		return "", EBadOff
	}
	off := int64(binary.LittleEndian.Uint16(buf[526:528])) + 0x200
	if _, err := k.Seek(off, io.SeekStart); err != nil {
		return "", err
	}
	n, err := k.Read(buf[:])
	if err != nil && err != io.EOF {
		return "", err
	}
	i := bytes.IndexByte(buf[:n], 0)
	if i < 0 {
		return "", EBadStr
	}
	return string(buf[:i]), nil
}

func parseDesc(desc string) (Info, error) {
	var ki Info
	split := strings.SplitN(desc, "#", 2)
	if len(split) != 2 {
		return Info{}, EParse
	}
	ki.Version = "#" + split[1]
	elements := strings.SplitN(strings.TrimSpace(split[0]), " ", 2)
	ki.Release = elements[0]
	if len(elements) == 2 {
		ki.Builder = strings.Trim(elements[1], " ()")
	}
	if dash := strings.IndexByte(ki.Release, '-'); dash >= 0 {
		ki.LocalVer = ki.Release[dash+1:]
	}
	return ki, nil
}
