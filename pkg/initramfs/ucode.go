// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package initramfs

import (
	"fmt"
	"os"
	"strings"

	"github.com/u-root/u-root/pkg/cpio"
)

// ValidUcode checks that the early microcode image at path is an
// uncompressed newc cpio archive containing microcode records. The boot
// entry patcher only references the image after this passes - a corrupt
// ucode initrd is worse than none.
func ValidUcode(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	archiver, err := cpio.Format("newc")
	if err != nil {
		return fmt.Errorf("newc not supported: %w", err)
	}
	rr, err := archiver.NewFileReader(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	recs, err := cpio.ReadAllRecords(rr)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for _, r := range recs {
		if strings.Contains(r.Name, "kernel/x86/microcode") {
			return nil
		}
	}
	return fmt.Errorf("%s: no microcode records", path)
}
