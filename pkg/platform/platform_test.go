// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package platform

import (
	"errors"
	"os"
	fp "path/filepath"
	"testing"

	"github.com/jgranate/arch-i3-setup/pkg/hw/dmi"
	"github.com/jgranate/arch-i3-setup/pkg/log/testlog"
)

// LoadProfile mutates the variant list; put it back afterward
func saveVariants(t *testing.T) {
	t.Helper()
	saved := make([]*Variant, len(variants))
	copy(saved, variants)
	t.Cleanup(func() { variants = saved })
}

func TestMatches(t *testing.T) {
	v := &Variant{
		DmiSysVendor: "ASUSTeK COMPUTER INC.",
		DmiProdRegex: `^ROG Zephyrus G14 GA40[12]`,
	}
	for _, td := range []struct {
		vendor, product string
		want            bool
	}{
		{"ASUSTeK COMPUTER INC.", "ROG Zephyrus G14 GA401QM_GA401QM", true},
		{"ASUSTeK COMPUTER INC.", "ROG Zephyrus G14 GA402RJ", true},
		{"ASUSTeK COMPUTER INC.", "ROG Zephyrus G15 GA503QR", false},
		{"LENOVO", "ROG Zephyrus G14 GA401QM", false},
		{"", "", false},
	} {
		if got := v.Matches(td.vendor, td.product); got != td.want {
			t.Errorf("%q/%q: got %t", td.vendor, td.product, got)
		}
	}
}

func TestIdentify(t *testing.T) {
	tlog := testlog.NewTestLog(t, false)
	defer tlog.Freeze()
	dmi.TestingMock(dmi.DmiStrMap{
		"system-manufacturer":  "ASUSTeK COMPUTER INC.",
		"system-product-name":  "ROG Zephyrus G14 GA401QM_GA401QM",
		"system-serial-number": "M9NRCX00Z573TBD",
	})

	v, err := Identify()
	if err != nil {
		t.Fatal(err)
	}
	if v.Familyname != "zephyrus-g14" {
		t.Errorf("got %s", v.Familyname)
	}
	if v.KernelName() != "linux-g14" {
		t.Errorf("kernel name %s", v.KernelName())
	}
	if sn := v.Serial(); sn != "M9NRCX00Z573TBD" {
		t.Errorf("serial %q", sn)
	}
}

func TestIdentifyUnknown(t *testing.T) {
	tlog := testlog.NewTestLog(t, false)
	defer tlog.Freeze()
	dmi.TestingMock(dmi.DmiStrMap{
		"system-manufacturer": "LENOVO",
		"system-product-name": "21CB0068US",
	})

	if _, err := Identify(); !errors.Is(err, EUnknownPlatform) {
		t.Errorf("got %v, want EUnknownPlatform", err)
	}
}

func TestLoadProfileReplace(t *testing.T) {
	tlog := testlog.NewTestLog(t, false)
	defer tlog.Freeze()
	saveVariants(t)

	path := fp.Join(t.TempDir(), "profile.yaml")
	content := `family: zephyrus-g14
dmiSysVendor: ASUSTeK COMPUTER INC.
dmiProdRegex: "^ROG Zephyrus G14"
kernelSuffix: g14
kernelPkg: linux-g14
ucodeImage: amd-ucode.img
services: [NetworkManager.service]
hooks:
  - name: post
    when: final
    commands:
      - command: "systemctl daemon-reload"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	v, err := LoadProfile(path)
	if err != nil {
		t.Fatal(err)
	}
	if v.KernelBase != "linux" {
		t.Errorf("base not defaulted: %q", v.KernelBase)
	}
	if len(v.Hooks) != 1 {
		t.Errorf("hooks not decoded: %v", v.Hooks)
	}
	//must have replaced the built-in, not grown the list
	before := len(variants)
	count := 0
	for _, known := range variants {
		if known.Familyname == "zephyrus-g14" {
			count++
			if len(known.Services) != 1 {
				t.Errorf("built-in not replaced: %v", known.Services)
			}
		}
	}
	if count != 1 {
		t.Errorf("%d variants named zephyrus-g14", count)
	}
	if len(variants) != before {
		t.Errorf("variant list grew")
	}
}

func TestLoadProfileAppend(t *testing.T) {
	tlog := testlog.NewTestLog(t, false)
	defer tlog.Freeze()
	saveVariants(t)

	path := fp.Join(t.TempDir(), "profile.yaml")
	content := `family: flow-x13
dmiSysVendor: ASUSTeK COMPUTER INC.
dmiProdRegex: "^ROG Flow X13"
kernelSuffix: g14
kernelPkg: linux-g14
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	before := len(variants)
	if _, err := LoadProfile(path); err != nil {
		t.Fatal(err)
	}
	if len(variants) != before+1 {
		t.Errorf("variant list did not grow")
	}
}

func TestLoadProfileNoFamily(t *testing.T) {
	tlog := testlog.NewTestLog(t, false)
	defer tlog.Freeze()
	saveVariants(t)

	path := fp.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte("kernelSuffix: g14\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProfile(path); err == nil {
		t.Error("want error for missing family")
	}
}
