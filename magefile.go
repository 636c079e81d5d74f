// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

//go:build mage
// +build mage

/*
 build file for mage build system
 list tgts with
go run magerunner.go -l

 build tgt with
go run magerunner.go tgt
*/

package main

import (
	"context"
	"os"
	fp "path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

/* Env vars
RUN - passed to go test -run. Only tests that match the given regex will run.
COUNT - passed to go test -count. Use 1 to bypass test result caching.
*/

var outDir = "bin"

func All(ctx context.Context) error {
	mg.CtxDeps(ctx, Vet, Tests.Unit, Build)
	return nil
}

// builds the arch-i3-setup binary
func Build(ctx context.Context) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	env := map[string]string{
		"CGO_ENABLED": "0",
		"GOOS":        "linux",
	}
	out := fp.Join(outDir, "arch-i3-setup")
	return sh.RunWith(env, "go", "build", "-trimpath", "-o", out, "./cmd/arch-i3-setup")
}

// runs go vet on all packages
func Vet(ctx context.Context) error {
	return sh.RunV("go", "vet", "./...")
}

type Tests mg.Namespace

// runs unit tests
func (Tests) Unit(ctx context.Context) error {
	return sh.RunV("go", append([]string{"test"}, testArgs()...)...)
}

// runs unit tests with the race detector
func (Tests) Race(ctx context.Context) error {
	args := append([]string{"test", "-race"}, testArgs()...)
	return sh.RunV("go", args...)
}

func testArgs() []string {
	args := []string{}
	if run, ok := os.LookupEnv("RUN"); ok {
		args = append(args, "-run", run)
	}
	if count, ok := os.LookupEnv("COUNT"); ok {
		args = append(args, "-count", count)
	}
	return append(args, "./...")
}

// removes build output
func Clean() error {
	return os.RemoveAll(outDir)
}
