// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package strs

func PkgManifestEnv() string { return EnvPrefix() + "PKGLIST" }
func DotfilesEnv() string    { return EnvPrefix() + "DOTFILES" }
func VerboseEnv() string     { return EnvPrefix() + "VERBOSE" }
