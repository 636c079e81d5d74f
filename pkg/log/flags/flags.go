// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package flags holds event flags for pkg/log. Separate package so that
// sinks living in subpackages can import it without a cycle.
package flags

import "strings"

type Flag int

const (
	NA Flag = 0

	//short message suitable for display to the person running the tool
	User Flag = 1 << (iota - 1)
	//logging a fatal event
	Fatal
	//do not write to the on-disk run log
	NotFile
)

func (f Flag) String() string {
	switch f {
	case NA:
		return ""
	case User:
		return "user"
	case Fatal:
		return "fatal"
	case NotFile:
		return "nofile"
	}
	var elems []string
	for _, x := range []Flag{User, Fatal, NotFile} {
		if f&x != 0 {
			elems = append(elems, x.String())
		}
	}
	return strings.Join(elems, "|")
}
