// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package log is the logging mechanism used throughout the setup tool. A
// chain of sinks receives every event; sinks exist for the console, an
// on-disk run log, and memory. By default events are retained in memory so
// they can be replayed into sinks added later - the run log file can only
// be created once the target filesystem is known to be writable, but
// events from before that point still need to end up in it.
package log

import (
	"fmt"
	"os"

	"github.com/jgranate/arch-i3-setup/pkg/log/flags"
)

var logPrefix string

// SetPrefix sets the prefix used for the run log file name. Must be set
// before AddFileSink.
func SetPrefix(pfx string) { logPrefix = pfx }

// GetPrefix returns the run log file name prefix.
func GetPrefix() string { return logPrefix }

// Msgf is for short, non-technical messages shown to the person running the
// tool. Use sparingly.
func Msgf(f string, va ...interface{}) { FlaggedLogf(flags.User, f, va...) }

// See Msgf
func Msgln(va ...interface{}) { Msgf(fmt.Sprintln(va...)) }

// See Msgf
func Msg(message string) { Msgf(message) }

// Logf is for technical or trivial detail. Never shown as a user message.
func Logf(f string, va ...interface{}) { FlaggedLogf(flags.NA, f, va...) }

// See Logf
func Logln(va ...interface{}) { Logf(fmt.Sprintln(va...)) }

// See Logf
func Log(message string) { Logf(message) }

// DumpStderr writes everything captured by a chained memory sink to stderr.
// No-op if no memory sink is chained.
func DumpStderr() {
	s := FindSink(MemSinkIdent)
	if s != nil {
		for _, e := range s.(*memSink).Events() {
			fmt.Fprintln(os.Stderr, e.String())
		}
	}
}
