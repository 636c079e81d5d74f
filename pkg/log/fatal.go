// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package log

import (
	"os"
	"strings"

	"github.com/jgranate/arch-i3-setup/pkg/log/flags"
)

// FatalFunc runs after a fatal event has been logged and the chain closed.
// It does not return - exit the process, reboot, etc.
type FatalFunc func()

// PreFunc is like FatalFunc but runs before the chain is closed, so it may
// still log.
type PreFunc func(f string, va ...interface{})

// FailAction describes what Fatalf does after logging the event.
type FailAction struct {
	// Prefix added to the message.
	MsgPfx string
	// Pre runs before Close() - the chain is still writable.
	Pre PreFunc
	// Terminator exits. Sinks are closed by the time it runs.
	Terminator FatalFunc
}

var fatalAction = DefaultFatal

// SetFatalAction overrides what happens on Fatalf. The provisioner sets an
// action that records the failed step before exiting; tests set a no-op.
func SetFatalAction(act FailAction) { fatalAction = act }

// DefaultFatal exits the process with status 1.
var DefaultFatal = FailAction{Terminator: DefaultFatalAction}

func DefaultFatalAction() {
	if strings.HasSuffix(os.Args[0], "test") {
		panic("generic fatal called from test")
	}
	os.Exit(1)
}

// Fatalf logs like Msgf but does not return. Behavior beyond logging is
// controlled by SetFatalAction.
func Fatalf(f string, va ...interface{}) {
	if chain.Next() == nil && chain.Ident() == MemSinkIdent {
		//save some headscratching if no sink was ever configured
		AddConsoleSink(0)
		Log("Fatalf: logging unconfigured")
	}
	FlaggedLogf(flags.Fatal, fatalAction.MsgPfx+f, va...)
	if fatalAction.Pre != nil {
		fatalAction.Pre(fatalAction.MsgPfx+f, va...)
	}
	Close()
	fatalAction.Terminator()
}
