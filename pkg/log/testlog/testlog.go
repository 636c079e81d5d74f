// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package testlog hijacks the output of pkg/log, and can hijack log.Cmd().
// Output goes through the testing package or into a buffer for analysis as
// part of a test. Cmd() hijacking is used to test code paths driven by
// external tools without actually running them.
package testlog

import (
	"bytes"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jgranate/arch-i3-setup/pkg/log"
	"github.com/jgranate/arch-i3-setup/pkg/log/flags"
)

// TstLog conforms to log.Sink. Construct via NewTestLog; do not share one
// between tests.
type TstLog struct {
	t             *testing.T
	Buf           *bytes.Buffer //if non-nil, output accumulates here
	MsgCount      int           //user-flagged events seen
	LogCount      int           //plain events seen
	FatalCount    int           //fatal events seen
	FatalIsNotErr bool          //if true, a fatal event does not fail the test
	frozen        bool
	mu            sync.Mutex
}

var _ log.Sink = (*TstLog)(nil)

const TstLogIdent = "tstLog"

// time format used in test output; like time.StampMilli but without the date
const stampMilli = "15:04:05.000"

// NewTestLog replaces the log chain with a test sink. If bufferLog is true,
// events go to tlog.Buf instead of t.Log. The fatal action is replaced with
// a no-op terminator so Fatalf returns in tests.
func NewTestLog(t *testing.T, bufferLog bool) (tlog *TstLog) {
	tlog = &TstLog{t: t}
	if bufferLog {
		tlog.Buf = new(bytes.Buffer)
	}
	log.NewChain(tlog)
	log.SetFatalAction(log.FailAction{Terminator: func() {}})
	return
}

func (tlog *TstLog) Record(e log.Event) {
	tlog.mu.Lock()
	defer tlog.mu.Unlock()
	if tlog.frozen {
		return
	}
	var pfx string
	switch e.Flags {
	case flags.User:
		tlog.MsgCount++
		pfx = "MSG:"
	case flags.Fatal:
		tlog.FatalCount++
		pfx = ">>FATAL()<< "
		if !tlog.FatalIsNotErr {
			tlog.t.Errorf("@%s: "+pfx+e.Msg, append([]interface{}{e.Time.Format(stampMilli)}, e.Args...)...)
			return
		}
	default:
		tlog.LogCount++
		pfx = "LOG:"
	}
	if tlog.Buf != nil {
		fmt.Fprintf(tlog.Buf, pfx+e.Msg+"\n", e.Args...)
	} else {
		tlog.t.Logf("@"+e.Time.Format(stampMilli)+": "+pfx+e.Msg, e.Args...)
	}
}

func (*TstLog) Ident() string      { return TstLogIdent }
func (*TstLog) Next() log.Sink     { return nil }
func (*TstLog) Close()             {}
func (*TstLog) ChainTo(_ log.Sink) {}

// Logf injects a line directly; sometimes used as a separator in test output.
func (tlog *TstLog) Logf(f string, va ...interface{}) {
	tlog.Record(log.Event{Time: time.Now(), Msg: f, Args: va})
}

// Freeze detaches the test sink and restores default log behavior. Call at
// the end of each test using a TstLog.
func (tlog *TstLog) Freeze() {
	tlog.mu.Lock()
	frozen := tlog.frozen
	tlog.frozen = true
	tlog.mu.Unlock()
	if frozen {
		return
	}
	log.ResetChain()
	log.SetFatalAction(log.DefaultFatal)
	log.Cmd = log.DefaultCmd
}
