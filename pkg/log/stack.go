// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package log

import (
	"fmt"
	"sync"
	"time"

	"github.com/jgranate/arch-i3-setup/pkg/log/flags"
)

// Sink is a log destination that can be chained to other sinks, each adding
// a different output: console, on-disk run log, memory, ... Normal logging
// goes through the package-level functions - Logf, Msgf, Fatalf - rather
// than through a Sink directly.
type Sink interface {
	// Record an event. Must pass the event on to the next sink in the
	// chain, if any.
	Record(e Event)

	// Chain another sink below this one. Calling ChainTo on a sink that
	// already has a non-nil successor is a programming error and panics.
	ChainTo(Sink)

	// Short name identifying the sink type; used to reject duplicates.
	Ident() string

	// Next sink in the chain, or nil.
	Next() Sink

	// Flush buffered events and release resources. Must propagate down
	// the chain.
	Close()
}

// Event is the record type passed between sinks.
type Event struct {
	Time  time.Time
	Msg   string
	Args  []interface{}
	Flags flags.Flag
}

// TimestampLayout is used in the run log file name and in rendered events.
const TimestampLayout = "2006-01-02T15.04.05"

func (e *Event) String() string {
	var div string
	switch {
	case e.Flags&flags.User != 0:
		div = "-- "
	case e.Flags&flags.Fatal != 0:
		div = "!! "
	case e.Flags == 0:
		div = "*- "
	default:
		div = "?? "
	}
	return fmt.Sprintf(div+e.Time.Format(TimestampLayout)+" "+div+e.Msg, e.Args...)
}

// Topmost sink. Anything touching the chain must hold chainMtx.
var (
	chain    Sink = &memSink{}
	chainMtx sync.Mutex
)

type dupeErr struct{ id string }

func (d *dupeErr) Error() string { return fmt.Sprintf("duplicate sink %s in chain", d.id) }

// AddSink pushes a sink onto the chain. The sink must be fully initialized.
// If replay is true, events already captured by a memory sink are recorded
// into the new sink first. Fails only if a sink with the same Ident is
// already chained.
//
// Callers normally use AddConsoleSink, AddFileSink, etc instead.
func AddSink(s Sink, replay bool) error {
	chainMtx.Lock()
	defer chainMtx.Unlock()
	if replay {
		replayInto(s)
	}
	for c := chain; c != nil; c = c.Next() {
		if c.Ident() == s.Ident() {
			return &dupeErr{id: s.Ident()}
		}
	}
	s.ChainTo(chain)
	chain = s
	return nil
}

// RemoveSink pulls the sink with the given ident out of the chain, closing it.
func RemoveSink(id string) {
	chainMtx.Lock()
	defer chainMtx.Unlock()
	var prev Sink
	for c := chain; c != nil; c = c.Next() {
		if c.Ident() != id {
			prev = c
			continue
		}
		next := c.Next()
		c.ChainTo(nil)
		c.Close()
		if prev == nil {
			if next == nil {
				next = &memSink{}
			}
			chain = next
		} else {
			//detach before relinking; ChainTo refuses to overwrite
			prev.ChainTo(nil)
			prev.ChainTo(next)
		}
		return
	}
}

// InChain reports whether a sink with the given ident is chained.
func InChain(id string) bool { return FindSink(id) != nil }

// FindSink returns the chained sink matching id, or nil.
func FindSink(id string) Sink {
	for c := chain; c != nil; c = c.Next() {
		if c.Ident() == id {
			return c
		}
	}
	return nil
}

// ResetChain closes any chained sinks and replaces the chain with a fresh
// memory sink. Used by tests and by testlog.
func ResetChain() { NewChain(&memSink{}) }

// NewChain closes the existing chain and installs s as the only sink.
func NewChain(s Sink) {
	chainMtx.Lock()
	defer chainMtx.Unlock()
	if chain != nil {
		chain.Close()
	}
	chain = s
}

// Close flushes and closes all chained sinks.
func Close() {
	chainMtx.Lock()
	defer chainMtx.Unlock()
	chain.Close()
}

// FlaggedLogf is the backend of Logf, Msgf, Fatalf. Renders args into an
// Event and records it into the topmost sink.
func FlaggedLogf(f flags.Flag, format string, va ...interface{}) {
	chainMtx.Lock()
	defer chainMtx.Unlock()
	chain.Record(Event{
		Time:  time.Now(),
		Msg:   format,
		Args:  va,
		Flags: f,
	})
}

// replayInto copies events captured by a chained memory sink into s.
// No-op when s is itself a memory sink - there is nothing new to copy.
func replayInto(s Sink) {
	if _, isMem := s.(*memSink); isMem {
		return
	}
	m := FindSink(MemSinkIdent)
	if m == nil {
		return
	}
	for _, e := range m.(*memSink).Events() {
		s.Record(e)
	}
}
