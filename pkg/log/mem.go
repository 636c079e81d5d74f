// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package log

// memSink stores events in memory and displays nothing. It is the default
// sink, so events logged before the console/file sinks are added are not
// lost - they get replayed when those sinks are chained.
type memSink struct {
	events []Event
	next   Sink
}

var _ Sink = (*memSink)(nil)

const MemSinkIdent = "mem"

// AddMemSink chains a memory sink. Rarely needed - a memory sink is the
// default chain content.
func AddMemSink() error { return AddSink(&memSink{}, false) }

func (m *memSink) Record(e Event) {
	m.events = append(m.events, e)
	if m.next != nil {
		m.next.Record(e)
	}
}

func (m *memSink) ChainTo(s Sink) {
	if m.next != nil && s != nil {
		panic("next already set")
	}
	m.next = s
}

func (m *memSink) Ident() string { return MemSinkIdent }
func (m *memSink) Next() Sink    { return m.next }

func (m *memSink) Close() {
	m.events = nil
	if m.next != nil {
		m.next.Close()
	}
}

// Events returns everything recorded so far. Not part of the Sink interface.
func (m *memSink) Events() []Event { return m.events }

// CapturedEvents returns all events recorded by a chained memory sink.
// Mostly useful to tests.
func CapturedEvents() []Event {
	chainMtx.Lock()
	defer chainMtx.Unlock()
	m := FindSink(MemSinkIdent)
	if m == nil {
		return nil
	}
	return m.(*memSink).Events()
}

// DropMemSink removes the memory sink from the chain. Call once durable
// sinks are in place, to stop accumulating events in memory.
func DropMemSink() { RemoveSink(MemSinkIdent) }
