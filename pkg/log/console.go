// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package log

import (
	"fmt"
	"os"

	"github.com/jgranate/arch-i3-setup/pkg/log/flags"
)

type consoleSink struct {
	flags flags.Flag
	next  Sink
}

var _ Sink = (*consoleSink)(nil)

const ConsoleSinkIdent = "console"

// AddConsoleSink chains a console sink. With f == flags.NA everything is
// printed; with flags.User only user-facing messages appear.
func AddConsoleSink(f flags.Flag) {
	_ = AddSink(&consoleSink{flags: f}, true)
}

func (c *consoleSink) Record(e Event) {
	if c.flags == 0 || e.Flags&c.flags > 0 {
		fmt.Fprintln(os.Stderr, e.String())
	}
	if c.next != nil {
		c.next.Record(e)
	}
}

func (c *consoleSink) ChainTo(s Sink) {
	if c.next != nil && s != nil {
		panic("next already set")
	}
	c.next = s
}

func (c *consoleSink) Ident() string { return ConsoleSinkIdent }
func (c *consoleSink) Next() Sink    { return c.next }

func (c *consoleSink) Close() {
	if c.next != nil {
		c.next.Close()
	}
}
