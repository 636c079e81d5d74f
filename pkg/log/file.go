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
	fp "path/filepath"
	"time"

	"github.com/jgranate/arch-i3-setup/pkg/log/flags"
)

type fileSink struct {
	f    *os.File
	next Sink
}

var _ Sink = (*fileSink)(nil)

const FileSinkIdent = "file"

var EPrefix = fmt.Errorf("log prefix is unset")

// AddFileSink creates a run log under dir, named from the prefix and the
// current time, and chains a sink writing to it. Previously captured events
// are written first. Returns the file path.
func AddFileSink(dir string) (string, error) {
	prefix := GetPrefix()
	if prefix == "" {
		return "", EPrefix
	}
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return "", err
	}
	name := prefix + time.Now().Format(TimestampLayout) + ".log"
	path := fp.Join(dir, name)
	return path, AddNamedFileSink(path)
}

// AddNamedFileSink is AddFileSink with an explicit path.
func AddNamedFileSink(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	fs := &fileSink{f: f}
	err = AddSink(fs, true)
	if err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return nil
}

func (fs *fileSink) Record(e Event) {
	if e.Flags&flags.NotFile == 0 && fs.f != nil {
		fmt.Fprintln(fs.f, e.String())
	}
	if fs.next != nil {
		fs.next.Record(e)
	}
}

func (fs *fileSink) ChainTo(s Sink) {
	if fs.next != nil && s != nil {
		panic("next already set")
	}
	fs.next = s
}

func (fs *fileSink) Ident() string { return FileSinkIdent }
func (fs *fileSink) Next() Sink    { return fs.next }

func (fs *fileSink) Close() {
	if fs.f != nil {
		if err := fs.f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "closing run log: %s\n", err)
		}
		fs.f = nil
	}
	if fs.next != nil {
		fs.next.Close()
	}
}

// LoggingToFile reports whether a run log sink is chained.
func LoggingToFile() bool { return InChain(FileSinkIdent) }
