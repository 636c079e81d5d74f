// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package bootentry rewrites systemd-boot loader entries so they boot the
// hardware-specific kernel variant instead of the stock kernel, and ensures
// the early microcode initrd loads first.
//
// Rewrites only ever match the unsuffixed image names, so a second pass
// over already-patched entries changes nothing.
package bootentry

import (
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Entry is one loader entry file: its path and ordered lines. Read from
// disk at the start of a patch pass, mutated in memory, written back
// atomically. Entries are never created or deleted.
type Entry struct {
	Path  string
	Lines []string

	trailingNewline bool
}

// Rule is one pattern/replacement pair applied to every line of an entry.
type Rule struct {
	pattern *regexp.Regexp
	replace string
}

// Apply returns the rewritten line and whether the rule matched.
func (r Rule) Apply(line string) (string, bool) {
	if !r.pattern.MatchString(line) {
		return line, false
	}
	return r.pattern.ReplaceAllString(line, r.replace), true
}

// rulesFor builds the rewrite rules mapping the stock kernel's image names
// to the suffixed variant. Patterns anchor on the exact unsuffixed name;
// that anchor is what makes the pass idempotent.
func rulesFor(base, suffix string) []Rule {
	qb := regexp.QuoteMeta(base)
	return []Rule{
		{
			pattern: regexp.MustCompile(`^(\s*linux\s+)/vmlinuz-` + qb + `\s*$`),
			replace: `${1}/vmlinuz-` + base + `-` + suffix,
		},
		{
			pattern: regexp.MustCompile(`^(\s*initrd\s+)/initramfs-` + qb + `\.img\s*$`),
			replace: `${1}/initramfs-` + base + `-` + suffix + `.img`,
		},
		{
			pattern: regexp.MustCompile(`^(\s*initrd\s+)/initramfs-` + qb + `-fallback\.img\s*$`),
			replace: `${1}/initramfs-` + base + `-` + suffix + `-fallback.img`,
		},
	}
}

// Report is the outcome of one patch pass.
type Report struct {
	Inspected int //entry files examined
	Modified  int //entry files rewritten
	Errors    *multierror.Error
}

// Err returns the aggregated per-file errors, or nil if none occurred.
func (r *Report) Err() error { return r.Errors.ErrorOrNil() }

func (e *Entry) render() []byte {
	s := strings.Join(e.Lines, "\n")
	if e.trailingNewline {
		s += "\n"
	}
	return []byte(s)
}

func parseEntry(path string, raw []byte) *Entry {
	s := string(raw)
	e := &Entry{Path: path}
	if strings.HasSuffix(s, "\n") {
		e.trailingNewline = true
		s = strings.TrimSuffix(s, "\n")
	}
	e.Lines = strings.Split(s, "\n")
	return e
}

var initrdLine = regexp.MustCompile(`^\s*initrd\s+`)

// insertUcode places an initrd line for the microcode image immediately
// before the first existing initrd line, so microcode loads ahead of the OS
// initramfs. No-op if any line already references the image, or if the
// entry has no initrd line at all (nowhere sane to put it).
func (e *Entry) insertUcode(ref string) (inserted bool) {
	for _, l := range e.Lines {
		if strings.Contains(l, ref) {
			return false
		}
	}
	for i, l := range e.Lines {
		if initrdLine.MatchString(l) {
			lines := make([]string, 0, len(e.Lines)+1)
			lines = append(lines, e.Lines[:i]...)
			lines = append(lines, "initrd  "+ref)
			lines = append(lines, e.Lines[i:]...)
			e.Lines = lines
			return true
		}
	}
	return false
}
