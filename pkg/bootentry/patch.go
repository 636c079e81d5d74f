// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package bootentry

import (
	"fmt"
	"os"
	fp "path/filepath"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sys/unix"

	"github.com/jgranate/arch-i3-setup/pkg/fileutil"
	"github.com/jgranate/arch-i3-setup/pkg/log"
)

// Patcher holds the inputs of a patch pass.
type Patcher struct {
	EntriesDir string //dir holding *.conf loader entries
	Base       string //stock kernel base name, ex "linux"
	Suffix     string //hardware kernel variant suffix, ex "g14"
	UcodePath  string //on-disk path of the microcode image; "" disables insertion
	DryRun     bool   //report what would change, write nothing
}

// Patch runs one pass over every entry file. A bad entry is recorded in the
// report and skipped; it never aborts the pass. A missing or empty entries
// dir yields zero counts and no error - the caller falls back to grub.
func (p *Patcher) Patch() *Report {
	rep := &Report{}
	matches, err := fp.Glob(fp.Join(p.EntriesDir, "*.conf"))
	if err != nil { //only on bad pattern, which would be a bug here
		rep.Errors = multierror.Append(rep.Errors, err)
		return rep
	}
	if len(matches) == 0 {
		log.Logf("no entries found under %s", p.EntriesDir)
		return rep
	}

	//microcode is only referenced if the image is actually present
	ucodeRef := ""
	if p.UcodePath != "" && fileutil.Exists(p.UcodePath) {
		ucodeRef = "/" + fp.Base(p.UcodePath)
	} else if p.UcodePath != "" {
		log.Logf("microcode image %s not present, skipping insertion", p.UcodePath)
	}

	rules := rulesFor(p.Base, p.Suffix)
	for _, path := range matches {
		rep.Inspected++
		changed, err := p.patchOne(path, rules, ucodeRef)
		if err != nil {
			log.Logf("entry %s: %s", path, err)
			rep.Errors = multierror.Append(rep.Errors, fmt.Errorf("%s: %w", path, err))
			continue
		}
		if changed {
			rep.Modified++
		}
	}
	log.Logf("boot entries: %d inspected, %d modified", rep.Inspected, rep.Modified)
	return rep
}

func (p *Patcher) patchOne(path string, rules []Rule, ucodeRef string) (changed bool, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	e := parseEntry(path, raw)
	for i, line := range e.Lines {
		for _, r := range rules {
			var hit bool
			if line, hit = r.Apply(line); hit {
				e.Lines[i] = line
				changed = true
			}
		}
	}
	if ucodeRef != "" && e.insertUcode(ucodeRef) {
		changed = true
	}
	if !changed {
		return false, nil
	}
	if p.DryRun {
		log.Logf("dry run: would rewrite %s", path)
		return true, nil
	}
	//the atomic write replaces the file via rename, which the dir permits
	//even when the file itself is read-only. probe the file so a
	//write-protected entry surfaces as a per-file error instead.
	if err = unix.Access(path, unix.W_OK); err != nil {
		return false, &os.PathError{Op: "write", Path: path, Err: err}
	}
	if err = fileutil.WriteAtomic(path, e.render(), 0644); err != nil {
		return false, err
	}
	return true, nil
}
