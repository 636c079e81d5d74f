// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package provision

import (
	"fmt"

	"github.com/jgranate/arch-i3-setup/pkg/log"
)

// Class says what a step failure means for the pass. The shell ancestor
// expressed this with '|| true' scattered around; here the classification
// is explicit and lives in one place, the step table in Run.
type Class int

const (
	//failure is logged and the pass continues
	BestEffort Class = iota
	//failure ends the pass
	Required
)

func (c Class) String() string {
	if c == Required {
		return "required"
	}
	return "best-effort"
}

// Outcome records how one step went.
type Outcome struct {
	Name    string
	Class   Class
	Err     error //nil on success
	Skipped bool
}

// Ignored reports whether this outcome is a swallowed failure.
func (o Outcome) Ignored() bool { return o.Err != nil && o.Class == BestEffort }

type pass struct {
	outcomes []Outcome
}

// run executes one step, records the outcome, and returns an error only
// when a Required step failed.
func (p *pass) run(name string, class Class, fn func() error) error {
	log.Msgf("%s...", name)
	err := fn()
	p.outcomes = append(p.outcomes, Outcome{Name: name, Class: class, Err: err})
	if err == nil {
		return nil
	}
	if class == BestEffort {
		log.Logf("%s failed (ignored): %s", name, err)
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}

func (p *pass) skip(name string, why string) {
	log.Logf("skipping %s: %s", name, why)
	p.outcomes = append(p.outcomes, Outcome{Name: name, Skipped: true})
}

// summary logs one line per non-clean outcome and returns the number of
// ignored failures.
func (p *pass) summary() (ignored int) {
	for _, o := range p.outcomes {
		switch {
		case o.Skipped:
			log.Logf("step %-24s skipped", o.Name)
		case o.Err != nil:
			ignored++
			log.Msgf("step %-24s FAILED (%s): %s", o.Name, o.Class, o.Err)
		}
	}
	return
}
