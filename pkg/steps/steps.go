// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package steps implements hook steps that a platform profile can declare.
// A step is a sequence of commands run at a named point in the provisioning
// pass, with per-command success/failure policy.
//
// Commands first have templating resolved (text/template over StepData),
// then are split into args via github.com/google/shlex. Steps with the same
// When value run in the order listed in the profile.
package steps

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
	"text/template"

	"github.com/google/shlex"
	"gopkg.in/yaml.v3"

	"github.com/jgranate/arch-i3-setup/pkg/log"
)

type WhenType int

const (
	RunBeforePackages WhenType = iota
	RunAfterPackages
	RunBeforeKernel
	RunAfterKernel
	RunAfterDotfiles
	RunFinal
)

func (wt WhenType) String() string {
	switch wt {
	case RunBeforePackages:
		return "beforePackages"
	case RunAfterPackages:
		return "afterPackages"
	case RunBeforeKernel:
		return "beforeKernel"
	case RunAfterKernel:
		return "afterKernel"
	case RunAfterDotfiles:
		return "afterDotfiles"
	case RunFinal:
		return "final"
	}
	return fmt.Sprintf("WhenType(%d)", int(wt))
}

func (wt *WhenType) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch strings.ToLower(s) {
	case "beforepackages":
		*wt = RunBeforePackages
	case "afterpackages":
		*wt = RunAfterPackages
	case "beforekernel":
		*wt = RunBeforeKernel
	case "afterkernel":
		*wt = RunAfterKernel
	case "afterdotfiles":
		*wt = RunAfterDotfiles
	case "final":
		*wt = RunFinal
	default:
		return fmt.Errorf("unable to translate %q into a WhenType", s)
	}
	return nil
}

type ExitStatus int

const (
	ESMustSucceed ExitStatus = iota
	ESDontCare
	ESMustFail
)

func (es *ExitStatus) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch strings.ToLower(s) {
	case "", "mustsucceed":
		*es = ESMustSucceed
	case "dontcare":
		*es = ESDontCare
	case "mustfail":
		*es = ESMustFail
	default:
		return fmt.Errorf("unable to translate %q into an exit status", s)
	}
	return nil
}

// A command executed during a Step. Command is subject to template expansion
// using the values in StepData.
//
// Example: install from the target user's home
//
//	command: "{{.Home}}/bin/setup-extras --user {{.User}}"
type StepCmd struct {
	ExitStatus ExitStatus `yaml:"exitStatus,omitempty"`
	Command    string     `yaml:"command"`
}

// Data usable in step command templates.
type StepData struct {
	User     string //target (non-root) user
	Home     string //target user's home dir
	Manifest string //package manifest path
	Dotfiles string //dotfiles source dir
}

// A Step is a named sequence of commands run at one point in the pass.
type Step struct {
	Name     string    `yaml:"name"`
	When     WhenType  `yaml:"when"`
	Commands []StepCmd `yaml:"commands"`
	Verbose  bool      `yaml:"verbose,omitempty"`

	tmplData StepData
}

type Steps []Step

// RunApplicable runs all steps matching when, in order. The first failing
// step stops the remainder of the matching steps and reports failure.
func (ss Steps) RunApplicable(when WhenType, data StepData) (success bool) {
	for _, s := range ss {
		if s.When != when {
			continue
		}
		if err := s.Run(data); err != nil {
			log.Logf("error executing step %s: %s", s.Name, err)
			return false
		}
	}
	return true
}

var (
	EExecSuccess = fmt.Errorf("execution succeeded but must fail")
	EExecFail    = fmt.Errorf("execution failed but must succeed")
)

// Run executes the step's commands in order. A command whose result does not
// match its ExitStatus policy ends the step with an error.
func (s *Step) Run(data StepData) (err error) {
	s.tmplData = data
	for _, c := range s.Commands {
		if err = s.runCmd(c); err != nil {
			break
		}
	}
	return
}

func (s *Step) runCmd(c StepCmd) error {
	line, err := s.applyTmpl(c.Command)
	if err != nil {
		return err
	}
	args, err := shlex.Split(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("step %s: empty command", s.Name)
	}
	cmd := exec.Command(args[0])
	cmd.Args = args
	out, success := log.Cmd(cmd)
	if success && s.Verbose {
		log.Logf("command output: %s", out)
	}
	if success && c.ExitStatus == ESMustFail {
		return EExecSuccess
	}
	if !success && c.ExitStatus == ESMustSucceed {
		return EExecFail
	}
	return nil
}

func (s *Step) applyTmpl(in string) (out string, err error) {
	tmpl, err := template.New("").Parse(in)
	if err != nil {
		log.Logf("step %s: error parsing templated command %s: %s", s.Name, in, err)
		return
	}
	var buf bytes.Buffer
	if err = tmpl.Execute(&buf, s.tmplData); err != nil {
		log.Logf("step %s: error executing templated command %s: %s", s.Name, in, err)
		return
	}
	out = buf.String()
	if s.Verbose {
		log.Logf("template expansion in %s: %s -> %s", s.Name, in, out)
	}
	return
}
