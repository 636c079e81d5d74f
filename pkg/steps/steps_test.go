// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package steps

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/jgranate/arch-i3-setup/pkg/log/testlog"
)

const stepYaml = `
- name: pre
  when: beforePackages
  commands:
    - command: "echo hi"
    - command: "touch {{.Home}}/.setup-started"
- name: check
  when: final
  commands:
    - command: "false"
      exitStatus: mustFail
`

func TestDecode(t *testing.T) {
	var ss Steps
	if err := yaml.Unmarshal([]byte(stepYaml), &ss); err != nil {
		t.Fatal(err)
	}
	if len(ss) != 2 {
		t.Fatalf("got %d steps", len(ss))
	}
	if ss[0].When != RunBeforePackages {
		t.Errorf("when: got %d", ss[0].When)
	}
	if ss[1].When != RunFinal {
		t.Errorf("when: got %d", ss[1].When)
	}
	if ss[0].Commands[0].ExitStatus != ESMustSucceed {
		t.Errorf("default exit status: got %d", ss[0].Commands[0].ExitStatus)
	}
	if ss[1].Commands[0].ExitStatus != ESMustFail {
		t.Errorf("exit status: got %d", ss[1].Commands[0].ExitStatus)
	}
}

func TestDecodeBadWhen(t *testing.T) {
	var ss Steps
	err := yaml.Unmarshal([]byte("- name: x\n  when: sometime\n"), &ss)
	if err == nil {
		t.Error("want error for unknown when value")
	}
}

func TestRunApplicable(t *testing.T) {
	tlog := testlog.NewTestLog(t, false)
	defer tlog.Freeze()

	var ss Steps
	if err := yaml.Unmarshal([]byte(stepYaml), &ss); err != nil {
		t.Fatal(err)
	}
	data := StepData{User: "tester", Home: "/home/tester"}
	cmds := testlog.CmdMap{
		testlog.CmdKey([]string{"echo", "hi"}): {
			Result: testlog.Result{Res: "hi", Success: true},
		},
		testlog.CmdKey([]string{"touch", "/home/tester/.setup-started"}): {
			Result: testlog.Result{Success: true},
		},
		//exitStatus mustFail, so the canned failure satisfies the policy
		testlog.CmdKey([]string{"false"}): {},
	}
	tlog.UseMappedCmdHijacker(cmds)

	if !ss.RunApplicable(RunBeforePackages, data) {
		t.Error("beforePackages steps failed")
	}
	if !ss.RunApplicable(RunFinal, data) {
		t.Error("final steps failed")
	}
	//no step matches afterKernel; vacuous success
	if !ss.RunApplicable(RunAfterKernel, data) {
		t.Error("no-op when must succeed")
	}
	k := testlog.CmdKey([]string{"touch", "/home/tester/.setup-started"})
	if cmds[k].RunCount != 1 {
		t.Errorf("templated command ran %d times", cmds[k].RunCount)
	}
}

func TestRunPolicy(t *testing.T) {
	tlog := testlog.NewTestLog(t, false)
	defer tlog.Freeze()
	cmds := testlog.CmdMap{
		testlog.CmdKey([]string{"works"}): {Result: testlog.Result{Success: true}},
		testlog.CmdKey([]string{"fails"}): {},
	}
	tlog.UseMappedCmdHijacker(cmds)

	for _, td := range []struct {
		cmd  string
		es   ExitStatus
		want error
	}{
		{"works", ESMustSucceed, nil},
		{"works", ESDontCare, nil},
		{"works", ESMustFail, EExecSuccess},
		{"fails", ESMustSucceed, EExecFail},
		{"fails", ESDontCare, nil},
		{"fails", ESMustFail, nil},
	} {
		s := &Step{Name: "policy", Commands: []StepCmd{{ExitStatus: td.es, Command: td.cmd}}}
		if err := s.Run(StepData{}); err != td.want {
			t.Errorf("%s/%d: got %v, want %v", td.cmd, td.es, err, td.want)
		}
	}
}

func TestRunBadTemplate(t *testing.T) {
	tlog := testlog.NewTestLog(t, false)
	defer tlog.Freeze()
	tlog.UseMappedCmdHijacker(testlog.CmdMap{})

	s := &Step{Name: "bad", Commands: []StepCmd{{Command: "echo {{.NoSuchField}}"}}}
	if err := s.Run(StepData{}); err == nil {
		t.Error("want error for bad template field")
	}
}
