// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package netcheck verifies the network is usable before any package
// operation - a half-provisioned machine with no mirrors reachable is the
// most common failure mode of the shell-script ancestor of this tool.
package netcheck

import (
	"fmt"
	"net"

	"github.com/vishvananda/netlink"

	"github.com/jgranate/arch-i3-setup/pkg/log"
)

// LinkUp reports whether at least one non-loopback interface is oper-up
// with an address assigned.
func LinkUp() bool {
	links, err := netlink.LinkList()
	if err != nil {
		log.Logf("netlink: %s", err)
		return false
	}
	for _, l := range links {
		attrs := l.Attrs()
		if attrs.Flags&net.FlagUp == 0 || attrs.Name == "lo" {
			continue
		}
		if attrs.OperState != netlink.OperUp {
			continue
		}
		addrs, err := netlink.AddrList(l, netlink.FAMILY_ALL)
		if err != nil || len(addrs) == 0 {
			continue
		}
		log.Logf("network: %s is up with %d address(es)", attrs.Name, len(addrs))
		return true
	}
	return false
}

// Require returns an error unless LinkUp.
func Require() error {
	if LinkUp() {
		return nil
	}
	return fmt.Errorf("no usable network link; connect first (nmtui / iwctl)")
}
