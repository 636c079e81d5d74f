// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package id looks up users in the passwd database of a given filesystem
// (not necessarily mounted at /).
package id

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// User is one passwd entry.
type User struct {
	Name string
	UID  int
	GID  int
	Home string
}

// LookupUser returns the passwd entry for 'user', using data in fs at 'root'.
func LookupUser(root, user string) (u User, err error) {
	ufile := filepath.Join(root, "etc", "passwd")
	users, err := os.Open(ufile)
	if err != nil {
		return
	}
	defer users.Close()
	scanner := bufio.NewScanner(users)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), ":")
		if len(fields) < 6 || fields[0] != user {
			continue
		}
		u.Name = user
		u.UID, err = strconv.Atoi(fields[2])
		if err == nil {
			u.GID, err = strconv.Atoi(fields[3])
		}
		if err != nil {
			err = fmt.Errorf("LookupUser: err %s parsing entry for %s in %s", err, user, ufile)
			return User{}, err
		}
		u.Home = fields[5]
		return
	}
	if err = scanner.Err(); err != nil {
		return
	}
	err = fmt.Errorf("LookupUser: can't find user %s in %s", user, ufile)
	return
}

// return numeric group id of 'group', using data in fs at 'root', or -1 if error
func GetGID(root, group string) (rv int, err error) {
	rv = -1
	gfile := filepath.Join(root, "etc", "group")
	grps, err := os.Open(gfile)
	if err != nil {
		return
	}
	defer grps.Close()
	scanner := bufio.NewScanner(grps)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), ":")
		if len(fields) < 3 || fields[0] != group {
			continue
		}
		rv, err = strconv.Atoi(fields[2])
		if err != nil {
			err = fmt.Errorf("getGID: err %s finding group %s in %s", err, group, gfile)
			rv = -1
		}
		return
	}
	err = fmt.Errorf("getGID: can't find group %s in %s", group, gfile)
	return
}
