// Copyright (C) 2021-2024 the Arch-i3-setup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package initramfs

import (
	"strings"

	"github.com/rjeczalik/notify"

	"github.com/jgranate/arch-i3-setup/pkg/log"
)

// watchImages logs *.img files as mkinitcpio finishes writing them, as
// progress feedback - generating a fallback image can take minutes with no
// output. Returns a stop func. Failure to watch is logged and harmless.
func watchImages(dir string) (stop func()) {
	ch := make(chan notify.EventInfo, 16)
	if err := notify.Watch(dir, ch, notify.InCloseWrite); err != nil {
		log.Logf("watch %s: %s", dir, err)
		return func() {}
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range ch {
			if strings.HasSuffix(ev.Path(), ".img") {
				log.Msgf("wrote %s", ev.Path())
			}
		}
	}()
	return func() {
		notify.Stop(ch)
		close(ch)
		<-done
	}
}
