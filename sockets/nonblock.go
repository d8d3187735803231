// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 The Noisy Sockets Authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package sockets

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// SetNonblocking sets O_NONBLOCK on fd so that reads and writes return
// EAGAIN instead of blocking.
func SetNonblocking(fd int) error {
	if err := unix.SetNonblock(fd, true); err != nil {
		return fmt.Errorf("failed to set socket %d non-blocking: %w", fd, err)
	}
	return nil
}

// IsNonblocking reports whether O_NONBLOCK is set on fd.
func IsNonblocking(fd int) (bool, error) {
	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil {
		return false, fmt.Errorf("failed to get flags of socket %d: %w", fd, err)
	}
	return flags&unix.O_NONBLOCK != 0, nil
}
