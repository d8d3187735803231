// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 The Noisy Sockets Authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package main

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/noisysockets/resolvernet/endpoint"
	"github.com/noisysockets/resolvernet/sockets"
	"golang.org/x/sys/unix"
)

// openSockets opens n UDP query sockets for each family, plus a control
// socket pair if requested. The returned function closes everything opened.
func openSockets(families []endpoint.Family, n int, control bool) (*sockets.Group, func() error, error) {
	g := sockets.NewGroup()
	var fds []int

	closeAll := func() error {
		var result *multierror.Error
		for _, fd := range fds {
			if err := unix.Close(fd); err != nil {
				result = multierror.Append(result, fmt.Errorf("failed to close socket %d: %w", fd, err))
			}
		}
		return result.ErrorOrNil()
	}

	for _, family := range families {
		domain := sockets.DomainFor(family)
		for i := 0; i < n; i++ {
			fd, err := unix.Socket(domain, unix.SOCK_DGRAM, unix.IPPROTO_UDP)
			if err != nil {
				_ = closeAll()
				return nil, nil, fmt.Errorf("failed to open %s query socket: %w", family, err)
			}
			unix.CloseOnExec(fd)
			fds = append(fds, fd)

			g.Add(fd, domain, sockets.RoleQuery, nil)
		}
	}

	if control {
		pair, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_DGRAM, 0)
		if err != nil {
			_ = closeAll()
			return nil, nil, fmt.Errorf("failed to open control socket: %w", err)
		}
		unix.CloseOnExec(pair[0])
		unix.CloseOnExec(pair[1])
		fds = append(fds, pair[0], pair[1])

		// The peer end is kept as the payload so the event loop can reply.
		g.Add(pair[0], unix.AF_UNIX, sockets.RoleControl, pair[1])
	}

	return g, closeAll, nil
}
