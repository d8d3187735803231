// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 The Noisy Sockets Authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package endpoint

import (
	"fmt"
	"net/netip"

	"golang.org/x/sys/unix"
)

// Sockaddr returns the socket address for use with the unix socket calls.
// The kernel interface takes care of converting the port to network order.
// The zero Endpoint has no socket address and nil is returned.
func (e Endpoint) Sockaddr() unix.Sockaddr {
	if !e.IsValid() {
		return nil
	}
	if e.Family() == IPv4 {
		return &unix.SockaddrInet4{Port: int(e.Port()), Addr: e.Addr().As4()}
	}
	return &unix.SockaddrInet6{Port: int(e.Port()), Addr: e.Addr().As16()}
}

// FromSockaddr converts a socket address, eg. one returned by recvfrom(2),
// into an Endpoint.
func FromSockaddr(sa unix.Sockaddr) (Endpoint, error) {
	switch sa := sa.(type) {
	case *unix.SockaddrInet4:
		return Endpoint{ap: netip.AddrPortFrom(netip.AddrFrom4(sa.Addr), uint16(sa.Port))}, nil
	case *unix.SockaddrInet6:
		if sa.ZoneId != 0 {
			return Endpoint{}, fmt.Errorf("unsupported scoped address with zone id %d", sa.ZoneId)
		}
		return Endpoint{ap: netip.AddrPortFrom(netip.AddrFrom16(sa.Addr), uint16(sa.Port))}, nil
	default:
		return Endpoint{}, fmt.Errorf("unsupported socket address type %T", sa)
	}
}
