// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 The Noisy Sockets Authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package endpoint converts between textual resolver addresses and the
// binary address/port records used when talking to the network.
package endpoint

import (
	"fmt"
	"net/netip"

	"golang.org/x/sys/unix"
)

// DefaultPort is the port assumed when text carries none and the caller did
// not provide one (eg. when decoding from YAML).
const DefaultPort = 53

// Family is the address family of an Endpoint.
type Family uint8

const (
	// IPv4 endpoints carry a 4 byte address.
	IPv4 Family = iota + 1
	// IPv6 endpoints carry a 16 byte address.
	IPv6
)

func (f Family) String() string {
	switch f {
	case IPv4:
		return "ipv4"
	case IPv6:
		return "ipv6"
	default:
		return fmt.Sprintf("Family(%d)", uint8(f))
	}
}

// Endpoint is an IPv4 or IPv6 address with a port.
// The zero value is not a valid endpoint.
type Endpoint struct {
	ap netip.AddrPort
}

// FromAddrPort creates an endpoint from a netip.AddrPort. Zoned addresses
// are rejected as they have no sockaddr representation without an interface
// index.
func FromAddrPort(ap netip.AddrPort) (Endpoint, error) {
	if !ap.Addr().IsValid() {
		return Endpoint{}, &ParseError{Input: ap.String(), Err: ErrInvalidAddress}
	}
	if ap.Addr().Zone() != "" {
		return Endpoint{}, &ParseError{Input: ap.String(), Err: ErrInvalidAddress}
	}
	return Endpoint{ap: ap}, nil
}

// IsValid reports whether the endpoint was produced by a constructor.
func (e Endpoint) IsValid() bool {
	return e.ap.Addr().IsValid()
}

// Family returns the address family of the endpoint. It is only meaningful
// for a valid endpoint, see IsValid.
func (e Endpoint) Family() Family {
	if e.ap.Addr().Is4() {
		return IPv4
	}
	return IPv6
}

// Addr returns the address of the endpoint.
func (e Endpoint) Addr() netip.Addr {
	return e.ap.Addr()
}

// Port returns the port of the endpoint in host byte order.
func (e Endpoint) Port() uint16 {
	return e.ap.Port()
}

// AddrPort returns the endpoint as a netip.AddrPort.
func (e Endpoint) AddrPort() netip.AddrPort {
	return e.ap
}

// String renders the endpoint as "a.b.c.d:port" or "[v6]:port". The port is
// always present, even if it was defaulted during parsing.
func (e Endpoint) String() string {
	if !e.IsValid() {
		return "invalid endpoint"
	}
	return e.ap.String()
}

// WireLength returns the size of the native sockaddr structure for the
// endpoint's family, as passed to sendto(2) and friends.
func (e Endpoint) WireLength() int {
	if !e.IsValid() {
		return 0
	}
	if e.Family() == IPv4 {
		return unix.SizeofSockaddrInet4
	}
	return unix.SizeofSockaddrInet6
}

// Custom marshal text for Endpoint, the port is always included.
func (e Endpoint) MarshalText() ([]byte, error) {
	if !e.IsValid() {
		return nil, fmt.Errorf("cannot marshal invalid endpoint")
	}
	return []byte(e.ap.String()), nil
}

// Custom unmarshal text for Endpoint, if no port is specified DefaultPort is used.
func (e *Endpoint) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text), DefaultPort)
	if err != nil {
		return err
	}

	*e = parsed
	return nil
}
