// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 The Noisy Sockets Authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package reverse builds the names used to query the reverse DNS
// namespace (in-addr.arpa. and ip6.arpa.) for an address.
package reverse

import (
	"net/netip"
	"strconv"
	"strings"

	"github.com/noisysockets/resolvernet/endpoint"
)

const (
	IPv4Suffix = "in-addr.arpa."
	IPv6Suffix = "ip6.arpa."

	// MaxIPv4NameLen is the length of "255.255.255.255.in-addr.arpa.".
	MaxIPv4NameLen = 4*len("255.") + len(IPv4Suffix)
	// MaxIPv6NameLen is 32 single digit nibble labels plus the suffix.
	MaxIPv6NameLen = 32*len("f.") + len(IPv6Suffix)
)

const hexDigits = "0123456789abcdef"

// Name returns the reverse lookup name for a literal IPv4 or IPv6 address
// (no port, no brackets, no zone).
func Name(addressText string) (string, error) {
	addr, err := netip.ParseAddr(addressText)
	if err != nil || addr.Zone() != "" {
		return "", &endpoint.ParseError{Input: addressText, Err: endpoint.ErrInvalidAddress}
	}

	return NameForAddr(addr), nil
}

// NameForEndpoint returns the reverse lookup name for the endpoint's address.
func NameForEndpoint(e endpoint.Endpoint) string {
	return NameForAddr(e.Addr())
}

// NameForAddr returns the reverse lookup name for addr. IPv4-mapped IPv6
// addresses are named under ip6.arpa. An invalid addr yields "".
func NameForAddr(addr netip.Addr) string {
	var sb strings.Builder

	switch {
	case addr.Is4():
		b := addr.As4()

		sb.Grow(MaxIPv4NameLen)
		for i := len(b) - 1; i >= 0; i-- {
			sb.WriteString(strconv.Itoa(int(b[i])))
			sb.WriteByte('.')
		}
		sb.WriteString(IPv4Suffix)
	case addr.Is6():
		b := addr.As16()

		sb.Grow(MaxIPv6NameLen)
		for i := len(b) - 1; i >= 0; i-- {
			sb.WriteByte(hexDigits[b[i]&0x0f])
			sb.WriteByte('.')
			sb.WriteByte(hexDigits[b[i]>>4])
			sb.WriteByte('.')
		}
		sb.WriteString(IPv6Suffix)
	}

	return sb.String()
}
