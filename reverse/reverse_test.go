// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 The Noisy Sockets Authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package reverse_test

import (
	"strings"
	"testing"

	"github.com/miekg/dns"
	"github.com/noisysockets/resolvernet/endpoint"
	"github.com/noisysockets/resolvernet/reverse"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	t.Run("IPv4", func(t *testing.T) {
		name, err := reverse.Name("1.2.3.4")
		require.NoError(t, err)
		require.Equal(t, "4.3.2.1.in-addr.arpa.", name)
	})

	t.Run("IPv4 Longest", func(t *testing.T) {
		name, err := reverse.Name("255.255.255.255")
		require.NoError(t, err)
		require.Equal(t, "255.255.255.255.in-addr.arpa.", name)
		require.Len(t, name, reverse.MaxIPv4NameLen)
	})

	t.Run("IPv6", func(t *testing.T) {
		name, err := reverse.Name("2001:db8::1")
		require.NoError(t, err)

		expected := "1.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.8.b.d.0.1.0.0.2.ip6.arpa."
		require.Equal(t, expected, name)
		require.Len(t, name, reverse.MaxIPv6NameLen)

		labels := strings.Split(strings.TrimSuffix(name, "ip6.arpa."), ".")
		// The trailing separator leaves an empty element.
		require.Len(t, labels, 33)
		require.Equal(t, "1", labels[0])
	})

	t.Run("IPv6 Nibble Order", func(t *testing.T) {
		// Last byte 0xab must be emitted low nibble first.
		name, err := reverse.Name("::ab")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(name, "b.a.0.0."))
	})

	t.Run("IPv4 Mapped", func(t *testing.T) {
		name, err := reverse.Name("::ffff:1.2.3.4")
		require.NoError(t, err)
		require.Equal(t, "4.0.3.0.2.0.1.0.f.f.f.f.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.ip6.arpa.", name)
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, text := range []string{"", "1.2.3", "[::1]", "1.2.3.4:53", "fe80::1%eth0", "example.com"} {
			name, err := reverse.Name(text)
			require.ErrorIs(t, err, endpoint.ErrInvalidAddress)
			require.Empty(t, name)
		}
	})
}

func TestNameMatchesReverseAddr(t *testing.T) {
	for _, text := range []string{
		"0.0.0.0",
		"8.8.4.4",
		"192.0.2.255",
		"::",
		"::1",
		"2001:db8::1",
		"2606:4700:4700::1111",
		"fe80::1234:5678:9abc:def0",
		"ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff",
	} {
		t.Run(text, func(t *testing.T) {
			expected, err := dns.ReverseAddr(text)
			require.NoError(t, err)

			name, err := reverse.Name(text)
			require.NoError(t, err)
			require.Equal(t, expected, name)
			require.True(t, dns.IsFqdn(name))
		})
	}
}

func TestNameForEndpoint(t *testing.T) {
	e := endpoint.MustParse("[2001:db8::1]:853", 53)
	require.Equal(t, "1.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.8.b.d.0.1.0.0.2.ip6.arpa.", reverse.NameForEndpoint(e))

	e = endpoint.MustParse("192.0.2.1:53", 53)
	require.Equal(t, "1.2.0.192.in-addr.arpa.", reverse.NameForEndpoint(e))
}
