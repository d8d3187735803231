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
	"net/netip"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Parse converts a resolver address into an Endpoint.
//
// Accepted forms are "[v6]", "[v6]:port", "v6", "a.b.c.d" and
// "a.b.c.d:port". An unbracketed address is only treated as having a port
// when a '.' appears before the first ':', so IPv6 addresses must use the
// bracketed form to carry a port. When no port is given defaultPort is used.
func Parse(text string, defaultPort uint16) (Endpoint, error) {
	s := strings.TrimLeft(text, " \t")
	if s == "" {
		return Endpoint{}, &ParseError{Input: text, Err: ErrEmpty}
	}

	host, port := s, defaultPort
	if s[0] == '[' {
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return Endpoint{}, &ParseError{Input: text, Err: ErrMissingBracket}
		}
		host = s[1:end]

		switch rest := s[end+1:]; {
		case rest == "":
		case rest[0] == ':':
			p, err := parsePort(rest[1:])
			if err != nil {
				return Endpoint{}, &ParseError{Input: text, Err: err}
			}
			port = p
		default:
			return Endpoint{}, &ParseError{Input: text, Err: ErrTrailingGarbage}
		}
	} else if sep := portSeparator(s); sep >= 0 {
		p, err := parsePort(s[sep+1:])
		if err != nil {
			return Endpoint{}, &ParseError{Input: text, Err: err}
		}
		host, port = s[:sep], p
	}

	addr, err := netip.ParseAddr(host)
	if err != nil || addr.Zone() != "" {
		return Endpoint{}, &ParseError{Input: text, Err: ErrInvalidAddress}
	}

	return Endpoint{ap: netip.AddrPortFrom(addr, port)}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(text string, defaultPort uint16) Endpoint {
	e, err := Parse(text, defaultPort)
	if err != nil {
		panic(err)
	}
	return e
}

// ParseList parses a list of addresses. Unusable entries are skipped and
// reported together in the returned error, the usable ones are returned in
// their original order.
func ParseList(texts []string, defaultPort uint16) ([]Endpoint, error) {
	var endpoints []Endpoint
	var result *multierror.Error

	for _, text := range texts {
		e, err := Parse(text, defaultPort)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}

		endpoints = append(endpoints, e)
	}

	return endpoints, result.ErrorOrNil()
}

// portSeparator returns the index of the port separator in an unbracketed
// address, or -1 if the address has no port.
func portSeparator(s string) int {
	v4, colon := false, -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.':
			if colon < 0 {
				v4 = true
			}
		case ':':
			colon = i
		}
	}
	if !v4 {
		return -1
	}
	return colon
}

func parsePort(s string) (uint16, error) {
	if s == "" {
		return 0, ErrInvalidPort
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrInvalidPort
		}
	}

	port, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, ErrInvalidPort
	}

	return uint16(port), nil
}
