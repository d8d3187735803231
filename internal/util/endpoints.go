// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 The Noisy Sockets Authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package util

import (
	"fmt"

	"github.com/noisysockets/resolvernet/endpoint"
)

// HasIPv4 returns true if the list of endpoints contains an IPv4 endpoint.
func HasIPv4(endpoints []endpoint.Endpoint) bool {
	for _, e := range endpoints {
		if e.Family() == endpoint.IPv4 {
			return true
		}
	}

	return false
}

// HasIPv6 returns true if the list of endpoints contains an IPv6 endpoint.
func HasIPv6(endpoints []endpoint.Endpoint) bool {
	for _, e := range endpoints {
		if e.Family() == endpoint.IPv6 {
			return true
		}
	}

	return false
}

// Families returns the address families used by the endpoints, IPv4 first.
func Families(endpoints []endpoint.Endpoint) []endpoint.Family {
	var families []endpoint.Family
	if HasIPv4(endpoints) {
		families = append(families, endpoint.IPv4)
	}
	if HasIPv6(endpoints) {
		families = append(families, endpoint.IPv6)
	}
	return families
}

// Strings converts a slice of objects that implement fmt.Stringer to a slice of strings.
func Strings[T fmt.Stringer](s []T) []string {
	strings := make([]string, len(s))
	for i, v := range s {
		strings[i] = v.String()
	}
	return strings
}
