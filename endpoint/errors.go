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
	"errors"
	"fmt"
)

var (
	ErrEmpty           = errors.New("empty address")
	ErrMissingBracket  = errors.New("missing closing bracket")
	ErrTrailingGarbage = errors.New("unexpected characters after closing bracket")
	ErrInvalidPort     = errors.New("invalid port")
	ErrInvalidAddress  = errors.New("not an IPv4 or IPv6 address")
)

// ParseError is returned when an address could not be converted.
// Input holds the text exactly as the caller supplied it.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse address %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
