//go:build !linux

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
	"errors"
	"fmt"
	"time"
)

var errEpollUnsupported = fmt.Errorf("epoll: %w", errors.ErrUnsupported)

// Epoll is only available on Linux, use NetModeBusyPoll elsewhere.
type Epoll struct{}

func NewEpoll() (*Epoll, error) {
	return nil, errEpollUnsupported
}

func (e *Epoll) Control(op Op, fd int, interest Interest, token Token) error {
	return errEpollUnsupported
}

func (e *Epoll) Wait(events []Event, timeout time.Duration) (int, error) {
	return 0, errEpollUnsupported
}

func (e *Epoll) Close() error {
	return nil
}
