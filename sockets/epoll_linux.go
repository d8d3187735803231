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

	"golang.org/x/sys/unix"
)

// Epoll is a Registrar backed by a Linux epoll instance.
type Epoll struct {
	fd int
}

// NewEpoll creates a new epoll instance.
func NewEpoll() (*Epoll, error) {
	fd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("failed to create epoll instance: %w", err)
	}

	return &Epoll{fd: fd}, nil
}

// Control implements Registrar.
func (e *Epoll) Control(op Op, fd int, interest Interest, token Token) error {
	var epollOp int
	switch op {
	case OpAdd:
		epollOp = unix.EPOLL_CTL_ADD
	case OpModify:
		epollOp = unix.EPOLL_CTL_MOD
	case OpRemove:
		epollOp = unix.EPOLL_CTL_DEL
	default:
		return fmt.Errorf("unknown operation: %v", op)
	}

	ev := unix.EpollEvent{Fd: int32(fd), Pad: int32(token)}
	if interest&Readable != 0 {
		ev.Events |= unix.EPOLLIN
	}
	if interest&Writable != 0 {
		ev.Events |= unix.EPOLLOUT
	}
	if interest&EdgeTriggered != 0 {
		ev.Events |= unix.EPOLLET
	}

	if err := unix.EpollCtl(e.fd, epollOp, fd, &ev); err != nil {
		return fmt.Errorf("epoll_ctl: %w", err)
	}

	return nil
}

// Wait blocks until at least one registered socket is ready or the timeout
// expires, and fills events. A negative timeout blocks indefinitely.
// It returns the number of events filled in. Timeouts are rounded up to
// whole milliseconds. An empty events slice returns immediately.
func (e *Epoll) Wait(events []Event, timeout time.Duration) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	msec := -1
	if timeout >= 0 {
		msec = int((timeout + time.Millisecond - 1) / time.Millisecond)
	}

	raw := make([]unix.EpollEvent, len(events))
	n, err := unix.EpollWait(e.fd, raw, msec)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return 0, nil
		}
		return 0, fmt.Errorf("epoll_wait: %w", err)
	}

	for i := 0; i < n; i++ {
		events[i] = Event{
			Token:    Token(raw[i].Pad),
			Readable: raw[i].Events&unix.EPOLLIN != 0,
			Writable: raw[i].Events&unix.EPOLLOUT != 0,
			Hangup:   raw[i].Events&(unix.EPOLLERR|unix.EPOLLHUP) != 0,
		}
	}

	return n, nil
}

// Close closes the epoll instance. Registered sockets are left open.
func (e *Epoll) Close() error {
	return unix.Close(e.fd)
}
