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
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Op is a registration operation.
type Op int

const (
	OpAdd Op = iota
	OpModify
	OpRemove
)

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpModify:
		return "modify"
	case OpRemove:
		return "remove"
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

// Interest is the set of readiness conditions a registration asks for.
type Interest uint8

const (
	Readable Interest = 1 << iota
	Writable
	// EdgeTriggered reports readiness only on state changes.
	EdgeTriggered
)

// Registrar is a readiness notification mechanism such as epoll.
type Registrar interface {
	// Control adds, modifies or removes the registration of fd. The token is
	// reported back with every readiness event for fd.
	Control(op Op, fd int, interest Interest, token Token) error
}

// Event is a readiness notification for a registered socket.
type Event struct {
	Token    Token
	Readable bool
	Writable bool
	// Hangup is set when the socket reported an error or hang up.
	Hangup bool
}

// RegistrationError is returned when a socket could not be registered.
type RegistrationError struct {
	Descriptor *Descriptor
	Op         Op
	Err        error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("failed to %s %s socket %d (token %d): %v",
		e.Op, e.Descriptor.Role, e.Descriptor.FD, e.Descriptor.Token(), e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// RegisterAll applies op with the given interest to every descriptor of the
// group, in insertion order. If a descriptor fails to be added, the
// descriptors added before it are removed again and the failure is reported
// as a *RegistrationError. Modify and remove operations are not rolled back.
func RegisterAll(r Registrar, g *Group, interest Interest, op Op) error {
	for i, d := range g.descriptors {
		err := r.Control(op, d.FD, interest, d.token)
		if err == nil {
			continue
		}

		if op == OpAdd {
			var rollbackErrs []error
			for j := i - 1; j >= 0; j-- {
				prev := g.descriptors[j]
				if rerr := r.Control(OpRemove, prev.FD, interest, prev.token); rerr != nil {
					rollbackErrs = append(rollbackErrs, &RegistrationError{Descriptor: prev, Op: OpRemove, Err: rerr})
				}
			}
			if len(rollbackErrs) > 0 {
				err = multierror.Append(err, rollbackErrs...)
			}
		}

		return &RegistrationError{Descriptor: d, Op: op, Err: err}
	}

	return nil
}
