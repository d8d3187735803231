// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 The Noisy Sockets Authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package sockets prepares already open sockets for use by an event loop,
// either edge-triggered (epoll) or busy polling.
package sockets

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/noisysockets/resolvernet/endpoint"
	"golang.org/x/sys/unix"
)

// Role is the purpose of a socket.
type Role int

const (
	// RoleInterface is a socket bound to a network interface (eg. raw frames).
	RoleInterface Role = iota
	// RoleQuery is an outbound query socket.
	RoleQuery
	// RoleControl is a control channel.
	RoleControl
)

func (r Role) String() string {
	switch r {
	case RoleInterface:
		return "interface"
	case RoleQuery:
		return "query"
	case RoleControl:
		return "control"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// DomainFor returns the protocol family used for sockets talking to
// endpoints of the given family.
func DomainFor(family endpoint.Family) int {
	if family == endpoint.IPv4 {
		return unix.AF_INET
	}
	return unix.AF_INET6
}

func domainString(domain int) string {
	switch domain {
	case unix.AF_INET:
		return "inet"
	case unix.AF_INET6:
		return "inet6"
	case unix.AF_UNIX:
		return "unix"
	default:
		return fmt.Sprintf("domain(%d)", domain)
	}
}

// Token identifies a descriptor within its group and the groups derived
// from it. It is attached to the readiness registration so events map
// straight back to the descriptor.
type Token uint32

// Descriptor is an open socket owned by the caller.
type Descriptor struct {
	// FD is the socket file descriptor. It is never closed by this package.
	FD int
	// Domain is the protocol family of the socket, eg. unix.AF_INET.
	Domain int
	// Role is the purpose of the socket.
	Role Role
	// Payload is opaque per-socket context belonging to the caller.
	Payload any

	token Token
}

// Token returns the token assigned to the descriptor when it was added to a group.
func (d *Descriptor) Token() Token {
	return d.token
}

// Group is an ordered set of descriptors. Insertion order determines the
// order of registration. A Group is not safe for concurrent use, callers
// must not add descriptors while a registration is in progress.
//
// Groups derived with ByRole share their tokens with the group they were
// derived from, so several of them can be registered on the same Registrar
// and any of them resolves the tokens of the others.
type Group struct {
	// root owns the token space, it is nil for a group created by NewGroup.
	root        *Group
	descriptors []*Descriptor
	// all is indexed by token, it is only used by a root group.
	all []*Descriptor
}

// NewGroup creates an empty group.
func NewGroup() *Group {
	return &Group{}
}

func (g *Group) tokens() *Group {
	if g.root != nil {
		return g.root
	}
	return g
}

// Add appends a descriptor to the group and returns it with its token set.
// Adding to a derived group also adds the descriptor to its root group.
func (g *Group) Add(fd int, domain int, role Role, payload any) *Descriptor {
	root := g.tokens()
	d := &Descriptor{
		FD:      fd,
		Domain:  domain,
		Role:    role,
		Payload: payload,
		token:   Token(len(root.all)),
	}
	root.all = append(root.all, d)
	if root != g {
		root.descriptors = append(root.descriptors, d)
	}
	g.descriptors = append(g.descriptors, d)
	return d
}

// Len returns the number of descriptors in the group.
func (g *Group) Len() int {
	return len(g.descriptors)
}

// Descriptors returns a copy of the descriptors in insertion order.
func (g *Group) Descriptors() []*Descriptor {
	descriptors := make([]*Descriptor, len(g.descriptors))
	copy(descriptors, g.descriptors)
	return descriptors
}

// Descriptor returns the descriptor for a token reported by a readiness event.
// Tokens are resolved through the root group, so the descriptor may belong to
// a sibling of a derived group.
func (g *Group) Descriptor(token Token) (*Descriptor, bool) {
	all := g.tokens().all
	if int(token) >= len(all) {
		return nil, false
	}
	return all[token], true
}

// ByRole returns a new group holding the descriptors with the given role.
// The descriptors keep the tokens they were given in g.
func (g *Group) ByRole(role Role) *Group {
	sub := &Group{root: g.tokens()}
	for _, d := range g.descriptors {
		if d.Role == role {
			sub.descriptors = append(sub.descriptors, d)
		}
	}
	return sub
}

// SetNonblocking puts every socket in the group into non-blocking mode.
func (g *Group) SetNonblocking() error {
	var result *multierror.Error
	for _, d := range g.descriptors {
		if err := SetNonblocking(d.FD); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// SetBufferSize sets the send and receive buffer sizes of every socket in the group.
func (g *Group) SetBufferSize(size int) error {
	var result *multierror.Error
	for _, d := range g.descriptors {
		if err := SetBufferSize(d.FD, size); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
