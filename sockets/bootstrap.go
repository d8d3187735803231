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
	"log/slog"
	"strings"
)

// NetMode selects how the event loop waits for socket readiness.
type NetMode int

const (
	// NetModeEpoll waits on an edge-triggered epoll instance.
	NetModeEpoll NetMode = iota
	// NetModeBusyPoll repeatedly polls the non-blocking sockets.
	NetModeBusyPoll
)

func (m NetMode) String() string {
	switch m {
	case NetModeEpoll:
		return "epoll"
	case NetModeBusyPoll:
		return "busypoll"
	default:
		return fmt.Sprintf("NetMode(%d)", int(m))
	}
}

func (m NetMode) MarshalText() ([]byte, error) {
	switch m {
	case NetModeEpoll, NetModeBusyPoll:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("unknown net mode: %d", int(m))
	}
}

func (m *NetMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "epoll":
		*m = NetModeEpoll
	case "busypoll":
		*m = NetModeBusyPoll
	default:
		return fmt.Errorf("unknown net mode: %s", text)
	}
	return nil
}

// Bootstrap prepares the sockets of a group before the event loop starts.
//
// Every socket is made non-blocking. In epoll mode, an epoll instance is
// created and all sockets are registered edge-triggered for reading; the
// caller owns the returned instance and must close it. In busy poll mode no
// instance is needed and nil is returned.
func Bootstrap(logger *slog.Logger, g *Group, mode NetMode) (*Epoll, error) {
	if err := g.SetNonblocking(); err != nil {
		return nil, err
	}

	for _, d := range g.Descriptors() {
		logger.Debug("Prepared socket",
			"fd", d.FD, "domain", domainString(d.Domain), "role", d.Role, "token", d.Token())
	}

	switch mode {
	case NetModeBusyPoll:
		logger.Info("Sockets ready for busy polling", "sockets", g.Len())
		return nil, nil
	case NetModeEpoll:
		ep, err := NewEpoll()
		if err != nil {
			return nil, err
		}

		if err := RegisterAll(ep, g, Readable|EdgeTriggered, OpAdd); err != nil {
			_ = ep.Close()
			return nil, fmt.Errorf("failed to register sockets: %w", err)
		}

		logger.Info("Sockets registered with epoll", "sockets", g.Len())
		return ep, nil
	default:
		return nil, fmt.Errorf("unknown net mode: %v", mode)
	}
}
