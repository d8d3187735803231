// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 The Noisy Sockets Authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package v1alpha1

import (
	"fmt"

	"github.com/noisysockets/resolvernet/config/types"
	"github.com/noisysockets/resolvernet/endpoint"
	"github.com/noisysockets/resolvernet/sockets"
)

const APIVersion = "resolvernet.noisysockets.github.com/v1alpha1"

// Config is the configuration for a resolver run.
type Config struct {
	types.TypeMeta `yaml:",inline"`
	// Resolvers is the list of resolver addresses to send queries to.
	// Addresses are in the form "a.b.c.d[:port]", "v6" or "[v6][:port]".
	Resolvers []string `yaml:"resolvers"`
	// DefaultPort is the port used for resolvers without one.
	// If not specified, port 53 will be used.
	DefaultPort uint16 `yaml:"defaultPort,omitempty"`
	// NetMode is how the event loop waits for sockets, "epoll" or "busypoll".
	NetMode sockets.NetMode `yaml:"netMode,omitempty"`
	// SocketsPerFamily is the number of query sockets opened for each
	// address family used by the resolvers.
	SocketsPerFamily int `yaml:"socketsPerFamily,omitempty"`
	// SocketBufferSize is the optional send and receive buffer size in bytes
	// for query sockets. If not specified, the system default is used.
	SocketBufferSize int `yaml:"socketBufferSize,omitempty"`
	// Control enables a control socket alongside the query sockets.
	Control bool `yaml:"control,omitempty"`
}

// Endpoints parses the configured resolvers. Resolvers that could not be
// parsed are reported in the error, the rest are still returned.
func (c *Config) Endpoints() ([]endpoint.Endpoint, error) {
	return endpoint.ParseList(c.Resolvers, c.DefaultPort)
}

func (c *Config) GetKind() string {
	return "Config"
}

func (c *Config) GetAPIVersion() string {
	return APIVersion
}

func (c *Config) PopulateTypeMeta() {
	c.TypeMeta = types.TypeMeta{
		APIVersion: APIVersion,
		Kind:       "Config",
	}
}

func GetConfigByKind(kind string) (types.Config, error) {
	switch kind {
	case "Config":
		return &Config{}, nil
	default:
		return nil, fmt.Errorf("unsupported kind: %s", kind)
	}
}
