// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 The Noisy Sockets Authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package config

import "github.com/noisysockets/resolvernet/endpoint"

const (
	// DefaultPort is the resolver port used when an address has none.
	DefaultPort = endpoint.DefaultPort
	// DefaultSocketsPerFamily is the number of query sockets opened for
	// each address family in use.
	DefaultSocketsPerFamily = 1
)
