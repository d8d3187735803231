// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 The Noisy Sockets Authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package config_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/noisysockets/resolvernet/config"
	"github.com/noisysockets/resolvernet/endpoint"
	"github.com/noisysockets/resolvernet/sockets"
	"github.com/stretchr/testify/require"
)

func TestFromYAML(t *testing.T) {
	configFile, err := os.Open("testdata/config.yaml")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, configFile.Close())
	})

	conf, err := config.FromYAML(configFile)
	require.NoError(t, err)

	require.Equal(t, "Config", conf.GetKind())
	require.Equal(t, "resolvernet.noisysockets.github.com/v1alpha1", conf.GetAPIVersion())

	require.Len(t, conf.Resolvers, 5)
	require.Equal(t, uint16(config.DefaultPort), conf.DefaultPort)
	require.Equal(t, sockets.NetModeBusyPoll, conf.NetMode)
	require.Equal(t, 2, conf.SocketsPerFamily)
	require.Equal(t, 8<<20, conf.SocketBufferSize)
	require.True(t, conf.Control)

	endpoints, err := conf.Endpoints()
	require.ErrorIs(t, err, endpoint.ErrInvalidAddress)
	require.ErrorContains(t, err, "not-an-address")

	require.Len(t, endpoints, 4)
	require.Equal(t, "8.8.8.8:53", endpoints[0].String())
	require.Equal(t, "1.1.1.1:5353", endpoints[1].String())
	require.Equal(t, "[2606:4700:4700::1111]:853", endpoints[2].String())
	require.Equal(t, "[2001:4860:4860::8888]:53", endpoints[3].String())
}

func TestDefaults(t *testing.T) {
	configFile, err := os.Open("testdata/config_minimal.yaml")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, configFile.Close())
	})

	conf, err := config.FromYAML(configFile)
	require.NoError(t, err)

	require.Equal(t, uint16(53), conf.DefaultPort)
	require.Equal(t, sockets.NetModeEpoll, conf.NetMode)
	require.Equal(t, config.DefaultSocketsPerFamily, conf.SocketsPerFamily)
	require.Zero(t, conf.SocketBufferSize)
	require.False(t, conf.Control)
}

func TestToYAML(t *testing.T) {
	configFile, err := os.Open("testdata/config.yaml")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, configFile.Close())
	})

	conf, err := config.FromYAML(configFile)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = config.ToYAML(&buf, conf)
	require.NoError(t, err)

	require.Contains(t, buf.String(), "netMode: busypoll")

	conf2, err := config.FromYAML(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	require.Equal(t, conf, conf2)
}

func TestFromYAMLInvalid(t *testing.T) {
	t.Run("Unknown API Version", func(t *testing.T) {
		_, err := config.FromYAML(strings.NewReader("apiVersion: example.com/v1\nkind: Config\n"))
		require.ErrorContains(t, err, "unsupported api version")
	})

	t.Run("Unknown Kind", func(t *testing.T) {
		_, err := config.FromYAML(strings.NewReader("apiVersion: resolvernet.noisysockets.github.com/v1alpha1\nkind: Peer\n"))
		require.ErrorContains(t, err, "unsupported kind")
	})

	t.Run("Unknown Net Mode", func(t *testing.T) {
		_, err := config.FromYAML(strings.NewReader("apiVersion: resolvernet.noisysockets.github.com/v1alpha1\nkind: Config\nnetMode: select\n"))
		require.ErrorContains(t, err, "unknown net mode")
	})

	t.Run("Negative Buffer Size", func(t *testing.T) {
		_, err := config.FromYAML(strings.NewReader("apiVersion: resolvernet.noisysockets.github.com/v1alpha1\nkind: Config\nsocketBufferSize: -1\n"))
		require.ErrorContains(t, err, "invalid socket buffer size")
	})
}
