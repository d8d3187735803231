// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 The Noisy Sockets Authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package sockets_test

import (
	"errors"
	"testing"

	"github.com/noisysockets/resolvernet/sockets"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

type registration struct {
	op       sockets.Op
	fd       int
	interest sockets.Interest
	token    sockets.Token
}

type fakeRegistrar struct {
	calls      []registration
	failOn     map[int]error
	failRemove error
}

func (r *fakeRegistrar) Control(op sockets.Op, fd int, interest sockets.Interest, token sockets.Token) error {
	r.calls = append(r.calls, registration{op: op, fd: fd, interest: interest, token: token})
	if op == sockets.OpRemove && r.failRemove != nil {
		return r.failRemove
	}
	if op != sockets.OpRemove {
		if err, ok := r.failOn[fd]; ok {
			return err
		}
	}
	return nil
}

func newTestGroup() *sockets.Group {
	g := sockets.NewGroup()
	g.Add(10, unix.AF_INET, sockets.RoleQuery, "first")
	g.Add(11, unix.AF_INET6, sockets.RoleQuery, "second")
	g.Add(12, unix.AF_INET, sockets.RoleControl, "third")
	return g
}

func TestRegisterAll(t *testing.T) {
	t.Run("Empty Group", func(t *testing.T) {
		r := &fakeRegistrar{}

		err := sockets.RegisterAll(r, sockets.NewGroup(), sockets.Readable, sockets.OpAdd)
		require.NoError(t, err)
		require.Empty(t, r.calls)
	})

	t.Run("In Order", func(t *testing.T) {
		r := &fakeRegistrar{}
		interest := sockets.Readable | sockets.EdgeTriggered

		err := sockets.RegisterAll(r, newTestGroup(), interest, sockets.OpAdd)
		require.NoError(t, err)

		require.Equal(t, []registration{
			{op: sockets.OpAdd, fd: 10, interest: interest, token: 0},
			{op: sockets.OpAdd, fd: 11, interest: interest, token: 1},
			{op: sockets.OpAdd, fd: 12, interest: interest, token: 2},
		}, r.calls)
	})

	t.Run("Rollback", func(t *testing.T) {
		errRejected := errors.New("rejected")
		r := &fakeRegistrar{failOn: map[int]error{12: errRejected}}

		err := sockets.RegisterAll(r, newTestGroup(), sockets.Readable, sockets.OpAdd)
		require.ErrorIs(t, err, errRejected)

		var regErr *sockets.RegistrationError
		require.True(t, errors.As(err, &regErr))
		require.Equal(t, 12, regErr.Descriptor.FD)
		require.Equal(t, "third", regErr.Descriptor.Payload)
		require.Equal(t, sockets.OpAdd, regErr.Op)

		// The two sockets added before the failure are removed again, newest first.
		require.Len(t, r.calls, 5)
		require.Equal(t, registration{op: sockets.OpRemove, fd: 11, interest: sockets.Readable, token: 1}, r.calls[3])
		require.Equal(t, registration{op: sockets.OpRemove, fd: 10, interest: sockets.Readable, token: 0}, r.calls[4])
	})

	t.Run("Rollback Failure", func(t *testing.T) {
		errRejected := errors.New("rejected")
		errStuck := errors.New("stuck")
		r := &fakeRegistrar{failOn: map[int]error{11: errRejected}, failRemove: errStuck}

		err := sockets.RegisterAll(r, newTestGroup(), sockets.Readable, sockets.OpAdd)
		require.ErrorIs(t, err, errRejected)
		require.ErrorIs(t, err, errStuck)

		var regErr *sockets.RegistrationError
		require.True(t, errors.As(err, &regErr))
		require.Equal(t, 11, regErr.Descriptor.FD)
	})

	t.Run("Modify Is Not Rolled Back", func(t *testing.T) {
		errRejected := errors.New("rejected")
		r := &fakeRegistrar{failOn: map[int]error{11: errRejected}}

		err := sockets.RegisterAll(r, newTestGroup(), sockets.Writable, sockets.OpModify)
		require.ErrorIs(t, err, errRejected)
		require.Len(t, r.calls, 2)
	})
}
