// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"fmt"
	"math/rand"
	"net/rpc"
	"net/rpc/jsonrpc"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/calcd/counter"
	"github.com/bitmark-inc/calcd/fault"
	"github.com/bitmark-inc/calcd/fixtures"
	"github.com/bitmark-inc/calcd/rpc/certificate"
	"github.com/bitmark-inc/calcd/rpc/listeners"
	"github.com/bitmark-inc/logger"
)

type Add struct{}
type AddArg struct {
	A, B int
}

func (a Add) Add(arg *AddArg, reply *int) error {
	*reply = arg.A + arg.B
	return nil
}

func testTLSConfig(t *testing.T) (*tls.Config, [32]byte) {
	cer, key := fixtures.Certificate(t)
	tlsConfig, fin, err := certificate.Get(logger.New(fixtures.LogCategory), "test", cer, key)
	if nil != err {
		t.Fatalf("get certificate with error: %s", err)
	}
	return tlsConfig, fin
}

func TestRpcListenerServe(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	port := rand.Intn(30000) + 30000
	listen := fmt.Sprintf("127.0.0.1:%d", port)
	con := listeners.RPCConfiguration{
		MaximumConnections: 5,
		Bandwidth:          10000000,
		Listen:             []string{listen},
	}

	count := counter.Counter(0)

	s := rpc.NewServer()
	err := s.Register(Add{})
	if err != nil {
		t.Error("register with error: ", err)
		t.FailNow()
	}

	tlsConfig, fin := testTLSConfig(t)

	l, err := listeners.NewRPC(
		&con,
		logger.New(fixtures.LogCategory),
		&count,
		s,
		tlsConfig,
		fin,
	)
	assert.Nil(t, err, "wrong NewRPC")

	err = l.Serve()
	assert.Nil(t, err, "wrong Serve")
	defer l.Stop()

	c, err := tls.Dial("tcp", listen, &tls.Config{InsecureSkipVerify: true})
	if err != nil {
		t.Error("dial with error: ", err)
		t.FailNow()
	}

	arg := AddArg{
		A: 2,
		B: 5,
	}
	var reply int

	client := jsonrpc.NewClient(c)
	defer client.Close()

	err = client.Call("Add.Add", &arg, &reply)
	assert.Nil(t, err, "wrong client Call")
	assert.Equal(t, arg.A+arg.B, reply, "wrong result")
}

func TestRpcListenerRejectsBadConfiguration(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	items := []struct {
		name string
		con  listeners.RPCConfiguration
		err  error
	}{
		{
			name: "max connection count too small",
			con:  listeners.RPCConfiguration{MaximumConnections: 0, Bandwidth: 10000000, Listen: []string{"127.0.0.1:1234"}},
			err:  fault.ErrMissingParameters,
		},
		{
			name: "bandwidth too small",
			con:  listeners.RPCConfiguration{MaximumConnections: 1, Bandwidth: 100, Listen: []string{"127.0.0.1:1234"}},
			err:  fault.ErrMissingParameters,
		},
		{
			name: "empty listen",
			con:  listeners.RPCConfiguration{MaximumConnections: 1, Bandwidth: 10000000, Listen: []string{}},
			err:  fault.ErrMissingParameters,
		},
		{
			name: "invalid listen",
			con:  listeners.RPCConfiguration{MaximumConnections: 1, Bandwidth: 10000000, Listen: []string{"1"}},
			err:  fault.ErrInvalidIpAddress,
		},
		{
			name: "incomplete wildcard",
			con:  listeners.RPCConfiguration{MaximumConnections: 1, Bandwidth: 10000000, Listen: []string{"*"}},
			err:  fault.ErrInvalidIpAddress,
		},
	}

	for _, item := range items {
		count := counter.Counter(0)
		_, err := listeners.NewRPC(
			&item.con,
			logger.New(fixtures.LogCategory),
			&count,
			rpc.NewServer(),
			&tls.Config{},
			[32]byte{},
		)
		assert.Equal(t, item.err, err, "wrong error for: %s", item.name)
	}
}

func TestRpcListenerAcceptsAddressForms(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	for _, listen := range []string{"*:1234", "[::1]:1234", "127.0.0.1:1234"} {
		con := listeners.RPCConfiguration{
			MaximumConnections: 5,
			Bandwidth:          10000000,
			Listen:             []string{listen},
		}
		count := counter.Counter(0)

		_, err := listeners.NewRPC(
			&con,
			logger.New(fixtures.LogCategory),
			&count,
			rpc.NewServer(),
			&tls.Config{},
			[32]byte{},
		)
		assert.Nil(t, err, "wrong NewRPC for: %s", listen)
	}
}

func TestRpcListenerServeWhenInvalidTLSConfig(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	port := rand.Intn(30000) + 30000
	listen := fmt.Sprintf("127.0.0.1:%d", port)
	con := listeners.RPCConfiguration{
		MaximumConnections: 5,
		Bandwidth:          10000000,
		Listen:             []string{listen},
	}

	count := counter.Counter(0)

	l, err := listeners.NewRPC(
		&con,
		logger.New(fixtures.LogCategory),
		&count,
		rpc.NewServer(),
		&tls.Config{},
		[32]byte{},
	)
	assert.Nil(t, err, "wrong NewRPC")

	err = l.Serve()
	assert.NotNil(t, err, "wrong Serve")
	assert.Contains(t, err.Error(), "tls", "wrong error message")
}
