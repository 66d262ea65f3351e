// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc_test

import (
	"crypto/tls"
	"fmt"
	"math/rand"
	"net/rpc/jsonrpc"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/calcd/fault"
	"github.com/bitmark-inc/calcd/fixtures"
	"github.com/bitmark-inc/calcd/history"
	"github.com/bitmark-inc/calcd/ledger"
	"github.com/bitmark-inc/calcd/rpc"
	"github.com/bitmark-inc/calcd/rpc/certificate"
	"github.com/bitmark-inc/calcd/rpc/listeners"
	"github.com/bitmark-inc/calcd/rpc/node"
	"github.com/bitmark-inc/calcd/viewingkey"
)

func TestInitialiseFinalise(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir := t.TempDir()
	certFile := filepath.Join(dir, "rpc.crt")
	keyFile := filepath.Join(dir, "rpc.key")
	err := certificate.MakeSelfSigned("test", certFile, keyFile, false, []string{"127.0.0.1"})
	if nil != err {
		t.Fatalf("make certificate error: %s", err)
	}

	store := fixtures.NewTestStore(t)
	l := ledger.New(viewingkey.New(store, viewingkey.HashSeed([]byte("seed")), true), history.New(store))

	listen := fmt.Sprintf("127.0.0.1:%d", rand.Intn(30000)+30000)
	rpcConfiguration := listeners.RPCConfiguration{
		MaximumConnections: 5,
		Bandwidth:          10000000,
		Listen:             []string{listen},
		Certificate:        certFile,
		PrivateKey:         keyFile,
	}
	httpsConfiguration := listeners.HTTPSConfiguration{}

	err = rpc.Initialise(&rpcConfiguration, &httpsConfiguration, "1.0", l, store.Backend())
	assert.Nil(t, err, "wrong Initialise")

	err = rpc.Initialise(&rpcConfiguration, &httpsConfiguration, "1.0", l, store.Backend())
	assert.Equal(t, fault.ErrAlreadyInitialised, err, "second Initialise accepted")

	conn, err := tls.Dial("tcp", listen, &tls.Config{InsecureSkipVerify: true})
	if nil != err {
		t.Fatalf("dial error: %s", err)
	}
	client := jsonrpc.NewClient(conn)

	var reply node.InfoReply
	err = client.Call("Node.Info", &node.InfoArguments{}, &reply)
	assert.Nil(t, err, "wrong Node.Info")
	assert.Equal(t, "1.0", reply.Version, "wrong version")
	assert.Equal(t, uint64(1), reply.Connections, "wrong connection count")
	client.Close()

	err = rpc.Finalise()
	assert.Nil(t, err, "wrong Finalise")

	err = rpc.Finalise()
	assert.Equal(t, fault.ErrNotInitialised, err, "second Finalise accepted")
}
