// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"bytes"
	"net"
	"net/rpc/jsonrpc"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/calcd/counter"
	"github.com/bitmark-inc/calcd/fault"
	"github.com/bitmark-inc/calcd/fixtures"
	"github.com/bitmark-inc/calcd/history"
	"github.com/bitmark-inc/calcd/ledger"
	"github.com/bitmark-inc/calcd/rpc/calculator"
	"github.com/bitmark-inc/calcd/rpc/server"
	"github.com/bitmark-inc/calcd/rpc/viewingkey"
	vk "github.com/bitmark-inc/calcd/viewingkey"
	"github.com/bitmark-inc/logger"
)

// client connected over a pipe to a server with an in-memory store
func setupClient(t *testing.T, verbose bool) (*Client, *bytes.Buffer) {
	fixtures.SetupTestLogger()
	t.Cleanup(fixtures.TeardownTestLogger)

	store := fixtures.NewTestStore(t)
	keys := vk.New(store, vk.HashSeed([]byte("client test seed")), true)
	l := ledger.New(keys, history.New(store))

	c := counter.Counter(0)
	s := server.Create(logger.New(fixtures.LogCategory), "1.0", &c, l, store.Backend())

	serverConn, clientConn := net.Pipe()
	go s.ServeCodec(jsonrpc.NewServerCodec(serverConn))

	buffer := &bytes.Buffer{}
	client := newClient(clientConn, verbose, buffer)
	t.Cleanup(client.Close)
	return client, buffer
}

func TestCalculateAndReadHistory(t *testing.T) {
	client, _ := setupClient(t, false)

	generated, err := client.GenerateKey(fixtures.Owner1, "some entropy")
	assert.Nil(t, err, "wrong GenerateKey")

	reply, err := client.Calculate(fixtures.Owner1, calculator.MethodMultiply, "6", "7")
	assert.Nil(t, err, "wrong Calculate")
	assert.Equal(t, "42", reply.N, "wrong product")
	assert.Equal(t, calculator.StatusRecorded, reply.Status, "wrong status")

	reply, err = client.SquareRoot(fixtures.Owner1, "17")
	assert.Nil(t, err, "wrong SquareRoot")
	assert.Equal(t, "4", reply.N, "wrong root")

	page, err := client.GetHistory(&HistoryData{
		Address:  fixtures.Owner1.Account().String(),
		Key:      generated.Key,
		PageSize: 10,
	})
	assert.Nil(t, err, "wrong GetHistory")
	assert.Equal(t, []string{"√17 = 4", "6 * 7 = 42"}, page.History, "wrong history")
}

func TestSetKey(t *testing.T) {
	client, _ := setupClient(t, false)

	set, err := client.SetKey(fixtures.Owner2, "my own key")
	assert.Nil(t, err, "wrong SetKey")
	assert.Equal(t, viewingkey.StatusKeySet, set.Status, "wrong status")

	_, err = client.Calculate(fixtures.Owner2, calculator.MethodAdd, "1", "1")
	assert.Nil(t, err, "wrong Calculate")

	page, err := client.GetHistory(&HistoryData{
		Address:  fixtures.Owner2.Account().String(),
		Key:      "my own key",
		PageSize: 1,
	})
	assert.Nil(t, err, "wrong GetHistory")
	assert.Equal(t, []string{"1 + 1 = 2"}, page.History, "wrong history")

	_, err = client.GetHistory(&HistoryData{
		Address:  fixtures.Owner2.Account().String(),
		Key:      "not my key",
		PageSize: 1,
	})
	assert.NotNil(t, err, "wrong key accepted")
	assert.Equal(t, fault.ErrUnauthorized.Error(), err.Error(), "wrong error")
}

func TestCalculateRejectsUnknownMethod(t *testing.T) {
	client, _ := setupClient(t, false)

	_, err := client.Calculate(fixtures.Owner1, calculator.MethodSquareRoot, "1", "2")
	assert.Equal(t, fault.ErrInvalidOperation, err, "wrong error")
}

func TestGetHistoryRejectsLargePage(t *testing.T) {
	client, _ := setupClient(t, false)

	_, err := client.GetHistory(&HistoryData{
		Address:  fixtures.Owner1.Account().String(),
		Key:      "k",
		PageSize: 101,
	})
	assert.Equal(t, fault.ErrInvalidPageSize, err, "wrong error")
}

func TestVerboseOutputHidesEntropy(t *testing.T) {
	client, buffer := setupClient(t, true)

	_, err := client.GenerateKey(fixtures.Owner1, "secret entropy")
	assert.Nil(t, err, "wrong GenerateKey")
	assert.Contains(t, buffer.String(), "Generate Request", "missing request")
	assert.NotContains(t, buffer.String(), "secret entropy", "entropy shown")
	assert.NotContains(t, buffer.String(), "api_key_", "key shown")
}

func TestGetInfo(t *testing.T) {
	client, _ := setupClient(t, false)

	info, err := client.GetInfo()
	assert.Nil(t, err, "wrong GetInfo")
	assert.Equal(t, "1.0", info.Version, "wrong version")
}
