// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/calcd/counter"
	"github.com/bitmark-inc/calcd/ledger"
	"github.com/bitmark-inc/calcd/rpc/calculator"
	"github.com/bitmark-inc/calcd/rpc/history"
	"github.com/bitmark-inc/calcd/rpc/node"
	"github.com/bitmark-inc/calcd/rpc/viewingkey"
	"github.com/bitmark-inc/logger"
)

// Create - an RPC server with every client service registered
func Create(log *logger.L, version string, rpcCount *counter.Counter, handler ledger.Handler, backend string) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(calculator.New(log, handler))
	_ = server.Register(viewingkey.New(log, handler))
	_ = server.Register(history.New(log, handler))
	_ = server.Register(node.New(log, start, version, rpcCount, backend))

	return server
}
