// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/calcd/counter"
	"github.com/bitmark-inc/calcd/fault"
	"github.com/bitmark-inc/calcd/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// MethodInfo - RPC method name
const MethodInfo = "Node.Info"

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	Backend string
	counter *counter.Counter
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Version     string `json:"version"`
	Uptime      string `json:"uptime"`
	Backend     string `json:"backend"`
	Connections uint64 `json:"connections"`
}

// New - create the node service
func New(log *logger.L, start time.Time, version string, counter *counter.Counter, backend string) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		Backend: backend,
		counter: counter,
	}
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	if "" == node.Backend {
		return fault.ErrDatabaseIsNotSet
	}

	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	reply.Backend = node.Backend
	reply.Connections = node.counter.Uint64()
	return nil
}
