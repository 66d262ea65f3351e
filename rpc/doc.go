// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - this is to setup and handle all of the incoming JSON RPC requests
// from clients requiring calcd services
//
// standard golang RPC services can be used on the client side to
// access these services; the same services are also reachable as
// HTTPS POST requests to /calcd/rpc
package rpc
