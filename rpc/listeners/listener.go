// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package listeners - TLS servers for the client RPC
package listeners

// Listener - a server started by Serve and closed by Stop
type Listener interface {
	Serve() error
	Stop()
}
