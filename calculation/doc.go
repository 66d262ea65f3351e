// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package calculation - checked unsigned 128 bit arithmetic
//
// Every operation kind is a separate type implementing Operation;
// a successful Perform gives the result and the immutable text
// Record that is appended to the caller's history.
//
// Records are stored as:
//
//   0x01 ++ varint(length) ++ UTF-8 text
package calculation
