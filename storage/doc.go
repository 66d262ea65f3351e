// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the persistent data store
//
// maintain separate pools of a number of elements in key->value form
//
// The data is held in a flat binary key/value backend (LevelDB,
// SQLite or Redis) split into a series of tables.  Each table is
// defined by a prefix byte that is obtained from the prefix tag in
// the struct defining the available tables.
//
//
// Notes:
// 1. each separate pool has a single byte prefix
// 2. ++           = concatenation of byte data
// 3. account      = canonical account identifier (key variant ++ 32 byte public key)
// 4. count        = successive index value as big endian uint64 (8 bytes)
// 5. *others*     = byte values of various length
//
// Version:
//
//   0x00 ++ "VERSION"          - database layout version
//                                data: big endian uint32
//
// Credentials:
//
//   V ++ account               - viewing key for the account
//                                data: packed credential
//
// History:
//
//   N ++ account               - number of history entries, next index to append
//                                data: count
//   H ++ account ++ count      - one calculation record
//                                data: packed record
//
// Testing:
//   Z ++ key                   - testing data
package storage
