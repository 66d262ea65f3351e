// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package signature - owner signatures on mutating requests
//
// the signed message is:
//
//   varint(method) ++ varint(owner bytes) ++ timestamp(8 byte big endian) ++ varint(field)...
//
// where varint(x) is the Varint64 length of x followed by x
package signature

import (
	"encoding/binary"
	"time"

	"github.com/bitmark-inc/calcd/account"
	"github.com/bitmark-inc/calcd/fault"
	"github.com/bitmark-inc/calcd/util"
)

// MaximumClockSkew - allowed distance between request time and server time
const MaximumClockSkew = 5 * time.Minute

// Pack - build the message that the owner signs
func Pack(method string, owner *account.Account, timestamp int64, fields ...string) []byte {
	message := util.ToVarintPrefixed([]byte(method))
	message = append(message, util.ToVarintPrefixed(owner.Bytes())...)

	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, uint64(timestamp))
	message = append(message, ts...)

	for _, field := range fields {
		message = append(message, util.ToVarintPrefixed([]byte(field))...)
	}
	return message
}

// Sign - sign a request with the owner's private key
func Sign(privateKey *account.PrivateKey, method string, timestamp int64, fields ...string) account.Signature {
	return privateKey.Sign(Pack(method, privateKey.Account(), timestamp, fields...))
}

// Verify - check the request was signed by the owner recently
func Verify(now time.Time, method string, owner *account.Account, timestamp int64, sig account.Signature, fields ...string) error {
	if nil == owner || nil == owner.AccountInterface {
		return fault.ErrInvalidAddress
	}
	if 0 == len(sig) {
		return fault.ErrInvalidSignature
	}

	requestTime := time.Unix(timestamp, 0)
	skew := now.Sub(requestTime)
	if skew < -MaximumClockSkew || skew > MaximumClockSkew {
		return fault.ErrRequestExpired
	}

	return owner.CheckSignature(Pack(method, owner, timestamp, fields...), sig)
}
