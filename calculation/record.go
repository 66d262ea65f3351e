// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package calculation

import (
	"math/big"
	"unicode/utf8"

	"github.com/bitmark-inc/calcd/fault"
	"github.com/bitmark-inc/calcd/util"
)

// Record - text of one completed calculation, e.g. "3 + 5 = 8"
type Record string

// Packed - the stored form of a record
type Packed []byte

const recordTag = 0x01

func binaryRecord(n1 *big.Int, operator string, n2 *big.Int, result *big.Int) Record {
	return Record(n1.String() + " " + operator + " " + n2.String() + " = " + result.String())
}

// Pack - convert a record to its stored form
func (record Record) Pack() Packed {
	buffer := []byte{recordTag}
	return append(buffer, util.ToVarintPrefixed([]byte(record))...)
}

// Unpack - restore a record from its stored form
//
// any deviation from the exact layout is reported as corrupt
func (packed Packed) Unpack() (Record, error) {
	if 0 == len(packed) || recordTag != packed[0] {
		return "", fault.ErrCorruptHistoryEntry
	}
	text, n := util.FromVarintPrefixed(packed[1:])
	if 0 == n || 1+n != len(packed) || !utf8.Valid(text) {
		return "", fault.ErrCorruptHistoryEntry
	}
	return Record(text), nil
}

// String - the record text
func (record Record) String() string {
	return string(record)
}
