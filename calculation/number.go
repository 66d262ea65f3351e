// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package calculation

import (
	"math/big"

	"github.com/bitmark-inc/calcd/fault"
)

// MaximumNumberDigits - digits in 2^128 - 1
const MaximumNumberDigits = 39

// maxNumber = 2^128 - 1
var maxNumber = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// ParseNumber - decode a decimal string as an unsigned 128 bit value
//
// only plain digits are accepted, no sign or separators
func ParseNumber(s string) (*big.Int, error) {
	if 0 == len(s) {
		return nil, fault.ErrInvalidNumber
	}

	for _, c := range s {
		if c < '0' || c > '9' {
			return nil, fault.ErrInvalidNumber
		}
	}

	// skip leading zeros before the length check
	i := 0
	for i < len(s)-1 && '0' == s[i] {
		i += 1
	}
	if len(s)-i > MaximumNumberDigits {
		return nil, fault.ErrNumberTooLarge
	}

	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fault.ErrInvalidNumber
	}
	if !inRange(n) {
		return nil, fault.ErrNumberTooLarge
	}
	return n, nil
}

func inRange(n *big.Int) bool {
	return n.Sign() >= 0 && n.Cmp(maxNumber) <= 0
}
