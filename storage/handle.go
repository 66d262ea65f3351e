// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/bitmark-inc/calcd/fault"
)

// PoolHandle - one prefixed table
type PoolHandle struct {
	prefix   byte
	store    *Store
	uncached bool
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Get - read a value for a given key
//
// returns nil, nil if the key is absent
// the result is shared with the cache and must not be modified
func (p *PoolHandle) Get(key []byte) ([]byte, error) {
	return p.store.get(p.prefixKey(key), !p.uncached)
}

// GetN - read a record and decode first 8 bytes as big endian uint64
//
// second parameter is false if record was not found
func (p *PoolHandle) GetN(key []byte) (uint64, bool, error) {
	buffer, err := p.Get(key)
	if nil != err {
		return 0, false, err
	}
	if nil == buffer {
		return 0, false, nil
	}
	if len(buffer) < 8 {
		p.store.log.Errorf("pool: %q  truncated record for: %x: %x", p.prefix, key, buffer)
		return 0, false, fault.ErrRecordTruncated
	}
	n := binary.BigEndian.Uint64(buffer[:8])
	return n, true, nil
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) (bool, error) {
	value, err := p.Get(key)
	if nil != err {
		return false, err
	}
	return nil != value, nil
}
