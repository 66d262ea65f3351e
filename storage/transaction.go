// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
)

// Transaction - a set of pool writes committed as one backend write
//
// reads are not isolated; they see only committed data
type Transaction struct {
	store *Store
	batch *Batch
}

// Put - queue a key/value store
func (t *Transaction) Put(p *PoolHandle, key []byte, value []byte) {
	t.batch.Put(p.prefixKey(key), value)
}

// PutN - queue a big endian uint64 store
func (t *Transaction) PutN(p *PoolHandle, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	t.batch.Put(p.prefixKey(key), buffer)
}

// Delete - queue a key removal
func (t *Transaction) Delete(p *PoolHandle, key []byte) {
	t.batch.Delete(p.prefixKey(key))
}

// Commit - apply all queued operations atomically
func (t *Transaction) Commit() error {
	if 0 == t.batch.Len() {
		return nil
	}
	err := t.store.write(t.batch)
	t.batch.Reset()
	return err
}
