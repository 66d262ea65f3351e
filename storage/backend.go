// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// Backend - a flat binary key/value store
//
// Get returns nil, nil for an absent key.  Write applies every
// operation in the batch or none of them.
type Backend interface {
	Name() string
	Get(key []byte) ([]byte, error)
	Write(batch *Batch) error
	Close() error
}

type batchOperation int

const (
	dbPut batchOperation = iota
	dbDelete
)

type batchItem struct {
	op    batchOperation
	key   []byte
	value []byte
}

// Batch - an ordered list of writes to be applied atomically
type Batch struct {
	items []batchItem
}

// Put - queue a key/value store
func (b *Batch) Put(key []byte, value []byte) {
	if nil == value {
		value = []byte{}
	}
	b.items = append(b.items, batchItem{
		op:    dbPut,
		key:   key,
		value: value,
	})
}

// Delete - queue a key removal
func (b *Batch) Delete(key []byte) {
	b.items = append(b.items, batchItem{
		op:  dbDelete,
		key: key,
	})
}

// Len - number of queued operations
func (b *Batch) Len() int {
	return len(b.items)
}

// Reset - discard all queued operations
func (b *Batch) Reset() {
	b.items = b.items[:0]
}

// Replay - visit each operation in order; value is nil for a delete
func (b *Batch) Replay(f func(key []byte, value []byte)) {
	for _, item := range b.items {
		if dbDelete == item.op {
			f(item.key, nil)
		} else {
			f(item.key, item.value)
		}
	}
}
