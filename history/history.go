// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package history - append only calculation log per account
//
// each account has a count record and one entry per index:
//
//   N ++ account               - count
//   H ++ account ++ index      - packed record, index = 0 .. count-1
//
// pages are read backwards from the newest entry so the cost of a
// read depends only on the page size
package history

import (
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/calcd/calculation"
	"github.com/bitmark-inc/calcd/fault"
	"github.com/bitmark-inc/calcd/storage"
)

// Status - whether an account has ever recorded anything
type Status int

// status values
const (
	NoHistory Status = iota
	Present
)

// String - text returned to clients
func (s Status) String() string {
	switch s {
	case Present:
		return "Calculations history present"
	default:
		return "No calculations history"
	}
}

// History - the per account logs in one store
type History struct {
	sync.Mutex
	log     *logger.L
	store   *storage.Store
	count   *storage.PoolHandle
	entries *storage.PoolHandle
}

// New - history over the store's history pools
func New(store *storage.Store) *History {
	return &History{
		log:     logger.New("history"),
		store:   store,
		count:   store.Pool.HistoryCount,
		entries: store.Pool.HistoryEntries,
	}
}

// entry key: account ++ index
func entryKey(accountId []byte, index uint64) []byte {
	key := make([]byte, len(accountId)+8)
	copy(key, accountId)
	binary.BigEndian.PutUint64(key[len(accountId):], index)
	return key
}

// Count - number of records for an account
//
// second value is false if the account has never appended
func (h *History) Count(accountId []byte) (uint64, bool, error) {
	n, found, err := h.count.GetN(accountId)
	if fault.IsErrRecord(err) {
		h.log.Errorf("count for: %x  error: %s", accountId, err)
		return 0, false, fault.ErrCorruptHistoryCount
	}
	return n, found, err
}

// Append - add a record after all existing ones
func (h *History) Append(accountId []byte, record calculation.Record) error {
	if 0 == len(accountId) {
		return fault.ErrInvalidAddress
	}

	h.Lock()
	defer h.Unlock()

	n, _, err := h.Count(accountId)
	if nil != err {
		return err
	}

	trx := h.store.Begin()
	trx.Put(h.entries, entryKey(accountId, n), record.Pack())
	trx.PutN(h.count, accountId, n+1)
	err = trx.Commit()
	if nil != err {
		h.log.Errorf("append for: %x  error: %s", accountId, err)
		return err
	}

	h.log.Debugf("append for: %x  index: %d", accountId, n)
	return nil
}

// Page - most recent first
//
// the newest page*pageSize records are skipped, then up to pageSize
// records are returned; a page past the end is empty but Present
func (h *History) Page(accountId []byte, page uint32, pageSize uint32) ([]calculation.Record, Status, error) {
	n, found, err := h.Count(accountId)
	if nil != err {
		return nil, NoHistory, err
	}
	if !found {
		return nil, NoHistory, nil
	}

	skip := uint64(page) * uint64(pageSize)
	if 0 == pageSize || skip >= n {
		return []calculation.Record{}, Present, nil
	}

	take := uint64(pageSize)
	if remaining := n - skip; remaining < take {
		take = remaining
	}

	records := make([]calculation.Record, 0, take)
	start := n - 1 - skip
	for i := uint64(0); i < take; i += 1 {
		index := start - i
		packed, err := h.entries.Get(entryKey(accountId, index))
		if nil != err {
			return nil, NoHistory, err
		}
		if nil == packed {
			h.log.Errorf("missing entry for: %x  index: %d of: %d", accountId, index, n)
			return nil, NoHistory, fault.ErrCorruptHistoryEntry
		}
		record, err := calculation.Packed(packed).Unpack()
		if nil != err {
			h.log.Errorf("entry for: %x  index: %d  error: %s", accountId, index, err)
			return nil, NoHistory, err
		}
		records = append(records, record)
	}
	return records, Present, nil
}
