// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the request handlers behind the RPC services
//
// mutating requests arrive with an already authenticated owner;
// history queries name any address and must present that address's
// viewing key
package ledger

import (
	"math/big"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/calcd/account"
	"github.com/bitmark-inc/calcd/calculation"
	"github.com/bitmark-inc/calcd/fault"
	"github.com/bitmark-inc/calcd/history"
	"github.com/bitmark-inc/calcd/viewingkey"
)

// Handler - operations available to the RPC layer
type Handler interface {
	GenerateViewingKey(owner *account.Account, entropy string) (viewingkey.Key, error)
	SetViewingKey(owner *account.Account, key string) error
	Calculate(owner *account.Account, operation calculation.Operation) (*big.Int, error)
	Append(owner *account.Account, record calculation.Record) error
	QueryHistory(address string, key string, page uint32, pageSize uint32) (*HistoryPage, error)
}

// HistoryPage - result of a history query
type HistoryPage struct {
	Status  history.Status
	Records []calculation.Record
}

// Ledger - serialises all requests over the credential and history stores
type Ledger struct {
	sync.Mutex
	log     *logger.L
	keys    *viewingkey.Manager
	history *history.History
}

// New - create the request handler
func New(keys *viewingkey.Manager, h *history.History) *Ledger {
	return &Ledger{
		log:     logger.New("ledger"),
		keys:    keys,
		history: h,
	}
}

func ownerId(owner *account.Account) ([]byte, error) {
	if nil == owner || nil == owner.AccountInterface {
		return nil, fault.ErrInvalidAddress
	}
	return owner.Bytes(), nil
}

// GenerateViewingKey - new key for the owner, replacing any existing one
func (l *Ledger) GenerateViewingKey(owner *account.Account, entropy string) (viewingkey.Key, error) {
	id, err := ownerId(owner)
	if nil != err {
		return "", err
	}

	l.Lock()
	defer l.Unlock()

	return l.keys.Generate(id, entropy)
}

// SetViewingKey - owner chosen key, replacing any existing one
func (l *Ledger) SetViewingKey(owner *account.Account, key string) error {
	id, err := ownerId(owner)
	if nil != err {
		return err
	}

	l.Lock()
	defer l.Unlock()

	return l.keys.Set(id, key)
}

// SetAllowUserSupplied - change whether SetViewingKey is accepted
func (l *Ledger) SetAllowUserSupplied(allow bool) {
	l.Lock()
	defer l.Unlock()

	l.keys.SetAllowUserSupplied(allow)
}

// Calculate - perform an operation and record it in the owner's history
//
// nothing is recorded if the operation fails
func (l *Ledger) Calculate(owner *account.Account, operation calculation.Operation) (*big.Int, error) {
	id, err := ownerId(owner)
	if nil != err {
		return nil, err
	}
	if nil == operation {
		return nil, fault.ErrInvalidOperation
	}

	result, record, err := calculation.Perform(operation)
	if nil != err {
		l.log.Debugf("%s for: %s  error: %s", operation.Kind(), owner, err)
		return nil, err
	}

	l.Lock()
	defer l.Unlock()

	err = l.history.Append(id, record)
	if nil != err {
		return nil, err
	}
	return result, nil
}

// Append - record an entry in the owner's history
func (l *Ledger) Append(owner *account.Account, record calculation.Record) error {
	id, err := ownerId(owner)
	if nil != err {
		return err
	}

	l.Lock()
	defer l.Unlock()

	return l.history.Append(id, record)
}

// QueryHistory - one page of an address's history, newest first
//
// a wrong key and an account without a key give the same error
func (l *Ledger) QueryHistory(address string, key string, page uint32, pageSize uint32) (*HistoryPage, error) {
	acc, err := account.AccountFromBase58(address)
	if nil != err {
		l.log.Debugf("address: %q  error: %s", address, err)
		return nil, fault.ErrInvalidAddress
	}
	id := acc.Bytes()

	l.Lock()
	defer l.Unlock()

	if !l.keys.Verify(id, key) {
		return nil, fault.ErrUnauthorized
	}

	records, status, err := l.history.Page(id, page, pageSize)
	if nil != err {
		return nil, err
	}
	return &HistoryPage{
		Status:  status,
		Records: records,
	}, nil
}
