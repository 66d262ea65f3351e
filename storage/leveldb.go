// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"
)

// BackendLevelDB - name of the LevelDB backend
const BackendLevelDB = "leveldb"

type levelDBBackend struct {
	name string
	db   *leveldb.DB
}

// OpenLevelDB - open or create a LevelDB database directory
func OpenLevelDB(name string, readOnly bool) (Backend, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, fmt.Errorf("open leveldb: %s: %w", name, err)
	}
	return &levelDBBackend{
		name: BackendLevelDB,
		db:   db,
	}, nil
}

// NewMemoryLevelDB - a LevelDB instance held entirely in memory
func NewMemoryLevelDB() (Backend, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, fmt.Errorf("open memory leveldb: %w", err)
	}
	return &levelDBBackend{
		name: BackendLevelDB + "(memory)",
		db:   db,
	}, nil
}

func (l *levelDBBackend) Name() string {
	return l.name
}

func (l *levelDBBackend) Get(key []byte) ([]byte, error) {
	value, err := l.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	if nil != err {
		return nil, err
	}
	return value, nil
}

func (l *levelDBBackend) Write(batch *Batch) error {
	b := new(leveldb.Batch)
	batch.Replay(func(key []byte, value []byte) {
		if nil == value {
			b.Delete(key)
		} else {
			b.Put(key, value)
		}
	})
	return l.db.Write(b, nil)
}

func (l *levelDBBackend) Close() error {
	return l.db.Close()
}
