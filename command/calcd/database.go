// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/calcd/fault"
	"github.com/bitmark-inc/calcd/storage"
)

// open the configured backend and set up the pools over it
func openDatabase(database DatabaseType, readOnly bool) (*storage.Store, error) {

	var backend storage.Backend
	var err error

	switch database.Backend {
	case storage.BackendLevelDB:
		backend, err = storage.OpenLevelDB(database.Name, readOnly)
	case storage.BackendSQLite:
		backend, err = storage.OpenSQLite(database.Name)
	case storage.BackendRedis:
		backend, err = storage.OpenRedis(database.Redis)
	case backendMemory:
		backend, err = storage.NewMemoryLevelDB()
	default:
		return nil, fault.ErrInvalidStorageBackend
	}
	if nil != err {
		return nil, err
	}

	store, err := storage.New(backend, database.cacheExpiry())
	if nil != err {
		backend.Close()
		return nil, err
	}
	return store, nil
}
