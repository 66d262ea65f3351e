// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/calcd/fault"
)

// Pools - the set of exported pools
//
// note all must be exported (i.e. initial capital) or initialisation will fail
//
// a pool tagged cache:"none" always reads the backend, so a present
// and an absent key cost the same
type Pools struct {
	ViewingKeys    *PoolHandle `prefix:"V" cache:"none"`
	HistoryCount   *PoolHandle `prefix:"N"`
	HistoryEntries *PoolHandle `prefix:"H"`
	TestData       *PoolHandle `prefix:"Z"`
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
	versionPrefix    = 0x00
)

// Store - the opened pools over a single backend
type Store struct {
	sync.RWMutex
	Pool    Pools
	log     *logger.L
	backend  Backend
	cache    *dbCache
	uncached map[byte]bool
}

// New - set up the pools over an already opened backend
//
// cacheExpiry of zero disables the read cache
func New(backend Backend, cacheExpiry time.Duration) (*Store, error) {
	if nil == backend {
		return nil, fault.ErrDatabaseIsNotSet
	}

	log := logger.New("storage")

	store := &Store{
		log:      log,
		backend:  backend,
		cache:    newCache(cacheExpiry),
		uncached: make(map[byte]bool),
	}

	version, err := store.getVersion()
	if nil != err {
		return nil, err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		log.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return nil, fault.ErrIncompatibleDatabase
	}
	if 0 == version {
		err = store.putVersion(currentDBVersion)
		if nil != err {
			return nil, err
		}
		log.Infof("initialised empty %s database to version: %d", backend.Name(), currentDBVersion)
	} else if version < currentDBVersion {
		log.Criticalf("database version: %d < current version: %d", version, currentDBVersion)
		return nil, fault.ErrIncompatibleDatabase
	}

	err = store.setupPools()
	if nil != err {
		return nil, err
	}

	log.Infof("storage: %s  version: %d", backend.Name(), currentDBVersion)
	return store, nil
}

func (store *Store) setupPools() error {

	// this will be a struct type
	poolType := reflect.TypeOf(store.Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&store.Pool).Elem()

	seen := make(map[byte]string)

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo.Name, prefixTag)
		}

		prefix := prefixTag[0]
		if versionPrefix == prefix {
			return fmt.Errorf("pool: %v uses the reserved prefix", fieldInfo.Name)
		}
		if other, ok := seen[prefix]; ok {
			store.log.Criticalf("pool: %s and pool: %s share prefix: %q", other, fieldInfo.Name, prefix)
			return fault.ErrDuplicatePoolPrefix
		}
		seen[prefix] = fieldInfo.Name

		uncached := false
		switch tag := fieldInfo.Tag.Get("cache"); tag {
		case "":
		case "none":
			uncached = true
			store.uncached[prefix] = true
		default:
			return fmt.Errorf("pool: %v has invalid cache tag: %q", fieldInfo.Name, tag)
		}

		p := &PoolHandle{
			prefix:   prefix,
			store:    store,
			uncached: uncached,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}
	return nil
}

// Backend - name of the underlying backend
func (store *Store) Backend() string {
	return store.backend.Name()
}

// Close - close the backend, the store must not be used afterwards
func (store *Store) Close() error {
	store.Lock()
	defer store.Unlock()

	store.cache.Clear()
	if nil == store.backend {
		return nil
	}
	err := store.backend.Close()
	store.backend = nil
	return err
}

// Begin - start a write transaction
func (store *Store) Begin() *Transaction {
	return &Transaction{
		store: store,
		batch: new(Batch),
	}
}

// read through the cache unless useCache is false
func (store *Store) get(key []byte, useCache bool) ([]byte, error) {
	store.RLock()
	defer store.RUnlock()

	if nil == store.backend {
		return nil, fault.ErrDatabaseIsNotSet
	}

	if !useCache {
		value, err := store.backend.Get(key)
		if nil != err {
			store.log.Errorf("get key: %x  error: %s", key, err)
		}
		return value, err
	}

	cacheKey := string(key)
	if value, found, ok := store.cache.Get(cacheKey); ok {
		if !found {
			return nil, nil
		}
		return value, nil
	}

	value, err := store.backend.Get(key)
	if nil != err {
		store.log.Errorf("get key: %x  error: %s", key, err)
		return nil, err
	}
	if nil != value {
		store.cache.Set(dbPut, cacheKey, value)
	}
	return value, nil
}

// apply a batch and keep the cache consistent
func (store *Store) write(batch *Batch) error {
	store.Lock()
	defer store.Unlock()

	if nil == store.backend {
		return fault.ErrDatabaseIsNotSet
	}

	err := store.backend.Write(batch)
	if nil != err {
		store.log.Errorf("write: %d operations  error: %s", batch.Len(), err)

		// the backend state is unknown so nothing cached can be trusted
		store.cache.Clear()
		return err
	}

	batch.Replay(func(key []byte, value []byte) {
		if 0 == len(key) || store.uncached[key[0]] {
			return
		}
		if nil == value {
			store.cache.Set(dbDelete, string(key), nil)
		} else {
			store.cache.Set(dbPut, string(key), value)
		}
	})
	return nil
}

func (store *Store) getVersion() (int, error) {
	versionValue, err := store.backend.Get(versionKey)
	if nil != err {
		return 0, err
	}
	if nil == versionValue {
		return 0, nil
	}
	if 4 != len(versionValue) {
		store.log.Criticalf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
		return 0, fault.ErrIncompatibleDatabase
	}
	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func (store *Store) putVersion(version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	batch := new(Batch)
	batch.Put(versionKey, currentVersion)
	return store.backend.Write(batch)
}
