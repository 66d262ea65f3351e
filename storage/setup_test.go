// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/calcd/fault"
	"github.com/bitmark-inc/calcd/storage"
)

const (
	testingDirName = "testing"
)

func TestMain(m *testing.M) {
	_ = os.Mkdir(testingDirName, 0o700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	rc := m.Run()

	logger.Finalise()
	os.RemoveAll(testingDirName)
	os.Exit(rc)
}

// a named backend constructor
type backendMaker struct {
	name string
	open func(t *testing.T) storage.Backend
}

func backends() []backendMaker {
	makers := []backendMaker{
		{
			name: "memory",
			open: func(t *testing.T) storage.Backend {
				b, err := storage.NewMemoryLevelDB()
				if nil != err {
					t.Fatalf("memory leveldb error: %s", err)
				}
				return b
			},
		},
		{
			name: "leveldb",
			open: func(t *testing.T) storage.Backend {
				b, err := storage.OpenLevelDB(filepath.Join(t.TempDir(), "test.leveldb"), false)
				if nil != err {
					t.Fatalf("leveldb error: %s", err)
				}
				return b
			},
		},
		{
			name: "sqlite",
			open: func(t *testing.T) storage.Backend {
				b, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "test.sqlite3"))
				if nil != err {
					t.Fatalf("sqlite error: %s", err)
				}
				return b
			},
		},
	}

	// only when a server is available, e.g. CALCD_TEST_REDIS=127.0.0.1:6379
	if address := os.Getenv("CALCD_TEST_REDIS"); "" != address {
		makers = append(makers, backendMaker{
			name: "redis",
			open: func(t *testing.T) storage.Backend {
				b, err := storage.OpenRedis(storage.RedisOptions{
					Address: address,
					Prefix:  "calcd-test:" + t.Name() + ":",
				})
				if nil != err {
					t.Fatalf("redis error: %s", err)
				}
				return b
			},
		})
	}
	return makers
}

func TestBackendGetWrite(t *testing.T) {
	for _, maker := range backends() {
		t.Run(maker.name, func(t *testing.T) {
			b := maker.open(t)
			defer b.Close()

			value, err := b.Get([]byte("absent"))
			assert.Nil(t, err, "absent key error")
			assert.Nil(t, value, "absent key value")

			batch := new(storage.Batch)
			batch.Put([]byte("k1"), []byte("v1"))
			batch.Put([]byte("k2"), []byte{})
			batch.Put([]byte("k3"), []byte("v3"))
			batch.Delete([]byte("k3"))
			batch.Put([]byte("k1"), []byte("v1-new"))
			assert.Nil(t, b.Write(batch), "write")

			value, err = b.Get([]byte("k1"))
			assert.Nil(t, err, "k1 error")
			assert.Equal(t, []byte("v1-new"), value, "last write wins")

			value, err = b.Get([]byte("k2"))
			assert.Nil(t, err, "k2 error")
			assert.NotNil(t, value, "empty value must be present")
			assert.Equal(t, 0, len(value), "empty value length")

			value, err = b.Get([]byte("k3"))
			assert.Nil(t, err, "k3 error")
			assert.Nil(t, value, "deleted key")
		})
	}
}

func TestStorePools(t *testing.T) {
	for _, maker := range backends() {
		t.Run(maker.name, func(t *testing.T) {
			store, err := storage.New(maker.open(t), time.Minute)
			if nil != err {
				t.Fatalf("new store error: %s", err)
			}
			defer store.Close()

			key := []byte("account")

			trx := store.Begin()
			trx.Put(store.Pool.ViewingKeys, key, []byte("credential"))
			trx.PutN(store.Pool.HistoryCount, key, 3)
			assert.Nil(t, trx.Commit(), "commit")

			// same key in different pools must not collide
			value, err := store.Pool.ViewingKeys.Get(key)
			assert.Nil(t, err, "get error")
			assert.Equal(t, []byte("credential"), value, "credential")

			n, found, err := store.Pool.HistoryCount.GetN(key)
			assert.Nil(t, err, "GetN error")
			assert.True(t, found, "count not found")
			assert.Equal(t, uint64(3), n, "count")

			found, err = store.Pool.HistoryEntries.Has(key)
			assert.Nil(t, err, "Has error")
			assert.False(t, found, "entry pool should be empty")

			_, found, err = store.Pool.TestData.GetN(key)
			assert.Nil(t, err, "absent GetN error")
			assert.False(t, found, "absent GetN")

			trx = store.Begin()
			trx.Put(store.Pool.TestData, key, []byte{1, 2, 3})
			assert.Nil(t, trx.Commit(), "commit test data")

			_, _, err = store.Pool.TestData.GetN(key)
			assert.Equal(t, fault.ErrRecordTruncated, err, "short count record")

			trx = store.Begin()
			trx.Delete(store.Pool.ViewingKeys, key)
			assert.Nil(t, trx.Commit(), "commit delete")

			value, err = store.Pool.ViewingKeys.Get(key)
			assert.Nil(t, err, "get deleted error")
			assert.Nil(t, value, "deleted value")
		})
	}
}

func TestStoreReopen(t *testing.T) {
	name := filepath.Join(t.TempDir(), "reopen.leveldb")

	b, err := storage.OpenLevelDB(name, false)
	assert.Nil(t, err, "first open")
	store, err := storage.New(b, 0)
	assert.Nil(t, err, "first store")

	trx := store.Begin()
	trx.Put(store.Pool.ViewingKeys, []byte("a"), []byte("persisted"))
	assert.Nil(t, trx.Commit(), "commit")
	assert.Nil(t, store.Close(), "close")

	b, err = storage.OpenLevelDB(name, true)
	assert.Nil(t, err, "read only open")
	store, err = storage.New(b, 0)
	assert.Nil(t, err, "second store")
	defer store.Close()

	value, err := store.Pool.ViewingKeys.Get([]byte("a"))
	assert.Nil(t, err, "get error")
	assert.Equal(t, []byte("persisted"), value, "value after reopen")
}

func TestStoreRejectsNewerVersion(t *testing.T) {
	b, err := storage.NewMemoryLevelDB()
	assert.Nil(t, err, "open")

	batch := new(storage.Batch)
	batch.Put([]byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}, []byte{0x7f, 0xff, 0xff, 0xff})
	assert.Nil(t, b.Write(batch), "write version")

	_, err = storage.New(b, 0)
	assert.Equal(t, fault.ErrIncompatibleDatabase, err, "newer database accepted")
}

func TestClosedStore(t *testing.T) {
	b, err := storage.NewMemoryLevelDB()
	assert.Nil(t, err, "open")
	store, err := storage.New(b, time.Minute)
	assert.Nil(t, err, "store")
	assert.Nil(t, store.Close(), "close")

	_, err = store.Pool.ViewingKeys.Get([]byte("x"))
	assert.Equal(t, fault.ErrDatabaseIsNotSet, err, "get after close")

	trx := store.Begin()
	trx.Put(store.Pool.ViewingKeys, []byte("x"), []byte("y"))
	assert.Equal(t, fault.ErrDatabaseIsNotSet, trx.Commit(), "commit after close")
}
