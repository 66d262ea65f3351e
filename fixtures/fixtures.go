// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared test setup
package fixtures

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/calcd/account"
	"github.com/bitmark-inc/calcd/storage"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// test accounts, fresh for each run
var (
	Owner1 = newPrivateKey()
	Owner2 = newPrivateKey()
)

func newPrivateKey() *account.PrivateKey {
	key, err := account.NewPrivateKey(true)
	if nil != err {
		panic(err)
	}
	return key
}

// SetupTestLogger - log to a throwaway directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0o700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

// NewTestStore - empty in-memory store, closed at the end of the test
func NewTestStore(t *testing.T) *storage.Store {
	backend, err := storage.NewMemoryLevelDB()
	if nil != err {
		t.Fatalf("memory leveldb error: %s", err)
	}
	store, err := storage.New(backend, 0)
	if nil != err {
		t.Fatalf("store error: %s", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// Certificate - a throwaway self-signed PEM certificate and key for localhost
func Certificate(t *testing.T) (string, string) {
	validUntil := time.Now().Add(24 * time.Hour)
	cert, key, err := certgen.NewTLSCertPair("calcd test", validUntil, false, []string{"127.0.0.1"})
	if nil != err {
		t.Fatalf("certificate error: %s", err)
	}
	return string(cert), string(key)
}
