// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package viewingkey - per account read credentials
//
// A viewing key lets anyone holding it read an account's history.
// There is at most one key per account; storing a new one replaces
// the old one.  Verification performs the same hashing and
// comparison whether or not the account has a key, so response time
// does not reveal which accounts exist.
package viewingkey

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/binary"
	"io"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/calcd/fault"
	"github.com/bitmark-inc/calcd/storage"
	"github.com/bitmark-inc/calcd/util"
)

// KeyPrefix - start of every generated key
const KeyPrefix = "api_key_"

const (
	digestSize    = 32
	credentialTag = 0x01
)

// KeyTextLength - length of a generated key's text form
var KeyTextLength = len(KeyPrefix) + base64.StdEncoding.EncodedLen(digestSize)

// Key - text form of a viewing key
type Key string

// String - the key text
func (k Key) String() string {
	return string(k)
}

// Manager - creates, stores and checks viewing keys
//
// calls must be serialised by the caller
type Manager struct {
	log               *logger.L
	pool              *storage.PoolHandle
	store             *storage.Store
	seed              [digestSize]byte
	allowUserSupplied bool

	random io.Reader
	now    func() time.Time
}

// HashSeed - derive the process seed from the configured secret
func HashSeed(secret []byte) [digestSize]byte {
	return sha3.Sum256([]byte(base64.StdEncoding.EncodeToString(secret)))
}

// New - create a manager over the store's viewing key pool
func New(store *storage.Store, seed [digestSize]byte, allowUserSupplied bool) *Manager {
	return &Manager{
		log:               logger.New("viewingkey"),
		pool:              store.Pool.ViewingKeys,
		store:             store,
		seed:              seed,
		allowUserSupplied: allowUserSupplied,
		random:            rand.Reader,
		now:               time.Now,
	}
}

// Generate - derive a fresh key for the account and store it
//
// the previous key, if any, stops working
func (m *Manager) Generate(accountId []byte, entropy string) (Key, error) {
	if 0 == len(accountId) {
		return "", fault.ErrInvalidAddress
	}

	nonce := make([]byte, digestSize)
	if _, err := io.ReadFull(m.random, nonce); nil != err {
		m.log.Errorf("random nonce error: %s", err)
		return "", err
	}

	timestamp := make([]byte, 8)
	binary.BigEndian.PutUint64(timestamp, uint64(m.now().UnixNano()))

	h := sha3.New256()
	h.Write(m.seed[:])
	h.Write(util.ToVarintPrefixed([]byte(entropy)))
	h.Write(util.ToVarintPrefixed(accountId))
	h.Write(timestamp)
	h.Write(nonce)

	key := Key(KeyPrefix + base64.StdEncoding.EncodeToString(h.Sum(nil)))

	err := m.put(accountId, string(key))
	if nil != err {
		return "", err
	}
	m.log.Infof("generated viewing key for: %x", accountId)
	return key, nil
}

// SetAllowUserSupplied - enable or disable Set
func (m *Manager) SetAllowUserSupplied(allow bool) {
	if allow != m.allowUserSupplied {
		m.log.Infof("user supplied viewing keys: %t", allow)
	}
	m.allowUserSupplied = allow
}

// Set - store a caller chosen key verbatim
func (m *Manager) Set(accountId []byte, raw string) error {
	if !m.allowUserSupplied {
		return fault.ErrUserSuppliedKeysDisabled
	}
	if 0 == len(accountId) {
		return fault.ErrInvalidAddress
	}
	if 0 == len(raw) {
		return fault.ErrEmptyViewingKey
	}

	err := m.put(accountId, raw)
	if nil != err {
		return err
	}
	m.log.Infof("set viewing key for: %x", accountId)
	return nil
}

// Verify - check a claimed key against the stored one
//
// never fails: an absent, unreadable or different key gives false
func (m *Manager) Verify(accountId []byte, claimed string) bool {

	expected := make([]byte, KeyTextLength)
	present := false

	stored, err := m.pool.Get(accountId)
	if nil != err {
		m.log.Errorf("read credential for: %x  error: %s", accountId, err)
	} else if nil != stored {
		text, err := unpack(stored)
		if nil != err {
			m.log.Warnf("credential for: %x  error: %s", accountId, err)
		} else {
			expected = text
			present = true
		}
	}

	claimedDigest := sha3.Sum256([]byte(claimed))
	expectedDigest := sha3.Sum256(expected)
	match := 1 == subtle.ConstantTimeCompare(claimedDigest[:], expectedDigest[:])

	return present && match
}

func (m *Manager) put(accountId []byte, text string) error {
	trx := m.store.Begin()
	trx.Put(m.pool, accountId, pack(text))
	err := trx.Commit()
	if nil != err {
		m.log.Errorf("store credential for: %x  error: %s", accountId, err)
	}
	return err
}

// stored form: tag ++ varint(length) ++ key text
func pack(text string) []byte {
	buffer := []byte{credentialTag}
	return append(buffer, util.ToVarintPrefixed([]byte(text))...)
}

func unpack(buffer []byte) ([]byte, error) {
	if 0 == len(buffer) || credentialTag != buffer[0] {
		return nil, fault.ErrCorruptCredential
	}
	text, n := util.FromVarintPrefixed(buffer[1:])
	if 0 == n || 1+n != len(buffer) || 0 == len(text) {
		return nil, fault.ErrCorruptCredential
	}
	return text, nil
}
