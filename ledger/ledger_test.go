// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/calcd/account"
	"github.com/bitmark-inc/calcd/calculation"
	"github.com/bitmark-inc/calcd/fault"
	"github.com/bitmark-inc/calcd/fixtures"
	"github.com/bitmark-inc/calcd/history"
	"github.com/bitmark-inc/calcd/ledger"
	"github.com/bitmark-inc/calcd/viewingkey"
)

var (
	owner1 = fixtures.Owner1.Account()
	owner2 = fixtures.Owner2.Account()
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func setupLedger(t *testing.T) *ledger.Ledger {
	store := fixtures.NewTestStore(t)
	keys := viewingkey.New(store, viewingkey.HashSeed([]byte("ledger test")), true)
	return ledger.New(keys, history.New(store))
}

func calculate(t *testing.T, l *ledger.Ledger, owner *account.Account, kind calculation.Kind, n1 string, n2 string) string {
	op, err := calculation.New(kind, n1, n2)
	if nil != err {
		t.Fatalf("operation error: %s", err)
	}
	result, err := l.Calculate(owner, op)
	if nil != err {
		t.Fatalf("calculate error: %s", err)
	}
	return result.String()
}

func TestAddThenQuery(t *testing.T) {
	l := setupLedger(t)

	assert.Equal(t, "8", calculate(t, l, owner1, calculation.Add, "3", "5"), "result")

	key, err := l.GenerateViewingKey(owner1, "entropy")
	assert.Nil(t, err, "generate")

	page, err := l.QueryHistory(owner1.String(), key.String(), 0, 10)
	assert.Nil(t, err, "query")
	assert.Equal(t, history.Present, page.Status, "status")
	assert.Equal(t, []calculation.Record{"3 + 5 = 8"}, page.Records, "records")

	// same length, wrong content
	wrong := []byte(key)
	wrong[len(wrong)-3] ^= 0x01
	_, err = l.QueryHistory(owner1.String(), string(wrong), 0, 10)
	assert.Equal(t, fault.ErrUnauthorized, err, "wrong key")
}

func TestUnauthorizedIsUniform(t *testing.T) {
	l := setupLedger(t)

	calculate(t, l, owner1, calculation.Multiply, "6", "7")
	key, err := l.GenerateViewingKey(owner1, "entropy")
	assert.Nil(t, err, "generate")

	// owner2 has no key at all, owner1 has one but it is not presented
	_, errAbsent := l.QueryHistory(owner2.String(), key.String(), 0, 10)
	_, errWrong := l.QueryHistory(owner1.String(), "api_key_wrong", 0, 10)
	assert.Equal(t, fault.ErrUnauthorized, errAbsent, "absent key")
	assert.Equal(t, errAbsent, errWrong, "errors must be indistinguishable")
}

func TestKeyWithoutHistory(t *testing.T) {
	l := setupLedger(t)

	assert.Nil(t, l.SetViewingKey(owner2, "owner two secret"), "set")

	page, err := l.QueryHistory(owner2.String(), "owner two secret", 0, 10)
	assert.Nil(t, err, "query")
	assert.Equal(t, history.NoHistory, page.Status, "status")
	assert.Equal(t, 0, len(page.Records), "records")
}

func TestQueryInvalidAddress(t *testing.T) {
	l := setupLedger(t)

	addresses := []string{
		"",
		"not base58 !",
		"anF8SWxSRY5vnN3Bbyz9buRYW1hfCAAZxfbv8Fw9SFXaktvLDj",
	}
	for i, address := range addresses {
		_, err := l.QueryHistory(address, "x", 0, 10)
		assert.Equal(t, fault.ErrInvalidAddress, err, "%d: %q", i, address)
	}
}

func TestFailedCalculationNotRecorded(t *testing.T) {
	l := setupLedger(t)

	op, err := calculation.New(calculation.Divide, "1", "0")
	assert.Nil(t, err, "operation")
	_, err = l.Calculate(owner1, op)
	assert.Equal(t, fault.ErrDivisionByZero, err, "divide by zero")

	_, err = l.Calculate(owner1, nil)
	assert.Equal(t, fault.ErrInvalidOperation, err, "nil operation")

	assert.Nil(t, l.SetViewingKey(owner1, "k"), "set")
	page, err := l.QueryHistory(owner1.String(), "k", 0, 10)
	assert.Nil(t, err, "query")
	assert.Equal(t, history.NoHistory, page.Status, "nothing recorded")
}

func TestHistoryOrderAcrossOperations(t *testing.T) {
	l := setupLedger(t)

	calculate(t, l, owner1, calculation.Add, "1", "2")
	calculate(t, l, owner1, calculation.Subtract, "9", "4")
	calculate(t, l, owner1, calculation.SquareRoot, "17", "")
	assert.Nil(t, l.Append(owner1, "manual entry"), "append")

	assert.Nil(t, l.SetViewingKey(owner1, "k"), "set")

	page, err := l.QueryHistory(owner1.String(), "k", 0, 3)
	assert.Nil(t, err, "first page")
	assert.Equal(t, []calculation.Record{"manual entry", "√17 = 4", "9 - 4 = 5"}, page.Records, "first page")

	page, err = l.QueryHistory(owner1.String(), "k", 1, 3)
	assert.Nil(t, err, "second page")
	assert.Equal(t, []calculation.Record{"1 + 2 = 3"}, page.Records, "second page")
}

func TestNilOwner(t *testing.T) {
	l := setupLedger(t)

	_, err := l.GenerateViewingKey(nil, "x")
	assert.Equal(t, fault.ErrInvalidAddress, err, "generate")
	assert.Equal(t, fault.ErrInvalidAddress, l.SetViewingKey(&account.Account{}, "x"), "set")
	assert.Equal(t, fault.ErrInvalidAddress, l.Append(nil, "x"), "append")
}

func TestToggleUserSuppliedKeys(t *testing.T) {
	l := setupLedger(t)

	assert.Nil(t, l.SetViewingKey(owner1, "chosen"), "set allowed")

	l.SetAllowUserSupplied(false)
	assert.Equal(t, fault.ErrUserSuppliedKeysDisabled, l.SetViewingKey(owner1, "other"), "set while disabled")

	// the existing key still works
	page, err := l.QueryHistory(owner1.String(), "chosen", 0, 10)
	assert.Nil(t, err, "query")
	assert.Equal(t, history.NoHistory, page.Status, "status")

	l.SetAllowUserSupplied(true)
	assert.Nil(t, l.SetViewingKey(owner1, "other"), "set re-enabled")
}
