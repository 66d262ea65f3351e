// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package viewingkey_test

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/calcd/fault"
	"github.com/bitmark-inc/calcd/fixtures"
	"github.com/bitmark-inc/calcd/rpc/mocks"
	"github.com/bitmark-inc/calcd/rpc/signature"
	"github.com/bitmark-inc/calcd/rpc/viewingkey"
	vk "github.com/bitmark-inc/calcd/viewingkey"
	"github.com/bitmark-inc/logger"
)

func TestViewingKeyGenerate(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	h := mocks.NewMockHandler(ctl)
	v := viewingkey.New(logger.New(fixtures.LogCategory), h)

	ts := time.Now().Unix()
	arg := viewingkey.GenerateArguments{
		Owner:     fixtures.Owner1.Account(),
		Entropy:   "some entropy",
		Timestamp: ts,
		Signature: signature.Sign(fixtures.Owner1, viewingkey.MethodGenerate, ts, "some entropy"),
	}

	h.EXPECT().GenerateViewingKey(arg.Owner, "some entropy").Return(vk.Key("api_key_abc"), nil).Times(1)

	var reply viewingkey.GenerateReply
	err := v.Generate(&arg, &reply)
	assert.Nil(t, err, "wrong Generate")
	assert.Equal(t, "api_key_abc", reply.Key, "wrong key")
}

func TestViewingKeyGenerateBadSignature(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	h := mocks.NewMockHandler(ctl)
	v := viewingkey.New(logger.New(fixtures.LogCategory), h)

	ts := time.Now().Unix()
	arg := viewingkey.GenerateArguments{
		Owner:     fixtures.Owner2.Account(),
		Entropy:   "some entropy",
		Timestamp: ts,
		Signature: signature.Sign(fixtures.Owner1, viewingkey.MethodGenerate, ts, "some entropy"),
	}

	var reply viewingkey.GenerateReply
	err := v.Generate(&arg, &reply)
	assert.Equal(t, fault.ErrInvalidSignature, err, "wrong error")
	assert.Equal(t, "", reply.Key, "key should be empty")
}

func TestViewingKeySet(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	h := mocks.NewMockHandler(ctl)
	v := viewingkey.New(logger.New(fixtures.LogCategory), h)

	ts := time.Now().Unix()
	arg := viewingkey.SetArguments{
		Owner:     fixtures.Owner1.Account(),
		Key:       "my own key",
		Timestamp: ts,
		Signature: signature.Sign(fixtures.Owner1, viewingkey.MethodSet, ts, "my own key"),
	}

	h.EXPECT().SetViewingKey(arg.Owner, "my own key").Return(nil).Times(1)

	var reply viewingkey.SetReply
	err := v.Set(&arg, &reply)
	assert.Nil(t, err, "wrong Set")
	assert.Equal(t, viewingkey.StatusKeySet, reply.Status, "wrong status")
}

func TestViewingKeySetRejected(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	h := mocks.NewMockHandler(ctl)
	v := viewingkey.New(logger.New(fixtures.LogCategory), h)

	ts := time.Now().Unix()
	arg := viewingkey.SetArguments{
		Owner:     fixtures.Owner1.Account(),
		Key:       "my own key",
		Timestamp: ts,
		Signature: signature.Sign(fixtures.Owner1, viewingkey.MethodSet, ts, "my own key"),
	}

	h.EXPECT().SetViewingKey(arg.Owner, "my own key").Return(fault.ErrUserSuppliedKeysDisabled).Times(1)

	var reply viewingkey.SetReply
	err := v.Set(&arg, &reply)
	assert.Equal(t, fault.ErrUserSuppliedKeysDisabled, err, "wrong error")
	assert.Equal(t, "", reply.Status, "status should be empty")
}

func TestViewingKeySetExpired(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	h := mocks.NewMockHandler(ctl)
	v := viewingkey.New(logger.New(fixtures.LogCategory), h)

	ts := time.Now().Add(signature.MaximumClockSkew + time.Minute).Unix()
	arg := viewingkey.SetArguments{
		Owner:     fixtures.Owner1.Account(),
		Key:       "my own key",
		Timestamp: ts,
		Signature: signature.Sign(fixtures.Owner1, viewingkey.MethodSet, ts, "my own key"),
	}

	var reply viewingkey.SetReply
	err := v.Set(&arg, &reply)
	assert.Equal(t, fault.ErrRequestExpired, err, "wrong error")
}
