// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package viewingkey

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/calcd/account"
	"github.com/bitmark-inc/calcd/ledger"
	"github.com/bitmark-inc/calcd/rpc/ratelimit"
	"github.com/bitmark-inc/calcd/rpc/signature"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitViewingKey = 50
	rateBurstViewingKey = 20
)

// method names, also the first field of the signed message
const (
	MethodGenerate = "ViewingKey.Generate"
	MethodSet      = "ViewingKey.Set"
)

// StatusKeySet - reply status for a stored user supplied key
const StatusKeySet = "Viewing key set"

// ViewingKey - type for RPC calls
type ViewingKey struct {
	Log     *logger.L
	Limiter *rate.Limiter
	handler ledger.Handler
	now     func() time.Time
}

// GenerateArguments - entropy is mixed into the new key
type GenerateArguments struct {
	Owner     *account.Account  `json:"owner"`
	Entropy   string            `json:"entropy"`
	Timestamp int64             `json:"timestamp"`
	Signature account.Signature `json:"signature"`
}

// GenerateReply - the new key, shown only this once
type GenerateReply struct {
	Key string `json:"key"`
}

// SetArguments - owner chosen key
type SetArguments struct {
	Owner     *account.Account  `json:"owner"`
	Key       string            `json:"key"`
	Timestamp int64             `json:"timestamp"`
	Signature account.Signature `json:"signature"`
}

// SetReply - status only
type SetReply struct {
	Status string `json:"status"`
}

// New - create the viewing key service
func New(log *logger.L, handler ledger.Handler) *ViewingKey {
	return &ViewingKey{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitViewingKey, rateBurstViewingKey),
		handler: handler,
		now:     time.Now,
	}
}

// Generate - derive a new key for the owner, replacing any existing one
func (vk *ViewingKey) Generate(arguments *GenerateArguments, reply *GenerateReply) error {
	if err := ratelimit.Limit(vk.Limiter); nil != err {
		return err
	}

	requestId := uuid.New().String()

	err := signature.Verify(vk.now(), MethodGenerate, arguments.Owner, arguments.Timestamp, arguments.Signature, arguments.Entropy)
	if nil != err {
		vk.Log.Warnf("%s: request: %s  error: %s", MethodGenerate, requestId, err)
		return err
	}

	vk.Log.Infof("request: %s  generate for: %s", requestId, arguments.Owner)

	key, err := vk.handler.GenerateViewingKey(arguments.Owner, arguments.Entropy)
	if nil != err {
		vk.Log.Errorf("request: %s  error: %s", requestId, err)
		return err
	}

	reply.Key = key.String()
	return nil
}

// Set - store an owner chosen key, replacing any existing one
func (vk *ViewingKey) Set(arguments *SetArguments, reply *SetReply) error {
	if err := ratelimit.Limit(vk.Limiter); nil != err {
		return err
	}

	requestId := uuid.New().String()

	err := signature.Verify(vk.now(), MethodSet, arguments.Owner, arguments.Timestamp, arguments.Signature, arguments.Key)
	if nil != err {
		vk.Log.Warnf("%s: request: %s  error: %s", MethodSet, requestId, err)
		return err
	}

	vk.Log.Infof("request: %s  set for: %s", requestId, arguments.Owner)

	err = vk.handler.SetViewingKey(arguments.Owner, arguments.Key)
	if nil != err {
		vk.Log.Debugf("request: %s  error: %s", requestId, err)
		return err
	}

	reply.Status = StatusKeySet
	return nil
}
