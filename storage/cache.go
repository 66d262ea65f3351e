// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

const (
	cleanupInterval = 1 * time.Minute
)

type dbCache struct {
	cache      *cache.Cache
	expiration time.Duration
}

type cacheData struct {
	op    batchOperation
	value []byte
}

func newCache(expiration time.Duration) *dbCache {
	if expiration <= 0 {
		return &dbCache{}
	}
	return &dbCache{
		cache:      cache.New(expiration, cleanupInterval),
		expiration: expiration,
	}
}

// Get - the final bool is false on a cache miss
//
// a hit on a deleted key reports found == false so the caller can
// skip the backend
func (c *dbCache) Get(key string) (value []byte, found bool, ok bool) {
	if nil == c.cache {
		return nil, false, false
	}
	obj, hit := c.cache.Get(key)
	if !hit {
		return nil, false, false
	}

	data := obj.(cacheData)
	if dbDelete == data.op {
		return nil, false, true
	}
	return data.value, true, true
}

func (c *dbCache) Set(op batchOperation, key string, value []byte) {
	if nil == c.cache {
		return
	}
	cached := cacheData{
		op:    op,
		value: value,
	}
	c.cache.Set(key, cached, c.expiration)
}

func (c *dbCache) Clear() {
	if nil == c.cache {
		return
	}
	c.cache.Flush()
}
