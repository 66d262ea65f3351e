// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// BackendRedis - name of the Redis backend
const BackendRedis = "redis"

const redisTimeout = 5 * time.Second

// RedisOptions - connection details for a Redis backend
type RedisOptions struct {
	Address  string `gluamapper:"address" json:"address"`
	Password string `gluamapper:"password" json:"-"`
	DB       int    `gluamapper:"db" json:"db"`
	Prefix   string `gluamapper:"prefix" json:"prefix"`
}

type redisBackend struct {
	client *redis.Client
	prefix string
}

// OpenRedis - connect to a Redis server
//
// all keys are stored under the optional prefix so several
// databases can share one server
func OpenRedis(options RedisOptions) (Backend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     options.Address,
		Password: options.Password,
		DB:       options.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); nil != err {
		client.Close()
		return nil, fmt.Errorf("redis ping: %s: %w", options.Address, err)
	}

	return &redisBackend{
		client: client,
		prefix: options.Prefix,
	}, nil
}

func (r *redisBackend) key(key []byte) string {
	return r.prefix + string(key)
}

func (r *redisBackend) Name() string {
	return BackendRedis
}

func (r *redisBackend) Get(key []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if nil != err {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return value, nil
}

// Write - all operations are sent in one MULTI/EXEC block
func (r *redisBackend) Write(batch *Batch) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		batch.Replay(func(key []byte, value []byte) {
			if nil == value {
				pipe.Del(ctx, r.key(key))
			} else {
				pipe.Set(ctx, r.key(key), value, 0)
			}
		})
		return nil
	})
	if nil != err {
		return fmt.Errorf("redis write: %w", err)
	}
	return nil
}

func (r *redisBackend) Close() error {
	return r.client.Close()
}
