// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package history

import (
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/calcd/fault"
	"github.com/bitmark-inc/calcd/ledger"
	"github.com/bitmark-inc/calcd/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitHistory = 200
	rateBurstHistory = 100
)

// MethodGet - RPC method name
const MethodGet = "History.Get"

// MaximumPageSize - largest page a client may ask for
const MaximumPageSize = 100

// History - type for RPC calls
type History struct {
	Log     *logger.L
	Limiter *rate.Limiter
	handler ledger.Handler
}

// GetArguments - page 0 holds the newest entries
type GetArguments struct {
	Address  string `json:"address"`
	Key      string `json:"key"`
	Page     uint32 `json:"page"`
	PageSize uint32 `json:"page_size"`
}

// GetReply - entries newest first
type GetReply struct {
	Status  string   `json:"status"`
	History []string `json:"history"`
}

// New - create the history service
func New(log *logger.L, handler ledger.Handler) *History {
	return &History{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitHistory, rateBurstHistory),
		handler: handler,
	}
}

// Get - one page of an address's calculation history
//
// the caller must present the address's viewing key
func (h *History) Get(arguments *GetArguments, reply *GetReply) error {
	if 0 == arguments.PageSize {
		if err := ratelimit.Limit(h.Limiter); nil != err {
			return err
		}
	} else {
		err := ratelimit.LimitN(h.Limiter, int(arguments.PageSize), MaximumPageSize)
		if fault.ErrInvalidCount == err {
			return fault.ErrInvalidPageSize
		}
		if nil != err {
			return err
		}
	}

	requestId := uuid.New().String()
	h.Log.Infof("request: %s  history for: %s  page: %d  size: %d", requestId, arguments.Address, arguments.Page, arguments.PageSize)

	page, err := h.handler.QueryHistory(arguments.Address, arguments.Key, arguments.Page, arguments.PageSize)
	if nil != err {
		h.Log.Debugf("request: %s  error: %s", requestId, err)
		return err
	}

	records := make([]string, len(page.Records))
	for i, r := range page.Records {
		records[i] = r.String()
	}

	reply.Status = page.Status.String()
	reply.History = records
	return nil
}
