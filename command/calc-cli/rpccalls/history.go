// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/calcd/fault"
	"github.com/bitmark-inc/calcd/rpc/history"
)

// HistoryData - which page of whose history
type HistoryData struct {
	Address  string
	Key      string
	Page     uint32
	PageSize uint32
}

// GetHistory - read one page of an account's history, newest first
func (client *Client) GetHistory(historyConfig *HistoryData) (*history.GetReply, error) {

	if historyConfig.PageSize > history.MaximumPageSize {
		return nil, fault.ErrInvalidPageSize
	}

	arguments := history.GetArguments{
		Address:  historyConfig.Address,
		Key:      historyConfig.Key,
		Page:     historyConfig.Page,
		PageSize: historyConfig.PageSize,
	}

	var reply history.GetReply
	err := client.client.Call(history.MethodGet, arguments, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("History Reply", reply)

	return &reply, nil
}
