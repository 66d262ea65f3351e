// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/calcd/account"
	"github.com/bitmark-inc/calcd/rpc/signature"
	"github.com/bitmark-inc/calcd/rpc/viewingkey"
)

// GenerateKey - ask calcd to derive a new viewing key for the owner
func (client *Client) GenerateKey(owner *account.PrivateKey, entropy string) (*viewingkey.GenerateReply, error) {

	timestamp := client.now().Unix()
	arguments := viewingkey.GenerateArguments{
		Owner:     owner.Account(),
		Entropy:   entropy,
		Timestamp: timestamp,
		Signature: signature.Sign(owner, viewingkey.MethodGenerate, timestamp, entropy),
	}

	// entropy is not shown
	client.printJson("Generate Request", struct {
		Owner     *account.Account `json:"owner"`
		Timestamp int64            `json:"timestamp"`
	}{
		Owner:     arguments.Owner,
		Timestamp: arguments.Timestamp,
	})

	var reply viewingkey.GenerateReply
	err := client.client.Call(viewingkey.MethodGenerate, arguments, &reply)
	if nil != err {
		return nil, err
	}
	return &reply, nil
}

// SetKey - replace the owner's viewing key with one of their choosing
func (client *Client) SetKey(owner *account.PrivateKey, key string) (*viewingkey.SetReply, error) {

	timestamp := client.now().Unix()
	arguments := viewingkey.SetArguments{
		Owner:     owner.Account(),
		Key:       key,
		Timestamp: timestamp,
		Signature: signature.Sign(owner, viewingkey.MethodSet, timestamp, key),
	}

	var reply viewingkey.SetReply
	err := client.client.Call(viewingkey.MethodSet, arguments, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Set Reply", reply)

	return &reply, nil
}
