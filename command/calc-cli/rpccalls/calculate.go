// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/calcd/account"
	"github.com/bitmark-inc/calcd/fault"
	"github.com/bitmark-inc/calcd/rpc/calculator"
	"github.com/bitmark-inc/calcd/rpc/signature"
)

// Calculate - run one of the two operand calculator methods
func (client *Client) Calculate(owner *account.PrivateKey, method string, n1 string, n2 string) (*calculator.Reply, error) {

	switch method {
	case calculator.MethodAdd, calculator.MethodSubtract, calculator.MethodMultiply, calculator.MethodDivide:
	default:
		return nil, fault.ErrInvalidOperation
	}

	timestamp := client.now().Unix()
	arguments := calculator.Arguments{
		Owner:     owner.Account(),
		N1:        n1,
		N2:        n2,
		Timestamp: timestamp,
		Signature: signature.Sign(owner, method, timestamp, n1, n2),
	}

	client.printJson(method+" Request", arguments)

	var reply calculator.Reply
	err := client.client.Call(method, arguments, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson(method+" Reply", reply)

	return &reply, nil
}

// SquareRoot - floor of the square root of n
func (client *Client) SquareRoot(owner *account.PrivateKey, n string) (*calculator.Reply, error) {

	timestamp := client.now().Unix()
	arguments := calculator.SquareRootArguments{
		Owner:     owner.Account(),
		N:         n,
		Timestamp: timestamp,
		Signature: signature.Sign(owner, calculator.MethodSquareRoot, timestamp, n),
	}

	client.printJson("SquareRoot Request", arguments)

	var reply calculator.Reply
	err := client.client.Call(calculator.MethodSquareRoot, arguments, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("SquareRoot Reply", reply)

	return &reply, nil
}
