// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/calcd/command/calc-cli/rpccalls"
	"github.com/bitmark-inc/calcd/rpc/calculator"
)

type calculateMethod string

const (
	calculateAdd      = calculateMethod(calculator.MethodAdd)
	calculateSubtract = calculateMethod(calculator.MethodSubtract)
	calculateMultiply = calculateMethod(calculator.MethodMultiply)
	calculateDivide   = calculateMethod(calculator.MethodDivide)
)

func runCalculate(method calculateMethod) cli.ActionFunc {
	return func(c *cli.Context) error {

		m := c.App.Metadata["config"].(*metadata)

		numbers, err := checkNumbers(c.Args(), 2)
		if nil != err {
			return err
		}

		owner, err := privateKey(c, m)
		if nil != err {
			return err
		}

		client, err := rpccalls.NewClient(m.config.Connect, m.verbose, m.e)
		if nil != err {
			return err
		}
		defer client.Close()

		response, err := client.Calculate(owner, string(method), numbers[0], numbers[1])
		if nil != err {
			return err
		}

		return printJson(m.w, response)
	}
}

func runSquareRoot(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	numbers, err := checkNumbers(c.Args(), 1)
	if nil != err {
		return err
	}

	owner, err := privateKey(c, m)
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.config.Connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.SquareRoot(owner, numbers[0])
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}
