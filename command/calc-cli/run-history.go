// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/calcd/command/calc-cli/rpccalls"
)

// history needs no password, only the viewing key
func runHistory(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := checkViewingKey(c.String("key"))
	if nil != err {
		return err
	}

	address := c.String("address")
	if "" == address {
		name, err := identityName(c.GlobalString("identity"), m)
		if nil != err {
			return err
		}
		acc, err := m.config.Account(name)
		if nil != err {
			return err
		}
		address = acc.String()
	}

	client, err := rpccalls.NewClient(m.config.Connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetHistory(&rpccalls.HistoryData{
		Address:  address,
		Key:      key,
		Page:     uint32(c.Uint("page")),
		PageSize: uint32(c.Uint("page-size")),
	})
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}
