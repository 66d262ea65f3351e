// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/calcd/command/calc-cli/configuration"
)

func runAccount(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if c.Bool("all") {
		return printJson(m.w, m.config.List())
	}

	name, err := identityName(c.GlobalString("identity"), m)
	if nil != err {
		return err
	}

	id, err := m.config.Identity(name)
	if nil != err {
		return err
	}

	return printJson(m.w, configuration.InfoIdentity{
		Name:        name,
		Description: id.Description,
		Account:     id.Account,
	})
}
