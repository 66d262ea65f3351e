// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/calcd/command/calc-cli/rpccalls"
)

const entropySize = 32

func runGenerateKey(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	entropy := c.String("entropy")
	if "" == entropy {
		buffer := make([]byte, entropySize)
		if _, err := rand.Read(buffer); nil != err {
			return err
		}
		entropy = hex.EncodeToString(buffer)
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

	response, err := client.GenerateKey(owner, entropy)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runSetKey(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := checkViewingKey(c.String("key"))
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

	response, err := client.SetKey(owner, key)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}
