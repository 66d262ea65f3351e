// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/calcd/account"
	"github.com/bitmark-inc/calcd/command/calc-cli/configuration"
)

const defaultIdentity = "default"

func runSetup(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)
	testnet := c.Bool("testnet")

	name := c.GlobalString("identity")
	if "" == name {
		name = defaultIdentity
	}

	connect, err := checkConnect(c.String("connect"))
	if err != nil {
		return err
	}

	description, err := checkDescription(c.String("description"))
	if err != nil {
		return err
	}

	var key *account.PrivateKey
	if text := c.String("privateKey"); "" != text {
		key, err = account.PrivateKeyFromBase58(text)
		if nil == err {
			testnet = key.Test // the key decides the network
		}
	} else {
		key, err = account.NewPrivateKey(testnet)
	}
	if err != nil {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "config: %s\n", m.file)
		fmt.Fprintf(m.e, "testnet: %t\n", testnet)
		fmt.Fprintf(m.e, "connect: %s\n", connect)
		fmt.Fprintf(m.e, "identity: %s\n", name)
		fmt.Fprintf(m.e, "description: %s\n", description)
	}

	// Create the folder hierarchy for configuration if not existing
	configDir := path.Dir(m.file)
	d, err := checkFileExists(configDir)
	if err != nil {
		if err := os.MkdirAll(configDir, 0o750); err != nil {
			return err
		}
	} else if !d {
		return fmt.Errorf("path: %q is not a directory", configDir)
	}

	config := configuration.New(connect, testnet, name)

	password := c.GlobalString("password")
	if password == "" {
		password, err = promptNewPassword()
		if err != nil {
			return err
		}
	}

	err = config.AddIdentity(name, description, key, password)
	if err != nil {
		return err
	}

	m.config = config
	m.save = true

	return printJson(m.w, configuration.InfoIdentity{
		Name:        name,
		Description: description,
		Account:     key.Account().String(),
	})
}
