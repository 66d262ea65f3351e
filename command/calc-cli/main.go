// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/calcd/command/calc-cli/configuration"
)

type metadata struct {
	file    string
	config  *configuration.Configuration
	save    bool
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp()
	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {

	app := cli.NewApp()
	app.Name = "calc-cli"
	app.Usage = "signed calculations and viewing key protected history"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "identity, i",
			Value: "",
			Usage: " identity `NAME` [default identity]",
		},
		cli.StringFlag{
			Name:  "password, p",
			Value: "",
			Usage: " identity `PASSWORD`",
		},
		cli.StringFlag{
			Name:   "config, c",
			Value:  "",
			Usage:  " configuration `FILE` [$XDG_CONFIG_HOME/calc-cli/calc-cli.json]",
			EnvVar: "CALC_CLI_CONFIG",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "setup",
			Usage:     "initialise calc-cli configuration",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "connect, c",
					Value: "",
					Usage: "*calcd host/IP and port, `HOST:PORT`",
				},
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "privateKey, k",
					Value: "",
					Usage: " use an existing base58 private `KEY`",
				},
				cli.BoolFlag{
					Name:  "testnet, t",
					Usage: " use test network accounts",
				},
			},
			Action: runSetup,
		},
		{
			Name:      "account",
			Usage:     "show the account of an identity, or all identities",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "all, a",
					Usage: " list every identity",
				},
			},
			Action: runAccount,
		},
		{
			Name:      "add",
			Usage:     "add two numbers and record the result",
			ArgsUsage: "N1 N2",
			Action:    runCalculate(calculateAdd),
		},
		{
			Name:      "subtract",
			Usage:     "subtract N2 from N1 and record the result",
			ArgsUsage: "N1 N2",
			Action:    runCalculate(calculateSubtract),
		},
		{
			Name:      "multiply",
			Usage:     "multiply two numbers and record the result",
			ArgsUsage: "N1 N2",
			Action:    runCalculate(calculateMultiply),
		},
		{
			Name:      "divide",
			Usage:     "integer divide N1 by N2 and record the result",
			ArgsUsage: "N1 N2",
			Action:    runCalculate(calculateDivide),
		},
		{
			Name:      "sqrt",
			Usage:     "integer square root of N and record the result",
			ArgsUsage: "N",
			Action:    runSquareRoot,
		},
		{
			Name:      "generate-key",
			Usage:     "create a new viewing key, replacing any previous key",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "entropy, e",
					Value: "",
					Usage: " extra `STRING` mixed into the key [random]",
				},
			},
			Action: runGenerateKey,
		},
		{
			Name:      "set-key",
			Usage:     "use a chosen viewing key, replacing any previous key",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "key, k",
					Value: "",
					Usage: "*viewing `KEY`",
				},
			},
			Action: runSetKey,
		},
		{
			Name:      "history",
			Usage:     "list recorded calculations, newest first",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "key, k",
					Value: "",
					Usage: "*viewing `KEY`",
				},
				cli.StringFlag{
					Name:  "address, a",
					Value: "",
					Usage: " account `ADDRESS` [identity account]",
				},
				cli.UintFlag{
					Name:  "page, n",
					Value: 0,
					Usage: " page `NUMBER`, 0 is the newest",
				},
				cli.UintFlag{
					Name:  "page-size, s",
					Value: 10,
					Usage: " entries per page `COUNT`",
				},
			},
			Action: runHistory,
		},
		{
			Name:      "info",
			Usage:     "display calcd info",
			ArgsUsage: " ",
			Action:    runInfo,
		},
		{
			Name:      "version",
			Usage:     "display calc-cli version",
			ArgsUsage: " ",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file if certain commands
		command := c.Args().Get(0)
		switch command {
		case "", "version", "help", "h":
			return nil
		}

		file, err := configurationFile(c.GlobalString("config"), app.Name)
		if nil != err {
			return err
		}

		if verbose {
			fmt.Fprintf(e, "file: %q\n", file)
		}

		if "setup" == command {
			// do not run setup if there is an existing configuration
			if _, err := checkFileExists(file); nil == err {
				return fmt.Errorf("not overwriting existing configuration: %q", file)
			}

			c.App.Metadata["config"] = &metadata{
				file:    file,
				save:    false,
				verbose: verbose,
				e:       e,
				w:       w,
			}
			return nil
		}

		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		config, err := configuration.Load(file)
		if nil != err {
			return err
		}

		c.App.Metadata["config"] = &metadata{
			file:    file,
			config:  config,
			save:    false,
			verbose: verbose,
			e:       e,
			w:       w,
		}
		return nil
	}

	// update the configuration if required
	app.After = func(c *cli.Context) error {
		e := c.App.ErrWriter
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		if m.save {
			if m.verbose {
				fmt.Fprintf(e, "updating config file: %s\n", m.file)
			}
			return configuration.Save(m.file, m.config)
		}
		return nil
	}

	return app
}

// explicit file or the default under XDG_CONFIG_HOME
func configurationFile(file string, name string) (string, error) {
	if "" != file {
		return os.ExpandEnv(file), nil
	}

	p := os.Getenv("XDG_CONFIG_HOME")
	if "" == p {
		return "", fmt.Errorf("XDG_CONFIG_HOME environment is not set")
	}
	dir, err := checkFileExists(p)
	if nil != err {
		return "", err
	}
	if !dir {
		return "", fmt.Errorf("not a directory: %q", p)
	}
	return path.Join(p, name, name+".json"), nil
}
