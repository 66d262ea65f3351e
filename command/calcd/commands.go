// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/calcd/rpc/certificate"
	"github.com/bitmark-inc/exitwithstatus"
)

const (
	rpcCertificateFilename = "rpc.crt"
	rpcPrivateKeyFilename  = "rpc.key"

	viewingSeedBytes = 32
)

type commandHelp struct {
	name   string
	alias  string
	detail []string
}

var setupCommands = []commandHelp{
	{"help", "h", []string{"display this message"}},
	{"version", "v", []string{"display version string"}},
	{"gen-rpc-cert [DIR] [IPs...]", "rpc", []string{
		"create private key in: DIR/" + rpcPrivateKeyFilename,
		"and the certificate in: DIR/" + rpcCertificateFilename,
		"IPs are added to the certificate as extra hosts",
	}},
	{"gen-viewing-seed", "seed", []string{"print a random value for viewing_key.seed"}},
	{"start", "run", []string{"run the daemon, same as no arguments"}},
	{"config-test", "cfg", []string{"check the configuration file and print the result"}},
}

// commands that need no configuration file or database
//
// returns true if the command was handled and main should exit
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		dir := "."
		if len(arguments) > 0 {
			dir = arguments[0]
			arguments = arguments[1:]
		}
		certificateFilename := filepath.Join(dir, rpcCertificateFilename)
		privateKeyFilename := filepath.Join(dir, rpcPrivateKeyFilename)

		addresses := make([]string, 0, len(arguments))
		for _, a := range arguments {
			if "" != a {
				addresses = append(addresses, a)
			}
		}

		err := certificate.MakeSelfSigned("calcd", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			exitwithstatus.Message("generate RPC key: %q and certificate: %q error: %s", privateKeyFilename, certificateFilename, err)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "gen-viewing-seed", "seed":
		seed, err := newViewingSeed(rand.Reader)
		if nil != err {
			exitwithstatus.Message("generate viewing key seed error: %s", err)
		}
		fmt.Println(seed)

	case "start", "run", "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Println(version)

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		printUsage(os.Stdout, program)
		exitwithstatus.Exit(1)
	}

	return true
}

func printUsage(w io.Writer, program string) {
	fmt.Fprintf(w, "usage: %s [--help] [--verbose] [--quiet] [--memory-stats] --config-file=FILE [[command|help] arguments...]\n\n", program)
	fmt.Fprintf(w, "supported commands:\n\n")
	for _, c := range setupCommands {
		for i, line := range c.detail {
			if 0 == i {
				fmt.Fprintf(w, "  %-30s %-8s - %s\n", c.name, "("+c.alias+")", line)
			} else {
				fmt.Fprintf(w, "  %-30s %-8s   %s\n", "", "", line)
			}
		}
		fmt.Fprintln(w)
	}
}

// hex text suitable for pasting into the configuration file
func newViewingSeed(r io.Reader) (string, error) {
	seed := make([]byte, viewingSeedBytes)
	if _, err := io.ReadFull(r, seed); nil != err {
		return "", err
	}
	return hex.EncodeToString(seed), nil
}

// commands that need the decoded configuration but nothing else
//
// returns true if the command was handled and main should exit
func processConfigCommand(w io.Writer, arguments []string, options *Configuration) bool {

	command := "start"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.MarshalIndent(options, "", "  ")
		if nil != err {
			exitwithstatus.Message("error: %s", err)
		}
		fmt.Fprintf(w, "%s\n", b)
		return true

	case "start", "run":
		return false

	default:
		exitwithstatus.Message("error: no such command: %s", command)
	}
	return true
}
