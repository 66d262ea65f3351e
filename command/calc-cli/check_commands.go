// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"strings"

	"github.com/bitmark-inc/calcd/fault"
)

// error if missing, otherwise whether it is a directory
func checkFileExists(name string) (bool, error) {
	s, err := os.Stat(name)
	if nil != err {
		return false, err
	}
	return s.IsDir(), nil
}

// identity is required, but not check the config file
func checkName(name string) (string, error) {
	if "" == name {
		return "", fault.ErrRequiredIdentity
	}

	return name, nil
}

// connect is required.
func checkConnect(connect string) (string, error) {
	connect = strings.TrimSpace(connect)
	if "" == connect {
		return "", fault.ErrRequiredConnect
	}

	return connect, nil
}

// description is required
func checkDescription(description string) (string, error) {
	if "" == description {
		return "", fault.ErrRequiredDescription
	}

	return description, nil
}

// viewing key is required
func checkViewingKey(key string) (string, error) {
	if "" == key {
		return "", fault.ErrRequiredViewingKey
	}

	return key, nil
}

// exactly the given count of numeric arguments
func checkNumbers(arguments []string, count int) ([]string, error) {
	if count != len(arguments) {
		return nil, fault.ErrRequiredNumbers
	}
	for i, n := range arguments {
		arguments[i] = strings.TrimSpace(n)
		if "" == arguments[i] {
			return nil, fault.ErrRequiredNumbers
		}
	}
	return arguments, nil
}

// the global identity flag or the configured default
func identityName(name string, m *metadata) (string, error) {
	if "" == name {
		name = m.config.DefaultIdentity
	}
	return checkName(name)
}
