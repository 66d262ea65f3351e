// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitmark-inc/calcd/configuration"
	"github.com/bitmark-inc/calcd/fault"
	"github.com/bitmark-inc/calcd/rpc/listeners"
	"github.com/bitmark-inc/calcd/storage"
	"github.com/bitmark-inc/calcd/util"
	"github.com/bitmark-inc/logger"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultKeyFile         = "rpc.key"
	defaultCertificateFile = "rpc.crt"

	defaultBackend          = storage.BackendLevelDB
	defaultLevelDBDirectory = "data"
	defaultLevelDBDatabase  = "calcd.leveldb"
	defaultSQLiteDatabase   = "calcd.sqlite3"
	defaultCacheExpiry      = 300 // seconds, zero disables the cache

	defaultLogDirectory = "log"
	defaultLogFile      = "calcd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients = 10
	defaultBandwidth  = 25000000
)

// backend that never touches the disk, only for testing
const backendMemory = "memory"

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

type DatabaseType struct {
	Backend     string               `gluamapper:"backend" json:"backend"`
	Directory   string               `gluamapper:"directory" json:"directory"`
	Name        string               `gluamapper:"name" json:"name"`
	CacheExpiry int                  `gluamapper:"cache_expiry" json:"cache_expiry"`
	Redis       storage.RedisOptions `gluamapper:"redis" json:"redis"`
}

// the seed is a secret so it is never shown by config-test
type ViewingKeyType struct {
	Seed              string `gluamapper:"seed" json:"-"`
	AllowUserSupplied bool   `gluamapper:"allow_user_supplied" json:"allow_user_supplied"`
}

type Configuration struct {
	DataDirectory string                       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string                       `gluamapper:"pidfile" json:"pidfile"`
	Database      DatabaseType                 `gluamapper:"database" json:"database"`
	ViewingKey    ViewingKeyType               `gluamapper:"viewing_key" json:"viewing_key"`
	ClientRPC     listeners.RPCConfiguration   `gluamapper:"client_rpc" json:"client_rpc"`
	HttpsRPC      listeners.HTTPSConfiguration `gluamapper:"https_rpc" json:"https_rpc"`
	Logging       logger.Configuration         `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Database: DatabaseType{
			Backend:     defaultBackend,
			Directory:   defaultLevelDBDirectory,
			Name:        "", // depends on backend
			CacheExpiry: defaultCacheExpiry,
		},

		ViewingKey: ViewingKeyType{
			AllowUserSupplied: true,
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Bandwidth:          defaultBandwidth,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		// default: share config with normal RPC
		HttpsRPC: listeners.HTTPSConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	if "" == options.ViewingKey.Seed {
		return nil, fault.ErrMissingViewingKeySeed
	}

	options.Database.Backend = strings.ToLower(options.Database.Backend)
	switch options.Database.Backend {
	case storage.BackendLevelDB:
		if "" == options.Database.Name {
			options.Database.Name = defaultLevelDBDatabase
		}
	case storage.BackendSQLite:
		if "" == options.Database.Name {
			options.Database.Name = defaultSQLiteDatabase
		}
	case storage.BackendRedis:
		if "" == options.Database.Redis.Address {
			return nil, fault.ErrMissingParameters
		}
	case backendMemory:
	default:
		return nil, fault.ErrInvalidStorageBackend
	}

	if options.Database.CacheExpiry < 0 {
		options.Database.CacheExpiry = 0
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, errors.New(fmt.Sprintf("Path: %q is not a valid directory", options.DataDirectory))
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, errors.New(fmt.Sprintf("Path: %q is not a directory", options.DataDirectory))
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
		&options.HttpsRPC.Certificate,
		&options.HttpsRPC.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Logging.File, nil},
	}
	if "" != options.Database.Name {
		mustNotBePaths = append(mustNotBePaths, [2]*string{&options.Database.Name, &options.Database.Directory})
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, errors.New(fmt.Sprintf("Files: %q is not plain name", *f[0]))
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := util.EnsureDirectory(*d); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

func (d DatabaseType) cacheExpiry() time.Duration {
	return time.Duration(d.CacheExpiry) * time.Second
}
