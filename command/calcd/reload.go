// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
)

const (
	reloaderLoggerPrefix = "config-reader"
	reloadSettleDelay    = 2 * time.Second
)

// the runtime settings that follow the configuration file
type userSuppliedSetter interface {
	SetAllowUserSupplied(bool)
}

// re-reads the configuration after the watcher reports a change
//
// only viewing_key.allow_user_supplied is applied at run time, any
// other edit needs a restart
type configReloader struct {
	sync.Mutex
	log      *logger.L
	fileName string
	channels watcherChannel
	delay    time.Duration
	target   userSuppliedSetter
	current  *Configuration
}

func newConfigReloader(log *logger.L, fileName string, current *Configuration, channels watcherChannel, target userSuppliedSetter) *configReloader {
	return &configReloader{
		log:      log,
		fileName: fileName,
		channels: channels,
		delay:    reloadSettleDelay,
		target:   target,
		current:  current,
	}
}

// Run - apply changes until shutdown
func (r *configReloader) Run(args interface{}, shutdown <-chan struct{}) {
	for {
		select {
		case <-shutdown:
			return
		case <-r.channels.change:
			r.log.Debugf("receive file change event, wait %s to settle", r.delay)
			select {
			case <-time.After(r.delay):
			case <-shutdown:
				return
			}
			if err := r.Refresh(); nil != err {
				r.log.Errorf("failed to read configuration from: %q  error: %s", r.fileName, err)
			}
		case <-r.channels.remove:
			r.log.Warn("config file removed, keeping current settings")
		}
	}
}

// Refresh - read the file and apply any changed runtime setting
func (r *configReloader) Refresh() error {
	next, err := getConfiguration(r.fileName)
	if nil != err {
		return err
	}

	r.Lock()
	defer r.Unlock()

	if next.ViewingKey.Seed != r.current.ViewingKey.Seed {
		r.log.Warn("viewing key seed changed: restart required to apply")
	}
	if next.Database != r.current.Database {
		r.log.Warn("database settings changed: restart required to apply")
	}

	allow := next.ViewingKey.AllowUserSupplied
	if allow != r.current.ViewingKey.AllowUserSupplied {
		r.log.Infof("allow user supplied viewing keys: %t", allow)
		r.target.SetAllowUserSupplied(allow)
	}
	r.current.ViewingKey.AllowUserSupplied = allow
	return nil
}

func (r *configReloader) allowUserSupplied() bool {
	r.Lock()
	defer r.Unlock()
	return r.current.ViewingKey.AllowUserSupplied
}
