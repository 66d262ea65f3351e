// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/calcd/background"
	"github.com/bitmark-inc/calcd/fixtures"
	"github.com/bitmark-inc/logger"
)

type fakeSetter struct {
	sync.Mutex
	calls []bool
}

func (f *fakeSetter) SetAllowUserSupplied(allow bool) {
	f.Lock()
	defer f.Unlock()
	f.calls = append(f.calls, allow)
}

func (f *fakeSetter) Calls() []bool {
	f.Lock()
	defer f.Unlock()
	return append([]bool{}, f.calls...)
}

const disallowConfiguration = `
return {
    data_directory = ".",
    viewing_key = {
        seed = "correct horse battery staple",
        allow_user_supplied = false,
    },
}
`

func TestReloaderRefresh(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir := t.TempDir()
	fileName := writeConfiguration(t, dir, minimalConfiguration)
	current, err := getConfiguration(fileName)
	if nil != err {
		t.Fatalf("getConfiguration error: %s", err)
	}

	setter := &fakeSetter{}
	r := newConfigReloader(logger.New(fixtures.LogCategory), fileName, current, newWatcherChannel(), setter)

	// unchanged file applies nothing
	err = r.Refresh()
	assert.Nil(t, err, "wrong Refresh")
	assert.Equal(t, 0, len(setter.Calls()), "unexpected update")

	writeConfiguration(t, dir, disallowConfiguration)
	err = r.Refresh()
	assert.Nil(t, err, "wrong Refresh")
	assert.Equal(t, []bool{false}, setter.Calls(), "wrong updates")
	assert.False(t, r.allowUserSupplied(), "setting not recorded")

	writeConfiguration(t, dir, `return 1`)
	err = r.Refresh()
	assert.NotNil(t, err, "broken file accepted")
	assert.False(t, r.allowUserSupplied(), "setting changed by broken file")
}

func TestReloaderFollowsChangeEvents(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir := t.TempDir()
	fileName := writeConfiguration(t, dir, minimalConfiguration)
	current, err := getConfiguration(fileName)
	if nil != err {
		t.Fatalf("getConfiguration error: %s", err)
	}

	setter := &fakeSetter{}
	channels := newWatcherChannel()
	r := newConfigReloader(logger.New(fixtures.LogCategory), fileName, current, channels, setter)
	r.delay = 0
	p := background.Start(background.Processes{r}, nil)
	defer p.Stop()

	writeConfiguration(t, dir, disallowConfiguration)
	channels.remove <- struct{}{}
	channels.change <- struct{}{}

	deadline := time.Now().Add(2 * time.Second)
	for 0 == len(setter.Calls()) && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, []bool{false}, setter.Calls(), "wrong updates")
}
