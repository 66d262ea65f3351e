// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/calcd/fault"
	"github.com/bitmark-inc/calcd/fixtures"
	"github.com/bitmark-inc/logger"
)

func waitFor(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	case <-time.After(5 * time.Second):
		return false
	}
}

func TestFileWatcher(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir := t.TempDir()
	fileName := filepath.Join(dir, "calcd.conf")
	err := ioutil.WriteFile(fileName, []byte("return {}"), 0600)
	if nil != err {
		t.Fatalf("write file error: %s", err)
	}

	channels := newWatcherChannel()
	w, err := newFileWatcher(fileName, logger.New(fixtures.LogCategory), channels)
	assert.Nil(t, err, "wrong newFileWatcher")

	err = w.Start()
	assert.Nil(t, err, "wrong Start")
	defer w.Stop()

	// other files in the directory are ignored
	err = ioutil.WriteFile(filepath.Join(dir, "other"), []byte("x"), 0600)
	assert.Nil(t, err, "write other file")

	err = ioutil.WriteFile(fileName, []byte("return { pidfile = \"x\" }"), 0600)
	assert.Nil(t, err, "write file")
	assert.True(t, waitFor(channels.change), "no change event")

	err = os.Remove(fileName)
	assert.Nil(t, err, "remove file")
	assert.True(t, waitFor(channels.remove), "no remove event")
}

func TestFileWatcherMissingFile(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, err := newFileWatcher(filepath.Join(t.TempDir(), "none.conf"), logger.New(fixtures.LogCategory), newWatcherChannel())
	assert.Equal(t, fault.ErrNotFoundConfigFile, err, "wrong error")
}

func TestSendEventDiscardsWhenFull(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	w := &fileWatcher{log: logger.New(fixtures.LogCategory)}
	ch := make(chan struct{}, 1)

	w.sendEvent(ch, "test")
	w.sendEvent(ch, "test")
	assert.Equal(t, 1, len(ch), "wrong queued events")
}

func TestWatcherEventClassification(t *testing.T) {
	assert.True(t, watcherEventFileChange(fsnotify.Event{Op: fsnotify.Write}), "write")
	assert.True(t, watcherEventFileChange(fsnotify.Event{Op: fsnotify.Create}), "create")
	assert.True(t, watcherEventFileChange(fsnotify.Event{Op: fsnotify.Chmod}), "chmod")
	assert.False(t, watcherEventFileChange(fsnotify.Event{Op: fsnotify.Remove}), "remove")
	assert.True(t, watcherEventFileRemove(fsnotify.Event{Op: fsnotify.Remove}), "remove")
	assert.True(t, watcherEventFileRemove(fsnotify.Event{Op: fsnotify.Rename}), "rename")
	assert.False(t, watcherEventFileRemove(fsnotify.Event{Op: fsnotify.Write}), "write")
}
