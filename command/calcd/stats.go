// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"
)

const (
	statsDelay = 60 * time.Second
	mega       = 1048576
)

type memoryStats struct {
	log *logger.L
}

func newMemoryStats() *memoryStats {
	return &memoryStats{
		log: logger.New("memory"),
	}
}

// Run - log memory use once a minute until shutdown
func (stats *memoryStats) Run(args interface{}, shutdown <-chan struct{}) {

	log := stats.log

	ticker := time.NewTicker(statsDelay)
	defer ticker.Stop()

	for {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		log.Infof("allocated: %d M  cumulative: %d M  OS virtual: %d M  goroutines: %d",
			m.Alloc/mega, m.TotalAlloc/mega, m.Sys/mega, runtime.NumGoroutine())
		log.Debugf("gc runs: %d  heap objects: %d", m.NumGC, m.HeapObjects)

		select {
		case <-shutdown:
			return
		case <-ticker.C:
		}
	}
}
