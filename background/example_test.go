// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"fmt"
	"time"

	"github.com/bitmark-inc/calcd/background"
)

type ticker struct {
	count int
}

func Example() {

	proc := &ticker{}

	// list of background processes to start
	processes := background.Processes{
		proc,
	}

	p := background.Start(processes, "ticker")
	time.Sleep(10 * time.Millisecond)
	p.Stop()

	// Output:
	// initialise: ticker
	// finalise: ticker
}

func (state *ticker) Run(args interface{}, shutdown <-chan struct{}) {

	fmt.Printf("initialise: %s\n", args)

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(time.Millisecond):
			state.count += 1
		}
	}

	fmt.Printf("finalise: %s\n", args)
}
