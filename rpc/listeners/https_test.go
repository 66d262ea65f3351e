// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"fmt"
	"io/ioutil"
	"math/rand"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/calcd/fault"
	"github.com/bitmark-inc/calcd/fixtures"
	"github.com/bitmark-inc/calcd/rpc/listeners"
	"github.com/bitmark-inc/logger"
)

type testHandler struct {
	allow map[string][]*net.IPNet
}

func (h *testHandler) RPC(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("RPC"))
}

func (h *testHandler) Details(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("Details"))
}

func (h *testHandler) Root(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("Root"))
}

func (h *testHandler) SetAllow(allow map[string][]*net.IPNet) {
	h.allow = allow
}

var client *http.Client

func init() {
	customTransport := http.DefaultTransport.(*http.Transport).Clone()
	customTransport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // ignore certificate verification

	client = &http.Client{
		Transport: customTransport,
	}
}

func setup(t *testing.T, hdlr *testHandler) (int, listeners.Listener) {
	allow := "127.0.0.1/32"
	port := rand.Intn(30000) + 30000

	listen := fmt.Sprintf("127.0.0.1:%d", port)
	conf := listeners.HTTPSConfiguration{
		MaximumConnections: 5,
		Listen:             []string{listen},
		Allow: map[string][]string{
			"details": {allow},
		},
	}

	tlsConf, _ := testTLSConfig(t)

	h, err := listeners.NewHTTPS(
		&conf,
		logger.New(fixtures.LogCategory),
		tlsConf,
		hdlr,
	)
	if err != nil {
		t.Error("NewHTTPS with error: ", err)
		t.FailNow()
	}

	return port, h
}

func get(t *testing.T, url string) string {
	resp, err := client.Get(url)
	if err != nil {
		t.Error("client get with error: ", err)
		t.FailNow()
	}
	defer resp.Body.Close()

	content, _ := ioutil.ReadAll(resp.Body)
	return string(content)
}

func TestHttpsListenerServe(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	hdlr := &testHandler{}
	port, h := setup(t, hdlr)

	err := h.Serve()
	assert.Nil(t, err, "wrong Serve")
	defer h.Stop()

	time.Sleep(time.Millisecond) // make sure server is ready
	url := fmt.Sprintf("https://127.0.0.1:%d/", port)

	assert.Equal(t, "RPC", get(t, url+"calcd/rpc"), "wrong RPC call")
	assert.Equal(t, "Details", get(t, url+"calcd/details"), "wrong Details call")
	assert.Equal(t, "Root", get(t, url+"calcd/"), "wrong Root call")
	assert.Equal(t, "Root", get(t, url), "wrong Root call")

	assert.Equal(t, 1, len(hdlr.allow["details"]), "allow list not passed to handler")
}

func TestHttpsListenerDisabled(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	conf := listeners.HTTPSConfiguration{
		MaximumConnections: 5,
	}

	h, err := listeners.NewHTTPS(&conf, logger.New(fixtures.LogCategory), &tls.Config{}, &testHandler{})
	assert.Nil(t, err, "wrong error")
	assert.Nil(t, h, "listener should be disabled")
}

func TestHttpsListenerBadConfiguration(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	conf := listeners.HTTPSConfiguration{
		MaximumConnections: 0,
		Listen:             []string{"127.0.0.1:1234"},
	}
	_, err := listeners.NewHTTPS(&conf, logger.New(fixtures.LogCategory), &tls.Config{}, &testHandler{})
	assert.Equal(t, fault.ErrMissingParameters, err, "wrong error")

	conf = listeners.HTTPSConfiguration{
		MaximumConnections: 1,
		Listen:             []string{"127.0.0.1:1234"},
		Allow: map[string][]string{
			"details": {"not a cidr"},
		},
	}
	_, err = listeners.NewHTTPS(&conf, logger.New(fixtures.LogCategory), &tls.Config{}, &testHandler{})
	assert.NotNil(t, err, "invalid CIDR accepted")
}
