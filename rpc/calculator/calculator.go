// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package calculator

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/calcd/account"
	"github.com/bitmark-inc/calcd/calculation"
	"github.com/bitmark-inc/calcd/ledger"
	"github.com/bitmark-inc/calcd/rpc/ratelimit"
	"github.com/bitmark-inc/calcd/rpc/signature"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitCalculator = 200
	rateBurstCalculator = 100
)

// method names, also the first field of the signed message
const (
	MethodAdd        = "Calculator.Add"
	MethodSubtract   = "Calculator.Subtract"
	MethodMultiply   = "Calculator.Multiply"
	MethodDivide     = "Calculator.Divide"
	MethodSquareRoot = "Calculator.SquareRoot"
)

// StatusRecorded - reply status for a successful calculation
const StatusRecorded = "Calculation performed and recorded"

// Calculator - type for RPC calls
type Calculator struct {
	Log     *logger.L
	Limiter *rate.Limiter
	handler ledger.Handler
	now     func() time.Time
}

// Arguments - two operand calculation
type Arguments struct {
	Owner     *account.Account  `json:"owner"`
	N1        string            `json:"n1"`
	N2        string            `json:"n2"`
	Timestamp int64             `json:"timestamp"`
	Signature account.Signature `json:"signature"`
}

// SquareRootArguments - single operand calculation
type SquareRootArguments struct {
	Owner     *account.Account  `json:"owner"`
	N         string            `json:"n"`
	Timestamp int64             `json:"timestamp"`
	Signature account.Signature `json:"signature"`
}

// Reply - result of any calculation
type Reply struct {
	N      string `json:"n"`
	Status string `json:"status"`
}

// New - create the calculator service
func New(log *logger.L, handler ledger.Handler) *Calculator {
	return &Calculator{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitCalculator, rateBurstCalculator),
		handler: handler,
		now:     time.Now,
	}
}

// Add - n1 + n2
func (calculator *Calculator) Add(arguments *Arguments, reply *Reply) error {
	return calculator.binary(MethodAdd, calculation.Add, arguments, reply)
}

// Subtract - n1 - n2
func (calculator *Calculator) Subtract(arguments *Arguments, reply *Reply) error {
	return calculator.binary(MethodSubtract, calculation.Subtract, arguments, reply)
}

// Multiply - n1 * n2
func (calculator *Calculator) Multiply(arguments *Arguments, reply *Reply) error {
	return calculator.binary(MethodMultiply, calculation.Multiply, arguments, reply)
}

// Divide - n1 / n2 rounded down
func (calculator *Calculator) Divide(arguments *Arguments, reply *Reply) error {
	return calculator.binary(MethodDivide, calculation.Divide, arguments, reply)
}

// SquareRoot - integer square root of n
func (calculator *Calculator) SquareRoot(arguments *SquareRootArguments, reply *Reply) error {
	if err := ratelimit.Limit(calculator.Limiter); nil != err {
		return err
	}

	requestId := uuid.New().String()
	log := calculator.Log

	err := signature.Verify(calculator.now(), MethodSquareRoot, arguments.Owner, arguments.Timestamp, arguments.Signature, arguments.N)
	if nil != err {
		log.Warnf("%s: request: %s  error: %s", MethodSquareRoot, requestId, err)
		return err
	}

	operation, err := calculation.New(calculation.SquareRoot, arguments.N, "")
	if nil != err {
		return err
	}

	return calculator.perform(requestId, arguments.Owner, operation, reply)
}

func (calculator *Calculator) binary(method string, kind calculation.Kind, arguments *Arguments, reply *Reply) error {
	if err := ratelimit.Limit(calculator.Limiter); nil != err {
		return err
	}

	requestId := uuid.New().String()
	log := calculator.Log

	err := signature.Verify(calculator.now(), method, arguments.Owner, arguments.Timestamp, arguments.Signature, arguments.N1, arguments.N2)
	if nil != err {
		log.Warnf("%s: request: %s  error: %s", method, requestId, err)
		return err
	}

	operation, err := calculation.New(kind, arguments.N1, arguments.N2)
	if nil != err {
		return err
	}

	return calculator.perform(requestId, arguments.Owner, operation, reply)
}

func (calculator *Calculator) perform(requestId string, owner *account.Account, operation calculation.Operation, reply *Reply) error {
	calculator.Log.Infof("request: %s  %s for: %s", requestId, operation.Kind(), owner)

	result, err := calculator.handler.Calculate(owner, operation)
	if nil != err {
		calculator.Log.Debugf("request: %s  error: %s", requestId, err)
		return err
	}

	reply.N = result.String()
	reply.Status = StatusRecorded
	return nil
}
