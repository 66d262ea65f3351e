// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package calculation

import (
	"math/big"

	"github.com/bitmark-inc/calcd/fault"
)

// Kind - operation selector
type Kind int

// enumeration of operations
const (
	Add Kind = iota
	Subtract
	Multiply
	Divide
	SquareRoot
)

// String - name used on the command line and in logs
func (k Kind) String() string {
	switch k {
	case Add:
		return "add"
	case Subtract:
		return "subtract"
	case Multiply:
		return "multiply"
	case Divide:
		return "divide"
	case SquareRoot:
		return "sqrt"
	default:
		return "unknown"
	}
}

// Operation - one of the types below
type Operation interface {
	Kind() Kind
	compute() (*big.Int, error)
	record(result *big.Int) Record
}

// Addition - N1 + N2
type Addition struct {
	N1 *big.Int
	N2 *big.Int
}

// Subtraction - N1 - N2, N2 must not exceed N1
type Subtraction struct {
	N1 *big.Int
	N2 *big.Int
}

// Multiplication - N1 * N2
type Multiplication struct {
	N1 *big.Int
	N2 *big.Int
}

// Division - N1 / N2 rounded down
type Division struct {
	N1 *big.Int
	N2 *big.Int
}

// SquareRootOf - largest r with r*r <= N
type SquareRootOf struct {
	N *big.Int
}

// Perform - run an operation
//
// returns the result and its history record
func Perform(operation Operation) (*big.Int, Record, error) {
	if nil == operation {
		return nil, "", fault.ErrInvalidOperation
	}
	result, err := operation.compute()
	if nil != err {
		return nil, "", err
	}
	return result, operation.record(result), nil
}

// New - build an operation from decimal strings
//
// SquareRoot uses only the first argument
func New(kind Kind, n1 string, n2 string) (Operation, error) {
	a, err := ParseNumber(n1)
	if nil != err {
		return nil, err
	}
	if SquareRoot == kind {
		return SquareRootOf{N: a}, nil
	}

	b, err := ParseNumber(n2)
	if nil != err {
		return nil, err
	}

	switch kind {
	case Add:
		return Addition{N1: a, N2: b}, nil
	case Subtract:
		return Subtraction{N1: a, N2: b}, nil
	case Multiply:
		return Multiplication{N1: a, N2: b}, nil
	case Divide:
		return Division{N1: a, N2: b}, nil
	default:
		return nil, fault.ErrInvalidOperation
	}
}

func checkArguments(numbers ...*big.Int) error {
	for _, n := range numbers {
		if nil == n {
			return fault.ErrMissingParameters
		}
		if !inRange(n) {
			return fault.ErrNumberTooLarge
		}
	}
	return nil
}

func (Addition) Kind() Kind { return Add }

func (op Addition) compute() (*big.Int, error) {
	if err := checkArguments(op.N1, op.N2); nil != err {
		return nil, err
	}
	r := new(big.Int).Add(op.N1, op.N2)
	if !inRange(r) {
		return nil, fault.ErrNumberTooLarge
	}
	return r, nil
}

func (op Addition) record(result *big.Int) Record {
	return binaryRecord(op.N1, "+", op.N2, result)
}

func (Subtraction) Kind() Kind { return Subtract }

func (op Subtraction) compute() (*big.Int, error) {
	if err := checkArguments(op.N1, op.N2); nil != err {
		return nil, err
	}
	if op.N2.Cmp(op.N1) > 0 {
		return nil, fault.ErrNegativeResult
	}
	return new(big.Int).Sub(op.N1, op.N2), nil
}

func (op Subtraction) record(result *big.Int) Record {
	return binaryRecord(op.N1, "-", op.N2, result)
}

func (Multiplication) Kind() Kind { return Multiply }

func (op Multiplication) compute() (*big.Int, error) {
	if err := checkArguments(op.N1, op.N2); nil != err {
		return nil, err
	}
	r := new(big.Int).Mul(op.N1, op.N2)
	if !inRange(r) {
		return nil, fault.ErrProductTooLarge
	}
	return r, nil
}

func (op Multiplication) record(result *big.Int) Record {
	return binaryRecord(op.N1, "*", op.N2, result)
}

func (Division) Kind() Kind { return Divide }

func (op Division) compute() (*big.Int, error) {
	if err := checkArguments(op.N1, op.N2); nil != err {
		return nil, err
	}
	if 0 == op.N2.Sign() {
		return nil, fault.ErrDivisionByZero
	}
	return new(big.Int).Quo(op.N1, op.N2), nil
}

func (op Division) record(result *big.Int) Record {
	return binaryRecord(op.N1, "/", op.N2, result)
}

func (SquareRootOf) Kind() Kind { return SquareRoot }

func (op SquareRootOf) compute() (*big.Int, error) {
	if err := checkArguments(op.N); nil != err {
		return nil, err
	}
	return new(big.Int).Sqrt(op.N), nil
}

func (op SquareRootOf) record(result *big.Int) Record {
	return Record("√" + op.N.String() + " = " + result.String())
}
