// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type PermissionError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised           = ExistsError("already initialised")
	ErrCannotDecodeAccount          = InvalidError("cannot decode account")
	ErrCannotDecodePrivateKey       = InvalidError("cannot decode private key")
	ErrCertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ErrCertificateFileNotFound      = NotFoundError("certificate file not found")
	ErrChecksumMismatch             = ProcessError("checksum mismatch")
	ErrConfigurationNotTable        = InvalidError("configuration file did not return a table")
	ErrCorruptCredential            = RecordError("corrupt credential")
	ErrCorruptHistoryCount          = RecordError("corrupt history count")
	ErrCorruptHistoryEntry          = RecordError("corrupt history entry")
	ErrCryptoFailed                 = ProcessError("crypto failed")
	ErrDatabaseIsNotSet             = ProcessError("database is not set")
	ErrDivisionByZero               = InvalidError("cannot divide by zero")
	ErrDuplicatePoolPrefix          = ProcessError("duplicate pool prefix")
	ErrEmptyViewingKey              = InvalidError("empty viewing key")
	ErrIdentityNameAlreadyExists    = ExistsError("identity name already exists")
	ErrIdentityNameNotFound         = NotFoundError("identity name not found")
	ErrIncompatibleDatabase         = ProcessError("incompatible database version")
	ErrInvalidAddress               = InvalidError("invalid address")
	ErrInvalidCount                 = InvalidError("invalid count")
	ErrInvalidIpAddress             = InvalidError("invalid IP address")
	ErrInvalidKeyLength             = InvalidError("invalid key length")
	ErrInvalidKeyType               = InvalidError("invalid key type")
	ErrInvalidNumber                = InvalidError("invalid number")
	ErrInvalidOperation             = InvalidError("invalid operation")
	ErrInvalidPageSize              = InvalidError("invalid page size")
	ErrInvalidPasswordLength        = InvalidError("invalid password length")
	ErrInvalidSaltLength            = InvalidError("invalid salt length")
	ErrInvalidSignature             = InvalidError("invalid signature")
	ErrInvalidStorageBackend        = InvalidError("invalid storage backend")
	ErrInvalidStructPointer         = InvalidError("invalid struct pointer")
	ErrKeyFileAlreadyExists         = ExistsError("key file already exists")
	ErrKeyFileNotFound              = NotFoundError("key file not found")
	ErrMissingParameters            = InvalidError("missing parameters")
	ErrMissingViewingKeySeed        = InvalidError("missing viewing key seed")
	ErrNegativeResult               = InvalidError("second argument is larger than the first, cannot calculate negative results")
	ErrNoConsole                    = ProcessError("no console")
	ErrNotFoundConfigFile           = NotFoundError("configuration file not found")
	ErrNotInitialised               = ProcessError("not initialised")
	ErrNotPrivateKey                = InvalidError("not private key")
	ErrNotPublicKey                 = InvalidError("not public key")
	ErrNumberTooLarge               = InvalidError("the input numbers are too large")
	ErrPasswordMismatch             = InvalidError("password mismatch")
	ErrProductTooLarge              = InvalidError("the multiplication result is too large")
	ErrRateLimiting                 = InvalidError("rate limiting")
	ErrRecordTruncated              = RecordError("record truncated")
	ErrRequestExpired               = InvalidError("request timestamp outside allowed window")
	ErrRequiredConnect              = InvalidError("connect is required")
	ErrRequiredDescription          = InvalidError("description is required")
	ErrRequiredIdentity             = InvalidError("identity is required")
	ErrRequiredNumbers              = InvalidError("numbers are required")
	ErrRequiredViewingKey           = InvalidError("viewing key is required")
	ErrUnauthorized                 = PermissionError("unauthorized")
	ErrUserSuppliedKeysDisabled     = PermissionError("user supplied viewing keys are disabled")
	ErrWrongNetworkForPrivateKey    = InvalidError("wrong network for private key")
	ErrWrongPassword                = PermissionError("wrong password")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string     { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e PermissionError) Error() string { return string(e) }
func (e ProcessError) Error() string    { return string(e) }
func (e RecordError) Error() string     { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool     { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool    { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool   { _, ok := e.(NotFoundError); return ok }
func IsErrPermission(e error) bool { _, ok := e.(PermissionError); return ok }
func IsErrProcess(e error) bool    { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool     { _, ok := e.(RecordError); return ok }
