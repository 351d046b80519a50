// Package tokenact is a thin action layer over an Ethereum RPC client for
// token operations against fixed contract surfaces.
package tokenact

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Sentinel errors for common failure conditions.
var (
	// ErrZeroAddress indicates a required address argument was the zero address.
	ErrZeroAddress = errors.New("tokenact: zero address")

	// ErrNilAmount indicates a required amount argument was nil.
	ErrNilAmount = errors.New("tokenact: nil amount")

	// ErrNegativeAmount indicates an amount argument was negative.
	ErrNegativeAmount = errors.New("tokenact: negative amount")

	// ErrNonPositiveAmount indicates an amount argument was zero or negative
	// where a strictly positive value is required.
	ErrNonPositiveAmount = errors.New("tokenact: amount must be positive")

	// ErrEmptyBatch indicates a batch operation was given nothing to do.
	ErrEmptyBatch = errors.New("tokenact: empty batch")

	// ErrLengthMismatch indicates paired batch arrays have different lengths.
	ErrLengthMismatch = errors.New("tokenact: array length mismatch")

	// ErrNoBackend indicates a provider bundle carries no RPC backend.
	ErrNoBackend = errors.New("tokenact: provider has no backend")

	// ErrNoSigner indicates a provider bundle carries no signing function.
	ErrNoSigner = errors.New("tokenact: provider has no signer")

	// ErrNoChainID indicates a provider bundle carries no chain ID.
	ErrNoChainID = errors.New("tokenact: provider has no chain ID")

	// ErrTxReverted indicates a transaction was mined but its execution
	// reverted (receipt status 0).
	ErrTxReverted = errors.New("tokenact: transaction reverted")

	// ErrTxNotMined indicates the receipt never showed up before the
	// awaiting context ended.
	ErrTxNotMined = errors.New("tokenact: transaction was not mined")
)

// MethodNotFoundError indicates the contract doesn't have the requested method.
type MethodNotFoundError struct {
	Contract common.Address
	Method   string
}

func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("tokenact: method %q not found in contract %s", e.Method, e.Contract.Hex())
}

// ArgumentError indicates an issue with a call argument.
type ArgumentError struct {
	Method string
	Index  int
	Err    error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("tokenact: argument %d for method %q: %v", e.Index, e.Method, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// CallError wraps a failure while building, sending or awaiting a contract call.
type CallError struct {
	Contract common.Address
	Method   string
	Stage    string // "build", "sign", "send", "await" or "call"
	Err      error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("tokenact: %s %s on %s: %v", e.Stage, e.Method, e.Contract.Hex(), e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// RevertError indicates a contract reverted, carrying the decoded reason
// when the contract supplied one via Error(string).
type RevertError struct {
	Reason string
	Err    error
}

func (e *RevertError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("tokenact: execution reverted: %s", e.Reason)
	}
	return "tokenact: execution reverted"
}

func (e *RevertError) Unwrap() error {
	return e.Err
}

// EncodingError indicates a failure during argument encoding.
type EncodingError struct {
	Value any
	Err   error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("tokenact: encoding error for value %T: %v", e.Value, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}
