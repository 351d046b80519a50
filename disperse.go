package tokenact

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Disperse provides actions against a deployed Disperse utility contract
// for batch payouts.
type Disperse struct {
	d        *Dispatcher
	contract *Contract
}

// NewDisperse creates a Disperse wrapper for the contract at the given
// address.
func NewDisperse(d *Dispatcher, contract common.Address) *Disperse {
	return &Disperse{
		d:        d,
		contract: NewContract(contract, DisperseABI),
	}
}

// Address returns the disperse contract address.
func (dp *Disperse) Address() common.Address {
	return dp.contract.Address()
}

// DisperseEther sends ETH to several recipients in one transaction. The
// summed values are attached to the call as its transaction value.
func (dp *Disperse) DisperseEther(ctx context.Context, recipients []common.Address, values []*big.Int, opts ...ExecOption) (*Result, error) {
	total, err := checkPayout(recipients, values)
	if err != nil {
		return nil, err
	}

	call, err := dp.contract.Invoke("disperseEther", recipients, values)
	if err != nil {
		return nil, err
	}
	return dp.d.Execute(ctx, call.WithValue(total), opts...)
}

// DisperseToken sends an ERC-20 token to several recipients in one
// transaction. The sender must have approved the disperse contract for at
// least the summed values beforehand.
func (dp *Disperse) DisperseToken(ctx context.Context, token common.Address, recipients []common.Address, values []*big.Int, opts ...ExecOption) (*Result, error) {
	if err := checkAddress(token); err != nil {
		return nil, err
	}
	if _, err := checkPayout(recipients, values); err != nil {
		return nil, err
	}

	call, err := dp.contract.Invoke("disperseToken", token, recipients, values)
	if err != nil {
		return nil, err
	}
	return dp.d.Execute(ctx, call, opts...)
}

// checkPayout validates a recipients/values pairing and returns the summed
// payout.
func checkPayout(recipients []common.Address, values []*big.Int) (*big.Int, error) {
	if len(recipients) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(recipients) != len(values) {
		return nil, ErrLengthMismatch
	}

	total := new(big.Int)
	for i, recipient := range recipients {
		if err := checkAddress(recipient); err != nil {
			return nil, err
		}
		if values[i] == nil {
			return nil, ErrNilAmount
		}
		if values[i].Sign() <= 0 {
			return nil, ErrNonPositiveAmount
		}
		total.Add(total, values[i])
	}
	return total, nil
}
