package tokenact

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ERC20 provides actions against a deployed ERC-20 token.
type ERC20 struct {
	d        *Dispatcher
	contract *Contract
}

// NewERC20 creates an ERC20 wrapper for the token at the given address.
func NewERC20(d *Dispatcher, token common.Address) *ERC20 {
	return &ERC20{
		d:        d,
		contract: NewContract(token, ERC20ABI),
	}
}

// Address returns the token contract address.
func (t *ERC20) Address() common.Address {
	return t.contract.Address()
}

// Transfer sends amount tokens from the dispatcher's account to the
// recipient.
func (t *ERC20) Transfer(ctx context.Context, to common.Address, amount *big.Int, opts ...ExecOption) (*Result, error) {
	if err := checkAddress(to); err != nil {
		return nil, err
	}
	if err := checkAmount(amount); err != nil {
		return nil, err
	}

	call, err := t.contract.Invoke("transfer", to, amount)
	if err != nil {
		return nil, err
	}
	return t.d.Execute(ctx, call, opts...)
}

// Approve lets spender move up to amount tokens on the sender's behalf.
// A zero amount revokes the approval.
func (t *ERC20) Approve(ctx context.Context, spender common.Address, amount *big.Int, opts ...ExecOption) (*Result, error) {
	if err := checkAddress(spender); err != nil {
		return nil, err
	}
	if err := checkAmount(amount); err != nil {
		return nil, err
	}

	call, err := t.contract.Invoke("approve", spender, amount)
	if err != nil {
		return nil, err
	}
	return t.d.Execute(ctx, call, opts...)
}

// BalanceOf returns the token balance of the given account.
func (t *ERC20) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	call, err := t.contract.Invoke("balanceOf", account)
	if err != nil {
		return nil, err
	}
	out, err := t.d.Query(ctx, call)
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// Allowance returns how much spender may still move on owner's behalf.
func (t *ERC20) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	call, err := t.contract.Invoke("allowance", owner, spender)
	if err != nil {
		return nil, err
	}
	out, err := t.d.Query(ctx, call)
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// checkAddress rejects the zero address.
func checkAddress(addr common.Address) error {
	if addr == (common.Address{}) {
		return ErrZeroAddress
	}
	return nil
}

// checkAmount rejects nil and negative amounts. Zero is allowed (approval
// revocation, dust cleanup).
func checkAmount(amount *big.Int) error {
	if amount == nil {
		return ErrNilAmount
	}
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	return nil
}
