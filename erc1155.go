package tokenact

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ERC1155 provides actions against a deployed ERC-1155 collection.
type ERC1155 struct {
	d        *Dispatcher
	contract *Contract
}

// NewERC1155 creates an ERC1155 wrapper for the collection at the given
// address.
func NewERC1155(d *Dispatcher, collection common.Address) *ERC1155 {
	return &ERC1155{
		d:        d,
		contract: NewContract(collection, ERC1155ABI),
	}
}

// Address returns the collection contract address.
func (t *ERC1155) Address() common.Address {
	return t.contract.Address()
}

// SetApprovalForAll grants or revokes operator rights over every token the
// sender owns in this collection.
func (t *ERC1155) SetApprovalForAll(ctx context.Context, operator common.Address, approved bool, opts ...ExecOption) (*Result, error) {
	if err := checkAddress(operator); err != nil {
		return nil, err
	}

	call, err := t.contract.Invoke("setApprovalForAll", operator, approved)
	if err != nil {
		return nil, err
	}
	return t.d.Execute(ctx, call, opts...)
}

// SafeTransferFrom moves amount units of one token id between accounts.
func (t *ERC1155) SafeTransferFrom(ctx context.Context, from, to common.Address, id, amount *big.Int, data []byte, opts ...ExecOption) (*Result, error) {
	if err := checkAddress(from); err != nil {
		return nil, err
	}
	if err := checkAddress(to); err != nil {
		return nil, err
	}
	if id == nil {
		return nil, ErrNilAmount
	}
	if amount == nil {
		return nil, ErrNilAmount
	}
	if amount.Sign() <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if data == nil {
		data = []byte{}
	}

	call, err := t.contract.Invoke("safeTransferFrom", from, to, id, amount, data)
	if err != nil {
		return nil, err
	}
	return t.d.Execute(ctx, call, opts...)
}

// SafeBatchTransferFrom moves several token ids between accounts in one
// transaction. ids and amounts must pair up one to one.
func (t *ERC1155) SafeBatchTransferFrom(ctx context.Context, from, to common.Address, ids, amounts []*big.Int, data []byte, opts ...ExecOption) (*Result, error) {
	if err := checkAddress(from); err != nil {
		return nil, err
	}
	if err := checkAddress(to); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(ids) != len(amounts) {
		return nil, ErrLengthMismatch
	}
	for _, amount := range amounts {
		if amount == nil {
			return nil, ErrNilAmount
		}
		if amount.Sign() <= 0 {
			return nil, ErrNonPositiveAmount
		}
	}
	if data == nil {
		data = []byte{}
	}

	call, err := t.contract.Invoke("safeBatchTransferFrom", from, to, ids, amounts, data)
	if err != nil {
		return nil, err
	}
	return t.d.Execute(ctx, call, opts...)
}

// TransferOwned transfers everything from owns of the given ids to the
// recipient. Balances are read via balanceOfBatch first and zero-balance
// ids are dropped, so the batch only carries tokens that actually move.
// ErrEmptyBatch is returned when nothing is left after filtering.
func (t *ERC1155) TransferOwned(ctx context.Context, from, to common.Address, ids []*big.Int, data []byte, opts ...ExecOption) (*Result, error) {
	if err := checkAddress(from); err != nil {
		return nil, err
	}
	if err := checkAddress(to); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrEmptyBatch
	}

	owners := make([]common.Address, len(ids))
	for i := range owners {
		owners[i] = from
	}
	balances, err := t.BalanceOfBatch(ctx, owners, ids)
	if err != nil {
		return nil, err
	}

	keptIDs := make([]*big.Int, 0, len(ids))
	keptAmounts := make([]*big.Int, 0, len(ids))
	for i, bal := range balances {
		if bal == nil || bal.Sign() <= 0 {
			continue
		}
		keptIDs = append(keptIDs, ids[i])
		keptAmounts = append(keptAmounts, bal)
	}
	if len(keptIDs) == 0 {
		return nil, ErrEmptyBatch
	}

	return t.SafeBatchTransferFrom(ctx, from, to, keptIDs, keptAmounts, data, opts...)
}

// BalanceOfBatch returns balances for owner/id pairs. owners and ids must
// pair up one to one.
func (t *ERC1155) BalanceOfBatch(ctx context.Context, owners []common.Address, ids []*big.Int) ([]*big.Int, error) {
	if len(owners) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(owners) != len(ids) {
		return nil, ErrLengthMismatch
	}

	call, err := t.contract.Invoke("balanceOfBatch", owners, ids)
	if err != nil {
		return nil, err
	}
	out, err := t.d.Query(ctx, call)
	if err != nil {
		return nil, err
	}
	balances := out[0].([]*big.Int)
	if len(balances) != len(ids) {
		return nil, &CallError{Contract: t.contract.Address(), Method: "balanceOfBatch", Stage: "call", Err: ErrLengthMismatch}
	}
	return balances, nil
}

// IsApprovedForAll reports whether operator may move account's tokens.
func (t *ERC1155) IsApprovedForAll(ctx context.Context, account, operator common.Address) (bool, error) {
	call, err := t.contract.Invoke("isApprovedForAll", account, operator)
	if err != nil {
		return false, err
	}
	out, err := t.d.Query(ctx, call)
	if err != nil {
		return false, err
	}
	return out[0].(bool), nil
}
