package tokenact

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ERC721 provides actions against a deployed ERC-721 collection.
type ERC721 struct {
	d        *Dispatcher
	contract *Contract
}

// NewERC721 creates an ERC721 wrapper for the collection at the given
// address.
func NewERC721(d *Dispatcher, collection common.Address) *ERC721 {
	return &ERC721{
		d:        d,
		contract: NewContract(collection, ERC721ABI),
	}
}

// Address returns the collection contract address.
func (t *ERC721) Address() common.Address {
	return t.contract.Address()
}

// Approve grants transfer rights for one token to the given address.
func (t *ERC721) Approve(ctx context.Context, to common.Address, tokenID *big.Int, opts ...ExecOption) (*Result, error) {
	if err := checkAddress(to); err != nil {
		return nil, err
	}
	if tokenID == nil {
		return nil, ErrNilAmount
	}

	call, err := t.contract.Invoke("approve", to, tokenID)
	if err != nil {
		return nil, err
	}
	return t.d.Execute(ctx, call, opts...)
}

// SetApprovalForAll grants or revokes operator rights over every token the
// sender owns in this collection.
func (t *ERC721) SetApprovalForAll(ctx context.Context, operator common.Address, approved bool, opts ...ExecOption) (*Result, error) {
	if err := checkAddress(operator); err != nil {
		return nil, err
	}

	call, err := t.contract.Invoke("setApprovalForAll", operator, approved)
	if err != nil {
		return nil, err
	}
	return t.d.Execute(ctx, call, opts...)
}

// SafeTransferFrom moves one token between accounts, with the receiver
// hook check performed by the contract.
func (t *ERC721) SafeTransferFrom(ctx context.Context, from, to common.Address, tokenID *big.Int, opts ...ExecOption) (*Result, error) {
	if err := checkAddress(from); err != nil {
		return nil, err
	}
	if err := checkAddress(to); err != nil {
		return nil, err
	}
	if tokenID == nil {
		return nil, ErrNilAmount
	}

	call, err := t.contract.Invoke("safeTransferFrom", from, to, tokenID)
	if err != nil {
		return nil, err
	}
	return t.d.Execute(ctx, call, opts...)
}

// OwnerOf returns the current owner of the given token.
func (t *ERC721) OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, error) {
	if tokenID == nil {
		return common.Address{}, ErrNilAmount
	}
	call, err := t.contract.Invoke("ownerOf", tokenID)
	if err != nil {
		return common.Address{}, err
	}
	out, err := t.d.Query(ctx, call)
	if err != nil {
		return common.Address{}, err
	}
	return out[0].(common.Address), nil
}
