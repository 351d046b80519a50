package tokenact

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Migrator moves the dispatcher account's legacy ERC-1155 holdings through
// a migration contract. The migration contract burns (or escrows) the
// legacy tokens and mints their replacements; this wrapper only prepares
// the call.
type Migrator struct {
	d        *Dispatcher
	contract *Contract
	legacy   *ERC1155
}

// NewMigrator creates a Migrator for the migration contract and the legacy
// collection it migrates from.
func NewMigrator(d *Dispatcher, migration, legacyCollection common.Address) *Migrator {
	return &Migrator{
		d:        d,
		contract: NewContract(migration, MigrationABI),
		legacy:   NewERC1155(d, legacyCollection),
	}
}

// Address returns the migration contract address.
func (m *Migrator) Address() common.Address {
	return m.contract.Address()
}

// Legacy returns the wrapped legacy collection.
func (m *Migrator) Legacy() *ERC1155 {
	return m.legacy
}

// Migrate migrates the sender's holdings of the given ids. Current balances
// are read from the legacy collection and zero-balance ids are dropped, so
// the contract call only names tokens the sender actually holds.
// ErrEmptyBatch is returned when nothing is migratable. The sender must
// have approved the migration contract as an operator on the legacy
// collection beforehand.
func (m *Migrator) Migrate(ctx context.Context, ids []*big.Int, opts ...ExecOption) (*Result, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyBatch
	}

	account := m.d.Provider().Account
	owners := make([]common.Address, len(ids))
	for i := range owners {
		owners[i] = account
	}
	balances, err := m.legacy.BalanceOfBatch(ctx, owners, ids)
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

	call, err := m.contract.Invoke("migrate", keptIDs, keptAmounts)
	if err != nil {
		return nil, err
	}
	return m.d.Execute(ctx, call, opts...)
}
