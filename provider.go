package tokenact

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Backend is the narrow RPC client surface the dispatcher needs.
// *ethclient.Client satisfies it.
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// SignerFunc signs a transaction on behalf of the given account.
type SignerFunc func(account common.Address, tx *types.Transaction) (*types.Transaction, error)

// Provider bundles everything needed to act on a chain: its ID, the sender
// account, the RPC backend and a signing function.
type Provider struct {
	ChainID *big.Int
	Account common.Address
	Backend Backend
	Sign    SignerFunc
}

// validate checks the bundle is complete enough to dispatch transactions.
func (p *Provider) validate() error {
	if p.Backend == nil {
		return ErrNoBackend
	}
	if p.ChainID == nil || p.ChainID.Sign() <= 0 {
		return ErrNoChainID
	}
	if p.Account == (common.Address{}) {
		return ErrZeroAddress
	}
	if p.Sign == nil {
		return ErrNoSigner
	}
	return nil
}

// Connector turns some wallet representation into a Provider bundle.
type Connector interface {
	Connect(ctx context.Context) (*Provider, error)
}

// ResolveProvider resolves a connector into a validated Provider.
func ResolveProvider(ctx context.Context, c Connector) (*Provider, error) {
	p, err := c.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("tokenact: connect: %w", err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// KeyConnector is a Connector backed by an in-memory ECDSA private key.
type KeyConnector struct {
	key     *ecdsa.PrivateKey
	backend Backend
	chainID *big.Int
}

// NewKeyConnector creates a key-based connector. The chain ID is queried
// from the backend on Connect.
func NewKeyConnector(key *ecdsa.PrivateKey, backend Backend) *KeyConnector {
	return &KeyConnector{key: key, backend: backend}
}

// WithChainID pins the chain ID, skipping the ChainID query on Connect.
func (k *KeyConnector) WithChainID(chainID *big.Int) *KeyConnector {
	k.chainID = chainID
	return k
}

// Connect implements Connector.
func (k *KeyConnector) Connect(ctx context.Context) (*Provider, error) {
	if k.key == nil {
		return nil, ErrNoSigner
	}
	if k.backend == nil {
		return nil, ErrNoBackend
	}

	chainID := k.chainID
	if chainID == nil {
		var err error
		chainID, err = k.backend.ChainID(ctx)
		if err != nil {
			return nil, fmt.Errorf("tokenact: query chain id: %w", err)
		}
	}

	account := crypto.PubkeyToAddress(k.key.PublicKey)
	signer := types.LatestSignerForChainID(chainID)
	key := k.key

	return &Provider{
		ChainID: chainID,
		Account: account,
		Backend: k.backend,
		Sign: func(from common.Address, tx *types.Transaction) (*types.Transaction, error) {
			if from != account {
				return nil, fmt.Errorf("tokenact: unknown account %s", from.Hex())
			}
			return types.SignTx(tx, signer, key)
		},
	}, nil
}
