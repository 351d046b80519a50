package tokenact

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// fakeBackend is a scriptable Backend for tests. Zero value behaves like a
// healthy post-London chain with nothing mined yet.
type fakeBackend struct {
	chainID     *big.Int
	baseFee     *big.Int
	nonce       uint64
	blockNumber uint64
	gasEstimate uint64

	callFn      func(ethereum.CallMsg) ([]byte, error)
	estimateErr error
	sendErr     error
	headerErr   error
	receipt     *types.Receipt
	receiptErr  error

	sentTxs []*types.Transaction
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		chainID:     big.NewInt(1337),
		baseFee:     big.NewInt(1_000_000_000),
		blockNumber: 100,
		gasEstimate: 50_000,
	}
}

// withReceipt makes transactions mine instantly into the given block.
func (b *fakeBackend) withReceipt(status, block uint64) *fakeBackend {
	b.receipt = &types.Receipt{
		Status:      status,
		BlockNumber: new(big.Int).SetUint64(block),
		GasUsed:     21_000,
	}
	return b
}

func (b *fakeBackend) ChainID(ctx context.Context) (*big.Int, error) {
	return b.chainID, nil
}

func (b *fakeBackend) BlockNumber(ctx context.Context) (uint64, error) {
	n := b.blockNumber
	b.blockNumber++
	return n, nil
}

func (b *fakeBackend) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	if b.headerErr != nil {
		return nil, b.headerErr
	}
	return &types.Header{
		Number:  new(big.Int).SetUint64(b.blockNumber),
		BaseFee: b.baseFee,
	}, nil
}

func (b *fakeBackend) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	if b.callFn == nil {
		return nil, ethereum.NotFound
	}
	return b.callFn(call)
}

func (b *fakeBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return b.nonce, nil
}

func (b *fakeBackend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(2_000_000_000), nil
}

func (b *fakeBackend) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	return big.NewInt(100_000_000), nil
}

func (b *fakeBackend) EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error) {
	if b.estimateErr != nil {
		return 0, b.estimateErr
	}
	return b.gasEstimate, nil
}

func (b *fakeBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if b.sendErr != nil {
		return b.sendErr
	}
	b.sentTxs = append(b.sentTxs, tx)
	return nil
}

func (b *fakeBackend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	if b.receiptErr != nil {
		return nil, b.receiptErr
	}
	if b.receipt == nil {
		return nil, ethereum.NotFound
	}
	return b.receipt, nil
}

func (b *fakeBackend) lastTx(t *testing.T) *types.Transaction {
	t.Helper()
	if len(b.sentTxs) == 0 {
		t.Fatal("Expected a transaction to be sent")
	}
	return b.sentTxs[len(b.sentTxs)-1]
}

// newTestDispatcher wires a dispatcher to the fake backend through a real
// key-based provider.
func newTestDispatcher(t *testing.T, b *fakeBackend, opts ...DispatcherOption) *Dispatcher {
	t.Helper()

	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}
	provider, err := ResolveProvider(context.Background(), NewKeyConnector(key, b))
	if err != nil {
		t.Fatalf("ResolveProvider failed: %v", err)
	}

	opts = append([]DispatcherOption{WithPollInterval(time.Millisecond)}, opts...)
	d, err := NewDispatcher(provider, opts...)
	if err != nil {
		t.Fatalf("NewDispatcher failed: %v", err)
	}
	return d
}

// minedDispatcher is the common happy-path fixture: every transaction mines
// immediately and succeeds.
func minedDispatcher(t *testing.T) (*Dispatcher, *fakeBackend) {
	t.Helper()
	b := newFakeBackend().withReceipt(types.ReceiptStatusSuccessful, 100)
	return newTestDispatcher(t, b), b
}
