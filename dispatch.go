package tokenact

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
)

// Status tracks a transaction through its lifecycle.
type Status uint8

const (
	// StatusPending means the transaction is being built and signed.
	StatusPending Status = iota

	// StatusSubmitted means the transaction was accepted by the RPC node.
	StatusSubmitted

	// StatusMined means a receipt exists for the transaction.
	StatusMined

	// StatusConfirmed means the configured confirmation depth was reached
	// and execution succeeded.
	StatusConfirmed

	// StatusFailed means the transaction failed at some stage after
	// validation.
	StatusFailed
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSubmitted:
		return "submitted"
	case StatusMined:
		return "mined"
	case StatusConfirmed:
		return "confirmed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Update is a lifecycle notification delivered to a status callback.
type Update struct {
	Status  Status
	TxHash  common.Hash
	Receipt *types.Receipt
	Err     error
}

// StatusFunc receives lifecycle updates for a transaction. Callbacks run
// synchronously on the dispatching goroutine and should return quickly.
type StatusFunc func(Update)

// Result is the outcome of an executed transaction. A false Success carries
// the cause in Err; Receipt is set whenever the transaction was mined,
// whether it succeeded or reverted.
type Result struct {
	Success bool
	TxHash  common.Hash
	Receipt *types.Receipt
	Err     error
}

// gasHeadroomPercent is added on top of the node's gas estimate.
const gasHeadroomPercent = 20

// Dispatcher executes contract calls for a provider: it builds, signs,
// broadcasts and awaits transactions, reporting progress through optional
// status callbacks. A Dispatcher is stateless between calls and safe for
// concurrent use.
type Dispatcher struct {
	provider      *Provider
	log           *zap.Logger
	confirmations uint64
	pollInterval  time.Duration
}

// NewDispatcher creates a Dispatcher for the given provider.
func NewDispatcher(p *Provider, opts ...DispatcherOption) (*Dispatcher, error) {
	if p == nil {
		return nil, ErrNoBackend
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	d := &Dispatcher{
		provider:      p,
		log:           zap.NewNop(),
		confirmations: 1,
		pollInterval:  2 * time.Second,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Provider returns the provider bundle this dispatcher acts for.
func (d *Dispatcher) Provider() *Provider {
	return d.provider
}

// Query performs a read-only eth_call for the given contract call and
// returns the unpacked outputs.
func (d *Dispatcher) Query(ctx context.Context, call *Call) ([]any, error) {
	data, err := call.CallData()
	if err != nil {
		return nil, err
	}

	to := call.To()
	raw, err := d.provider.Backend.CallContract(ctx, ethereum.CallMsg{
		From: d.provider.Account,
		To:   &to,
		Data: data,
	}, nil)
	if err != nil {
		return nil, &CallError{Contract: to, Method: call.Method().Name, Stage: "call", Err: decodeRevert(err)}
	}

	return call.UnpackResult(raw)
}

// decodeRevert inspects an RPC error for revert return data. When the node
// attached data and the contract supplied an Error(string) reason, the
// cause is wrapped in a RevertError carrying the decoded reason; errors
// without return data pass through unchanged.
func decodeRevert(err error) error {
	var de rpc.DataError
	if !errors.As(err, &de) || de.ErrorData() == nil {
		return err
	}
	if encoded, ok := de.ErrorData().(string); ok {
		if data, decErr := hexutil.Decode(encoded); decErr == nil {
			if reason, decErr := abi.UnpackRevert(data); decErr == nil {
				return &RevertError{Reason: reason, Err: err}
			}
		}
	}
	return &RevertError{Err: err}
}

// Execute builds, signs, broadcasts and awaits a contract call.
//
// Validation and encoding problems return an error before anything touches
// the network. Failures after that point - broadcast errors, reverts,
// confirmation timeouts - are reported through the status callback and come
// back as a failed Result with a nil error, so callers that fire
// transactions in sequence can treat the Result as the single source of
// truth.
func (d *Dispatcher) Execute(ctx context.Context, call *Call, opts ...ExecOption) (*Result, error) {
	cfg := defaultExecConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	data, err := call.CallData()
	if err != nil {
		return nil, err
	}

	to := call.To()
	method := call.Method().Name
	log := d.log.With(
		zap.String("contract", to.Hex()),
		zap.String("method", method),
	)

	fail := func(stage string, hash common.Hash, receipt *types.Receipt, cause error) *Result {
		err := &CallError{Contract: to, Method: method, Stage: stage, Err: cause}
		log.Warn("transaction failed", zap.String("stage", stage), zap.Error(cause))
		cfg.report(Update{Status: StatusFailed, TxHash: hash, Receipt: receipt, Err: err})
		return &Result{Success: false, TxHash: hash, Receipt: receipt, Err: err}
	}

	cfg.report(Update{Status: StatusPending})

	tx, err := d.buildTx(ctx, cfg, to, data, call.Value())
	if err != nil {
		return fail("build", common.Hash{}, nil, err), nil
	}

	signed, err := d.provider.Sign(d.provider.Account, tx)
	if err != nil {
		return fail("sign", common.Hash{}, nil, err), nil
	}

	hash := signed.Hash()
	if err := d.provider.Backend.SendTransaction(ctx, signed); err != nil {
		return fail("send", hash, nil, err), nil
	}
	log.Info("transaction submitted", zap.String("hash", hash.Hex()))
	cfg.report(Update{Status: StatusSubmitted, TxHash: hash})

	receipt, err := d.awaitReceipt(ctx, hash)
	if err != nil {
		return fail("await", hash, nil, err), nil
	}
	cfg.report(Update{Status: StatusMined, TxHash: hash, Receipt: receipt})

	if err := d.awaitConfirmations(ctx, receipt); err != nil {
		return fail("await", hash, receipt, err), nil
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return fail("await", hash, receipt, ErrTxReverted), nil
	}

	log.Info("transaction confirmed",
		zap.String("hash", hash.Hex()),
		zap.Uint64("block", receipt.BlockNumber.Uint64()),
		zap.Uint64("gasUsed", receipt.GasUsed),
	)
	cfg.report(Update{Status: StatusConfirmed, TxHash: hash, Receipt: receipt})

	return &Result{Success: true, TxHash: hash, Receipt: receipt}, nil
}

// buildTx assembles an unsigned transaction: nonce, gas limit with headroom
// and fee caps. EIP-1559 dynamic fees are used when the chain has a base
// fee, otherwise (or when forced via WithLegacyFallback) legacy gas pricing
// applies.
func (d *Dispatcher) buildTx(ctx context.Context, cfg *execConfig, to common.Address, data []byte, value *big.Int) (*types.Transaction, error) {
	backend := d.provider.Backend

	nonce := cfg.nonce
	if nonce == nil {
		n, err := backend.PendingNonceAt(ctx, d.provider.Account)
		if err != nil {
			return nil, err
		}
		nonce = &n
	}

	msg := ethereum.CallMsg{
		From:  d.provider.Account,
		To:    &to,
		Value: value,
		Data:  data,
	}

	gasLimit := cfg.gasLimit
	if gasLimit == 0 {
		estimate, err := backend.EstimateGas(ctx, msg)
		if err != nil {
			return nil, err
		}
		gasLimit = estimate + estimate*gasHeadroomPercent/100
	}

	legacy := cfg.legacyFallback
	var baseFee *big.Int
	if !legacy {
		head, err := backend.HeaderByNumber(ctx, nil)
		if err != nil {
			return nil, err
		}
		baseFee = head.BaseFee
		if baseFee == nil {
			// Pre-London chain, dynamic fees are not available.
			legacy = true
		}
	}

	if legacy {
		gasPrice, err := backend.SuggestGasPrice(ctx)
		if err != nil {
			return nil, err
		}
		return types.NewTx(&types.LegacyTx{
			Nonce:    *nonce,
			To:       &to,
			Value:    value,
			Gas:      gasLimit,
			GasPrice: gasPrice,
			Data:     data,
		}), nil
	}

	tip, err := backend.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, err
	}
	// Survive a doubling of the base fee while the tx is pending.
	feeCap := new(big.Int).Add(tip, new(big.Int).Mul(baseFee, big.NewInt(2)))

	return types.NewTx(&types.DynamicFeeTx{
		ChainID:   d.provider.ChainID,
		Nonce:     *nonce,
		To:        &to,
		Value:     value,
		Gas:       gasLimit,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Data:      data,
	}), nil
}

// awaitReceipt polls for the transaction receipt until the context ends.
func (d *Dispatcher) awaitReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := d.provider.Backend.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ErrTxNotMined
		case <-ticker.C:
		}
	}
}

// awaitConfirmations waits until the receipt's block is buried under the
// configured confirmation depth.
func (d *Dispatcher) awaitConfirmations(ctx context.Context, receipt *types.Receipt) error {
	if d.confirmations <= 1 {
		return nil
	}
	target := receipt.BlockNumber.Uint64() + d.confirmations - 1

	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		current, err := d.provider.Backend.BlockNumber(ctx)
		if err != nil {
			return err
		}
		if current >= target {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
