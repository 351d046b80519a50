package tokenact

import (
	"time"

	"go.uber.org/zap"
)

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// ExecOption configures a single Execute call.
type ExecOption func(*execConfig)

// execConfig holds per-execution configuration.
type execConfig struct {
	status         StatusFunc
	gasLimit       uint64
	nonce          *uint64
	legacyFallback bool
}

// defaultExecConfig returns the default execution configuration.
func defaultExecConfig() *execConfig {
	return &execConfig{}
}

// report delivers an update to the status callback, if any.
func (c *execConfig) report(u Update) {
	if c.status != nil {
		c.status(u)
	}
}

// WithLogger sets the logger used by the dispatcher. The default is a nop
// logger.
func WithLogger(log *zap.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

// WithConfirmations sets how many blocks must bury a transaction before it
// counts as confirmed. Default is 1 (the mined block itself). Zero is
// treated as 1.
func WithConfirmations(n uint64) DispatcherOption {
	return func(d *Dispatcher) {
		if n == 0 {
			n = 1
		}
		d.confirmations = n
	}
}

// WithPollInterval sets the receipt/block polling interval.
// Default is 2 seconds.
func WithPollInterval(interval time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if interval > 0 {
			d.pollInterval = interval
		}
	}
}

// WithStatusFunc attaches a lifecycle callback to one execution.
func WithStatusFunc(fn StatusFunc) ExecOption {
	return func(c *execConfig) {
		c.status = fn
	}
}

// WithGasLimit pins the gas limit, skipping estimation.
func WithGasLimit(limit uint64) ExecOption {
	return func(c *execConfig) {
		c.gasLimit = limit
	}
}

// WithNonce pins the nonce, skipping the pending-nonce query. Useful for
// replacing a stuck transaction.
func WithNonce(nonce uint64) ExecOption {
	return func(c *execConfig) {
		c.nonce = &nonce
	}
}

// WithLegacyFallback forces legacy gas pricing even on chains that support
// dynamic fees.
func WithLegacyFallback() ExecOption {
	return func(c *execConfig) {
		c.legacyFallback = true
	}
}
