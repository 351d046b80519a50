package tokenact

import (
	"errors"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestMethodNotFoundError(t *testing.T) {
	err := &MethodNotFoundError{
		Contract: testTokenAddr,
		Method:   "mint",
	}

	t.Run("mentions the method", func(t *testing.T) {
		if !strings.Contains(err.Error(), `"mint"`) {
			t.Errorf("Expected error to mention the method, got %s", err.Error())
		}
	})

	t.Run("mentions the contract", func(t *testing.T) {
		if !strings.Contains(err.Error(), testTokenAddr.Hex()) {
			t.Errorf("Expected error to mention the contract, got %s", err.Error())
		}
	})
}

func TestArgumentError(t *testing.T) {
	inner := errors.New("boom")
	err := &ArgumentError{Method: "transfer", Index: 1, Err: inner}

	t.Run("message includes index and method", func(t *testing.T) {
		msg := err.Error()
		if !strings.Contains(msg, "argument 1") || !strings.Contains(msg, `"transfer"`) {
			t.Errorf("Unexpected message: %s", msg)
		}
	})

	t.Run("unwraps", func(t *testing.T) {
		if !errors.Is(err, inner) {
			t.Error("Expected errors.Is to find the inner error")
		}
	})
}

func TestCallError(t *testing.T) {
	inner := errors.New("insufficient funds")
	err := &CallError{
		Contract: testTokenAddr,
		Method:   "transfer",
		Stage:    "send",
		Err:      inner,
	}

	t.Run("message includes stage, method and contract", func(t *testing.T) {
		msg := err.Error()
		for _, part := range []string{"send", "transfer", testTokenAddr.Hex()} {
			if !strings.Contains(msg, part) {
				t.Errorf("Expected message to contain %q, got %s", part, msg)
			}
		}
	})

	t.Run("unwraps", func(t *testing.T) {
		if !errors.Is(err, inner) {
			t.Error("Expected errors.Is to find the inner error")
		}
	})

	t.Run("sentinels survive wrapping", func(t *testing.T) {
		wrapped := &CallError{Contract: common.Address{1}, Method: "migrate", Stage: "await", Err: ErrTxReverted}
		if !errors.Is(wrapped, ErrTxReverted) {
			t.Error("Expected ErrTxReverted through CallError")
		}
	})
}

func TestRevertError(t *testing.T) {
	inner := errors.New("execution reverted")

	t.Run("with reason", func(t *testing.T) {
		err := &RevertError{Reason: "insufficient balance", Err: inner}
		if err.Error() != "tokenact: execution reverted: insufficient balance" {
			t.Errorf("Expected the reason in the message, got %s", err.Error())
		}
		if !errors.Is(err, inner) {
			t.Error("Expected errors.Is to find the inner error")
		}
	})

	t.Run("without reason", func(t *testing.T) {
		err := &RevertError{Err: inner}
		if err.Error() != "tokenact: execution reverted" {
			t.Errorf("Expected bare revert message, got %s", err.Error())
		}
	})
}

func TestEncodingError(t *testing.T) {
	inner := errors.New("abi: cannot use string")
	err := &EncodingError{Value: "oops", Err: inner}

	if !strings.Contains(err.Error(), "string") {
		t.Errorf("Expected message to mention the value type, got %s", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("Expected errors.Is to find the inner error")
	}
}

func TestSentinelMessages(t *testing.T) {
	sentinels := []error{
		ErrZeroAddress,
		ErrNilAmount,
		ErrNegativeAmount,
		ErrNonPositiveAmount,
		ErrEmptyBatch,
		ErrLengthMismatch,
		ErrNoBackend,
		ErrNoSigner,
		ErrNoChainID,
		ErrTxReverted,
		ErrTxNotMined,
	}
	for _, err := range sentinels {
		if !strings.HasPrefix(err.Error(), "tokenact: ") {
			t.Errorf("Expected %q to carry the package prefix", err.Error())
		}
	}
}
