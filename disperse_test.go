package tokenact

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

var testDisperseAddr = common.HexToAddress("0x7777777777777777777777777777777777777777")

func TestDisperseEther(t *testing.T) {
	recipients := []common.Address{
		common.HexToAddress("0x2222222222222222222222222222222222222222"),
		common.HexToAddress("0x3333333333333333333333333333333333333333"),
	}
	values := []*big.Int{big.NewInt(100), big.NewInt(250)}

	t.Run("attaches summed value", func(t *testing.T) {
		d, b := minedDispatcher(t)
		dp := NewDisperse(d, testDisperseAddr)

		res, err := dp.DisperseEther(context.Background(), recipients, values)
		if err != nil {
			t.Fatalf("DisperseEther failed: %v", err)
		}
		if !res.Success {
			t.Fatalf("Expected success, got %v", res.Err)
		}

		tx := b.lastTx(t)
		if tx.Value().Cmp(big.NewInt(350)) != 0 {
			t.Errorf("Expected attached value 350, got %s", tx.Value())
		}

		want, _ := DisperseABI.Pack("disperseEther", recipients, values)
		if !bytes.Equal(tx.Data(), want) {
			t.Error("Expected disperseEther calldata on the wire")
		}
	})

	tests := []struct {
		name       string
		recipients []common.Address
		values     []*big.Int
		want       error
	}{
		{"empty batch", nil, nil, ErrEmptyBatch},
		{"length mismatch", recipients, values[:1], ErrLengthMismatch},
		{"zero recipient", []common.Address{{}}, values[:1], ErrZeroAddress},
		{"nil value", recipients, []*big.Int{big.NewInt(1), nil}, ErrNilAmount},
		{"zero value", recipients, []*big.Int{big.NewInt(1), big.NewInt(0)}, ErrNonPositiveAmount},
		{"negative value", recipients, []*big.Int{big.NewInt(1), big.NewInt(-5)}, ErrNonPositiveAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, b := minedDispatcher(t)
			dp := NewDisperse(d, testDisperseAddr)

			_, err := dp.DisperseEther(context.Background(), tt.recipients, tt.values)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
			if len(b.sentTxs) != 0 {
				t.Error("Expected nothing to be sent on validation failure")
			}
		})
	}
}

func TestDisperseToken(t *testing.T) {
	recipients := []common.Address{
		common.HexToAddress("0x2222222222222222222222222222222222222222"),
	}
	values := []*big.Int{big.NewInt(1000)}

	t.Run("no value attached", func(t *testing.T) {
		d, b := minedDispatcher(t)
		dp := NewDisperse(d, testDisperseAddr)

		res, err := dp.DisperseToken(context.Background(), testTokenAddr, recipients, values)
		if err != nil {
			t.Fatalf("DisperseToken failed: %v", err)
		}
		if !res.Success {
			t.Fatalf("Expected success, got %v", res.Err)
		}

		tx := b.lastTx(t)
		if tx.Value().Sign() != 0 {
			t.Errorf("Expected no attached value, got %s", tx.Value())
		}

		want, _ := DisperseABI.Pack("disperseToken", testTokenAddr, recipients, values)
		if !bytes.Equal(tx.Data(), want) {
			t.Error("Expected disperseToken calldata on the wire")
		}
	})

	t.Run("zero token address", func(t *testing.T) {
		d, _ := minedDispatcher(t)
		dp := NewDisperse(d, testDisperseAddr)

		_, err := dp.DisperseToken(context.Background(), common.Address{}, recipients, values)
		if !errors.Is(err, ErrZeroAddress) {
			t.Errorf("Expected ErrZeroAddress, got %v", err)
		}
	})

	t.Run("shares payout validation", func(t *testing.T) {
		d, _ := minedDispatcher(t)
		dp := NewDisperse(d, testDisperseAddr)

		_, err := dp.DisperseToken(context.Background(), testTokenAddr, nil, nil)
		if !errors.Is(err, ErrEmptyBatch) {
			t.Errorf("Expected ErrEmptyBatch, got %v", err)
		}
	})
}

func TestCheckPayout(t *testing.T) {
	recipients := []common.Address{{1}, {2}, {3}}
	values := []*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3)}

	total, err := checkPayout(recipients, values)
	if err != nil {
		t.Fatalf("checkPayout failed: %v", err)
	}
	if total.Cmp(big.NewInt(6)) != 0 {
		t.Errorf("Expected total 6, got %s", total)
	}
}
