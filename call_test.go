package tokenact

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestCallData(t *testing.T) {
	c := NewContract(testTokenAddr, ERC20ABI)
	to := common.HexToAddress("0x2222222222222222222222222222222222222222")
	amount := big.NewInt(12345)

	call, err := c.Invoke("transfer", to, amount)
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	data, err := call.CallData()
	if err != nil {
		t.Fatalf("CallData failed: %v", err)
	}

	want, err := ERC20ABI.Pack("transfer", to, amount)
	if err != nil {
		t.Fatalf("reference Pack failed: %v", err)
	}
	if !bytes.Equal(data, want) {
		t.Errorf("Expected calldata %x, got %x", want, data)
	}
}

func TestCallWithValue(t *testing.T) {
	c := NewContract(testTokenAddr, DisperseABI)
	call := c.MustInvoke("disperseEther",
		[]common.Address{{1}}, []*big.Int{big.NewInt(1)})

	t.Run("original has no value", func(t *testing.T) {
		if call.Value() != nil {
			t.Errorf("Expected nil value, got %s", call.Value())
		}
	})

	t.Run("returns new instance with value", func(t *testing.T) {
		withValue := call.WithValue(big.NewInt(999))
		if withValue == call {
			t.Error("Expected WithValue to return a new instance")
		}
		if withValue.Value().Cmp(big.NewInt(999)) != 0 {
			t.Errorf("Expected value 999, got %s", withValue.Value())
		}
		if call.Value() != nil {
			t.Error("Expected original call to be unchanged")
		}
	})
}

func TestCallNormalizesIntegers(t *testing.T) {
	c := NewContract(testTokenAddr, ERC20ABI)
	to := common.HexToAddress("0x2222222222222222222222222222222222222222")

	tests := []struct {
		name   string
		amount any
	}{
		{"int", int(42)},
		{"int64", int64(42)},
		{"uint64", uint64(42)},
		{"uint32", uint32(42)},
		{"big.Int", big.NewInt(42)},
	}
	want, _ := ERC20ABI.Pack("transfer", to, big.NewInt(42))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, err := c.Invoke("transfer", to, tt.amount)
			if err != nil {
				t.Fatalf("Invoke failed: %v", err)
			}
			data, err := call.CallData()
			if err != nil {
				t.Fatalf("CallData failed: %v", err)
			}
			if !bytes.Equal(data, want) {
				t.Errorf("Expected calldata %x, got %x", want, data)
			}
		})
	}
}

func TestCallDataBadArgument(t *testing.T) {
	c := NewContract(testTokenAddr, ERC20ABI)
	// string where an address is expected packs fine at Invoke time but
	// fails at encoding.
	call, err := c.Invoke("transfer", "not-an-address", big.NewInt(1))
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if _, err := call.CallData(); err == nil {
		t.Error("Expected encoding error for bad argument type")
	}
}

func TestUnpackResult(t *testing.T) {
	c := NewContract(testTokenAddr, ERC20ABI)
	call := c.MustInvoke("balanceOf", common.Address{1})

	raw, err := ERC20ABI.Methods["balanceOf"].Outputs.Pack(big.NewInt(777))
	if err != nil {
		t.Fatalf("reference Pack failed: %v", err)
	}

	out, err := call.UnpackResult(raw)
	if err != nil {
		t.Fatalf("UnpackResult failed: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("Expected 1 output, got %d", len(out))
	}
	if out[0].(*big.Int).Cmp(big.NewInt(777)) != 0 {
		t.Errorf("Expected 777, got %s", out[0])
	}

	t.Run("garbage data errors", func(t *testing.T) {
		if _, err := call.UnpackResult([]byte{1, 2, 3}); err == nil {
			t.Error("Expected error for truncated return data")
		}
	})
}
