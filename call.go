package tokenact

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Call represents a pending contract call ready for execution by a
// Dispatcher. Call is immutable - modifier methods return new instances.
type Call struct {
	contract *Contract
	method   abi.Method
	args     []any
	value    *big.Int // ETH attached to the transaction
}

// newCall creates a Call from a contract, method, and arguments.
// Arguments are normalized for ABI encoding against the method's inputs.
func newCall(contract *Contract, method abi.Method, rawArgs []any) (*Call, error) {
	if len(rawArgs) != len(method.Inputs) {
		return nil, &ArgumentError{
			Method: method.Name,
			Index:  len(rawArgs),
			Err:    ErrLengthMismatch,
		}
	}

	args := make([]any, len(rawArgs))
	for i, arg := range rawArgs {
		args[i] = normalizeArg(arg, method.Inputs[i].Type)
	}

	return &Call{
		contract: contract,
		method:   method,
		args:     args,
		value:    nil,
	}, nil
}

// Contract returns the target contract for this call.
func (c *Call) Contract() *Contract {
	return c.contract
}

// Method returns the ABI method for this call.
func (c *Call) Method() abi.Method {
	return c.method
}

// To returns the address the transaction will be sent to.
func (c *Call) To() common.Address {
	return c.contract.address
}

// Value returns the ETH value attached to this call, or nil.
func (c *Call) Value() *big.Int {
	return c.value
}

// WithValue returns a copy of the call with the given ETH value attached.
func (c *Call) WithValue(value *big.Int) *Call {
	clone := *c
	clone.value = value
	return &clone
}

// CallData ABI-encodes the call into selector-prefixed calldata.
func (c *Call) CallData() ([]byte, error) {
	data, err := c.contract.abi.Pack(c.method.Name, c.args...)
	if err != nil {
		return nil, &EncodingError{Value: c.args, Err: err}
	}
	return data, nil
}

// UnpackResult decodes raw return data from this call's method outputs.
func (c *Call) UnpackResult(data []byte) ([]any, error) {
	out, err := c.method.Outputs.Unpack(data)
	if err != nil {
		return nil, &EncodingError{Value: data, Err: err}
	}
	return out, nil
}

// normalizeArg handles common Go type conversions for ABI encoding.
func normalizeArg(value any, abiType abi.Type) any {
	// go-ethereum packs sub-64-bit integer types from the exact Go type,
	// only the big ones go through *big.Int.
	if (abiType.T != abi.IntTy && abiType.T != abi.UintTy) || abiType.Size <= 64 {
		return value
	}
	switch v := value.(type) {
	case int:
		return big.NewInt(int64(v))
	case int32:
		return big.NewInt(int64(v))
	case int64:
		return big.NewInt(v)
	case uint32:
		return new(big.Int).SetUint64(uint64(v))
	case uint64:
		return new(big.Int).SetUint64(v)
	default:
		return v
	}
}
