package tokenact

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Contract pairs a deployed contract address with its ABI and produces
// Call descriptors for its methods.
type Contract struct {
	address common.Address
	abi     abi.ABI
}

// NewContract creates a Contract wrapper for a deployed contract.
func NewContract(address common.Address, contractABI abi.ABI) *Contract {
	return &Contract{
		address: address,
		abi:     contractABI,
	}
}

// Address returns the contract address.
func (c *Contract) Address() common.Address {
	return c.address
}

// ABI returns the contract ABI.
func (c *Contract) ABI() abi.ABI {
	return c.abi
}

// Invoke creates a Call for the named method with the given arguments.
// Small Go integer types are widened to *big.Int where the ABI expects
// an integer type.
func (c *Contract) Invoke(methodName string, args ...any) (*Call, error) {
	method, ok := c.abi.Methods[methodName]
	if !ok {
		return nil, &MethodNotFoundError{Contract: c.address, Method: methodName}
	}

	return newCall(c, method, args)
}

// MustInvoke is like Invoke but panics on error.
func (c *Contract) MustInvoke(methodName string, args ...any) *Call {
	call, err := c.Invoke(methodName, args...)
	if err != nil {
		panic(err)
	}
	return call
}

// HasMethod returns true if the contract has a method with the given name.
func (c *Contract) HasMethod(methodName string) bool {
	_, ok := c.abi.Methods[methodName]
	return ok
}

// MustAddress parses a hex address, panicking on malformed input.
// Use only with compile-time constant addresses.
func MustAddress(hexAddr string) common.Address {
	if !common.IsHexAddress(hexAddr) {
		panic("tokenact: invalid address " + hexAddr)
	}
	return common.HexToAddress(hexAddr)
}

// MethodNames returns all method names in the contract ABI.
func (c *Contract) MethodNames() []string {
	names := make([]string, 0, len(c.abi.Methods))
	for name := range c.abi.Methods {
		names = append(names, name)
	}
	return names
}
