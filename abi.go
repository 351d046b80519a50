package tokenact

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ParseABI parses a JSON ABI string into an abi.ABI.
func ParseABI(abiJSON string) (abi.ABI, error) {
	return abi.JSON(strings.NewReader(abiJSON))
}

// MustParseABI is like ParseABI but panics on error.
// Use only with compile-time constant ABI strings.
func MustParseABI(abiJSON string) abi.ABI {
	parsed, err := ParseABI(abiJSON)
	if err != nil {
		panic(err)
	}
	return parsed
}

// Parsed ABIs for the fixed contract surfaces this layer targets.
var (
	ERC20ABI     = MustParseABI(erc20ABIJSON)
	ERC721ABI    = MustParseABI(erc721ABIJSON)
	ERC1155ABI   = MustParseABI(erc1155ABIJSON)
	DisperseABI  = MustParseABI(disperseABIJSON)
	MigrationABI = MustParseABI(migrationABIJSON)
)

// Standard ERC-20 interface (EIP-20), write methods plus the reads the
// actions need.
//
// Function selectors:
//
//	balanceOf(address)   → 0x70a08231
//	allowance(a,a)       → 0xdd62ed3e
//	transfer(a,u256)     → 0xa9059cbb
//	approve(a,u256)      → 0x095ea7b3
const erc20ABIJSON = `[
	{
		"name": "balanceOf",
		"type": "function",
		"stateMutability": "view",
		"inputs": [
			{"name": "account", "type": "address"}
		],
		"outputs": [
			{"name": "", "type": "uint256"}
		]
	},
	{
		"name": "allowance",
		"type": "function",
		"stateMutability": "view",
		"inputs": [
			{"name": "owner", "type": "address"},
			{"name": "spender", "type": "address"}
		],
		"outputs": [
			{"name": "", "type": "uint256"}
		]
	},
	{
		"name": "transfer",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "to", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"outputs": [
			{"name": "", "type": "bool"}
		]
	},
	{
		"name": "approve",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "spender", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"outputs": [
			{"name": "", "type": "bool"}
		]
	}
]`

// ERC-721 (EIP-721) subset.
const erc721ABIJSON = `[
	{
		"name": "ownerOf",
		"type": "function",
		"stateMutability": "view",
		"inputs": [
			{"name": "tokenId", "type": "uint256"}
		],
		"outputs": [
			{"name": "", "type": "address"}
		]
	},
	{
		"name": "approve",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "to", "type": "address"},
			{"name": "tokenId", "type": "uint256"}
		],
		"outputs": []
	},
	{
		"name": "setApprovalForAll",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "operator", "type": "address"},
			{"name": "approved", "type": "bool"}
		],
		"outputs": []
	},
	{
		"name": "safeTransferFrom",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "from", "type": "address"},
			{"name": "to", "type": "address"},
			{"name": "tokenId", "type": "uint256"}
		],
		"outputs": []
	}
]`

// ERC-1155 (EIP-1155) subset.
const erc1155ABIJSON = `[
	{
		"name": "balanceOfBatch",
		"type": "function",
		"stateMutability": "view",
		"inputs": [
			{"name": "accounts", "type": "address[]"},
			{"name": "ids", "type": "uint256[]"}
		],
		"outputs": [
			{"name": "", "type": "uint256[]"}
		]
	},
	{
		"name": "isApprovedForAll",
		"type": "function",
		"stateMutability": "view",
		"inputs": [
			{"name": "account", "type": "address"},
			{"name": "operator", "type": "address"}
		],
		"outputs": [
			{"name": "", "type": "bool"}
		]
	},
	{
		"name": "setApprovalForAll",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "operator", "type": "address"},
			{"name": "approved", "type": "bool"}
		],
		"outputs": []
	},
	{
		"name": "safeTransferFrom",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "from", "type": "address"},
			{"name": "to", "type": "address"},
			{"name": "id", "type": "uint256"},
			{"name": "amount", "type": "uint256"},
			{"name": "data", "type": "bytes"}
		],
		"outputs": []
	},
	{
		"name": "safeBatchTransferFrom",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "from", "type": "address"},
			{"name": "to", "type": "address"},
			{"name": "ids", "type": "uint256[]"},
			{"name": "amounts", "type": "uint256[]"},
			{"name": "data", "type": "bytes"}
		],
		"outputs": []
	}
]`

// Disperse utility contract for batch payouts.
const disperseABIJSON = `[
	{
		"name": "disperseEther",
		"type": "function",
		"stateMutability": "payable",
		"inputs": [
			{"name": "recipients", "type": "address[]"},
			{"name": "values", "type": "uint256[]"}
		],
		"outputs": []
	},
	{
		"name": "disperseToken",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "token", "type": "address"},
			{"name": "recipients", "type": "address[]"},
			{"name": "values", "type": "uint256[]"}
		],
		"outputs": []
	}
]`

// Migration contract moving legacy ERC-1155 holdings to the new collection.
const migrationABIJSON = `[
	{
		"name": "migrate",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "ids", "type": "uint256[]"},
			{"name": "amounts", "type": "uint256[]"}
		],
		"outputs": []
	}
]`
