// Package tokenact is a thin action layer over an Ethereum RPC client for
// token operations against fixed contract surfaces.
//
// Each action validates its inputs, builds a contract call and hands it to a
// shared Dispatcher that signs, broadcasts and awaits the transaction. The
// heavy lifting (nonce tracking, gas estimation, signing, receipt polling)
// happens in one place; action wrappers stay straight-line code.
//
// # Basic Usage
//
// Resolve a provider from a connector, create a dispatcher and act:
//
//	backend, _ := ethclient.Dial("https://rpc.example.org")
//	key, _ := crypto.HexToECDSA(senderKeyHex)
//
//	provider, err := tokenact.ResolveProvider(ctx, tokenact.NewKeyConnector(key, backend))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	d, _ := tokenact.NewDispatcher(provider)
//
//	token := tokenact.NewERC20(d, tokenAddr)
//	res, err := token.Transfer(ctx, recipient, big.NewInt(1e18))
//	if err != nil {
//	    log.Fatal(err) // bad input, nothing was sent
//	}
//	if !res.Success {
//	    log.Fatal(res.Err) // sent but failed or never confirmed
//	}
//
// # Contract Surfaces
//
// Ready-made wrappers cover the contracts the layer targets:
//
//   - ERC20: transfer, approve, balance and allowance reads
//   - ERC721: approve, setApprovalForAll, safeTransferFrom
//   - ERC1155: single and batch transfers, batch balance reads, and
//     TransferOwned which drops zero-balance ids before a batch transfer
//   - Disperse: batch ETH and token payouts via the Disperse utility contract
//   - Migrator: moves legacy ERC1155 holdings through a migration contract
//
// Anything else can be reached through Contract.Invoke and
// Dispatcher.Execute directly.
//
// # Transaction Lifecycle
//
// Execute reports progress through an optional status callback
// (StatusPending, StatusSubmitted, StatusMined, StatusConfirmed,
// StatusFailed). Validation problems surface as errors before anything is
// sent; failures after submission come back as a failed Result so callers
// always get a receipt or a cause through one path.
//
// Fee handling defaults to EIP-1559 dynamic fees and falls back to legacy
// gas pricing on chains without a base fee (or when forced with
// WithLegacyFallback).
package tokenact
