// Package system encodes the subset of the Solana System Program's
// instructions the transaction builder needs: transfer, create-account,
// initialize-nonce, and advance-nonce (§4.B), grounded on the instruction-
// builder idiom of programs/token/Burn.go (account-meta slice, Set*Account
// builders, EncodeToTree).
package system

import solana "github.com/atomic-swap/solana-htlc"

// Instruction discriminators, little-endian u32, matching the real System
// Program's instruction index (§4.B fixes Transfer=2 and AdvanceNonceAccount=4;
// CreateAccount=0 and InitializeNonceAccount=6 follow the same enum).
const (
	discrCreateAccount          uint32 = 0
	discrTransfer               uint32 = 2
	discrAdvanceNonceAccount    uint32 = 4
	discrInitializeNonceAccount uint32 = 6
)

// NonceAccountSize is the exact byte size of a durable-nonce account's data:
// version(4) + state(4) + authority(32) + blockhash(32) + fee_calculator(8).
const NonceAccountSize = 80

// DefaultNonceAccountRentLamports is the rent-exempt deposit used when
// creating a nonce account. original_source's create_nonce_account call
// uses this exact constant (src/backend/src/state.rs's caller, main.rs).
const DefaultNonceAccountRentLamports = 1_500_000

func programID() solana.PublicKey { return solana.SystemProgramID }
