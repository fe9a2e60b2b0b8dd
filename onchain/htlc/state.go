// Package htlc implements the validator-side HTLC state machine (§4.F): the
// deterministic logic every validator runs when processing create_htlc,
// claim_htlc and refund_htlc instructions. It operates over the explicit
// AccountStore/TokenLedger interfaces in ledger.go rather than the Solana
// runtime's account-info API, the way the teacher's solana-go package
// models on-chain account layouts as plain Go structs decoded with
// ag_binary (see programs/token/Burn.go's use of the same codec).
package htlc

import solana "github.com/atomic-swap/solana-htlc"

// Status mirrors the on-chain HtlcStatus enum (§3). Created is the only
// non-terminal state.
type Status uint8

const (
	StatusCreated Status = iota
	StatusClaimed
	StatusRefunded
)

func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "Created"
	case StatusClaimed:
		return "Claimed"
	case StatusRefunded:
		return "Refunded"
	default:
		return "Unknown"
	}
}

// Account is the on-chain HTLC record stored at the PDA
// find_program_address([b"htlc", order_id], HTLC_PROGRAM_ID) (§3).
type Account struct {
	Sender     solana.PublicKey
	Recipient  solana.PublicKey
	Amount     uint64
	Hashlock   [32]byte
	Timelock   int64
	OrderID    string
	Status     Status
	CreatedAt  int64
	ClaimedAt  *int64
	RefundedAt *int64
}

// Bump is threaded separately from Account because it is a PDA-derivation
// artifact, not swap state (§9: "implementers must thread the bump through
// the claim/refund paths").
type StoredHTLC struct {
	Account
	Bump uint8
}
