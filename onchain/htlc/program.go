package htlc

import (
	"crypto/sha256"

	solana "github.com/atomic-swap/solana-htlc"
)

// CreateHTLCParams mirrors the create_htlc instruction's decoded payload
// plus the accounts the processor needs (§4.B/§4.F).
type CreateHTLCParams struct {
	OrderID        string
	Amount         uint64
	Hashlock       [32]byte
	Timelock       int64
	Sender         solana.PublicKey
	Recipient      solana.PublicKey
	SenderATA      solana.PublicKey
	HTLCPDA        solana.PublicKey
	HTLCATA        solana.PublicKey
	Bump           uint8
	SenderIsSigner bool
	Now            int64
}

// CreateHTLC performs §4.F's create_htlc transition: Uninitialized -> Created.
func CreateHTLC(store AccountStore, ledger TokenLedger, p CreateHTLCParams) error {
	if !p.SenderIsSigner {
		return newProgramError("MissingRequiredSignature", "sender must sign create_htlc")
	}
	if p.Timelock <= p.Now {
		return ErrInvalidTimelock
	}
	if _, exists := store.Get(p.HTLCPDA); exists {
		return ErrAccountAlreadyInitialized
	}

	if err := ledger.Transfer(p.SenderATA, p.HTLCATA, p.Amount); err != nil {
		return err
	}

	store.Put(p.HTLCPDA, &StoredHTLC{
		Account: Account{
			Sender:    p.Sender,
			Recipient: p.Recipient,
			Amount:    p.Amount,
			Hashlock:  p.Hashlock,
			Timelock:  p.Timelock,
			OrderID:   p.OrderID,
			Status:    StatusCreated,
			CreatedAt: p.Now,
		},
		Bump: p.Bump,
	})
	emitHtlcCreated(p.HTLCPDA, p)
	return nil
}

// ClaimHTLCParams mirrors the claim_htlc instruction's decoded payload plus
// accounts.
type ClaimHTLCParams struct {
	HTLCPDA      solana.PublicKey
	Secret       [32]byte
	HTLCATA      solana.PublicKey
	RecipientATA solana.PublicKey
	Now          int64
	// ClaimantIsSigner need only be true; invariant I5 notes the claimant is
	// not checked against the stored recipient — only the preimage and
	// accounts passed in matter, per §4.F and §9's Open Question resolution.
	ClaimantIsSigner bool
}

// ClaimHTLC performs §4.F's claim_htlc transition: Created -> Claimed.
func ClaimHTLC(store AccountStore, ledger TokenLedger, p ClaimHTLCParams) error {
	if !p.ClaimantIsSigner {
		return newProgramError("MissingRequiredSignature", "claimant must sign claim_htlc")
	}

	stored, exists := store.Get(p.HTLCPDA)
	if !exists {
		return ErrInvalidHtlcStatus
	}
	if stored.Status != StatusCreated {
		return ErrInvalidHtlcStatus
	}
	if p.Now >= stored.Timelock {
		return ErrHtlcExpired
	}
	if sha256.Sum256(p.Secret[:]) != stored.Hashlock {
		return ErrInvalidSecret
	}

	if err := ledger.Transfer(p.HTLCATA, p.RecipientATA, stored.Amount); err != nil {
		return err
	}

	stored.Status = StatusClaimed
	claimedAt := p.Now
	stored.ClaimedAt = &claimedAt
	store.Put(p.HTLCPDA, stored)
	emitHtlcClaimed(p.HTLCPDA, stored.Amount, p.Secret)
	return nil
}

// RefundHTLCParams mirrors the refund_htlc instruction's decoded payload
// plus accounts.
type RefundHTLCParams struct {
	HTLCPDA        solana.PublicKey
	HTLCATA        solana.PublicKey
	SenderATA      solana.PublicKey
	Now            int64
	SenderIsSigner bool
}

// RefundHTLC performs §4.F's refund_htlc transition: Created -> Refunded.
func RefundHTLC(store AccountStore, ledger TokenLedger, p RefundHTLCParams) error {
	if !p.SenderIsSigner {
		return newProgramError("MissingRequiredSignature", "sender must sign refund_htlc")
	}

	stored, exists := store.Get(p.HTLCPDA)
	if !exists {
		return ErrInvalidHtlcStatus
	}
	if stored.Status != StatusCreated {
		return ErrInvalidHtlcStatus
	}
	if p.Now < stored.Timelock {
		return ErrHtlcNotExpired
	}

	if err := ledger.Transfer(p.HTLCATA, p.SenderATA, stored.Amount); err != nil {
		return err
	}

	stored.Status = StatusRefunded
	refundedAt := p.Now
	stored.RefundedAt = &refundedAt
	store.Put(p.HTLCPDA, stored)
	emitHtlcRefunded(p.HTLCPDA, stored.Sender, stored.Amount)
	return nil
}
