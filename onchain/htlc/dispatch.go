package htlc

import (
	"encoding/binary"
	"fmt"

	solana "github.com/atomic-swap/solana-htlc"
)

// Instruction discriminators, little-endian u32 at data[0:4], matching
// programs/htlc's builder-side discrCreateHTLC/discrClaimHTLC/discrRefundHTLC
// byte-exactly (§4.B).
const (
	discriminatorCreate uint32 = 1
	discriminatorClaim  uint32 = 2
	discriminatorRefund uint32 = 3
)

// DispatchAccounts is the account-info context a validator entrypoint would
// supply alongside raw instruction bytes: the accounts in the order each
// instruction's builder lists them (§4.B), plus which of them signed the
// transaction. Neither is recoverable from instruction data alone.
type DispatchAccounts struct {
	Keys    []solana.PublicKey
	Signers map[solana.PublicKey]bool
}

func (a DispatchAccounts) key(i int) (solana.PublicKey, error) {
	if i >= len(a.Keys) {
		return solana.PublicKey{}, fmt.Errorf("dispatch: account index %d out of range (have %d)", i, len(a.Keys))
	}
	return a.Keys[i], nil
}

func (a DispatchAccounts) isSigner(i int) bool {
	key, err := a.key(i)
	if err != nil {
		return false
	}
	return a.Signers[key]
}

// Dispatch decodes raw instruction data the way the validator entrypoint
// does before invoking CreateHTLC/ClaimHTLC/RefundHTLC (§4.F), reproducing
// the [discriminator, payload] shape programs/htlc's instruction builders
// produce byte-exactly, including the raw-entrypoint length checks the
// minimal (non-anchor) program variant performs on decode.
func Dispatch(store AccountStore, ledger TokenLedger, data []byte, accounts DispatchAccounts, bump uint8, now int64) error {
	if len(data) < 4 {
		return fmt.Errorf("dispatch: instruction data too short: got %d bytes, need at least 4", len(data))
	}
	discriminator := binary.LittleEndian.Uint32(data[0:4])
	payload := data[4:]

	switch discriminator {
	case discriminatorCreate:
		return dispatchCreate(store, ledger, payload, accounts, bump, now)
	case discriminatorClaim:
		return dispatchClaim(store, ledger, payload, accounts, now)
	case discriminatorRefund:
		return dispatchRefund(store, ledger, payload, accounts, now)
	default:
		return fmt.Errorf("dispatch: unknown instruction discriminator %d", discriminator)
	}
}

// dispatchCreate decodes amount:u64_le(8) ++ hashlock:[32] ++
// timelock:i64_le(8) ++ order_id:utf8(remaining), per §4.B.
func dispatchCreate(store AccountStore, ledger TokenLedger, payload []byte, accounts DispatchAccounts, bump uint8, now int64) error {
	const fixedLen = 8 + 32 + 8
	if len(payload) < fixedLen {
		return fmt.Errorf("dispatch: create_htlc payload too short: got %d bytes, need at least %d", len(payload), fixedLen)
	}

	amount := binary.LittleEndian.Uint64(payload[0:8])
	var hashlock [32]byte
	copy(hashlock[:], payload[8:40])
	timelock := int64(binary.LittleEndian.Uint64(payload[40:48]))
	orderID := string(payload[48:])

	htlcPDA, err := accounts.key(0)
	if err != nil {
		return err
	}
	sender, err := accounts.key(1)
	if err != nil {
		return err
	}
	recipient, err := accounts.key(2)
	if err != nil {
		return err
	}
	senderATA, err := accounts.key(3)
	if err != nil {
		return err
	}
	htlcATA, err := accounts.key(4)
	if err != nil {
		return err
	}

	return CreateHTLC(store, ledger, CreateHTLCParams{
		OrderID:        orderID,
		Amount:         amount,
		Hashlock:       hashlock,
		Timelock:       timelock,
		Sender:         sender,
		Recipient:      recipient,
		SenderATA:      senderATA,
		HTLCPDA:        htlcPDA,
		HTLCATA:        htlcATA,
		Bump:           bump,
		SenderIsSigner: accounts.isSigner(1),
		Now:            now,
	})
}

// dispatchClaim decodes secret:[32], per §4.B. The minimal program variant
// (original_source's minimal_htlc.rs) rejects any other payload length
// before the secret ever reaches the hashlock comparison.
func dispatchClaim(store AccountStore, ledger TokenLedger, payload []byte, accounts DispatchAccounts, now int64) error {
	if len(payload) != 32 {
		return ErrMalformedSecret
	}
	var secret [32]byte
	copy(secret[:], payload)

	htlcPDA, err := accounts.key(0)
	if err != nil {
		return err
	}
	htlcATA, err := accounts.key(2)
	if err != nil {
		return err
	}
	recipientATA, err := accounts.key(3)
	if err != nil {
		return err
	}

	return ClaimHTLC(store, ledger, ClaimHTLCParams{
		HTLCPDA:          htlcPDA,
		Secret:           secret,
		HTLCATA:          htlcATA,
		RecipientATA:     recipientATA,
		Now:              now,
		ClaimantIsSigner: accounts.isSigner(1),
	})
}

// dispatchRefund decodes the empty refund_htlc payload, per §4.B.
func dispatchRefund(store AccountStore, ledger TokenLedger, payload []byte, accounts DispatchAccounts, now int64) error {
	if len(payload) != 0 {
		return fmt.Errorf("dispatch: refund_htlc takes no payload, got %d bytes", len(payload))
	}

	htlcPDA, err := accounts.key(0)
	if err != nil {
		return err
	}
	htlcATA, err := accounts.key(2)
	if err != nil {
		return err
	}
	senderATA, err := accounts.key(3)
	if err != nil {
		return err
	}

	return RefundHTLC(store, ledger, RefundHTLCParams{
		HTLCPDA:        htlcPDA,
		HTLCATA:        htlcATA,
		SenderATA:      senderATA,
		Now:            now,
		SenderIsSigner: accounts.isSigner(1),
	})
}
