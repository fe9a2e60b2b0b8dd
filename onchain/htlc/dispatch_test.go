package htlc

import (
	"crypto/sha256"
	"encoding/binary"
	"testing"

	solana "github.com/atomic-swap/solana-htlc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeCreatePayload(amount uint64, hashlock [32]byte, timelock int64, orderID string) []byte {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, discriminatorCreate)
	amountBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(amountBytes, amount)
	data = append(data, amountBytes...)
	data = append(data, hashlock[:]...)
	timelockBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(timelockBytes, uint64(timelock))
	data = append(data, timelockBytes...)
	data = append(data, []byte(orderID)...)
	return data
}

func encodeClaimPayload(secret []byte) []byte {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, discriminatorClaim)
	return append(data, secret...)
}

func encodeRefundPayload() []byte {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, discriminatorRefund)
	return data
}

// Dispatch reproduces the create_htlc/claim_htlc/refund_htlc byte layouts
// programs/htlc's instruction builders produce (§4.B) and drives the same
// state machine CreateHTLC/ClaimHTLC/RefundHTLC do when called directly.
func TestDispatch_RoundTripsAllThreeInstructions(t *testing.T) {
	pda, sender, recipient, senderATA, htlcATA, recipientATA := testAccounts()
	store := NewMemoryAccountStore()
	ledger := NewMemoryTokenLedger()
	ledger.SetBalance(senderATA, 1_000_000)

	secret := [32]byte{0x05}
	hashlock := sha256.Sum256(secret[:])
	timelock := int64(1000)

	createAccounts := DispatchAccounts{
		Keys:    []solana.PublicKey{pda, sender, recipient, senderATA, htlcATA},
		Signers: map[solana.PublicKey]bool{sender: true},
	}
	require.NoError(t, Dispatch(store, ledger, encodeCreatePayload(1_000_000, hashlock, timelock, "swap-dispatch"), createAccounts, 255, 0))

	stored, ok := store.Get(pda)
	require.True(t, ok)
	assert.Equal(t, StatusCreated, stored.Status)
	assert.Equal(t, uint64(1_000_000), ledger.Balance(htlcATA))

	claimAccounts := DispatchAccounts{
		Keys:    []solana.PublicKey{pda, recipient, htlcATA, recipientATA},
		Signers: map[solana.PublicKey]bool{recipient: true},
	}
	require.NoError(t, Dispatch(store, ledger, encodeClaimPayload(secret[:]), claimAccounts, 0, timelock-1))

	stored, ok = store.Get(pda)
	require.True(t, ok)
	assert.Equal(t, StatusClaimed, stored.Status)
	assert.Equal(t, uint64(1_000_000), ledger.Balance(recipientATA))
}

func TestDispatch_RefundAfterTimelock(t *testing.T) {
	pda, sender, recipient, senderATA, htlcATA, _ := testAccounts()
	store := NewMemoryAccountStore()
	ledger := NewMemoryTokenLedger()
	ledger.SetBalance(senderATA, 1_000_000)

	hashlock := sha256.Sum256(make([]byte, 32))
	timelock := int64(100)

	createAccounts := DispatchAccounts{
		Keys:    []solana.PublicKey{pda, sender, recipient, senderATA, htlcATA},
		Signers: map[solana.PublicKey]bool{sender: true},
	}
	require.NoError(t, Dispatch(store, ledger, encodeCreatePayload(1_000_000, hashlock, timelock, "swap-refund-dispatch"), createAccounts, 255, 0))

	refundAccounts := DispatchAccounts{
		Keys:    []solana.PublicKey{pda, sender, htlcATA, senderATA},
		Signers: map[solana.PublicKey]bool{sender: true},
	}
	require.NoError(t, Dispatch(store, ledger, encodeRefundPayload(), refundAccounts, 0, timelock+1))

	stored, ok := store.Get(pda)
	require.True(t, ok)
	assert.Equal(t, StatusRefunded, stored.Status)
}

// Dispatch rejects a claim_htlc payload whose secret is not exactly 32
// bytes before it ever reaches the hashlock comparison (review: errors.go's
// ErrMalformedSecret must be reachable).
func TestDispatch_ClaimRejectsMalformedSecretLength(t *testing.T) {
	pda, sender, recipient, senderATA, htlcATA, recipientATA := testAccounts()
	store := NewMemoryAccountStore()
	ledger := NewMemoryTokenLedger()
	ledger.SetBalance(senderATA, 1_000_000)

	secret := [32]byte{0x06}
	hashlock := sha256.Sum256(secret[:])
	timelock := int64(1000)

	createAccounts := DispatchAccounts{
		Keys:    []solana.PublicKey{pda, sender, recipient, senderATA, htlcATA},
		Signers: map[solana.PublicKey]bool{sender: true},
	}
	require.NoError(t, Dispatch(store, ledger, encodeCreatePayload(1_000_000, hashlock, timelock, "swap-malformed"), createAccounts, 255, 0))

	claimAccounts := DispatchAccounts{
		Keys:    []solana.PublicKey{pda, recipient, htlcATA, recipientATA},
		Signers: map[solana.PublicKey]bool{recipient: true},
	}

	err := Dispatch(store, ledger, encodeClaimPayload(secret[:31]), claimAccounts, 0, timelock-1)
	require.ErrorIs(t, err, ErrMalformedSecret)

	err = Dispatch(store, ledger, encodeClaimPayload(append(secret[:], 0xFF)), claimAccounts, 0, timelock-1)
	require.ErrorIs(t, err, ErrMalformedSecret)

	stored, ok := store.Get(pda)
	require.True(t, ok)
	assert.Equal(t, StatusCreated, stored.Status, "a malformed claim must not mutate state")
}

func TestDispatch_RejectsUnknownDiscriminator(t *testing.T) {
	store := NewMemoryAccountStore()
	ledger := NewMemoryTokenLedger()

	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, 99)
	err := Dispatch(store, ledger, data, DispatchAccounts{}, 0, 0)
	require.Error(t, err)
}

func TestDispatch_RejectsTruncatedInstructionData(t *testing.T) {
	store := NewMemoryAccountStore()
	ledger := NewMemoryTokenLedger()

	err := Dispatch(store, ledger, []byte{0x01, 0x00}, DispatchAccounts{}, 0, 0)
	require.Error(t, err)
}
