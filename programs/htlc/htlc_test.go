package htlc

import (
	"crypto/sha256"
	"testing"

	solana "github.com/atomic-swap/solana-htlc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	htlcProgramID = solana.DefaultHTLCProgramID
	sender        = solana.MustPublicKeyFromBase58("4wBqpZM9k69W87zdYXT2bRtLViWqTiJV3i2Kn9q7S6j")
	recipient     = solana.MustPublicKeyFromBase58("4wBqpZM9msxygzsdeLPq6Zw3LoiAxJk3GjtKPpqkcsi")
	mintUSDC      = solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
)

func TestCreateHTLC_Data(t *testing.T) {
	secret := [32]byte{0x00, 0x01, 0x02, 0x03}
	hashlock := sha256.Sum256(secret[:])

	inst, err := NewCreateHTLCInstruction(
		htlcProgramID, "swap-1", 1_000_000, hashlock, 1_999_999_999,
		sender, recipient, sender, mintUSDC, solana.TokenProgramID,
	)
	require.NoError(t, err)

	data, err := inst.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x00}, data[:4])
	assert.Equal(t, []byte{0x40, 0x42, 0x0f, 0x00, 0x00, 0x00, 0x00, 0x00}, data[4:12])
	assert.Equal(t, hashlock[:], data[12:44])
	assert.Equal(t, "swap-1", string(data[52:]))

	assert.True(t, inst.AccountMetaSlice.Get(1).IsSigner)
	assert.True(t, inst.AccountMetaSlice.Get(0).IsWritable)
	assert.False(t, inst.AccountMetaSlice.Get(2).IsSigner)
}

func TestCreateHTLC_RejectsMissingParams(t *testing.T) {
	inst := NewCreateHTLCInstructionBuilder(htlcProgramID).SetAmount(1)
	_, err := inst.Data()
	require.Error(t, err)
}

func TestClaimHTLC_Data(t *testing.T) {
	secret := [32]byte{0xAA}
	inst, err := NewClaimHTLCInstruction(htlcProgramID, "swap-1", secret, recipient, sender, recipient, mintUSDC, solana.TokenProgramID)
	require.NoError(t, err)

	data, err := inst.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x00, 0x00, 0x00}, data[:4])
	assert.Equal(t, secret[:], data[4:])
}

func TestRefundHTLC_Data(t *testing.T) {
	inst, err := NewRefundHTLCInstruction(htlcProgramID, "swap-1", sender, sender, sender, mintUSDC, solana.TokenProgramID)
	require.NoError(t, err)

	data, err := inst.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x03, 0x00, 0x00, 0x00}, data)
	assert.Equal(t, htlcProgramID, inst.ProgramID())
}

func TestCreateHTLC_PDADerivationMatchesOrderID(t *testing.T) {
	secret := [32]byte{}
	hashlock := sha256.Sum256(secret[:])

	instA, err := NewCreateHTLCInstruction(htlcProgramID, "swap-a", 1, hashlock, 1, sender, recipient, sender, mintUSDC, solana.TokenProgramID)
	require.NoError(t, err)
	instB, err := NewCreateHTLCInstruction(htlcProgramID, "swap-b", 1, hashlock, 1, sender, recipient, sender, mintUSDC, solana.TokenProgramID)
	require.NoError(t, err)

	assert.NotEqual(t, instA.AccountMetaSlice.Get(0).PublicKey, instB.AccountMetaSlice.Get(0).PublicKey)
}
