package system

import (
	"testing"

	solana "github.com/atomic-swap/solana-htlc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	payer     = solana.MustPublicKeyFromBase58("4wBqpZM9k69W87zdYXT2bRtLViWqTiJV3i2Kn9q7S6j")
	nonceAcct = solana.MustPublicKeyFromBase58("4wBqpZM9msxygzsdeLPq6Zw3LoiAxJk3GjtKPpqkcsi")
)

func TestTransfer_Data(t *testing.T) {
	inst := NewTransferInstruction(payer, nonceAcct, 5_000)
	data, err := inst.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x00, 0x00, 0x00}, data[:4])
	assert.Len(t, data, 12)
	assert.Equal(t, solana.SystemProgramID, inst.ProgramID())
	assert.True(t, inst.AccountMetaSlice.Get(0).IsSigner)
	assert.False(t, inst.AccountMetaSlice.Get(1).IsSigner)
}

func TestCreateAccount_Data(t *testing.T) {
	inst := NewCreateAccountInstruction(payer, nonceAcct, DefaultNonceAccountRentLamports, NonceAccountSize, solana.SystemProgramID)
	data, err := inst.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x00}, data[:4])
	assert.Len(t, data, 4+8+8+32)
	assert.True(t, inst.AccountMetaSlice.Get(0).IsSigner)
	assert.True(t, inst.AccountMetaSlice.Get(1).IsSigner)
}

func TestInitializeNonceAccount_Data(t *testing.T) {
	inst := NewInitializeNonceAccountInstruction(nonceAcct, payer)
	data, err := inst.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x06, 0x00, 0x00, 0x00}, data[:4])
	assert.Equal(t, payer[:], data[4:])
	assert.Equal(t, solana.SysVarRecentBlockHashesPubkey, inst.AccountMetaSlice.Get(1).PublicKey)
	assert.Equal(t, solana.SysVarRentPubkey, inst.AccountMetaSlice.Get(2).PublicKey)
}

func TestAdvanceNonceAccount_Data(t *testing.T) {
	inst := NewAdvanceNonceAccountInstruction(nonceAcct, payer)
	data, err := inst.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0x00, 0x00, 0x00}, data)
	assert.True(t, inst.AccountMetaSlice.Get(2).IsSigner)
	assert.False(t, inst.AccountMetaSlice.Get(2).IsWritable)
}

func TestAdvanceNonceAccount_RejectsNonSignerAuthority(t *testing.T) {
	inst := NewAdvanceNonceAccountInstructionBuilder().SetNonceAccount(nonceAcct)
	inst.AccountMetaSlice[2] = solana.Meta(payer)
	_, err := inst.Data()
	require.Error(t, err)
}
