package signer

import (
	"context"
	"testing"

	"github.com/atomic-swap/solana-htlc/derivation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalOracle_DerivePublicKeyDeterministic(t *testing.T) {
	oracle, err := NewLocalOracle([32]byte{0x01})
	require.NoError(t, err)

	path := derivation.NewDerivationPath([]byte("owner-principal"))
	a, err := oracle.DerivePublicKey(context.Background(), LocalDev, path)
	require.NoError(t, err)
	b, err := oracle.DerivePublicKey(context.Background(), LocalDev, path)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestLocalOracle_DistinctPathsDiverge(t *testing.T) {
	oracle, err := NewLocalOracle([32]byte{0x01})
	require.NoError(t, err)

	main, err := oracle.DerivePublicKey(context.Background(), LocalDev, derivation.NewDerivationPath([]byte("P")))
	require.NoError(t, err)
	nonce, err := oracle.DerivePublicKey(context.Background(), LocalDev, derivation.NewDerivationPath([]byte("P"+"nonce-account")))
	require.NoError(t, err)
	assert.NotEqual(t, main.PublicKey, nonce.PublicKey)
}

func TestLocalOracle_SignVerifies(t *testing.T) {
	oracle, err := NewLocalOracle([32]byte{0x02})
	require.NoError(t, err)

	path := derivation.NewDerivationPath([]byte("owner-principal"))
	extPub, err := oracle.DerivePublicKey(context.Background(), LocalDev, path)
	require.NoError(t, err)

	message := []byte("sign me")
	sig, err := oracle.Sign(context.Background(), LocalDev, path, message)
	require.NoError(t, err)
	assert.True(t, sig.Verify(extPub.PublicKey, message))
}
