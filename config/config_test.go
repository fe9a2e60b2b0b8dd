package config

import (
	"testing"

	solana "github.com/atomic-swap/solana-htlc"
	"github.com/atomic-swap/solana-htlc/signer"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	c := New()
	assert.Equal(t, Devnet, c.Network.Kind)
	assert.Equal(t, signer.LocalDev, c.Ed25519KeyName)
	assert.Equal(t, Finalized, c.CommitmentLevel)
	assert.Equal(t, solana.DefaultHTLCProgramID, c.HTLCProgramID)

	_, ok := c.CachedRootPublicKey()
	assert.False(t, ok)
}

func TestNew_Options(t *testing.T) {
	c := New(WithCommitmentLevel(Processed), WithKeyName(signer.MainnetProdKey1))
	assert.Equal(t, Processed, c.CommitmentLevel)
	assert.Equal(t, signer.MainnetProdKey1, c.Ed25519KeyName)
}

func TestFillRootPublicKey_Memoizes(t *testing.T) {
	c := New()
	pub, _, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	c.FillRootPublicKey(pub)
	got, ok := c.CachedRootPublicKey()
	require.True(t, ok)
	assert.Equal(t, pub, got)
}

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	BindFlags(v)

	c, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, Devnet, c.Network.Kind)
	assert.Equal(t, Finalized, c.CommitmentLevel)
}

func TestFromViper_RejectsUnknownNetwork(t *testing.T) {
	v := viper.New()
	BindFlags(v)
	v.Set("network", "testnet-nonexistent")

	_, err := FromViper(v)
	require.Error(t, err)
}
