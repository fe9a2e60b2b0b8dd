package wallet

import (
	"context"
	"testing"

	"github.com/atomic-swap/solana-htlc/signer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWallet(t *testing.T, owner []byte) *Wallet {
	t.Helper()
	oracle, err := signer.NewLocalOracle([32]byte{0x42})
	require.NoError(t, err)
	return New(owner, oracle, signer.LocalDev)
}

func TestWallet_MainAndNonceAccountsDiffer(t *testing.T) {
	w := newTestWallet(t, []byte("owner-1"))

	main, err := w.MainAccount(context.Background())
	require.NoError(t, err)
	nonce, err := w.NonceAccount(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, main.PublicKey, nonce.PublicKey)
}

func TestWallet_RootPublicKeyMemoized(t *testing.T) {
	w := newTestWallet(t, []byte("owner-2"))

	ctx := context.Background()
	first, err := w.root(ctx)
	require.NoError(t, err)

	require.NotNil(t, w.rootPublicKey)
	second, err := w.root(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestWallet_DistinctOwnersDeriveDistinctAccounts(t *testing.T) {
	oracle, err := signer.NewLocalOracle([32]byte{0x42})
	require.NoError(t, err)

	walletA := New([]byte("owner-a"), oracle, signer.LocalDev)
	walletB := New([]byte("owner-b"), oracle, signer.LocalDev)

	accountA, err := walletA.MainAccount(context.Background())
	require.NoError(t, err)
	accountB, err := walletB.MainAccount(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, accountA.PublicKey, accountB.PublicKey)
}

func TestAccount_SignRoundTrips(t *testing.T) {
	oracle, err := signer.NewLocalOracle([32]byte{0x42})
	require.NoError(t, err)
	w := New([]byte("owner-3"), oracle, signer.LocalDev)

	account, err := w.MainAccount(context.Background())
	require.NoError(t, err)

	message := []byte("transaction message bytes")
	sig, err := account.Sign(context.Background(), oracle, message)
	require.NoError(t, err)
	assert.True(t, sig.Verify(account.PublicKey, message))
}
