package derivation

import (
	"testing"

	solana "github.com/atomic-swap/solana-htlc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoot(t *testing.T) ExtendedPublicKey {
	t.Helper()
	pub, _, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	return ExtendedPublicKey{PublicKey: pub, ChainCode: [32]byte{0x01, 0x02, 0x03}}
}

func TestDeriveChild_Deterministic(t *testing.T) {
	root := testRoot(t)
	childA, err := DeriveChild(root, []byte("owner-principal"))
	require.NoError(t, err)
	childB, err := DeriveChild(root, []byte("owner-principal"))
	require.NoError(t, err)
	assert.Equal(t, childA, childB)
}

func TestDeriveChild_DistinctComponentsDiverge(t *testing.T) {
	root := testRoot(t)
	mainAccount, err := DeriveChild(root, []byte("owner-principal"))
	require.NoError(t, err)
	nonceAccount, err := DeriveChild(root, []byte("owner-principal"+"nonce-account"))
	require.NoError(t, err)
	assert.NotEqual(t, mainAccount.PublicKey, nonceAccount.PublicKey)
}

func TestDeriveChild_LongComponentIsHashedNotTruncated(t *testing.T) {
	root := testRoot(t)
	short := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	long := append(append([]byte{}, short...), 0x00)
	childShort, err := DeriveChild(root, short)
	require.NoError(t, err)
	childLong, err := DeriveChild(root, long)
	require.NoError(t, err)
	assert.NotEqual(t, childShort.PublicKey, childLong.PublicKey)
}

func TestDerivePath_WalletAccounts(t *testing.T) {
	root := testRoot(t)
	principal := []byte{0x01, 0x02, 0x03, 0x04, 0x05}

	main, err := DerivePath(root, NewDerivationPath(principal))
	require.NoError(t, err)

	nonce, err := DerivePath(root, NewDerivationPath(append(append([]byte{}, principal...), []byte("nonce-account")...)))
	require.NoError(t, err)

	assert.NotEqual(t, main.PublicKey, nonce.PublicKey)
	assert.True(t, main.PublicKey.IsOnCurve())
	assert.True(t, nonce.PublicKey.IsOnCurve())
}

func TestDerivePathPrivate_MatchesPublicDerivation(t *testing.T) {
	var seed [32]byte
	seed[0] = 0x09
	root, err := NewRootExtendedPrivateKey(seed)
	require.NoError(t, err)

	rootPub := ExtendedPublicKey{PublicKey: root.PublicKey, ChainCode: root.ChainCode}
	path := NewDerivationPath([]byte("owner-principal"))

	wantPublic, err := DerivePath(rootPub, path)
	require.NoError(t, err)

	gotPrivate, err := DerivePathPrivate(root, path)
	require.NoError(t, err)

	assert.Equal(t, wantPublic.PublicKey, gotPrivate.PublicKey)
	assert.Equal(t, wantPublic.ChainCode, gotPrivate.ChainCode)
}

func TestExtendedPrivateKey_SignVerifiesAgainstDerivedPublicKey(t *testing.T) {
	var seed [32]byte
	seed[0] = 0x0a
	root, err := NewRootExtendedPrivateKey(seed)
	require.NoError(t, err)

	child, err := DeriveChildPrivate(root, []byte("owner-principal"))
	require.NoError(t, err)

	message := []byte("transaction message bytes")
	sig := child.Sign(message)
	assert.True(t, sig.Verify(child.PublicKey, message))
}
