// Package wallet implements the per-owner account façade (§4.D): deriving
// the main account and durable-nonce account from a single owner principal
// and a root extended public key fetched lazily from the signer oracle.
// Grounded on original_source's SolanaWallet/SolanaAccount (solana_wallet.rs)
// for the derivation shape, reimplemented on the package's own Oracle
// interface instead of candid/IC-runtime plumbing.
package wallet

import (
	"context"
	"fmt"

	solana "github.com/atomic-swap/solana-htlc"
	"github.com/atomic-swap/solana-htlc/derivation"
	"github.com/atomic-swap/solana-htlc/signer"
)

// nonceAccountSuffix is appended to the owner's path to derive the durable
// nonce account, per §4.D: "the nonce account with path [P ++
// \"nonce-account\"]".
const nonceAccountSuffix = "nonce-account"

// Account is a derived (path, public key) pair capable of signing via the
// oracle, mirroring original_source's SolanaAccount.
type Account struct {
	PublicKey solana.PublicKey
	Path      derivation.DerivationPath

	keyName signer.KeyName
}

// Sign requests a signature for message from the oracle using this
// account's derivation path.
func (a Account) Sign(ctx context.Context, oracle signer.Oracle, message []byte) (solana.Signature, error) {
	return oracle.Sign(ctx, a.keyName, a.Path, message)
}

// Wallet derives and caches the two accounts a single owner principal needs
// (§4.D). The root extended public key is fetched lazily on first use and
// memoized for the process lifetime (§5, §9): concurrent first fills are
// benign since the derivation is deterministic.
type Wallet struct {
	owner   []byte
	oracle  signer.Oracle
	keyName signer.KeyName

	rootPublicKey *derivation.ExtendedPublicKey
}

// New creates a Wallet for owner (an opaque principal identifier, e.g. the
// coordinator's caller id) backed by oracle.
func New(owner []byte, oracle signer.Oracle, keyName signer.KeyName) *Wallet {
	return &Wallet{owner: owner, oracle: oracle, keyName: keyName}
}

// root lazily fetches and memoizes the root extended public key.
func (w *Wallet) root(ctx context.Context) (derivation.ExtendedPublicKey, error) {
	if w.rootPublicKey != nil {
		return *w.rootPublicKey, nil
	}
	root, err := w.oracle.DerivePublicKey(ctx, w.keyName, derivation.NewDerivationPath())
	if err != nil {
		return derivation.ExtendedPublicKey{}, fmt.Errorf("fetch root public key: %w", err)
	}
	// Plain, unguarded write with no compare-and-set (§5): writing the same
	// deterministic value twice under a benign race is safe.
	w.rootPublicKey = &root
	return root, nil
}

func (w *Wallet) deriveAccount(ctx context.Context, path derivation.DerivationPath) (Account, error) {
	root, err := w.root(ctx)
	if err != nil {
		return Account{}, err
	}
	ext, err := derivation.DerivePath(root, path)
	if err != nil {
		return Account{}, fmt.Errorf("derive account: %w", err)
	}
	return Account{PublicKey: ext.PublicKey, Path: path, keyName: w.keyName}, nil
}

// MainAccount derives the account at path [P] (§4.D).
func (w *Wallet) MainAccount(ctx context.Context) (Account, error) {
	return w.deriveAccount(ctx, derivation.NewDerivationPath(w.owner))
}

// NonceAccount derives the account at path [P ++ "nonce-account"] (§4.D).
func (w *Wallet) NonceAccount(ctx context.Context) (Account, error) {
	path := append(append([]byte{}, w.owner...), []byte(nonceAccountSuffix)...)
	return w.deriveAccount(ctx, derivation.NewDerivationPath(path))
}
