package signer

import (
	"context"
	"sync"

	solana "github.com/atomic-swap/solana-htlc"
	"github.com/atomic-swap/solana-htlc/derivation"
)

// LocalOracle is a deterministic, in-process stand-in for the threshold
// signer oracle, used by builder/wallet tests and LocalDev configuration.
// It implements the same BIP32-style derivation (§4.A, §9) the derivation
// package exposes publicly, but from the private side: every DerivePublicKey
// and Sign call for a given path is computed from one root extended private
// key, so the public key a caller derives locally via derivation.DerivePath
// always matches the key LocalOracle actually signs with for that path.
type LocalOracle struct {
	root derivation.ExtendedPrivateKey

	mu    sync.Mutex
	cache map[string]derivation.ExtendedPrivateKey
}

// NewLocalOracle creates a LocalOracle whose root keypair is the standard
// ed25519 expansion of rootSeed, deterministic across calls with the same
// seed so tests are reproducible.
func NewLocalOracle(rootSeed [32]byte) (*LocalOracle, error) {
	root, err := derivation.NewRootExtendedPrivateKey(rootSeed)
	if err != nil {
		return nil, err
	}
	return &LocalOracle{
		root:  root,
		cache: make(map[string]derivation.ExtendedPrivateKey),
	}, nil
}

func pathKey(path derivation.DerivationPath) string {
	var b []byte
	for _, c := range path {
		b = append(b, c...)
		b = append(b, 0x00)
	}
	return string(b)
}

func (o *LocalOracle) keyFor(path derivation.DerivationPath) (derivation.ExtendedPrivateKey, error) {
	if len(path) == 0 {
		return o.root, nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	k := pathKey(path)
	if ext, ok := o.cache[k]; ok {
		return ext, nil
	}

	ext, err := derivation.DerivePathPrivate(o.root, path)
	if err != nil {
		return derivation.ExtendedPrivateKey{}, err
	}
	o.cache[k] = ext
	return ext, nil
}

// DerivePublicKey returns the extended public key at path, derived from this
// oracle's root private key the same way derivation.DerivePath derives it
// from a root extended public key (§4.A): an empty path returns the root
// itself.
func (o *LocalOracle) DerivePublicKey(ctx context.Context, keyName KeyName, path derivation.DerivationPath) (derivation.ExtendedPublicKey, error) {
	select {
	case <-ctx.Done():
		return derivation.ExtendedPublicKey{}, ctx.Err()
	default:
	}
	ext, err := o.keyFor(path)
	if err != nil {
		return derivation.ExtendedPublicKey{}, err
	}
	return derivation.ExtendedPublicKey{PublicKey: ext.PublicKey, ChainCode: ext.ChainCode}, nil
}

// Sign derives the private key at path and signs message with it, per the
// oracle contract (§9). The signature verifies against the public key
// DerivePublicKey(path) reports, since both are derived by the same chain of
// HMAC-SHA512 steps from the root key.
func (o *LocalOracle) Sign(ctx context.Context, keyName KeyName, path derivation.DerivationPath, message []byte) (solana.Signature, error) {
	select {
	case <-ctx.Done():
		return solana.Signature{}, ctx.Err()
	default:
	}
	ext, err := o.keyFor(path)
	if err != nil {
		return solana.Signature{}, err
	}
	return ext.Sign(message), nil
}
