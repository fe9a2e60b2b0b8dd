// Package signer models the external threshold-ed25519 signing service as
// an oracle: derive_public_key(path) and sign(path, message) -> signature
// (§4.D, §6, §9 — "The signer is not a library call — treat it as an RPC
// with its own failure modes"). The wallet façade is the only caller.
package signer

import (
	"context"
	"errors"

	solana "github.com/atomic-swap/solana-htlc"
	"github.com/atomic-swap/solana-htlc/derivation"
)

// KeyName selects which oracle-managed root key to derive from, mirroring
// §6's ed25519_key_name configuration enum.
type KeyName string

const (
	LocalDev        KeyName = "dfx_test_key"
	MainnetTestKey1 KeyName = "test_key_1"
	MainnetProdKey1 KeyName = "key_1"
)

// ErrOracleUnavailable is surfaced when the oracle refuses or times out, per
// §7's Oracle error kind: "surfaced; no retry".
var ErrOracleUnavailable = errors.New("signer: oracle unavailable")

// Oracle is the interface the wallet façade depends on; production wiring
// talks to the threshold-signing canister/service over its own transport,
// out of scope here (§1's Out-of-scope list).
type Oracle interface {
	DerivePublicKey(ctx context.Context, keyName KeyName, path derivation.DerivationPath) (derivation.ExtendedPublicKey, error)
	Sign(ctx context.Context, keyName KeyName, path derivation.DerivationPath, message []byte) (solana.Signature, error)
}
