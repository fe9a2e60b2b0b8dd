// Package derivation implements the BIP32-style non-hardened ed25519 child
// key derivation the threshold signer oracle performs (§4.A, §9), so the
// off-chain builder can recompute account addresses locally without an
// oracle round trip for every query. Grounded on the teacher's use of
// filippo.io/edwards25519 for curve point arithmetic (keys.go's
// IsOnCurve), generalized here from membership-check-only to full point
// addition.
package derivation

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"errors"

	"filippo.io/edwards25519"

	solana "github.com/atomic-swap/solana-htlc"
)

// ErrInvalidDerivation is returned when a parent public key does not decode
// to a curve point or a derivation step produces the identity point. IL is
// clamped into a scalar before use, so no step is rejected for IL lying at
// or beyond the curve order.
var ErrInvalidDerivation = errors.New("derivation: invalid derivation step")

// maxPathComponent bounds direct (unhashed) path components; longer
// components are folded to this width via SHA-256, per §4.A's "Path
// components longer than 4 bytes are hashed to fit per the scheme used by
// the signer oracle".
const maxPathComponent = 4

// DerivationPath is an ordered sequence of path components, matching §3's
// "ordered sequence of byte-strings" data model.
type DerivationPath [][]byte

// NewDerivationPath builds a path from raw byte-string components.
func NewDerivationPath(components ...[]byte) DerivationPath {
	return DerivationPath(components)
}

// ExtendedPublicKey is a root or derived public key paired with its chain
// code (§3).
type ExtendedPublicKey struct {
	PublicKey solana.PublicKey
	ChainCode [32]byte
}

// normalizeComponent hashes components longer than maxPathComponent down to
// exactly maxPathComponent bytes, and left-pads shorter ones with zeros, so
// every HMAC input has a fixed-width index segment regardless of the
// caller's path component length (e.g. the literal "nonce-account" suffix
// used by the wallet façade, §4.D).
func normalizeComponent(component []byte) [maxPathComponent]byte {
	var out [maxPathComponent]byte
	if len(component) <= maxPathComponent {
		copy(out[maxPathComponent-len(component):], component)
		return out
	}
	h := sha256.Sum256(component)
	copy(out[:], h[:maxPathComponent])
	return out
}

// DeriveChild performs one non-hardened derivation step per §4.A: the child
// chain code and public key come from HMAC-SHA512(chain_code, 0x02 ||
// parent_pub || component) split IL|IR, with child_pub = parent_pub + IL·G,
// where IL is first clamped into a scalar.
func DeriveChild(parent ExtendedPublicKey, component []byte) (ExtendedPublicKey, error) {
	normalized := normalizeComponent(component)

	mac := hmac.New(sha512.New, parent.ChainCode[:])
	mac.Write([]byte{0x02})
	mac.Write(parent.PublicKey[:])
	mac.Write(normalized[:])
	sum := mac.Sum(nil)

	il, ir := sum[:32], sum[32:]

	scalar, err := edwards25519.NewScalar().SetBytesWithClamping(il)
	if err != nil {
		return ExtendedPublicKey{}, ErrInvalidDerivation
	}

	parentPoint, err := new(edwards25519.Point).SetBytes(parent.PublicKey[:])
	if err != nil {
		return ExtendedPublicKey{}, ErrInvalidDerivation
	}

	childPoint := new(edwards25519.Point).ScalarBaseMult(scalar)
	childPoint = childPoint.Add(childPoint, parentPoint)

	if childPoint.Equal(edwards25519.NewIdentityPoint()) == 1 {
		return ExtendedPublicKey{}, ErrInvalidDerivation
	}

	var childChainCode [32]byte
	copy(childChainCode[:], ir)

	var childPub solana.PublicKey
	copy(childPub[:], childPoint.Bytes())

	return ExtendedPublicKey{PublicKey: childPub, ChainCode: childChainCode}, nil
}

// DerivePath applies DeriveChild once per path component, in order.
func DerivePath(root ExtendedPublicKey, path DerivationPath) (ExtendedPublicKey, error) {
	current := root
	for _, component := range path {
		var err error
		current, err = DeriveChild(current, component)
		if err != nil {
			return ExtendedPublicKey{}, err
		}
	}
	return current, nil
}

// ExtendedPrivateKey is the private-scalar counterpart of ExtendedPublicKey,
// held by the signer oracle side of the derivation contract (§9). Prefix is
// the EdDSA nonce-generation seed (RFC 8032 "prefix"), carried alongside the
// scalar and chain code so every derived key can sign without reducing back
// to a crypto/ed25519 seed, which a derived scalar is not.
type ExtendedPrivateKey struct {
	Scalar    edwards25519.Scalar
	Prefix    [32]byte
	ChainCode [32]byte
	PublicKey solana.PublicKey
}

// NewRootExtendedPrivateKey expands rootSeed into a root extended private
// key the same way crypto/ed25519 expands a seed (SHA-512, clamp the first
// half into a scalar, keep the second half as the nonce prefix), using
// rootSeed itself as the root chain code so the resulting public key and
// chain code match NewLocalOracle's existing ExtendedPublicKey for the empty
// path.
func NewRootExtendedPrivateKey(rootSeed [32]byte) (ExtendedPrivateKey, error) {
	h := sha512.Sum512(rootSeed[:])

	scalar, err := edwards25519.NewScalar().SetBytesWithClamping(h[:32])
	if err != nil {
		return ExtendedPrivateKey{}, ErrInvalidDerivation
	}

	var prefix [32]byte
	copy(prefix[:], h[32:])

	point := new(edwards25519.Point).ScalarBaseMult(scalar)
	var pub solana.PublicKey
	copy(pub[:], point.Bytes())

	return ExtendedPrivateKey{
		Scalar:    *scalar,
		Prefix:    prefix,
		ChainCode: rootSeed,
		PublicKey: pub,
	}, nil
}

// DeriveChildPrivate performs the private-side counterpart of DeriveChild:
// the same IL, IR split drives the scalar delta and new chain code (so the
// derived public key matches DeriveChild's), and a second, independently
// tagged HMAC output becomes the child's nonce prefix.
func DeriveChildPrivate(parent ExtendedPrivateKey, component []byte) (ExtendedPrivateKey, error) {
	normalized := normalizeComponent(component)

	parentPoint := new(edwards25519.Point).ScalarBaseMult(&parent.Scalar)
	var parentPub solana.PublicKey
	copy(parentPub[:], parentPoint.Bytes())

	mac := hmac.New(sha512.New, parent.ChainCode[:])
	mac.Write([]byte{0x02})
	mac.Write(parentPub[:])
	mac.Write(normalized[:])
	sum := mac.Sum(nil)
	il, ir := sum[:32], sum[32:]

	delta, err := edwards25519.NewScalar().SetBytesWithClamping(il)
	if err != nil {
		return ExtendedPrivateKey{}, ErrInvalidDerivation
	}

	childScalar := edwards25519.NewScalar().Add(&parent.Scalar, delta)
	childPoint := new(edwards25519.Point).ScalarBaseMult(childScalar)
	if childPoint.Equal(edwards25519.NewIdentityPoint()) == 1 {
		return ExtendedPrivateKey{}, ErrInvalidDerivation
	}

	prefixMac := hmac.New(sha512.New, parent.ChainCode[:])
	prefixMac.Write([]byte{0x03})
	prefixMac.Write(parentPub[:])
	prefixMac.Write(normalized[:])
	prefixSum := prefixMac.Sum(nil)
	var childPrefix [32]byte
	copy(childPrefix[:], prefixSum[:32])

	var childChainCode [32]byte
	copy(childChainCode[:], ir)

	var childPub solana.PublicKey
	copy(childPub[:], childPoint.Bytes())

	return ExtendedPrivateKey{
		Scalar:    *childScalar,
		Prefix:    childPrefix,
		ChainCode: childChainCode,
		PublicKey: childPub,
	}, nil
}

// DerivePathPrivate applies DeriveChildPrivate once per path component, in
// order, mirroring DerivePath on the private side.
func DerivePathPrivate(root ExtendedPrivateKey, path DerivationPath) (ExtendedPrivateKey, error) {
	current := root
	for _, component := range path {
		var err error
		current, err = DeriveChildPrivate(current, component)
		if err != nil {
			return ExtendedPrivateKey{}, err
		}
	}
	return current, nil
}

// Sign produces an RFC 8032 EdDSA signature over message using the key's
// derived scalar and prefix directly, since a BIP32-derived scalar is not a
// valid crypto/ed25519 seed: R = [H(prefix||message)]B, S = r + H(R||A||
// message)*scalar, matching the verification equation crypto/ed25519.Verify
// checks against PublicKey.
func (k ExtendedPrivateKey) Sign(message []byte) solana.Signature {
	nonceDigest := sha512.New()
	nonceDigest.Write(k.Prefix[:])
	nonceDigest.Write(message)
	// A sha512.Sum is always exactly 64 bytes, so SetUniformBytes cannot
	// fail here.
	r, _ := edwards25519.NewScalar().SetUniformBytes(nonceDigest.Sum(nil))

	R := new(edwards25519.Point).ScalarBaseMult(r)

	challengeDigest := sha512.New()
	challengeDigest.Write(R.Bytes())
	challengeDigest.Write(k.PublicKey[:])
	challengeDigest.Write(message)
	challenge, _ := edwards25519.NewScalar().SetUniformBytes(challengeDigest.Sum(nil))

	s := edwards25519.NewScalar().MultiplyAdd(challenge, &k.Scalar, r)

	var sig solana.Signature
	copy(sig[:32], R.Bytes())
	copy(sig[32:], s.Bytes())
	return sig
}
