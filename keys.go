// Copyright 2021 github.com/gagliardetto
// This file has been modified by github.com/gagliardetto
//
// Copyright 2020 dfuse Platform Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package solana

import (
	"crypto"
	"crypto/ed25519"
	crypto_rand "crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

type PrivateKey []byte

func MustPrivateKeyFromBase58(in string) PrivateKey {
	out, err := PrivateKeyFromBase58(in)
	if err != nil {
		panic(err)
	}
	return out
}

func PrivateKeyFromBase58(privkey string) (PrivateKey, error) {
	res, err := base58.Decode(privkey)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (k PrivateKey) String() string {
	return base58.Encode(k)
}

func NewRandomPrivateKey() (PublicKey, PrivateKey, error) {
	pub, priv, err := ed25519.GenerateKey(crypto_rand.Reader)
	if err != nil {
		return PublicKey{}, nil, err
	}
	var publicKey PublicKey
	copy(publicKey[:], pub)
	return publicKey, PrivateKey(priv), nil
}

// PrivateKeyFromSeed deterministically expands a 32-byte seed into an
// ed25519 keypair. Used by the local development signer oracle, where key
// material must be reproducible across process restarts without a live
// threshold-signing service.
func PrivateKeyFromSeed(seed [32]byte) (PublicKey, PrivateKey, error) {
	priv := ed25519.NewKeyFromSeed(seed[:])
	var pub PublicKey
	copy(pub[:], priv.Public().(ed25519.PublicKey))
	return pub, PrivateKey(priv), nil
}

func (k PrivateKey) Sign(payload []byte) (Signature, error) {
	p := ed25519.PrivateKey(k)
	signData, err := p.Sign(crypto_rand.Reader, payload, crypto.Hash(0))
	if err != nil {
		return Signature{}, err
	}

	var signature Signature
	copy(signature[:], signData)

	return signature, nil
}

func (k PrivateKey) PublicKey() PublicKey {
	p := ed25519.PrivateKey(k)
	pub := p.Public().(ed25519.PublicKey)

	var publicKey PublicKey
	copy(publicKey[:], pub)

	return publicKey
}

type PublicKey [PublicKeyLength]byte

func PublicKeyFromBytes(in []byte) (out PublicKey) {
	byteCount := len(in)
	if byteCount == 0 {
		return
	}

	max := PublicKeyLength
	if byteCount < max {
		max = byteCount
	}

	copy(out[:], in[0:max])
	return
}

func MustPublicKeyFromBase58(in string) PublicKey {
	out, err := PublicKeyFromBase58(in)
	if err != nil {
		panic(err)
	}
	return out
}

func PublicKeyFromBase58(in string) (out PublicKey, err error) {
	val, err := base58.Decode(in)
	if err != nil {
		return out, fmt.Errorf("decode: %w", err)
	}

	if len(val) != PublicKeyLength {
		return out, fmt.Errorf("invalid length, expected %v, got %d", PublicKeyLength, len(val))
	}

	copy(out[:], val)
	return
}

func (p PublicKey) MarshalText() ([]byte, error) {
	return []byte(base58.Encode(p[:])), nil
}

func (p *PublicKey) UnmarshalText(data []byte) (err error) {
	*p, err = PublicKeyFromBase58(string(data))
	if err != nil {
		return fmt.Errorf("invalid public key %q: %w", data, err)
	}
	return
}

func (p PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(base58.Encode(p[:]))
}

func (p *PublicKey) UnmarshalJSON(data []byte) (err error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	*p, err = PublicKeyFromBase58(s)
	if err != nil {
		return fmt.Errorf("invalid public key %q: %w", s, err)
	}
	return
}

func (p PublicKey) Equals(pb PublicKey) bool {
	return p == pb
}

// ToPointer returns a pointer to the pubkey.
func (p PublicKey) ToPointer() *PublicKey {
	return &p
}

func (p PublicKey) Bytes() []byte {
	return p[:]
}

var zeroPublicKey = PublicKey{}

// IsZero returns whether the public key is the all-zero key.
// NOTE: the System Program public key is also the all-zero key.
func (p PublicKey) IsZero() bool {
	return p == zeroPublicKey
}

func (p PublicKey) String() string {
	return base58.Encode(p[:])
}

// IsOnCurve reports whether p decodes to a valid point on edwards25519,
// i.e. whether a private key could exist for it.
func (p PublicKey) IsOnCurve() bool {
	_, err := new(edwards25519.Point).SetBytes(p[:])
	return err == nil
}

type PublicKeySlice []PublicKey

// UniqueAppend appends the provided pubkey only if it is not
// already present in the slice.
// Returns true when the provided pubkey wasn't already present.
func (slice *PublicKeySlice) UniqueAppend(pubkey PublicKey) bool {
	if !slice.Has(pubkey) {
		slice.Append(pubkey)
		return true
	}
	return false
}

func (slice *PublicKeySlice) Append(pubkey PublicKey) {
	*slice = append(*slice, pubkey)
}

func (slice PublicKeySlice) Has(pubkey PublicKey) bool {
	for _, key := range slice {
		if key.Equals(pubkey) {
			return true
		}
	}
	return false
}

var nativeProgramIDs = PublicKeySlice{
	SystemProgramID,
	SysVarClockPubkey,
	SysVarRecentBlockHashesPubkey,
	SysVarRentPubkey,
}

// https://github.com/solana-labs/solana/blob/216983c50e0a618facc39aa07472ba6d23f1b33a/sdk/program/src/pubkey.rs#L372
func isNativeProgramID(key PublicKey) bool {
	return nativeProgramIDs.Has(key)
}

const (
	// Number of bytes in a pubkey.
	PublicKeyLength = 32
	// Maximum length of derived pubkey seed.
	MaxSeedLength = 32
	// Maximum number of seeds.
	MaxSeeds = 16
)

// PDA_MARKER is appended to the seed buffer before hashing, so that a
// program address can never collide with a valid ed25519 public key: see
// https://github.com/solana-labs/solana/blob/216983c50e0a618facc39aa07472ba6d23f1b33a/sdk/program/src/pubkey.rs#L204
const PDA_MARKER = "ProgramDerivedAddress"

// ErrNoValidBump is returned by FindProgramAddress when none of the 256
// candidate bump seeds yield an off-curve address. This is vanishingly
// unlikely for any real seed set.
var ErrNoValidBump = errors.New("unable to find a valid program address")

// CreateProgramAddress derives a program address deterministically from the
// given seeds and program id. It fails if the resulting hash happens to lie
// on the ed25519 curve, since only off-curve points have no corresponding
// private key.
func CreateProgramAddress(seeds [][]byte, programID PublicKey) (PublicKey, error) {
	if len(seeds) > MaxSeeds {
		return PublicKey{}, errors.New("max seed length exceeded")
	}

	for _, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return PublicKey{}, errors.New("max seed length exceeded")
		}
	}

	if isNativeProgramID(programID) {
		return PublicKey{}, fmt.Errorf("illegal owner: %s is a native program", programID)
	}

	buf := make([]byte, 0, 64*len(seeds)+PublicKeyLength+len(PDA_MARKER))
	for _, seed := range seeds {
		buf = append(buf, seed...)
	}

	buf = append(buf, programID[:]...)
	buf = append(buf, []byte(PDA_MARKER)...)
	hash := sha256.Sum256(buf)

	out := PublicKeyFromBytes(hash[:])
	if out.IsOnCurve() {
		return PublicKey{}, errors.New("invalid seeds; address must fall off the curve")
	}

	return out, nil
}

// FindProgramAddress iterates the bump seed from 255 downward and returns
// the address and bump of the first off-curve candidate. Per §3/§4.A of the
// HTLC address-derivation contract, this is the canonical (highest-bump) PDA
// for a given seed set.
func FindProgramAddress(seed [][]byte, programID PublicKey) (PublicKey, uint8, error) {
	bumpSeed := uint8(math.MaxUint8)
	for {
		address, err := CreateProgramAddress(append(append([][]byte{}, seed...), []byte{bumpSeed}), programID)
		if err == nil {
			return address, bumpSeed, nil
		}
		if bumpSeed == 0 {
			break
		}
		bumpSeed--
	}
	return PublicKey{}, 0, ErrNoValidBump
}

// FindAssociatedTokenAddress derives the SPL Associated Token Account address
// for (wallet, mint) under the given token program (legacy Token program or
// Token-2022), per §4.A.
func FindAssociatedTokenAddress(wallet, mint, tokenProgramID PublicKey) (PublicKey, uint8, error) {
	return FindProgramAddress([][]byte{
		wallet[:],
		tokenProgramID[:],
		mint[:],
	}, SPLAssociatedTokenAccountProgramID)
}

// FindHTLCAddress derives the PDA that stores an HTLC account for order_id,
// per the §3 data model: find_program_address([b"htlc", order_id], HTLC_PROGRAM_ID).
func FindHTLCAddress(orderID string, htlcProgramID PublicKey) (PublicKey, uint8, error) {
	return FindProgramAddress([][]byte{
		[]byte("htlc"),
		[]byte(orderID),
	}, htlcProgramID)
}
