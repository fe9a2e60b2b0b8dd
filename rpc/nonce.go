package rpc

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"

	solana "github.com/atomic-swap/solana-htlc"
)

// NonceState mirrors the durable-nonce account's state field (§4.G).
type NonceState uint32

const (
	NonceStateUninitialized NonceState = iota
	NonceStateInitialized
)

// nonceAccountDataSize is version(4) + state(4) + authority(32) +
// blockhash(32) + fee_calculator(8), matching
// programs/system.NonceAccountSize.
const nonceAccountDataSize = 80

// NonceAccount is the decoded layout of a durable-nonce account's data
// (§4.G): {version, state, authority, blockhash, fee_calculator}.
type NonceAccount struct {
	Version              uint32
	State                NonceState
	Authority            solana.PublicKey
	Blockhash            solana.Hash
	FeeCalculator        FeeCalculator
}

// FeeCalculator mirrors the legacy per-signature fee schedule embedded in
// every nonce account, grounded on original_source's
// sol_rpc_client::nonce::nonce_from_account layout.
type FeeCalculator struct {
	LamportsPerSignature uint64
}

// ErrNonceNotInitialized is returned when a nonce account's stored state is
// not Initialized (§4.E step 3: "require state = Initialized").
var ErrNonceNotInitialized = errors.New("rpc: nonce account is not initialized")

// DecodeNonceAccount parses a getAccountInfo(encoding=base64) response's
// data field into the fixed nonce-account layout.
func DecodeNonceAccount(base64Data string) (*NonceAccount, error) {
	raw, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return nil, fmt.Errorf("decode base64 account data: %w", err)
	}
	if len(raw) != nonceAccountDataSize {
		return nil, fmt.Errorf("nonce account data is %d bytes, want %d", len(raw), nonceAccountDataSize)
	}

	acct := &NonceAccount{
		Version: binary.LittleEndian.Uint32(raw[0:4]),
		State:   NonceState(binary.LittleEndian.Uint32(raw[4:8])),
	}
	copy(acct.Authority[:], raw[8:40])
	copy(acct.Blockhash[:], raw[40:72])
	acct.FeeCalculator.LamportsPerSignature = binary.LittleEndian.Uint64(raw[72:80])

	if acct.State != NonceStateInitialized {
		return acct, ErrNonceNotInitialized
	}
	return acct, nil
}
