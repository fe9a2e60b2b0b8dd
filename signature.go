package solana

import (
	"crypto/ed25519"
	"encoding/json"
	"fmt"

	"github.com/mr-tron/base58"
)

// Signature is a 64-byte ed25519 signature. Signature at index i of a
// Transaction covers the serialized message with the key of
// account_keys[i] (§3).
type Signature [64]byte

func SignatureFromBase58(in string) (out Signature, err error) {
	val, err := base58.Decode(in)
	if err != nil {
		return out, fmt.Errorf("decode: %w", err)
	}
	if len(val) != 64 {
		return out, fmt.Errorf("invalid signature length, expected 64, got %d", len(val))
	}
	copy(out[:], val)
	return
}

func MustSignatureFromBase58(in string) Signature {
	out, err := SignatureFromBase58(in)
	if err != nil {
		panic(err)
	}
	return out
}

func (s Signature) String() string {
	return base58.Encode(s[:])
}

func (s Signature) Verify(publicKey PublicKey, message []byte) bool {
	return ed25519.Verify(publicKey[:], message, s[:])
}

func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(base58.Encode(s[:]))
}

func (s *Signature) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, err := SignatureFromBase58(str)
	if err != nil {
		return fmt.Errorf("invalid signature %q: %w", str, err)
	}
	*s = v
	return nil
}
