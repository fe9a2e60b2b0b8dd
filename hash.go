package solana

import (
	"encoding/json"
	"fmt"

	"github.com/mr-tron/base58"
)

// Hash is a 32-byte blockhash, either a freshly queried cluster blockhash or
// the blockhash stored inside a durable nonce account (§3).
type Hash [32]byte

func HashFromBytes(in []byte) (out Hash) {
	copy(out[:], in)
	return
}

func HashFromBase58(in string) (out Hash, err error) {
	val, err := base58.Decode(in)
	if err != nil {
		return out, fmt.Errorf("decode: %w", err)
	}
	if len(val) != 32 {
		return out, fmt.Errorf("invalid hash length, expected 32, got %d", len(val))
	}
	copy(out[:], val)
	return
}

func MustHashFromBase58(in string) Hash {
	out, err := HashFromBase58(in)
	if err != nil {
		panic(err)
	}
	return out
}

func (h Hash) String() string {
	return base58.Encode(h[:])
}

func (h Hash) IsZero() bool {
	return h == Hash{}
}

func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(base58.Encode(h[:]))
}

func (h *Hash) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := HashFromBase58(s)
	if err != nil {
		return fmt.Errorf("invalid hash %q: %w", s, err)
	}
	*h = v
	return nil
}
