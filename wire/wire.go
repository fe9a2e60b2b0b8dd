// Package wire centralizes the borsh-style codec every instruction builder
// uses to produce the exact byte layouts fixed by §4.B, built on the
// teacher's dfuse-io/binary codec
// (the same package programs/token/Burn.go already depended on).
package wire

import (
	"bytes"

	ag_binary "github.com/dfuse-io/binary"
)

// NewEncoder returns a fresh borsh encoder writing into an in-memory
// buffer, along with the buffer itself so callers can read out the bytes
// once encoding is done.
func NewEncoder() (*ag_binary.Encoder, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	return ag_binary.NewBorshEncoder(buf), buf
}

// NewDecoder returns a borsh decoder over data.
func NewDecoder(data []byte) *ag_binary.Decoder {
	return ag_binary.NewBorshDecoder(data)
}

// Marshal borsh-encodes v (a struct with MarshalWithEncoder, or a basic
// type the codec understands natively).
func Marshal(v interface{}) ([]byte, error) {
	enc, buf := NewEncoder()
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal borsh-decodes data into v.
func Unmarshal(data []byte, v interface{}) error {
	return NewDecoder(data).Decode(v)
}
