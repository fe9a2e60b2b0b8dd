package solana

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
)

// Transaction is a signed Message (§3). Signature at index i covers the
// serialized message with the ed25519 key of account_keys[i].
type Transaction struct {
	Signatures []Signature
	Message    Message
}

var ErrMissingSigner = errors.New("message signer has no corresponding signature")

// NewTransaction builds an unsigned transaction shell sized for the
// message's required signer count.
func NewTransaction(message *Message) *Transaction {
	return &Transaction{
		Signatures: make([]Signature, message.Header.NumRequiredSignatures),
		Message:    *message,
	}
}

// SigningMessage returns the bytes that must be ed25519-signed: the
// serialized message itself (§4.B: "The hash signed is sha256(serialize(
// message)) fed into ed25519 as the message" — ed25519 hashes its input
// internally, so the signed payload is the serialized message; callers that
// need the digest for logging/dedup use MessageHash).
func (tx *Transaction) SigningMessage() ([]byte, error) {
	return tx.Message.MarshalBinary()
}

// MessageHash returns sha256(serialize(message)), used as a content-address
// for the message independent of signatures (e.g. idempotency checks).
func (tx *Transaction) MessageHash() ([32]byte, error) {
	raw, err := tx.Message.MarshalBinary()
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(raw), nil
}

// SetSignature records the signature for the signer at account_keys[index].
func (tx *Transaction) SetSignature(index int, sig Signature) error {
	if index < 0 || index >= len(tx.Signatures) {
		return fmt.Errorf("signature index %d out of range [0,%d)", index, len(tx.Signatures))
	}
	tx.Signatures[index] = sig
	return nil
}

// Sign signs the message with every provided signer function, matching
// signers by public key against Message.Signers(). signFn is supplied by
// the wallet façade (§4.D), which may call out to the external ed25519
// oracle.
func (tx *Transaction) Sign(signFn func(PublicKey, []byte) (Signature, error)) error {
	payload, err := tx.SigningMessage()
	if err != nil {
		return err
	}
	for i, signer := range tx.Message.Signers() {
		sig, err := signFn(signer, payload)
		if err != nil {
			return fmt.Errorf("sign for %s: %w", signer, err)
		}
		if err := tx.SetSignature(i, sig); err != nil {
			return err
		}
	}
	return nil
}

// VerifySignatures checks every signature against its corresponding signer
// pubkey and the serialized message.
func (tx *Transaction) VerifySignatures() error {
	payload, err := tx.SigningMessage()
	if err != nil {
		return err
	}
	signers := tx.Message.Signers()
	if len(signers) != len(tx.Signatures) {
		return ErrMissingSigner
	}
	for i, signer := range signers {
		if tx.Signatures[i] == (Signature{}) {
			return fmt.Errorf("%w: %s", ErrMissingSigner, signer)
		}
		if !tx.Signatures[i].Verify(signer, payload) {
			return fmt.Errorf("invalid signature for %s", signer)
		}
	}
	return nil
}

// MarshalBinary serializes {signatures, message} in Solana wire format:
// compact-u16 signature count, 64 bytes per signature, then the message.
func (tx *Transaction) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := EncodeCompactU16Length(buf, len(tx.Signatures)); err != nil {
		return nil, err
	}
	for _, sig := range tx.Signatures {
		buf.Write(sig[:])
	}
	msg, err := tx.Message.MarshalBinary()
	if err != nil {
		return nil, err
	}
	buf.Write(msg)
	return buf.Bytes(), nil
}

// UnmarshalBinary parses a transaction from Solana wire format.
func (tx *Transaction) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	n, err := DecodeCompactU16Length(r)
	if err != nil {
		return fmt.Errorf("read signature count: %w", err)
	}
	sigs := make([]Signature, n)
	for i := range sigs {
		if _, err := r.Read(sigs[i][:]); err != nil {
			return fmt.Errorf("read signature %d: %w", i, err)
		}
	}
	rest := data[len(data)-r.Len():]
	var msg Message
	if err := msg.UnmarshalBinary(rest); err != nil {
		return fmt.Errorf("read message: %w", err)
	}
	tx.Signatures = sigs
	tx.Message = msg
	return nil
}
