package solana

import (
	"bytes"
	"errors"
	"fmt"
)

// MessageHeader carries the three counts the runtime needs to know which
// prefix of account_keys must sign and which suffix is read-only (§3).
type MessageHeader struct {
	NumRequiredSignatures      uint8
	NumReadonlySignedAccounts  uint8
	NumReadonlyUnsignedAccounts uint8
}

// Message is the signable payload of a Transaction (§3). Accounts are
// deduplicated and ordered signer-writable, signer-readonly,
// non-signer-writable, non-signer-readonly.
type Message struct {
	Header          MessageHeader
	AccountKeys     []PublicKey
	RecentBlockhash Hash
	Instructions    []CompiledInstruction
}

var (
	ErrNoPayer              = errors.New("no fee payer provided")
	ErrTooManyAccounts      = errors.New("account index does not fit in a single byte")
	ErrUnknownAccountInList = errors.New("account referenced by instruction is not part of the message's account list")
)

// NewMessage compiles a set of instructions against a fee payer and a
// recent blockhash, following the dedup/ordering/compilation rules of §4.B.
// recentBlockhash is either a freshly queried cluster blockhash or the
// blockhash read out of a durable nonce account (§3, §4.G).
func NewMessage(instructions []Instruction, payer PublicKey, recentBlockhash Hash) (*Message, error) {
	if payer.IsZero() {
		return nil, ErrNoPayer
	}

	order := []PublicKey{}
	metas := map[PublicKey]*AccountMeta{}

	upsert := func(m *AccountMeta) {
		existing, ok := metas[m.PublicKey]
		if !ok {
			order = append(order, m.PublicKey)
			metas[m.PublicKey] = &AccountMeta{PublicKey: m.PublicKey, IsSigner: m.IsSigner, IsWritable: m.IsWritable}
			return
		}
		metas[m.PublicKey] = mergeAccountMeta(existing, m)
	}

	upsert(&AccountMeta{PublicKey: payer, IsSigner: true, IsWritable: true})

	for _, inst := range instructions {
		for _, am := range inst.Accounts() {
			upsert(am)
		}
		upsert(&AccountMeta{PublicKey: inst.ProgramID(), IsSigner: false, IsWritable: false})
	}

	var signerWritable, signerReadonly, nonSignerWritable, nonSignerReadonly []PublicKey
	for _, key := range order {
		m := metas[key]
		switch {
		case m.IsSigner && m.IsWritable:
			signerWritable = append(signerWritable, key)
		case m.IsSigner && !m.IsWritable:
			signerReadonly = append(signerReadonly, key)
		case !m.IsSigner && m.IsWritable:
			nonSignerWritable = append(nonSignerWritable, key)
		default:
			nonSignerReadonly = append(nonSignerReadonly, key)
		}
	}

	accountKeys := make([]PublicKey, 0, len(order))
	accountKeys = append(accountKeys, signerWritable...)
	accountKeys = append(accountKeys, signerReadonly...)
	accountKeys = append(accountKeys, nonSignerWritable...)
	accountKeys = append(accountKeys, nonSignerReadonly...)

	if len(accountKeys) > 256 {
		return nil, ErrTooManyAccounts
	}

	index := make(map[PublicKey]uint8, len(accountKeys))
	for i, key := range accountKeys {
		index[key] = uint8(i)
	}

	compiled := make([]CompiledInstruction, 0, len(instructions))
	for _, inst := range instructions {
		progIdx, ok := index[inst.ProgramID()]
		if !ok {
			return nil, ErrUnknownAccountInList
		}
		accIdx := make([]uint8, 0, len(inst.Accounts()))
		for _, am := range inst.Accounts() {
			idx, ok := index[am.PublicKey]
			if !ok {
				return nil, ErrUnknownAccountInList
			}
			accIdx = append(accIdx, idx)
		}
		data, err := inst.Data()
		if err != nil {
			return nil, fmt.Errorf("encode instruction data: %w", err)
		}
		compiled = append(compiled, CompiledInstruction{
			ProgramIDIndex: progIdx,
			Accounts:       accIdx,
			Data:           data,
		})
	}

	return &Message{
		Header: MessageHeader{
			NumRequiredSignatures:       uint8(len(signerWritable) + len(signerReadonly)),
			NumReadonlySignedAccounts:   uint8(len(signerReadonly)),
			NumReadonlyUnsignedAccounts: uint8(len(nonSignerReadonly)),
		},
		AccountKeys:     accountKeys,
		RecentBlockhash: recentBlockhash,
		Instructions:    compiled,
	}, nil
}

// MarshalBinary serializes the message in the exact Solana wire format:
// header, compact-u16-prefixed account_keys, the blockhash, then
// compact-u16-prefixed compiled instructions.
func (m *Message) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)

	buf.WriteByte(m.Header.NumRequiredSignatures)
	buf.WriteByte(m.Header.NumReadonlySignedAccounts)
	buf.WriteByte(m.Header.NumReadonlyUnsignedAccounts)

	if err := EncodeCompactU16Length(buf, len(m.AccountKeys)); err != nil {
		return nil, err
	}
	for _, key := range m.AccountKeys {
		buf.Write(key[:])
	}

	buf.Write(m.RecentBlockhash[:])

	if err := EncodeCompactU16Length(buf, len(m.Instructions)); err != nil {
		return nil, err
	}
	for _, inst := range m.Instructions {
		buf.WriteByte(inst.ProgramIDIndex)
		if err := EncodeCompactU16Length(buf, len(inst.Accounts)); err != nil {
			return nil, err
		}
		buf.Write(inst.Accounts)
		if err := EncodeCompactU16Length(buf, len(inst.Data)); err != nil {
			return nil, err
		}
		buf.Write(inst.Data)
	}

	return buf.Bytes(), nil
}

// UnmarshalBinary parses a message from the exact Solana wire format,
// inverting MarshalBinary (§8, P7).
func (m *Message) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)

	readByte := func() (byte, error) { return r.ReadByte() }

	numReq, err := readByte()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	numReadonlySigned, err := readByte()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	numReadonlyUnsigned, err := readByte()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	numAccounts, err := DecodeCompactU16Length(r)
	if err != nil {
		return fmt.Errorf("read account count: %w", err)
	}
	accountKeys := make([]PublicKey, numAccounts)
	for i := range accountKeys {
		if _, err := r.Read(accountKeys[i][:]); err != nil {
			return fmt.Errorf("read account key %d: %w", i, err)
		}
	}

	var blockhash Hash
	if _, err := r.Read(blockhash[:]); err != nil {
		return fmt.Errorf("read recent blockhash: %w", err)
	}

	numInstructions, err := DecodeCompactU16Length(r)
	if err != nil {
		return fmt.Errorf("read instruction count: %w", err)
	}
	instructions := make([]CompiledInstruction, numInstructions)
	for i := range instructions {
		progIdx, err := readByte()
		if err != nil {
			return fmt.Errorf("read instruction %d program index: %w", i, err)
		}
		numAccs, err := DecodeCompactU16Length(r)
		if err != nil {
			return fmt.Errorf("read instruction %d account count: %w", i, err)
		}
		accs := make([]uint8, numAccs)
		for j := range accs {
			accs[j], err = readByte()
			if err != nil {
				return fmt.Errorf("read instruction %d account %d: %w", i, j, err)
			}
		}
		dataLen, err := DecodeCompactU16Length(r)
		if err != nil {
			return fmt.Errorf("read instruction %d data length: %w", i, err)
		}
		data := make([]byte, dataLen)
		if dataLen > 0 {
			if _, err := r.Read(data); err != nil {
				return fmt.Errorf("read instruction %d data: %w", i, err)
			}
		}
		instructions[i] = CompiledInstruction{ProgramIDIndex: progIdx, Accounts: accs, Data: data}
	}

	m.Header = MessageHeader{
		NumRequiredSignatures:       numReq,
		NumReadonlySignedAccounts:  numReadonlySigned,
		NumReadonlyUnsignedAccounts: numReadonlyUnsigned,
	}
	m.AccountKeys = accountKeys
	m.RecentBlockhash = blockhash
	m.Instructions = instructions
	return nil
}

// Signers returns the pubkeys (in account_keys order) that must produce a
// signature for this message, per Header.NumRequiredSignatures.
func (m *Message) Signers() []PublicKey {
	n := int(m.Header.NumRequiredSignatures)
	if n > len(m.AccountKeys) {
		n = len(m.AccountKeys)
	}
	return m.AccountKeys[:n]
}
