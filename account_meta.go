package solana

// AccountMeta describes one account referenced by an Instruction (§3).
type AccountMeta struct {
	PublicKey  PublicKey
	IsSigner   bool
	IsWritable bool
}

// Meta constructs an AccountMeta builder for pubkey, read-only and
// non-signer by default; chain .SIGNER()/.WRITE() to flip flags, matching
// the teacher's instruction-builder idiom (programs/token/Burn.go).
func Meta(pubkey PublicKey) *AccountMeta {
	return &AccountMeta{PublicKey: pubkey}
}

func (meta *AccountMeta) SIGNER() *AccountMeta {
	meta.IsSigner = true
	return meta
}

func (meta *AccountMeta) WRITE() *AccountMeta {
	meta.IsWritable = true
	return meta
}

func NewAccountMeta(pubkey PublicKey, writable bool, signer bool) *AccountMeta {
	return &AccountMeta{PublicKey: pubkey, IsSigner: signer, IsWritable: writable}
}

// AccountMetaSlice is an ordered list of *AccountMeta, as used by every
// instruction builder (§4.B).
type AccountMetaSlice []*AccountMeta

func (slice AccountMetaSlice) Get(index int) *AccountMeta {
	if index >= len(slice) {
		return nil
	}
	return slice[index]
}

func (slice *AccountMetaSlice) Append(account *AccountMeta) {
	*slice = append(*slice, account)
}

func (slice AccountMetaSlice) Len() int { return len(slice) }

// mergeAccountMeta folds b's flags into a (writable/signer are sticky: once
// set by any reference to the same pubkey, they stay set), per the §4.B
// message-compilation dedup rule.
func mergeAccountMeta(a, b *AccountMeta) *AccountMeta {
	return &AccountMeta{
		PublicKey:  a.PublicKey,
		IsSigner:   a.IsSigner || b.IsSigner,
		IsWritable: a.IsWritable || b.IsWritable,
	}
}
