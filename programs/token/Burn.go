package token

import (
	"encoding/binary"
	"errors"
	"fmt"

	solana "github.com/atomic-swap/solana-htlc"
	ag_format "github.com/atomic-swap/solana-htlc/text/format"
	"github.com/atomic-swap/solana-htlc/wire"
	ag_treeout "github.com/gagliardetto/treeout"
)

// Burn removes tokens from an account by burning them. Burn does not
// support accounts associated with the native mint. Not required by the
// HTLC operation set, but kept as part of the SPL-token instruction family
// this package exposes, and exercised by TestBurn_Data.
type Burn struct {
	// The amount of tokens to burn.
	Amount *uint64

	// [0] = [WRITE] source
	// [1] = [WRITE] mint
	// [2] = [SIGNER] owner
	solana.AccountMetaSlice `bin:"-"`
}

// NewBurnInstructionBuilder creates a new Burn instruction builder.
func NewBurnInstructionBuilder() *Burn {
	return &Burn{
		AccountMetaSlice: make(solana.AccountMetaSlice, 3),
	}
}

func (inst *Burn) SetAmount(amount uint64) *Burn {
	inst.Amount = &amount
	return inst
}

func (inst *Burn) SetSourceAccount(source solana.PublicKey) *Burn {
	inst.AccountMetaSlice[0] = solana.Meta(source).WRITE()
	return inst
}

func (inst *Burn) SetMintAccount(mint solana.PublicKey) *Burn {
	inst.AccountMetaSlice[1] = solana.Meta(mint).WRITE()
	return inst
}

func (inst *Burn) SetOwnerAccount(owner solana.PublicKey) *Burn {
	inst.AccountMetaSlice[2] = solana.Meta(owner).SIGNER()
	return inst
}

func NewBurnInstruction(
	amount uint64,
	source, mint, owner solana.PublicKey,
) *Burn {
	return NewBurnInstructionBuilder().
		SetAmount(amount).
		SetSourceAccount(source).
		SetMintAccount(mint).
		SetOwnerAccount(owner)
}

func (inst *Burn) ProgramID() solana.PublicKey {
	return solana.TokenProgramID
}

func (inst *Burn) Accounts() []*solana.AccountMeta {
	return inst.AccountMetaSlice
}

func (inst *Burn) Validate() error {
	if inst.Amount == nil {
		return errors.New("Amount parameter is not set")
	}
	for i, name := range []string{"Source", "Mint", "Owner"} {
		if inst.AccountMetaSlice[i] == nil {
			return fmt.Errorf("accounts.%s is not set", name)
		}
	}
	return nil
}

// burnDiscriminator is the legacy SPL-token "Burn" instruction tag.
const burnDiscriminator = 0x08

// Data encodes the Burn instruction per the legacy SPL-token wire format:
// a single tag byte followed by the amount as a little-endian u64, encoded
// through the shared bin package used by every instruction in this module.
func (inst *Burn) Data() ([]byte, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	enc, buf := wire.NewEncoder()
	if err := enc.WriteUint8(burnDiscriminator); err != nil {
		return nil, err
	}
	if err := enc.WriteUint64(*inst.Amount, binary.LittleEndian); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (inst *Burn) EncodeToTree(parent ag_treeout.Branches) {
	parent.Child(ag_format.Program("token", inst.ProgramID())).
		ParentFunc(func(programBranch ag_treeout.Branches) {
			programBranch.Child(ag_format.Instruction("Burn")).
				ParentFunc(func(instructionBranch ag_treeout.Branches) {
					instructionBranch.Child("Params").ParentFunc(func(paramsBranch ag_treeout.Branches) {
						if inst.Amount != nil {
							paramsBranch.Child(ag_format.Param("Amount", *inst.Amount))
						}
					})
					instructionBranch.Child("Accounts").ParentFunc(func(accountsBranch ag_treeout.Branches) {
						accountsBranch.Child(ag_format.Meta("source", inst.AccountMetaSlice.Get(0)))
						accountsBranch.Child(ag_format.Meta("mint", inst.AccountMetaSlice.Get(1)))
						accountsBranch.Child(ag_format.Meta("owner", inst.AccountMetaSlice.Get(2)))
					})
				})
		})
}
