package system

import (
	"encoding/binary"
	"errors"
	"fmt"

	solana "github.com/atomic-swap/solana-htlc"
	ag_format "github.com/atomic-swap/solana-htlc/text/format"
	"github.com/atomic-swap/solana-htlc/wire"
	ag_treeout "github.com/gagliardetto/treeout"
)

// Transfer moves `lamports` from `from` to `to` (§4.B: System transfer).
type Transfer struct {
	Lamports *uint64

	// [0] = [WRITE, SIGNER] from
	// [1] = [WRITE] to
	solana.AccountMetaSlice `bin:"-"`
}

func NewTransferInstructionBuilder() *Transfer {
	return &Transfer{AccountMetaSlice: make(solana.AccountMetaSlice, 2)}
}

func (inst *Transfer) SetLamports(lamports uint64) *Transfer {
	inst.Lamports = &lamports
	return inst
}

func (inst *Transfer) SetFundingAccount(from solana.PublicKey) *Transfer {
	inst.AccountMetaSlice[0] = solana.Meta(from).WRITE().SIGNER()
	return inst
}

func (inst *Transfer) SetRecipientAccount(to solana.PublicKey) *Transfer {
	inst.AccountMetaSlice[1] = solana.Meta(to).WRITE()
	return inst
}

func NewTransferInstruction(from, to solana.PublicKey, lamports uint64) *Transfer {
	return NewTransferInstructionBuilder().
		SetLamports(lamports).
		SetFundingAccount(from).
		SetRecipientAccount(to)
}

func (inst *Transfer) ProgramID() solana.PublicKey { return programID() }

func (inst *Transfer) Accounts() []*solana.AccountMeta { return inst.AccountMetaSlice }

func (inst *Transfer) Validate() error {
	if inst.Lamports == nil {
		return errors.New("Lamports parameter is not set")
	}
	for i, name := range []string{"From", "To"} {
		if inst.AccountMetaSlice[i] == nil {
			return fmt.Errorf("accounts.%s is not set", name)
		}
	}
	return nil
}

// Data encodes [0x02,0x00,0x00,0x00] ++ lamports:u64_le, per §4.B.
func (inst *Transfer) Data() ([]byte, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	enc, buf := wire.NewEncoder()
	if err := enc.WriteUint32(discrTransfer, binary.LittleEndian); err != nil {
		return nil, err
	}
	if err := enc.WriteUint64(*inst.Lamports, binary.LittleEndian); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (inst *Transfer) EncodeToTree(parent ag_treeout.Branches) {
	parent.Child(ag_format.Program("system", inst.ProgramID())).
		ParentFunc(func(programBranch ag_treeout.Branches) {
			programBranch.Child(ag_format.Instruction("Transfer")).
				ParentFunc(func(instructionBranch ag_treeout.Branches) {
					instructionBranch.Child("Params").ParentFunc(func(paramsBranch ag_treeout.Branches) {
						if inst.Lamports != nil {
							paramsBranch.Child(ag_format.Param("Lamports", *inst.Lamports))
						}
					})
					instructionBranch.Child("Accounts").ParentFunc(func(accountsBranch ag_treeout.Branches) {
						accountsBranch.Child(ag_format.Meta("from", inst.AccountMetaSlice.Get(0)))
						accountsBranch.Child(ag_format.Meta("to", inst.AccountMetaSlice.Get(1)))
					})
				})
		})
}
