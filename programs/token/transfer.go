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

// transferDiscriminator is the SPL-token "Transfer" instruction tag (§4.B).
const transferDiscriminator = 0x03

// Transfer moves `amount` tokens from source to destination, authorized by
// authority. It is shared by the legacy Token program and Token-2022: the
// caller supplies which via programID, per §4.A/§4.B ("the caller supplies
// which").
type Transfer struct {
	Amount *uint64

	// [0] = [WRITE] source
	// [1] = [WRITE] destination
	// [2] = [SIGNER] authority
	solana.AccountMetaSlice `bin:"-"`

	programID solana.PublicKey
}

func NewTransferInstructionBuilder(programID solana.PublicKey) *Transfer {
	return &Transfer{
		AccountMetaSlice: make(solana.AccountMetaSlice, 3),
		programID:        programID,
	}
}

func (inst *Transfer) SetAmount(amount uint64) *Transfer {
	inst.Amount = &amount
	return inst
}

func (inst *Transfer) SetSourceAccount(source solana.PublicKey) *Transfer {
	inst.AccountMetaSlice[0] = solana.Meta(source).WRITE()
	return inst
}

func (inst *Transfer) SetDestinationAccount(dest solana.PublicKey) *Transfer {
	inst.AccountMetaSlice[1] = solana.Meta(dest).WRITE()
	return inst
}

func (inst *Transfer) SetAuthorityAccount(authority solana.PublicKey) *Transfer {
	inst.AccountMetaSlice[2] = solana.Meta(authority).SIGNER()
	return inst
}

// NewTransferInstruction declares a new Transfer instruction with the given
// parameters and accounts.
func NewTransferInstruction(
	programID solana.PublicKey,
	amount uint64,
	source, destination, authority solana.PublicKey,
) *Transfer {
	return NewTransferInstructionBuilder(programID).
		SetAmount(amount).
		SetSourceAccount(source).
		SetDestinationAccount(destination).
		SetAuthorityAccount(authority)
}

func (inst *Transfer) ProgramID() solana.PublicKey {
	return inst.programID
}

func (inst *Transfer) Accounts() []*solana.AccountMeta {
	return inst.AccountMetaSlice
}

func (inst *Transfer) Validate() error {
	if inst.Amount == nil {
		return errors.New("Amount parameter is not set")
	}
	if inst.programID.IsZero() {
		return errors.New("programID is not set")
	}
	for i, name := range []string{"Source", "Destination", "Authority"} {
		if inst.AccountMetaSlice[i] == nil {
			return fmt.Errorf("accounts.%s is not set", name)
		}
	}
	return nil
}

func (inst *Transfer) ValidateAndBuild() (*Transfer, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// Data encodes [0x03] ++ amount:u64_le, exactly as §4.B specifies.
func (inst *Transfer) Data() ([]byte, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	enc, buf := wire.NewEncoder()
	if err := enc.WriteUint8(transferDiscriminator); err != nil {
		return nil, err
	}
	if err := enc.WriteUint64(*inst.Amount, binary.LittleEndian); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (inst *Transfer) EncodeToTree(parent ag_treeout.Branches) {
	parent.Child(ag_format.Program("token", inst.ProgramID())).
		ParentFunc(func(programBranch ag_treeout.Branches) {
			programBranch.Child(ag_format.Instruction("Transfer")).
				ParentFunc(func(instructionBranch ag_treeout.Branches) {
					instructionBranch.Child("Params").ParentFunc(func(paramsBranch ag_treeout.Branches) {
						if inst.Amount != nil {
							paramsBranch.Child(ag_format.Param("Amount", *inst.Amount))
						}
					})
					instructionBranch.Child("Accounts").ParentFunc(func(accountsBranch ag_treeout.Branches) {
						accountsBranch.Child(ag_format.Meta("source", inst.AccountMetaSlice.Get(0)))
						accountsBranch.Child(ag_format.Meta("destination", inst.AccountMetaSlice.Get(1)))
						accountsBranch.Child(ag_format.Meta("authority", inst.AccountMetaSlice.Get(2)))
					})
				})
		})
}
