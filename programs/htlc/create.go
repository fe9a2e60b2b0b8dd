// Package htlc encodes the three instructions of the on-chain HTLC program:
// create, claim, refund (§4.B), grounded on the instruction-builder idiom of
// programs/system and programs/token.
package htlc

import (
	"encoding/binary"
	"errors"
	"fmt"

	solana "github.com/atomic-swap/solana-htlc"
	ag_format "github.com/atomic-swap/solana-htlc/text/format"
	"github.com/atomic-swap/solana-htlc/wire"
	ag_treeout "github.com/gagliardetto/treeout"
)

// Instruction discriminators, little-endian u32 at data[0:4] (§4.F).
const (
	discrCreateHTLC uint32 = 1
	discrClaimHTLC  uint32 = 2
	discrRefundHTLC uint32 = 3
)

// CreateHTLC escrows `amount` tokens under a hashlock/timelock pair, owned by
// the program's PDA for order_id (§4.F create_htlc).
type CreateHTLC struct {
	Amount   *uint64
	Hashlock *[32]byte
	Timelock *int64
	OrderID  *string

	// [0] = [WRITE] htlc_pda
	// [1] = [SIGNER] sender
	// [2] = [] recipient
	// [3] = [WRITE] sender_ata
	// [4] = [WRITE] htlc_ata
	// [5] = [] mint
	// [6] = [] token_program
	// [7] = [] system
	solana.AccountMetaSlice `bin:"-"`

	programID solana.PublicKey
}

func NewCreateHTLCInstructionBuilder(programID solana.PublicKey) *CreateHTLC {
	inst := &CreateHTLC{AccountMetaSlice: make(solana.AccountMetaSlice, 8), programID: programID}
	inst.AccountMetaSlice[7] = solana.Meta(solana.SystemProgramID)
	return inst
}

func (inst *CreateHTLC) SetAmount(amount uint64) *CreateHTLC {
	inst.Amount = &amount
	return inst
}

func (inst *CreateHTLC) SetHashlock(hashlock [32]byte) *CreateHTLC {
	inst.Hashlock = &hashlock
	return inst
}

func (inst *CreateHTLC) SetTimelock(timelock int64) *CreateHTLC {
	inst.Timelock = &timelock
	return inst
}

func (inst *CreateHTLC) SetOrderID(orderID string) *CreateHTLC {
	inst.OrderID = &orderID
	return inst
}

func (inst *CreateHTLC) SetHTLCAccount(htlcPDA solana.PublicKey) *CreateHTLC {
	inst.AccountMetaSlice[0] = solana.Meta(htlcPDA).WRITE()
	return inst
}

func (inst *CreateHTLC) SetSenderAccount(sender solana.PublicKey) *CreateHTLC {
	inst.AccountMetaSlice[1] = solana.Meta(sender).SIGNER()
	return inst
}

func (inst *CreateHTLC) SetRecipientAccount(recipient solana.PublicKey) *CreateHTLC {
	inst.AccountMetaSlice[2] = solana.Meta(recipient)
	return inst
}

func (inst *CreateHTLC) SetSenderATA(senderATA solana.PublicKey) *CreateHTLC {
	inst.AccountMetaSlice[3] = solana.Meta(senderATA).WRITE()
	return inst
}

func (inst *CreateHTLC) SetHTLCATA(htlcATA solana.PublicKey) *CreateHTLC {
	inst.AccountMetaSlice[4] = solana.Meta(htlcATA).WRITE()
	return inst
}

func (inst *CreateHTLC) SetMintAccount(mint solana.PublicKey) *CreateHTLC {
	inst.AccountMetaSlice[5] = solana.Meta(mint)
	return inst
}

func (inst *CreateHTLC) SetTokenProgram(tokenProgramID solana.PublicKey) *CreateHTLC {
	inst.AccountMetaSlice[6] = solana.Meta(tokenProgramID)
	return inst
}

// NewCreateHTLCInstruction derives the HTLC PDA and its ATA and returns a
// fully-populated instruction, per §4.E's create_htlc builder operation.
func NewCreateHTLCInstruction(
	htlcProgramID solana.PublicKey,
	orderID string,
	amount uint64,
	hashlock [32]byte,
	timelock int64,
	sender, recipient, senderATA, mint, tokenProgramID solana.PublicKey,
) (*CreateHTLC, error) {
	htlcPDA, _, err := solana.FindHTLCAddress(orderID, htlcProgramID)
	if err != nil {
		return nil, fmt.Errorf("derive htlc pda: %w", err)
	}
	htlcATA, _, err := solana.FindAssociatedTokenAddress(htlcPDA, mint, tokenProgramID)
	if err != nil {
		return nil, fmt.Errorf("derive htlc ata: %w", err)
	}
	return NewCreateHTLCInstructionBuilder(htlcProgramID).
		SetAmount(amount).
		SetHashlock(hashlock).
		SetTimelock(timelock).
		SetOrderID(orderID).
		SetHTLCAccount(htlcPDA).
		SetSenderAccount(sender).
		SetRecipientAccount(recipient).
		SetSenderATA(senderATA).
		SetHTLCATA(htlcATA).
		SetMintAccount(mint).
		SetTokenProgram(tokenProgramID), nil
}

func (inst *CreateHTLC) ProgramID() solana.PublicKey { return inst.programID }

func (inst *CreateHTLC) Accounts() []*solana.AccountMeta { return inst.AccountMetaSlice }

func (inst *CreateHTLC) Validate() error {
	if inst.Amount == nil || inst.Hashlock == nil || inst.Timelock == nil || inst.OrderID == nil {
		return errors.New("Amount, Hashlock, Timelock and OrderID parameters must be set")
	}
	names := []string{"HTLC", "Sender", "Recipient", "SenderATA", "HTLCATA", "Mint", "TokenProgram", "SystemProgram"}
	for i, name := range names {
		if inst.AccountMetaSlice[i] == nil {
			return fmt.Errorf("accounts.%s is not set", name)
		}
	}
	return nil
}

// Data encodes [0x01,0,0,0] ++ amount:u64_le ++ hashlock:[32] ++
// timelock:i64_le ++ order_id:utf8_bytes, per §4.B.
func (inst *CreateHTLC) Data() ([]byte, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	enc, buf := wire.NewEncoder()
	if err := enc.WriteUint32(discrCreateHTLC, binary.LittleEndian); err != nil {
		return nil, err
	}
	if err := enc.WriteUint64(*inst.Amount, binary.LittleEndian); err != nil {
		return nil, err
	}
	if err := enc.WriteBytes(inst.Hashlock[:], false); err != nil {
		return nil, err
	}
	if err := enc.WriteInt64(*inst.Timelock, binary.LittleEndian); err != nil {
		return nil, err
	}
	if err := enc.WriteBytes([]byte(*inst.OrderID), false); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (inst *CreateHTLC) EncodeToTree(parent ag_treeout.Branches) {
	parent.Child(ag_format.Program("htlc", inst.ProgramID())).
		ParentFunc(func(programBranch ag_treeout.Branches) {
			programBranch.Child(ag_format.Instruction("CreateHTLC")).
				ParentFunc(func(instructionBranch ag_treeout.Branches) {
					instructionBranch.Child("Params").ParentFunc(func(paramsBranch ag_treeout.Branches) {
						if inst.Amount != nil {
							paramsBranch.Child(ag_format.Param("Amount", *inst.Amount))
						}
						if inst.Timelock != nil {
							paramsBranch.Child(ag_format.Param("Timelock", *inst.Timelock))
						}
						if inst.OrderID != nil {
							paramsBranch.Child(ag_format.Param("OrderID", *inst.OrderID))
						}
					})
					instructionBranch.Child("Accounts").ParentFunc(func(accountsBranch ag_treeout.Branches) {
						accountsBranch.Child(ag_format.Meta("htlc", inst.AccountMetaSlice.Get(0)))
						accountsBranch.Child(ag_format.Meta("sender", inst.AccountMetaSlice.Get(1)))
						accountsBranch.Child(ag_format.Meta("recipient", inst.AccountMetaSlice.Get(2)))
						accountsBranch.Child(ag_format.Meta("senderAta", inst.AccountMetaSlice.Get(3)))
						accountsBranch.Child(ag_format.Meta("htlcAta", inst.AccountMetaSlice.Get(4)))
						accountsBranch.Child(ag_format.Meta("mint", inst.AccountMetaSlice.Get(5)))
						accountsBranch.Child(ag_format.Meta("tokenProgram", inst.AccountMetaSlice.Get(6)))
						accountsBranch.Child(ag_format.Meta("systemProgram", inst.AccountMetaSlice.Get(7)))
					})
				})
		})
}
