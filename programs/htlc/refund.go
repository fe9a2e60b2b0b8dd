package htlc

import (
	"encoding/binary"
	"fmt"

	solana "github.com/atomic-swap/solana-htlc"
	ag_format "github.com/atomic-swap/solana-htlc/text/format"
	"github.com/atomic-swap/solana-htlc/wire"
	ag_treeout "github.com/gagliardetto/treeout"
)

// RefundHTLC returns the escrowed tokens to sender_ata once the timelock has
// elapsed without a claim (§4.F refund_htlc).
type RefundHTLC struct {
	// [0] = [WRITE] htlc_pda
	// [1] = [SIGNER] sender
	// [2] = [WRITE] htlc_ata
	// [3] = [WRITE] sender_ata
	// [4] = [] mint
	// [5] = [] token_program
	solana.AccountMetaSlice `bin:"-"`

	programID solana.PublicKey
}

func NewRefundHTLCInstructionBuilder(programID solana.PublicKey) *RefundHTLC {
	return &RefundHTLC{AccountMetaSlice: make(solana.AccountMetaSlice, 6), programID: programID}
}

func (inst *RefundHTLC) SetHTLCAccount(htlcPDA solana.PublicKey) *RefundHTLC {
	inst.AccountMetaSlice[0] = solana.Meta(htlcPDA).WRITE()
	return inst
}

func (inst *RefundHTLC) SetSenderAccount(sender solana.PublicKey) *RefundHTLC {
	inst.AccountMetaSlice[1] = solana.Meta(sender).SIGNER()
	return inst
}

func (inst *RefundHTLC) SetHTLCATA(htlcATA solana.PublicKey) *RefundHTLC {
	inst.AccountMetaSlice[2] = solana.Meta(htlcATA).WRITE()
	return inst
}

func (inst *RefundHTLC) SetSenderATA(senderATA solana.PublicKey) *RefundHTLC {
	inst.AccountMetaSlice[3] = solana.Meta(senderATA).WRITE()
	return inst
}

func (inst *RefundHTLC) SetMintAccount(mint solana.PublicKey) *RefundHTLC {
	inst.AccountMetaSlice[4] = solana.Meta(mint)
	return inst
}

func (inst *RefundHTLC) SetTokenProgram(tokenProgramID solana.PublicKey) *RefundHTLC {
	inst.AccountMetaSlice[5] = solana.Meta(tokenProgramID)
	return inst
}

// NewRefundHTLCInstruction derives the HTLC PDA for order_id and returns a
// fully-populated instruction, per §4.E's refund_htlc builder operation.
func NewRefundHTLCInstruction(
	htlcProgramID solana.PublicKey,
	orderID string,
	sender, htlcATA, senderATA, mint, tokenProgramID solana.PublicKey,
) (*RefundHTLC, error) {
	htlcPDA, _, err := solana.FindHTLCAddress(orderID, htlcProgramID)
	if err != nil {
		return nil, fmt.Errorf("derive htlc pda: %w", err)
	}
	return NewRefundHTLCInstructionBuilder(htlcProgramID).
		SetHTLCAccount(htlcPDA).
		SetSenderAccount(sender).
		SetHTLCATA(htlcATA).
		SetSenderATA(senderATA).
		SetMintAccount(mint).
		SetTokenProgram(tokenProgramID), nil
}

func (inst *RefundHTLC) ProgramID() solana.PublicKey { return inst.programID }

func (inst *RefundHTLC) Accounts() []*solana.AccountMeta { return inst.AccountMetaSlice }

func (inst *RefundHTLC) Validate() error {
	names := []string{"HTLC", "Sender", "HTLCATA", "SenderATA", "Mint", "TokenProgram"}
	for i, name := range names {
		if inst.AccountMetaSlice[i] == nil {
			return fmt.Errorf("accounts.%s is not set", name)
		}
	}
	return nil
}

// Data encodes [0x03,0,0,0] with no further payload, per §4.B.
func (inst *RefundHTLC) Data() ([]byte, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	enc, buf := wire.NewEncoder()
	if err := enc.WriteUint32(discrRefundHTLC, binary.LittleEndian); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (inst *RefundHTLC) EncodeToTree(parent ag_treeout.Branches) {
	parent.Child(ag_format.Program("htlc", inst.ProgramID())).
		ParentFunc(func(programBranch ag_treeout.Branches) {
			programBranch.Child(ag_format.Instruction("RefundHTLC")).
				ParentFunc(func(instructionBranch ag_treeout.Branches) {
					instructionBranch.Child("Accounts").ParentFunc(func(accountsBranch ag_treeout.Branches) {
						accountsBranch.Child(ag_format.Meta("htlc", inst.AccountMetaSlice.Get(0)))
						accountsBranch.Child(ag_format.Meta("sender", inst.AccountMetaSlice.Get(1)))
						accountsBranch.Child(ag_format.Meta("htlcAta", inst.AccountMetaSlice.Get(2)))
						accountsBranch.Child(ag_format.Meta("senderAta", inst.AccountMetaSlice.Get(3)))
						accountsBranch.Child(ag_format.Meta("mint", inst.AccountMetaSlice.Get(4)))
						accountsBranch.Child(ag_format.Meta("tokenProgram", inst.AccountMetaSlice.Get(5)))
					})
				})
		})
}
