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

// ClaimHTLC reveals `secret` and moves the escrowed tokens to recipient_ata,
// provided the hashlock matches and the timelock has not elapsed (§4.F
// claim_htlc).
type ClaimHTLC struct {
	Secret *[32]byte

	// [0] = [WRITE] htlc_pda
	// [1] = [SIGNER] claimant
	// [2] = [WRITE] htlc_ata
	// [3] = [WRITE] recipient_ata
	// [4] = [] mint
	// [5] = [] token_program
	solana.AccountMetaSlice `bin:"-"`

	programID solana.PublicKey
}

func NewClaimHTLCInstructionBuilder(programID solana.PublicKey) *ClaimHTLC {
	return &ClaimHTLC{AccountMetaSlice: make(solana.AccountMetaSlice, 6), programID: programID}
}

func (inst *ClaimHTLC) SetSecret(secret [32]byte) *ClaimHTLC {
	inst.Secret = &secret
	return inst
}

func (inst *ClaimHTLC) SetHTLCAccount(htlcPDA solana.PublicKey) *ClaimHTLC {
	inst.AccountMetaSlice[0] = solana.Meta(htlcPDA).WRITE()
	return inst
}

func (inst *ClaimHTLC) SetClaimantAccount(claimant solana.PublicKey) *ClaimHTLC {
	inst.AccountMetaSlice[1] = solana.Meta(claimant).SIGNER()
	return inst
}

func (inst *ClaimHTLC) SetHTLCATA(htlcATA solana.PublicKey) *ClaimHTLC {
	inst.AccountMetaSlice[2] = solana.Meta(htlcATA).WRITE()
	return inst
}

func (inst *ClaimHTLC) SetRecipientATA(recipientATA solana.PublicKey) *ClaimHTLC {
	inst.AccountMetaSlice[3] = solana.Meta(recipientATA).WRITE()
	return inst
}

func (inst *ClaimHTLC) SetMintAccount(mint solana.PublicKey) *ClaimHTLC {
	inst.AccountMetaSlice[4] = solana.Meta(mint)
	return inst
}

func (inst *ClaimHTLC) SetTokenProgram(tokenProgramID solana.PublicKey) *ClaimHTLC {
	inst.AccountMetaSlice[5] = solana.Meta(tokenProgramID)
	return inst
}

// NewClaimHTLCInstruction derives the HTLC PDA for order_id and returns a
// fully-populated instruction, per §4.E's claim_htlc builder operation.
func NewClaimHTLCInstruction(
	htlcProgramID solana.PublicKey,
	orderID string,
	secret [32]byte,
	claimant, htlcATA, recipientATA, mint, tokenProgramID solana.PublicKey,
) (*ClaimHTLC, error) {
	htlcPDA, _, err := solana.FindHTLCAddress(orderID, htlcProgramID)
	if err != nil {
		return nil, fmt.Errorf("derive htlc pda: %w", err)
	}
	return NewClaimHTLCInstructionBuilder(htlcProgramID).
		SetSecret(secret).
		SetHTLCAccount(htlcPDA).
		SetClaimantAccount(claimant).
		SetHTLCATA(htlcATA).
		SetRecipientATA(recipientATA).
		SetMintAccount(mint).
		SetTokenProgram(tokenProgramID), nil
}

func (inst *ClaimHTLC) ProgramID() solana.PublicKey { return inst.programID }

func (inst *ClaimHTLC) Accounts() []*solana.AccountMeta { return inst.AccountMetaSlice }

func (inst *ClaimHTLC) Validate() error {
	if inst.Secret == nil {
		return errors.New("Secret parameter is not set")
	}
	names := []string{"HTLC", "Claimant", "HTLCATA", "RecipientATA", "Mint", "TokenProgram"}
	for i, name := range names {
		if inst.AccountMetaSlice[i] == nil {
			return fmt.Errorf("accounts.%s is not set", name)
		}
	}
	return nil
}

// Data encodes [0x02,0,0,0] ++ secret:[32], per §4.B.
func (inst *ClaimHTLC) Data() ([]byte, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	enc, buf := wire.NewEncoder()
	if err := enc.WriteUint32(discrClaimHTLC, binary.LittleEndian); err != nil {
		return nil, err
	}
	if err := enc.WriteBytes(inst.Secret[:], false); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (inst *ClaimHTLC) EncodeToTree(parent ag_treeout.Branches) {
	parent.Child(ag_format.Program("htlc", inst.ProgramID())).
		ParentFunc(func(programBranch ag_treeout.Branches) {
			programBranch.Child(ag_format.Instruction("ClaimHTLC")).
				ParentFunc(func(instructionBranch ag_treeout.Branches) {
					instructionBranch.Child("Accounts").ParentFunc(func(accountsBranch ag_treeout.Branches) {
						accountsBranch.Child(ag_format.Meta("htlc", inst.AccountMetaSlice.Get(0)))
						accountsBranch.Child(ag_format.Meta("claimant", inst.AccountMetaSlice.Get(1)))
						accountsBranch.Child(ag_format.Meta("htlcAta", inst.AccountMetaSlice.Get(2)))
						accountsBranch.Child(ag_format.Meta("recipientAta", inst.AccountMetaSlice.Get(3)))
						accountsBranch.Child(ag_format.Meta("mint", inst.AccountMetaSlice.Get(4)))
						accountsBranch.Child(ag_format.Meta("tokenProgram", inst.AccountMetaSlice.Get(5)))
					})
				})
		})
}
