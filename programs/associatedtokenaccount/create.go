// Package associatedtokenaccount encodes the SPL Associated Token Account
// program's create instruction (§4.B), grounded on the instruction-builder
// idiom shared by programs/system and programs/token.
package associatedtokenaccount

import (
	"errors"
	"fmt"

	solana "github.com/atomic-swap/solana-htlc"
	ag_format "github.com/atomic-swap/solana-htlc/text/format"
	"github.com/atomic-swap/solana-htlc/wire"
	ag_treeout "github.com/gagliardetto/treeout"
)

// createDiscriminator is the ATA program's single "Create" instruction tag.
const createDiscriminator = 0x00

// Create allocates the associated token account for (wallet, mint) funded by
// `funder`, owned by the System Program until the token program initializes
// it (§4.B: "Create ATA").
type Create struct {
	// [0] = [WRITE, SIGNER] funder
	// [1] = [WRITE] associated token account
	// [2] = [] wallet (owner)
	// [3] = [] mint
	// [4] = [] system program
	// [5] = [] token program
	solana.AccountMetaSlice `bin:"-"`
}

func NewCreateInstructionBuilder() *Create {
	inst := &Create{AccountMetaSlice: make(solana.AccountMetaSlice, 6)}
	inst.AccountMetaSlice[4] = solana.Meta(solana.SystemProgramID)
	return inst
}

func (inst *Create) SetFunderAccount(funder solana.PublicKey) *Create {
	inst.AccountMetaSlice[0] = solana.Meta(funder).WRITE().SIGNER()
	return inst
}

func (inst *Create) SetAssociatedTokenAccount(ata solana.PublicKey) *Create {
	inst.AccountMetaSlice[1] = solana.Meta(ata).WRITE()
	return inst
}

func (inst *Create) SetWalletAccount(wallet solana.PublicKey) *Create {
	inst.AccountMetaSlice[2] = solana.Meta(wallet)
	return inst
}

func (inst *Create) SetMintAccount(mint solana.PublicKey) *Create {
	inst.AccountMetaSlice[3] = solana.Meta(mint)
	return inst
}

func (inst *Create) SetTokenProgram(tokenProgramID solana.PublicKey) *Create {
	inst.AccountMetaSlice[5] = solana.Meta(tokenProgramID)
	return inst
}

// NewCreateInstruction declares a new ATA Create instruction. tokenProgramID
// selects the legacy Token program or Token-2022, per §4.A.
func NewCreateInstruction(funder, wallet, mint, tokenProgramID solana.PublicKey) (*Create, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(wallet, mint, tokenProgramID)
	if err != nil {
		return nil, fmt.Errorf("derive associated token address: %w", err)
	}
	return NewCreateInstructionBuilder().
		SetFunderAccount(funder).
		SetAssociatedTokenAccount(ata).
		SetWalletAccount(wallet).
		SetMintAccount(mint).
		SetTokenProgram(tokenProgramID), nil
}

func (inst *Create) ProgramID() solana.PublicKey {
	return solana.SPLAssociatedTokenAccountProgramID
}

func (inst *Create) Accounts() []*solana.AccountMeta { return inst.AccountMetaSlice }

func (inst *Create) Validate() error {
	names := []string{"Funder", "AssociatedTokenAccount", "Wallet", "Mint", "SystemProgram", "TokenProgram"}
	for i, name := range names {
		if inst.AccountMetaSlice[i] == nil {
			return fmt.Errorf("accounts.%s is not set", name)
		}
	}
	if inst.AccountMetaSlice[5].PublicKey.IsZero() {
		return errors.New("accounts.TokenProgram is not set")
	}
	return nil
}

// Data encodes a single tag byte, [0x00], per §4.B.
func (inst *Create) Data() ([]byte, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	enc, buf := wire.NewEncoder()
	if err := enc.WriteUint8(createDiscriminator); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (inst *Create) EncodeToTree(parent ag_treeout.Branches) {
	parent.Child(ag_format.Program("associatedtokenaccount", inst.ProgramID())).
		ParentFunc(func(programBranch ag_treeout.Branches) {
			programBranch.Child(ag_format.Instruction("Create")).
				ParentFunc(func(instructionBranch ag_treeout.Branches) {
					instructionBranch.Child("Accounts").ParentFunc(func(accountsBranch ag_treeout.Branches) {
						accountsBranch.Child(ag_format.Meta("funder", inst.AccountMetaSlice.Get(0)))
						accountsBranch.Child(ag_format.Meta("associatedTokenAccount", inst.AccountMetaSlice.Get(1)))
						accountsBranch.Child(ag_format.Meta("wallet", inst.AccountMetaSlice.Get(2)))
						accountsBranch.Child(ag_format.Meta("mint", inst.AccountMetaSlice.Get(3)))
						accountsBranch.Child(ag_format.Meta("systemProgram", inst.AccountMetaSlice.Get(4)))
						accountsBranch.Child(ag_format.Meta("tokenProgram", inst.AccountMetaSlice.Get(5)))
					})
				})
		})
}
