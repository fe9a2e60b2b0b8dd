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

// CreateAccount allocates a new system-owned account, funded by `from`.
// Used as the first half of create_nonce_account's "composite" instruction
// pair (§4.B).
type CreateAccount struct {
	Lamports *uint64
	Space    *uint64
	Owner    *solana.PublicKey

	// [0] = [WRITE, SIGNER] from (payer)
	// [1] = [WRITE, SIGNER] new account
	solana.AccountMetaSlice `bin:"-"`
}

func NewCreateAccountInstructionBuilder() *CreateAccount {
	return &CreateAccount{AccountMetaSlice: make(solana.AccountMetaSlice, 2)}
}

func (inst *CreateAccount) SetLamports(lamports uint64) *CreateAccount {
	inst.Lamports = &lamports
	return inst
}

func (inst *CreateAccount) SetSpace(space uint64) *CreateAccount {
	inst.Space = &space
	return inst
}

func (inst *CreateAccount) SetOwner(owner solana.PublicKey) *CreateAccount {
	inst.Owner = &owner
	return inst
}

func (inst *CreateAccount) SetFundingAccount(from solana.PublicKey) *CreateAccount {
	inst.AccountMetaSlice[0] = solana.Meta(from).WRITE().SIGNER()
	return inst
}

func (inst *CreateAccount) SetNewAccount(newAccount solana.PublicKey) *CreateAccount {
	inst.AccountMetaSlice[1] = solana.Meta(newAccount).WRITE().SIGNER()
	return inst
}

func NewCreateAccountInstruction(
	from, newAccount solana.PublicKey,
	lamports, space uint64,
	owner solana.PublicKey,
) *CreateAccount {
	return NewCreateAccountInstructionBuilder().
		SetLamports(lamports).
		SetSpace(space).
		SetOwner(owner).
		SetFundingAccount(from).
		SetNewAccount(newAccount)
}

func (inst *CreateAccount) ProgramID() solana.PublicKey { return programID() }

func (inst *CreateAccount) Accounts() []*solana.AccountMeta { return inst.AccountMetaSlice }

func (inst *CreateAccount) Validate() error {
	if inst.Lamports == nil || inst.Space == nil || inst.Owner == nil {
		return errors.New("Lamports, Space and Owner parameters must be set")
	}
	for i, name := range []string{"From", "NewAccount"} {
		if inst.AccountMetaSlice[i] == nil {
			return fmt.Errorf("accounts.%s is not set", name)
		}
	}
	return nil
}

// Data encodes [0,0,0,0] ++ lamports:u64_le ++ space:u64_le ++ owner:[32].
func (inst *CreateAccount) Data() ([]byte, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	enc, buf := wire.NewEncoder()
	if err := enc.WriteUint32(discrCreateAccount, binary.LittleEndian); err != nil {
		return nil, err
	}
	if err := enc.WriteUint64(*inst.Lamports, binary.LittleEndian); err != nil {
		return nil, err
	}
	if err := enc.WriteUint64(*inst.Space, binary.LittleEndian); err != nil {
		return nil, err
	}
	if err := enc.WriteBytes(inst.Owner[:], false); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (inst *CreateAccount) EncodeToTree(parent ag_treeout.Branches) {
	parent.Child(ag_format.Program("system", inst.ProgramID())).
		ParentFunc(func(programBranch ag_treeout.Branches) {
			programBranch.Child(ag_format.Instruction("CreateAccount")).
				ParentFunc(func(instructionBranch ag_treeout.Branches) {
					instructionBranch.Child("Params").ParentFunc(func(paramsBranch ag_treeout.Branches) {
						if inst.Lamports != nil {
							paramsBranch.Child(ag_format.Param("Lamports", *inst.Lamports))
						}
						if inst.Space != nil {
							paramsBranch.Child(ag_format.Param("Space", *inst.Space))
						}
						if inst.Owner != nil {
							paramsBranch.Child(ag_format.Param("Owner", *inst.Owner))
						}
					})
					instructionBranch.Child("Accounts").ParentFunc(func(accountsBranch ag_treeout.Branches) {
						accountsBranch.Child(ag_format.Meta("from", inst.AccountMetaSlice.Get(0)))
						accountsBranch.Child(ag_format.Meta("new", inst.AccountMetaSlice.Get(1)))
					})
				})
		})
}
