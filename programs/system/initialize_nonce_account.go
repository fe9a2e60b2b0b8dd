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

// InitializeNonceAccount turns a freshly created, rent-exempt account into a
// durable-nonce account, recording `authority` as the only signer allowed to
// advance or withdraw it (§4.B, second half of "Create nonce account").
type InitializeNonceAccount struct {
	Authority *solana.PublicKey

	// [0] = [WRITE] nonce account
	// [1] = [] recent blockhashes sysvar
	// [2] = [] rent sysvar
	solana.AccountMetaSlice `bin:"-"`
}

func NewInitializeNonceAccountInstructionBuilder() *InitializeNonceAccount {
	inst := &InitializeNonceAccount{AccountMetaSlice: make(solana.AccountMetaSlice, 3)}
	inst.AccountMetaSlice[1] = solana.Meta(solana.SysVarRecentBlockHashesPubkey)
	inst.AccountMetaSlice[2] = solana.Meta(solana.SysVarRentPubkey)
	return inst
}

func (inst *InitializeNonceAccount) SetAuthority(authority solana.PublicKey) *InitializeNonceAccount {
	inst.Authority = &authority
	return inst
}

func (inst *InitializeNonceAccount) SetNonceAccount(nonce solana.PublicKey) *InitializeNonceAccount {
	inst.AccountMetaSlice[0] = solana.Meta(nonce).WRITE()
	return inst
}

func NewInitializeNonceAccountInstruction(nonce, authority solana.PublicKey) *InitializeNonceAccount {
	return NewInitializeNonceAccountInstructionBuilder().
		SetNonceAccount(nonce).
		SetAuthority(authority)
}

func (inst *InitializeNonceAccount) ProgramID() solana.PublicKey { return programID() }

func (inst *InitializeNonceAccount) Accounts() []*solana.AccountMeta { return inst.AccountMetaSlice }

func (inst *InitializeNonceAccount) Validate() error {
	if inst.Authority == nil {
		return errors.New("Authority parameter is not set")
	}
	for i, name := range []string{"Nonce", "RecentBlockhashesSysvar", "RentSysvar"} {
		if inst.AccountMetaSlice[i] == nil {
			return fmt.Errorf("accounts.%s is not set", name)
		}
	}
	return nil
}

// Data encodes [0x06,0x00,0x00,0x00] ++ authority:[32], per §4.B.
func (inst *InitializeNonceAccount) Data() ([]byte, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	enc, buf := wire.NewEncoder()
	if err := enc.WriteUint32(discrInitializeNonceAccount, binary.LittleEndian); err != nil {
		return nil, err
	}
	if err := enc.WriteBytes(inst.Authority[:], false); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (inst *InitializeNonceAccount) EncodeToTree(parent ag_treeout.Branches) {
	parent.Child(ag_format.Program("system", inst.ProgramID())).
		ParentFunc(func(programBranch ag_treeout.Branches) {
			programBranch.Child(ag_format.Instruction("InitializeNonceAccount")).
				ParentFunc(func(instructionBranch ag_treeout.Branches) {
					instructionBranch.Child("Params").ParentFunc(func(paramsBranch ag_treeout.Branches) {
						if inst.Authority != nil {
							paramsBranch.Child(ag_format.Param("Authority", *inst.Authority))
						}
					})
					instructionBranch.Child("Accounts").ParentFunc(func(accountsBranch ag_treeout.Branches) {
						accountsBranch.Child(ag_format.Meta("nonce", inst.AccountMetaSlice.Get(0)))
						accountsBranch.Child(ag_format.Meta("recentBlockhashesSysvar", inst.AccountMetaSlice.Get(1)))
						accountsBranch.Child(ag_format.Meta("rentSysvar", inst.AccountMetaSlice.Get(2)))
					})
				})
		})
}
