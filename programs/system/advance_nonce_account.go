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

// AdvanceNonceAccount consumes the current durable-nonce value and replaces
// it with the cluster's latest blockhash, invalidating any transaction built
// against the old value (§4.B, §4.D).
type AdvanceNonceAccount struct {
	// [0] = [WRITE] nonce account
	// [1] = [] recent blockhashes sysvar
	// [2] = [SIGNER] nonce authority
	solana.AccountMetaSlice `bin:"-"`
}

func NewAdvanceNonceAccountInstructionBuilder() *AdvanceNonceAccount {
	inst := &AdvanceNonceAccount{AccountMetaSlice: make(solana.AccountMetaSlice, 3)}
	inst.AccountMetaSlice[1] = solana.Meta(solana.SysVarRecentBlockHashesPubkey)
	return inst
}

func (inst *AdvanceNonceAccount) SetNonceAccount(nonce solana.PublicKey) *AdvanceNonceAccount {
	inst.AccountMetaSlice[0] = solana.Meta(nonce).WRITE()
	return inst
}

func (inst *AdvanceNonceAccount) SetAuthorityAccount(authority solana.PublicKey) *AdvanceNonceAccount {
	inst.AccountMetaSlice[2] = solana.Meta(authority).SIGNER()
	return inst
}

func NewAdvanceNonceAccountInstruction(nonce, authority solana.PublicKey) *AdvanceNonceAccount {
	return NewAdvanceNonceAccountInstructionBuilder().
		SetNonceAccount(nonce).
		SetAuthorityAccount(authority)
}

func (inst *AdvanceNonceAccount) ProgramID() solana.PublicKey { return programID() }

func (inst *AdvanceNonceAccount) Accounts() []*solana.AccountMeta { return inst.AccountMetaSlice }

func (inst *AdvanceNonceAccount) Validate() error {
	for i, name := range []string{"Nonce", "RecentBlockhashesSysvar", "Authority"} {
		if inst.AccountMetaSlice[i] == nil {
			return fmt.Errorf("accounts.%s is not set", name)
		}
	}
	if !inst.AccountMetaSlice[2].IsSigner {
		return errors.New("accounts.Authority must be a signer")
	}
	return nil
}

// Data encodes [0x04,0x00,0x00,0x00] with no further payload, per §4.B.
func (inst *AdvanceNonceAccount) Data() ([]byte, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	enc, buf := wire.NewEncoder()
	if err := enc.WriteUint32(discrAdvanceNonceAccount, binary.LittleEndian); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (inst *AdvanceNonceAccount) EncodeToTree(parent ag_treeout.Branches) {
	parent.Child(ag_format.Program("system", inst.ProgramID())).
		ParentFunc(func(programBranch ag_treeout.Branches) {
			programBranch.Child(ag_format.Instruction("AdvanceNonceAccount")).
				ParentFunc(func(instructionBranch ag_treeout.Branches) {
					instructionBranch.Child("Accounts").ParentFunc(func(accountsBranch ag_treeout.Branches) {
						accountsBranch.Child(ag_format.Meta("nonce", inst.AccountMetaSlice.Get(0)))
						accountsBranch.Child(ag_format.Meta("recentBlockhashesSysvar", inst.AccountMetaSlice.Get(1)))
						accountsBranch.Child(ag_format.Meta("authority", inst.AccountMetaSlice.Get(2)))
					})
				})
		})
}
