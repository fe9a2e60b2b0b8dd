package solana

// Instruction is the common interface every instruction builder in
// programs/* satisfies (§3, §4.B).
type Instruction interface {
	ProgramID() PublicKey
	Accounts() []*AccountMeta
	Data() ([]byte, error)
}

// CompiledInstruction references accounts by index into a Message's
// account_keys, per §3.
type CompiledInstruction struct {
	ProgramIDIndex uint8
	Accounts       []uint8
	Data           []byte
}
