// Package format renders the small set of human-readable fragments that
// instruction builders' EncodeToTree methods plug into a
// github.com/gagliardetto/treeout branch: a program header, an instruction
// name, a parameter line, and an account-meta line.
package format

import (
	"fmt"

	solana "github.com/atomic-swap/solana-htlc"
)

// Program renders "name (programID)" for the root of an instruction tree.
func Program(name string, programID solana.PublicKey) string {
	return fmt.Sprintf("%s (%s)", name, programID)
}

// Instruction renders the instruction's display name.
func Instruction(name string) string {
	return fmt.Sprintf("Instruction: %s", name)
}

// Param renders "name: value" for a scalar instruction parameter.
func Param(name string, value interface{}) string {
	return fmt.Sprintf("%s: %v", name, value)
}

// Meta renders an account-meta line with its signer/writable flags.
func Meta(name string, meta *solana.AccountMeta) string {
	if meta == nil {
		return fmt.Sprintf("%-10s: <nil>", name)
	}
	signer := " "
	if meta.IsSigner {
		signer = "s"
	}
	writable := " "
	if meta.IsWritable {
		writable = "w"
	}
	return fmt.Sprintf("[%s%s] %-10s: %s", signer, writable, name, meta.PublicKey)
}
