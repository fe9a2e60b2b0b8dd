package solana

// Well-known program and sysvar addresses. The HTLC program id is a
// configuration constant (§6) and must match the deployed program; the
// others are fixed by the Solana runtime / SPL.
var (
	SystemProgramID = MustPublicKeyFromBase58("11111111111111111111111111111111")

	// TokenProgramID is the legacy SPL Token program.
	TokenProgramID = MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	// Token2022ProgramID is the SPL Token-2022 program.
	Token2022ProgramID = MustPublicKeyFromBase58("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")

	SPLAssociatedTokenAccountProgramID = MustPublicKeyFromBase58("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")

	SysVarClockPubkey             = MustPublicKeyFromBase58("SysvarC1ock11111111111111111111111111111111")
	SysVarRecentBlockHashesPubkey = MustPublicKeyFromBase58("SysvarRecentB1ockHashes11111111111111111111")
	SysVarRentPubkey              = MustPublicKeyFromBase58("SysvarRent111111111111111111111111111111111")
)

// DefaultHTLCProgramID is the program id used when a deployment has not
// supplied its own (overridable via config, per §6).
var DefaultHTLCProgramID = MustPublicKeyFromBase58("DZ5Fbg7jrXKP6gghrmsgswzakrhw3PRsao5USHuWnNPN")
