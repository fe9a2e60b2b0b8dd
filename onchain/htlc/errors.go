package htlc

import "errors"

// ProgramError is one of the typed on-chain error kinds (§7). The on-chain
// program aborts the whole instruction on any of these: no partial state is
// ever written (Solana runtime semantics).
type ProgramError struct {
	Kind string
	Err  error
}

func (e *ProgramError) Error() string { return e.Kind + ": " + e.Err.Error() }

func (e *ProgramError) Unwrap() error { return e.Err }

func newProgramError(kind string, msg string) *ProgramError {
	return &ProgramError{Kind: kind, Err: errors.New(msg)}
}

var (
	ErrInvalidTimelock           = newProgramError("InvalidTimelock", "timelock must be in the future")
	ErrInvalidHtlcStatus         = newProgramError("InvalidHtlcStatus", "htlc is not in the Created state")
	ErrHtlcExpired               = newProgramError("HtlcExpired", "htlc timelock has elapsed")
	ErrInvalidSecret             = newProgramError("InvalidSecret", "secret does not match hashlock")
	ErrHtlcNotExpired            = newProgramError("HtlcNotExpired", "htlc timelock has not elapsed")
	ErrAccountAlreadyInitialized = newProgramError("AccountAlreadyInitialized", "htlc account already exists for this order_id")
	ErrInsufficientFunds         = newProgramError("InsufficientFunds", "token ledger balance insufficient for transfer")
	ErrMalformedSecret           = newProgramError("InvalidSecret", "secret must be exactly 32 bytes")
)
