package htlc

import solana "github.com/atomic-swap/solana-htlc"

// AccountStore models the validator's account database restricted to what
// the HTLC program touches: a single keyed slot per PDA. Real validators
// keep this in an account-info map keyed by pubkey; this interface lets the
// processor functions below be tested without a running cluster, the way
// solana-program's unit tests exercise instruction processors directly
// against a BanksClient-style in-memory state.
type AccountStore interface {
	Get(pda solana.PublicKey) (*StoredHTLC, bool)
	Put(pda solana.PublicKey, htlc *StoredHTLC)
}

// TokenLedger models SPL-token account balances keyed by ATA address. The
// HTLC program never holds tokens itself; every transfer is a CPI into the
// token program moving balances between ATAs.
type TokenLedger interface {
	Balance(ata solana.PublicKey) uint64
	Transfer(from, to solana.PublicKey, amount uint64) error
}

// MemoryAccountStore is a map-backed AccountStore for tests.
type MemoryAccountStore struct {
	accounts map[solana.PublicKey]*StoredHTLC
}

func NewMemoryAccountStore() *MemoryAccountStore {
	return &MemoryAccountStore{accounts: make(map[solana.PublicKey]*StoredHTLC)}
}

func (s *MemoryAccountStore) Get(pda solana.PublicKey) (*StoredHTLC, bool) {
	htlc, ok := s.accounts[pda]
	return htlc, ok
}

func (s *MemoryAccountStore) Put(pda solana.PublicKey, htlc *StoredHTLC) {
	s.accounts[pda] = htlc
}

// MemoryTokenLedger is a map-backed TokenLedger for tests, enforcing
// non-negative balances the way the real token program rejects underflow.
type MemoryTokenLedger struct {
	balances map[solana.PublicKey]uint64
}

func NewMemoryTokenLedger() *MemoryTokenLedger {
	return &MemoryTokenLedger{balances: make(map[solana.PublicKey]uint64)}
}

func (l *MemoryTokenLedger) Balance(ata solana.PublicKey) uint64 {
	return l.balances[ata]
}

func (l *MemoryTokenLedger) SetBalance(ata solana.PublicKey, amount uint64) {
	l.balances[ata] = amount
}

func (l *MemoryTokenLedger) Transfer(from, to solana.PublicKey, amount uint64) error {
	if l.balances[from] < amount {
		return ErrInsufficientFunds
	}
	l.balances[from] -= amount
	l.balances[to] += amount
	return nil
}
