package htlc

import (
	solana "github.com/atomic-swap/solana-htlc"
	applog "github.com/atomic-swap/solana-htlc/log"
	"go.uber.org/zap"
)

// Event emission is a log-write convenience (§9): the off-chain coordinator
// must still be able to reconstruct state from account reads, since RPC
// providers may drop or disagree on logs. These helpers just give the
// processor functions a place to record the three event kinds.

func emitHtlcCreated(pda solana.PublicKey, p CreateHTLCParams) {
	applog.Logger().Info("HtlcCreated",
		zap.Stringer("htlc", pda),
		zap.Stringer("sender", p.Sender),
		zap.Stringer("recipient", p.Recipient),
		zap.Uint64("amount", p.Amount),
		zap.String("order_id", p.OrderID),
	)
}

func emitHtlcClaimed(pda solana.PublicKey, amount uint64, secret [32]byte) {
	applog.Logger().Info("HtlcClaimed",
		zap.Stringer("htlc", pda),
		zap.Uint64("amount", amount),
		zap.Binary("secret", secret[:]),
	)
}

func emitHtlcRefunded(pda, sender solana.PublicKey, amount uint64) {
	applog.Logger().Info("HtlcRefunded",
		zap.Stringer("htlc", pda),
		zap.Stringer("sender", sender),
		zap.Uint64("amount", amount),
	)
}
