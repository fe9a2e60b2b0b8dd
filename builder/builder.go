// Package builder composes, signs, and submits the instruction sequences
// of §4.E: one method per transaction-producing operation, each following
// the common shape of derive accounts -> idempotency check -> obtain a
// recent blockhash -> compose -> sign -> submit. Grounded on
// original_source's main.rs (send_sol, send_sol_with_durable_nonce,
// create_nonce_account, create_associated_token_account, send_spl_token)
// and solana_htlc.rs (create_htlc, claim_htlc, refund_htlc), reimplemented
// against this module's wallet/rpc/programs packages instead of the IC
// canister runtime.
package builder

import (
	"context"
	"encoding/base64"
	"fmt"

	solana "github.com/atomic-swap/solana-htlc"
	"github.com/atomic-swap/solana-htlc/config"
	applog "github.com/atomic-swap/solana-htlc/log"
	"github.com/atomic-swap/solana-htlc/programs/associatedtokenaccount"
	htlcprogram "github.com/atomic-swap/solana-htlc/programs/htlc"
	"github.com/atomic-swap/solana-htlc/programs/system"
	"github.com/atomic-swap/solana-htlc/programs/token"
	"github.com/atomic-swap/solana-htlc/rpc"
	"github.com/atomic-swap/solana-htlc/signer"
	"github.com/atomic-swap/solana-htlc/wallet"
	"go.uber.org/zap"
)

// Builder is the per-owner transaction-producing façade: it owns no state
// beyond its collaborators, so a fresh Builder is cheap to construct per
// request (§4.E, §9: "each operation is self-contained").
type Builder struct {
	cfg        *config.Config
	aggregator *rpc.Aggregator
	wallet     *wallet.Wallet
	oracle     signer.Oracle
}

// New builds a Builder for a single owner principal, over the given
// aggregator and oracle.
func New(cfg *config.Config, aggregator *rpc.Aggregator, oracle signer.Oracle, owner []byte) *Builder {
	return &Builder{
		cfg:        cfg,
		aggregator: aggregator,
		wallet:     wallet.New(owner, oracle, cfg.Ed25519KeyName),
		oracle:     oracle,
	}
}

// signAndSubmit composes a Message from instructions, signs every required
// slot with the provided accounts, and submits via the aggregator's
// sendTransaction (§4.E steps 4-5).
func (b *Builder) signAndSubmit(ctx context.Context, instructions []solana.Instruction, payer solana.PublicKey, recentBlockhash solana.Hash, signers []wallet.Account) (string, error) {
	message, err := solana.NewMessage(instructions, payer, recentBlockhash)
	if err != nil {
		return "", fmt.Errorf("compose message: %w", err)
	}
	tx := solana.NewTransaction(message)

	byKey := make(map[solana.PublicKey]wallet.Account, len(signers))
	for _, s := range signers {
		byKey[s.PublicKey] = s
	}
	if err := tx.Sign(func(pub solana.PublicKey, msg []byte) (solana.Signature, error) {
		account, ok := byKey[pub]
		if !ok {
			return solana.Signature{}, fmt.Errorf("no signer available for %s", pub)
		}
		sig, err := account.Sign(ctx, b.oracle, msg)
		if err != nil {
			return solana.Signature{}, fmt.Errorf("%w: %s", signer.ErrOracleUnavailable, err)
		}
		return sig, nil
	}); err != nil {
		return "", err
	}

	raw, err := tx.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("serialize transaction: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(raw)

	result, err := b.aggregator.SendTransaction(ctx, rpc.DefaultStrategy(), encoded)
	if err != nil {
		applog.Logger().Warn("transaction rejected", zap.Stringer("payer", payer), zap.Error(err))
		return "", &ChainRejectionError{Err: err}
	}
	applog.Logger().Info("transaction submitted", zap.Stringer("payer", payer), zap.String("signature", result.Signature))
	return result.Signature, nil
}

// ordinaryBlockhash obtains recent_blockhash for a non-durable-nonce
// transaction (§4.E step 3, first branch).
func (b *Builder) ordinaryBlockhash(ctx context.Context) (solana.Hash, error) {
	hashStr, err := b.aggregator.EstimateRecentBlockhash(ctx)
	if err != nil {
		return solana.Hash{}, err
	}
	return solana.HashFromBase58(hashStr)
}

// tokenProgramForMint resolves the owning token program of mint (the
// legacy Token program or Token-2022), per transfer_spl's "token program id
// is the mint's owner field (queried)".
func (b *Builder) tokenProgramForMint(ctx context.Context, mint solana.PublicKey) (solana.PublicKey, error) {
	info, err := b.aggregator.GetAccountInfo(ctx, rpc.DefaultStrategy(), mint.String(), rpc.EncodingBase64)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if info.Value == nil {
		return solana.PublicKey{}, fmt.Errorf("mint account %s not found", mint)
	}
	return solana.PublicKeyFromBase58(info.Value.Owner)
}

// accountExists checks whether an account is currently populated on chain,
// backing every creation operation's idempotency check (§4.E step 2).
func (b *Builder) accountExists(ctx context.Context, account solana.PublicKey) (bool, error) {
	info, err := b.aggregator.GetAccountInfo(ctx, rpc.DefaultStrategy(), account.String(), rpc.EncodingBase64)
	if err != nil {
		return false, err
	}
	return info.Value != nil, nil
}

// TransferSOL builds and submits transfer_sol(to, amount) (§4.E).
func (b *Builder) TransferSOL(ctx context.Context, to solana.PublicKey, lamports uint64) (string, error) {
	if lamports == 0 {
		return "", ErrInvalidAmount
	}
	payerAccount, err := b.wallet.MainAccount(ctx)
	if err != nil {
		return "", err
	}
	blockhash, err := b.ordinaryBlockhash(ctx)
	if err != nil {
		return "", err
	}
	inst := system.NewTransferInstruction(payerAccount.PublicKey, to, lamports)
	return b.signAndSubmit(ctx, []solana.Instruction{inst}, payerAccount.PublicKey, blockhash, []wallet.Account{payerAccount})
}

// CreateNonceAccount builds and submits create_nonce_account(owner) (§4.E):
// a CreateAccount + InitializeNonceAccount pair in one atomic transaction.
// Idempotent: if the derived nonce account already exists, its address is
// returned with no transaction built.
func (b *Builder) CreateNonceAccount(ctx context.Context) (solana.PublicKey, string, error) {
	payerAccount, err := b.wallet.MainAccount(ctx)
	if err != nil {
		return solana.PublicKey{}, "", err
	}
	nonceAccount, err := b.wallet.NonceAccount(ctx)
	if err != nil {
		return solana.PublicKey{}, "", err
	}

	exists, err := b.accountExists(ctx, nonceAccount.PublicKey)
	if err != nil {
		return solana.PublicKey{}, "", err
	}
	if exists {
		return nonceAccount.PublicKey, "", nil
	}

	blockhash, err := b.ordinaryBlockhash(ctx)
	if err != nil {
		return solana.PublicKey{}, "", err
	}

	create := system.NewCreateAccountInstruction(
		payerAccount.PublicKey, nonceAccount.PublicKey,
		system.DefaultNonceAccountRentLamports, system.NonceAccountSize,
		solana.SystemProgramID,
	)
	initialize := system.NewInitializeNonceAccountInstruction(nonceAccount.PublicKey, payerAccount.PublicKey)

	sig, err := b.signAndSubmit(ctx,
		[]solana.Instruction{create, initialize},
		payerAccount.PublicKey, blockhash,
		[]wallet.Account{payerAccount, nonceAccount},
	)
	return nonceAccount.PublicKey, sig, err
}

// SendSOLWithDurableNonce builds and submits send_sol_with_durable_nonce(to,
// amount): [advance_nonce, transfer] using the nonce account's stored
// blockhash (§4.E step 3, second branch).
func (b *Builder) SendSOLWithDurableNonce(ctx context.Context, to solana.PublicKey, lamports uint64) (string, error) {
	if lamports == 0 {
		return "", ErrInvalidAmount
	}
	payerAccount, err := b.wallet.MainAccount(ctx)
	if err != nil {
		return "", err
	}
	nonceAccount, err := b.wallet.NonceAccount(ctx)
	if err != nil {
		return "", err
	}

	info, err := b.aggregator.GetAccountInfo(ctx, rpc.DefaultStrategy(), nonceAccount.PublicKey.String(), rpc.EncodingBase64)
	if err != nil {
		return "", err
	}
	if info.Value == nil || len(info.Value.Data) == 0 {
		return "", fmt.Errorf("nonce account %s not found", nonceAccount.PublicKey)
	}
	decoded, err := rpc.DecodeNonceAccount(info.Value.Data[0])
	if err != nil {
		return "", err
	}

	advance := system.NewAdvanceNonceAccountInstruction(nonceAccount.PublicKey, payerAccount.PublicKey)
	transfer := system.NewTransferInstruction(payerAccount.PublicKey, to, lamports)

	return b.signAndSubmit(ctx,
		[]solana.Instruction{advance, transfer},
		payerAccount.PublicKey, decoded.Blockhash,
		[]wallet.Account{payerAccount},
	)
}

// CreateATA builds and submits create_ata(mint) (§4.E): a single ATA-create
// instruction, idempotent on the derived ATA already existing.
func (b *Builder) CreateATA(ctx context.Context, mint solana.PublicKey) (solana.PublicKey, string, error) {
	payerAccount, err := b.wallet.MainAccount(ctx)
	if err != nil {
		return solana.PublicKey{}, "", err
	}
	tokenProgramID, err := b.tokenProgramForMint(ctx, mint)
	if err != nil {
		return solana.PublicKey{}, "", err
	}
	ata, _, err := solana.FindAssociatedTokenAddress(payerAccount.PublicKey, mint, tokenProgramID)
	if err != nil {
		return solana.PublicKey{}, "", err
	}

	exists, err := b.accountExists(ctx, ata)
	if err != nil {
		return solana.PublicKey{}, "", err
	}
	if exists {
		return ata, "", nil
	}

	blockhash, err := b.ordinaryBlockhash(ctx)
	if err != nil {
		return solana.PublicKey{}, "", err
	}

	inst, err := associatedtokenaccount.NewCreateInstruction(payerAccount.PublicKey, payerAccount.PublicKey, mint, tokenProgramID)
	if err != nil {
		return solana.PublicKey{}, "", err
	}

	sig, err := b.signAndSubmit(ctx, []solana.Instruction{inst}, payerAccount.PublicKey, blockhash, []wallet.Account{payerAccount})
	return ata, sig, err
}

// TransferSPL builds and submits transfer_spl(mint, to, amount) (§4.E):
// derives sender and recipient ATAs, resolves the mint's owning token
// program, and submits one SPL-token transfer.
func (b *Builder) TransferSPL(ctx context.Context, mint, to solana.PublicKey, amount uint64) (string, error) {
	if amount == 0 {
		return "", ErrInvalidAmount
	}
	payerAccount, err := b.wallet.MainAccount(ctx)
	if err != nil {
		return "", err
	}
	tokenProgramID, err := b.tokenProgramForMint(ctx, mint)
	if err != nil {
		return "", err
	}
	senderATA, _, err := solana.FindAssociatedTokenAddress(payerAccount.PublicKey, mint, tokenProgramID)
	if err != nil {
		return "", err
	}
	recipientATA, _, err := solana.FindAssociatedTokenAddress(to, mint, tokenProgramID)
	if err != nil {
		return "", err
	}

	blockhash, err := b.ordinaryBlockhash(ctx)
	if err != nil {
		return "", err
	}

	inst := token.NewTransferInstruction(tokenProgramID, amount, senderATA, recipientATA, payerAccount.PublicKey)
	return b.signAndSubmit(ctx, []solana.Instruction{inst}, payerAccount.PublicKey, blockhash, []wallet.Account{payerAccount})
}

// CreateHTLC builds and submits create_htlc(order_id, mint, amount,
// hashlock, timelock, recipient) (§4.E), idempotent on the derived HTLC PDA
// already existing.
func (b *Builder) CreateHTLC(ctx context.Context, orderID string, mint solana.PublicKey, amount uint64, hashlock [32]byte, timelock int64, recipient solana.PublicKey) (solana.PublicKey, string, error) {
	if amount == 0 {
		return solana.PublicKey{}, "", ErrInvalidAmount
	}
	senderAccount, err := b.wallet.MainAccount(ctx)
	if err != nil {
		return solana.PublicKey{}, "", err
	}
	tokenProgramID, err := b.tokenProgramForMint(ctx, mint)
	if err != nil {
		return solana.PublicKey{}, "", err
	}

	htlcPDA, _, err := solana.FindHTLCAddress(orderID, b.cfg.HTLCProgramID)
	if err != nil {
		return solana.PublicKey{}, "", err
	}
	exists, err := b.accountExists(ctx, htlcPDA)
	if err != nil {
		return solana.PublicKey{}, "", err
	}
	if exists {
		return htlcPDA, "", nil
	}

	senderATA, _, err := solana.FindAssociatedTokenAddress(senderAccount.PublicKey, mint, tokenProgramID)
	if err != nil {
		return solana.PublicKey{}, "", err
	}

	blockhash, err := b.ordinaryBlockhash(ctx)
	if err != nil {
		return solana.PublicKey{}, "", err
	}

	inst, err := htlcprogram.NewCreateHTLCInstruction(
		b.cfg.HTLCProgramID, orderID, amount, hashlock, timelock,
		senderAccount.PublicKey, recipient, senderATA, mint, tokenProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, "", err
	}

	sig, err := b.signAndSubmit(ctx, []solana.Instruction{inst}, senderAccount.PublicKey, blockhash, []wallet.Account{senderAccount})
	return htlcPDA, sig, err
}

// ClaimHTLC builds and submits claim_htlc(order_id, secret) (§4.E): the
// caller's wallet main account is the claimant.
func (b *Builder) ClaimHTLC(ctx context.Context, orderID string, secret [32]byte, mint solana.PublicKey) (string, error) {
	claimantAccount, err := b.wallet.MainAccount(ctx)
	if err != nil {
		return "", err
	}
	tokenProgramID, err := b.tokenProgramForMint(ctx, mint)
	if err != nil {
		return "", err
	}
	htlcPDA, _, err := solana.FindHTLCAddress(orderID, b.cfg.HTLCProgramID)
	if err != nil {
		return "", err
	}
	htlcATA, _, err := solana.FindAssociatedTokenAddress(htlcPDA, mint, tokenProgramID)
	if err != nil {
		return "", err
	}
	recipientATA, _, err := solana.FindAssociatedTokenAddress(claimantAccount.PublicKey, mint, tokenProgramID)
	if err != nil {
		return "", err
	}

	blockhash, err := b.ordinaryBlockhash(ctx)
	if err != nil {
		return "", err
	}

	inst, err := htlcprogram.NewClaimHTLCInstruction(
		b.cfg.HTLCProgramID, orderID, secret,
		claimantAccount.PublicKey, htlcATA, recipientATA, mint, tokenProgramID,
	)
	if err != nil {
		return "", err
	}

	return b.signAndSubmit(ctx, []solana.Instruction{inst}, claimantAccount.PublicKey, blockhash, []wallet.Account{claimantAccount})
}

// RefundHTLC builds and submits refund_htlc(order_id) (§4.E): sender-signed.
func (b *Builder) RefundHTLC(ctx context.Context, orderID string, mint solana.PublicKey) (string, error) {
	senderAccount, err := b.wallet.MainAccount(ctx)
	if err != nil {
		return "", err
	}
	tokenProgramID, err := b.tokenProgramForMint(ctx, mint)
	if err != nil {
		return "", err
	}
	htlcPDA, _, err := solana.FindHTLCAddress(orderID, b.cfg.HTLCProgramID)
	if err != nil {
		return "", err
	}
	htlcATA, _, err := solana.FindAssociatedTokenAddress(htlcPDA, mint, tokenProgramID)
	if err != nil {
		return "", err
	}
	senderATA, _, err := solana.FindAssociatedTokenAddress(senderAccount.PublicKey, mint, tokenProgramID)
	if err != nil {
		return "", err
	}

	blockhash, err := b.ordinaryBlockhash(ctx)
	if err != nil {
		return "", err
	}

	inst, err := htlcprogram.NewRefundHTLCInstruction(
		b.cfg.HTLCProgramID, orderID,
		senderAccount.PublicKey, htlcATA, senderATA, mint, tokenProgramID,
	)
	if err != nil {
		return "", err
	}

	return b.signAndSubmit(ctx, []solana.Instruction{inst}, senderAccount.PublicKey, blockhash, []wallet.Account{senderAccount})
}
