package builder

import (
	"context"

	solana "github.com/atomic-swap/solana-htlc"
	"github.com/atomic-swap/solana-htlc/rpc"
)

// SolanaAccount answers solana_account(owner) (§6): the owner's main wallet
// account address.
func (b *Builder) SolanaAccount(ctx context.Context) (solana.PublicKey, error) {
	account, err := b.wallet.MainAccount(ctx)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return account.PublicKey, nil
}

// NonceAccountAddress answers nonce_account(owner) (§6): the owner's
// derived durable-nonce account address, whether or not it has been
// created on chain yet.
func (b *Builder) NonceAccountAddress(ctx context.Context) (solana.PublicKey, error) {
	account, err := b.wallet.NonceAccount(ctx)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return account.PublicKey, nil
}

// AssociatedTokenAccount answers associated_token_account(owner, mint)
// (§6): the owner's ATA address for mint, derived locally per §4.A once
// the mint account has been queried for its owning token program.
func (b *Builder) AssociatedTokenAccount(ctx context.Context, mint solana.PublicKey) (solana.PublicKey, error) {
	account, err := b.wallet.MainAccount(ctx)
	if err != nil {
		return solana.PublicKey{}, err
	}
	tokenProgramID, err := b.tokenProgramForMint(ctx, mint)
	if err != nil {
		return solana.PublicKey{}, err
	}
	ata, _, err := solana.FindAssociatedTokenAddress(account.PublicKey, mint, tokenProgramID)
	return ata, err
}

// GetBalance answers get_balance(account?) (§6): the main wallet account's
// balance in lamports when account is the zero value, else the given
// account's balance.
func (b *Builder) GetBalance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	target, err := b.resolveAccountOrMain(ctx, account)
	if err != nil {
		return 0, err
	}
	result, err := b.aggregator.GetBalance(ctx, rpc.DefaultStrategy(), target.String())
	if err != nil {
		return 0, err
	}
	return result.Lamports, nil
}

// GetNonce answers get_nonce(account?) (§6): the decoded durable-nonce
// account (including its stored blockhash) for account, or for the owner's
// own nonce account when account is the zero value.
func (b *Builder) GetNonce(ctx context.Context, account solana.PublicKey) (*rpc.NonceAccount, error) {
	var target solana.PublicKey
	if account.IsZero() {
		nonceAccount, err := b.wallet.NonceAccount(ctx)
		if err != nil {
			return nil, err
		}
		target = nonceAccount.PublicKey
	} else {
		target = account
	}

	info, err := b.aggregator.GetAccountInfo(ctx, rpc.DefaultStrategy(), target.String(), rpc.EncodingBase64)
	if err != nil {
		return nil, err
	}
	if info.Value == nil || len(info.Value.Data) == 0 {
		return nil, rpc.ErrNonceNotInitialized
	}
	return rpc.DecodeNonceAccount(info.Value.Data[0])
}

// GetSPLTokenBalance answers get_spl_token_balance(account?, mint) (§6): the
// token amount held by account's ATA for mint, or the owner's own ATA when
// account is the zero value.
func (b *Builder) GetSPLTokenBalance(ctx context.Context, account, mint solana.PublicKey) (rpc.TokenAmount, error) {
	owner, err := b.resolveAccountOrMain(ctx, account)
	if err != nil {
		return rpc.TokenAmount{}, err
	}
	tokenProgramID, err := b.tokenProgramForMint(ctx, mint)
	if err != nil {
		return rpc.TokenAmount{}, err
	}
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint, tokenProgramID)
	if err != nil {
		return rpc.TokenAmount{}, err
	}
	result, err := b.aggregator.GetTokenAccountBalance(ctx, rpc.DefaultStrategy(), ata.String())
	if err != nil {
		return rpc.TokenAmount{}, err
	}
	return result.Value, nil
}

func (b *Builder) resolveAccountOrMain(ctx context.Context, account solana.PublicKey) (solana.PublicKey, error) {
	if !account.IsZero() {
		return account, nil
	}
	main, err := b.wallet.MainAccount(ctx)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return main.PublicKey, nil
}
