package cmd

import (
	"fmt"

	solana "github.com/atomic-swap/solana-htlc"
	"github.com/spf13/cobra"
)

// parseOptionalAccount parses an optional base58 account argument, returning
// the zero PublicKey (meaning "the owner's own account") when arg is empty.
func parseOptionalAccount(arg string) (solana.PublicKey, error) {
	if arg == "" {
		return solana.PublicKey{}, nil
	}
	return solana.PublicKeyFromBase58(arg)
}

var solanaAccountCmd = &cobra.Command{
	Use:   "solana-account",
	Short: "Print the owner's main wallet account address (§6 solana_account)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := newBuilder(cmd)
		if err != nil {
			return err
		}
		account, err := b.SolanaAccount(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(account)
		return nil
	},
}

var nonceAccountCmd = &cobra.Command{
	Use:   "nonce-account",
	Short: "Print the owner's durable nonce account address (§6 nonce_account)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := newBuilder(cmd)
		if err != nil {
			return err
		}
		account, err := b.NonceAccountAddress(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(account)
		return nil
	},
}

var associatedTokenAccountCmd = &cobra.Command{
	Use:   "associated-token-account <mint>",
	Short: "Print the owner's associated token account address for mint (§6 associated_token_account)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mint, err := solana.PublicKeyFromBase58(args[0])
		if err != nil {
			return fmt.Errorf("parse <mint>: %w", err)
		}
		b, err := newBuilder(cmd)
		if err != nil {
			return err
		}
		ata, err := b.AssociatedTokenAccount(cmd.Context(), mint)
		if err != nil {
			return err
		}
		fmt.Println(ata)
		return nil
	},
}

var getBalanceCmd = &cobra.Command{
	Use:   "get-balance [account]",
	Short: "Print an account's lamport balance, or the owner's own (§6 get_balance)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var accountArg string
		if len(args) == 1 {
			accountArg = args[0]
		}
		account, err := parseOptionalAccount(accountArg)
		if err != nil {
			return fmt.Errorf("parse [account]: %w", err)
		}
		b, err := newBuilder(cmd)
		if err != nil {
			return err
		}
		lamports, err := b.GetBalance(cmd.Context(), account)
		if err != nil {
			return err
		}
		fmt.Println(lamports)
		return nil
	},
}

var getNonceCmd = &cobra.Command{
	Use:   "get-nonce [account]",
	Short: "Print a durable nonce account's stored blockhash, or the owner's own (§6 get_nonce)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var accountArg string
		if len(args) == 1 {
			accountArg = args[0]
		}
		account, err := parseOptionalAccount(accountArg)
		if err != nil {
			return fmt.Errorf("parse [account]: %w", err)
		}
		b, err := newBuilder(cmd)
		if err != nil {
			return err
		}
		nonce, err := b.GetNonce(cmd.Context(), account)
		if err != nil {
			return err
		}
		fmt.Println(nonce.Blockhash)
		return nil
	},
}

var getSPLTokenBalanceCmd = &cobra.Command{
	Use:   "get-spl-token-balance <mint> [account]",
	Short: "Print an account's token balance for mint, or the owner's own (§6 get_spl_token_balance)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mint, err := solana.PublicKeyFromBase58(args[0])
		if err != nil {
			return fmt.Errorf("parse <mint>: %w", err)
		}
		var accountArg string
		if len(args) == 2 {
			accountArg = args[1]
		}
		account, err := parseOptionalAccount(accountArg)
		if err != nil {
			return fmt.Errorf("parse [account]: %w", err)
		}
		b, err := newBuilder(cmd)
		if err != nil {
			return err
		}
		balance, err := b.GetSPLTokenBalance(cmd.Context(), account, mint)
		if err != nil {
			return err
		}
		fmt.Println(balance.Amount)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(
		solanaAccountCmd,
		nonceAccountCmd,
		associatedTokenAccountCmd,
		getBalanceCmd,
		getNonceCmd,
		getSPLTokenBalanceCmd,
	)
}
