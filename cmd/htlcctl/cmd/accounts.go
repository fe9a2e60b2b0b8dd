package cmd

import (
	"fmt"

	solana "github.com/atomic-swap/solana-htlc"
	"github.com/spf13/cobra"
)

var createNonceAccountCmd = &cobra.Command{
	Use:   "create-nonce-account",
	Short: "Create the owner's durable nonce account if it doesn't exist (§4.E create_nonce_account)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := newBuilder(cmd)
		if err != nil {
			return err
		}
		addr, sig, err := b.CreateNonceAccount(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(addr)
		if sig != "" {
			fmt.Println(sig)
		}
		return nil
	},
}

var createATACmd = &cobra.Command{
	Use:   "create-ata <mint>",
	Short: "Create the owner's associated token account for mint if it doesn't exist (§4.E create_ata)",
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
		addr, sig, err := b.CreateATA(cmd.Context(), mint)
		if err != nil {
			return err
		}
		fmt.Println(addr)
		if sig != "" {
			fmt.Println(sig)
		}
		return nil
	},
}

var transferSPLCmd = &cobra.Command{
	Use:   "transfer-spl <mint> <to> <amount>",
	Short: "Transfer an SPL token amount to an address (§4.E transfer_spl)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		mint, err := solana.PublicKeyFromBase58(args[0])
		if err != nil {
			return fmt.Errorf("parse <mint>: %w", err)
		}
		to, err := solana.PublicKeyFromBase58(args[1])
		if err != nil {
			return fmt.Errorf("parse <to>: %w", err)
		}
		var amount uint64
		if _, err := fmt.Sscanf(args[2], "%d", &amount); err != nil {
			return fmt.Errorf("parse <amount>: %w", err)
		}

		b, err := newBuilder(cmd)
		if err != nil {
			return err
		}
		sig, err := b.TransferSPL(cmd.Context(), mint, to, amount)
		if err != nil {
			return err
		}
		fmt.Println(sig)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createNonceAccountCmd, createATACmd, transferSPLCmd)
}
