package cmd

import (
	"fmt"

	solana "github.com/atomic-swap/solana-htlc"
	"github.com/spf13/cobra"
)

var transferCmd = &cobra.Command{
	Use:   "transfer <to> <lamports>",
	Short: "Send SOL to an address (§4.E transfer_sol)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		to, err := solana.PublicKeyFromBase58(args[0])
		if err != nil {
			return fmt.Errorf("parse <to>: %w", err)
		}
		var lamports uint64
		if _, err := fmt.Sscanf(args[1], "%d", &lamports); err != nil {
			return fmt.Errorf("parse <lamports>: %w", err)
		}

		b, err := newBuilder(cmd)
		if err != nil {
			return err
		}
		sig, err := b.TransferSOL(cmd.Context(), to, lamports)
		if err != nil {
			return err
		}
		fmt.Println(sig)
		return nil
	},
}

var sendWithDurableNonceCmd = &cobra.Command{
	Use:   "send-with-durable-nonce <to> <lamports>",
	Short: "Send SOL using the owner's durable nonce account (§4.E send_sol_with_durable_nonce)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		to, err := solana.PublicKeyFromBase58(args[0])
		if err != nil {
			return fmt.Errorf("parse <to>: %w", err)
		}
		var lamports uint64
		if _, err := fmt.Sscanf(args[1], "%d", &lamports); err != nil {
			return fmt.Errorf("parse <lamports>: %w", err)
		}

		b, err := newBuilder(cmd)
		if err != nil {
			return err
		}
		sig, err := b.SendSOLWithDurableNonce(cmd.Context(), to, lamports)
		if err != nil {
			return err
		}
		fmt.Println(sig)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(transferCmd, sendWithDurableNonceCmd)
}
