package cmd

import (
	"encoding/hex"
	"fmt"

	solana "github.com/atomic-swap/solana-htlc"
	"github.com/spf13/cobra"
)

func parseHexHash(name, s string) ([32]byte, error) {
	var out [32]byte
	raw, err := hex.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("parse %s: %w", name, err)
	}
	if len(raw) != 32 {
		return out, fmt.Errorf("%s must decode to 32 bytes, got %d", name, len(raw))
	}
	copy(out[:], raw)
	return out, nil
}

var createHTLCCmd = &cobra.Command{
	Use:   "create-htlc <order-id> <mint> <amount> <hashlock-hex> <timelock-unix> <recipient>",
	Short: "Escrow an SPL token amount under a new HTLC (§4.E create_htlc)",
	Args:  cobra.ExactArgs(6),
	RunE: func(cmd *cobra.Command, args []string) error {
		orderID := args[0]
		mint, err := solana.PublicKeyFromBase58(args[1])
		if err != nil {
			return fmt.Errorf("parse <mint>: %w", err)
		}
		var amount uint64
		if _, err := fmt.Sscanf(args[2], "%d", &amount); err != nil {
			return fmt.Errorf("parse <amount>: %w", err)
		}
		hashlock, err := parseHexHash("<hashlock-hex>", args[3])
		if err != nil {
			return err
		}
		var timelock int64
		if _, err := fmt.Sscanf(args[4], "%d", &timelock); err != nil {
			return fmt.Errorf("parse <timelock-unix>: %w", err)
		}
		recipient, err := solana.PublicKeyFromBase58(args[5])
		if err != nil {
			return fmt.Errorf("parse <recipient>: %w", err)
		}

		b, err := newBuilder(cmd)
		if err != nil {
			return err
		}
		pda, sig, err := b.CreateHTLC(cmd.Context(), orderID, mint, amount, hashlock, timelock, recipient)
		if err != nil {
			return err
		}
		fmt.Println(pda)
		if sig != "" {
			fmt.Println(sig)
		}
		return nil
	},
}

var claimHTLCCmd = &cobra.Command{
	Use:   "claim-htlc <order-id> <secret-hex> <mint>",
	Short: "Claim an HTLC's escrowed funds with the preimage (§4.E claim_htlc)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		orderID := args[0]
		secret, err := parseHexHash("<secret-hex>", args[1])
		if err != nil {
			return err
		}
		mint, err := solana.PublicKeyFromBase58(args[2])
		if err != nil {
			return fmt.Errorf("parse <mint>: %w", err)
		}

		b, err := newBuilder(cmd)
		if err != nil {
			return err
		}
		sig, err := b.ClaimHTLC(cmd.Context(), orderID, secret, mint)
		if err != nil {
			return err
		}
		fmt.Println(sig)
		return nil
	},
}

var refundHTLCCmd = &cobra.Command{
	Use:   "refund-htlc <order-id> <mint>",
	Short: "Reclaim an expired HTLC's escrowed funds (§4.E refund_htlc)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		orderID := args[0]
		mint, err := solana.PublicKeyFromBase58(args[1])
		if err != nil {
			return fmt.Errorf("parse <mint>: %w", err)
		}

		b, err := newBuilder(cmd)
		if err != nil {
			return err
		}
		sig, err := b.RefundHTLC(cmd.Context(), orderID, mint)
		if err != nil {
			return err
		}
		fmt.Println(sig)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createHTLCCmd, claimHTLCCmd, refundHTLCCmd)
}
