// Package cmd implements htlcctl, a command-line front end over the
// transaction builder (§4.E) and its read-only queries (§6), in the
// cobra+viper shape the teacher's cmd/slnc subcommands used.
package cmd

import (
	"encoding/hex"
	"fmt"
	"time"

	solana "github.com/atomic-swap/solana-htlc"
	"github.com/atomic-swap/solana-htlc/builder"
	"github.com/atomic-swap/solana-htlc/config"
	"github.com/atomic-swap/solana-htlc/rpc"
	"github.com/atomic-swap/solana-htlc/signer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:   "htlcctl",
	Short: "Drive the Solana HTLC transaction builder from the command line",
}

func init() {
	config.BindFlags(v)

	flags := rootCmd.PersistentFlags()
	flags.StringSlice("rpc", []string{"http://127.0.0.1:8899"}, "RPC provider endpoints (repeat for multiple)")
	flags.String("network", "devnet", "cluster: mainnet, devnet, or custom")
	flags.String("commitment-level", "finalized", "processed, confirmed, or finalized")
	flags.String("htlc-program-id", solana.DefaultHTLCProgramID.String(), "deployed HTLC program id")
	flags.String("key-name", string(signer.LocalDev), "signer oracle key name")
	flags.String("owner", "default-owner", "opaque owner principal identifying this wallet's derivation path")
	flags.String("dev-seed-hex", "", "32-byte hex seed for the local development signer oracle (dev only)")
	flags.Duration("timeout", 10*time.Second, "per-provider RPC timeout")

	// config.FromViper reads underscore-separated keys (matching its own
	// env-var precedence in BindFlags); map each dash-named CLI flag to its
	// viper key explicitly rather than relying on BindPFlags' 1:1 name copy.
	_ = v.BindPFlag("rpc", flags.Lookup("rpc"))
	_ = v.BindPFlag("network", flags.Lookup("network"))
	_ = v.BindPFlag("commitment_level", flags.Lookup("commitment-level"))
	_ = v.BindPFlag("htlc_program_id", flags.Lookup("htlc-program-id"))
	_ = v.BindPFlag("ed25519_key_name", flags.Lookup("key-name"))
	_ = v.BindPFlag("owner", flags.Lookup("owner"))
	_ = v.BindPFlag("dev_seed_hex", flags.Lookup("dev-seed-hex"))
	_ = v.BindPFlag("timeout", flags.Lookup("timeout"))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newBuilder wires a Builder from the bound flags: one ProviderClient per
// --rpc endpoint, a Threshold{2,3}-style aggregator, and a local signer
// oracle seeded from --dev-seed-hex (§4.D's oracle contract, stood in
// locally for development per signer.LocalOracle's doc comment).
func newBuilder(cmd *cobra.Command) (*builder.Builder, error) {
	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, err
	}

	endpoints := v.GetStringSlice("rpc")
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("at least one --rpc endpoint is required")
	}
	timeout := v.GetDuration("timeout")
	providers := make([]*rpc.ProviderClient, len(endpoints))
	for i, endpoint := range endpoints {
		providers[i] = rpc.NewProviderClient(fmt.Sprintf("provider-%d", i), endpoint, timeout)
	}
	aggregator := rpc.NewAggregator(providers...)

	seedHex := v.GetString("dev_seed_hex")
	var seed [32]byte
	if seedHex != "" {
		raw, err := hex.DecodeString(seedHex)
		if err != nil {
			return nil, fmt.Errorf("decode --dev-seed-hex: %w", err)
		}
		if len(raw) != 32 {
			return nil, fmt.Errorf("--dev-seed-hex must decode to 32 bytes, got %d", len(raw))
		}
		copy(seed[:], raw)
	}
	oracle, err := signer.NewLocalOracle(seed)
	if err != nil {
		return nil, fmt.Errorf("init signer oracle: %w", err)
	}

	return builder.New(cfg, aggregator, oracle, []byte(v.GetString("owner"))), nil
}
