package config

import (
	"fmt"

	solana "github.com/atomic-swap/solana-htlc"
	"github.com/atomic-swap/solana-htlc/signer"
	"github.com/spf13/viper"
)

// BindFlags registers defaults and HTLCCTL_-prefixed env-var lookup for the
// settings cmd/htlcctl exposes as flags, using spf13/viper's precedence
// (flag > env > default). No config file is read.
func BindFlags(v *viper.Viper) {
	v.SetDefault("network", "devnet")
	v.SetDefault("ed25519_key_name", string(signer.LocalDev))
	v.SetDefault("commitment_level", "finalized")
	v.SetDefault("htlc_program_id", solana.DefaultHTLCProgramID.String())
	v.SetEnvPrefix("HTLCCTL")
	v.AutomaticEnv()
}

// FromViper builds a Config from a bound viper instance (see BindFlags).
func FromViper(v *viper.Viper) (*Config, error) {
	programID, err := solana.PublicKeyFromBase58(v.GetString("htlc_program_id"))
	if err != nil {
		return nil, fmt.Errorf("parse htlc_program_id: %w", err)
	}

	var network Network
	switch v.GetString("network") {
	case "mainnet":
		network = Network{Kind: Mainnet}
	case "devnet":
		network = Network{Kind: Devnet}
	case "custom":
		network = Network{Kind: Custom, URL: v.GetString("rpc_url")}
	default:
		return nil, fmt.Errorf("unknown network %q", v.GetString("network"))
	}

	var commitment CommitmentLevel
	switch v.GetString("commitment_level") {
	case "processed":
		commitment = Processed
	case "confirmed":
		commitment = Confirmed
	case "finalized":
		commitment = Finalized
	default:
		return nil, fmt.Errorf("unknown commitment_level %q", v.GetString("commitment_level"))
	}

	return New(
		WithNetwork(network),
		WithKeyName(signer.KeyName(v.GetString("ed25519_key_name"))),
		WithCommitmentLevel(commitment),
		WithHTLCProgramID(programID),
	), nil
}
