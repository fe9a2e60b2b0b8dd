package main

import (
	"fmt"
	"os"

	"github.com/atomic-swap/solana-htlc/cmd/htlcctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
