package rpc

import (
	"context"
	"errors"
)

// ErrNoCommonBlockhash is returned when no blockhash is seen by every
// provider (§4.E step 3).
var ErrNoCommonBlockhash = errors.New("rpc: no blockhash common to all providers")

// RecentBlockhashesProvider fetches the last N blockhashes from one
// provider, newest first. It is the per-provider primitive
// EstimateRecentBlockhash fans out over; ProviderClient.RecentBlockhashes
// backs it against the real (deprecated but still served)
// getRecentBlockhashes RPC method.
type RecentBlockhashesProvider interface {
	RecentBlockhashes(ctx context.Context) ([]string, error)
}

// EstimateRecentBlockhash implements §4.E's "max-of-min rank" policy: fetch
// the last N blockhashes from each provider (newest first, i.e. rank 0 is
// newest), and return the newest blockhash that every provider has seen —
// equivalently, the blockhash with the smallest worst-case (maximum) rank
// across providers, chosen by minimizing that maximum.
func EstimateRecentBlockhash(ctx context.Context, providers []RecentBlockhashesProvider) (string, error) {
	perProviderRank := make([]map[string]int, len(providers))
	for i, p := range providers {
		hashes, err := p.RecentBlockhashes(ctx)
		if err != nil {
			continue
		}
		ranks := make(map[string]int, len(hashes))
		for rank, hash := range hashes {
			ranks[hash] = rank
		}
		perProviderRank[i] = ranks
	}

	bestHash := ""
	bestMaxRank := -1
	seen := make(map[string]bool)
	for _, ranks := range perProviderRank {
		for hash := range ranks {
			if seen[hash] {
				continue
			}
			seen[hash] = true

			maxRank := -1
			seenByAll := true
			for _, otherRanks := range perProviderRank {
				if otherRanks == nil {
					seenByAll = false
					break
				}
				rank, ok := otherRanks[hash]
				if !ok {
					seenByAll = false
					break
				}
				if rank > maxRank {
					maxRank = rank
				}
			}
			if !seenByAll {
				continue
			}
			if bestMaxRank == -1 || maxRank < bestMaxRank {
				bestMaxRank = maxRank
				bestHash = hash
			}
		}
	}

	if bestHash == "" {
		return "", ErrNoCommonBlockhash
	}
	return bestHash, nil
}
