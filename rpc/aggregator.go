package rpc

import (
	"context"
	"encoding/json"
	"sync"

	applog "github.com/atomic-swap/solana-htlc/log"
	"go.uber.org/zap"
)

// Aggregator fans a request across a fixed set of providers and reconciles
// their responses through a ConsensusStrategy (§4.C). Per-operation
// strategy selection happens at the call site (custom-single-provider uses
// Equality(1); default multi-provider uses Threshold{2,3}).
type Aggregator struct {
	providers []*ProviderClient
}

// NewAggregator builds an Aggregator over providers, in fan-out order.
func NewAggregator(providers ...*ProviderClient) *Aggregator {
	return &Aggregator{providers: providers}
}

// fanOut runs call against the first strategy.Total() providers
// concurrently, rejoining at a barrier once every goroutine has returned or
// ctx is cancelled (§5: "N outgoing provider requests run concurrently and
// rejoin at a barrier").
func (a *Aggregator) fanOut(ctx context.Context, strategy ConsensusStrategy, call func(context.Context, *ProviderClient) (interface{}, error)) (json.RawMessage, error) {
	n := strategy.Total()
	if n > len(a.providers) {
		n = len(a.providers)
	}

	responses := make([]providerResponse, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			provider := a.providers[i]
			result, err := call(ctx, provider)
			if err != nil {
				responses[i] = providerResponse{Provider: provider.Name, Err: err}
				return
			}
			raw, marshalErr := json.Marshal(result)
			if marshalErr != nil {
				responses[i] = providerResponse{Provider: provider.Name, Err: marshalErr}
				return
			}
			responses[i] = providerResponse{Provider: provider.Name, Result: raw}
		}(i)
	}
	wg.Wait()

	result, err := strategy.Reconcile(responses)
	if err != nil {
		applog.Logger().Warn("provider consensus failed", zap.Int("providers", n), zap.Error(err))
	}
	return result, err
}

func (a *Aggregator) GetBalance(ctx context.Context, strategy ConsensusStrategy, account string) (GetBalanceResult, error) {
	raw, err := a.fanOut(ctx, strategy, func(ctx context.Context, p *ProviderClient) (interface{}, error) {
		return p.GetBalance(ctx, account)
	})
	if err != nil {
		return GetBalanceResult{}, err
	}
	var out GetBalanceResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return GetBalanceResult{}, err
	}
	return out, nil
}

func (a *Aggregator) GetAccountInfo(ctx context.Context, strategy ConsensusStrategy, account string, encoding Encoding) (GetAccountInfoResult, error) {
	raw, err := a.fanOut(ctx, strategy, func(ctx context.Context, p *ProviderClient) (interface{}, error) {
		return p.GetAccountInfo(ctx, account, encoding)
	})
	if err != nil {
		return GetAccountInfoResult{}, err
	}
	var out GetAccountInfoResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return GetAccountInfoResult{}, err
	}
	return out, nil
}

func (a *Aggregator) GetTokenAccountBalance(ctx context.Context, strategy ConsensusStrategy, account string) (GetTokenAccountBalanceResult, error) {
	raw, err := a.fanOut(ctx, strategy, func(ctx context.Context, p *ProviderClient) (interface{}, error) {
		return p.GetTokenAccountBalance(ctx, account)
	})
	if err != nil {
		return GetTokenAccountBalanceResult{}, err
	}
	var out GetTokenAccountBalanceResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return GetTokenAccountBalanceResult{}, err
	}
	return out, nil
}

func (a *Aggregator) SendTransaction(ctx context.Context, strategy ConsensusStrategy, rawTransactionBase64 string) (SendTransactionResult, error) {
	raw, err := a.fanOut(ctx, strategy, func(ctx context.Context, p *ProviderClient) (interface{}, error) {
		return p.SendTransaction(ctx, rawTransactionBase64)
	})
	if err != nil {
		return SendTransactionResult{}, err
	}
	var out SendTransactionResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return SendTransactionResult{}, err
	}
	return out, nil
}

// EstimateRecentBlockhash fans RecentBlockhashes out to every configured
// provider and applies the max-of-min-rank policy (§4.E step 3), for
// ordinary (non-durable-nonce) transactions.
func (a *Aggregator) EstimateRecentBlockhash(ctx context.Context) (string, error) {
	providers := make([]RecentBlockhashesProvider, len(a.providers))
	for i, p := range a.providers {
		providers[i] = p
	}
	return EstimateRecentBlockhash(ctx, providers)
}

// DefaultStrategy is §4.C's "default multi-provider defaults to
// Threshold{min:2, total:3}".
func DefaultStrategy() ConsensusStrategy { return Threshold{Min: 2, TotalN: 3} }

// SingleProviderStrategy is §4.C's "custom-single-provider uses Equality(1)".
func SingleProviderStrategy() ConsensusStrategy { return Equality{N: 1} }
