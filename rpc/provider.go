package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ProviderClient talks JSON-RPC to exactly one Solana RPC endpoint, in the
// request/response shape web3-fighter-wallet-chain-account-rebuild's
// svmbase.svmClient uses (resty.Client.R().SetBody(...).SetResult(...).Post).
type ProviderClient struct {
	Name    string
	client  *resty.Client
	timeout time.Duration
}

// NewProviderClient builds a client against baseURL with the given per-call
// timeout (§5: "each provider fan-out has a wall-clock budget").
func NewProviderClient(name, baseURL string, timeout time.Duration) *ProviderClient {
	return &ProviderClient{
		Name:    name,
		client:  resty.New().SetBaseURL(baseURL),
		timeout: timeout,
	}
}

func (p *ProviderClient) call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req := jsonRPCRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params}
	resp := new(jsonRPCResponse)

	httpResp, err := p.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(resp).
		Post("/")
	if err != nil {
		if ctx.Err() != nil {
			return ErrTimeout
		}
		return fmt.Errorf("%s: transport error: %w", p.Name, err)
	}
	if httpResp.IsError() {
		return fmt.Errorf("%s: http error: %s", p.Name, httpResp.Status())
	}
	if resp.Error != nil {
		return fmt.Errorf("%s: rpc error %d: %s", p.Name, resp.Error.Code, resp.Error.Message)
	}
	if out != nil {
		if err := json.Unmarshal(resp.Result, out); err != nil {
			return fmt.Errorf("%s: decode result: %w", p.Name, err)
		}
	}
	return nil
}

func (p *ProviderClient) GetBalance(ctx context.Context, account string) (GetBalanceResult, error) {
	var out GetBalanceResult
	err := p.call(ctx, "getBalance", []interface{}{account}, &out)
	return out, err
}

func (p *ProviderClient) GetAccountInfo(ctx context.Context, account string, encoding Encoding) (GetAccountInfoResult, error) {
	var out GetAccountInfoResult
	err := p.call(ctx, "getAccountInfo", []interface{}{account, map[string]string{"encoding": string(encoding)}}, &out)
	return out, err
}

func (p *ProviderClient) GetTokenAccountBalance(ctx context.Context, account string) (GetTokenAccountBalanceResult, error) {
	var out GetTokenAccountBalanceResult
	err := p.call(ctx, "getTokenAccountBalance", []interface{}{account}, &out)
	return out, err
}

func (p *ProviderClient) GetLatestBlockhash(ctx context.Context) (GetLatestBlockhashResult, error) {
	var out GetLatestBlockhashResult
	err := p.call(ctx, "getLatestBlockhash", nil, &out)
	return out, err
}

// recentBlockhashesResult is the shape of the (deprecated but still widely
// supported) getRecentBlockhashes method: a newest-first list, which
// EstimateRecentBlockhash's max-of-min-rank policy fans out over.
type recentBlockhashesResult struct {
	Blockhashes []string `json:"blockhashes"`
}

// RecentBlockhashes fetches this provider's recent-blockhash list, newest
// first, implementing RecentBlockhashesProvider.
func (p *ProviderClient) RecentBlockhashes(ctx context.Context) ([]string, error) {
	var out recentBlockhashesResult
	err := p.call(ctx, "getRecentBlockhashes", nil, &out)
	return out.Blockhashes, err
}

func (p *ProviderClient) SendTransaction(ctx context.Context, rawTransactionBase64 string) (SendTransactionResult, error) {
	var signature string
	err := p.call(ctx, "sendTransaction", []interface{}{rawTransactionBase64, map[string]string{"encoding": "base64"}}, &signature)
	return SendTransactionResult{Signature: signature}, err
}
