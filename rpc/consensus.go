package rpc

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ConsensusStrategy reconciles N provider responses into one (§4.C).
type ConsensusStrategy interface {
	// Total is how many providers to fan out to.
	Total() int
	// Reconcile normalizes and groups successful responses, returning the
	// accepted normalized result or an Inconsistent/InsufficientProviders
	// error.
	Reconcile(responses []providerResponse) (json.RawMessage, error)
}

type providerResponse struct {
	Provider string
	Result   json.RawMessage
	Err      error
}

// Equality accepts iff all n successful responses are byte-equal on the
// normalized result.
type Equality struct {
	N int
}

func (e Equality) Total() int { return e.N }

func (e Equality) Reconcile(responses []providerResponse) (json.RawMessage, error) {
	successful := filterSuccessful(responses)
	if len(successful) < e.N {
		return nil, &InsufficientProvidersError{Required: e.N, Got: len(successful), Responses: responses}
	}
	normalized := make([]json.RawMessage, 0, len(successful))
	for _, r := range successful {
		normalized = append(normalized, normalizeJSON(r.Result))
	}
	first := normalized[0]
	for _, n := range normalized[1:] {
		if !bytes.Equal(first, n) {
			return nil, &InconsistentError{Responses: responses}
		}
	}
	return first, nil
}

// Threshold accepts iff some group of normalized-identical responses has at
// least Min members among Total fanned-out providers; ties broken by
// largest group.
type Threshold struct {
	Min   int
	TotalN int
}

func (t Threshold) Total() int { return t.TotalN }

func (t Threshold) Reconcile(responses []providerResponse) (json.RawMessage, error) {
	successful := filterSuccessful(responses)
	if len(successful) < t.Min {
		return nil, &InsufficientProvidersError{Required: t.Min, Got: len(successful), Responses: responses}
	}

	groups := make(map[string][]json.RawMessage)
	order := make([]string, 0)
	for _, r := range successful {
		normalized := normalizeJSON(r.Result)
		key := string(normalized)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], normalized)
	}

	var bestKey string
	bestSize := -1
	for _, key := range order {
		size := len(groups[key])
		if size > bestSize {
			bestSize = size
			bestKey = key
		}
	}

	if bestSize >= t.Min {
		return groups[bestKey][0], nil
	}
	return nil, &InconsistentError{Responses: responses}
}

func filterSuccessful(responses []providerResponse) []providerResponse {
	out := make([]providerResponse, 0, len(responses))
	for _, r := range responses {
		if r.Err == nil {
			out = append(out, r)
		}
	}
	return out
}

// normalizeJSON re-marshals to collapse whitespace differences (§4.C:
// "whitespace-insensitive for JSON"). Binary (base64) payloads are already
// byte-equal-comparable as JSON strings, so this single normalization path
// covers both cases.
func normalizeJSON(raw json.RawMessage) json.RawMessage {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return raw
	}
	out, err := json.Marshal(v)
	if err != nil {
		return raw
	}
	return out
}

// ErrTimeout is returned by a provider call that exceeded its wall-clock
// budget (§4.C, §5); it is treated as a non-matching response by every
// consensus strategy.
var ErrTimeout = errors.New("rpc: provider timed out")

// InconsistentError reports that no group of responses reached consensus.
type InconsistentError struct {
	Responses []providerResponse
}

func (e *InconsistentError) Error() string { return "rpc: providers disagree" }

// InsufficientProvidersError reports fewer successful responses than the
// strategy's minimum.
type InsufficientProvidersError struct {
	Required, Got int
	Responses     []providerResponse
}

func (e *InsufficientProvidersError) Error() string {
	return "rpc: insufficient providers responded"
}
