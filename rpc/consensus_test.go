package rpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

// scenario 8 / P8: three providers return balances {100, 100, 101}.
func TestScenario_ConsensusDisagreement(t *testing.T) {
	responses := []providerResponse{
		{Provider: "a", Result: raw(t, GetBalanceResult{Lamports: 100})},
		{Provider: "b", Result: raw(t, GetBalanceResult{Lamports: 100})},
		{Provider: "c", Result: raw(t, GetBalanceResult{Lamports: 101})},
	}

	threshold := Threshold{Min: 2, TotalN: 3}
	result, err := threshold.Reconcile(responses)
	require.NoError(t, err)
	var got GetBalanceResult
	require.NoError(t, json.Unmarshal(result, &got))
	assert.Equal(t, uint64(100), got.Lamports)

	equality := Equality{N: 3}
	_, err = equality.Reconcile(responses)
	require.Error(t, err)
	var inconsistent *InconsistentError
	assert.ErrorAs(t, err, &inconsistent)
}

func TestEquality_AllAgree(t *testing.T) {
	responses := []providerResponse{
		{Provider: "a", Result: raw(t, GetBalanceResult{Lamports: 42})},
		{Provider: "b", Result: raw(t, GetBalanceResult{Lamports: 42})},
	}
	result, err := Equality{N: 2}.Reconcile(responses)
	require.NoError(t, err)
	var got GetBalanceResult
	require.NoError(t, json.Unmarshal(result, &got))
	assert.Equal(t, uint64(42), got.Lamports)
}

func TestThreshold_InsufficientProviders(t *testing.T) {
	responses := []providerResponse{
		{Provider: "a", Result: raw(t, GetBalanceResult{Lamports: 42})},
		{Provider: "b", Err: ErrTimeout},
		{Provider: "c", Err: ErrTimeout},
	}
	_, err := Threshold{Min: 2, TotalN: 3}.Reconcile(responses)
	require.Error(t, err)
	var insufficient *InsufficientProvidersError
	assert.ErrorAs(t, err, &insufficient)
}

func TestThreshold_NoGroupReachesMinimum(t *testing.T) {
	responses := []providerResponse{
		{Provider: "a", Result: raw(t, GetBalanceResult{Lamports: 1})},
		{Provider: "b", Result: raw(t, GetBalanceResult{Lamports: 2})},
		{Provider: "c", Result: raw(t, GetBalanceResult{Lamports: 3})},
	}
	_, err := Threshold{Min: 2, TotalN: 3}.Reconcile(responses)
	require.Error(t, err)
	var inconsistent *InconsistentError
	assert.ErrorAs(t, err, &inconsistent)
}

func TestNormalizeJSON_WhitespaceInsensitive(t *testing.T) {
	a := json.RawMessage(`{"value":100}`)
	b := json.RawMessage(`{  "value"  :  100  }`)
	assert.Equal(t, normalizeJSON(a), normalizeJSON(b))
}
