package builder

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	solana "github.com/atomic-swap/solana-htlc"
	"github.com/atomic-swap/solana-htlc/config"
	"github.com/atomic-swap/solana-htlc/rpc"
	"github.com/atomic-swap/solana-htlc/signer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcRequest struct {
	Method string        `json:"method"`
	Params []interface{} `json:"params"`
}

// fakeNode serves a minimal JSON-RPC surface over httptest, mirroring the
// shape client_test.go-style integration tests exercise against a local
// validator, without requiring one.
func fakeNode(t *testing.T, mint solana.PublicKey) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		var result interface{}
		switch req.Method {
		case "getRecentBlockhashes":
			result = map[string]interface{}{"blockhashes": []string{"11111111111111111111111111111111"}}
		case "getAccountInfo":
			account := req.Params[0].(string)
			if account == mint.String() {
				result = map[string]interface{}{
					"value": map[string]interface{}{
						"lamports":  1,
						"owner":     solana.TokenProgramID.String(),
						"data":      []string{"", "base64"},
						"executable": false,
						"rentEpoch": 0,
					},
				}
			} else {
				result = map[string]interface{}{"value": nil}
			}
		case "getBalance":
			result = map[string]interface{}{"value": 42}
		case "sendTransaction":
			result = "5VERvT51ythuBtX1bMpLmSKAWMoasksVWA5WrfDJHywVJczSQJqoWAw5BA5TZzpg5LFwYqjJMcHbPfHMpV4Dm44U"
		default:
			http.Error(w, "unknown method "+req.Method, http.StatusBadRequest)
			return
		}

		resp := map[string]interface{}{"jsonrpc": "2.0", "id": 1, "result": result}
		body, err := json.Marshal(resp)
		require.NoError(t, err)
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	})
	return httptest.NewServer(mux)
}

func testBuilder(t *testing.T, mint solana.PublicKey) *Builder {
	t.Helper()
	var seed [32]byte
	seed[0] = 7
	oracle, err := signer.NewLocalOracle(seed)
	require.NoError(t, err)

	server := fakeNode(t, mint)
	t.Cleanup(server.Close)
	client := rpc.NewProviderClient("node-a", server.URL, 2*time.Second)
	aggregator := rpc.NewAggregator(client, client, client)

	cfg := config.New()
	return New(cfg, aggregator, oracle, []byte("owner-1"))
}

func TestBuilder_TransferSOL(t *testing.T) {
	mint := solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	b := testBuilder(t, mint)
	to := solana.MustPublicKeyFromBase58("4wBqpZM9msxygzsdeLPq6Zw3LoiAxJk3GjtKPpqkcsi")

	sig, err := b.TransferSOL(context.Background(), to, 1_000_000)
	require.NoError(t, err)
	assert.NotEmpty(t, sig)
}

func TestBuilder_TransferSOL_RejectsZeroAmount(t *testing.T) {
	mint := solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	b := testBuilder(t, mint)
	to := solana.MustPublicKeyFromBase58("4wBqpZM9msxygzsdeLPq6Zw3LoiAxJk3GjtKPpqkcsi")

	_, err := b.TransferSOL(context.Background(), to, 0)
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestBuilder_CreateATA_IdempotentWhenAlreadyExists(t *testing.T) {
	mint := solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	b := testBuilder(t, mint)

	main, err := b.SolanaAccount(context.Background())
	require.NoError(t, err)
	ata, _, err := solana.FindAssociatedTokenAddress(main, mint, solana.TokenProgramID)
	require.NoError(t, err)

	// Point the fake node's getAccountInfo at returning a populated value
	// for the ATA as well, simulating a pre-existing account.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		var result interface{}
		switch req.Method {
		case "getAccountInfo":
			account := req.Params[0].(string)
			if account == ata.String() || account == mint.String() {
				result = map[string]interface{}{"value": map[string]interface{}{
					"lamports": 1, "owner": solana.TokenProgramID.String(),
					"data": []string{"", "base64"}, "executable": false, "rentEpoch": 0,
				}}
			} else {
				result = map[string]interface{}{"value": nil}
			}
		default:
			http.Error(w, "unexpected method", http.StatusBadRequest)
			return
		}
		resp := map[string]interface{}{"jsonrpc": "2.0", "id": 1, "result": result}
		body, _ := json.Marshal(resp)
		w.Write(body)
	}))
	defer server.Close()

	client := rpc.NewProviderClient("node-a", server.URL, 2*time.Second)
	b.aggregator = rpc.NewAggregator(client, client, client)

	addr, sig, err := b.CreateATA(context.Background(), mint)
	require.NoError(t, err)
	assert.Equal(t, ata, addr)
	assert.Empty(t, sig, "idempotent create must not submit a transaction")
}

func TestBuilder_CreateHTLC_DerivesDeterministicPDA(t *testing.T) {
	mint := solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	b := testBuilder(t, mint)

	secret := [32]byte{1, 2, 3}
	hashlock := sha256.Sum256(secret[:])
	recipient := solana.MustPublicKeyFromBase58("4wBqpZM9msxygzsdeLPq6Zw3LoiAxJk3GjtKPpqkcsi")
	timelock := int64(9_999_999_999)

	pda, sig, err := b.CreateHTLC(context.Background(), "swap-builder-1", mint, 1_000_000, hashlock, timelock, recipient)
	require.NoError(t, err)
	assert.NotEmpty(t, sig)

	expected, _, err := solana.FindHTLCAddress("swap-builder-1", b.cfg.HTLCProgramID)
	require.NoError(t, err)
	assert.Equal(t, expected, pda)
}

func TestBuilder_GetBalance(t *testing.T) {
	mint := solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	b := testBuilder(t, mint)

	lamports, err := b.GetBalance(context.Background(), solana.PublicKey{})
	require.NoError(t, err)
	assert.Equal(t, uint64(42), lamports)
}

func TestBuilder_GetNonce_DecodesLayout(t *testing.T) {
	mint := solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")

	raw := make([]byte, 80)
	binary.LittleEndian.PutUint32(raw[4:8], 1) // Initialized
	encoded := base64.StdEncoding.EncodeToString(raw)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		result := map[string]interface{}{"value": map[string]interface{}{
			"lamports": 1, "owner": solana.SystemProgramID.String(),
			"data": []string{encoded, "base64"}, "executable": false, "rentEpoch": 0,
		}}
		resp := map[string]interface{}{"jsonrpc": "2.0", "id": 1, "result": result}
		body, _ := json.Marshal(resp)
		w.Write(body)
	}))
	defer server.Close()

	b := testBuilder(t, mint)
	client := rpc.NewProviderClient("node-a", server.URL, 2*time.Second)
	b.aggregator = rpc.NewAggregator(client, client, client)

	nonce, err := b.GetNonce(context.Background(), solana.PublicKey{})
	require.NoError(t, err)
	assert.Equal(t, rpc.NonceStateInitialized, nonce.State)
}
