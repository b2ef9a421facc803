package helius

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	wsolMint = "So11111111111111111111111111111111111111112"
	bonkMint = "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263"
)

func quietLog() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestIsMintAddress(t *testing.T) {
	assert.True(t, IsMintAddress(wsolMint))
	assert.True(t, IsMintAddress(bonkMint))

	assert.False(t, IsMintAddress(""))
	assert.False(t, IsMintAddress("not-base58-0OIl"))
	assert.False(t, IsMintAddress("abc")) // too short
}

func TestResolve_HappyPath(t *testing.T) {
	var gotReq metadataRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "test-key", r.URL.Query().Get("api-key"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &gotReq))

		resp := []map[string]any{
			{
				"account": wsolMint,
				"onChainMetadata": map[string]any{
					"metadata": map[string]any{
						"data": map[string]any{"symbol": "SOL", "name": "Wrapped SOL"},
					},
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", 4, quietLog())
	metas := c.Resolve(context.Background(), []string{wsolMint, bonkMint})

	require.Len(t, metas, 2)
	assert.Equal(t, "SOL", metas[0].Symbol)
	assert.Equal(t, "Wrapped SOL", metas[0].Name)
	assert.True(t, metas[0].Resolved())
	assert.False(t, metas[1].Resolved(), "mint absent from response stays unresolved")

	assert.ElementsMatch(t, []string{wsolMint, bonkMint}, gotReq.MintAccounts)
	assert.True(t, gotReq.IncludeOffChain)
}

func TestResolve_NoAPIKeySkipsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without an API key")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 4, quietLog())
	metas := c.Resolve(context.Background(), []string{wsolMint})

	require.Len(t, metas, 1)
	assert.False(t, metas[0].Resolved())
}

func TestResolve_MalformedMintNotSent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req metadataRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{wsolMint}, req.MintAccounts)
		_ = json.NewEncoder(w).Encode([]map[string]any{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", 4, quietLog())
	metas := c.Resolve(context.Background(), []string{"garbage", wsolMint})

	require.Len(t, metas, 2)
	assert.False(t, metas[0].Resolved())
	assert.False(t, metas[1].Resolved())
}

func TestResolve_ServerErrorYieldsUnresolved(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", 4, quietLog())
	metas := c.Resolve(context.Background(), []string{wsolMint, bonkMint})

	require.Len(t, metas, 2)
	assert.False(t, metas[0].Resolved())
	assert.False(t, metas[1].Resolved())
}

func TestResolve_DuplicateMintsAligned(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var req metadataRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.MintAccounts, 1, "duplicates deduped before the request")

		resp := []map[string]any{
			{
				"account": wsolMint,
				"onChainMetadata": map[string]any{
					"metadata": map[string]any{
						"data": map[string]any{"symbol": "SOL", "name": "Wrapped SOL"},
					},
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", 4, quietLog())
	metas := c.Resolve(context.Background(), []string{wsolMint, wsolMint, wsolMint})

	require.Len(t, metas, 3)
	for _, m := range metas {
		assert.Equal(t, "SOL", m.Symbol)
	}
	assert.Equal(t, 1, calls)
}
