package marketclient

import (
	"context"
	stdjson "encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcp_market/internal/domain/entity"
	"mcp_market/internal/pkg/logger"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 2*time.Second, logger.NewAdapter()), srv
}

func TestListServers(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/servers", r.URL.Path)
		assert.Equal(t, "6", r.URL.Query().Get("limit"))
		assert.Equal(t, "trending", r.URL.Query().Get("type"))
		_ = stdjson.NewEncoder(w).Encode([]entity.ServerSummary{
			{ID: "srv-1", Name: "Weather Tools", ToolCount: 3},
			{ID: "srv-2", Name: "Search", ToolCount: 1},
		})
	}))

	servers, err := client.ListServers(context.Background(), 6, "trending")
	require.NoError(t, err)
	require.Len(t, servers, 2)
	assert.Equal(t, "Weather Tools", servers[0].Name)
}

func TestGetServerNotFoundClassified(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetServer(context.Background(), "missing")
	require.Error(t, err)
	me := entity.AsMarketError(err)
	assert.Equal(t, entity.MarketErrNotFound, me.Kind)
	assert.Equal(t, http.StatusNotFound, me.StatusCode)
}

func TestServerErrorClassifiedAsMaintenance(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.ListServers(context.Background(), 0, "")
	require.Error(t, err)
	assert.Equal(t, entity.MarketErrMaintenance, entity.AsMarketError(err).Kind)
}

func TestConnectionFailureClassified(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listening anymore
	client := New(srv.URL, 500*time.Millisecond, logger.NewAdapter())

	_, err := client.ListServers(context.Background(), 0, "")
	require.Error(t, err)
	assert.Equal(t, entity.MarketErrConnection, entity.AsMarketError(err).Kind)
}

func TestRegisterServerPostsPayload(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/servers", r.URL.Path)

		var req entity.RegisterServerRequest
		require.NoError(t, stdjson.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://mcp.example.org/mcp", req.MCPOrigin)
		assert.Len(t, req.Tools, 1)
		assert.Equal(t, "0.01", req.Tools[0].Price)

		_ = stdjson.NewEncoder(w).Encode(entity.RegisterServerResult{ServerID: "srv-42"})
	}))

	result, err := client.RegisterServer(context.Background(), entity.RegisterServerRequest{
		MCPOrigin:       "https://mcp.example.org/mcp",
		ReceiverAddress: "0x1111111111111111111111111111111111111111",
		Name:            "Example",
		Tools: []entity.RegisterMCPTool{
			{Name: "get_weather", Price: "0.01"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "srv-42", result.ServerID)
}

func TestAPIKeyLifecycle(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/users/user-1/api-keys":
			_ = stdjson.NewEncoder(w).Encode([]entity.APIKey{{ID: "key-1", Active: true}})
		case r.Method == http.MethodPost && r.URL.Path == "/users/user-1/api-keys":
			_ = stdjson.NewEncoder(w).Encode(entity.CreateAPIKeyResult{
				Key:    entity.APIKey{ID: "key-2", Active: true},
				Secret: "sk_live_secret",
			})
		case r.Method == http.MethodDelete && r.URL.Path == "/users/user-1/api-keys/key-1":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	ctx := context.Background()

	keys, err := client.ListAPIKeys(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, keys, 1)

	created, err := client.CreateAPIKey(ctx, "user-1", entity.CreateAPIKeyRequest{Permissions: []string{"read"}})
	require.NoError(t, err)
	assert.Equal(t, "sk_live_secret", created.Secret)

	require.NoError(t, client.RevokeAPIKey(ctx, "user-1", "key-1"))
}

func TestCreateOnrampURL(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/users/user-1/onramp", r.URL.Path)
		_ = stdjson.NewEncoder(w).Encode(entity.OnrampResult{OnrampURL: "https://pay.example.org/session/abc"})
	}))

	result, err := client.CreateOnrampURL(context.Background(), "user-1", entity.OnrampRequest{
		Address: "0x1111111111111111111111111111111111111111",
		Network: "base",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.org/session/abc", result.OnrampURL)
}
