package port

import (
	"context"

	"mcp_market/internal/domain/entity"
)

// MarketplaceClient is the typed client for the external marketplace backend.
// All persistent state (servers, tools, payments, analytics, API keys) lives
// behind it.
type MarketplaceClient interface {
	ListServers(ctx context.Context, limit int, listType string) ([]entity.ServerSummary, error)
	GetServer(ctx context.Context, serverID string) (*entity.ServerDetail, error)
	RegisterServer(ctx context.Context, req entity.RegisterServerRequest) (*entity.RegisterServerResult, error)

	ListAPIKeys(ctx context.Context, userID string) ([]entity.APIKey, error)
	CreateAPIKey(ctx context.Context, userID string, req entity.CreateAPIKeyRequest) (*entity.CreateAPIKeyResult, error)
	RevokeAPIKey(ctx context.Context, userID string, keyID string) error

	CreateOnrampURL(ctx context.Context, userID string, req entity.OnrampRequest) (*entity.OnrampResult, error)
}

// ToolDiscoverer lists the tools a live MCP server exposes, used during
// registration.
type ToolDiscoverer interface {
	DiscoverTools(ctx context.Context, serverURL string) ([]entity.RegisterMCPTool, error)
}
