// Package mcptools connects to live MCP servers over Streamable HTTP and
// lists the tools they expose, for pre-filling a registration form.
package mcptools

import (
	"context"
	"fmt"
	"net/http"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"mcp_market/internal/app/port"
	"mcp_market/internal/domain/entity"
)

// Discoverer implements port.ToolDiscoverer using the official MCP Go SDK.
type Discoverer struct {
	httpClient   *http.Client
	timeout      time.Duration
	defaultPrice string
	logger       port.Logger
}

var _ port.ToolDiscoverer = (*Discoverer)(nil)

// New creates a Discoverer. defaultPrice is the human-readable price attached
// to every discovered tool until the operator edits it.
func New(timeout time.Duration, defaultPrice string, log port.Logger) *Discoverer {
	return &Discoverer{
		httpClient:   &http.Client{Timeout: timeout},
		timeout:      timeout,
		defaultPrice: defaultPrice,
		logger:       log,
	}
}

// DiscoverTools opens an MCP session against serverURL, lists its tools and
// closes the session. The session handshake and listing share one deadline.
func (d *Discoverer) DiscoverTools(ctx context.Context, serverURL string) ([]entity.RegisterMCPTool, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	transport := &mcpsdk.StreamableClientTransport{
		Endpoint:   serverURL,
		HTTPClient: d.httpClient,
	}
	client := mcpsdk.NewClient(&mcpsdk.Implementation{
		Name:    "mcp-market-discovery",
		Version: "1.0.0",
	}, nil)

	d.logger.Debug("Connecting to MCP server for tool discovery", "url", serverURL)
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MCP server %s: %w", serverURL, err)
	}
	defer session.Close()

	result, err := session.ListTools(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list tools of %s: %w", serverURL, err)
	}

	tools := make([]entity.RegisterMCPTool, 0, len(result.Tools))
	for _, tool := range result.Tools {
		out := entity.RegisterMCPTool{
			Name:        tool.Name,
			Description: tool.Description,
			Price:       d.defaultPrice,
		}
		if schema, ok := tool.InputSchema.(map[string]any); ok {
			out.InputSchema = schema
		}
		tools = append(tools, out)
	}

	d.logger.Info("Discovered MCP tools", "url", serverURL, "count", len(tools))
	return tools, nil
}
