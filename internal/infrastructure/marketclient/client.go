// Package marketclient is the typed HTTP client for the marketplace backend.
// Every failure is classified into an entity.MarketError so handlers can map
// it onto the right user-facing message.
package marketclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"

	"mcp_market/internal/app/port"
	"mcp_market/internal/domain/entity"
	"mcp_market/internal/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client implements port.MarketplaceClient over fasthttp.
type Client struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  port.Logger
}

var _ port.MarketplaceClient = (*Client)(nil)

// New creates a marketplace backend client. baseURL is the backend origin,
// e.g. "https://api.mcp.market".
func New(baseURL string, timeout time.Duration, log port.Logger) *Client {
	return &Client{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  log,
	}
}

// do executes one backend request and decodes a 2xx JSON body into out (when
// out is non-nil). Non-2xx statuses and transport failures come back as
// *entity.MarketError.
func (c *Client) do(ctx context.Context, method, path, endpoint string, body any, out any) error {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.SetContentTypeBytes([]byte("application/json"))

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body for %s %s: %w", method, path, err)
		}
		req.SetBody(encoded)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		metrics.BackendRequests.WithLabelValues(endpoint, "error").Inc()
		c.logger.Error("Marketplace request failed at transport level",
			"method", method, "path", path, "error", err)
		return entity.NewMarketError(0, fmt.Errorf("%s %s: %w", method, path, err))
	}

	status := resp.StatusCode()
	if status < 200 || status > 299 {
		metrics.BackendRequests.WithLabelValues(endpoint, "error").Inc()
		c.logger.Warn("Marketplace request returned non-2xx status",
			"method", method, "path", path, "status", status)
		return entity.NewMarketError(status, fmt.Errorf("%s %s returned status %d", method, path, status))
	}

	metrics.BackendRequests.WithLabelValues(endpoint, "ok").Inc()
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode response of %s %s: %w", method, path, err)
	}
	return nil
}

// ListServers fetches the marketplace listing. listType selects the backend
// ordering ("trending", "new"); zero limit means backend default.
func (c *Client) ListServers(ctx context.Context, limit int, listType string) ([]entity.ServerSummary, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if listType != "" {
		q.Set("type", listType)
	}
	path := "/servers"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var servers []entity.ServerSummary
	if err := c.do(ctx, fasthttp.MethodGet, path, "list_servers", nil, &servers); err != nil {
		return nil, err
	}
	return servers, nil
}

// GetServer fetches the full dashboard payload for one server.
func (c *Client) GetServer(ctx context.Context, serverID string) (*entity.ServerDetail, error) {
	var detail entity.ServerDetail
	path := "/servers/" + url.PathEscape(serverID)
	if err := c.do(ctx, fasthttp.MethodGet, path, "get_server", nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// RegisterServer submits a new MCP server listing.
func (c *Client) RegisterServer(ctx context.Context, req entity.RegisterServerRequest) (*entity.RegisterServerResult, error) {
	var result entity.RegisterServerResult
	if err := c.do(ctx, fasthttp.MethodPost, "/servers", "register_server", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListAPIKeys returns the user's API keys.
func (c *Client) ListAPIKeys(ctx context.Context, userID string) ([]entity.APIKey, error) {
	var keys []entity.APIKey
	path := "/users/" + url.PathEscape(userID) + "/api-keys"
	if err := c.do(ctx, fasthttp.MethodGet, path, "list_api_keys", nil, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// CreateAPIKey mints a new API key for the user. The plaintext secret is only
// present in this response.
func (c *Client) CreateAPIKey(ctx context.Context, userID string, req entity.CreateAPIKeyRequest) (*entity.CreateAPIKeyResult, error) {
	var result entity.CreateAPIKeyResult
	path := "/users/" + url.PathEscape(userID) + "/api-keys"
	if err := c.do(ctx, fasthttp.MethodPost, path, "create_api_key", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RevokeAPIKey deactivates one of the user's API keys.
func (c *Client) RevokeAPIKey(ctx context.Context, userID string, keyID string) error {
	path := "/users/" + url.PathEscape(userID) + "/api-keys/" + url.PathEscape(keyID)
	return c.do(ctx, fasthttp.MethodDelete, path, "revoke_api_key", nil, nil)
}

// CreateOnrampURL asks the backend for a hosted fiat onramp URL targeting the
// user's wallet.
func (c *Client) CreateOnrampURL(ctx context.Context, userID string, req entity.OnrampRequest) (*entity.OnrampResult, error) {
	var result entity.OnrampResult
	path := "/users/" + url.PathEscape(userID) + "/onramp"
	if err := c.do(ctx, fasthttp.MethodPost, path, "create_onramp_url", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
