// Package dexscreener wraps the public DEX Screener token pricing API.
package dexscreener

import (
	"context"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"

	"mcp_market/internal/app/port"
	"mcp_market/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client fetches trading pair data for token addresses.
type Client interface {
	GetTokenPairsByAddresses(ctx context.Context, dexscreenerChainID string, tokenAddresses []string) ([]entity.PairData, error)
}

type clientImpl struct {
	client              *fasthttp.Client
	baseURL             string
	timeout             time.Duration
	logger              port.Logger
	maxTokensPerRequest int
}

// NewClient creates a DEX Screener API client.
func NewClient(baseURL string, timeout time.Duration, log port.Logger, maxTokensPerRequest int) Client {
	return &clientImpl{
		client:              &fasthttp.Client{},
		baseURL:             strings.TrimRight(baseURL, "/"),
		timeout:             timeout,
		logger:              log,
		maxTokensPerRequest: maxTokensPerRequest,
	}
}

// GetTokenPairsByAddresses requests pair data for up to maxTokensPerRequest
// token addresses on one chain in a single call.
func (c *clientImpl) GetTokenPairsByAddresses(ctx context.Context, dexscreenerChainID string, tokenAddresses []string) ([]entity.PairData, error) {
	if len(tokenAddresses) == 0 {
		return nil, fmt.Errorf("tokenAddresses cannot be empty")
	}
	if len(tokenAddresses) > c.maxTokensPerRequest {
		return nil, fmt.Errorf("number of token addresses (%d) exceeds max tokens per request (%d)",
			len(tokenAddresses), c.maxTokensPerRequest)
	}

	addresses := strings.Join(tokenAddresses, ",")
	requestURL := fmt.Sprintf("%s/tokens/v1/%s/%s", c.baseURL, dexscreenerChainID, addresses)

	c.logger.Debug("Requesting token pairs from DEX Screener", "url", requestURL)

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetContentTypeBytes([]byte("application/json"))

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			return nil, fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	rawBody := resp.Body()
	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("DEX Screener API request failed",
			"url", requestURL, "statusCode", resp.StatusCode(), "responseBody", string(rawBody))
		return nil, fmt.Errorf("DEX Screener API request to %s failed with status %d", requestURL, resp.StatusCode())
	}

	var pairs []entity.PairData
	if err := json.Unmarshal(rawBody, &pairs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal DEX Screener response from %s: %w", requestURL, err)
	}

	if len(pairs) == 0 {
		c.logger.Warn("DEXScreener returned 200 OK with an empty array of pairs",
			"url", requestURL, "dexscreenerChainID", dexscreenerChainID)
	}

	c.logger.Debug("Successfully unmarshalled DEX Screener response",
		"dexscreenerChainID", dexscreenerChainID, "pairCount", len(pairs))
	return pairs, nil
}
