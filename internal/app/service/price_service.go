package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"mcp_market/internal/app/port"
	"mcp_market/internal/infrastructure/dexscreener"
)

// TokenPriceService resolves USD prices for registry tokens. Stablecoins are
// pinned at 1.0; everything else is looked up on DEX Screener and cached.
type TokenPriceService struct {
	registry  port.TokenRegistry
	dexClient dexscreener.Client
	cache     *gocache.Cache
	batchSize int
	logger    port.Logger
}

var _ port.TokenPriceService = (*TokenPriceService)(nil)

// NewTokenPriceService creates the price service.
func NewTokenPriceService(
	registry port.TokenRegistry,
	dexClient dexscreener.Client,
	cacheTTL time.Duration,
	cleanupInterval time.Duration,
	batchSize int,
	log port.Logger,
) *TokenPriceService {
	return &TokenPriceService{
		registry:  registry,
		dexClient: dexClient,
		cache:     gocache.New(cacheTTL, cleanupInterval),
		batchSize: batchSize,
		logger:    log,
	}
}

func cacheKey(network, tokenAddress string) string {
	return strings.ToLower(network) + "/" + strings.ToLower(tokenAddress)
}

// PriceUSD returns the cached USD price of a token. The boolean is false when
// no price is known, in which case callers should value the position at zero
// rather than guessing.
func (s *TokenPriceService) PriceUSD(ctx context.Context, network, tokenAddress string) (float64, bool) {
	if info, ok := s.registry.TokenInfo(tokenAddress, network); ok && info.IsStablecoin {
		return 1.0, true
	}

	if cached, found := s.cache.Get(cacheKey(network, tokenAddress)); found {
		return cached.(float64), true
	}

	// Cache miss: fetch just this token. Bulk warm-up happens in WarmUp.
	cfg, ok := s.registry.NetworkConfig(network)
	if !ok || cfg.DEXScreenerID == "" {
		return 0, false
	}
	if err := s.fetchBatch(ctx, cfg.Identifier, cfg.DEXScreenerID, []string{tokenAddress}); err != nil {
		s.logger.Warn("Price lookup failed", "network", network, "token", tokenAddress, "error", err)
		return 0, false
	}
	if cached, found := s.cache.Get(cacheKey(network, tokenAddress)); found {
		return cached.(float64), true
	}
	return 0, false
}

// WarmUp prefetches prices for all non-stablecoin registry tokens on networks
// that have a DEX Screener chain id. Failures are logged per network and do
// not abort the warm-up.
func (s *TokenPriceService) WarmUp(ctx context.Context) error {
	for _, network := range s.registry.Networks() {
		if network.DEXScreenerID == "" {
			continue
		}

		var addresses []string
		for _, token := range s.registry.TokensByNetwork(network.Identifier) {
			if token.IsStablecoin || token.IsNative {
				continue
			}
			addresses = append(addresses, token.Address)
		}

		for start := 0; start < len(addresses); start += s.batchSize {
			end := start + s.batchSize
			if end > len(addresses) {
				end = len(addresses)
			}
			if err := s.fetchBatch(ctx, network.Identifier, network.DEXScreenerID, addresses[start:end]); err != nil {
				s.logger.Warn("Price warm-up batch failed",
					"network", network.Identifier, "batchSize", end-start, "error", err)
			}
		}
	}
	return nil
}

// fetchBatch queries DEX Screener for a set of token addresses on one chain
// and caches the best-liquidity USD price per base token.
func (s *TokenPriceService) fetchBatch(ctx context.Context, networkID, dexScreenerID string, addresses []string) error {
	if len(addresses) == 0 {
		return nil
	}

	pairs, err := s.dexClient.GetTokenPairsByAddresses(ctx, dexScreenerID, addresses)
	if err != nil {
		return err
	}

	type best struct {
		price     float64
		liquidity float64
	}
	bestByToken := make(map[string]best)

	for _, pair := range pairs {
		price, err := strconv.ParseFloat(pair.PriceUsd, 64)
		if err != nil || price <= 0 {
			continue
		}
		liquidity := 0.0
		if pair.Liquidity != nil {
			liquidity = pair.Liquidity.Usd
		}
		key := strings.ToLower(pair.BaseToken.Address)
		if current, ok := bestByToken[key]; !ok || liquidity > current.liquidity {
			bestByToken[key] = best{price: price, liquidity: liquidity}
		}
	}

	for key, b := range bestByToken {
		s.cache.Set(cacheKey(networkID, key), b.price, gocache.DefaultExpiration)
	}
	return nil
}
