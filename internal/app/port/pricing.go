package port

import (
	"context"

	"mcp_market/internal/domain/entity"
)

// TokenPriceService resolves USD prices for tokens. Stablecoins are pinned to
// 1.0; everything else comes from the market data provider and is cached.
type TokenPriceService interface {
	// PriceUSD returns the cached price for a token on a network.
	PriceUSD(ctx context.Context, network string, tokenAddress string) (float64, bool)

	// WarmUp pre-fetches and caches prices for all registry tokens.
	WarmUp(ctx context.Context) error
}

// BalanceService produces the aggregated balance view for all tracked wallets.
type BalanceService interface {
	FetchAggregatedBalances(ctx context.Context) (entity.AggregatedBalances, error)
}
