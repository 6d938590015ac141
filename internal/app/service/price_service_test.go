package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcp_market/internal/domain/entity"
	"mcp_market/internal/infrastructure/registry"
	"mcp_market/internal/pkg/logger"
)

type fakeDexClient struct {
	pairs []entity.PairData
	calls int
	err   error
}

func (f *fakeDexClient) GetTokenPairsByAddresses(ctx context.Context, dexscreenerChainID string, tokenAddresses []string) ([]entity.PairData, error) {
	f.calls++
	return f.pairs, f.err
}

const baseWETH = "0x4200000000000000000000000000000000000006"

func newPriceService(t *testing.T, dex *fakeDexClient) *TokenPriceService {
	t.Helper()
	reg, err := registry.New(nil, "", nil)
	require.NoError(t, err)
	return NewTokenPriceService(reg, dex, time.Hour, time.Hour, 30, logger.NewAdapter())
}

func TestStablecoinsPricedAtOne(t *testing.T) {
	dex := &fakeDexClient{}
	svc := newPriceService(t, dex)

	price, ok := svc.PriceUSD(context.Background(), "base", "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913")
	require.True(t, ok)
	assert.Equal(t, 1.0, price)
	// stablecoins never hit the market data provider
	assert.Zero(t, dex.calls)
}

func TestVolatileTokenPricedFromBestLiquidityPair(t *testing.T) {
	dex := &fakeDexClient{pairs: []entity.PairData{
		{
			BaseToken: entity.DEXToken{Address: baseWETH, Symbol: "WETH"},
			PriceUsd:  "2500.10",
			Liquidity: &entity.DEXLiquidity{Usd: 100_000},
		},
		{
			// deeper pool wins
			BaseToken: entity.DEXToken{Address: baseWETH, Symbol: "WETH"},
			PriceUsd:  "2501.55",
			Liquidity: &entity.DEXLiquidity{Usd: 5_000_000},
		},
	}}
	svc := newPriceService(t, dex)

	price, ok := svc.PriceUSD(context.Background(), "base", baseWETH)
	require.True(t, ok)
	assert.Equal(t, 2501.55, price)

	// second lookup is served from cache
	_, ok = svc.PriceUSD(context.Background(), "base", baseWETH)
	require.True(t, ok)
	assert.Equal(t, 1, dex.calls)
}

func TestUnknownTokenHasNoPrice(t *testing.T) {
	dex := &fakeDexClient{}
	svc := newPriceService(t, dex)

	_, ok := svc.PriceUSD(context.Background(), "base", "0x00000000000000000000000000000000000000AB")
	assert.False(t, ok)
}

func TestNetworkWithoutDEXScreenerIDSkipsLookup(t *testing.T) {
	dex := &fakeDexClient{}
	svc := newPriceService(t, dex)

	// base-sepolia has no DEX Screener chain id
	_, ok := svc.PriceUSD(context.Background(), "base-sepolia", baseWETH)
	assert.False(t, ok)
	assert.Zero(t, dex.calls)
}

func TestWarmUpBatchesNonStablecoins(t *testing.T) {
	dex := &fakeDexClient{pairs: []entity.PairData{
		{
			BaseToken: entity.DEXToken{Address: baseWETH, Symbol: "WETH"},
			PriceUsd:  "2500",
			Liquidity: &entity.DEXLiquidity{Usd: 1_000_000},
		},
	}}
	svc := newPriceService(t, dex)

	require.NoError(t, svc.WarmUp(context.Background()))
	require.Positive(t, dex.calls)

	warmed := dex.calls
	price, ok := svc.PriceUSD(context.Background(), "base", baseWETH)
	require.True(t, ok)
	assert.Equal(t, 2500.0, price)
	assert.Equal(t, warmed, dex.calls)
}
