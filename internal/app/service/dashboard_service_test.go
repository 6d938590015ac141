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

type fakeMarket struct {
	detail *entity.ServerDetail
	err    error
}

func (f *fakeMarket) ListServers(ctx context.Context, limit int, listType string) ([]entity.ServerSummary, error) {
	return nil, nil
}
func (f *fakeMarket) GetServer(ctx context.Context, serverID string) (*entity.ServerDetail, error) {
	return f.detail, f.err
}
func (f *fakeMarket) RegisterServer(ctx context.Context, req entity.RegisterServerRequest) (*entity.RegisterServerResult, error) {
	return nil, nil
}
func (f *fakeMarket) ListAPIKeys(ctx context.Context, userID string) ([]entity.APIKey, error) {
	return nil, nil
}
func (f *fakeMarket) CreateAPIKey(ctx context.Context, userID string, req entity.CreateAPIKeyRequest) (*entity.CreateAPIKeyResult, error) {
	return nil, nil
}
func (f *fakeMarket) RevokeAPIKey(ctx context.Context, userID string, keyID string) error {
	return nil
}
func (f *fakeMarket) CreateOnrampURL(ctx context.Context, userID string, req entity.OnrampRequest) (*entity.OnrampResult, error) {
	return nil, nil
}

const baseUSDC = "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"

func newDashboardService(t *testing.T, detail *entity.ServerDetail) *DashboardService {
	t.Helper()
	reg, err := registry.New(nil, "", nil)
	require.NoError(t, err)
	return NewDashboardService(&fakeMarket{detail: detail}, reg, logger.NewAdapter())
}

func TestBuildDashboardConvertsPricingFromBaseUnits(t *testing.T) {
	svc := newDashboardService(t, &entity.ServerDetail{
		ServerSummary: entity.ServerSummary{ID: "srv-1", Name: "Weather"},
		Tools: []entity.Tool{
			{
				ID:   "tool-1",
				Name: "get_weather",
				Pricing: []entity.PricingEntry{
					{MaxAmountRequiredRaw: "10000", AssetAddress: baseUSDC, Network: "base", TokenDecimals: 6, Active: true},
					// duplicate price after conversion, must be deduplicated
					{MaxAmountRequiredRaw: "10000", AssetAddress: baseUSDC, Network: "base", TokenDecimals: 6, Active: true},
					// inactive entries do not count as pricing
					{MaxAmountRequiredRaw: "999999", AssetAddress: baseUSDC, Network: "base", TokenDecimals: 6, Active: false},
				},
			},
			{ID: "tool-2", Name: "free_tool"},
		},
	})

	dash, err := svc.BuildDashboard(context.Background(), "srv-1")
	require.NoError(t, err)

	require.Len(t, dash.Tools, 2)
	paid := dash.Tools[0]
	assert.True(t, paid.Monetized)
	require.Len(t, paid.Prices, 1)
	assert.Equal(t, "0.01", paid.Prices[0].Amount)
	assert.Equal(t, "0.01 USDC", paid.Prices[0].Display)

	free := dash.Tools[1]
	assert.False(t, free.Monetized)
	assert.Empty(t, free.Prices)
}

func TestBuildDashboardRevenue(t *testing.T) {
	svc := newDashboardService(t, &entity.ServerDetail{
		ServerSummary: entity.ServerSummary{ID: "srv-1"},
		SummaryAnalytics: entity.SummaryAnalytics{
			TotalRequests: 120,
			RevenueDetails: []entity.RevenueDetail{
				{AmountRaw: "2500000", Currency: baseUSDC, Decimals: 6},  // 2.5
				{AmountRaw: "1000000000000000000", Decimals: 18},         // 1
				{AmountRaw: "", Decimals: 6},                             // ignored
			},
		},
		DailyAnalytics: []entity.DailyAnalytics{
			{
				Date:         "2026-08-30",
				RequestCount: 10,
				RevenueDetails: []entity.RevenueDetail{
					{AmountRaw: "500000", Decimals: 6}, // 0.5
				},
			},
		},
	})

	dash, err := svc.BuildDashboard(context.Background(), "srv-1")
	require.NoError(t, err)

	assert.InDelta(t, 3.5, dash.TotalRevenue, 1e-9)
	assert.Equal(t, "2.50", dash.PrimaryRevenue)
	assert.Equal(t, 120, dash.TotalRequests)

	require.Len(t, dash.Daily, 1)
	assert.Equal(t, "0.50", dash.Daily[0].Revenue)
}

func TestBuildDashboardEmptyRevenue(t *testing.T) {
	svc := newDashboardService(t, &entity.ServerDetail{
		ServerSummary: entity.ServerSummary{ID: "srv-1"},
	})

	dash, err := svc.BuildDashboard(context.Background(), "srv-1")
	require.NoError(t, err)
	assert.Zero(t, dash.TotalRevenue)
	assert.Equal(t, "0.00", dash.PrimaryRevenue)
}

func TestBuildDashboardSortsPaymentsNewestFirst(t *testing.T) {
	now := time.Now()
	svc := newDashboardService(t, &entity.ServerDetail{
		ServerSummary: entity.ServerSummary{ID: "srv-1"},
		Tools: []entity.Tool{
			{
				ID: "tool-1",
				Payments: []entity.PaymentRecord{
					{ID: "old", AmountRaw: "10000", TokenDecimals: 6, Currency: baseUSDC, Network: "base", Status: entity.PaymentCompleted, CreatedAt: now.Add(-time.Hour)},
					{ID: "new", AmountRaw: "20000", TokenDecimals: 6, Currency: baseUSDC, Network: "base", Status: entity.PaymentPending, CreatedAt: now},
				},
			},
		},
	})

	dash, err := svc.BuildDashboard(context.Background(), "srv-1")
	require.NoError(t, err)

	require.Len(t, dash.RecentPayments, 2)
	assert.Equal(t, "new", dash.RecentPayments[0].ID)
	assert.Equal(t, "0.02", dash.RecentPayments[0].Amount)
	assert.Equal(t, "0.02 USDC", dash.RecentPayments[0].Display)
	assert.Equal(t, "old", dash.RecentPayments[1].ID)
}

func TestBuildDashboardPropagatesBackendError(t *testing.T) {
	reg, err := registry.New(nil, "", nil)
	require.NoError(t, err)
	svc := NewDashboardService(&fakeMarket{err: entity.NewMarketError(404, nil)}, reg, logger.NewAdapter())

	_, err = svc.BuildDashboard(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, entity.MarketErrNotFound, entity.AsMarketError(err).Kind)
}
