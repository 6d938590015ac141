package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"mcp_market/internal/app/port"
	"mcp_market/internal/domain/entity"
	"mcp_market/internal/pkg/amount"
	"mcp_market/internal/pkg/format"
)

// ToolPriceView is one deduplicated price option of a tool, ready to render.
type ToolPriceView struct {
	Amount       string `json:"amount"` // human decimal
	Display      string `json:"display"`
	AssetAddress string `json:"assetAddress"`
	Network      string `json:"network"`
}

// ToolView is a tool row on the server dashboard.
type ToolView struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	UsageCount  int             `json:"usageCount"`
	Monetized   bool            `json:"monetized"`
	Prices      []ToolPriceView `json:"prices"`
}

// PaymentView is one payment row with the raw amount already converted to a
// human decimal and formatted with its token symbol.
type PaymentView struct {
	ID              string               `json:"id"`
	Amount          string               `json:"amount"`
	Display         string               `json:"display"`
	Currency        string               `json:"currency"`
	Network         string               `json:"network"`
	TransactionHash string               `json:"transactionHash,omitempty"`
	Status          entity.PaymentStatus `json:"status"`
	CreatedAt       time.Time            `json:"createdAt"`
}

// DailyRevenueView is one day of activity with its revenue summed across
// tokens.
type DailyRevenueView struct {
	Date         string `json:"date"`
	RequestCount int    `json:"requestCount"`
	ToolCalls    int    `json:"toolCalls"`
	UniqueUsers  int    `json:"uniqueUsers"`
	Revenue      string `json:"revenue"` // total, 2 decimal places
}

// ServerDashboard is the fully rendered dashboard payload for one server.
type ServerDashboard struct {
	Server          entity.ServerSummary `json:"server"`
	ReceiverAddress string               `json:"receiverAddress,omitempty"`
	Tools           []ToolView           `json:"tools"`
	RecentPayments  []PaymentView        `json:"recentPayments"`
	Daily           []DailyRevenueView   `json:"daily"`
	TotalRequests   int                  `json:"totalRequests"`
	TotalToolCalls  int                  `json:"totalToolCalls"`
	UniqueUsers     int                  `json:"uniqueUsers"`
	TotalRevenue    float64              `json:"totalRevenue"`
	PrimaryRevenue  string               `json:"primaryRevenue"` // first revenue bucket, 2 decimal places
}

// DashboardService turns raw backend server payloads into display-ready
// dashboards. All base-unit amounts are converted and formatted here so the
// API layer serves strings straight through.
type DashboardService struct {
	market   port.MarketplaceClient
	registry port.TokenRegistry
	logger   port.Logger
}

// NewDashboardService creates the dashboard builder.
func NewDashboardService(market port.MarketplaceClient, registry port.TokenRegistry, log port.Logger) *DashboardService {
	return &DashboardService{market: market, registry: registry, logger: log}
}

// safeNumber parses a decimal string, treating anything unparseable as zero.
func safeNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// activePricing filters a tool's pricing entries down to the active ones.
func activePricing(pricing []entity.PricingEntry) []entity.PricingEntry {
	active := make([]entity.PricingEntry, 0, len(pricing))
	for _, p := range pricing {
		if p.Active {
			active = append(active, p)
		}
	}
	return active
}

// totalRevenue sums revenue buckets after converting each from base units.
// Different tokens are added together at face value, matching how the
// dashboard reports a single stablecoin-denominated total.
func totalRevenue(details []entity.RevenueDetail) float64 {
	total := 0.0
	for _, d := range details {
		if strings.TrimSpace(d.AmountRaw) == "" {
			continue
		}
		total += safeNumber(amount.FromBaseUnits(d.AmountRaw, d.Decimals))
	}
	return total
}

// primaryRevenue renders the first revenue bucket with two decimal places.
func primaryRevenue(details []entity.RevenueDetail) string {
	if len(details) == 0 || strings.TrimSpace(details[0].AmountRaw) == "" {
		return "0.00"
	}
	human := amount.FromBaseUnits(details[0].AmountRaw, details[0].Decimals)
	return strconv.FormatFloat(safeNumber(human), 'f', 2, 64)
}

func (s *DashboardService) toolView(tool entity.Tool) ToolView {
	active := activePricing(tool.Pricing)

	seen := make(map[string]bool)
	prices := make([]ToolPriceView, 0, len(active))
	for _, p := range active {
		if strings.TrimSpace(p.MaxAmountRequiredRaw) == "" {
			continue
		}
		human := amount.FromBaseUnits(p.MaxAmountRequiredRaw, p.TokenDecimals)
		if seen[human] {
			continue
		}
		seen[human] = true
		prices = append(prices, ToolPriceView{
			Amount:       human,
			Display:      format.CurrencyString(human, p.AssetAddress, p.Network, s.registry),
			AssetAddress: p.AssetAddress,
			Network:      p.Network,
		})
	}

	return ToolView{
		ID:          tool.ID,
		Name:        tool.Name,
		Description: tool.Description,
		UsageCount:  tool.UsageCount,
		Monetized:   len(prices) > 0,
		Prices:      prices,
	}
}

func (s *DashboardService) paymentView(p entity.PaymentRecord) PaymentView {
	human := "0"
	if strings.TrimSpace(p.AmountRaw) != "" {
		human = amount.FromBaseUnits(p.AmountRaw, p.TokenDecimals)
	}
	return PaymentView{
		ID:              p.ID,
		Amount:          human,
		Display:         format.CurrencyString(human, p.Currency, p.Network, s.registry),
		Currency:        p.Currency,
		Network:         p.Network,
		TransactionHash: p.TransactionHash,
		Status:          p.Status,
		CreatedAt:       p.CreatedAt,
	}
}

// BuildDashboard fetches a server from the backend and renders its dashboard.
func (s *DashboardService) BuildDashboard(ctx context.Context, serverID string) (*ServerDashboard, error) {
	detail, err := s.market.GetServer(ctx, serverID)
	if err != nil {
		return nil, err
	}

	dashboard := &ServerDashboard{
		Server:          detail.ServerSummary,
		ReceiverAddress: detail.ReceiverAddress,
		Tools:           make([]ToolView, 0, len(detail.Tools)),
		RecentPayments:  []PaymentView{},
		Daily:           make([]DailyRevenueView, 0, len(detail.DailyAnalytics)),
		TotalRequests:   detail.SummaryAnalytics.TotalRequests,
		TotalToolCalls:  detail.SummaryAnalytics.TotalToolCalls,
		UniqueUsers:     detail.SummaryAnalytics.UniqueUsers,
		TotalRevenue:    totalRevenue(detail.SummaryAnalytics.RevenueDetails),
		PrimaryRevenue:  primaryRevenue(detail.SummaryAnalytics.RevenueDetails),
	}

	for _, tool := range detail.Tools {
		dashboard.Tools = append(dashboard.Tools, s.toolView(tool))
		for _, payment := range tool.Payments {
			dashboard.RecentPayments = append(dashboard.RecentPayments, s.paymentView(payment))
		}
	}

	// newest payments first
	sort.SliceStable(dashboard.RecentPayments, func(i, j int) bool {
		return dashboard.RecentPayments[i].CreatedAt.After(dashboard.RecentPayments[j].CreatedAt)
	})

	for _, day := range detail.DailyAnalytics {
		dashboard.Daily = append(dashboard.Daily, DailyRevenueView{
			Date:         day.Date,
			RequestCount: day.RequestCount,
			ToolCalls:    day.ToolCalls,
			UniqueUsers:  day.UniqueUsers,
			Revenue:      strconv.FormatFloat(totalRevenue(day.RevenueDetails), 'f', 2, 64),
		})
	}

	return dashboard, nil
}
