package entity

import "time"

// ServerSummary is the marketplace listing entry returned by GET /servers.
type ServerSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MCPOrigin   string    `json:"mcpOrigin,omitempty"`
	ToolCount   int       `json:"toolCount"`
	UsageCount  int       `json:"usageCount"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PricingEntry is one payment option attached to a tool. MaxAmountRequiredRaw
// is an integer base-unit string; only entries with Active set count as paid
// pricing.
type PricingEntry struct {
	ID                   string `json:"id,omitempty"`
	MaxAmountRequiredRaw string `json:"maxAmountRequiredRaw"`
	AssetAddress         string `json:"assetAddress"`
	Network              string `json:"network"`
	TokenDecimals        uint8  `json:"tokenDecimals"`
	Active               bool   `json:"active"`
}

// PaymentStatus enumerates the states a payment row can be in.
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentPending   PaymentStatus = "pending"
)

// PaymentRecord is one settled or pending micropayment for a tool call.
// AmountRaw is an integer base-unit string.
type PaymentRecord struct {
	ID              string        `json:"id,omitempty"`
	AmountRaw       string        `json:"amountRaw"`
	Currency        string        `json:"currency"`
	Network         string        `json:"network"`
	TokenDecimals   uint8         `json:"tokenDecimals"`
	TransactionHash string        `json:"transactionHash,omitempty"`
	Status          PaymentStatus `json:"status"`
	User            string        `json:"user,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// RevenueDetail is one per-token revenue bucket from the analytics payload.
type RevenueDetail struct {
	AmountRaw string `json:"amount_raw"`
	Currency  string `json:"currency"`
	Decimals  uint8  `json:"decimals"`
}

// Tool is a single tool exposed by a registered MCP server.
type Tool struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema map[string]any  `json:"inputSchema,omitempty"`
	Pricing     []PricingEntry  `json:"pricing"`
	Payments    []PaymentRecord `json:"payments"`
	UsageCount  int             `json:"usageCount"`
}

// DailyAnalytics is one day of server activity from the backend.
type DailyAnalytics struct {
	Date           string          `json:"date"`
	RequestCount   int             `json:"requestCount"`
	ToolCalls      int             `json:"toolCalls"`
	UniqueUsers    int             `json:"uniqueUsers"`
	RevenueDetails []RevenueDetail `json:"revenueDetails"`
}

// SummaryAnalytics is the lifetime rollup for a server.
type SummaryAnalytics struct {
	TotalRequests  int             `json:"totalRequests"`
	TotalToolCalls int             `json:"totalToolCalls"`
	UniqueUsers    int             `json:"uniqueUsers"`
	RevenueDetails []RevenueDetail `json:"revenueDetails"`
}

// ServerDetail is the full dashboard payload returned by GET /servers/:id.
type ServerDetail struct {
	ServerSummary
	ReceiverAddress  string           `json:"receiverAddress,omitempty"`
	Tools            []Tool           `json:"tools"`
	DailyAnalytics   []DailyAnalytics `json:"dailyAnalytics"`
	SummaryAnalytics SummaryAnalytics `json:"summaryAnalytics"`
}

// RegisterMCPTool is a tool as discovered from a live MCP server during
// registration, before pricing is attached.
type RegisterMCPTool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema,omitempty"`
	Price       string         `json:"price"` // human decimal, defaulted when absent
}

// RegisterServerRequest is the POST /servers payload.
type RegisterServerRequest struct {
	MCPOrigin       string            `json:"mcpOrigin"`
	ReceiverAddress string            `json:"receiverAddress"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	RequireAuth     bool              `json:"requireAuth"`
	AuthHeaders     map[string]string `json:"authHeaders,omitempty"`
	Tools           []RegisterMCPTool `json:"tools,omitempty"`
	Network         string            `json:"network,omitempty"`
	Metadata        map[string]any    `json:"metadata,omitempty"`
}

// RegisterServerResult carries the id assigned by the backend.
type RegisterServerResult struct {
	ServerID string `json:"serverId"`
}
