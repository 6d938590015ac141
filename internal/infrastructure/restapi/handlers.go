package restapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"mcp_market/internal/app/port"
	"mcp_market/internal/app/service"
	"mcp_market/internal/domain/entity"
)

// APIErrorResponse is the JSON error envelope for every failing endpoint.
type APIErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// DashboardResponse wraps a dashboard snapshot with its refresh state, so
// clients can render spinners without re-requesting.
type DashboardResponse struct {
	Data           *service.ServerDashboard `json:"data"`
	InitialLoading bool                     `json:"initialLoading"`
	Refreshing     bool                     `json:"refreshing"`
	UpdatedAt      *time.Time               `json:"updatedAt,omitempty"`
	Error          *APIErrorResponse        `json:"error,omitempty"`
}

// BalancesResponse wraps the aggregated balances snapshot the same way.
type BalancesResponse struct {
	Data           entity.AggregatedBalances `json:"data"`
	InitialLoading bool                      `json:"initialLoading"`
	Refreshing     bool                      `json:"refreshing"`
	UpdatedAt      *time.Time                `json:"updatedAt,omitempty"`
	Error          *APIErrorResponse         `json:"error,omitempty"`
}

// Handler carries the dependencies of all marketplace API endpoints.
type Handler struct {
	market     port.MarketplaceClient
	discoverer port.ToolDiscoverer
	dashboards *service.PollerManager[*service.ServerDashboard]
	balances   *service.Poller[entity.AggregatedBalances]
	logger     port.Logger
}

// NewHandler creates the API handler set.
func NewHandler(
	market port.MarketplaceClient,
	discoverer port.ToolDiscoverer,
	dashboards *service.PollerManager[*service.ServerDashboard],
	balances *service.Poller[entity.AggregatedBalances],
	log port.Logger,
) *Handler {
	return &Handler{
		market:     market,
		discoverer: discoverer,
		dashboards: dashboards,
		balances:   balances,
		logger:     log,
	}
}

// statusForMarketError maps an error classification onto an HTTP status.
func statusForMarketError(me *entity.MarketError) int {
	switch me.Kind {
	case entity.MarketErrNotFound:
		return http.StatusNotFound
	case entity.MarketErrMaintenance:
		return http.StatusBadGateway
	case entity.MarketErrConnection:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}

func (h *Handler) abortWithError(c *gin.Context, err error) {
	me := entity.AsMarketError(err)
	c.JSON(statusForMarketError(me), APIErrorResponse{
		Kind:    string(me.Kind),
		Message: me.Message,
	})
}

func apiError(err error) *APIErrorResponse {
	if err == nil {
		return nil
	}
	me := entity.AsMarketError(err)
	return &APIErrorResponse{Kind: string(me.Kind), Message: me.Message}
}

// ListServersHandler handles GET /servers?limit=6&type=trending.
func (h *Handler) ListServersHandler(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, APIErrorResponse{
				Kind:    string(entity.MarketErrBadRequest),
				Message: "limit must be a non-negative integer",
			})
			return
		}
		limit = parsed
	}

	servers, err := h.market.ListServers(c.Request.Context(), limit, c.Query("type"))
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"servers": servers})
}

// GetServerHandler handles GET /servers/:id. The first request for a server
// starts its background poller; subsequent requests serve the latest
// snapshot, which keeps refreshing every interval while anyone is watching.
func (h *Handler) GetServerHandler(c *gin.Context) {
	serverID := c.Param("id")
	snap := h.dashboards.Get(serverID)

	resp := DashboardResponse{
		Data:           snap.Data,
		InitialLoading: snap.InitialLoading,
		Refreshing:     snap.Refreshing,
		Error:          apiError(snap.Err),
	}
	if !snap.UpdatedAt.IsZero() {
		t := snap.UpdatedAt
		resp.UpdatedAt = &t
	}

	// no data at all: surface the failure as the response status
	if snap.Data == nil && snap.Err != nil {
		me := entity.AsMarketError(snap.Err)
		c.JSON(statusForMarketError(me), resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegisterServerHandler handles POST /servers.
func (h *Handler) RegisterServerHandler(c *gin.Context) {
	var req entity.RegisterServerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIErrorResponse{
			Kind:    string(entity.MarketErrBadRequest),
			Message: "invalid request body: " + err.Error(),
		})
		return
	}
	if req.MCPOrigin == "" || req.ReceiverAddress == "" {
		c.JSON(http.StatusBadRequest, APIErrorResponse{
			Kind:    string(entity.MarketErrBadRequest),
			Message: "mcpOrigin and receiverAddress are required",
		})
		return
	}

	// registration without an explicit tool list pulls it from the live server
	if len(req.Tools) == 0 {
		tools, err := h.discoverer.DiscoverTools(c.Request.Context(), req.MCPOrigin)
		if err != nil {
			h.logger.Warn("Tool discovery during registration failed",
				"mcpOrigin", req.MCPOrigin, "error", err)
			c.JSON(http.StatusBadGateway, APIErrorResponse{
				Kind:    string(entity.MarketErrConnection),
				Message: "Could not reach the MCP server to discover its tools. Provide tools explicitly or check the URL.",
			})
			return
		}
		req.Tools = tools
	}

	result, err := h.market.RegisterServer(c.Request.Context(), req)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// DiscoverToolsHandler handles GET /mcp-tools?url=... by connecting to the
// target MCP server and listing its tools.
func (h *Handler) DiscoverToolsHandler(c *gin.Context) {
	serverURL := c.Query("url")
	if serverURL == "" {
		c.JSON(http.StatusBadRequest, APIErrorResponse{
			Kind:    string(entity.MarketErrBadRequest),
			Message: "url query parameter is required",
		})
		return
	}

	tools, err := h.discoverer.DiscoverTools(c.Request.Context(), serverURL)
	if err != nil {
		h.logger.Warn("MCP tool discovery failed", "url", serverURL, "error", err)
		c.JSON(http.StatusBadGateway, APIErrorResponse{
			Kind:    string(entity.MarketErrConnection),
			Message: "Could not reach the MCP server. Check the URL and try again.",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tools": tools})
}

// GetBalancesHandler handles GET /balances: the aggregated multi-chain view
// of the tracked wallets, served from the shared background poller.
func (h *Handler) GetBalancesHandler(c *gin.Context) {
	snap := h.balances.Snapshot()

	resp := BalancesResponse{
		Data:           snap.Data,
		InitialLoading: snap.InitialLoading,
		Refreshing:     snap.Refreshing,
		Error:          apiError(snap.Err),
	}
	if !snap.UpdatedAt.IsZero() {
		t := snap.UpdatedAt
		resp.UpdatedAt = &t
	}
	c.JSON(http.StatusOK, resp)
}

// ListAPIKeysHandler handles GET /users/:userId/api-keys.
func (h *Handler) ListAPIKeysHandler(c *gin.Context) {
	keys, err := h.market.ListAPIKeys(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"keys": keys})
}

// CreateAPIKeyHandler handles POST /users/:userId/api-keys.
func (h *Handler) CreateAPIKeyHandler(c *gin.Context) {
	var req entity.CreateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIErrorResponse{
			Kind:    string(entity.MarketErrBadRequest),
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	result, err := h.market.CreateAPIKey(c.Request.Context(), c.Param("userId"), req)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// RevokeAPIKeyHandler handles DELETE /users/:userId/api-keys/:keyId.
func (h *Handler) RevokeAPIKeyHandler(c *gin.Context) {
	if err := h.market.RevokeAPIKey(c.Request.Context(), c.Param("userId"), c.Param("keyId")); err != nil {
		h.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateOnrampHandler handles POST /users/:userId/onramp.
func (h *Handler) CreateOnrampHandler(c *gin.Context) {
	var req entity.OnrampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIErrorResponse{
			Kind:    string(entity.MarketErrBadRequest),
			Message: "invalid request body: " + err.Error(),
		})
		return
	}
	if req.Address == "" || req.Network == "" {
		c.JSON(http.StatusBadRequest, APIErrorResponse{
			Kind:    string(entity.MarketErrBadRequest),
			Message: "address and network are required",
		})
		return
	}

	result, err := h.market.CreateOnrampURL(c.Request.Context(), c.Param("userId"), req)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
