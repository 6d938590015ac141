package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"

	"mcp_market/internal/app/service"
	"mcp_market/internal/domain/entity"
	"mcp_market/internal/infrastructure/configloader"
	"mcp_market/internal/infrastructure/dexscreener"
	"mcp_market/internal/infrastructure/marketclient"
	"mcp_market/internal/infrastructure/mcptools"
	"mcp_market/internal/infrastructure/network/client"
	"mcp_market/internal/infrastructure/registry"
	"mcp_market/internal/infrastructure/restapi"
	"mcp_market/internal/infrastructure/walletloader"
	"mcp_market/internal/pkg/logger"
	"mcp_market/internal/pkg/metrics"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	// .env is optional, real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		logrus.Info("Loaded environment from .env file")
	}

	cfgPath := getEnv("CONFIG_PATH", "config/config.yml")
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		logrus.Fatalf("Failed to load configuration from %s: %v", cfgPath, err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = logger.ZapLevel(cfg.Logging.Level)
	zapLogger, err := zapCfg.Build()
	if err != nil {
		logrus.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()

	// route the package-level slog wrapper through the zap core
	logger.SetHandler(zapslog.NewHandler(zapLogger.Core(), &zapslog.HandlerOptions{}))
	appLogger := logger.NewAdapter()

	metrics.MustRegister()

	reg, err := registry.New(cfg.Networks, cfg.Balances.TokenDirectory, appLogger)
	if err != nil {
		logger.Fatal("Failed to build token registry", "error", err)
	}

	wallets := walletloader.New(cfg.Balances.WalletsFile, appLogger)

	dexClient := dexscreener.NewClient(
		cfg.DEXScreener.BaseURL,
		time.Duration(cfg.DEXScreener.RequestTimeoutMillis)*time.Millisecond,
		appLogger,
		cfg.Price.MaxTokensPerBatchRequest,
	)

	priceService := service.NewTokenPriceService(
		reg,
		dexClient,
		time.Duration(cfg.Price.CacheTTLMinutes)*time.Minute,
		time.Duration(cfg.Price.CleanupIntervalMinutes)*time.Minute,
		cfg.Price.MaxTokensPerBatchRequest,
		appLogger,
	)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := priceService.WarmUp(ctx); err != nil {
			logger.Error("Token price warm-up failed", "error", err)
		}
	}()

	clientProvider := client.NewEVMClientProvider(
		time.Duration(cfg.Performance.RPCCallTimeoutSeconds)*time.Second,
		appLogger,
	)
	aggregator := service.NewBalanceAggregator(reg, cfg.Balances.DustThreshold, cfg.Balances.TestnetMarkers)
	balanceService := service.NewWalletBalanceService(
		reg,
		clientProvider,
		wallets,
		priceService,
		aggregator,
		cfg.Performance.RPCRateLimit,
		cfg.Performance.RPCBurstLimit,
		cfg.Performance.MaxConcurrentRoutines,
		appLogger,
	)

	market := marketclient.New(
		cfg.Marketplace.BaseURL,
		time.Duration(cfg.Marketplace.RequestTimeoutMillis)*time.Millisecond,
		appLogger,
	)
	discoverer := mcptools.New(
		time.Duration(cfg.MCP.DiscoveryTimeoutSeconds)*time.Second,
		cfg.MCP.DefaultToolPrice,
		appLogger,
	)
	dashboardService := service.NewDashboardService(market, reg, appLogger)

	refreshInterval := time.Duration(cfg.Dashboard.RefreshIntervalSeconds) * time.Second
	idleTTL := time.Duration(cfg.Dashboard.IdleTimeoutSeconds) * time.Second

	dashboards := service.NewPollerManager(func(serverID string) service.FetchFunc[*service.ServerDashboard] {
		return func(ctx context.Context) (*service.ServerDashboard, error) {
			return dashboardService.BuildDashboard(ctx, serverID)
		}
	}, refreshInterval, idleTTL, appLogger)
	defer dashboards.Stop()

	balances := service.NewPoller(func(ctx context.Context) (entity.AggregatedBalances, error) {
		return balanceService.FetchAggregatedBalances(ctx)
	}, refreshInterval, appLogger)
	defer balances.Stop()

	handler := restapi.NewHandler(market, discoverer, dashboards, balances, appLogger)
	router := restapi.SetupRouter(handler, zapLogger, restapi.RouterOptions{
		SwaggerEnabled: cfg.Swagger.Enabled,
		SwaggerPath:    cfg.Swagger.Path,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info("Server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	zapLogger.Info("Server exited")
}
