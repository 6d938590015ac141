package configloader

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"mcp_market/internal/domain/entity"
)

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g. "debug", "info", "warn", "error"
}

// MarketplaceConfig holds the configuration for the marketplace backend client.
type MarketplaceConfig struct {
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// DashboardConfig holds configuration for the server dashboard pollers.
type DashboardConfig struct {
	RefreshIntervalSeconds int `yaml:"refreshIntervalSeconds"`
	IdleTimeoutSeconds     int `yaml:"idleTimeoutSeconds"`
}

// BalancesConfig holds configuration for wallet balance aggregation.
type BalancesConfig struct {
	WalletsFile    string   `yaml:"walletsFile"`
	TokenDirectory string   `yaml:"tokenDirectory"`
	DustThreshold  float64  `yaml:"dustThreshold"`
	TestnetMarkers []string `yaml:"testnetMarkers"`
}

// DEXScreenerConfig holds the configuration for the DEX Screener client.
type DEXScreenerConfig struct {
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// PriceConfig holds configuration for the token price service.
type PriceConfig struct {
	CacheTTLMinutes          int `yaml:"cacheTTLMinutes"`
	CleanupIntervalMinutes   int `yaml:"cleanupIntervalMinutes"`
	MaxTokensPerBatchRequest int `yaml:"maxTokensPerBatchRequest"`
}

// MCPConfig holds configuration for MCP tool discovery.
type MCPConfig struct {
	DiscoveryTimeoutSeconds int    `yaml:"discoveryTimeoutSeconds"`
	DefaultToolPrice        string `yaml:"defaultToolPrice"`
}

// PerformanceConfig holds concurrency and RPC tuning knobs.
type PerformanceConfig struct {
	MaxConcurrentRoutines int `yaml:"maxConcurrentRoutines"`
	RPCCallTimeoutSeconds int `yaml:"rpcCallTimeoutSeconds"`
	RPCRateLimit          int `yaml:"rpcRateLimit"`
	RPCBurstLimit         int `yaml:"rpcBurstLimit"`
}

// SwaggerConfig holds configuration for Swagger UI.
type SwaggerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server      ServerConfig           `yaml:"server"`
	Logging     LoggingConfig          `yaml:"logging"`
	Marketplace MarketplaceConfig      `yaml:"marketplace"`
	Dashboard   DashboardConfig        `yaml:"dashboard"`
	Balances    BalancesConfig         `yaml:"balances"`
	DEXScreener DEXScreenerConfig      `yaml:"dexScreener"`
	Price       PriceConfig            `yaml:"price"`
	MCP         MCPConfig              `yaml:"mcp"`
	Performance PerformanceConfig      `yaml:"performance"`
	Swagger     SwaggerConfig          `yaml:"swagger"`
	Networks    []entity.NetworkConfig `yaml:"networks"`
}

// Load reads the YAML configuration file from the given path, unmarshals it
// and applies defaults for anything left unset.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if cfg.Marketplace.BaseURL == "" {
		return nil, fmt.Errorf("marketplace.baseURL is required in %s", path)
	}

	for _, network := range cfg.Networks {
		if network.PrimaryRPCURL == "" {
			logrus.Warnf("Network '%s' has no primaryRpcUrl configured; balance fetching for it will fail.", network.Identifier)
		}
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 60
	}

	if cfg.Marketplace.RequestTimeoutMillis == 0 {
		cfg.Marketplace.RequestTimeoutMillis = 10000
	}

	if cfg.Dashboard.RefreshIntervalSeconds <= 0 {
		cfg.Dashboard.RefreshIntervalSeconds = 10
	}
	if cfg.Dashboard.IdleTimeoutSeconds <= 0 {
		cfg.Dashboard.IdleTimeoutSeconds = 120
	}

	if cfg.Balances.WalletsFile == "" {
		cfg.Balances.WalletsFile = "data/wallets.txt"
	}
	if cfg.Balances.TokenDirectory == "" {
		cfg.Balances.TokenDirectory = "data/tokens"
	}
	if cfg.Balances.DustThreshold == 0 {
		cfg.Balances.DustThreshold = 0.001
	}
	if len(cfg.Balances.TestnetMarkers) == 0 {
		cfg.Balances.TestnetMarkers = []string{"sepolia", "fuji", "testnet", "test", "goerli", "mumbai"}
	}

	if cfg.DEXScreener.BaseURL == "" {
		cfg.DEXScreener.BaseURL = "https://api.dexscreener.com"
	}
	if cfg.DEXScreener.RequestTimeoutMillis == 0 {
		cfg.DEXScreener.RequestTimeoutMillis = 10000
	}

	if cfg.Price.CacheTTLMinutes <= 0 {
		cfg.Price.CacheTTLMinutes = 60
	}
	if cfg.Price.CleanupIntervalMinutes <= 0 {
		cfg.Price.CleanupIntervalMinutes = 10
	}
	if cfg.Price.MaxTokensPerBatchRequest <= 0 {
		cfg.Price.MaxTokensPerBatchRequest = 30 // DEXScreener limit
	}

	if cfg.MCP.DiscoveryTimeoutSeconds <= 0 {
		cfg.MCP.DiscoveryTimeoutSeconds = 30
	}
	if cfg.MCP.DefaultToolPrice == "" {
		cfg.MCP.DefaultToolPrice = "0.01"
	}

	if cfg.Performance.MaxConcurrentRoutines <= 0 {
		cfg.Performance.MaxConcurrentRoutines = 10
	}
	if cfg.Performance.RPCCallTimeoutSeconds <= 0 {
		cfg.Performance.RPCCallTimeoutSeconds = 10
	}
	if cfg.Performance.RPCRateLimit <= 0 {
		cfg.Performance.RPCRateLimit = 20
	}
	if cfg.Performance.RPCBurstLimit <= 0 {
		cfg.Performance.RPCBurstLimit = 40
	}

	if cfg.Swagger.Path == "" {
		cfg.Swagger.Path = "/swagger"
	}
}
