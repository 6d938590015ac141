package entity

// ZeroAddress is the conventional EVM placeholder for the native asset.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// TokenInfo holds display metadata for a token on a specific network.
// Addresses are stored checksummed but all lookups are case-insensitive.
type TokenInfo struct {
	Address      string `json:"address" yaml:"address"`
	Network      string `json:"network" yaml:"network"`
	Name         string `json:"name" yaml:"name"`
	Symbol       string `json:"symbol" yaml:"symbol"`
	Decimals     uint8  `json:"decimals" yaml:"decimals"`
	IsStablecoin bool   `json:"isStablecoin" yaml:"isStablecoin"`
	IsNative     bool   `json:"isNative,omitempty" yaml:"isNative,omitempty"`
	LogoURI      string `json:"logoUri,omitempty" yaml:"logoUri,omitempty"`
}

// NetworkConfig describes a supported blockchain network.
type NetworkConfig struct {
	Identifier       string   `json:"identifier" yaml:"identifier"` // e.g. "base-sepolia"
	ChainID          uint64   `json:"chainId" yaml:"chainId"`
	Name             string   `json:"name" yaml:"name"` // display name, e.g. "Base Sepolia"
	NativeSymbol     string   `json:"nativeSymbol" yaml:"nativeSymbol"`
	NativeDecimals   uint8    `json:"nativeDecimals" yaml:"nativeDecimals"`
	IsTestnet        bool     `json:"isTestnet" yaml:"isTestnet"`
	PrimaryRPCURL    string   `json:"primaryRpcUrl,omitempty" yaml:"primaryRpcUrl,omitempty"`
	FallbackRPCURLs  []string `json:"fallbackRpcUrls,omitempty" yaml:"fallbackRpcUrls,omitempty"`
	DEXScreenerID    string   `json:"dexScreenerId,omitempty" yaml:"dexScreenerId,omitempty"`
	BlockExplorerURL string   `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
}
