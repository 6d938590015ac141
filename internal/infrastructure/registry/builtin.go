package registry

import "mcp_market/internal/domain/entity"

// builtinNetworks are the chains the marketplace supports out of the box.
// RPC endpoints come from configuration, not from this table.
var builtinNetworks = []entity.NetworkConfig{
	{
		Identifier:       "base",
		ChainID:          8453,
		Name:             "Base",
		NativeSymbol:     "ETH",
		NativeDecimals:   18,
		DEXScreenerID:    "base",
		BlockExplorerURL: "https://basescan.org",
	},
	{
		Identifier:       "base-sepolia",
		ChainID:          84532,
		Name:             "Base Sepolia",
		NativeSymbol:     "ETH",
		NativeDecimals:   18,
		IsTestnet:        true,
		BlockExplorerURL: "https://sepolia.basescan.org",
	},
	{
		Identifier:       "avalanche",
		ChainID:          43114,
		Name:             "Avalanche",
		NativeSymbol:     "AVAX",
		NativeDecimals:   18,
		DEXScreenerID:    "avalanche",
		BlockExplorerURL: "https://snowtrace.io",
	},
	{
		Identifier:       "avalanche-fuji",
		ChainID:          43113,
		Name:             "Avalanche Fuji",
		NativeSymbol:     "AVAX",
		NativeDecimals:   18,
		IsTestnet:        true,
		BlockExplorerURL: "https://testnet.snowtrace.io",
	},
	{
		Identifier:       "iotex",
		ChainID:          4689,
		Name:             "IoTeX",
		NativeSymbol:     "IOTX",
		NativeDecimals:   18,
		DEXScreenerID:    "iotex",
		BlockExplorerURL: "https://iotexscan.io",
	},
	{
		Identifier:       "sei-testnet",
		ChainID:          1328,
		Name:             "Sei Testnet",
		NativeSymbol:     "SEI",
		NativeDecimals:   18,
		IsTestnet:        true,
		BlockExplorerURL: "https://seitrace.com",
	},
	{
		Identifier:       "ethereum",
		ChainID:          1,
		Name:             "Ethereum",
		NativeSymbol:     "ETH",
		NativeDecimals:   18,
		DEXScreenerID:    "ethereum",
		BlockExplorerURL: "https://etherscan.io",
	},
	{
		Identifier:       "polygon",
		ChainID:          137,
		Name:             "Polygon",
		NativeSymbol:     "POL",
		NativeDecimals:   18,
		DEXScreenerID:    "polygon",
		BlockExplorerURL: "https://polygonscan.com",
	},
}

// builtinTokens are the payment tokens the marketplace prices in.
var builtinTokens = []entity.TokenInfo{
	{
		Address:      "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
		Network:      "base",
		Name:         "USD Coin",
		Symbol:       "USDC",
		Decimals:     6,
		IsStablecoin: true,
	},
	{
		Address:      "0x036CbD53842c5426634e7929541eC2318f3dCF7e",
		Network:      "base-sepolia",
		Name:         "USD Coin",
		Symbol:       "USDC",
		Decimals:     6,
		IsStablecoin: true,
	},
	{
		Address:  "0x4200000000000000000000000000000000000006",
		Network:  "base",
		Name:     "Wrapped Ether",
		Symbol:   "WETH",
		Decimals: 18,
	},
	{
		Address:      "0xB97EF9Ef8734C71904D8002F8b6Bc66Dd9c48a6E",
		Network:      "avalanche",
		Name:         "USD Coin",
		Symbol:       "USDC",
		Decimals:     6,
		IsStablecoin: true,
	},
	{
		Address:      "0x5425890298aed601595a70AB815c96711a31Bc65",
		Network:      "avalanche-fuji",
		Name:         "USD Coin",
		Symbol:       "USDC",
		Decimals:     6,
		IsStablecoin: true,
	},
	{
		Address:      "0xcdf79194c6c285077a58da47641d4dbe51f63542",
		Network:      "iotex",
		Name:         "Bridged USDC",
		Symbol:       "USDC.e",
		Decimals:     6,
		IsStablecoin: true,
	},
	{
		Address:      "0x4fCF1784B31630811181f670Aea7A7bEF803eaED",
		Network:      "sei-testnet",
		Name:         "USD Coin",
		Symbol:       "USDC",
		Decimals:     6,
		IsStablecoin: true,
	},
	{
		Address:      "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		Network:      "ethereum",
		Name:         "USD Coin",
		Symbol:       "USDC",
		Decimals:     6,
		IsStablecoin: true,
	},
	{
		Address:      "0xdAC17F958D2ee523a2206206994597C13D831ec7",
		Network:      "ethereum",
		Name:         "Tether USD",
		Symbol:       "USDT",
		Decimals:     6,
		IsStablecoin: true,
	},
	{
		Address:      "0x6B175474E89094C44Da98b954EedeAC495271d0F",
		Network:      "ethereum",
		Name:         "Dai Stablecoin",
		Symbol:       "DAI",
		Decimals:     18,
		IsStablecoin: true,
	},
	{
		Address:      "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359",
		Network:      "polygon",
		Name:         "USD Coin",
		Symbol:       "USDC",
		Decimals:     6,
		IsStablecoin: true,
	},
}
