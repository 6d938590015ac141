package entity

// ChainBalanceRecord is one priced balance row: a single wallet address holding
// a single token on a single chain. Amounts are decimal strings so that no
// precision is lost before aggregation.
type ChainBalanceRecord struct {
	ChainKey         string  `json:"chainKey"`
	ChainName        string  `json:"chainName"`
	TokenIdentifier  string  `json:"tokenIdentifier"` // contract address, or ZeroAddress for native
	StablecoinSymbol string  `json:"stablecoin"`      // grouping key across wallet addresses
	FormattedBalance string  `json:"formattedBalance"`
	FiatValue        float64 `json:"fiatValue"`
}

// AggregatedToken is one token group inside an aggregated chain view.
// Formatted fields carry the tiered display rendering ("< 0.01", K/M).
type AggregatedToken struct {
	Symbol           string  `json:"symbol"`
	Balance          string  `json:"balance"` // summed decimal amount
	BalanceUsd       float64 `json:"balanceUsd"`
	Address          string  `json:"address"` // first token identifier seen, for display only
	FormattedBalance string  `json:"formattedBalance"`
	FormattedUsd     string  `json:"formattedUsd"`
}

// ChainBalance is the aggregated per-chain view served to dashboards.
// Tokens are sorted descending by BalanceUsd.
type ChainBalance struct {
	Chain        string            `json:"chain"`   // display name
	Network      string            `json:"network"` // chain key
	BalanceUsd   float64           `json:"balanceUsd"`
	FormattedUsd string            `json:"formattedUsd"`
	Tokens       []AggregatedToken `json:"tokens"`
}

// AggregatedBalances is the full mainnet/testnet split returned by the
// balances endpoint.
type AggregatedBalances struct {
	Mainnet               []ChainBalance `json:"mainnet"`
	Testnet               []ChainBalance `json:"testnet"`
	TotalMainnet          float64        `json:"totalMainnet"`
	TotalTestnet          float64        `json:"totalTestnet"`
	FormattedTotalMainnet string         `json:"formattedTotalMainnet"`
	FormattedTotalTestnet string         `json:"formattedTotalTestnet"`
}
