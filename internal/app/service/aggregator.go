package service

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"mcp_market/internal/app/port"
	"mcp_market/internal/domain/entity"
	"mcp_market/internal/pkg/format"
)

// BalanceAggregator folds per-address balance rows into the per-chain token
// groups the dashboard displays, split into mainnet and testnet sections.
type BalanceAggregator struct {
	registry       port.TokenRegistry
	dustThreshold  float64
	testnetMarkers []string
}

// NewBalanceAggregator creates an aggregator. Chains and token groups whose
// fiat value does not exceed dustThreshold are dropped from the output.
func NewBalanceAggregator(registry port.TokenRegistry, dustThreshold float64, testnetMarkers []string) *BalanceAggregator {
	return &BalanceAggregator{
		registry:       registry,
		dustThreshold:  dustThreshold,
		testnetMarkers: testnetMarkers,
	}
}

// IsTestnet reports whether a chain key names a test network. The registry is
// authoritative when it knows the chain; unknown chains fall back to marker
// substring matching so unconfigured testnets still land in the right section.
func (a *BalanceAggregator) IsTestnet(chainKey string) bool {
	if cfg, ok := a.registry.NetworkConfig(chainKey); ok {
		return cfg.IsTestnet
	}
	lower := strings.ToLower(chainKey)
	for _, marker := range a.testnetMarkers {
		if strings.Contains(lower, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}

func (a *BalanceAggregator) chainDisplayName(chainKey, fallback string) string {
	if cfg, ok := a.registry.NetworkConfig(chainKey); ok && cfg.Name != "" {
		return cfg.Name
	}
	if fallback != "" {
		return fallback
	}
	return chainKey
}

type tokenGroup struct {
	balance decimal.Decimal
	value   float64
	address string // first token identifier seen
}

// Aggregate groups records by chain and stablecoin symbol, sums balances and
// fiat values across wallet addresses, filters dust and returns chains and
// token groups sorted descending by fiat value. Amount sums use exact decimal
// arithmetic so string balances survive aggregation unchanged.
func (a *BalanceAggregator) Aggregate(records []entity.ChainBalanceRecord) entity.AggregatedBalances {
	type chainAcc struct {
		name   string
		groups map[string]*tokenGroup
		order  []string
	}

	chains := make(map[string]*chainAcc)
	var chainOrder []string

	for _, rec := range records {
		acc, ok := chains[rec.ChainKey]
		if !ok {
			acc = &chainAcc{
				name:   a.chainDisplayName(rec.ChainKey, rec.ChainName),
				groups: make(map[string]*tokenGroup),
			}
			chains[rec.ChainKey] = acc
			chainOrder = append(chainOrder, rec.ChainKey)
		}

		group, ok := acc.groups[rec.StablecoinSymbol]
		if !ok {
			group = &tokenGroup{address: rec.TokenIdentifier}
			acc.groups[rec.StablecoinSymbol] = group
			acc.order = append(acc.order, rec.StablecoinSymbol)
		}

		if parsed, err := decimal.NewFromString(strings.TrimSpace(rec.FormattedBalance)); err == nil {
			group.balance = group.balance.Add(parsed)
		}
		group.value += rec.FiatValue
	}

	out := entity.AggregatedBalances{
		Mainnet: []entity.ChainBalance{},
		Testnet: []entity.ChainBalance{},
	}

	for _, chainKey := range chainOrder {
		acc := chains[chainKey]

		totalUsd := 0.0
		for _, group := range acc.groups {
			totalUsd += group.value
		}
		if totalUsd <= a.dustThreshold {
			continue
		}

		tokens := make([]entity.AggregatedToken, 0, len(acc.order))
		for _, symbol := range acc.order {
			group := acc.groups[symbol]
			if group.value <= a.dustThreshold {
				continue
			}
			balanceFloat, _ := group.balance.Float64()
			tokens = append(tokens, entity.AggregatedToken{
				Symbol:           symbol,
				Balance:          group.balance.String(),
				BalanceUsd:       group.value,
				Address:          group.address,
				FormattedBalance: format.Balance(balanceFloat),
				FormattedUsd:     format.Balance(group.value),
			})
		}
		if len(tokens) == 0 {
			continue
		}
		sort.SliceStable(tokens, func(i, j int) bool {
			return tokens[i].BalanceUsd > tokens[j].BalanceUsd
		})

		chain := entity.ChainBalance{
			Chain:        acc.name,
			Network:      chainKey,
			BalanceUsd:   totalUsd,
			FormattedUsd: format.Balance(totalUsd),
			Tokens:       tokens,
		}
		if a.IsTestnet(chainKey) {
			out.Testnet = append(out.Testnet, chain)
			out.TotalTestnet += totalUsd
		} else {
			out.Mainnet = append(out.Mainnet, chain)
			out.TotalMainnet += totalUsd
		}
	}

	sort.SliceStable(out.Mainnet, func(i, j int) bool {
		return out.Mainnet[i].BalanceUsd > out.Mainnet[j].BalanceUsd
	})
	sort.SliceStable(out.Testnet, func(i, j int) bool {
		return out.Testnet[i].BalanceUsd > out.Testnet[j].BalanceUsd
	})
	out.FormattedTotalMainnet = format.Balance(out.TotalMainnet)
	out.FormattedTotalTestnet = format.Balance(out.TotalTestnet)
	return out
}
