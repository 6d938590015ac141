package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"mcp_market/internal/app/port"
	"mcp_market/internal/domain/entity"
	"mcp_market/internal/pkg/amount"
	"mcp_market/internal/pkg/metrics"
)

// WalletBalanceService fetches balances for every tracked wallet across every
// configured network and aggregates them into the dashboard view. One RPC
// batch goes out per network; networks are fetched concurrently under a
// shared rate limit.
type WalletBalanceService struct {
	registry       port.TokenRegistry
	clientProvider port.BlockchainClientProvider
	walletProvider port.WalletProvider
	priceService   port.TokenPriceService
	aggregator     *BalanceAggregator
	limiter        *rate.Limiter
	maxConcurrent  int
	logger         port.Logger
}

var _ port.BalanceService = (*WalletBalanceService)(nil)

// NewWalletBalanceService wires the balance fetching pipeline together.
func NewWalletBalanceService(
	registry port.TokenRegistry,
	clientProvider port.BlockchainClientProvider,
	walletProvider port.WalletProvider,
	priceService port.TokenPriceService,
	aggregator *BalanceAggregator,
	rpcRateLimit int,
	rpcBurstLimit int,
	maxConcurrent int,
	log port.Logger,
) *WalletBalanceService {
	return &WalletBalanceService{
		registry:       registry,
		clientProvider: clientProvider,
		walletProvider: walletProvider,
		priceService:   priceService,
		aggregator:     aggregator,
		limiter:        rate.NewLimiter(rate.Limit(rpcRateLimit), rpcBurstLimit),
		maxConcurrent:  maxConcurrent,
		logger:         log,
	}
}

// buildRequests assembles the batch items for one network: the native balance
// of every wallet plus every registry token for every wallet.
func (s *WalletBalanceService) buildRequests(network entity.NetworkConfig, wallets []entity.Wallet) []entity.BalanceRequestItem {
	tokens := s.registry.TokensByNetwork(network.Identifier)
	requests := make([]entity.BalanceRequestItem, 0, len(wallets)*(len(tokens)+1))

	for _, wallet := range wallets {
		requests = append(requests, entity.BalanceRequestItem{
			ID:            fmt.Sprintf("%s:%s:native", network.Identifier, wallet.Address),
			Type:          entity.NativeBalanceRequest,
			WalletAddress: wallet.Address,
			TokenAddress:  entity.ZeroAddress,
			TokenSymbol:   network.NativeSymbol,
			TokenDecimals: network.NativeDecimals,
		})
		for _, token := range tokens {
			if token.IsNative {
				continue
			}
			requests = append(requests, entity.BalanceRequestItem{
				ID:            fmt.Sprintf("%s:%s:%s", network.Identifier, wallet.Address, token.Address),
				Type:          entity.TokenBalanceRequest,
				WalletAddress: wallet.Address,
				TokenAddress:  token.Address,
				TokenSymbol:   token.Symbol,
				TokenDecimals: token.Decimals,
			})
		}
	}
	return requests
}

// FetchAggregatedBalances runs one full multi-chain balance sweep. A network
// that fails to respond is logged and skipped so one flaky RPC endpoint does
// not blank the whole dashboard.
func (s *WalletBalanceService) FetchAggregatedBalances(ctx context.Context) (entity.AggregatedBalances, error) {
	started := time.Now()
	defer func() {
		metrics.BalanceFetchDuration.Observe(time.Since(started).Seconds())
	}()

	wallets, err := s.walletProvider.GetWallets()
	if err != nil {
		return entity.AggregatedBalances{}, fmt.Errorf("failed to load wallets: %w", err)
	}
	if len(wallets) == 0 {
		s.logger.Warn("No wallets configured, returning empty balances")
		return s.aggregator.Aggregate(nil), nil
	}

	var (
		mu      sync.Mutex
		records []entity.ChainBalanceRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for _, network := range s.registry.Networks() {
		if network.PrimaryRPCURL == "" && len(network.FallbackRPCURLs) == 0 {
			continue
		}
		network := network

		g.Go(func() error {
			if err := s.limiter.Wait(gctx); err != nil {
				return err
			}

			client, err := s.clientProvider.GetClient(network)
			if err != nil {
				s.logger.Error("Skipping network, client unavailable",
					"network", network.Identifier, "error", err)
				return nil
			}

			results, err := client.GetBalances(gctx, s.buildRequests(network, wallets))
			if err != nil {
				s.logger.Error("Balance batch failed for network",
					"network", network.Identifier, "error", err)
				return nil
			}

			chainRecords := s.toRecords(gctx, network, results)

			mu.Lock()
			records = append(records, chainRecords...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return entity.AggregatedBalances{}, err
	}

	s.logger.Debug("Balance sweep finished",
		"records", len(records), "elapsed", time.Since(started).String())
	return s.aggregator.Aggregate(records), nil
}

// toRecords prices the successful batch results and converts them into
// aggregation rows. Zero balances and failed items are dropped here.
func (s *WalletBalanceService) toRecords(ctx context.Context, network entity.NetworkConfig, results []entity.BalanceResultItem) []entity.ChainBalanceRecord {
	records := make([]entity.ChainBalanceRecord, 0, len(results))
	for _, item := range results {
		if item.Error != nil {
			s.logger.Warn("Balance item failed",
				"network", network.Identifier, "token", item.TokenSymbol,
				"wallet", item.WalletAddress, "error", item.Error)
			continue
		}
		if item.Balance == nil || item.Balance.Sign() <= 0 {
			continue
		}

		price, known := s.priceService.PriceUSD(ctx, network.Identifier, item.TokenAddress)
		fiatValue := 0.0
		if known {
			if v, err := amount.ValueUSD(item.Balance, item.Decimals, price); err == nil {
				fiatValue = v
			}
		}

		records = append(records, entity.ChainBalanceRecord{
			ChainKey:         network.Identifier,
			ChainName:        network.Name,
			TokenIdentifier:  item.TokenAddress,
			StablecoinSymbol: item.TokenSymbol,
			FormattedBalance: item.FormattedBalance,
			FiatValue:        fiatValue,
		})
	}
	return records
}
