package port

import (
	"context"

	"mcp_market/internal/domain/entity"
)

// BlockchainClient defines the interface for interacting with a blockchain
// network. Implementations are specific to network types (e.g. EVM).
type BlockchainClient interface {
	// GetBalances fetches a batch of native and token balances in one call.
	GetBalances(ctx context.Context, requests []entity.BalanceRequestItem) ([]entity.BalanceResultItem, error)

	// Network returns the network configuration this client talks to.
	Network() entity.NetworkConfig
}

// BlockchainClientProvider hands out (and caches) clients per network.
type BlockchainClientProvider interface {
	GetClient(network entity.NetworkConfig) (BlockchainClient, error)
}

// WalletProvider supplies the wallet addresses tracked by the dashboard.
type WalletProvider interface {
	GetWallets() ([]entity.Wallet, error)
}
