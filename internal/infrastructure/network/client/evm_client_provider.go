package client

import (
	"fmt"
	"sync"
	"time"

	"mcp_market/internal/app/port"
	"mcp_market/internal/domain/entity"
)

const defaultProviderConnectionTimeout = 10 * time.Second

// evmClientProvider implements the port.BlockchainClientProvider interface.
// Clients are cached per network identifier so repeated refresh cycles reuse
// the same connections.
type evmClientProvider struct {
	clients           map[string]port.BlockchainClient
	mu                sync.Mutex
	logger            port.Logger
	connectionTimeout time.Duration
	rpcCallTimeout    time.Duration
}

// NewEVMClientProvider creates a provider handing out cached EVM clients.
func NewEVMClientProvider(rpcCallTimeout time.Duration, log port.Logger) port.BlockchainClientProvider {
	return &evmClientProvider{
		clients:           make(map[string]port.BlockchainClient),
		logger:            log,
		connectionTimeout: defaultProviderConnectionTimeout,
		rpcCallTimeout:    rpcCallTimeout,
	}
}

// GetClient retrieves the client for a network, dialing it on first use.
func (p *evmClientProvider) GetClient(network entity.NetworkConfig) (port.BlockchainClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if existing, ok := p.clients[network.Identifier]; ok {
		return existing, nil
	}

	p.logger.Info("Creating new EVM client", "network", network.Identifier, "rpc_primary", network.PrimaryRPCURL)
	newClient, err := NewEVMClient(network, p.connectionTimeout, p.rpcCallTimeout)
	if err != nil {
		p.logger.Error("Failed to create EVM client", "network", network.Identifier, "error", err)
		return nil, fmt.Errorf("failed to create EVM client for %s: %w", network.Identifier, err)
	}

	p.clients[network.Identifier] = newClient
	return newClient, nil
}
