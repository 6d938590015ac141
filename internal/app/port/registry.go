package port

import "mcp_market/internal/domain/entity"

// TokenRegistry resolves token and network metadata for display and
// conversion. Lookups never fail with an error: a miss is reported through
// the boolean so callers can fall back to raw identifiers.
type TokenRegistry interface {
	// TokenInfo looks up a token by contract address on a network. The address
	// comparison is case-insensitive.
	TokenInfo(address string, network string) (entity.TokenInfo, bool)

	// NetworkConfig returns the configuration of a known network.
	NetworkConfig(network string) (entity.NetworkConfig, bool)

	// Networks returns all known network configurations.
	Networks() []entity.NetworkConfig

	// TokensByNetwork returns all known tokens for a network identifier.
	TokensByNetwork(network string) []entity.TokenInfo
}
