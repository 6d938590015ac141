// Package registry holds the canonical network and token tables. The tables
// ship with the known marketplace chains and stablecoins built in, and can be
// extended with JSON token files from a configured directory.
package registry

import (
	"strings"

	"mcp_market/internal/app/port"
	"mcp_market/internal/domain/entity"
)

// Registry implements port.TokenRegistry. It is immutable after construction,
// so lookups need no locking.
type Registry struct {
	networks map[string]entity.NetworkConfig
	ordered  []entity.NetworkConfig
	// tokens is keyed by network identifier, then lowercased token address.
	tokens map[string]map[string]entity.TokenInfo
	logger port.Logger
}

var _ port.TokenRegistry = (*Registry)(nil)

// New builds a registry from the built-in tables, the configured networks and
// any token files found under tokenDir. Configured networks override built-in
// ones with the same identifier; loaded tokens override built-in ones with the
// same network and address.
func New(networks []entity.NetworkConfig, tokenDir string, log port.Logger) (*Registry, error) {
	r := &Registry{
		networks: make(map[string]entity.NetworkConfig),
		tokens:   make(map[string]map[string]entity.TokenInfo),
		logger:   log,
	}

	for _, n := range builtinNetworks {
		r.putNetwork(n)
	}
	for _, n := range networks {
		if existing, ok := r.networks[strings.ToLower(n.Identifier)]; ok {
			merged := existing
			if n.PrimaryRPCURL != "" {
				merged.PrimaryRPCURL = n.PrimaryRPCURL
			}
			if len(n.FallbackRPCURLs) > 0 {
				merged.FallbackRPCURLs = n.FallbackRPCURLs
			}
			if n.Name != "" {
				merged.Name = n.Name
			}
			r.putNetwork(merged)
			continue
		}
		r.putNetwork(n)
	}

	for _, t := range builtinTokens {
		r.putToken(t)
	}

	if tokenDir != "" {
		loaded, err := loadTokenFiles(tokenDir, log)
		if err != nil {
			return nil, err
		}
		for _, t := range loaded {
			r.putToken(t)
		}
	}

	if log != nil {
		log.Info("Token registry initialized",
			"networks", len(r.networks),
			"tokenNetworks", len(r.tokens))
	}
	return r, nil
}

func (r *Registry) putNetwork(n entity.NetworkConfig) {
	key := strings.ToLower(n.Identifier)
	if _, exists := r.networks[key]; !exists {
		r.ordered = append(r.ordered, n)
	} else {
		for i := range r.ordered {
			if strings.EqualFold(r.ordered[i].Identifier, n.Identifier) {
				r.ordered[i] = n
				break
			}
		}
	}
	r.networks[key] = n
}

func (r *Registry) putToken(t entity.TokenInfo) {
	netKey := strings.ToLower(t.Network)
	byAddr, ok := r.tokens[netKey]
	if !ok {
		byAddr = make(map[string]entity.TokenInfo)
		r.tokens[netKey] = byAddr
	}
	byAddr[strings.ToLower(t.Address)] = t
}

// TokenInfo looks up a token by contract address on a network. Both the
// address and the network identifier are matched case-insensitively.
func (r *Registry) TokenInfo(address, network string) (entity.TokenInfo, bool) {
	byAddr, ok := r.tokens[strings.ToLower(network)]
	if !ok {
		return entity.TokenInfo{}, false
	}
	info, ok := byAddr[strings.ToLower(address)]
	return info, ok
}

// NetworkConfig returns the configuration for a network identifier.
func (r *Registry) NetworkConfig(network string) (entity.NetworkConfig, bool) {
	cfg, ok := r.networks[strings.ToLower(network)]
	return cfg, ok
}

// Networks returns all known networks in registration order.
func (r *Registry) Networks() []entity.NetworkConfig {
	out := make([]entity.NetworkConfig, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// TokensByNetwork returns the tokens registered for a network. The slice
// order is unspecified.
func (r *Registry) TokensByNetwork(network string) []entity.TokenInfo {
	byAddr, ok := r.tokens[strings.ToLower(network)]
	if !ok {
		return nil
	}
	out := make([]entity.TokenInfo, 0, len(byAddr))
	for _, t := range byAddr {
		out = append(out, t)
	}
	return out
}
