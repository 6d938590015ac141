package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcp_market/internal/domain/entity"
)

func TestBuiltinTokenLookupIsCaseInsensitive(t *testing.T) {
	reg, err := New(nil, "", nil)
	require.NoError(t, err)

	info, ok := reg.TokenInfo("0x833589fcd6edb6e08f4c7c32d4f71b54bda02913", "BASE")
	require.True(t, ok)
	assert.Equal(t, "USDC", info.Symbol)
	assert.Equal(t, uint8(6), info.Decimals)
	assert.True(t, info.IsStablecoin)
}

func TestUnknownTokenAndNetwork(t *testing.T) {
	reg, err := New(nil, "", nil)
	require.NoError(t, err)

	_, ok := reg.TokenInfo("0x0000000000000000000000000000000000000001", "base")
	assert.False(t, ok)

	_, ok = reg.NetworkConfig("no-such-network")
	assert.False(t, ok)
}

func TestConfiguredNetworkOverridesRPCOnly(t *testing.T) {
	reg, err := New([]entity.NetworkConfig{
		{Identifier: "base", PrimaryRPCURL: "https://rpc.example.org"},
	}, "", nil)
	require.NoError(t, err)

	cfg, ok := reg.NetworkConfig("base")
	require.True(t, ok)
	assert.Equal(t, "https://rpc.example.org", cfg.PrimaryRPCURL)
	// built-in metadata survives the merge
	assert.Equal(t, uint64(8453), cfg.ChainID)
	assert.Equal(t, "Base", cfg.Name)
	assert.False(t, cfg.IsTestnet)
}

func TestNewNetworkFromConfig(t *testing.T) {
	reg, err := New([]entity.NetworkConfig{
		{Identifier: "local-devnet", ChainID: 31337, Name: "Local Devnet", NativeSymbol: "ETH", NativeDecimals: 18, IsTestnet: true},
	}, "", nil)
	require.NoError(t, err)

	cfg, ok := reg.NetworkConfig("local-devnet")
	require.True(t, ok)
	assert.True(t, cfg.IsTestnet)
	assert.Equal(t, uint64(31337), cfg.ChainID)
}

func TestTokenDirectoryExtendsAndOverrides(t *testing.T) {
	dir := t.TempDir()
	content := `[
		{"address": "0x1111111111111111111111111111111111111111", "symbol": "TEST", "name": "Test Token", "decimals": 8},
		{"address": "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", "symbol": "USDC", "name": "Renamed USDC", "decimals": 6, "isStablecoin": true}
	]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.json"), []byte(content), 0o644))

	reg, err := New(nil, dir, nil)
	require.NoError(t, err)

	added, ok := reg.TokenInfo("0x1111111111111111111111111111111111111111", "base")
	require.True(t, ok)
	assert.Equal(t, "TEST", added.Symbol)
	assert.Equal(t, "base", added.Network)

	overridden, ok := reg.TokenInfo("0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", "base")
	require.True(t, ok)
	assert.Equal(t, "Renamed USDC", overridden.Name)
}

func TestMissingTokenDirectoryIsNotAnError(t *testing.T) {
	reg, err := New(nil, filepath.Join(t.TempDir(), "does-not-exist"), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Networks())
}

func TestTokensByNetwork(t *testing.T) {
	reg, err := New(nil, "", nil)
	require.NoError(t, err)

	tokens := reg.TokensByNetwork("ethereum")
	symbols := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		symbols[tok.Symbol] = true
	}
	assert.True(t, symbols["USDC"])
	assert.True(t, symbols["USDT"])
	assert.True(t, symbols["DAI"])
}
