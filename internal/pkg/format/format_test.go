package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mcp_market/internal/domain/entity"
)

type fakeLookup struct {
	tokens map[string]entity.TokenInfo
}

func (f *fakeLookup) TokenInfo(address, network string) (entity.TokenInfo, bool) {
	info, ok := f.tokens[network+"/"+address]
	return info, ok
}

func newFakeLookup() *fakeLookup {
	return &fakeLookup{tokens: map[string]entity.TokenInfo{
		"base/0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913": {
			Symbol:       "USDC",
			Decimals:     6,
			IsStablecoin: true,
		},
		"base/0x4200000000000000000000000000000000000006": {
			Symbol:   "WETH",
			Decimals: 18,
		},
	}}
}

func TestCurrencyKnownStablecoin(t *testing.T) {
	reg := newFakeLookup()
	assert.Equal(t, "12.34 USDC", Currency(12.34, "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", "base", reg))
	// compact notation with stablecoin precision at >= 1000
	assert.Equal(t, "1.50K USDC", Currency(1500, "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", "base", reg))
}

func TestCurrencyKnownVolatileToken(t *testing.T) {
	reg := newFakeLookup()
	assert.Equal(t, "0.0421 WETH", Currency(0.0421, "0x4200000000000000000000000000000000000006", "base", reg))
}

func TestCurrencyUnknownTokenFallsBackToAddress(t *testing.T) {
	reg := newFakeLookup()
	addr := "0xDEADBEEFdeadbeefDEADBEEFdeadbeefDEADBEEF"
	got := Currency(1500, addr, "unknown-network", reg)
	assert.Equal(t, "1500.000000 0xDEAD...BEEF", got)
}

func TestCurrencyNoNetworkNoRegistry(t *testing.T) {
	assert.Equal(t, "3.000000 ETH", Currency(3, "ETH", "", nil))
	assert.Equal(t, "3.000000 Unknown", Currency(3, "", "", nil))
}

func TestCurrencyStringDegradesOnBadAmount(t *testing.T) {
	reg := newFakeLookup()
	got := CurrencyString("not-a-number", "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", "base", reg)
	assert.Equal(t, "0.00 USDC", got)
}

func TestBalanceTiers(t *testing.T) {
	assert.Equal(t, "0.00", Balance(0))
	assert.Equal(t, "< 0.01", Balance(0.004))
	assert.Equal(t, "0.5", Balance(0.5))
	assert.Equal(t, "42.25", Balance(42.25))
	assert.Equal(t, "1.5K", Balance(1500))
	assert.Equal(t, "2.4M", Balance(2_400_000))
}

func TestAbbreviateAddress(t *testing.T) {
	assert.Equal(t, "0xDEAD...BEEF", AbbreviateAddress("0xDEADBEEFdeadbeefDEADBEEFdeadbeefDEADBEEF"))
	assert.Equal(t, "USDC", AbbreviateAddress("USDC"))
}
