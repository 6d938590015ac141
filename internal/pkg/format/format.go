// Package format renders token amounts and fiat values as display strings.
// Every function here is called from response-building paths, so none of them
// return errors: bad input degrades to a safe string.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"mcp_market/internal/domain/entity"
)

// TokenLookup is the registry subset the formatter needs. Declared locally so
// the package stays a dependency-free function library.
type TokenLookup interface {
	TokenInfo(address string, network string) (entity.TokenInfo, bool)
}

// IsEVMAddress reports whether s looks like a 20-byte hex contract address.
func IsEVMAddress(s string) bool {
	return strings.HasPrefix(s, "0x") && len(s) == 42
}

// AbbreviateAddress shortens an EVM address for display: 0xABCDEF...1234.
func AbbreviateAddress(addr string) string {
	if !IsEVMAddress(addr) {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}

func trimZeros(s string) string {
	if strings.IndexByte(s, '.') < 0 {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// fixed formats v with the given number of decimal places, optionally
// switching to compact K/M notation for large magnitudes.
func fixed(v float64, precision int, compact bool) string {
	if compact {
		switch {
		case v >= 1_000_000:
			return strconv.FormatFloat(v/1_000_000, 'f', precision, 64) + "M"
		case v >= 1000:
			return strconv.FormatFloat(v/1000, 'f', precision, 64) + "K"
		}
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// Currency renders an already human-readable amount together with its token
// identity. When the registry knows the token the symbol is used, with
// stablecoin precision 2 and 4 otherwise, compact at >= 1000. Unknown tokens
// fall back to an abbreviated address or the raw identifier.
func Currency(amount float64, currency string, network string, reg TokenLookup) string {
	if currency == "" {
		return fmt.Sprintf("%.6f Unknown", amount)
	}

	if network != "" && reg != nil {
		if info, ok := reg.TokenInfo(currency, network); ok {
			precision := 4
			if info.IsStablecoin {
				precision = 2
			}
			return fixed(amount, precision, amount >= 1000) + " " + info.Symbol
		}
	}

	if IsEVMAddress(currency) {
		return fmt.Sprintf("%.6f %s", amount, AbbreviateAddress(currency))
	}
	return fmt.Sprintf("%.6f %s", amount, currency)
}

// CurrencyString is Currency for decimal-string amounts. Unparseable amounts
// render as zero rather than failing the whole row.
func CurrencyString(amount string, currency string, network string, reg TokenLookup) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil {
		v = 0
	}
	return Currency(v, currency, network, reg)
}

// Balance renders a fiat balance with the dashboard's tiered precision.
func Balance(v float64) string {
	switch {
	case v == 0:
		return "0.00"
	case v < 0.01:
		return "< 0.01"
	case v < 1:
		return trimZeros(strconv.FormatFloat(v, 'f', 4, 64))
	case v < 1000:
		return trimZeros(strconv.FormatFloat(v, 'f', 2, 64))
	case v < 1_000_000:
		return trimZeros(strconv.FormatFloat(v/1000, 'f', 1, 64)) + "K"
	default:
		return trimZeros(strconv.FormatFloat(v/1_000_000, 'f', 1, 64)) + "M"
	}
}
