// Package amount converts token amounts between integer base-unit strings and
// human-readable decimal strings. All scaling is done with integer string
// arithmetic so values like "0.1" at 6 decimals always come out as exactly
// "100000", never a float artifact.
package amount

import (
	"fmt"
	"math/big"
	"strings"

	"mcp_market/internal/domain/entity"
)

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ToBaseUnits parses a non-negative human decimal string and scales it by
// 10^decimals, returning an integer string. Excess fractional digits beyond
// decimals are truncated, not rounded. Malformed or negative input yields
// entity.ErrInvalidAmount.
func ToBaseUnits(decimalAmount string, decimals uint8) (string, error) {
	s := strings.TrimSpace(decimalAmount)
	if s == "" {
		return "", fmt.Errorf("%w: empty string", entity.ErrInvalidAmount)
	}
	if strings.HasPrefix(s, "-") {
		return "", fmt.Errorf("%w: negative amount %q", entity.ErrInvalidAmount, decimalAmount)
	}

	intPart := s
	fracPart := ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart = s[:dot]
		fracPart = s[dot+1:]
		if strings.IndexByte(fracPart, '.') >= 0 {
			return "", fmt.Errorf("%w: multiple decimal points in %q", entity.ErrInvalidAmount, decimalAmount)
		}
	}
	if intPart == "" {
		intPart = "0"
	}
	if !isDigits(intPart) || (fracPart != "" && !isDigits(fracPart)) {
		return "", fmt.Errorf("%w: non-numeric input %q", entity.ErrInvalidAmount, decimalAmount)
	}

	// Truncate beyond the token's precision, pad the rest with zeros.
	if len(fracPart) > int(decimals) {
		fracPart = fracPart[:decimals]
	}
	fracPart += strings.Repeat("0", int(decimals)-len(fracPart))

	combined := strings.TrimLeft(intPart+fracPart, "0")
	if combined == "" {
		return "0", nil
	}

	if _, ok := new(big.Int).SetString(combined, 10); !ok {
		return "", fmt.Errorf("%w: cannot parse %q", entity.ErrInvalidAmount, decimalAmount)
	}
	return combined, nil
}

// FromBaseUnits divides an integer base-unit string by 10^decimals and returns
// a decimal string with trailing zeros trimmed. It sits in hot display paths,
// so invalid input degrades to "0" instead of returning an error.
func FromBaseUnits(raw string, decimals uint8) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "0"
	}

	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	if !isDigits(s) {
		return "0"
	}

	s = strings.TrimLeft(s, "0")
	if s == "" {
		return "0"
	}

	// Pad so there is always at least one digit before the decimal point.
	if len(s) <= int(decimals) {
		s = strings.Repeat("0", int(decimals)-len(s)+1) + s
	}

	result := s
	if decimals > 0 {
		cut := len(s) - int(decimals)
		intPart, fracPart := s[:cut], s[cut:]
		fracPart = strings.TrimRight(fracPart, "0")
		if fracPart == "" {
			result = intPart
		} else {
			result = intPart + "." + fracPart
		}
	}
	if result == "0" {
		return "0"
	}
	if negative {
		return "-" + result
	}
	return result
}

// FormatBigInt renders an on-chain big.Int balance as a human decimal string.
func FormatBigInt(v *big.Int, decimals uint8) string {
	if v == nil {
		return "0"
	}
	return FromBaseUnits(v.String(), decimals)
}

// ValueUSD computes the fiat value of a raw on-chain amount at the given unit
// price. Precision-sensitive scaling happens in big.Float before the final
// float64 conversion.
func ValueUSD(v *big.Int, decimals uint8, priceUSD float64) (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("%w: nil amount", entity.ErrInvalidAmount)
	}
	if v.Sign() < 0 {
		return 0, fmt.Errorf("%w: negative amount %s", entity.ErrInvalidAmount, v.String())
	}
	amountFloat := new(big.Float).SetInt(v)
	divisor := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	human := new(big.Float).Quo(amountFloat, divisor)
	value := new(big.Float).Mul(human, big.NewFloat(priceUSD))
	f, _ := value.Float64()
	return f, nil
}
