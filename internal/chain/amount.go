package chain

import (
	"math/big"
	"strings"

	conduiterr "github.com/mrz1836/conduit/pkg/errors"
)

// ErrInvalidAmount reports a malformed amount string.
var ErrInvalidAmount = conduiterr.New("INVALID_AMOUNT", "invalid amount format")

// ParseBaseAmount parses a base-unit amount encoded as a decimal integer
// string ("0", "10000000000"). Empty strings parse as zero; on-chain
// amounts are never negative or fractional at this layer.
func ParseBaseAmount(amount string) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return new(big.Int), nil
	}
	if strings.HasPrefix(amount, "-") {
		return nil, ErrInvalidAmount
	}

	value, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return nil, ErrInvalidAmount
	}
	return value, nil
}

// FormatDecimalAmount converts a base-unit amount to a human-readable
// string with the given decimal places. Trailing zeros after the
// decimal point are removed. For example, 1500000000000000000 with 18
// decimals returns "1.5".
func FormatDecimalAmount(amount *big.Int, decimalPlaces int) string {
	if amount == nil {
		return "0"
	}
	if decimalPlaces <= 0 {
		return amount.String()
	}

	str := new(big.Int).Abs(amount).String()
	for len(str) <= decimalPlaces {
		str = "0" + str
	}

	decimalPos := len(str) - decimalPlaces
	result := str[:decimalPos] + "." + str[decimalPos:]

	for len(result) > 1 && result[len(result)-1] == '0' && result[len(result)-2] != '.' {
		result = result[:len(result)-1]
	}

	if amount.Sign() < 0 {
		result = "-" + result
	}
	return result
}
