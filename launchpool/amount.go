package launchpool

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// ConvertToLamports turns a UI amount such as "1.5" into base units of a token
// with the given decimals. Fractions below one base unit are rejected.
func ConvertToLamports(amount string, decimals int32) (uint64, error) {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q: %v", ErrInvalidArgument, amount, err)
	}
	if value.IsNegative() {
		return 0, fmt.Errorf("%w: negative amount %q", ErrInvalidArgument, amount)
	}
	scaled := value.Shift(decimals)
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, fmt.Errorf("%w: %q has more than %d decimals", ErrInvalidArgument, amount, decimals)
	}
	n := scaled.BigInt()
	if !n.IsUint64() {
		return 0, fmt.Errorf("%w: %q overflows u64", ErrInvalidArgument, amount)
	}
	return n.Uint64(), nil
}

// FromLamports renders base units as a UI amount.
func FromLamports(amount uint64, decimals int32) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -decimals).String()
}
