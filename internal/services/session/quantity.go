package session

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ErrInvalidAmount is returned for amounts that cannot be rendered as a
// token quantity.
var ErrInvalidAmount = errors.New("invalid amount")

// FormatQuantity renders amount with exactly precision fractional digits
// followed by symbol, e.g. FormatQuantity(12.5, 4, "XPR") == "12.5000 XPR".
//
// Rounding works on the exact binary value of amount and resolves ties away
// from zero, matching the fixed-point conversion wallets expect for asset
// strings.
func FormatQuantity(amount float64, precision int, symbol string) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	if precision < 0 {
		return "", fmt.Errorf("%w: negative precision %d", ErrInvalidAmount, precision)
	}

	scaled := new(big.Rat).SetFloat64(math.Abs(amount))
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(precision)), nil)
	scaled.Mul(scaled, new(big.Rat).SetInt(scale))

	// units = floor(scaled + 1/2)
	num := new(big.Int).Lsh(scaled.Num(), 1)
	num.Add(num, scaled.Denom())
	den := new(big.Int).Lsh(scaled.Denom(), 1)
	units := new(big.Int).Quo(num, den)

	digits := units.String()
	if len(digits) <= precision {
		digits = strings.Repeat("0", precision-len(digits)+1) + digits
	}
	split := len(digits) - precision

	var b strings.Builder
	if amount < 0 {
		b.WriteByte('-')
	}
	b.WriteString(digits[:split])
	if precision > 0 {
		b.WriteByte('.')
		b.WriteString(digits[split:])
	}
	b.WriteByte(' ')
	b.WriteString(symbol)
	return b.String(), nil
}

// ParseAmount converts user input such as "3.14159" or " 12.5 " to a number.
// Empty, non-numeric and non-finite input is rejected, as is any 0x-prefixed
// form: amounts are decimal only.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	digits := strings.TrimLeft(s, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, fmt.Errorf("%w: %q is not decimal", ErrInvalidAmount, s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return f, nil
}
