// Package mathutil provides bounded arithmetic used by every payment model.
package mathutil

import (
	"errors"
	"math"

	"github.com/iwvelando/installment-plan/pkg/constants"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidPrincipal is returned by CompoundGrowth for a NaN or infinite principal.
	ErrInvalidPrincipal = errors.New("invalid principal")

	// ErrComputationOverflow is returned when a result stays non-finite after clamping.
	ErrComputationOverflow = errors.New("computation overflow")
)

// IsFinite reports whether val is neither NaN nor infinite.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// Clamp bounds value to [min, max]. Non-finite values map to min.
func Clamp(value, min, max float64) float64 {
	if !IsFinite(value) {
		return min
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ClampInt bounds an integer to [min, max].
func ClampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// RoundCurrency rounds a value to two decimals, half away from zero, after
// clamping it to ±MaxCurrency. Non-finite input collapses to 0.
func RoundCurrency(val float64) float64 {
	if !IsFinite(val) {
		return 0
	}
	val = Clamp(val, -constants.MaxCurrency, constants.MaxCurrency)
	rounded := decimal.NewFromFloat(val).Round(constants.CurrencyPlaces).InexactFloat64()
	if !IsFinite(rounded) {
		return 0
	}
	return rounded
}

// MultiplyCurrency returns amount*factor rounded to cents, multiplying in
// decimal so that shares such as 20% never pick up binary residue.
func MultiplyCurrency(amount, factor float64) float64 {
	if !IsFinite(amount) || !IsFinite(factor) {
		return 0
	}
	product := decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(factor))
	return RoundCurrency(product.InexactFloat64())
}

// DivideCurrency splits total into count parts truncated to cents. The
// division is done in decimal so exact splits stay exact.
func DivideCurrency(total float64, count int) float64 {
	if !IsFinite(total) || count < 1 {
		return 0
	}
	total = Clamp(total, -constants.MaxCurrency, constants.MaxCurrency)
	return decimal.NewFromFloat(total).
		Div(decimal.NewFromInt(int64(count))).
		Truncate(constants.CurrencyPlaces).
		InexactFloat64()
}

// CompoundGrowth computes principal * (1+rate)^periods as
// exp(periods * ln(1+rate)). The rate is clamped to [MinRate, MaxRate], the
// periods to ±MaxPeriods, and the exponent is capped so the magnitude of the
// result never exceeds MaxSafeInteger.
func CompoundGrowth(principal, rate float64, periods int) (float64, error) {
	if !IsFinite(principal) {
		return 0, ErrInvalidPrincipal
	}
	if principal == 0 {
		return 0, nil
	}

	rate = Clamp(rate, constants.MinRate, constants.MaxRate)
	periods = ClampInt(periods, -constants.MaxPeriods, constants.MaxPeriods)

	exponent := float64(periods) * math.Log1p(rate)
	limit := math.Log(constants.MaxSafeInteger / math.Abs(principal))
	if exponent > limit {
		exponent = limit
	}

	amount := principal * math.Exp(exponent)
	if !IsFinite(amount) {
		return 0, ErrComputationOverflow
	}
	return amount, nil
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}
