// Package plans implements the installment-plan calculators. Each payment
// model is an input type with a Validate method, which reports business-rule
// violations as messages, and a Calculate method, which enforces the same
// preconditions as hard errors and returns the payment breakdown.
//
// Every calculator is a pure function of its input: no I/O, no clock, no
// shared state. Calling Calculate twice with the same input yields identical
// results, and calculators are safe for concurrent use.
package plans

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/iwvelando/installment-plan/pkg/constants"
	"github.com/iwvelando/installment-plan/pkg/mathutil"
)

var (
	// ErrInvalidInput reports a failed precondition: non-positive total,
	// out-of-range installment count, entry below minimum, dates out of
	// order or insufficient lead time.
	ErrInvalidInput = errors.New("invalid input")

	// ErrComputationOverflow reports a compound-growth result that stayed
	// non-finite after clamping.
	ErrComputationOverflow = mathutil.ErrComputationOverflow
)

// Model identifies a payment model.
type Model string

// Supported payment models.
const (
	ModelDeferredBalance  Model = "indaia"
	ModelFourInstallments Model = "quatro-parcelas"
	ModelCashDiscount     Model = "a-vista"
	ModelCardInstallment  Model = "cartao-parcial"
	ModelAdvisor          Model = "condicao-especial"
	ModelHalfHalf         Model = "cinquenta-cinquenta"
)

var modelAliases = map[string]Model{
	"deferred-balance":  ModelDeferredBalance,
	"four-installments": ModelFourInstallments,
	"1+4":               ModelFourInstallments,
	"cash-discount":     ModelCashDiscount,
	"card-installment":  ModelCardInstallment,
	"advisor":           ModelAdvisor,
	"half-half":         ModelHalfHalf,
	"50/50":             ModelHalfHalf,
}

// Models returns every supported model in a stable order.
func Models() []Model {
	return []Model{
		ModelDeferredBalance,
		ModelFourInstallments,
		ModelCashDiscount,
		ModelCardInstallment,
		ModelAdvisor,
		ModelHalfHalf,
	}
}

// ParseModel resolves a model identifier or one of its English aliases.
func ParseModel(value string) (Model, error) {
	key := strings.ToLower(strings.TrimSpace(value))
	for _, m := range Models() {
		if string(m) == key {
			return m, nil
		}
	}
	if m, ok := modelAliases[key]; ok {
		return m, nil
	}

	names := make([]string, 0, len(Models()))
	for _, m := range Models() {
		names = append(names, string(m))
	}
	sort.Strings(names)
	return "", fmt.Errorf("unknown payment model %q, expected one of %s", value, strings.Join(names, ", "))
}

// Calculator is implemented by the input of every payment model.
type Calculator interface {
	Model() Model
	Validate() []string
	Calculate() (Result, error)
}

// Validate returns the business-rule violations of calc; an empty slice
// means the plan may be offered as-is.
func Validate(calc Calculator) []string {
	return calc.Validate()
}

// Calculate runs calc without consulting its validator.
func Calculate(calc Calculator) (Result, error) {
	return calc.Calculate()
}

func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// totalViolation checks total as the models will use it: rounded to cents
// and within constants.MaxCurrency.
func totalViolation(total float64) string {
	if !mathutil.IsFinite(total) || mathutil.RoundCurrency(total) <= 0 {
		return fmt.Sprintf("total must be a positive amount, got %.2f", total)
	}
	if total > constants.MaxCurrency {
		return fmt.Sprintf("total of %.2f exceeds the maximum of %.2f", total, constants.MaxCurrency)
	}
	return ""
}

func checkTotal(total float64) error {
	if msg := totalViolation(total); msg != "" {
		return invalidInput("%s", msg)
	}
	return nil
}

// grow compounds principal and rounds the result to currency. The result
// is capped so that reserved plus the result stays within
// constants.MaxCurrency.
func grow(principal, rate float64, periods int, reserved float64) (float64, error) {
	amount, err := mathutil.CompoundGrowth(principal, rate, periods)
	if err != nil {
		if errors.Is(err, mathutil.ErrInvalidPrincipal) {
			return 0, invalidInput("principal %v cannot be compounded", principal)
		}
		return 0, fmt.Errorf("compounding %.2f over %d periods: %w", principal, periods, err)
	}
	return mathutil.RoundCurrency(math.Min(amount, constants.MaxCurrency-reserved)), nil
}

// share returns the rounded fraction of amount.
func share(amount, fraction float64) float64 {
	return mathutil.MultiplyCurrency(amount, fraction)
}

// interestRate resolves an optional rate against the model default and
// keeps it non-negative so interest can never turn into a discount.
func interestRate(rate *float64, fallback float64) float64 {
	if rate == nil {
		return fallback
	}
	return mathutil.Clamp(*rate, 0, maxModelRate)
}

const maxModelRate = 1.0
