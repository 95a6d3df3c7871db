package plans

import "github.com/iwvelando/installment-plan/pkg/mathutil"

// Cash-discount ("à vista") model parameters.
const (
	CashDiscountPercent = 5.0
	CashEntryShare      = 0.20
)

// CashDiscountInput describes a discounted plan paid as an entry plus one
// balance instrument.
type CashDiscountInput struct {
	Total float64
}

// Model implements Calculator.
func (in CashDiscountInput) Model() Model { return ModelCashDiscount }

// Validate implements Calculator.
func (in CashDiscountInput) Validate() []string {
	if msg := totalViolation(in.Total); msg != "" {
		return []string{msg}
	}
	return nil
}

// Calculate implements Calculator.
func (in CashDiscountInput) Calculate() (Result, error) {
	if err := checkTotal(in.Total); err != nil {
		return Result{}, err
	}

	total := mathutil.RoundCurrency(in.Total)
	discount := mathutil.MultiplyCurrency(total, CashDiscountPercent/100)
	discounted := mathutil.RoundCurrency(total - discount)
	entry := share(discounted, CashEntryShare)

	return Result{
		Model:           ModelCashDiscount,
		Principal:       total,
		Entry:           entry,
		Balance:         mathutil.RoundCurrency(discounted - entry),
		HasBalance:      true,
		TotalFinanced:   discounted,
		Discount:        discount,
		DiscountPercent: CashDiscountPercent,
	}, nil
}
