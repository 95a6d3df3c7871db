package plans

import "github.com/iwvelando/installment-plan/pkg/mathutil"

// Four-fixed-installments ("1+4, sem juros") model parameters.
const (
	FourInstallmentsEntryShare       = 0.20
	FourInstallmentsCount            = 4
	FourInstallmentsInstallmentShare = 0.20
)

// FourInstallmentsInput describes a 20% entry followed by four equal
// installments, all taken off the original total without interest.
type FourInstallmentsInput struct {
	Total float64
}

// Model implements Calculator.
func (in FourInstallmentsInput) Model() Model { return ModelFourInstallments }

// Validate implements Calculator.
func (in FourInstallmentsInput) Validate() []string {
	if msg := totalViolation(in.Total); msg != "" {
		return []string{msg}
	}
	return nil
}

// Calculate implements Calculator.
func (in FourInstallmentsInput) Calculate() (Result, error) {
	if err := checkTotal(in.Total); err != nil {
		return Result{}, err
	}

	total := mathutil.RoundCurrency(in.Total)
	entry := share(total, FourInstallmentsEntryShare)
	amount := share(total, FourInstallmentsInstallmentShare)
	last := mathutil.RoundCurrency(total - entry - amount*(FourInstallmentsCount-1))

	return Result{
		Model:     ModelFourInstallments,
		Principal: total,
		Entry:     entry,
		Installments: &Installments{
			Count:      FourInstallmentsCount,
			Amount:     amount,
			LastAmount: last,
		},
		TotalFinanced: total,
	}, nil
}
