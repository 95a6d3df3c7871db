package plans

import (
	"fmt"

	"github.com/iwvelando/installment-plan/pkg/mathutil"
)

// Partial-card-installment model parameters.
const (
	CardEntryShare      = 0.20
	CardMaxInstallments = 18
	CardDefaultRate     = 0.0299
)

// CardInstallmentInput describes an entry paid up front and the remaining
// 80% charged to a credit card in installments at the card rate. A nil
// CardRate uses CardDefaultRate.
type CardInstallmentInput struct {
	Total            float64
	InstallmentCount int
	CardRate         *float64
}

// Model implements Calculator.
func (in CardInstallmentInput) Model() Model { return ModelCardInstallment }

// Validate implements Calculator.
func (in CardInstallmentInput) Validate() []string {
	var violations []string
	if msg := totalViolation(in.Total); msg != "" {
		violations = append(violations, msg)
	}
	if msg := cardCountViolation(in.InstallmentCount); msg != "" {
		violations = append(violations, msg)
	}
	if in.CardRate != nil && (!mathutil.IsFinite(*in.CardRate) || *in.CardRate < 0 || *in.CardRate > maxModelRate) {
		violations = append(violations, fmt.Sprintf("card rate must be between 0 and %.0f%%, got %v",
			maxModelRate*100, *in.CardRate))
	}
	return violations
}

func cardCountViolation(count int) string {
	if count < 1 || count > CardMaxInstallments {
		return fmt.Sprintf("card installment count must be between 1 and %d, got %d", CardMaxInstallments, count)
	}
	return ""
}

// Calculate implements Calculator.
func (in CardInstallmentInput) Calculate() (Result, error) {
	if err := checkTotal(in.Total); err != nil {
		return Result{}, err
	}
	if msg := cardCountViolation(in.InstallmentCount); msg != "" {
		return Result{}, invalidInput("%s", msg)
	}

	rate := interestRate(in.CardRate, CardDefaultRate)
	total := mathutil.RoundCurrency(in.Total)
	entry := share(total, CardEntryShare)
	remainder := mathutil.RoundCurrency(total - entry)

	charged, err := grow(remainder, rate, in.InstallmentCount, entry)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Model:         ModelCardInstallment,
		Principal:     total,
		Entry:         entry,
		Installments:  splitEvenly(charged, in.InstallmentCount),
		TotalFinanced: mathutil.RoundCurrency(entry + charged),
	}
	result.setInterest(rate, in.InstallmentCount)
	return result, nil
}
