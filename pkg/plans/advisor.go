package plans

import (
	"fmt"

	"github.com/iwvelando/installment-plan/pkg/mathutil"
)

// Advisor-special-condition model parameters.
const (
	AdvisorMinEntry                    = 1000.0
	AdvisorMaxEntryInstallments        = 12
	AdvisorMinIntermediateInstallments = 5
	AdvisorMinIntermediateAmount       = 500.0
	AdvisorMaxClosingInstallments      = 18
	AdvisorDefaultRate                 = 0.0
)

// AdvisorInput describes a long-tail arrangement negotiated by an advisor:
// an entry split into a few interest-free installments, a run of
// intermediate installments and, when they do not exhaust the remainder, a
// closing balance that may itself be compounded and split.
//
// IntermediateInstallmentValue is optional; when zero the remainder is
// divided evenly across IntermediateInstallmentCount. A nil Rate uses
// AdvisorDefaultRate.
type AdvisorInput struct {
	Total                        float64
	EntryValue                   float64
	EntryInstallmentCount        int
	IntermediateInstallmentCount int
	IntermediateInstallmentValue float64
	ClosingInstallmentCount      int
	Rate                         *float64
}

// Model implements Calculator.
func (in AdvisorInput) Model() Model { return ModelAdvisor }

// Validate implements Calculator.
func (in AdvisorInput) Validate() []string {
	var violations []string
	if msg := totalViolation(in.Total); msg != "" {
		return append(violations, msg)
	}
	violations = append(violations, in.structuralViolations()...)
	if len(violations) > 0 {
		return violations
	}
	if _, msg := in.intermediateAmount(); msg != "" {
		violations = append(violations, msg)
	}
	return violations
}

// amounts returns the total and entry rounded to cents, the values every
// rule and split works on.
func (in AdvisorInput) amounts() (total, entry float64) {
	return mathutil.RoundCurrency(in.Total), mathutil.RoundCurrency(in.EntryValue)
}

// structuralViolations covers every rule that does not depend on the
// intermediate installment amount.
func (in AdvisorInput) structuralViolations() []string {
	var violations []string
	total, entry := in.amounts()
	if !mathutil.IsFinite(in.EntryValue) || entry < AdvisorMinEntry {
		violations = append(violations, fmt.Sprintf("entry of %.2f is below the minimum of %.2f",
			in.EntryValue, AdvisorMinEntry))
	} else if entry >= total {
		violations = append(violations, fmt.Sprintf("entry of %.2f must be less than the total of %.2f",
			entry, total))
	}
	if in.EntryInstallmentCount < 1 || in.EntryInstallmentCount > AdvisorMaxEntryInstallments {
		violations = append(violations, fmt.Sprintf("entry installment count must be between 1 and %d, got %d",
			AdvisorMaxEntryInstallments, in.EntryInstallmentCount))
	}
	if in.IntermediateInstallmentCount < AdvisorMinIntermediateInstallments {
		violations = append(violations, fmt.Sprintf("intermediate installment count must be at least %d, got %d",
			AdvisorMinIntermediateInstallments, in.IntermediateInstallmentCount))
	}
	if in.ClosingInstallmentCount < 0 {
		violations = append(violations, fmt.Sprintf("closing installment count must not be negative, got %d",
			in.ClosingInstallmentCount))
	} else if in.ClosingInstallmentCount > AdvisorMaxClosingInstallments {
		violations = append(violations, fmt.Sprintf("closing installment count must not exceed %d, got %d",
			AdvisorMaxClosingInstallments, in.ClosingInstallmentCount))
	}
	if !mathutil.IsFinite(in.IntermediateInstallmentValue) || in.IntermediateInstallmentValue < 0 {
		violations = append(violations, fmt.Sprintf("intermediate installment value must not be negative, got %v",
			in.IntermediateInstallmentValue))
	}
	if in.Rate != nil && (!mathutil.IsFinite(*in.Rate) || *in.Rate < 0 || *in.Rate > maxModelRate) {
		violations = append(violations, fmt.Sprintf("rate must be between 0 and %.0f%%, got %v",
			maxModelRate*100, *in.Rate))
	}
	return violations
}

// intermediateAmount resolves the per-installment intermediate amount, or
// a violation message when it is unusable.
func (in AdvisorInput) intermediateAmount() (float64, string) {
	total, entry := in.amounts()
	remainder := mathutil.RoundCurrency(total - entry)
	even := mathutil.DivideCurrency(remainder, in.IntermediateInstallmentCount)

	amount := even
	if in.IntermediateInstallmentValue > 0 {
		amount = mathutil.RoundCurrency(in.IntermediateInstallmentValue)
		if amount > even {
			return 0, fmt.Sprintf("intermediate installments of %.2f x %d exceed the remaining %.2f",
				amount, in.IntermediateInstallmentCount, remainder)
		}
	}
	if amount < AdvisorMinIntermediateAmount {
		return 0, fmt.Sprintf("intermediate installment of %.2f is below the minimum of %.2f",
			amount, AdvisorMinIntermediateAmount)
	}
	return amount, ""
}

// Calculate implements Calculator. It enforces the same rules as Validate
// so it stays safe when callers skip validation.
func (in AdvisorInput) Calculate() (Result, error) {
	if err := checkTotal(in.Total); err != nil {
		return Result{}, err
	}
	if violations := in.structuralViolations(); len(violations) > 0 {
		return Result{}, invalidInput("%s", violations[0])
	}
	intermediate, msg := in.intermediateAmount()
	if msg != "" {
		return Result{}, invalidInput("%s", msg)
	}

	total, entry := in.amounts()
	remainder := mathutil.RoundCurrency(total - entry)
	intermediateTotal := mathutil.MultiplyCurrency(intermediate, float64(in.IntermediateInstallmentCount))
	leftover := mathutil.RoundCurrency(remainder - intermediateTotal)
	rate := interestRate(in.Rate, AdvisorDefaultRate)

	result := Result{
		Model:             ModelAdvisor,
		Principal:         total,
		Entry:             entry,
		EntryInstallments: splitEvenly(entry, in.EntryInstallmentCount),
		Installments: &Installments{
			Count:      in.IntermediateInstallmentCount,
			Amount:     intermediate,
			LastAmount: intermediate,
		},
	}

	periods := 0
	if leftover > 0 {
		result.HasBalance = true
		result.Balance = leftover
		if in.ClosingInstallmentCount > 1 {
			periods = in.ClosingInstallmentCount
			closing, err := grow(leftover, rate, periods, entry+intermediateTotal)
			if err != nil {
				return Result{}, err
			}
			result.Balance = closing
			result.BalanceInstallments = splitEvenly(closing, periods)
		}
	}

	result.TotalFinanced = mathutil.RoundCurrency(entry + intermediateTotal + result.Balance)
	result.setInterest(rate, periods)
	return result, nil
}
