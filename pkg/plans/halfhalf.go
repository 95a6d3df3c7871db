package plans

import (
	"fmt"
	"time"

	"github.com/iwvelando/installment-plan/pkg/constants"
	"github.com/iwvelando/installment-plan/pkg/datetime"
	"github.com/iwvelando/installment-plan/pkg/mathutil"
)

// Half-half ("50/50") model parameters.
const (
	HalfHalfEntryShare        = 0.20
	HalfHalfFirstBoletoShare  = 0.30
	HalfHalfBalanceShare      = 0.50
	HalfHalfMinLeadDays       = 60
	HalfHalfFirstBoletoDays   = 30
	HalfHalfBalanceNoticeDays = 30
	HalfHalfDefaultRate       = 0.01
)

// HalfHalfInput describes an entry at signing, a first boleto 30 days after
// the contract and a balance 30 days before the event. Only the balance
// accrues interest. A nil Rate uses HalfHalfDefaultRate.
type HalfHalfInput struct {
	Total        float64
	ContractDate time.Time
	EventDate    time.Time
	Rate         *float64
}

// Model implements Calculator.
func (in HalfHalfInput) Model() Model { return ModelHalfHalf }

// Validate implements Calculator.
func (in HalfHalfInput) Validate() []string {
	var violations []string
	if msg := totalViolation(in.Total); msg != "" {
		violations = append(violations, msg)
	}
	if msg := in.scheduleViolation(); msg != "" {
		violations = append(violations, msg)
	}
	if in.Rate != nil && (!mathutil.IsFinite(*in.Rate) || *in.Rate < 0 || *in.Rate > maxModelRate) {
		violations = append(violations, fmt.Sprintf("rate must be between 0 and %.0f%%, got %v",
			maxModelRate*100, *in.Rate))
	}
	return violations
}

func (in HalfHalfInput) scheduleViolation() string {
	if in.ContractDate.IsZero() || in.EventDate.IsZero() {
		return "contract and event dates are required"
	}
	if !datetime.DateBeforeDate(in.ContractDate, in.EventDate) {
		return fmt.Sprintf("event date %s must be after contract date %s",
			in.EventDate.Format(constants.DateLayout), in.ContractDate.Format(constants.DateLayout))
	}
	if days := datetime.DaysBetween(in.ContractDate, in.EventDate); days < HalfHalfMinLeadDays {
		return fmt.Sprintf("event must be at least %d days after the contract, got %d",
			HalfHalfMinLeadDays, days)
	}
	return ""
}

// Calculate implements Calculator.
func (in HalfHalfInput) Calculate() (Result, error) {
	if err := checkTotal(in.Total); err != nil {
		return Result{}, err
	}
	if msg := in.scheduleViolation(); msg != "" {
		return Result{}, invalidInput("%s", msg)
	}

	rate := interestRate(in.Rate, HalfHalfDefaultRate)
	total := mathutil.RoundCurrency(in.Total)
	entry := share(total, HalfHalfEntryShare)
	boleto := share(total, HalfHalfFirstBoletoShare)
	balanceBase := mathutil.RoundCurrency(total - entry - boleto)

	firstDue := datetime.AddDays(in.ContractDate, HalfHalfFirstBoletoDays)
	balanceDue := datetime.AddDays(in.EventDate, -HalfHalfBalanceNoticeDays)
	periods := mathutil.ClampInt(datetime.DaysBetween(firstDue, balanceDue)/constants.DaysPerPeriod, 0, constants.MaxPeriods)

	balance, err := grow(balanceBase, rate, periods, entry+boleto)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Model:          ModelHalfHalf,
		Principal:      total,
		Entry:          entry,
		Installments:   &Installments{Count: 1, Amount: boleto, LastAmount: boleto},
		Balance:        balance,
		HasBalance:     true,
		TotalFinanced:  mathutil.RoundCurrency(entry + boleto + balance),
		FirstDueDate:   datePtr(firstDue),
		BalanceDueDate: datePtr(balanceDue),
	}
	result.setInterest(rate, periods)
	return result, nil
}
