package plans

import (
	"fmt"
	"time"

	"github.com/iwvelando/installment-plan/pkg/constants"
	"github.com/iwvelando/installment-plan/pkg/datetime"
	"github.com/iwvelando/installment-plan/pkg/mathutil"
)

// Deferred-balance ("Indaiá") model parameters.
const (
	DeferredMonthlyRate       = 0.01
	DeferredEntryShare        = 0.20
	DeferredBalanceShare      = 0.30
	DeferredInstallmentsShare = 1 - DeferredEntryShare - DeferredBalanceShare
	DeferredMinLeadMonths     = 2
)

// DeferredBalanceInput describes a plan whose monthly installments run from
// the reference date until one month before the event, with a closing
// balance paid at the end.
type DeferredBalanceInput struct {
	Total         float64
	EventDate     time.Time
	ReferenceDate time.Time
}

// Model implements Calculator.
func (in DeferredBalanceInput) Model() Model { return ModelDeferredBalance }

// Validate implements Calculator. Events closer than DeferredMinLeadMonths
// are flagged here but still calculable.
func (in DeferredBalanceInput) Validate() []string {
	var violations []string
	if msg := totalViolation(in.Total); msg != "" {
		violations = append(violations, msg)
	}
	if in.EventDate.IsZero() {
		violations = append(violations, "event date is required")
		return violations
	}
	if in.ReferenceDate.IsZero() {
		violations = append(violations, "reference date is required")
		return violations
	}
	if !datetime.DateBeforeDate(in.ReferenceDate, in.EventDate) {
		violations = append(violations, fmt.Sprintf("event date %s must be after %s",
			in.EventDate.Format(constants.DateLayout), in.ReferenceDate.Format(constants.DateLayout)))
	}
	if months := datetime.CalendarMonthsBetween(in.ReferenceDate, in.EventDate); months < DeferredMinLeadMonths {
		violations = append(violations, fmt.Sprintf("event must be at least %d months away, got %d",
			DeferredMinLeadMonths, months))
	}
	return violations
}

// Calculate implements Calculator.
func (in DeferredBalanceInput) Calculate() (Result, error) {
	if err := checkTotal(in.Total); err != nil {
		return Result{}, err
	}
	if in.EventDate.IsZero() || in.ReferenceDate.IsZero() {
		return Result{}, invalidInput("event and reference dates are required")
	}

	total := mathutil.RoundCurrency(in.Total)
	periods := datetime.MonthsUntil(in.EventDate, in.ReferenceDate)

	financed, err := grow(total, DeferredMonthlyRate, periods, 0)
	if err != nil {
		return Result{}, err
	}

	entry := share(financed, DeferredEntryShare)
	balance := share(financed, DeferredBalanceShare)
	installments := mathutil.RoundCurrency(financed - entry - balance)

	result := Result{
		Model:          ModelDeferredBalance,
		Principal:      total,
		Entry:          entry,
		Installments:   splitEvenly(installments, periods),
		Balance:        balance,
		HasBalance:     true,
		TotalFinanced:  financed,
		FirstDueDate:   datePtr(datetime.AddMonths(in.ReferenceDate, 1)),
		BalanceDueDate: datePtr(datetime.AddMonths(in.EventDate, -constants.NoticePeriodMonths)),
	}
	result.setInterest(DeferredMonthlyRate, periods)
	return result, nil
}
