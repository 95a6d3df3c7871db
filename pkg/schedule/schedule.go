// Package schedule expands a plan result into the dated list of payments a
// contract prints.
package schedule

import (
	"time"

	"github.com/iwvelando/installment-plan/pkg/datetime"
	"github.com/iwvelando/installment-plan/pkg/mathutil"
	"github.com/iwvelando/installment-plan/pkg/plans"
)

// Kind identifies which part of a plan a payment belongs to.
type Kind string

// Payment kinds, named as they print on a contract.
const (
	// KindEntry is the entry paid at signing, or one of its installments.
	KindEntry Kind = "entrada"

	// KindInstallment is a monthly installment between entry and balance.
	KindInstallment Kind = "parcela"

	// KindBalance is the closing balance, or one of its installments.
	KindBalance Kind = "saldo"
)

// Payment is a single payment of a plan. DueDate is nil when the model
// does not fix one.
type Payment struct {
	Kind    Kind       `json:"tipo" yaml:"tipo"`
	Number  int        `json:"numero" yaml:"numero"`
	Amount  float64    `json:"valor" yaml:"valor"`
	DueDate *time.Time `json:"vencimento,omitempty" yaml:"vencimento,omitempty"`
}

// DueDates lists count monthly dates starting at first. Each date is
// offset from first, so a 31st stays on the last day of shorter months
// without drifting.
func DueDates(first time.Time, count int) []time.Time {
	if count < 1 {
		return nil
	}
	dates := make([]time.Time, count)
	for i := range dates {
		dates[i] = datetime.AddMonths(first, i)
	}
	return dates
}

// Build lists every payment of result in order: entry, installments,
// balance. Installments are dated monthly from FirstDueDate and a single
// balance takes BalanceDueDate.
func Build(result plans.Result) []Payment {
	var payments []Payment

	if result.EntryInstallments != nil {
		payments = append(payments, expand(KindEntry, result.EntryInstallments, nil)...)
	} else if result.Entry > 0 {
		payments = append(payments, Payment{Kind: KindEntry, Number: 1, Amount: result.Entry})
	}

	payments = append(payments, expand(KindInstallment, result.Installments, result.FirstDueDate)...)

	switch {
	case result.BalanceInstallments != nil:
		payments = append(payments, expand(KindBalance, result.BalanceInstallments, nil)...)
	case result.HasBalance:
		payments = append(payments, Payment{
			Kind:    KindBalance,
			Number:  1,
			Amount:  result.Balance,
			DueDate: result.BalanceDueDate,
		})
	}

	return payments
}

// Total sums the amounts of payments.
func Total(payments []Payment) float64 {
	var total float64
	for _, p := range payments {
		total += p.Amount
	}
	return mathutil.RoundCurrency(total)
}

func expand(kind Kind, bucket *plans.Installments, first *time.Time) []Payment {
	if bucket == nil || bucket.Count < 1 {
		return nil
	}

	var dates []time.Time
	if first != nil {
		dates = DueDates(*first, bucket.Count)
	}

	payments := make([]Payment, bucket.Count)
	for i := range payments {
		payments[i] = Payment{Kind: kind, Number: i + 1, Amount: bucket.Amount}
		if i == bucket.Count-1 {
			payments[i].Amount = bucket.LastAmount
		}
		if dates != nil {
			due := dates[i]
			payments[i].DueDate = &due
		}
	}
	return payments
}
