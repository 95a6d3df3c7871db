// Package config defines conversion utilities for configuration objects.
package config

import (
	"fmt"
	"time"

	"github.com/iwvelando/installment-plan/pkg/datetime"
	"github.com/iwvelando/installment-plan/pkg/plans"
)

// ToCalculator converts a plan request into the calculator of its model.
// Dates left empty default to the configuration reference date, or to now.
func (p Plan) ToCalculator(now time.Time) (plans.Calculator, error) {
	model, err := plans.ParseModel(p.Model)
	if err != nil {
		return nil, fmt.Errorf("plan '%s': %w", p.Name, err)
	}

	today := datetime.Day(now)

	switch model {
	case plans.ModelDeferredBalance:
		event, err := p.date("event date", p.EventDate, time.Time{})
		if err != nil {
			return nil, err
		}
		reference, err := p.date("reference date", p.ReferenceDate, today)
		if err != nil {
			return nil, err
		}
		return plans.DeferredBalanceInput{Total: p.Total, EventDate: event, ReferenceDate: reference}, nil

	case plans.ModelFourInstallments:
		return plans.FourInstallmentsInput{Total: p.Total}, nil

	case plans.ModelCashDiscount:
		return plans.CashDiscountInput{Total: p.Total}, nil

	case plans.ModelCardInstallment:
		cardRate := p.CardRate
		if cardRate == nil {
			cardRate = p.Rate
		}
		return plans.CardInstallmentInput{Total: p.Total, InstallmentCount: p.InstallmentCount, CardRate: cardRate}, nil

	case plans.ModelAdvisor:
		return plans.AdvisorInput{
			Total:                        p.Total,
			EntryValue:                   p.EntryValue,
			EntryInstallmentCount:        p.EntryInstallmentCount,
			IntermediateInstallmentCount: p.IntermediateInstallmentCount,
			IntermediateInstallmentValue: p.IntermediateInstallmentValue,
			ClosingInstallmentCount:      p.ClosingInstallmentCount,
			Rate:                         p.Rate,
		}, nil

	case plans.ModelHalfHalf:
		contract, err := p.date("contract date", p.ContractDate, today)
		if err != nil {
			return nil, err
		}
		event, err := p.date("event date", p.EventDate, time.Time{})
		if err != nil {
			return nil, err
		}
		return plans.HalfHalfInput{Total: p.Total, ContractDate: contract, EventDate: event, Rate: p.Rate}, nil
	}

	return nil, fmt.Errorf("plan '%s': model %s has no conversion", p.Name, model)
}

func (p Plan) date(field, value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	t, err := datetime.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("plan '%s' has invalid %s %q: %w", p.Name, field, value, err)
	}
	return t, nil
}

// Calculators converts every plan, applying the configuration-wide
// reference date to plans that do not set one. The first conversion error
// aborts.
func (c *Configuration) Calculators(now time.Time) ([]plans.Named, error) {
	if c.ReferenceDate != "" {
		reference, err := datetime.ParseDate(c.ReferenceDate)
		if err != nil {
			return nil, fmt.Errorf("invalid reference date %q: %w", c.ReferenceDate, err)
		}
		now = reference
	}

	named := make([]plans.Named, 0, len(c.Plans))
	for _, plan := range c.Plans {
		calc, err := plan.ToCalculator(now)
		if err != nil {
			return nil, err
		}
		named = append(named, plans.Named{Name: plan.Name, Calculator: calc})
	}
	return named, nil
}
