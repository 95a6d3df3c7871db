package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/iwvelando/installment-plan/pkg/plans"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2025, time.January, 15, 14, 30, 0, 0, time.UTC)

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestToCalculatorSelectsModel(t *testing.T) {
	tests := []struct {
		name     string
		plan     Plan
		expected plans.Calculator
	}{
		{
			name: "Deferred balance defaults reference date to today",
			plan: Plan{Name: "a", Model: "indaia", Total: 8000, EventDate: "2025-06-01"},
			expected: plans.DeferredBalanceInput{
				Total: 8000, EventDate: day("2025-06-01"), ReferenceDate: day("2025-01-15"),
			},
		},
		{
			name: "Deferred balance with explicit reference date",
			plan: Plan{Name: "a", Model: "deferred-balance", Total: 8000, EventDate: "2025-06-01", ReferenceDate: "2025-02-01"},
			expected: plans.DeferredBalanceInput{
				Total: 8000, EventDate: day("2025-06-01"), ReferenceDate: day("2025-02-01"),
			},
		},
		{
			name:     "Four installments",
			plan:     Plan{Name: "b", Model: "Quatro-Parcelas", Total: 500},
			expected: plans.FourInstallmentsInput{Total: 500},
		},
		{
			name:     "Cash discount",
			plan:     Plan{Name: "c", Model: "a-vista", Total: 750},
			expected: plans.CashDiscountInput{Total: 750},
		},
		{
			name: "Half-half defaults contract date to today",
			plan: Plan{Name: "d", Model: "cinquenta-cinquenta", Total: 9000, EventDate: "2025-08-01"},
			expected: plans.HalfHalfInput{
				Total: 9000, ContractDate: day("2025-01-15"), EventDate: day("2025-08-01"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc, err := tt.plan.ToCalculator(fixedNow)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, calc)
		})
	}
}

func TestToCalculatorCardRateFallsBackToRate(t *testing.T) {
	rate := 0.015
	calc, err := Plan{Name: "e", Model: "cartao-parcial", Total: 1000, InstallmentCount: 6, Rate: &rate}.ToCalculator(fixedNow)
	require.NoError(t, err)

	card, ok := calc.(plans.CardInstallmentInput)
	require.True(t, ok)
	require.NotNil(t, card.CardRate)
	assert.Equal(t, 0.015, *card.CardRate)
	assert.Equal(t, 6, card.InstallmentCount)
}

func TestToCalculatorAdvisorCarriesNegotiation(t *testing.T) {
	calc, err := Plan{
		Name:                         "f",
		Model:                        "advisor",
		Total:                        20000,
		EntryValue:                   2000,
		EntryInstallmentCount:        2,
		IntermediateInstallmentCount: 6,
		IntermediateInstallmentValue: 2500,
		ClosingInstallmentCount:      3,
	}.ToCalculator(fixedNow)
	require.NoError(t, err)

	advisor, ok := calc.(plans.AdvisorInput)
	require.True(t, ok)
	assert.Equal(t, 2500.0, advisor.IntermediateInstallmentValue)
	assert.Equal(t, 3, advisor.ClosingInstallmentCount)
	assert.Nil(t, advisor.Rate)
}

func TestToCalculatorErrors(t *testing.T) {
	tests := []struct {
		name     string
		plan     Plan
		contains string
	}{
		{"Unknown model", Plan{Name: "x", Model: "layaway"}, "unknown payment model"},
		{"Bad event date", Plan{Name: "x", Model: "indaia", EventDate: "2025/06/01"}, "plan 'x' has invalid event date"},
		{"Bad reference date", Plan{Name: "x", Model: "indaia", ReferenceDate: "soon"}, "invalid reference date"},
		{"Bad contract date", Plan{Name: "x", Model: "50/50", ContractDate: "2025-13-01"}, "invalid contract date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.plan.ToCalculator(fixedNow)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestCalculatorsUsesConfiguredReferenceDate(t *testing.T) {
	config := Configuration{
		ReferenceDate: "2025-03-01",
		Plans: []Plan{
			{Name: "a", Model: "indaia", Total: 1000, EventDate: "2025-09-01"},
		},
	}

	named, err := config.Calculators(fixedNow)
	require.NoError(t, err)
	require.Len(t, named, 1)

	deferred := named[0].Calculator.(plans.DeferredBalanceInput)
	assert.Equal(t, day("2025-03-01"), deferred.ReferenceDate)
}

func TestCalculatorsRejectsBadReferenceDate(t *testing.T) {
	config := Configuration{ReferenceDate: "March", Plans: []Plan{{Name: "a", Model: "a-vista", Total: 1}}}
	_, err := config.Calculators(fixedNow)
	assert.Error(t, err)
}

func TestExamplePlanFileCalculates(t *testing.T) {
	config, err := LoadConfiguration(filepath.Join("testdata", "plans.yaml"))
	require.NoError(t, err)
	assert.Empty(t, config.ValidateConfiguration())

	named, err := config.Calculators(time.Now())
	require.NoError(t, err)

	outcomes := plans.NewPlanner(zap.NewNop()).RunAll(named)
	require.Len(t, outcomes, 6)
	for _, outcome := range outcomes {
		assert.False(t, outcome.Failed(), "%s: %s", outcome.Name, outcome.Error)
		assert.Empty(t, outcome.Violations, outcome.Name)
		require.NotNil(t, outcome.Result, outcome.Name)
	}

	assert.Equal(t, 10201.0, outcomes[0].Result.TotalFinanced)
	assert.Equal(t, 950.0, outcomes[2].Result.TotalFinanced)
	assert.Equal(t, 3090.9, outcomes[4].Result.Balance)
	assert.Equal(t, 10255.05, outcomes[5].Result.TotalFinanced)
}
