// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/installment-plan/pkg/plans"
)

// FindOutcome finds a plan outcome by name in the outcomes slice.
// Returns a pointer to the outcome if found, nil otherwise.
func FindOutcome(outcomes []plans.Outcome, name string) *plans.Outcome {
	for i := range outcomes {
		if outcomes[i].Name == name {
			return &outcomes[i]
		}
	}
	return nil
}
