// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/installment-plan/pkg/datetime"
)

// ValidateDateField checks that a date field is either empty or a valid
// YYYY-MM-DD date.
func ValidateDateField(planName, field, value string) error {
	if _, err := datetime.ParseDate(value); err != nil {
		return fmt.Errorf("plan '%s' has invalid %s %q: %w", planName, field, value, err)
	}
	return nil
}

// ValidateEventDates checks that the event happens after the date the plan
// starts counting from.
func ValidateEventDates(planName, startField, startDate, eventDate string) []string {
	var warnings []string

	if startDate == "" || eventDate == "" {
		return warnings
	}

	start, err := datetime.ParseDate(startDate)
	if err != nil {
		return warnings
	}
	event, err := datetime.ParseDate(eventDate)
	if err != nil {
		return warnings
	}

	if !datetime.DateBeforeDate(start, event) {
		warnings = append(warnings, fmt.Sprintf("Plan '%s' event date is not after its %s (%s <= %s)",
			planName, startField, eventDate, startDate))
	}

	return warnings
}

// ConfigValidator checks a set of plans for problems that span fields or
// plans. Per-model business rules are reported by the calculators.
type ConfigValidator struct {
	Plans []PlanConfig
}

type PlanConfig struct {
	Name          string
	ContractDate  string
	EventDate     string
	ReferenceDate string
}

// ValidateAll validates every plan and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string
	seen := make(map[string]bool, len(cv.Plans))

	for i, plan := range cv.Plans {
		name := strings.TrimSpace(plan.Name)
		if name == "" {
			warnings = append(warnings, fmt.Sprintf("Plan #%d has no name", i+1))
			name = fmt.Sprintf("#%d", i+1)
		} else if seen[name] {
			warnings = append(warnings, fmt.Sprintf("Plan '%s' is defined more than once", name))
		}
		seen[name] = true

		fields := []struct{ field, value string }{
			{"contract date", plan.ContractDate},
			{"event date", plan.EventDate},
			{"reference date", plan.ReferenceDate},
		}
		for _, f := range fields {
			if err := ValidateDateField(name, f.field, f.value); err != nil {
				warnings = append(warnings, err.Error())
			}
		}

		warnings = append(warnings, ValidateEventDates(name, "contract date", plan.ContractDate, plan.EventDate)...)
		warnings = append(warnings, ValidateEventDates(name, "reference date", plan.ReferenceDate, plan.EventDate)...)
	}

	return warnings
}
