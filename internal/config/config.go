// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the plan-request file.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/installment-plan/pkg/constants"
	"github.com/iwvelando/installment-plan/pkg/plans"
	"github.com/iwvelando/installment-plan/pkg/validation"
	"github.com/spf13/viper"
)

// DateLayout is the format expected for every date in the config file.
const DateLayout = constants.DateLayout

// Configuration holds all configuration for installment-plan.
type Configuration struct {
	// ReferenceDate applies to every plan that does not set its own.
	// Empty means today.
	ReferenceDate string        `json:"referenceDate,omitempty" yaml:"referenceDate,omitempty"`
	Plans         []Plan        `json:"plans" yaml:"plans"`
	Logging       LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
	Output        OutputConfig  `json:"output,omitempty" yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `json:"level,omitempty" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `json:"format,omitempty" yaml:"format,omitempty"`         // json, console
	OutputFile string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `json:"format,omitempty" yaml:"format,omitempty"` // pretty, csv, json
}

// Plan is one payment-plan request. Only the fields its model reads are
// used; the rest are ignored.
type Plan struct {
	Name  string  `json:"name" yaml:"name"`
	Model string  `json:"model" yaml:"model"`
	Total float64 `json:"total" yaml:"total"`

	EntryValue                   float64 `json:"entryValue,omitempty" yaml:"entryValue,omitempty"`
	EntryInstallmentCount        int     `json:"entryInstallmentCount,omitempty" yaml:"entryInstallmentCount,omitempty"`
	InstallmentCount             int     `json:"installmentCount,omitempty" yaml:"installmentCount,omitempty"`
	IntermediateInstallmentCount int     `json:"intermediateInstallmentCount,omitempty" yaml:"intermediateInstallmentCount,omitempty"`
	IntermediateInstallmentValue float64 `json:"intermediateInstallmentValue,omitempty" yaml:"intermediateInstallmentValue,omitempty"`
	ClosingInstallmentCount      int     `json:"closingInstallmentCount,omitempty" yaml:"closingInstallmentCount,omitempty"`

	CardRate *float64 `json:"cardRate,omitempty" yaml:"cardRate,omitempty"`
	Rate     *float64 `json:"rate,omitempty" yaml:"rate,omitempty"`

	ContractDate  string `json:"contractDate,omitempty" yaml:"contractDate,omitempty"`
	EventDate     string `json:"eventDate,omitempty" yaml:"eventDate,omitempty"`
	ReferenceDate string `json:"referenceDate,omitempty" yaml:"referenceDate,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r,
// e.g. an uploaded file.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings.
// Per-model business rules are not checked here; the planner reports them.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.Plans) == 0 {
		warnings = append(warnings, "Configuration defines no plans")
	}

	if err := validation.ValidateDateField("*", "reference date", c.ReferenceDate); err != nil {
		warnings = append(warnings, err.Error())
	}

	validator := validation.ConfigValidator{}
	for _, plan := range c.Plans {
		if _, err := plans.ParseModel(plan.Model); err != nil {
			warnings = append(warnings, fmt.Sprintf("Plan '%s': %v", strings.TrimSpace(plan.Name), err))
		}
		validator.Plans = append(validator.Plans, validation.PlanConfig{
			Name:          plan.Name,
			ContractDate:  plan.ContractDate,
			EventDate:     plan.EventDate,
			ReferenceDate: plan.ReferenceDate,
		})
	}

	return append(warnings, validator.ValidateAll()...)
}
