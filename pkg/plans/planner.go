package plans

import (
	"errors"

	"go.uber.org/zap"
)

// Outcome pairs a named calculation with its validator findings.
// Violations never block the calculation; Err is set only when the
// calculator itself refused the input.
type Outcome struct {
	Name       string   `json:"nome" yaml:"nome"`
	Model      Model    `json:"modelo" yaml:"modelo"`
	Result     *Result  `json:"resultado,omitempty" yaml:"resultado,omitempty"`
	Violations []string `json:"violacoes,omitempty" yaml:"violacoes,omitempty"`
	Error      string   `json:"erro,omitempty" yaml:"erro,omitempty"`
	Err        error    `json:"-" yaml:"-"`
}

// Failed reports whether the calculator returned an error.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Planner runs the validate-then-calculate flow callers follow before
// committing to a model.
type Planner struct {
	logger *zap.Logger
}

// NewPlanner creates a new planner instance
func NewPlanner(logger *zap.Logger) *Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{logger: logger}
}

// Run validates calc, logs any violations, and calculates regardless of
// them.
func (p *Planner) Run(name string, calc Calculator) Outcome {
	outcome := Outcome{
		Name:       name,
		Model:      calc.Model(),
		Violations: calc.Validate(),
	}

	for _, violation := range outcome.Violations {
		p.logger.Warn("plan violates business rule",
			zap.String("op", "plans.Run"),
			zap.String("plan", name),
			zap.String("model", string(outcome.Model)),
			zap.String("violation", violation),
		)
	}

	result, err := calc.Calculate()
	if err != nil {
		level := p.logger.Info
		if errors.Is(err, ErrComputationOverflow) {
			level = p.logger.Error
		}
		level("plan calculation refused",
			zap.String("op", "plans.Run"),
			zap.String("plan", name),
			zap.String("model", string(outcome.Model)),
			zap.Error(err),
		)
		outcome.Err = err
		outcome.Error = err.Error()
		return outcome
	}

	p.logger.Debug("plan calculated",
		zap.String("op", "plans.Run"),
		zap.String("plan", name),
		zap.String("model", string(outcome.Model)),
		zap.Float64("total_financed", result.TotalFinanced),
		zap.Float64("interest", result.Interest),
		zap.Int("periods", result.Periods),
	)
	outcome.Result = &result
	return outcome
}

// Named attaches a caller-chosen label to a calculator.
type Named struct {
	Name       string
	Calculator Calculator
}

// RunAll runs every named calculator in order.
func (p *Planner) RunAll(named []Named) []Outcome {
	outcomes := make([]Outcome, 0, len(named))
	for _, n := range named {
		outcomes = append(outcomes, p.Run(n.Name, n.Calculator))
	}
	return outcomes
}
