package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/iwvelando/installment-plan/internal/config"
	"github.com/iwvelando/installment-plan/internal/logging"
	"github.com/iwvelando/installment-plan/pkg/constants"
	"github.com/iwvelando/installment-plan/pkg/output"
	"github.com/iwvelando/installment-plan/pkg/plans"
	"github.com/iwvelando/installment-plan/pkg/validation"
	"go.uber.org/zap"
)

// run computes every plan in conf and writes them to w in the requested
// format. It returns the number of plans the engine refused.
func run(logger *zap.Logger, conf *config.Configuration, outputFormatOverride string, now time.Time, w io.Writer) (int, error) {
	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if outputFormatOverride != "" {
		outputFormat = outputFormatOverride
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return 0, err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.run"),
		)
	}

	named, err := conf.Calculators(now)
	if err != nil {
		return 0, fmt.Errorf("failed to convert plans: %w", err)
	}

	outcomes := plans.NewPlanner(logger).RunAll(named)

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(w, outcomes)
	case constants.OutputFormatCSV:
		err = output.CsvFormat(w, outcomes)
	case constants.OutputFormatJSON:
		err = output.JSONFormat(w, outcomes)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to write %s output: %w", outputFormat, err)
	}

	failed := 0
	for _, outcome := range outcomes {
		if outcome.Failed() {
			failed++
		}
	}
	return failed, nil
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to plan request file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}

	failed, err := run(logger, conf, *outputFormatFlag, time.Now(), os.Stdout)
	if err != nil {
		logger.Fatal("failed to compute plans",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	_ = logger.Sync()

	if failed > 0 {
		os.Exit(1)
	}
}
