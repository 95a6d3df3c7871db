// Package output provides utilities for formatting and displaying plan results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/installment-plan/pkg/format"
	"github.com/iwvelando/installment-plan/pkg/plans"
	"github.com/iwvelando/installment-plan/pkg/schedule"
)

const separator = " • "

// Summary renders a one-line description of a result, e.g.
// "Entrada: R$ 2.040,20 • 2x de R$ 2.550,25 • Saldo: R$ 3.060,30 (30 dias antes do evento)".
func Summary(result plans.Result) string {
	var parts []string

	if result.EntryInstallments != nil && result.EntryInstallments.Count > 1 {
		parts = append(parts, "Entrada: "+installmentsText(result.EntryInstallments))
	} else {
		parts = append(parts, "Entrada: "+format.Currency(result.Entry))
	}

	if result.Installments != nil {
		switch result.Model {
		case plans.ModelHalfHalf:
			text := "1º boleto: " + format.Currency(result.Installments.Amount)
			if result.FirstDueDate != nil {
				text += " (" + format.Date(*result.FirstDueDate) + ")"
			}
			parts = append(parts, text)
		case plans.ModelCardInstallment:
			parts = append(parts, installmentsText(result.Installments)+" no cartão")
		default:
			parts = append(parts, installmentsText(result.Installments))
		}
	}

	if result.HasBalance {
		parts = append(parts, balanceText(result))
	}

	if result.Discount > 0 {
		parts = append(parts, fmt.Sprintf("Desconto: %s (%s)",
			format.Currency(result.Discount), format.Percent(result.DiscountPercent/100)))
	}
	if result.Interest > 0 {
		parts = append(parts, fmt.Sprintf("Juros: %s (%s a.m.)",
			format.Currency(result.Interest), format.Percent(result.MonthlyRate)))
	}

	return strings.Join(parts, separator)
}

func installmentsText(bucket *plans.Installments) string {
	text := fmt.Sprintf("%dx de %s", bucket.Count, format.Currency(bucket.Amount))
	if !bucket.Uniform() {
		text += fmt.Sprintf(" (última %s)", format.Currency(bucket.LastAmount))
	}
	return text
}

func balanceText(result plans.Result) string {
	text := "Saldo: "
	if result.BalanceInstallments != nil {
		text += installmentsText(result.BalanceInstallments)
	} else {
		text += format.Currency(result.Balance)
	}

	switch result.Model {
	case plans.ModelDeferredBalance:
		text += " (1 mês antes do evento)"
	case plans.ModelHalfHalf:
		text += " (30 dias antes do evento)"
		if result.BalanceDueDate != nil {
			text += ", vence " + format.Date(*result.BalanceDueDate)
		}
	}
	return text
}

// PrettyFormat writes a human-readable report of every outcome.
func PrettyFormat(w io.Writer, outcomes []plans.Outcome) {
	for i, outcome := range outcomes {
		fmt.Fprintf(w, "--- Plan %s (%s) ---\n", outcome.Name, outcome.Model)
		for _, violation := range outcome.Violations {
			fmt.Fprintf(w, "warning: %s\n", violation)
		}
		if outcome.Failed() {
			fmt.Fprintf(w, "error: %s\n", outcome.Error)
		} else if outcome.Result != nil {
			r := outcome.Result
			fmt.Fprintf(w, "Total          | %s\n", format.Currency(r.Principal))
			fmt.Fprintf(w, "Total financed | %s\n", format.Currency(r.TotalFinanced))
			fmt.Fprintf(w, "Summary        | %s\n", Summary(*r))
			for _, payment := range schedule.Build(*r) {
				line := fmt.Sprintf("  %-8s %2d    | %s", payment.Kind, payment.Number, format.Currency(payment.Amount))
				if payment.DueDate != nil {
					line += " | " + format.Date(*payment.DueDate)
				}
				fmt.Fprintln(w, line)
			}
		}
		if i < len(outcomes)-1 {
			fmt.Fprintf(w, "\n")
		}
	}
}

var csvHeader = []string{
	"name", "model", "total", "entry", "installment_count", "installment_amount",
	"last_installment_amount", "balance", "total_financed", "interest", "effective_rate",
	"discount", "first_due_date", "balance_due_date", "violations", "error",
}

// CsvFormat writes one comma-separated row per outcome.
func CsvFormat(w io.Writer, outcomes []plans.Outcome) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, outcome := range outcomes {
		if err := writer.Write(csvRow(outcome)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// CsvString renders the outcomes as CSV text.
func CsvString(outcomes []plans.Outcome) string {
	var b strings.Builder
	if err := CsvFormat(&b, outcomes); err != nil {
		return ""
	}
	return b.String()
}

func csvRow(outcome plans.Outcome) []string {
	row := make([]string, len(csvHeader))
	row[0] = outcome.Name
	row[1] = string(outcome.Model)
	row[14] = strings.Join(outcome.Violations, "; ")
	row[15] = outcome.Error

	r := outcome.Result
	if r == nil {
		return row
	}
	row[2] = money(r.Principal)
	row[3] = money(r.Entry)
	if r.Installments != nil {
		row[4] = strconv.Itoa(r.Installments.Count)
		row[5] = money(r.Installments.Amount)
		row[6] = money(r.Installments.LastAmount)
	}
	if r.HasBalance {
		row[7] = money(r.Balance)
	}
	row[8] = money(r.TotalFinanced)
	row[9] = money(r.Interest)
	row[10] = money(r.EffectiveRate)
	if r.Discount > 0 {
		row[11] = money(r.Discount)
	}
	if r.FirstDueDate != nil {
		row[12] = r.FirstDueDate.Format("2006-01-02")
	}
	if r.BalanceDueDate != nil {
		row[13] = r.BalanceDueDate.Format("2006-01-02")
	}
	return row
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// JSONFormat writes the outcomes as an indented JSON array.
func JSONFormat(w io.Writer, outcomes []plans.Outcome) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(outcomes)
}
