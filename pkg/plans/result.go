package plans

import (
	"time"

	"github.com/iwvelando/installment-plan/pkg/mathutil"
)

// Installments is a bucket of equal periodic payments. The last payment
// absorbs the rounding residue so the bucket sums exactly to its total.
type Installments struct {
	Count      int     `json:"quantidadeParcelas" yaml:"quantidadeParcelas"`
	Amount     float64 `json:"valorParcelas" yaml:"valorParcelas"`
	LastAmount float64 `json:"valorUltimaParcela" yaml:"valorUltimaParcela"`
}

// splitEvenly divides total into count installments truncated to cents,
// with the remainder carried by the last one.
func splitEvenly(total float64, count int) *Installments {
	if count < 1 {
		count = 1
	}
	amount := mathutil.DivideCurrency(total, count)
	last := mathutil.RoundCurrency(total - amount*float64(count-1))
	return &Installments{Count: count, Amount: amount, LastAmount: last}
}

// Total returns the sum of every installment in the bucket. A nil bucket
// sums to zero.
func (i *Installments) Total() float64 {
	if i == nil || i.Count < 1 {
		return 0
	}
	return mathutil.RoundCurrency(i.Amount*float64(i.Count-1) + i.LastAmount)
}

// Uniform reports whether every installment has the same amount.
func (i *Installments) Uniform() bool {
	return i != nil && i.Amount == i.LastAmount
}

// Result is the payment breakdown produced by a calculator. Optional parts
// are nil when the model does not define them.
type Result struct {
	Model     Model   `json:"modelo" yaml:"modelo"`
	Principal float64 `json:"valorBase" yaml:"valorBase"`

	Entry             float64       `json:"valorEntrada" yaml:"valorEntrada"`
	EntryInstallments *Installments `json:"parcelasEntrada,omitempty" yaml:"parcelasEntrada,omitempty"`

	Installments *Installments `json:"parcelas,omitempty" yaml:"parcelas,omitempty"`

	Balance             float64       `json:"valorSaldoFinal" yaml:"valorSaldoFinal"`
	HasBalance          bool          `json:"temSaldoFinal" yaml:"temSaldoFinal"`
	BalanceInstallments *Installments `json:"parcelasSaldoFinal,omitempty" yaml:"parcelasSaldoFinal,omitempty"`

	TotalFinanced float64 `json:"valorTotalFinanciado" yaml:"valorTotalFinanciado"`
	Interest      float64 `json:"jurosAplicados" yaml:"jurosAplicados"`
	MonthlyRate   float64 `json:"taxaMensal" yaml:"taxaMensal"`
	EffectiveRate float64 `json:"percentualJuros" yaml:"percentualJuros"`
	Periods       int     `json:"periodos" yaml:"periodos"`

	Discount        float64 `json:"valorDesconto,omitempty" yaml:"valorDesconto,omitempty"`
	DiscountPercent float64 `json:"percentualDesconto,omitempty" yaml:"percentualDesconto,omitempty"`

	FirstDueDate   *time.Time `json:"vencimentoPrimeiraParcela,omitempty" yaml:"vencimentoPrimeiraParcela,omitempty"`
	BalanceDueDate *time.Time `json:"vencimentoSaldoFinal,omitempty" yaml:"vencimentoSaldoFinal,omitempty"`
}

// Reconstructed sums the buckets the result defines: entry, installments
// and balance.
func (r Result) Reconstructed() float64 {
	return mathutil.RoundCurrency(r.Entry + r.Installments.Total() + r.Balance)
}

// setInterest records the interest accrued over the principal and the
// effective rate it represents.
func (r *Result) setInterest(rate float64, periods int) {
	r.Interest = mathutil.RoundCurrency(r.TotalFinanced - r.Principal)
	r.MonthlyRate = rate
	r.Periods = periods
	r.EffectiveRate = mathutil.RoundCurrency(mathutil.CalculatePercentage(r.Interest, r.Principal))
}

func datePtr(t time.Time) *time.Time {
	return &t
}
