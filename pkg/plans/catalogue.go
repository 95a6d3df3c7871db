package plans

// ModelInfo describes a payment model and the fixed parameters it applies.
type ModelInfo struct {
	Model       Model              `json:"model" yaml:"model"`
	Description string             `json:"description" yaml:"description"`
	Parameters  map[string]float64 `json:"parameters" yaml:"parameters"`
}

// Catalogue lists every model with its parameters, in Models() order.
func Catalogue() []ModelInfo {
	return []ModelInfo{
		{
			Model:       ModelDeferredBalance,
			Description: "entry, monthly installments until one month before the event, closing balance",
			Parameters: map[string]float64{
				"monthlyRate":       DeferredMonthlyRate,
				"entryShare":        DeferredEntryShare,
				"installmentsShare": DeferredInstallmentsShare,
				"balanceShare":      DeferredBalanceShare,
				"minLeadMonths":     DeferredMinLeadMonths,
			},
		},
		{
			Model:       ModelFourInstallments,
			Description: "entry plus four fixed installments, no interest",
			Parameters: map[string]float64{
				"entryShare":       FourInstallmentsEntryShare,
				"installments":     FourInstallmentsCount,
				"installmentShare": FourInstallmentsInstallmentShare,
			},
		},
		{
			Model:       ModelCashDiscount,
			Description: "discounted total paid as an entry and a single balance",
			Parameters: map[string]float64{
				"discountPercent": CashDiscountPercent,
				"entryShare":      CashEntryShare,
			},
		},
		{
			Model:       ModelCardInstallment,
			Description: "entry plus the remainder compounded over card installments",
			Parameters: map[string]float64{
				"entryShare":      CardEntryShare,
				"maxInstallments": CardMaxInstallments,
				"defaultRate":     CardDefaultRate,
			},
		},
		{
			Model:       ModelAdvisor,
			Description: "advisor-negotiated entry, intermediate installments and closing balance",
			Parameters: map[string]float64{
				"minEntry":                    AdvisorMinEntry,
				"maxEntryInstallments":        AdvisorMaxEntryInstallments,
				"minIntermediateInstallments": AdvisorMinIntermediateInstallments,
				"minIntermediateAmount":       AdvisorMinIntermediateAmount,
				"maxClosingInstallments":      AdvisorMaxClosingInstallments,
				"defaultRate":                 AdvisorDefaultRate,
			},
		},
		{
			Model:       ModelHalfHalf,
			Description: "entry, first boleto 30 days after signing, balance 30 days before the event",
			Parameters: map[string]float64{
				"entryShare":        HalfHalfEntryShare,
				"firstBoletoShare":  HalfHalfFirstBoletoShare,
				"balanceShare":      HalfHalfBalanceShare,
				"minLeadDays":       HalfHalfMinLeadDays,
				"firstBoletoDays":   HalfHalfFirstBoletoDays,
				"balanceNoticeDays": HalfHalfBalanceNoticeDays,
				"defaultRate":       HalfHalfDefaultRate,
			},
		},
	}
}
