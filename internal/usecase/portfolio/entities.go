package portfolio

import (
	npaDomain "credit-risk-ledger/internal/domain/npa"
	repaymentDomain "credit-risk-ledger/internal/domain/repayment"

	"github.com/shopspring/decimal"
)

type LoanStatistics struct {
	TotalApplications int64           `json:"total_applications"`
	TotalLoans        int64           `json:"total_loans"`
	ActiveLoans       int64           `json:"active_loans"`
	ClosedLoans       int64           `json:"closed_loans"`
	DefaultedLoans    int64           `json:"defaulted_loans"`
	WrittenOffLoans   int64           `json:"written_off_loans"`
	ApprovalRate      decimal.Decimal `json:"approval_rate"`
}

type FinancialMetrics struct {
	TotalDisbursed   decimal.Decimal `json:"total_disbursed"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	TotalRepaid      decimal.Decimal `json:"total_repaid"`
	TotalNpaExposure decimal.Decimal `json:"total_npa_exposure"`
}

type RiskMetrics struct {
	NpaRatio             decimal.Decimal `json:"npa_ratio"`
	DefaultRate          decimal.Decimal `json:"default_rate"`
	RepaymentPerformance decimal.Decimal `json:"repayment_performance"`
}

type Summary struct {
	LoanStatistics   LoanStatistics   `json:"loan_statistics"`
	FinancialMetrics FinancialMetrics `json:"financial_metrics"`
	RiskMetrics      RiskMetrics      `json:"risk_metrics"`
}

type CategorySlice struct {
	Count      int64           `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

type AmountSlice struct {
	Outstanding decimal.Decimal `json:"outstanding"`
	Provision   decimal.Decimal `json:"provision_required"`
}

type NPAAnalysis struct {
	Classification  map[npaDomain.Category]CategorySlice `json:"classification"`
	AmountBreakdown map[npaDomain.Category]AmountSlice   `json:"amount_breakdown"`
	TotalNpaLoans   int64                                `json:"total_npa_loans"`
	TotalLoans      int64                                `json:"total_loans"`
}

type RepaymentStats struct {
	TotalInstallments    int64                                    `json:"total_installments"`
	StatusDistribution   map[repaymentDomain.PaymentStatus]int64  `json:"status_distribution"`
	OnTimePercentage     decimal.Decimal                          `json:"on_time_percentage"`
	TotalEMIDue          decimal.Decimal                          `json:"total_emi_due"`
	TotalCollected       decimal.Decimal                          `json:"total_collected"`
	CollectionEfficiency decimal.Decimal                          `json:"collection_efficiency"`
	TotalPenalties       decimal.Decimal                          `json:"total_penalties"`
	AvgDaysOverdue       float64                                  `json:"avg_days_overdue"`
}
