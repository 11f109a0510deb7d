package origination

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubmitInput carries the requested terms plus the externally computed risk
// assessment; the engine treats the score as an opaque input.
type SubmitInput struct {
	CustomerID      string
	LoanAmount      decimal.Decimal
	TenureMonths    int
	InterestRate    decimal.Decimal
	LoanPurpose     string
	CreditScore     decimal.Decimal
	RiskProbability decimal.Decimal
	RiskLevel       string
	Recommendation  string
}

type ApplicationDTO struct {
	ApplicationID   string          `json:"application_id"`
	CustomerID      string          `json:"customer_id"`
	LoanAmount      decimal.Decimal `json:"loan_amount"`
	TenureMonths    int             `json:"loan_tenure_months"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	LoanPurpose     string          `json:"loan_purpose"`
	Status          string          `json:"status"`
	CreditScore     decimal.Decimal `json:"credit_score"`
	RiskProbability decimal.Decimal `json:"risk_probability"`
	RiskLevel       string          `json:"risk_level"`
	CreatedAt       time.Time       `json:"created_at"`
}

type LoanDTO struct {
	LoanID            string          `json:"loan_id"`
	ApplicationID     string          `json:"application_id"`
	LoanAmount        decimal.Decimal `json:"loan_amount"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	TenureMonths      int             `json:"tenure_months"`
	EMIAmount         decimal.Decimal `json:"emi_amount"`
	StartDate         time.Time       `json:"loan_start_date"`
	EndDate           time.Time       `json:"loan_end_date"`
	Status            string          `json:"loan_status"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	TotalPaid         decimal.Decimal `json:"total_paid"`
	Installments      int             `json:"installments"`
}
