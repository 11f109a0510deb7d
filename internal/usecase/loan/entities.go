package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type LoanDTO struct {
	LoanID            string          `json:"loan_id"`
	LoanAmount        decimal.Decimal `json:"loan_amount"`
	DisbursedAmount   decimal.Decimal `json:"disbursed_amount"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	TenureMonths      int             `json:"tenure_months"`
	EMIAmount         decimal.Decimal `json:"emi_amount"`
	StartDate         time.Time       `json:"loan_start_date"`
	EndDate           time.Time       `json:"loan_end_date"`
	Status            string          `json:"loan_status"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	TotalPaid         decimal.Decimal `json:"total_paid"`
}

type DisbursementDTO struct {
	LoanID           string          `json:"loan_id"`
	Amount           decimal.Decimal `json:"amount"`
	DisbursementDate time.Time       `json:"disbursement_date"`
	PaymentMode      string          `json:"payment_mode"`
	ReferenceNumber  string          `json:"reference_number"`
	TotalDisbursed   decimal.Decimal `json:"total_disbursed"`
}
