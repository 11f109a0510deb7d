package repayment

import (
	"time"

	npaDomain "credit-risk-ledger/internal/domain/npa"

	"github.com/shopspring/decimal"
)

// PaymentResult reports how one payment event landed on the ledger.
type PaymentResult struct {
	LoanID              string             `json:"loan_id"`
	ReferenceNumber     string             `json:"reference_number"`
	AmountApplied       decimal.Decimal    `json:"amount_applied"`
	Unapplied           decimal.Decimal    `json:"unapplied"`
	InstallmentsTouched []int              `json:"installments_touched"`
	TotalPaid           decimal.Decimal    `json:"total_paid"`
	OutstandingAmount   decimal.Decimal    `json:"outstanding_amount"`
	Category            npaDomain.Category `json:"npa_category"`
}

// OverdueResult summarizes a single loan's overdue recomputation.
type OverdueResult struct {
	LoanID            string             `json:"loan_id"`
	OverdueCount      int                `json:"overdue_count"`
	WorstDaysOverdue  int                `json:"worst_days_overdue"`
	PenaltyAccrued    decimal.Decimal    `json:"penalty_accrued"`
	OutstandingAmount decimal.Decimal    `json:"outstanding_amount"`
	Category          npaDomain.Category `json:"npa_category"`
}

// SweepResult is the per-loan outcome of a batch sweep; a failed loan never
// aborts the rest of the batch.
type SweepResult struct {
	LoanID string         `json:"loan_id"`
	Result *OverdueResult `json:"result,omitempty"`
	Err    string         `json:"error,omitempty"`
}

type InstallmentDTO struct {
	Period        int             `json:"period"`
	DueDate       time.Time       `json:"due_date"`
	EMIAmount     decimal.Decimal `json:"emi_amount"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Status        string          `json:"payment_status"`
	DaysOverdue   int             `json:"days_overdue"`
	PenaltyAmount decimal.Decimal `json:"penalty_amount"`
}
