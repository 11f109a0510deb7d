package repayment

import (
	"credit-risk-ledger/internal/domain/loan"

	"github.com/shopspring/decimal"
)

// RecomputeRollups re-derives the loan's cached totals from the full
// installment ledger:
//
//	total_paid  = Σ amount_paid
//	outstanding = loan_amount − Σ principal allocated + Σ unpaid penalty
//
// The counters are a projection of the ledger, never incremented on their
// own, so the accounting identity holds after every mutation.
func RecomputeRollups(l *loan.Loan, installments []*Installment) {
	totalPaid := decimal.Zero
	principalRepaid := decimal.Zero
	openPenalty := decimal.Zero
	for _, i := range installments {
		totalPaid = totalPaid.Add(i.AmountPaid)
		principalRepaid = principalRepaid.Add(i.PrincipalPaid())
		openPenalty = openPenalty.Add(i.PenaltyOutstanding())
	}
	l.TotalPaid = totalPaid
	l.OutstandingAmount = l.LoanAmount.Sub(principalRepaid).Add(openPenalty)
}

// WorstDaysOverdue is the maximum days_overdue across unsettled installments.
// Settled rows are history; they no longer count toward delinquency.
func WorstDaysOverdue(installments []*Installment) int {
	worst := 0
	for _, i := range installments {
		if i.Status == StatusPaid {
			continue
		}
		if i.DaysOverdue > worst {
			worst = i.DaysOverdue
		}
	}
	return worst
}

// HasBlockingInstallment reports whether any unsettled Overdue/Partial row
// remains, which blocks closing the loan.
func HasBlockingInstallment(installments []*Installment) bool {
	for _, i := range installments {
		if (i.Status == StatusOverdue || i.Status == StatusPartial) && i.Outstanding().GreaterThan(decimal.Zero) {
			return true
		}
	}
	return false
}
