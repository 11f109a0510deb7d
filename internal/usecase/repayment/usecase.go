package repayment

import (
	"context"
	"log"
	"time"

	"credit-risk-ledger/internal/domain/loan"
	npaDomain "credit-risk-ledger/internal/domain/npa"
	repaymentDomain "credit-risk-ledger/internal/domain/repayment"
	"credit-risk-ledger/internal/domain/uow"
	npaUC "credit-risk-ledger/internal/usecase/npa"
	"credit-risk-ledger/pkg/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Usecase struct {
	uow       uow.UnitOfWork
	loans     loan.Repository
	penalty   repaymentDomain.PenaltyPolicy
	provision npaDomain.ProvisionPolicy
}

func NewUsecase(tx uow.UnitOfWork, loans loan.Repository, penalty repaymentDomain.PenaltyPolicy, provision npaDomain.ProvisionPolicy) *Usecase {
	return &Usecase{uow: tx, loans: loans, penalty: penalty, provision: provision}
}

// ApplyPayment applies one payment event to the oldest open installments in
// due-date order. Funds allocate penalty, then interest, then principal
// inside each installment; any remainder rolls forward. The loan's rollups
// are re-derived from the ledger in the same transaction.
func (u *Usecase) ApplyPayment(ctx context.Context, loanID string, amount decimal.Decimal, paymentDate time.Time) (*PaymentResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, repaymentDomain.ErrNonPositiveAmount
	}

	var result *PaymentResult
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if !l.Status.AcceptsPayments() {
			return loan.ErrClosed
		}

		installments, err := r.Repayments.ListByLoan(ctx, l.ID)
		if err != nil {
			return err
		}

		remaining := amount
		var touched []int
		for _, inst := range installments {
			if inst.Status == repaymentDomain.StatusPaid {
				continue
			}
			if remaining.LessThanOrEqual(decimal.Zero) {
				break
			}
			before := inst.AmountPaid
			remaining = inst.Apply(remaining, paymentDate)
			if !inst.AmountPaid.Equal(before) {
				if err := r.Repayments.Save(ctx, inst); err != nil {
					return err
				}
				touched = append(touched, inst.Period)
			}
		}

		repaymentDomain.RecomputeRollups(l, installments)
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		category, err := npaUC.Apply(ctx, r, l, installments, paymentDate, u.provision)
		if err != nil {
			return err
		}

		result = &PaymentResult{
			LoanID:              l.LoanID,
			ReferenceNumber:     uuid.NewString(),
			AmountApplied:       amount.Sub(remaining),
			Unapplied:           remaining,
			InstallmentsTouched: touched,
			TotalPaid:           l.TotalPaid,
			OutstandingAmount:   l.OutstandingAmount,
			Category:            category,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecomputeOverdueStatus marks past-due unsettled installments Overdue,
// refreshes days_overdue, and accrues the configured daily penalty on the
// unpaid EMI balance. Accrual is keyed by penalty_accrued_through, so a
// second run with the same asOf changes nothing. Ends with NPA
// classification, all in one loan-scoped transaction.
func (u *Usecase) RecomputeOverdueStatus(ctx context.Context, loanID string, asOf time.Time) (*OverdueResult, error) {
	var result *OverdueResult
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if !l.Status.AcceptsPayments() {
			// Closed/written-off history is immutable.
			result = &OverdueResult{LoanID: l.LoanID, OutstandingAmount: l.OutstandingAmount, Category: npaDomain.CategoryStandard}
			return nil
		}

		installments, err := r.Repayments.ListByLoan(ctx, l.ID)
		if err != nil {
			return err
		}

		accruedTotal := decimal.Zero
		overdueCount := 0
		for _, inst := range installments {
			if inst.Status == repaymentDomain.StatusPaid || !inst.DueDate.Before(asOf) {
				continue
			}
			days := money.DaysOverdue(inst.DueDate, asOf)
			if days == 0 {
				continue
			}
			overdueCount++

			changed := inst.Status != repaymentDomain.StatusOverdue || inst.DaysOverdue != days
			inst.Status = repaymentDomain.StatusOverdue
			inst.DaysOverdue = days

			from := inst.DueDate
			if inst.PenaltyAccruedThrough != nil {
				from = *inst.PenaltyAccruedThrough
			}
			if accrualDays := money.DaysOverdue(from, asOf); accrualDays > 0 {
				pen := u.penalty.Accrue(inst.EMIOutstanding(), accrualDays)
				if pen.GreaterThan(decimal.Zero) {
					inst.PenaltyAmount = inst.PenaltyAmount.Add(pen)
					accruedTotal = accruedTotal.Add(pen)
					changed = true
				}
				through := asOf
				inst.PenaltyAccruedThrough = &through
				changed = true
			}

			if changed {
				if err := r.Repayments.Save(ctx, inst); err != nil {
					return err
				}
			}
		}

		repaymentDomain.RecomputeRollups(l, installments)
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		category, err := npaUC.Apply(ctx, r, l, installments, asOf, u.provision)
		if err != nil {
			return err
		}

		result = &OverdueResult{
			LoanID:            l.LoanID,
			OverdueCount:      overdueCount,
			WorstDaysOverdue:  repaymentDomain.WorstDaysOverdue(installments),
			PenaltyAccrued:    accruedTotal,
			OutstandingAmount: l.OutstandingAmount,
			Category:          category,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SweepOverdue recomputes every open loan independently. One loan's failure
// is reported in its slot and the sweep moves on.
func (u *Usecase) SweepOverdue(ctx context.Context, asOf time.Time) ([]SweepResult, error) {
	ids, err := u.loans.ListOpenIDs(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, 0, len(ids))
	for _, loanID := range ids {
		res, err := u.RecomputeOverdueStatus(ctx, loanID, asOf)
		if err != nil {
			log.Printf("sweep: loan %s failed: %v", loanID, err)
			results = append(results, SweepResult{LoanID: loanID, Err: err.Error()})
			continue
		}
		results = append(results, SweepResult{LoanID: loanID, Result: res})
	}
	return results, nil
}

// Schedule returns the loan's ledger for inspection.
func (u *Usecase) Schedule(ctx context.Context, loanID string) ([]InstallmentDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	var out []InstallmentDTO
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		installments, err := r.Repayments.ListByLoan(ctx, l.ID)
		if err != nil {
			return err
		}
		out = make([]InstallmentDTO, 0, len(installments))
		for _, i := range installments {
			out = append(out, InstallmentDTO{
				Period:        i.Period,
				DueDate:       i.DueDate,
				EMIAmount:     i.EMIAmount,
				AmountPaid:    i.AmountPaid,
				Status:        string(i.Status),
				DaysOverdue:   i.DaysOverdue,
				PenaltyAmount: i.PenaltyAmount,
			})
		}
		return nil
	})
	return out, err
}
