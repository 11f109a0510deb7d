package npa

import (
	"context"
	"errors"
	"log"
	"time"

	"credit-risk-ledger/internal/domain/loan"
	npaDomain "credit-risk-ledger/internal/domain/npa"
	"credit-risk-ledger/internal/domain/repayment"
	"credit-risk-ledger/internal/domain/uow"
	"credit-risk-ledger/pkg/id"
)

type Usecase struct {
	uow       uow.UnitOfWork
	provision npaDomain.ProvisionPolicy
}

func NewUsecase(tx uow.UnitOfWork, provision npaDomain.ProvisionPolicy) *Usecase {
	return &Usecase{uow: tx, provision: provision}
}

// Apply derives the loan's NPA category from the ledger and reconciles the
// tracking record inside the caller's transaction. First entry into a
// non-Standard category creates the record; later changes update the single
// open record in place. Reaching Loss defaults the loan.
func Apply(ctx context.Context, r uow.Repos, l *loan.Loan, installments []*repayment.Installment, asOf time.Time, provision npaDomain.ProvisionPolicy) (npaDomain.Category, error) {
	worst := repayment.WorstDaysOverdue(installments)
	category := npaDomain.Classify(worst)

	rec, err := r.NPAs.GetOpenByLoan(ctx, l.ID)
	switch {
	case errors.Is(err, npaDomain.ErrNotFound):
		rec = nil
	case err != nil:
		return category, err
	}

	if category == npaDomain.CategoryStandard {
		// Back under the threshold (or never over it). The open record,
		// if any, stays until an explicit resolution.
		if rec != nil && rec.DaysOverdue != worst {
			rec.DaysOverdue = worst
			if err := r.NPAs.Save(ctx, rec); err != nil {
				return category, err
			}
		}
		return category, nil
	}

	if rec == nil {
		rec = &npaDomain.Record{
			NpaID:             id.NewID32(),
			LoanID:            l.ID,
			NpaDate:           asOf,
			DaysOverdue:       worst,
			OutstandingAmount: l.OutstandingAmount,
			Category:          category,
			ProvisionAmount:   provision.Provision(l.OutstandingAmount, category),
			Resolution:        npaDomain.ResolutionOpen,
		}
		if err := r.NPAs.Create(ctx, rec); err != nil {
			return category, err
		}
		log.Printf("npa: loan %s entered %s at %d days overdue", l.LoanID, category, worst)
	} else {
		rec.DaysOverdue = worst
		rec.OutstandingAmount = l.OutstandingAmount
		rec.Category = category
		rec.ProvisionAmount = provision.Provision(l.OutstandingAmount, category)
		if err := r.NPAs.Save(ctx, rec); err != nil {
			return category, err
		}
	}

	if category == npaDomain.CategoryLoss && l.Status == loan.StatusActive {
		if err := l.TransitionTo(loan.StatusDefaulted); err != nil {
			return category, err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return category, err
		}
		log.Printf("npa: loan %s marked defaulted (Loss)", l.LoanID)
	}
	return category, nil
}

// Classify runs the derivation as a standalone loan-scoped transaction.
func (u *Usecase) Classify(ctx context.Context, loanID string, asOf time.Time) (npaDomain.Category, error) {
	var category npaDomain.Category
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		installments, err := r.Repayments.ListByLoan(ctx, l.ID)
		if err != nil {
			return err
		}
		category, err = Apply(ctx, r, l, installments, asOf, u.provision)
		return err
	})
	return category, err
}

// Resolve closes an open record once a full catch-up payment has brought the
// loan's overdue days back to zero.
func (u *Usecase) Resolve(ctx context.Context, npaID string) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		rec, err := r.NPAs.GetByNpaID(ctx, npaID)
		if err != nil {
			return err
		}
		if rec.Resolution != npaDomain.ResolutionOpen {
			return npaDomain.ErrNotOpen
		}
		l, err := r.Loans.GetByID(ctx, rec.LoanID)
		if err != nil {
			return err
		}
		installments, err := r.Repayments.ListByLoan(ctx, l.ID)
		if err != nil {
			return err
		}
		if repayment.WorstDaysOverdue(installments) > 0 {
			return npaDomain.ErrStillOverdue
		}
		rec.Resolution = npaDomain.ResolutionResolved
		return r.NPAs.Save(ctx, rec)
	})
}
