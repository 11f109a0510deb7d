package loan

import (
	"context"
	"errors"
	"log"
	"time"

	loanDomain "credit-risk-ledger/internal/domain/loan"
	npaDomain "credit-risk-ledger/internal/domain/npa"
	repaymentDomain "credit-risk-ledger/internal/domain/repayment"
	"credit-risk-ledger/internal/domain/uow"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Usecase struct {
	repo loanDomain.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(repo loanDomain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: repo, uow: tx}
}

// Disburse pays out one tranche. Cumulative tranches never exceed the
// principal.
func (u *Usecase) Disburse(ctx context.Context, loanID string, amount decimal.Decimal, date time.Time, mode string) (*DisbursementDTO, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, loanDomain.ErrInvalidAmount
	}

	var dto *DisbursementDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.Status != loanDomain.StatusActive {
			return loanDomain.ErrInvalidTransition
		}
		disbursed, err := r.Loans.SumDisbursed(ctx, l.ID)
		if err != nil {
			return err
		}
		if disbursed.Add(amount).GreaterThan(l.LoanAmount) {
			return loanDomain.ErrOverDisbursement
		}

		d := &loanDomain.Disbursement{
			LoanID:           l.ID,
			DisbursementDate: date,
			Amount:           amount,
			PaymentMode:      mode,
			ReferenceNumber:  uuid.NewString(),
		}
		if err := r.Loans.CreateDisbursement(ctx, d); err != nil {
			return err
		}

		l.DisbursedAmount = disbursed.Add(amount)
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		dto = &DisbursementDTO{
			LoanID:           l.LoanID,
			Amount:           amount,
			DisbursementDate: date,
			PaymentMode:      mode,
			ReferenceNumber:  d.ReferenceNumber,
			TotalDisbursed:   l.DisbursedAmount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Close settles the loan. Fails while any balance or blocking installment
// remains.
func (u *Usecase) Close(ctx context.Context, loanID string) error {
	return u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		installments, err := r.Repayments.ListByLoan(ctx, l.ID)
		if err != nil {
			return err
		}
		repaymentDomain.RecomputeRollups(l, installments)
		if !l.OutstandingAmount.IsZero() || repaymentDomain.HasBlockingInstallment(installments) {
			return loanDomain.ErrOutstandingBalance
		}
		if err := l.TransitionTo(loanDomain.StatusClosed); err != nil {
			return err
		}
		return r.Loans.Save(ctx, l)
	})
}

// MarkDefaulted is the manual path into Defaulted; the NPA classifier takes
// the same transition automatically at category Loss. Irreversible.
func (u *Usecase) MarkDefaulted(ctx context.Context, loanID string) error {
	return u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if err := l.TransitionTo(loanDomain.StatusDefaulted); err != nil {
			return err
		}
		log.Printf("loan %s marked defaulted", l.LoanID)
		return r.Loans.Save(ctx, l)
	})
}

// WriteOff is irreversible and closes any open NPA record as Written-Off.
func (u *Usecase) WriteOff(ctx context.Context, loanID, reason string) error {
	return u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if err := l.TransitionTo(loanDomain.StatusWrittenOff); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		rec, err := r.NPAs.GetOpenByLoan(ctx, l.ID)
		switch {
		case errors.Is(err, npaDomain.ErrNotFound):
			// nothing to close
		case err != nil:
			return err
		default:
			rec.Resolution = npaDomain.ResolutionWrittenOff
			rec.Notes = reason
			if err := r.NPAs.Save(ctx, rec); err != nil {
				return err
			}
		}
		log.Printf("loan %s written off: %s", l.LoanID, reason)
		return nil
	})
}

// AttachCollateral and AttachGuarantor record static supporting documents.
func (u *Usecase) AttachCollateral(ctx context.Context, loanID string, c *loanDomain.Collateral) error {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		return err
	}
	c.LoanID = l.ID
	return u.repo.CreateCollateral(ctx, c)
}

func (u *Usecase) AttachGuarantor(ctx context.Context, loanID string, g *loanDomain.Guarantor) error {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		return err
	}
	g.LoanID = l.ID
	return u.repo.CreateGuarantor(ctx, g)
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return &LoanDTO{
		LoanID:            l.LoanID,
		LoanAmount:        l.LoanAmount,
		DisbursedAmount:   l.DisbursedAmount,
		InterestRate:      l.InterestRate,
		TenureMonths:      l.TenureMonths,
		EMIAmount:         l.EMIAmount,
		StartDate:         l.StartDate,
		EndDate:           l.EndDate,
		Status:            string(l.Status),
		OutstandingAmount: l.OutstandingAmount,
		TotalPaid:         l.TotalPaid,
	}, nil
}
