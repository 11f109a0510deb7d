package origination

import (
	"context"
	"time"

	"credit-risk-ledger/internal/domain/application"
	"credit-risk-ledger/internal/domain/customer"
	"credit-risk-ledger/internal/domain/loan"
	"credit-risk-ledger/internal/domain/repayment"
	"credit-risk-ledger/internal/domain/uow"
	"credit-risk-ledger/pkg/id"
	"credit-risk-ledger/pkg/money"

	"github.com/shopspring/decimal"
)

var (
	minCreditScore = decimal.NewFromInt(300)
	maxCreditScore = decimal.NewFromInt(850)
)

type Usecase struct {
	customers customer.Repository
	apps      application.Repository
	uow       uow.UnitOfWork
}

func NewUsecase(customers customer.Repository, apps application.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{customers: customers, apps: apps, uow: tx}
}

// Submit records a scored application in Pending state. Out-of-range inputs
// are rejected before anything is persisted.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*ApplicationDTO, error) {
	if in.LoanAmount.LessThanOrEqual(decimal.Zero) ||
		in.TenureMonths <= 0 ||
		in.InterestRate.IsNegative() {
		return nil, application.ErrInvalidInput
	}
	if in.RiskProbability.IsNegative() || in.RiskProbability.GreaterThan(decimal.NewFromInt(1)) {
		return nil, application.ErrInvalidInput
	}
	if in.CreditScore.LessThan(minCreditScore) || in.CreditScore.GreaterThan(maxCreditScore) {
		return nil, application.ErrInvalidInput
	}

	c, err := u.customers.GetByCustomerID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}

	a := &application.LoanApplication{
		ApplicationID:   id.NewID32(),
		CustomerID:      c.ID,
		LoanAmount:      in.LoanAmount,
		TenureMonths:    in.TenureMonths,
		InterestRate:    in.InterestRate,
		LoanPurpose:     in.LoanPurpose,
		Status:          application.StatusPending,
		CreditScore:     in.CreditScore,
		RiskProbability: in.RiskProbability,
		RiskLevel:       in.RiskLevel,
		Recommendation:  in.Recommendation,
	}
	if err := u.apps.Create(ctx, a); err != nil {
		return nil, err
	}
	return toApplicationDTO(a, in.CustomerID), nil
}

// Approve flips a Pending application, creates the funded loan and its full
// repayment schedule in one transaction. An application spawns exactly one
// loan; any non-Pending state fails.
func (u *Usecase) Approve(ctx context.Context, applicationID string, startDate time.Time) (*LoanDTO, error) {
	var dto *LoanDTO

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Applications.GetByApplicationIDForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}
		if a.Status != application.StatusPending {
			return application.ErrNotPending
		}

		emi, err := money.ComputeEMI(a.LoanAmount, a.InterestRate, a.TenureMonths)
		if err != nil {
			return err
		}
		schedule, err := money.BuildSchedule(a.LoanAmount, a.InterestRate, a.TenureMonths, startDate)
		if err != nil {
			return err
		}

		l := &loan.Loan{
			LoanID:            id.NewID32(),
			ApplicationID:     a.ID,
			CustomerID:        a.CustomerID,
			LoanAmount:        a.LoanAmount,
			DisbursedAmount:   decimal.Zero,
			InterestRate:      a.InterestRate,
			TenureMonths:      a.TenureMonths,
			EMIAmount:         emi,
			StartDate:         startDate,
			EndDate:           schedule[len(schedule)-1].DueDate,
			Status:            loan.StatusActive,
			OutstandingAmount: a.LoanAmount,
			TotalPaid:         decimal.Zero,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}

		installments := make([]*repayment.Installment, 0, len(schedule))
		for _, e := range schedule {
			installments = append(installments, &repayment.Installment{
				LoanID:             l.ID,
				Period:             e.Period,
				DueDate:            e.DueDate,
				EMIAmount:          e.EMI,
				PrincipalComponent: e.Principal,
				InterestComponent:  e.Interest,
				AmountPaid:         decimal.Zero,
				Status:             repayment.StatusPending,
				PenaltyAmount:      decimal.Zero,
			})
		}
		if err := r.Repayments.CreateBatch(ctx, installments); err != nil {
			return err
		}

		a.Status = application.StatusApproved
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}

		dto = toLoanDTO(l, applicationID, len(installments))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Reject is terminal; rejected applications never spawn a loan.
func (u *Usecase) Reject(ctx context.Context, applicationID string) (*ApplicationDTO, error) {
	var dto *ApplicationDTO

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Applications.GetByApplicationIDForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}
		if a.Status != application.StatusPending {
			return application.ErrNotPending
		}
		a.Status = application.StatusRejected
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		dto = toApplicationDTO(a, "")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, applicationID string) (*ApplicationDTO, error) {
	a, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	return toApplicationDTO(a, ""), nil
}

func toApplicationDTO(a *application.LoanApplication, customerID string) *ApplicationDTO {
	return &ApplicationDTO{
		ApplicationID:   a.ApplicationID,
		CustomerID:      customerID,
		LoanAmount:      a.LoanAmount,
		TenureMonths:    a.TenureMonths,
		InterestRate:    a.InterestRate,
		LoanPurpose:     a.LoanPurpose,
		Status:          string(a.Status),
		CreditScore:     a.CreditScore,
		RiskProbability: a.RiskProbability,
		RiskLevel:       a.RiskLevel,
		CreatedAt:       a.CreatedAt,
	}
}

func toLoanDTO(l *loan.Loan, applicationID string, installments int) *LoanDTO {
	return &LoanDTO{
		LoanID:            l.LoanID,
		ApplicationID:     applicationID,
		LoanAmount:        l.LoanAmount,
		InterestRate:      l.InterestRate,
		TenureMonths:      l.TenureMonths,
		EMIAmount:         l.EMIAmount,
		StartDate:         l.StartDate,
		EndDate:           l.EndDate,
		Status:            string(l.Status),
		OutstandingAmount: l.OutstandingAmount,
		TotalPaid:         l.TotalPaid,
		Installments:      installments,
	}
}
