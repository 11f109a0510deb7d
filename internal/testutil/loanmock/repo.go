package loanmock

import (
	"context"

	domain "credit-risk-ledger/internal/domain/loan"

	"github.com/shopspring/decimal"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only methods you need are included; add more as tests require.
type Repo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	SaveFn                 func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn          func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByIDFn              func(ctx context.Context, id uint64) (*domain.Loan, error)
	ListOpenIDsFn          func(ctx context.Context) ([]string, error)

	CreateDisbursementFn func(ctx context.Context, d *domain.Disbursement) error
	ListDisbursementsFn  func(ctx context.Context, loanNumericID uint64) ([]domain.Disbursement, error)
	SumDisbursedFn       func(ctx context.Context, loanNumericID uint64) (decimal.Decimal, error)

	CreateCollateralFn func(ctx context.Context, c *domain.Collateral) error
	CreateGuarantorFn  func(ctx context.Context, g *domain.Guarantor) error

	CountFn                  func(ctx context.Context) (int64, error)
	CountByStatusFn          func(ctx context.Context, s domain.Status) (int64, error)
	SumOutstandingByStatusFn func(ctx context.Context, statuses ...domain.Status) (decimal.Decimal, error)
	SumDisbursedAllFn        func(ctx context.Context) (decimal.Decimal, error)
	SumTotalPaidFn           func(ctx context.Context) (decimal.Decimal, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) ListOpenIDs(ctx context.Context) ([]string, error) {
	if m.ListOpenIDsFn != nil {
		return m.ListOpenIDsFn(ctx)
	}
	return nil, nil
}

func (m *Repo) CreateDisbursement(ctx context.Context, d *domain.Disbursement) error {
	if m.CreateDisbursementFn != nil {
		return m.CreateDisbursementFn(ctx, d)
	}
	return nil
}

func (m *Repo) ListDisbursements(ctx context.Context, loanNumericID uint64) ([]domain.Disbursement, error) {
	if m.ListDisbursementsFn != nil {
		return m.ListDisbursementsFn(ctx, loanNumericID)
	}
	return nil, nil
}

func (m *Repo) SumDisbursed(ctx context.Context, loanNumericID uint64) (decimal.Decimal, error) {
	if m.SumDisbursedFn != nil {
		return m.SumDisbursedFn(ctx, loanNumericID)
	}
	return decimal.Zero, nil
}

func (m *Repo) CreateCollateral(ctx context.Context, c *domain.Collateral) error {
	if m.CreateCollateralFn != nil {
		return m.CreateCollateralFn(ctx, c)
	}
	return nil
}

func (m *Repo) CreateGuarantor(ctx context.Context, g *domain.Guarantor) error {
	if m.CreateGuarantorFn != nil {
		return m.CreateGuarantorFn(ctx, g)
	}
	return nil
}

func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, nil
}

func (m *Repo) CountByStatus(ctx context.Context, s domain.Status) (int64, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, s)
	}
	return 0, nil
}

func (m *Repo) SumOutstandingByStatus(ctx context.Context, statuses ...domain.Status) (decimal.Decimal, error) {
	if m.SumOutstandingByStatusFn != nil {
		return m.SumOutstandingByStatusFn(ctx, statuses...)
	}
	return decimal.Zero, nil
}

func (m *Repo) SumDisbursedAll(ctx context.Context) (decimal.Decimal, error) {
	if m.SumDisbursedAllFn != nil {
		return m.SumDisbursedAllFn(ctx)
	}
	return decimal.Zero, nil
}

func (m *Repo) SumTotalPaid(ctx context.Context) (decimal.Decimal, error) {
	if m.SumTotalPaidFn != nil {
		return m.SumTotalPaidFn(ctx)
	}
	return decimal.Zero, nil
}
