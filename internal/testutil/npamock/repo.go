package npamock

import (
	"context"

	domain "credit-risk-ledger/internal/domain/npa"

	"github.com/shopspring/decimal"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// The GetOpenByLoan default returns ErrNotFound, the common "no open
// record yet" starting state.
type Repo struct {
	CreateFn            func(ctx context.Context, r *domain.Record) error
	SaveFn              func(ctx context.Context, r *domain.Record) error
	GetByNpaIDFn        func(ctx context.Context, npaID string) (*domain.Record, error)
	GetOpenByLoanFn     func(ctx context.Context, loanNumericID uint64) (*domain.Record, error)
	OpenExposureFn      func(ctx context.Context) (decimal.Decimal, error)
	CountOpenFn         func(ctx context.Context) (int64, error)
	CategoryBreakdownFn func(ctx context.Context) (map[domain.Category]domain.CategoryStats, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Record) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, r *domain.Record) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByNpaID(ctx context.Context, npaID string) (*domain.Record, error) {
	if m.GetByNpaIDFn != nil {
		return m.GetByNpaIDFn(ctx, npaID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetOpenByLoan(ctx context.Context, loanNumericID uint64) (*domain.Record, error) {
	if m.GetOpenByLoanFn != nil {
		return m.GetOpenByLoanFn(ctx, loanNumericID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) OpenExposure(ctx context.Context) (decimal.Decimal, error) {
	if m.OpenExposureFn != nil {
		return m.OpenExposureFn(ctx)
	}
	return decimal.Zero, nil
}

func (m *Repo) CountOpen(ctx context.Context) (int64, error) {
	if m.CountOpenFn != nil {
		return m.CountOpenFn(ctx)
	}
	return 0, nil
}

func (m *Repo) CategoryBreakdown(ctx context.Context) (map[domain.Category]domain.CategoryStats, error) {
	if m.CategoryBreakdownFn != nil {
		return m.CategoryBreakdownFn(ctx)
	}
	return map[domain.Category]domain.CategoryStats{}, nil
}
