package repaymentmock

import (
	"context"
	"time"

	domain "credit-risk-ledger/internal/domain/repayment"

	"github.com/shopspring/decimal"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateBatchFn func(ctx context.Context, installments []*domain.Installment) error
	SaveFn        func(ctx context.Context, i *domain.Installment) error
	ListByLoanFn  func(ctx context.Context, loanNumericID uint64) ([]*domain.Installment, error)

	StatusDistributionFn    func(ctx context.Context) (map[domain.PaymentStatus]int64, error)
	CountDueBeforeFn        func(ctx context.Context, asOf time.Time) (int64, error)
	CountPaidOnTimeBeforeFn func(ctx context.Context, asOf time.Time) (int64, error)
	SumEMIDueFn             func(ctx context.Context) (decimal.Decimal, error)
	SumCollectedFn          func(ctx context.Context) (decimal.Decimal, error)
	SumPenaltiesFn          func(ctx context.Context) (decimal.Decimal, error)
	AvgDaysOverdueFn        func(ctx context.Context) (float64, error)
}

func (m *Repo) CreateBatch(ctx context.Context, installments []*domain.Installment) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, installments)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, i *domain.Installment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, i)
	}
	return nil
}

func (m *Repo) ListByLoan(ctx context.Context, loanNumericID uint64) ([]*domain.Installment, error) {
	if m.ListByLoanFn != nil {
		return m.ListByLoanFn(ctx, loanNumericID)
	}
	return nil, nil
}

func (m *Repo) StatusDistribution(ctx context.Context) (map[domain.PaymentStatus]int64, error) {
	if m.StatusDistributionFn != nil {
		return m.StatusDistributionFn(ctx)
	}
	return map[domain.PaymentStatus]int64{}, nil
}

func (m *Repo) CountDueBefore(ctx context.Context, asOf time.Time) (int64, error) {
	if m.CountDueBeforeFn != nil {
		return m.CountDueBeforeFn(ctx, asOf)
	}
	return 0, nil
}

func (m *Repo) CountPaidOnTimeBefore(ctx context.Context, asOf time.Time) (int64, error) {
	if m.CountPaidOnTimeBeforeFn != nil {
		return m.CountPaidOnTimeBeforeFn(ctx, asOf)
	}
	return 0, nil
}

func (m *Repo) SumEMIDue(ctx context.Context) (decimal.Decimal, error) {
	if m.SumEMIDueFn != nil {
		return m.SumEMIDueFn(ctx)
	}
	return decimal.Zero, nil
}

func (m *Repo) SumCollected(ctx context.Context) (decimal.Decimal, error) {
	if m.SumCollectedFn != nil {
		return m.SumCollectedFn(ctx)
	}
	return decimal.Zero, nil
}

func (m *Repo) SumPenalties(ctx context.Context) (decimal.Decimal, error) {
	if m.SumPenaltiesFn != nil {
		return m.SumPenaltiesFn(ctx)
	}
	return decimal.Zero, nil
}

func (m *Repo) AvgDaysOverdue(ctx context.Context) (float64, error) {
	if m.AvgDaysOverdueFn != nil {
		return m.AvgDaysOverdueFn(ctx)
	}
	return 0, nil
}
