package repayment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Repository interface {
	CreateBatch(ctx context.Context, installments []*Installment) error
	Save(ctx context.Context, i *Installment) error
	// ListByLoan returns the loan's full ledger in due-date order
	// (earliest first), the allocation order for payments.
	ListByLoan(ctx context.Context, loanNumericID uint64) ([]*Installment, error)

	// Portfolio rollups.
	StatusDistribution(ctx context.Context) (map[PaymentStatus]int64, error)
	CountDueBefore(ctx context.Context, asOf time.Time) (int64, error)
	CountPaidOnTimeBefore(ctx context.Context, asOf time.Time) (int64, error)
	SumEMIDue(ctx context.Context) (decimal.Decimal, error)
	SumCollected(ctx context.Context) (decimal.Decimal, error)
	SumPenalties(ctx context.Context) (decimal.Decimal, error)
	AvgDaysOverdue(ctx context.Context) (float64, error)
}
