package npa

import (
	"context"

	"github.com/shopspring/decimal"
)

// CategoryStats is a per-category rollup for portfolio analysis.
type CategoryStats struct {
	Count       int64
	Outstanding decimal.Decimal
	Provision   decimal.Decimal
}

type Repository interface {
	Create(ctx context.Context, r *Record) error
	Save(ctx context.Context, r *Record) error
	GetByNpaID(ctx context.Context, npaID string) (*Record, error)
	// GetOpenByLoan returns the loan's single open record, or ErrNotFound.
	GetOpenByLoan(ctx context.Context, loanNumericID uint64) (*Record, error)

	// OpenExposure sums outstanding amounts of loans with an open record
	// (NPA-ratio numerator).
	OpenExposure(ctx context.Context) (decimal.Decimal, error)
	CountOpen(ctx context.Context) (int64, error)
	CategoryBreakdown(ctx context.Context) (map[Category]CategoryStats, error)
}
