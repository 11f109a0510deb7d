package loan

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row, serializing concurrent
	// writers on the same loan.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	// ListOpenIDs returns public IDs of loans still subject to overdue
	// recomputation (Active and Defaulted), for the nightly sweep.
	ListOpenIDs(ctx context.Context) ([]string, error)

	CreateDisbursement(ctx context.Context, d *Disbursement) error
	ListDisbursements(ctx context.Context, loanNumericID uint64) ([]Disbursement, error)
	SumDisbursed(ctx context.Context, loanNumericID uint64) (decimal.Decimal, error)

	CreateCollateral(ctx context.Context, c *Collateral) error
	CreateGuarantor(ctx context.Context, g *Guarantor) error

	// Portfolio rollups.
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, s Status) (int64, error)
	SumOutstandingByStatus(ctx context.Context, statuses ...Status) (decimal.Decimal, error)
	SumDisbursedAll(ctx context.Context) (decimal.Decimal, error)
	SumTotalPaid(ctx context.Context) (decimal.Decimal, error)
}
