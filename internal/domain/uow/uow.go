package uow

import (
	"context"
	"errors"

	"credit-risk-ledger/internal/domain/application"
	"credit-risk-ledger/internal/domain/customer"
	"credit-risk-ledger/internal/domain/loan"
	"credit-risk-ledger/internal/domain/npa"
	"credit-risk-ledger/internal/domain/repayment"
)

// ErrConflict surfaces a lost lock or deadlock after retries are exhausted.
// Callers may retry the whole operation.
var ErrConflict = errors.New("concurrent update conflict")

// Repos bundles every repository bound to one transaction.
type Repos struct {
	Customers    customer.Repository
	Applications application.Repository
	Loans        loan.Repository
	Repayments   repayment.Repository
	NPAs         npa.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn inside a single transaction.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row up front so concurrent writers on
	// the same loan serialize; different loans proceed in parallel.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
