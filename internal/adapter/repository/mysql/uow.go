package mysql

import (
	"context"
	"strings"
	"time"

	"credit-risk-ledger/internal/domain/loan"
	"credit-risk-ledger/internal/domain/uow"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/gorm"
)

const (
	defaultTxTimeout  = 5 * time.Second
	defaultMaxRetries = 3
)

// GormUoW binds all repositories to one transaction per invocation. Writes
// are short, so conflicts (deadlock, lock wait timeout) retry with backoff a
// bounded number of times before surfacing uow.ErrConflict.
type GormUoW struct {
	db         *gorm.DB
	txTimeout  time.Duration
	maxRetries uint64
}

func NewGormUoW(db *gorm.DB) *GormUoW {
	return &GormUoW{db: db, txTimeout: defaultTxTimeout, maxRetries: defaultMaxRetries}
}

func (u *GormUoW) WithTxTimeout(d time.Duration) *GormUoW { u.txTimeout = d; return u }
func (u *GormUoW) WithMaxRetries(n uint64) *GormUoW       { u.maxRetries = n; return u }

func repos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Customers:    &CustomerRepository{db: tx},
		Applications: &ApplicationRepository{db: tx},
		Loans:        &LoanRepository{db: tx},
		Repayments:   &RepaymentRepository{db: tx},
		NPAs:         &NpaRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.run(ctx, func(txCtx context.Context) error {
		return u.db.WithContext(txCtx).Transaction(func(tx *gorm.DB) error {
			return fn(repos(tx))
		})
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.run(ctx, func(txCtx context.Context) error {
		return u.db.WithContext(txCtx).Transaction(func(tx *gorm.DB) error {
			r := repos(tx)
			l, err := r.Loans.GetByLoanIDForUpdate(txCtx, loanID)
			if err != nil {
				return err
			}
			return fn(r, l)
		})
	})
}

// run bounds each attempt with the tx timeout and retries only on conflicts.
func (u *GormUoW) run(ctx context.Context, attempt func(context.Context) error) error {
	op := func() error {
		txCtx, cancel := context.WithTimeout(ctx, u.txTimeout)
		defer cancel()
		if err := attempt(txCtx); err != nil {
			if isConflict(err) {
				return err // retryable
			}
			return backoff.Permanent(err)
		}
		return nil
	}

	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), u.maxRetries)
	err := backoff.Retry(op, backoff.WithContext(bo, ctx))
	if err != nil && isConflict(err) {
		return uow.ErrConflict
	}
	return err
}

// isConflict matches MySQL deadlock (1213) and lock wait timeout (1205).
func isConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Deadlock found") ||
		strings.Contains(msg, "Lock wait timeout") ||
		strings.Contains(msg, "Error 1213") ||
		strings.Contains(msg, "Error 1205")
}
