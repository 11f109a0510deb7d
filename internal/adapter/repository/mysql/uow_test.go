package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	loanDomain "credit-risk-ledger/internal/domain/loan"
	repaymentDomain "credit-risk-ledger/internal/domain/repayment"
	"credit-risk-ledger/internal/domain/uow"
)

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loans := NewLoanRepository(db)

	var loanID string
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		l := makeLoan(1)
		loanID = l.LoanID
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		return r.Repayments.CreateBatch(ctx, []*repaymentDomain.Installment{
			makeInstallment(l.ID, 1, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)),
		})
	})
	if err != nil {
		t.Fatalf("WithinTx commit: %v", err)
	}

	if _, err := loans.GetByLoanID(ctx, loanID); err != nil {
		t.Fatalf("loan not visible after commit: %v", err)
	}
}

func TestGormUoW_WithinTx_RollbackOnError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loans := NewLoanRepository(db)

	sentinel := errors.New("abort")
	var loanID string
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		l := makeLoan(1)
		loanID = l.LoanID
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("want sentinel error back, got %v", err)
	}

	if _, err := loans.GetByLoanID(ctx, loanID); !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("loan visible after rollback: %v", err)
	}
}

func TestGormUoW_WithinLoanTx_LoadsLockedLoan(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loans := NewLoanRepository(db)

	l := makeLoan(1)
	if err := loans.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := guow.WithinLoanTx(ctx, l.LoanID, func(r uow.Repos, locked *loanDomain.Loan) error {
		if locked.LoanID != l.LoanID {
			t.Fatalf("wrong loan loaded: %s", locked.LoanID)
		}
		locked.Status = loanDomain.StatusDefaulted
		return r.Loans.Save(ctx, locked)
	})
	if err != nil {
		t.Fatalf("WithinLoanTx: %v", err)
	}

	got, err := loans.GetByLoanID(ctx, l.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.Status != loanDomain.StatusDefaulted {
		t.Fatalf("status = %s, want Defaulted", got.Status)
	}
}

func TestGormUoW_WithinLoanTx_NotFound(t *testing.T) {
	db := openTestDB(t)
	guow := NewGormUoW(db)

	err := guow.WithinLoanTx(context.Background(), "22222222222222222222222222222222", func(r uow.Repos, l *loanDomain.Loan) error {
		t.Fatal("body must not run for a missing loan")
		return nil
	})
	if !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestIsConflict(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("Error 1213: Deadlock found when trying to get lock"), true},
		{errors.New("Error 1205: Lock wait timeout exceeded"), true},
		{errors.New("record not found"), false},
	}
	for _, tc := range cases {
		if got := isConflict(tc.err); got != tc.want {
			t.Errorf("isConflict(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
