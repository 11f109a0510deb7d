package loan

import (
	"context"
	"errors"
	"testing"
	"time"

	loanDomain "credit-risk-ledger/internal/domain/loan"
	npaDomain "credit-risk-ledger/internal/domain/npa"
	repaymentDomain "credit-risk-ledger/internal/domain/repayment"
	"credit-risk-ledger/internal/domain/uow"
	"credit-risk-ledger/internal/testutil/loanmock"
	"credit-risk-ledger/internal/testutil/npamock"
	"credit-risk-ledger/internal/testutil/repaymentmock"
	"credit-risk-ledger/internal/testutil/uowmock"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func activeLoan() *loanDomain.Loan {
	return &loanDomain.Loan{
		ID:                9,
		LoanID:            "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee",
		LoanAmount:        dec("5000"),
		DisbursedAmount:   decimal.Zero,
		Status:            loanDomain.StatusActive,
		OutstandingAmount: dec("5000"),
		TotalPaid:         decimal.Zero,
	}
}

func lockingRepo(l *loanDomain.Loan) *loanmock.Repo {
	return &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
			if loanID != l.LoanID {
				return nil, loanDomain.ErrNotFound
			}
			return l, nil
		},
		GetByLoanIDForUpdateFn: func(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
			if loanID != l.LoanID {
				return nil, loanDomain.ErrNotFound
			}
			return l, nil
		},
	}
}

func TestDisburse_TranchesAccumulate(t *testing.T) {
	l := activeLoan()
	loans := lockingRepo(l)
	disbursed := decimal.Zero
	loans.SumDisbursedFn = func(ctx context.Context, loanNumericID uint64) (decimal.Decimal, error) {
		return disbursed, nil
	}
	var tranches []*loanDomain.Disbursement
	loans.CreateDisbursementFn = func(ctx context.Context, d *loanDomain.Disbursement) error {
		tranches = append(tranches, d)
		disbursed = disbursed.Add(d.Amount)
		return nil
	}
	tx := uowmock.PassThrough(uow.Repos{Loans: loans})
	uc := NewUsecase(loans, tx)

	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	dto, err := uc.Disburse(context.Background(), l.LoanID, dec("3000"), date, "NEFT")
	if err != nil {
		t.Fatalf("first tranche: %v", err)
	}
	if !dto.TotalDisbursed.Equal(dec("3000")) || !l.DisbursedAmount.Equal(dec("3000")) {
		t.Fatalf("total disbursed = %s / %s, want 3000", dto.TotalDisbursed, l.DisbursedAmount)
	}
	if dto.ReferenceNumber == "" {
		t.Fatal("missing reference number")
	}

	if _, err := uc.Disburse(context.Background(), l.LoanID, dec("2000"), date, "NEFT"); err != nil {
		t.Fatalf("second tranche: %v", err)
	}
	if !l.DisbursedAmount.Equal(dec("5000")) {
		t.Fatalf("disbursed = %s, want 5000", l.DisbursedAmount)
	}
	if len(tranches) != 2 {
		t.Fatalf("tranches = %d, want 2", len(tranches))
	}
}

func TestDisburse_OverDisbursement(t *testing.T) {
	l := activeLoan()
	loans := lockingRepo(l)
	loans.SumDisbursedFn = func(ctx context.Context, loanNumericID uint64) (decimal.Decimal, error) {
		return dec("4000"), nil
	}
	tx := uowmock.PassThrough(uow.Repos{Loans: loans})
	uc := NewUsecase(loans, tx)

	_, err := uc.Disburse(context.Background(), l.LoanID, dec("1001"), time.Now(), "NEFT")
	if !errors.Is(err, loanDomain.ErrOverDisbursement) {
		t.Fatalf("want ErrOverDisbursement, got %v", err)
	}
}

func TestDisburse_InvalidAmountAndState(t *testing.T) {
	l := activeLoan()
	loans := lockingRepo(l)
	tx := uowmock.PassThrough(uow.Repos{Loans: loans})
	uc := NewUsecase(loans, tx)

	if _, err := uc.Disburse(context.Background(), l.LoanID, decimal.Zero, time.Now(), "NEFT"); !errors.Is(err, loanDomain.ErrInvalidAmount) {
		t.Fatalf("zero amount: want ErrInvalidAmount, got %v", err)
	}

	l.Status = loanDomain.StatusDefaulted
	if _, err := uc.Disburse(context.Background(), l.LoanID, dec("100"), time.Now(), "NEFT"); !errors.Is(err, loanDomain.ErrInvalidTransition) {
		t.Fatalf("defaulted loan: want ErrInvalidTransition, got %v", err)
	}
}

func closeFixture(l *loanDomain.Loan, installments []*repaymentDomain.Installment) *Usecase {
	loans := lockingRepo(l)
	repayments := &repaymentmock.Repo{
		ListByLoanFn: func(ctx context.Context, loanNumericID uint64) ([]*repaymentDomain.Installment, error) {
			return installments, nil
		},
	}
	tx := uowmock.PassThrough(uow.Repos{Loans: loans, Repayments: repayments, NPAs: &npamock.Repo{}})
	return NewUsecase(loans, tx)
}

func TestClose_BlockedWhileBalanceRemains(t *testing.T) {
	l := activeLoan()
	l.LoanAmount = dec("1000")
	installments := []*repaymentDomain.Installment{{
		Period:             1,
		DueDate:            time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EMIAmount:          dec("1100"),
		PrincipalComponent: dec("1000"),
		InterestComponent:  dec("100"),
		AmountPaid:         dec("600"),
		Status:             repaymentDomain.StatusPartial,
	}}
	uc := closeFixture(l, installments)

	if err := uc.Close(context.Background(), l.LoanID); !errors.Is(err, loanDomain.ErrOutstandingBalance) {
		t.Fatalf("want ErrOutstandingBalance, got %v", err)
	}
	if l.Status != loanDomain.StatusActive {
		t.Fatalf("status changed to %s on failed close", l.Status)
	}
}

func TestClose_FullyPaidLoan(t *testing.T) {
	l := activeLoan()
	l.LoanAmount = dec("1000")
	paidAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	installments := []*repaymentDomain.Installment{{
		Period:             1,
		DueDate:            paidAt,
		PaymentDate:        &paidAt,
		EMIAmount:          dec("1100"),
		PrincipalComponent: dec("1000"),
		InterestComponent:  dec("100"),
		AmountPaid:         dec("1100"),
		Status:             repaymentDomain.StatusPaid,
	}}
	uc := closeFixture(l, installments)

	if err := uc.Close(context.Background(), l.LoanID); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if l.Status != loanDomain.StatusClosed {
		t.Fatalf("status = %s, want Closed", l.Status)
	}
	if !l.OutstandingAmount.IsZero() {
		t.Fatalf("outstanding = %s, want 0", l.OutstandingAmount)
	}
}

func TestMarkDefaulted_Transitions(t *testing.T) {
	l := activeLoan()
	loans := lockingRepo(l)
	tx := uowmock.PassThrough(uow.Repos{Loans: loans})
	uc := NewUsecase(loans, tx)

	if err := uc.MarkDefaulted(context.Background(), l.LoanID); err != nil {
		t.Fatalf("MarkDefaulted: %v", err)
	}
	if l.Status != loanDomain.StatusDefaulted {
		t.Fatalf("status = %s, want Defaulted", l.Status)
	}

	// Defaulted is not re-enterable.
	if err := uc.MarkDefaulted(context.Background(), l.LoanID); !errors.Is(err, loanDomain.ErrInvalidTransition) {
		t.Fatalf("second default: want ErrInvalidTransition, got %v", err)
	}
}

func TestWriteOff_ClosesOpenNpaRecord(t *testing.T) {
	l := activeLoan()
	l.Status = loanDomain.StatusDefaulted
	loans := lockingRepo(l)
	rec := &npaDomain.Record{
		NpaID:      "ffffffffffffffffffffffffffffffff",
		LoanID:     l.ID,
		Category:   npaDomain.CategoryLoss,
		Resolution: npaDomain.ResolutionOpen,
	}
	var saved *npaDomain.Record
	npas := &npamock.Repo{
		GetOpenByLoanFn: func(ctx context.Context, loanNumericID uint64) (*npaDomain.Record, error) {
			return rec, nil
		},
		SaveFn: func(ctx context.Context, r *npaDomain.Record) error {
			saved = r
			return nil
		},
	}
	tx := uowmock.PassThrough(uow.Repos{Loans: loans, NPAs: npas})
	uc := NewUsecase(loans, tx)

	if err := uc.WriteOff(context.Background(), l.LoanID, "unrecoverable"); err != nil {
		t.Fatalf("WriteOff: %v", err)
	}
	if l.Status != loanDomain.StatusWrittenOff {
		t.Fatalf("status = %s, want Written-Off", l.Status)
	}
	if saved == nil || saved.Resolution != npaDomain.ResolutionWrittenOff {
		t.Fatalf("npa record not closed: %+v", saved)
	}
	if saved.Notes != "unrecoverable" {
		t.Fatalf("notes = %q", saved.Notes)
	}
}

func TestWriteOff_NoOpenRecord(t *testing.T) {
	l := activeLoan()
	loans := lockingRepo(l)
	tx := uowmock.PassThrough(uow.Repos{Loans: loans, NPAs: &npamock.Repo{}})
	uc := NewUsecase(loans, tx)

	if err := uc.WriteOff(context.Background(), l.LoanID, "fraud"); err != nil {
		t.Fatalf("WriteOff without npa record: %v", err)
	}
	if l.Status != loanDomain.StatusWrittenOff {
		t.Fatalf("status = %s, want Written-Off", l.Status)
	}
}

func TestWriteOff_ClosedLoanRejected(t *testing.T) {
	l := activeLoan()
	l.Status = loanDomain.StatusClosed
	loans := lockingRepo(l)
	tx := uowmock.PassThrough(uow.Repos{Loans: loans, NPAs: &npamock.Repo{}})
	uc := NewUsecase(loans, tx)

	if err := uc.WriteOff(context.Background(), l.LoanID, "x"); !errors.Is(err, loanDomain.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
}
