package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	loanDomain "credit-risk-ledger/internal/domain/loan"
	repaymentDomain "credit-risk-ledger/internal/domain/repayment"
	"credit-risk-ledger/internal/domain/uow"
	"credit-risk-ledger/internal/testutil/loanmock"
	"credit-risk-ledger/internal/testutil/repaymentmock"
	"credit-risk-ledger/internal/testutil/uowmock"
	ucLoan "credit-risk-ledger/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func testLoanID() string { return strings.Repeat("f", 32) }

func closableLedger(settled bool) []*repaymentDomain.Installment {
	paid := decimal.NewFromInt(1100)
	status := repaymentDomain.StatusPaid
	if !settled {
		paid = decimal.NewFromInt(500)
		status = repaymentDomain.StatusPartial
	}
	return []*repaymentDomain.Installment{{
		LoanID:             9,
		Period:             1,
		EMIAmount:          decimal.NewFromInt(1100),
		PrincipalComponent: decimal.NewFromInt(1000),
		InterestComponent:  decimal.NewFromInt(100),
		AmountPaid:         paid,
		Status:             status,
	}}
}

func closeFixture(settled bool) (*ucLoan.Usecase, *loanDomain.Loan) {
	l := &loanDomain.Loan{
		ID:         9,
		LoanID:     testLoanID(),
		LoanAmount: decimal.NewFromInt(1000),
		Status:     loanDomain.StatusActive,
	}
	loans := &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
			return l, nil
		},
	}
	reps := &repaymentmock.Repo{
		ListByLoanFn: func(ctx context.Context, loanNumericID uint64) ([]*repaymentDomain.Installment, error) {
			return closableLedger(settled), nil
		},
	}
	tx := uowmock.PassThrough(uow.Repos{Loans: loans, Repayments: reps})
	return ucLoan.NewUsecase(loans, tx), l
}

func TestCloseLoan_Success(t *testing.T) {
	e := newEchoWithValidator()
	uc, l := closeFixture(true)
	h := NewLoanHandler(uc)

	req := httptest.NewRequest(stdhttp.MethodPost, "/loans/"+testLoanID()+"/close", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues(testLoanID())

	if err := h.Close(c); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}
	if l.Status != loanDomain.StatusClosed {
		t.Fatalf("loan status = %s, want Closed", l.Status)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if body["loan_status"] != "Closed" || body["loan_id"] != testLoanID() {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestCloseLoan_OutstandingBalance(t *testing.T) {
	e := newEchoWithValidator()
	uc, l := closeFixture(false)
	h := NewLoanHandler(uc)

	req := httptest.NewRequest(stdhttp.MethodPost, "/loans/"+testLoanID()+"/close", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues(testLoanID())

	if err := h.Close(c); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409; body=%s", rec.Code, rec.Body.String())
	}
	if l.Status != loanDomain.StatusActive {
		t.Fatalf("loan status = %s, want Active", l.Status)
	}
}

func TestDisburseLoan_ValidationFailure(t *testing.T) {
	e := newEchoWithValidator()
	h := NewLoanHandler(ucLoan.NewUsecase(nil, nil))

	// payment_mode missing, amount has too many decimals
	body := map[string]any{"amount": 1000.555}
	req := httptest.NewRequest(stdhttp.MethodPost, "/loans/"+testLoanID()+"/disbursements", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues(testLoanID())

	if err := h.Disburse(c); err != nil {
		t.Fatalf("Disburse error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if !containsFieldMsg(er.Details, "PaymentMode", "is required") {
		t.Fatalf("missing payment mode detail: %+v", er.Details)
	}
	if !containsFieldMsg(er.Details, "Amount", "at most 2 decimal places") {
		t.Fatalf("missing amount detail: %+v", er.Details)
	}
}

func TestAttachCollateral_Success(t *testing.T) {
	e := newEchoWithValidator()

	var created *loanDomain.Collateral
	loans := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
			return &loanDomain.Loan{ID: 9, LoanID: loanID, Status: loanDomain.StatusActive}, nil
		},
		CreateCollateralFn: func(ctx context.Context, col *loanDomain.Collateral) error {
			created = col
			return nil
		},
	}
	h := NewLoanHandler(ucLoan.NewUsecase(loans, nil))

	body := map[string]any{
		"collateral_type": "Property",
		"description":     "Residential flat",
		"estimated_value": 2500000,
		"valuation_date":  "2026-01-15",
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/loans/"+testLoanID()+"/collateral", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues(testLoanID())

	if err := h.AttachCollateral(c); err != nil {
		t.Fatalf("AttachCollateral error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201; body=%s", rec.Code, rec.Body.String())
	}
	if created == nil || created.LoanID != 9 {
		t.Fatalf("collateral not linked to loan: %+v", created)
	}
	if !created.EstimatedValue.Equal(decimal.NewFromInt(2500000)) {
		t.Fatalf("estimated value = %s", created.EstimatedValue)
	}
}

func TestGetLoan_NotFound(t *testing.T) {
	e := newEchoWithValidator()

	loans := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
			return nil, loanDomain.ErrNotFound
		},
	}
	h := NewLoanHandler(ucLoan.NewUsecase(loans, nil))

	req := httptest.NewRequest(stdhttp.MethodGet, "/loans/"+testLoanID(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues(testLoanID())

	if err := h.Get(c); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
