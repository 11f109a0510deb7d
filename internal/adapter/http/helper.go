package http

import (
	"errors"
	"net/http"
	"time"

	"credit-risk-ledger/internal/domain/application"
	"credit-risk-ledger/internal/domain/customer"
	"credit-risk-ledger/internal/domain/loan"
	"credit-risk-ledger/internal/domain/npa"
	"credit-risk-ledger/internal/domain/repayment"
	"credit-risk-ledger/internal/domain/uow"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// amount converts a dec2-validated float into exact money.
func amount(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}

// statusFor maps domain errors to HTTP codes: missing entities are 404,
// bad input is 400, state rules and concurrent updates are 409.
func statusFor(err error) int {
	switch {
	case errors.Is(err, customer.ErrNotFound),
		errors.Is(err, application.ErrNotFound),
		errors.Is(err, loan.ErrNotFound),
		errors.Is(err, repayment.ErrNotFound),
		errors.Is(err, npa.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrInvalidInput),
		errors.Is(err, loan.ErrInvalidAmount),
		errors.Is(err, repayment.ErrNonPositiveAmount):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrNotPending),
		errors.Is(err, loan.ErrInvalidTransition),
		errors.Is(err, loan.ErrOverDisbursement),
		errors.Is(err, loan.ErrOutstandingBalance),
		errors.Is(err, loan.ErrClosed),
		errors.Is(err, npa.ErrNotOpen),
		errors.Is(err, npa.ErrStillOverdue),
		errors.Is(err, uow.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func fail(c echo.Context, err error) error {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal error"
	}
	return c.JSON(code, ErrorResponse{Error: msg})
}

// parseDate reads a canonical YYYY-MM-DD value, defaulting empty to today
// (UTC, day precision).
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", raw)
}
