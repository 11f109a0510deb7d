package http

import (
	"net/http"

	"credit-risk-ledger/internal/usecase/repayment"

	"github.com/labstack/echo/v4"
)

type RepaymentHandler struct{ uc *repayment.Usecase }

func NewRepaymentHandler(uc *repayment.Usecase) *RepaymentHandler {
	return &RepaymentHandler{uc: uc}
}

type paymentReq struct {
	Amount      float64 `json:"amount"       validate:"required,gt=0,dec2"`
	PaymentDate string  `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
}

func (h *RepaymentHandler) Pay(c echo.Context) error {
	loanID := c.Param("loan_id")
	if loanID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing loan_id path param"})
	}
	var req paymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	paymentDate, err := parseDate(req.PaymentDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid payment_date"})
	}

	result, err := h.uc.ApplyPayment(c.Request().Context(), loanID, amount(req.Amount), paymentDate)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *RepaymentHandler) Schedule(c echo.Context) error {
	out, err := h.uc.Schedule(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"installments": out})
}

type sweepReq struct {
	AsOf string `json:"as_of" validate:"omitempty,datetime=2006-01-02"`
}

// Sweep recomputes overdue status and penalties across all open loans.
func (h *RepaymentHandler) Sweep(c echo.Context) error {
	var req sweepReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	asOf, err := parseDate(req.AsOf)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid as_of"})
	}

	results, err := h.uc.SweepOverdue(c.Request().Context(), asOf)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"swept": len(results), "results": results})
}
