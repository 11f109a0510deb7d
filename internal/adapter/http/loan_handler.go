package http

import (
	"net/http"

	loanDomain "credit-risk-ledger/internal/domain/loan"
	"credit-risk-ledger/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

func (h *LoanHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type disburseReq struct {
	Amount           float64 `json:"amount"            validate:"required,gt=0,dec2"`
	DisbursementDate string  `json:"disbursement_date" validate:"omitempty,datetime=2006-01-02"`
	PaymentMode      string  `json:"payment_mode"      validate:"required"`
}

func (h *LoanHandler) Disburse(c echo.Context) error {
	loanID := c.Param("loan_id")
	if loanID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing loan_id path param"})
	}
	var req disburseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	date, err := parseDate(req.DisbursementDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid disbursement_date"})
	}

	dto, err := h.uc.Disburse(c.Request().Context(), loanID, amount(req.Amount), date, req.PaymentMode)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) Close(c echo.Context) error {
	loanID := c.Param("loan_id")
	if err := h.uc.Close(c.Request().Context(), loanID); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"loan_id": loanID, "loan_status": "Closed"})
}

func (h *LoanHandler) MarkDefaulted(c echo.Context) error {
	loanID := c.Param("loan_id")
	if err := h.uc.MarkDefaulted(c.Request().Context(), loanID); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"loan_id": loanID, "loan_status": "Defaulted"})
}

type collateralReq struct {
	CollateralType string  `json:"collateral_type" validate:"required"`
	Description    string  `json:"description"`
	EstimatedValue float64 `json:"estimated_value" validate:"required,gt=0,dec2"`
	ValuationDate  string  `json:"valuation_date"  validate:"omitempty,datetime=2006-01-02"`
}

func (h *LoanHandler) AttachCollateral(c echo.Context) error {
	loanID := c.Param("loan_id")
	var req collateralReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	valuedAt, err := parseDate(req.ValuationDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid valuation_date"})
	}

	col := &loanDomain.Collateral{
		CollateralType: req.CollateralType,
		Description:    req.Description,
		EstimatedValue: amount(req.EstimatedValue),
		ValuationDate:  valuedAt,
	}
	if err := h.uc.AttachCollateral(c.Request().Context(), loanID, col); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"loan_id": loanID, "attached": "collateral"})
}

type guarantorReq struct {
	FullName      string  `json:"full_name"      validate:"required"`
	Relationship  string  `json:"relationship"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email"          validate:"omitempty,email"`
	MonthlyIncome float64 `json:"monthly_income" validate:"omitempty,gt=0,dec2"`
	Address       string  `json:"address"`
}

func (h *LoanHandler) AttachGuarantor(c echo.Context) error {
	loanID := c.Param("loan_id")
	var req guarantorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	g := &loanDomain.Guarantor{
		FullName:      req.FullName,
		Relationship:  req.Relationship,
		Phone:         req.Phone,
		Email:         req.Email,
		MonthlyIncome: amount(req.MonthlyIncome),
		Address:       req.Address,
	}
	if err := h.uc.AttachGuarantor(c.Request().Context(), loanID, g); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"loan_id": loanID, "attached": "guarantor"})
}

type writeOffReq struct {
	Reason string `json:"reason" validate:"required"`
}

func (h *LoanHandler) WriteOff(c echo.Context) error {
	loanID := c.Param("loan_id")
	var req writeOffReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.uc.WriteOff(c.Request().Context(), loanID, req.Reason); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"loan_id": loanID, "loan_status": "Written-Off"})
}
