package http

import (
	"net/http"

	"credit-risk-ledger/internal/usecase/origination"

	"github.com/labstack/echo/v4"
)

type ApplicationHandler struct{ uc *origination.Usecase }

func NewApplicationHandler(uc *origination.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type submitApplicationReq struct {
	CustomerID      string  `json:"customer_id"        validate:"required,hex32"`
	LoanAmount      float64 `json:"loan_amount"        validate:"required,gt=0,dec2"`
	TenureMonths    int     `json:"loan_tenure_months" validate:"required,gte=1,lte=360"`
	InterestRate    float64 `json:"interest_rate"      validate:"gte=0,lte=100,dec2"`
	LoanPurpose     string  `json:"loan_purpose"`
	CreditScore     float64 `json:"credit_score"       validate:"required,gte=300,lte=850"`
	RiskProbability float64 `json:"risk_probability"   validate:"gte=0,lte=1"`
	RiskLevel       string  `json:"risk_level"`
	Recommendation  string  `json:"recommendation"`
}

func (h *ApplicationHandler) Submit(c echo.Context) error {
	var req submitApplicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Submit(c.Request().Context(), origination.SubmitInput{
		CustomerID:      req.CustomerID,
		LoanAmount:      amount(req.LoanAmount),
		TenureMonths:    req.TenureMonths,
		InterestRate:    amount(req.InterestRate),
		LoanPurpose:     req.LoanPurpose,
		CreditScore:     amount(req.CreditScore),
		RiskProbability: amount(req.RiskProbability),
		RiskLevel:       req.RiskLevel,
		Recommendation:  req.Recommendation,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type approveApplicationReq struct {
	// Canonical date `YYYY-MM-DD`; empty means today.
	StartDate string `json:"loan_start_date" validate:"omitempty,datetime=2006-01-02"`
}

func (h *ApplicationHandler) Approve(c echo.Context) error {
	applicationID := c.Param("application_id")
	if applicationID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing application_id path param"})
	}
	var req approveApplicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_start_date"})
	}

	dto, err := h.uc.Approve(c.Request().Context(), applicationID, startDate)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApplicationHandler) Reject(c echo.Context) error {
	applicationID := c.Param("application_id")
	if applicationID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing application_id path param"})
	}
	dto, err := h.uc.Reject(c.Request().Context(), applicationID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("application_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
