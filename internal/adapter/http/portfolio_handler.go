package http

import (
	"net/http"
	"time"

	"credit-risk-ledger/internal/usecase/portfolio"

	"github.com/labstack/echo/v4"
)

type PortfolioHandler struct{ uc *portfolio.Usecase }

func NewPortfolioHandler(uc *portfolio.Usecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

func (h *PortfolioHandler) Summary(c echo.Context) error {
	s, err := h.uc.Summary(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *PortfolioHandler) NPAAnalysis(c echo.Context) error {
	a, err := h.uc.NPAAnalysis(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *PortfolioHandler) RepaymentStats(c echo.Context) error {
	s, err := h.uc.RepaymentStats(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, s)
}
