package http

import (
	"net/http"

	"credit-risk-ledger/internal/usecase/npa"

	"github.com/labstack/echo/v4"
)

type NpaHandler struct{ uc *npa.Usecase }

func NewNpaHandler(uc *npa.Usecase) *NpaHandler { return &NpaHandler{uc: uc} }

func (h *NpaHandler) Resolve(c echo.Context) error {
	npaID := c.Param("npa_id")
	if npaID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing npa_id path param"})
	}
	if err := h.uc.Resolve(c.Request().Context(), npaID); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"npa_id": npaID, "resolution_status": "Resolved"})
}
