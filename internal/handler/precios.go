package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paraisopos/internal/service"
)

// PreciosHandler serves the public price-check kiosk: a customer scans a
// product and sees its price without logging in.
type PreciosHandler struct{ svc service.CheckoutService }

func NewPreciosHandler(svc service.CheckoutService) *PreciosHandler {
	return &PreciosHandler{svc: svc}
}

// Consultar godoc
// @Summary Consulta publica de precio por codigo de barras
// @Tags precios
// @Produce json
// @Param codigo path string true "Codigo de barras"
// @Success 200 {object} dto.ConsultaPrecioResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/precio/{codigo} [get]
func (h *PreciosHandler) Consultar(c *gin.Context) {
	resp, err := h.svc.ConsultarPrecio(c.Request.Context(), c.Param("codigo"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
