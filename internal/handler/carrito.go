package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"paraisopos/internal/apierror"
	"paraisopos/internal/dto"
	"paraisopos/internal/middleware"
	"paraisopos/internal/service"
)

// CarritoHandler exposes the per-operator checkout. Every route resolves
// the checkout by the JWT user id — the tablet carries no cart state.
type CarritoHandler struct{ svc service.CheckoutService }

func NewCarritoHandler(svc service.CheckoutService) *CarritoHandler {
	return &CarritoHandler{svc: svc}
}

func usuarioID(c *gin.Context) uuid.UUID {
	claims := middleware.GetClaims(c)
	id, _ := uuid.Parse(claims.UserID)
	return id
}

// Escanear godoc
// @Summary Escanea un producto al carrito
// @Tags carrito
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.EscanearRequest true "Codigo de barras"
// @Success 200 {object} dto.CarritoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/carrito/escanear [post]
func (h *CarritoHandler) Escanear(c *gin.Context) {
	var req dto.EscanearRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Escanear(c.Request.Context(), usuarioID(c), req.Codigo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EscanearCombo godoc
// @Summary Escanea un paso del combo promocional
// @Tags carrito
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.EscanearRequest true "Codigo de barras"
// @Success 200 {object} dto.ComboEstadoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/carrito/combo/escanear [post]
func (h *CarritoHandler) EscanearCombo(c *gin.Context) {
	var req dto.EscanearRequest
	if !bindAndValidate(c, &req) {
		return
	}
	estado, carrito, err := h.svc.EscanearCombo(c.Request.Context(), usuarioID(c), req.Codigo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"combo": estado, "carrito": carrito})
}

// CancelarCombo godoc
// @Summary Descarta el combo en curso sin tocar el carrito
// @Tags carrito
// @Security BearerAuth
// @Success 204
// @Router /v1/carrito/combo [delete]
func (h *CarritoHandler) CancelarCombo(c *gin.Context) {
	if err := h.svc.CancelarCombo(c.Request.Context(), usuarioID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Ver godoc
// @Summary Devuelve el carrito y la sesion de pago
// @Tags carrito
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CarritoResponse
// @Router /v1/carrito [get]
func (h *CarritoHandler) Ver(c *gin.Context) {
	resp, err := h.svc.VerCarrito(c.Request.Context(), usuarioID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarCantidad godoc
// @Summary Cambia la cantidad de una linea
// @Tags carrito
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param idx path int true "Indice de linea"
// @Param body body dto.CambiarCantidadRequest true "Nueva cantidad"
// @Success 200 {object} dto.CarritoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/carrito/items/{idx} [patch]
func (h *CarritoHandler) CambiarCantidad(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("indice invalido"))
		return
	}
	var req dto.CambiarCantidadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarCantidad(c.Request.Context(), usuarioID(c), idx, req.Cantidad)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EliminarLinea godoc
// @Summary Elimina una linea del carrito
// @Tags carrito
// @Produce json
// @Security BearerAuth
// @Param idx path int true "Indice de linea"
// @Success 200 {object} dto.CarritoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/carrito/items/{idx} [delete]
func (h *CarritoHandler) EliminarLinea(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("indice invalido"))
		return
	}
	resp, err := h.svc.EliminarLinea(c.Request.Context(), usuarioID(c), idx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Vaciar godoc
// @Summary Vacia el carrito completo, pagos incluidos
// @Tags carrito
// @Security BearerAuth
// @Success 204
// @Router /v1/carrito [delete]
func (h *CarritoHandler) Vaciar(c *gin.Context) {
	if err := h.svc.Vaciar(c.Request.Context(), usuarioID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AgregarPago godoc
// @Summary Registra un pago sobre el carrito
// @Tags carrito
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AgregarPagoRequest true "Metodo y monto"
// @Success 200 {object} dto.CarritoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/carrito/pagos [post]
func (h *CarritoHandler) AgregarPago(c *gin.Context) {
	var req dto.AgregarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarPago(c.Request.Context(), usuarioID(c), req.Metodo, req.Monto)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReiniciarPagos godoc
// @Summary Anula los pagos registrados y desbloquea el carrito
// @Tags carrito
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CarritoResponse
// @Router /v1/carrito/pagos [delete]
func (h *CarritoHandler) ReiniciarPagos(c *gin.Context) {
	resp, err := h.svc.ReiniciarPagos(c.Request.Context(), usuarioID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Finalizar godoc
// @Summary Finaliza la venta con saldo cero
// @Tags carrito
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.FinalizarRequest true "Opciones"
// @Success 201 {object} dto.FinalizarResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/carrito/finalizar [post]
func (h *CarritoHandler) Finalizar(c *gin.Context) {
	var req dto.FinalizarRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return
	}
	resp, err := h.svc.Finalizar(c.Request.Context(), usuarioID(c), req.Boletear)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
