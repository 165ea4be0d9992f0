package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"paraisopos/internal/apierror"
	"paraisopos/internal/pos"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so validator tags like
	// min=0, gt=0 work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps engine rejections to HTTP statuses. Unknown errors go
// through the error middleware so the client never sees internals.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pos.ErrProductoNoEncontrado), errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, pos.ErrCajaYaAbierta), errors.Is(err, pos.ErrPagoEnCurso):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, pos.ErrComboPasoInvalido),
		errors.Is(err, pos.ErrMontoInvalido),
		errors.Is(err, pos.ErrMotivoRequerido),
		errors.Is(err, pos.ErrPagoExcedeExento),
		errors.Is(err, pos.ErrSobrepago),
		errors.Is(err, pos.ErrSaldoPendiente),
		errors.Is(err, pos.ErrCarritoVacio),
		errors.Is(err, pos.ErrLineaInvalida),
		errors.Is(err, pos.ErrCajaCerrada):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	default:
		_ = c.Error(err)
	}
}
