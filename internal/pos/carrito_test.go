package pos

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paraisopos/internal/model"
)

func productoLista(precio int64) model.Producto {
	return model.Producto{
		ID:     uuid.New(),
		Codigo: "P-" + uuid.NewString()[:8],
		Nombre: "Producto",
		Precio: decimal.NewFromInt(precio),
	}
}

func productoMayorista(precio, precioMayorista int64, umbral int) model.Producto {
	p := productoLista(precio)
	mayorista := decimal.NewFromInt(precioMayorista)
	p.PrecioMayorista = &mayorista
	p.CantidadMayorista = umbral
	return p
}

func TestAgregarMismaLineaSuma(t *testing.T) {
	c := &Carrito{}
	p := productoLista(1990)

	c.Agregar(Linea{Producto: p, Cantidad: 1})
	c.Agregar(Linea{Producto: p, Cantidad: 1})

	require.Len(t, c.Lineas, 1)
	assert.Equal(t, 2, c.Lineas[0].Cantidad)
	assert.Equal(t, "3980", c.TotalGeneral().String())
}

func TestMayoristaSeActivaEnUmbral(t *testing.T) {
	c := &Carrito{}
	p := productoMayorista(1200, 1000, 6)

	c.Agregar(Linea{Producto: p, Cantidad: 5})
	assert.Equal(t, "1200", c.Lineas[0].PrecioUnitario().String())
	assert.Equal(t, "6000", c.TotalGeneral().String())

	require.NoError(t, c.CambiarCantidad(0, 6))
	assert.Equal(t, "1000", c.Lineas[0].PrecioUnitario().String())
	assert.Equal(t, "6000", c.TotalGeneral().String())
	assert.True(t, c.Lineas[0].AplicaMayorista())
}

func TestMayoristaSeDesactivaBajoUmbral(t *testing.T) {
	c := &Carrito{}
	p := productoMayorista(1200, 1000, 6)

	c.Agregar(Linea{Producto: p, Cantidad: 8})
	assert.Equal(t, "1000", c.Lineas[0].PrecioUnitario().String())

	require.NoError(t, c.CambiarCantidad(0, 5))
	assert.Equal(t, "1200", c.Lineas[0].PrecioUnitario().String())
	assert.False(t, c.Lineas[0].AplicaMayorista())
}

func TestRecalcularEsIdempotente(t *testing.T) {
	c := &Carrito{}
	c.Agregar(Linea{Producto: productoMayorista(1200, 1000, 6), Cantidad: 7})

	antes := c.TotalGeneral()
	c.Recalcular()
	c.Recalcular()
	assert.True(t, antes.Equal(c.TotalGeneral()))
}

func TestMayoristaNoTocaLineasPromo(t *testing.T) {
	c := &Carrito{}
	p := productoMayorista(1200, 1000, 6)
	promo := decimal.NewFromInt(1000)

	c.Agregar(Linea{Producto: p, Cantidad: 10, EsPromo: true, PrecioFinal: &promo})

	assert.Equal(t, "1000", c.Lineas[0].PrecioUnitario().String())
	c.Recalcular()
	assert.Equal(t, "1000", c.Lineas[0].PrecioUnitario().String())
}

func TestPromoNoSeFusionaConLineaNormal(t *testing.T) {
	c := &Carrito{}
	p := productoLista(1990)
	promo := decimal.NewFromInt(1000)

	c.Agregar(Linea{Producto: p, Cantidad: 1})
	c.Agregar(Linea{Producto: p, Cantidad: 1, EsPromo: true, PrecioFinal: &promo})

	require.Len(t, c.Lineas, 2)
}

func TestPromosIgualesSeFusionan(t *testing.T) {
	c := &Carrito{}
	p := productoLista(1990)
	promo := decimal.NewFromInt(1000)

	c.Agregar(Linea{Producto: p, Cantidad: 1, EsPromo: true, PrecioFinal: &promo})
	c.Agregar(Linea{Producto: p, Cantidad: 1, EsPromo: true, PrecioFinal: &promo})

	require.Len(t, c.Lineas, 1)
	assert.Equal(t, 2, c.Lineas[0].Cantidad)
}

func TestCambiarCantidadMinimoUno(t *testing.T) {
	c := &Carrito{}
	c.Agregar(Linea{Producto: productoLista(500), Cantidad: 3})

	require.NoError(t, c.CambiarCantidad(0, 0))
	assert.Equal(t, 1, c.Lineas[0].Cantidad)
}

func TestEliminarLineaFueraDeRango(t *testing.T) {
	c := &Carrito{}
	c.Agregar(Linea{Producto: productoLista(500), Cantidad: 1})

	assert.ErrorIs(t, c.Eliminar(3), ErrLineaInvalida)
	assert.ErrorIs(t, c.CambiarCantidad(-1, 2), ErrLineaInvalida)
}

func TestTotalesAfectoExento(t *testing.T) {
	c := &Carrito{}
	afecto := productoLista(2000)
	exento := productoLista(3000)
	exento.ExentoIVA = true

	c.Agregar(Linea{Producto: afecto, Cantidad: 2})
	c.Agregar(Linea{Producto: exento, Cantidad: 1})

	assert.Equal(t, "4000", c.TotalAfecto().String())
	assert.Equal(t, "3000", c.TotalExento().String())
	assert.Equal(t, "7000", c.TotalGeneral().String())
}
