package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarritoSeCongelaConPagos(t *testing.T) {
	ck := NuevoCheckout()
	p := productoLista(3000)
	require.NoError(t, ck.AgregarProducto(p))

	require.NoError(t, ck.AgregarPago(Efectivo, d(1000)))

	assert.ErrorIs(t, ck.AgregarProducto(p), ErrPagoEnCurso)
	assert.ErrorIs(t, ck.CambiarCantidad(0, 5), ErrPagoEnCurso)
	assert.ErrorIs(t, ck.EliminarLinea(0), ErrPagoEnCurso)
	_, err := ck.EscanearCombo(licor("Pisco", 6990))
	assert.ErrorIs(t, err, ErrPagoEnCurso)

	// Resetting the payments unfreezes everything.
	ck.ReiniciarPagos()
	require.NoError(t, ck.CambiarCantidad(0, 2))
}

func TestPagoSinProductos(t *testing.T) {
	ck := NuevoCheckout()
	assert.ErrorIs(t, ck.AgregarPago(Efectivo, d(1000)), ErrCarritoVacio)
}

func TestTotalesCongeladosEnPrimerPago(t *testing.T) {
	ck := NuevoCheckout()
	require.NoError(t, ck.AgregarProducto(productoLista(5000)))

	require.NoError(t, ck.AgregarPago(Debito, d(2000)))
	assert.Equal(t, "5000", ck.Pagos.TotalGeneral.String())
	assert.Equal(t, "5000", ck.Pagos.TotalAfecto.String())

	require.NoError(t, ck.AgregarPago(Efectivo, d(3000)))
	assert.True(t, ck.ListoParaFinalizar())
}

func TestVaciarLimpiaTodo(t *testing.T) {
	ck := NuevoCheckout()
	require.NoError(t, ck.AgregarProducto(productoLista(1000)))
	require.NoError(t, ck.AgregarPago(Efectivo, d(500)))

	ck.Vaciar()
	assert.True(t, ck.Carrito.Vacio())
	assert.Nil(t, ck.Pagos)
	assert.False(t, ck.ListoParaFinalizar())
}
