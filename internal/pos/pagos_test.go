package pos

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func TestPagoMontoInvalido(t *testing.T) {
	s := NuevaSesionPago(d(5000), d(5000))

	assert.ErrorIs(t, s.Agregar(Efectivo, d(0)), ErrMontoInvalido)
	assert.ErrorIs(t, s.Agregar(Debito, d(-100)), ErrMontoInvalido)
	assert.Empty(t, s.Pagos)
}

func TestNoEfectivoLimitadoPorAfecto(t *testing.T) {
	// 5000 taxed + 3000 exempt = 8000 total
	s := NuevaSesionPago(d(8000), d(5000))

	require.NoError(t, s.Agregar(Debito, d(5000)))

	// One more electronic peso would fund exempt goods.
	err := s.Agregar(Debito, d(1))
	assert.ErrorIs(t, err, ErrPagoExcedeExento)
	assert.Equal(t, "3000", s.Restante().String())

	require.NoError(t, s.Agregar(Efectivo, d(3000)))
	assert.True(t, s.Saldada())
	assert.Equal(t, "3000", s.TotalEfectivo().String())
	assert.Equal(t, "5000", s.TotalNoEfectivo().String())
}

func TestNoEfectivoNoSobrepaga(t *testing.T) {
	s := NuevaSesionPago(d(4000), d(4000))
	require.NoError(t, s.Agregar(Transferencia, d(3000)))

	assert.ErrorIs(t, s.Agregar(Credito, d(1500)), ErrSobrepago)
	assert.Equal(t, "1000", s.Restante().String())
}

func TestEfectivoSobrepagoSeRecortaConVuelto(t *testing.T) {
	s := NuevaSesionPago(d(8000), d(8000))
	require.NoError(t, s.Agregar(Debito, d(5000)))

	// 3000 remaining, customer hands 3500.
	require.NoError(t, s.Agregar(Efectivo, d(3500)))

	assert.Equal(t, "500", s.Vuelto.String())
	assert.Equal(t, "3000", s.Pagos[1].Monto.String())
	assert.True(t, s.Saldada())
	assert.True(t, s.Restante().IsZero())
}

func TestEfectivoSobreSaldoCeroSeRechaza(t *testing.T) {
	s := NuevaSesionPago(d(3000), d(3000))
	require.NoError(t, s.Agregar(Efectivo, d(3000)))
	require.True(t, s.Saldada())

	// A second bill on a settled balance must not record a zero payment.
	assert.ErrorIs(t, s.Agregar(Efectivo, d(500)), ErrSobrepago)
	require.Len(t, s.Pagos, 1)
	assert.True(t, s.Pagos[0].Monto.IsPositive())
	assert.True(t, s.Vuelto.IsZero())
}

func TestGiroEsEfectivo(t *testing.T) {
	// An all-exempt cart only settles with cash-like tenders.
	s := NuevaSesionPago(d(2000), d(0))

	assert.ErrorIs(t, s.Agregar(Debito, d(2000)), ErrPagoExcedeExento)
	require.NoError(t, s.Agregar(Giro, d(2000)))
	assert.True(t, s.Saldada())
}

func TestMetodoValido(t *testing.T) {
	assert.True(t, MetodoValido(Efectivo))
	assert.True(t, MetodoValido(Transferencia))
	assert.False(t, MetodoValido(MetodoPago("CHEQUE")))
}
