package ticket

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datosEjemplo() Datos {
	return Datos{
		Nombre:    "BOTILLERIA EL PARAISO",
		Direccion: "Santo Domingo 2557",
		Folio:     1234,
		Fecha:     time.Date(2026, 8, 29, 18, 30, 0, 0, time.UTC),
		Vendedor:  "Carla",
		Items: []Item{
			{Cantidad: 2, Nombre: "Pisco Capel 35 Gran Reserva", Total: decimal.NewFromInt(13980)},
			{Cantidad: 1, Nombre: "Coca-Cola 1.5L", EsPromo: true, Total: decimal.NewFromInt(1000)},
		},
		Total: decimal.NewFromInt(14980),
		Pagos: []Pago{
			{Metodo: "DEBITO", Monto: decimal.NewFromInt(10000)},
			{Metodo: "EFECTIVO", Monto: decimal.NewFromInt(4980)},
		},
	}
}

func TestMontoAgrupaMiles(t *testing.T) {
	assert.Equal(t, "1.990", Monto(decimal.NewFromInt(1990)))
	assert.Equal(t, "999", Monto(decimal.NewFromInt(999)))
	assert.Equal(t, "1.250.000", Monto(decimal.NewFromInt(1250000)))
	assert.Equal(t, "0", Monto(decimal.Zero))
}

func TestRenderRespetaAnchoDeRollo(t *testing.T) {
	texto := Render(datosEjemplo())

	for _, linea := range strings.Split(texto, "\n") {
		assert.LessOrEqual(t, len([]rune(linea)), MaxLine, "linea: %q", linea)
	}
}

func TestRenderCabeceraYFolio(t *testing.T) {
	texto := Render(datosEjemplo())

	assert.Contains(t, texto, "BOTILLERIA EL PARAISO")
	assert.Contains(t, texto, "Santo Domingo 2557")
	assert.Contains(t, texto, "Folio: #1234")
	assert.Contains(t, texto, "Fecha: 29-08-2026 18:30")
	assert.Contains(t, texto, "Vendedor: Carla")
}

func TestRenderTruncaNombresLargos(t *testing.T) {
	texto := Render(datosEjemplo())

	// 27-char name cut at the 16-char column.
	assert.Contains(t, texto, "Pisco Capel 35 G")
	assert.NotContains(t, texto, "Gran Reserva")
}

func TestRenderAlineaNombresAcentuados(t *testing.T) {
	d := datosEjemplo()
	d.Items = []Item{
		{Cantidad: 1, Nombre: "Piña Colada Botella Grande", Total: decimal.NewFromInt(4990)},
		{Cantidad: 1, Nombre: "Cerveza", Total: decimal.NewFromInt(1500)},
	}
	texto := Render(d)

	// The accented name occupies the same 16-cell column as an ASCII one:
	// both item lines are equally wide and stay valid UTF-8.
	var lineas []string
	for _, l := range strings.Split(texto, "\n") {
		if strings.Contains(l, "$4.990") || strings.Contains(l, "$1.500") {
			lineas = append(lineas, l)
		}
	}
	require.Len(t, lineas, 2)
	assert.Equal(t, len([]rune(lineas[0])), len([]rune(lineas[1])))
	assert.True(t, utf8.ValidString(texto))
	assert.Contains(t, texto, "Piña Colada Bote")
}

func TestRenderMarcaPromos(t *testing.T) {
	texto := Render(datosEjemplo())
	assert.Contains(t, texto, "Coca-Cola 1.5L (")
}

func TestRenderTotalYPagos(t *testing.T) {
	texto := Render(datosEjemplo())

	assert.Contains(t, texto, "$14.980")
	assert.Contains(t, texto, "- DEBITO")
	assert.Contains(t, texto, "$10.000")
	assert.Contains(t, texto, "- EFECTIVO")
	assert.Contains(t, texto, "$4.980")
}

func TestRenderTerminaEnCorte(t *testing.T) {
	texto := Render(datosEjemplo())
	assert.True(t, strings.HasSuffix(texto, "\x1d\x56\x00"))
}

func TestPrintURL(t *testing.T) {
	url := PrintURL("hola")
	require.True(t, strings.HasPrefix(url, "rawbt:base64,"))
	assert.Equal(t, "rawbt:base64,aG9sYQ==", url)
}
