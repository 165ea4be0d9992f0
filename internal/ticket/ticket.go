// Package ticket renders the fixed-width voucher for 57mm thermal rolls.
// The 32-character line width is a hard printer constraint: any change to
// the column widths must be re-validated against the RawBT printing app.
package ticket

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// MaxLine is the character width of a 57mm roll.
	MaxLine = 32

	anchoCant   = 4
	anchoNombre = 16
	anchoTotal  = 10

	// corte is the ESC/POS full-cut control sequence (GS V 0).
	corte = "\x1d\x56\x00"
)

// es-CL groups thousands with dots and the peso has no subunit.
var esCL = message.NewPrinter(language.MustParse("es-CL"))

// Monto formats a peso amount as a thousands-separated integer.
func Monto(d decimal.Decimal) string {
	return esCL.Sprintf("%d", d.IntPart())
}

type Item struct {
	Cantidad int
	Nombre   string
	EsPromo  bool
	Total    decimal.Decimal
}

type Pago struct {
	Metodo string
	Monto  decimal.Decimal
}

type Datos struct {
	Nombre    string // store header
	Direccion string
	Folio     int
	Fecha     time.Time
	Vendedor  string
	Items     []Item
	Total     decimal.Decimal
	Pagos     []Pago
}

// Column widths are printer character cells, so padding and truncation
// count runes. Byte counting would shift columns on accented names and
// could cut a rune in half.
func padRight(s string, n int) string {
	r := []rune(s)
	if len(r) >= n {
		return string(r[:n])
	}
	return s + strings.Repeat(" ", n-len(r))
}

func padLeft(s string, n int) string {
	r := []rune(s)
	if len(r) >= n {
		return string(r[:n])
	}
	return strings.Repeat(" ", n-len(r)) + s
}

func regla() string {
	return strings.Repeat("-", MaxLine)
}

// Render produces the plain-text voucher, cut sequence included.
func Render(d Datos) string {
	var b strings.Builder

	b.WriteString("  " + d.Nombre + "\n")
	b.WriteString("  " + d.Direccion + "\n")
	b.WriteString(regla() + "\n")

	b.WriteString("  Folio: #" + strconv.Itoa(d.Folio) + "\n")
	b.WriteString("  Fecha: " + d.Fecha.Format("02-01-2006 15:04") + "\n")
	b.WriteString("  Vendedor: " + d.Vendedor + "\n")
	b.WriteString(regla() + "\n")

	b.WriteString(" CANT PRODUCTO          TOTAL\n")
	for _, it := range d.Items {
		nombre := it.Nombre
		if it.EsPromo {
			nombre += " (P)"
		}
		b.WriteString(padRight(strconv.Itoa(it.Cantidad), anchoCant))
		b.WriteString(padRight(nombre, anchoNombre))
		b.WriteString(padLeft("$"+Monto(it.Total), anchoTotal))
		b.WriteString("\n")
	}
	b.WriteString(regla() + "\n")

	b.WriteString(" TOTAL:" + padLeft("$"+Monto(d.Total), MaxLine-len(" TOTAL:")) + "\n")

	b.WriteString("\n FORMAS DE PAGO:\n")
	for _, p := range d.Pagos {
		b.WriteString(" - " + p.Metodo)
		b.WriteString(padLeft("$"+Monto(p.Monto), MaxLine-len(p.Metodo)-3))
		b.WriteString("\n")
	}

	b.WriteString(regla() + "\n")
	b.WriteString(" ¡GRACIAS POR SU PREFERENCIA!\n")
	b.WriteString(" Conserve este comprobante.\n\n\n")
	b.WriteString(corte)

	return b.String()
}

// PrintURL wraps the rendered text in the capability URL the external
// printing app registers on the tablet.
func PrintURL(texto string) string {
	return "rawbt:base64," + base64.StdEncoding.EncodeToString([]byte(texto))
}
