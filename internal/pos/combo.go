package pos

import (
	"fmt"

	"github.com/shopspring/decimal"

	"paraisopos/internal/model"
)

// Combo promocional: un licor a precio lista, una bebida familiar con el
// precio redondeado al millar hacia abajo, y un hielo de regalo. Assembled
// by two sequential scans.

// Category ids in the store catalog. Pinned by the pricing tests — these
// are data about the store, not deploy-time config.
var (
	categoriasLicor  = map[int]bool{3: true, 4: true, 5: true}
	categoriaBebida  = 2
	formatosFamiliar = map[int]bool{1500: true, 1750: true, 2000: true, 2250: true, 2500: true, 3000: true}
)

// ComboEstado is the step the scan flow is waiting on.
type ComboEstado int

const (
	EsperandoLicor ComboEstado = iota
	EsperandoBebida
)

// ComboSesion holds the scan-driven assembly state: the current step plus
// the buffered spirit. Discarding the session (closing the dialog) drops
// the buffered product with no cart side effects.
type ComboSesion struct {
	Estado ComboEstado
	Licor  *model.Producto
}

func NuevoCombo() *ComboSesion {
	return &ComboSesion{Estado: EsperandoLicor}
}

// Escanear feeds one resolved product into the state machine. It returns
// the three cart lines once the combo completes, or nil while incomplete.
// A product that does not fit the current step fails with
// ErrComboPasoInvalido and leaves the state (including the buffered
// spirit) untouched.
func (s *ComboSesion) Escanear(p model.Producto) ([]Linea, error) {
	switch s.Estado {
	case EsperandoLicor:
		if !categoriasLicor[p.CategoriaID] {
			return nil, fmt.Errorf("%w: %q no es un licor", ErrComboPasoInvalido, p.Nombre)
		}
		licor := p
		s.Licor = &licor
		s.Estado = EsperandoBebida
		return nil, nil

	case EsperandoBebida:
		if p.CategoriaID != categoriaBebida {
			return nil, fmt.Errorf("%w: %q no es una bebida", ErrComboPasoInvalido, p.Nombre)
		}
		if p.Capacidad == nil || !formatosFamiliar[*p.Capacidad] {
			return nil, fmt.Errorf("%w: %q no viene en formato familiar (1.5L a 3L)", ErrComboPasoInvalido, p.Nombre)
		}
		lineas := armarCombo(*s.Licor, p)
		s.Licor = nil
		s.Estado = EsperandoLicor
		return lineas, nil
	}
	return nil, fmt.Errorf("%w: estado de combo desconocido", ErrComboPasoInvalido)
}

// PrecioPromoBebida rounds the mixer's list price down to the thousand.
func PrecioPromoBebida(precio decimal.Decimal) decimal.Decimal {
	mil := decimal.NewFromInt(1000)
	return precio.Div(mil).Floor().Mul(mil)
}

// armarCombo builds the atomic three-line batch: spirit at full price,
// mixer at the promo price, and the complimentary ice. All flagged
// es_promo so the wholesale rule never reprices them.
func armarCombo(licor, bebida model.Producto) []Linea {
	promo := PrecioPromoBebida(bebida.Precio)
	return []Linea{
		{Producto: licor, Cantidad: 1, EsPromo: true},
		{Producto: bebida, Cantidad: 1, EsPromo: true, PrecioFinal: &promo},
		{Producto: RegaloCombo(), Cantidad: 1, EsPromo: true},
	}
}

// RegaloCombo is the zero-price giveaway line. It has no catalog row of
// its own so the combo can never fail on a missing giveaway record.
func RegaloCombo() model.Producto {
	return model.Producto{
		Codigo: "HIELO01",
		Nombre: "Hielo 1KG (Regalo)",
		Precio: decimal.Zero,
	}
}
