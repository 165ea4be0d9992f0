package pos

import (
	"github.com/shopspring/decimal"

	"paraisopos/internal/model"
)

// Linea is one cart line. PrecioFinal overrides the catalog price when set:
// the wholesale rule writes it on non-promo lines, the combo flow fixes it
// on promo lines. Promo lines are never touched by the wholesale rule.
type Linea struct {
	Producto    model.Producto   `json:"producto"`
	Cantidad    int              `json:"cantidad"`
	EsPromo     bool             `json:"es_promo"`
	PrecioFinal *decimal.Decimal `json:"precio_final,omitempty"`
}

// PrecioUnitario resolves the effective unit price.
func (l Linea) PrecioUnitario() decimal.Decimal {
	if l.PrecioFinal != nil {
		return *l.PrecioFinal
	}
	return l.Producto.Precio
}

// Total is cantidad × precio unitario.
func (l Linea) Total() decimal.Decimal {
	return l.PrecioUnitario().Mul(decimal.NewFromInt(int64(l.Cantidad)))
}

// Carrito is the mutable line sequence for one checkout. Totals are never
// stored — always recomputed from the lines.
type Carrito struct {
	Lineas []Linea `json:"lineas"`
}

// Agregar merges or appends each incoming line, then reapplies the
// wholesale rule over the whole cart. A line merges into an existing one
// when the product matches and either both are non-promo, or both are
// promo at the same resolved unit price (a second identical combo stacks;
// a promo never merges into a regular line).
func (c *Carrito) Agregar(lineas ...Linea) {
	for _, nueva := range lineas {
		idx := c.buscarLinea(nueva)
		if idx >= 0 {
			c.Lineas[idx].Cantidad += nueva.Cantidad
		} else {
			c.Lineas = append(c.Lineas, nueva)
		}
	}
	c.Recalcular()
}

func (c *Carrito) buscarLinea(nueva Linea) int {
	for i, l := range c.Lineas {
		if l.Producto.ID != nueva.Producto.ID {
			continue
		}
		if l.EsPromo || nueva.EsPromo {
			if l.EsPromo && nueva.EsPromo && l.PrecioUnitario().Equal(nueva.PrecioUnitario()) {
				return i
			}
			continue
		}
		return i
	}
	return -1
}

// CambiarCantidad sets the quantity of a line and recalculates. Quantities
// below 1 clamp to 1; removal is explicit via Eliminar.
func (c *Carrito) CambiarCantidad(idx, cantidad int) error {
	if idx < 0 || idx >= len(c.Lineas) {
		return ErrLineaInvalida
	}
	if cantidad < 1 {
		cantidad = 1
	}
	c.Lineas[idx].Cantidad = cantidad
	c.Recalcular()
	return nil
}

func (c *Carrito) Eliminar(idx int) error {
	if idx < 0 || idx >= len(c.Lineas) {
		return ErrLineaInvalida
	}
	c.Lineas = append(c.Lineas[:idx], c.Lineas[idx+1:]...)
	c.Recalcular()
	return nil
}

func (c *Carrito) Vaciar() {
	c.Lineas = nil
}

// Recalcular applies the wholesale price rule to every line. Idempotent
// and per-line independent: a non-promo line whose quantity reaches the
// product's wholesale threshold gets the wholesale unit price; below the
// threshold any previous override is cleared so the line falls back to
// the list price. Promo lines keep whatever price the combo fixed.
func (c *Carrito) Recalcular() {
	for i := range c.Lineas {
		l := &c.Lineas[i]
		if l.EsPromo {
			continue
		}
		p := l.Producto
		if p.CantidadMayorista > 0 && p.PrecioMayorista != nil &&
			p.PrecioMayorista.IsPositive() && l.Cantidad >= p.CantidadMayorista {
			precio := *p.PrecioMayorista
			l.PrecioFinal = &precio
		} else {
			l.PrecioFinal = nil
		}
	}
}

// AplicaMayorista reports whether the wholesale price is active on a line.
func (l Linea) AplicaMayorista() bool {
	return !l.EsPromo && l.PrecioFinal != nil
}

// TotalExento sums lines flagged exento de IVA.
func (c *Carrito) TotalExento() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lineas {
		if l.Producto.ExentoIVA {
			total = total.Add(l.Total())
		}
	}
	return total
}

// TotalAfecto sums taxed lines.
func (c *Carrito) TotalAfecto() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lineas {
		if !l.Producto.ExentoIVA {
			total = total.Add(l.Total())
		}
	}
	return total
}

func (c *Carrito) TotalGeneral() decimal.Decimal {
	return c.TotalAfecto().Add(c.TotalExento())
}

func (c *Carrito) Vacio() bool { return len(c.Lineas) == 0 }
