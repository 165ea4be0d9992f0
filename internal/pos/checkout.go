package pos

import (
	"github.com/shopspring/decimal"

	"paraisopos/internal/model"
)

// Checkout aggregates the per-operator transient state: the draft cart,
// the optional combo dialog, and the payment session. It enforces the
// phase rule — once payment entry starts the cart is frozen until the
// payments are reset or the sale finalizes.
type Checkout struct {
	Carrito Carrito
	Combo   *ComboSesion
	Pagos   *SesionPago
}

func NuevoCheckout() *Checkout {
	return &Checkout{}
}

func (ck *Checkout) pagoEnCurso() bool {
	return ck.Pagos != nil && len(ck.Pagos.Pagos) > 0
}

// AgregarProducto adds one unit of a scanned product to the cart.
func (ck *Checkout) AgregarProducto(p model.Producto) error {
	if ck.pagoEnCurso() {
		return ErrPagoEnCurso
	}
	ck.Carrito.Agregar(Linea{Producto: p, Cantidad: 1})
	return nil
}

// EscanearCombo feeds a scan into the combo dialog, opening it on first
// use. When the combo completes, the three promo lines land in the cart
// in one batch and the dialog resets.
func (ck *Checkout) EscanearCombo(p model.Producto) (completo bool, err error) {
	if ck.pagoEnCurso() {
		return false, ErrPagoEnCurso
	}
	if ck.Combo == nil {
		ck.Combo = NuevoCombo()
	}
	lineas, err := ck.Combo.Escanear(p)
	if err != nil {
		return false, err
	}
	if lineas == nil {
		return false, nil
	}
	ck.Carrito.Agregar(lineas...)
	ck.Combo = nil
	return true, nil
}

// CancelarCombo discards the combo dialog. No partial combo ever reaches
// the cart.
func (ck *Checkout) CancelarCombo() {
	ck.Combo = nil
}

func (ck *Checkout) CambiarCantidad(idx, cantidad int) error {
	if ck.pagoEnCurso() {
		return ErrPagoEnCurso
	}
	return ck.Carrito.CambiarCantidad(idx, cantidad)
}

func (ck *Checkout) EliminarLinea(idx int) error {
	if ck.pagoEnCurso() {
		return ErrPagoEnCurso
	}
	return ck.Carrito.Eliminar(idx)
}

// Vaciar clears the whole checkout, payment session included.
func (ck *Checkout) Vaciar() {
	ck.Carrito.Vaciar()
	ck.Combo = nil
	ck.Pagos = nil
}

// AgregarPago opens the payment session on first use, freezing the cart
// totals for its duration.
func (ck *Checkout) AgregarPago(metodo MetodoPago, monto decimal.Decimal) error {
	if ck.Carrito.Vacio() {
		return ErrCarritoVacio
	}
	if ck.Pagos == nil {
		ck.Pagos = NuevaSesionPago(ck.Carrito.TotalGeneral(), ck.Carrito.TotalAfecto())
	}
	return ck.Pagos.Agregar(metodo, monto)
}

// ReiniciarPagos drops all tendered payments and the vuelto, unfreezing
// the cart.
func (ck *Checkout) ReiniciarPagos() {
	ck.Pagos = nil
}

// ListoParaFinalizar reports whether the balance is settled.
func (ck *Checkout) ListoParaFinalizar() bool {
	return ck.Pagos != nil && !ck.Carrito.Vacio() && ck.Pagos.Saldada()
}
