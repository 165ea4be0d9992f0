package pos

import "github.com/shopspring/decimal"

// MetodoPago is the tender instrument. Efectivo and giro settle through
// the drawer; the rest go straight to the bank.
type MetodoPago string

const (
	Efectivo      MetodoPago = "EFECTIVO"
	Giro          MetodoPago = "GIRO"
	Debito        MetodoPago = "DEBITO"
	Credito       MetodoPago = "CREDITO"
	Transferencia MetodoPago = "TRANSFERENCIA"
)

// EsEfectivo reports whether the instrument is cash-like for settlement:
// it feeds the drawer and may fund exempt goods.
func (m MetodoPago) EsEfectivo() bool {
	return m == Efectivo || m == Giro
}

// MetodoValido reports whether m is a known instrument.
func MetodoValido(m MetodoPago) bool {
	switch m {
	case Efectivo, Giro, Debito, Credito, Transferencia:
		return true
	}
	return false
}

type Pago struct {
	Metodo MetodoPago      `json:"metodo"`
	Monto  decimal.Decimal `json:"monto"`
}

// SesionPago allocates tendered payments against a frozen cart total.
// The totals are captured when the session starts; the calling flow
// rejects cart edits while the session holds payments.
type SesionPago struct {
	TotalGeneral decimal.Decimal `json:"total_general"`
	TotalAfecto  decimal.Decimal `json:"total_afecto"`
	Pagos        []Pago          `json:"pagos"`
	// Vuelto is informational: the excess handed back on the last clamped
	// cash payment. Reset only when the session itself resets.
	Vuelto decimal.Decimal `json:"vuelto"`
}

func NuevaSesionPago(totalGeneral, totalAfecto decimal.Decimal) *SesionPago {
	return &SesionPago{
		TotalGeneral: totalGeneral,
		TotalAfecto:  totalAfecto,
		Vuelto:       decimal.Zero,
	}
}

func (s *SesionPago) TotalPagado() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.Pagos {
		total = total.Add(p.Monto)
	}
	return total
}

// Restante never goes negative: cash overpayment is clamped and non-cash
// overpayment is rejected.
func (s *SesionPago) Restante() decimal.Decimal {
	return s.TotalGeneral.Sub(s.TotalPagado())
}

// TotalNoEfectivo sums the electronic payments recorded so far.
func (s *SesionPago) TotalNoEfectivo() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.Pagos {
		if !p.Metodo.EsEfectivo() {
			total = total.Add(p.Monto)
		}
	}
	return total
}

// Agregar records one tendered payment.
//
// Electronic instruments may never fund exempt goods, so their running sum
// is capped at the taxed total; they also cannot exceed the remaining
// balance. Cash-like tenders above the remaining balance are clamped: the
// payment is recorded at the remaining amount and the excess surfaces as
// vuelto. The clamp is authoritative — after it, the balance is zero and
// the sale can finalize; the vuelto figure only tells the operator what
// to hand back.
func (s *SesionPago) Agregar(metodo MetodoPago, monto decimal.Decimal) error {
	if !monto.IsPositive() {
		return ErrMontoInvalido
	}
	restante := s.Restante()

	if !metodo.EsEfectivo() {
		if s.TotalNoEfectivo().Add(monto).GreaterThan(s.TotalAfecto) {
			return ErrPagoExcedeExento
		}
		if monto.GreaterThan(restante) {
			return ErrSobrepago
		}
		s.Pagos = append(s.Pagos, Pago{Metodo: metodo, Monto: monto})
		return nil
	}

	// A settled balance admits no further tender: clamping here would
	// record a zero-amount payment.
	if restante.IsZero() {
		return ErrSobrepago
	}
	if monto.GreaterThan(restante) {
		s.Vuelto = monto.Sub(restante)
		monto = restante
	}
	s.Pagos = append(s.Pagos, Pago{Metodo: metodo, Monto: monto})
	return nil
}

// Saldada reports whether the balance is exactly zero and the sale may
// finalize.
func (s *SesionPago) Saldada() bool {
	return s.Restante().IsZero()
}

// TotalEfectivo sums the cash-like payments — this is the amount that
// lands in the drawer as a single sale movement.
func (s *SesionPago) TotalEfectivo() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.Pagos {
		if p.Metodo.EsEfectivo() {
			total = total.Add(p.Monto)
		}
	}
	return total
}
