package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	MontoInicial decimal.Decimal `json:"monto_inicial" validate:"min=0"`
}

type MovimientoManualRequest struct {
	Tipo   string          `json:"tipo"   validate:"required,oneof=ingreso egreso"`
	Monto  decimal.Decimal `json:"monto"  validate:"required,gt=0"`
	Motivo string          `json:"motivo" validate:"required"`
}

type CerrarCajaRequest struct {
	MontoContado decimal.Decimal `json:"monto_contado" validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimientoResponse struct {
	Tipo      string          `json:"tipo"`
	Metodo    *string         `json:"metodo,omitempty"`
	Monto     decimal.Decimal `json:"monto"`
	Motivo    string          `json:"motivo"`
	CreatedAt string          `json:"created_at"`
}

// EstadoCajaResponse describes the open session and its derived figures.
// EfectivoEsperado is recomputed on every request, never stored while open.
type EstadoCajaResponse struct {
	Estado           string               `json:"estado"` // abierta | cerrada
	SesionID         string               `json:"sesion_id,omitempty"`
	MontoInicial     decimal.Decimal      `json:"monto_inicial"`
	VentasEfectivo   decimal.Decimal      `json:"ventas_efectivo"`
	VentasDigital    decimal.Decimal      `json:"ventas_digital"`
	TotalIngresos    decimal.Decimal      `json:"total_ingresos"`
	TotalEgresos     decimal.Decimal      `json:"total_egresos"`
	EfectivoEsperado decimal.Decimal      `json:"efectivo_esperado"`
	OpenedAt         string               `json:"opened_at,omitempty"`
	Movimientos      []MovimientoResponse `json:"movimientos,omitempty"`
}

// CierreCajaResponse is the archived arqueo record.
type CierreCajaResponse struct {
	SesionID       string          `json:"sesion_id"`
	MontoInicial   decimal.Decimal `json:"monto_inicial"`
	VentasEfectivo decimal.Decimal `json:"ventas_efectivo"`
	VentasDigital  decimal.Decimal `json:"ventas_digital"`
	TotalIngresos  decimal.Decimal `json:"total_ingresos"`
	TotalEgresos   decimal.Decimal `json:"total_egresos"`
	MontoEsperado  decimal.Decimal `json:"monto_esperado"`
	MontoContado   decimal.Decimal `json:"monto_contado"`
	Diferencia     decimal.Decimal `json:"diferencia"`
	ClosedAt       string          `json:"closed_at"`
}
