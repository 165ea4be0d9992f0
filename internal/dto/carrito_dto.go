package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type EscanearRequest struct {
	Codigo string `json:"codigo" validate:"required"`
}

type CambiarCantidadRequest struct {
	Cantidad int `json:"cantidad" validate:"required,min=1"`
}

type AgregarPagoRequest struct {
	Metodo string          `json:"metodo" validate:"required,oneof=EFECTIVO GIRO DEBITO CREDITO TRANSFERENCIA"`
	Monto  decimal.Decimal `json:"monto"  validate:"required,gt=0"`
}

type FinalizarRequest struct {
	// Boletear marks the sale as declared. Stored as-is.
	Boletear bool `json:"boletear"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LineaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Codigo         string          `json:"codigo"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioLista    decimal.Decimal `json:"precio_lista"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Total          decimal.Decimal `json:"total"`
	ExentoIVA      bool            `json:"exento_iva"`
	EsPromo        bool            `json:"es_promo"`
	Mayorista      bool            `json:"mayorista"`
}

type PagoResponse struct {
	Metodo string          `json:"metodo"`
	Monto  decimal.Decimal `json:"monto"`
}

// CarritoResponse is the full checkout view: the draft cart, its derived
// totals, and the payment session when one is open. SaldoNoEfectivo is
// the headroom left for electronic payments ("usar total" on the tablet).
type CarritoResponse struct {
	Lineas       []LineaResponse `json:"lineas"`
	TotalAfecto  decimal.Decimal `json:"total_afecto"`
	TotalExento  decimal.Decimal `json:"total_exento"`
	TotalGeneral decimal.Decimal `json:"total_general"`

	Pagos           []PagoResponse  `json:"pagos"`
	TotalPagado     decimal.Decimal `json:"total_pagado"`
	SaldoRestante   decimal.Decimal `json:"saldo_restante"`
	SaldoNoEfectivo decimal.Decimal `json:"saldo_no_efectivo"`
	Vuelto          decimal.Decimal `json:"vuelto"`
}

type ComboEstadoResponse struct {
	// Estado: "esperando_licor" | "esperando_bebida" | "completo"
	Estado string  `json:"estado"`
	Licor  *string `json:"licor,omitempty"`
}

type FinalizarResponse struct {
	VentaID  string          `json:"venta_id"`
	Folio    int             `json:"folio"`
	Total    decimal.Decimal `json:"total"`
	Vuelto   decimal.Decimal `json:"vuelto"`
	Ticket   string          `json:"ticket"`
	PrintURL string          `json:"print_url"`
}
