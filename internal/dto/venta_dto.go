package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// VentaInternaRequest registers an operator-priced sale (employee
// purchase, cost-price clearance). The admin sets the amount actually
// charged; list prices are kept per item as reference only.
type VentaInternaRequest struct {
	Items []VentaInternaItem `json:"items"  validate:"required,min=1,dive"`
	Monto decimal.Decimal    `json:"monto"  validate:"required,gt=0"`
	Pago  string             `json:"pago"   validate:"required,oneof=EFECTIVO GIRO DEBITO CREDITO TRANSFERENCIA"`
}

type VentaInternaItem struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type VentaFilter struct {
	Fecha string `form:"fecha"` // YYYY-MM-DD, default today
	Tipo  string `form:"tipo"`  // pos | interna | all
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VentaItemResponse struct {
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	EsPromo        bool            `json:"es_promo"`
	ExentoIVA      bool            `json:"exento_iva"`
	Total          decimal.Decimal `json:"total"`
}

type VentaResponse struct {
	ID           string              `json:"id"`
	Folio        int                 `json:"folio"`
	Vendedor     string              `json:"vendedor"`
	TotalAfecto  decimal.Decimal     `json:"total_afecto"`
	TotalExento  decimal.Decimal     `json:"total_exento"`
	TotalGeneral decimal.Decimal     `json:"total_general"`
	Tipo         string              `json:"tipo"`
	Boleteada    bool                `json:"boleteada"`
	Items        []VentaItemResponse `json:"items"`
	Pagos        []PagoResponse      `json:"pagos"`
	CreatedAt    string              `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
