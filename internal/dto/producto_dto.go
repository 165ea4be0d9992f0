package dto

import "github.com/shopspring/decimal"

// ConsultaPrecioResponse is the public price-check payload, served from
// the Redis cache when warm.
type ConsultaPrecioResponse struct {
	Codigo    string          `json:"codigo"`
	Nombre    string          `json:"nombre"`
	Precio    decimal.Decimal `json:"precio"`
	ExentoIVA bool            `json:"exento_iva"`
}
