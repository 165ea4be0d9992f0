package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is the catalog snapshot the engine works with. The catalog
// itself is administered elsewhere; this service only reads it.
type Producto struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Codigo string    `gorm:"uniqueIndex;not null" json:"codigo"`
	Nombre string    `gorm:"index;not null" json:"nombre"`
	// Precios en pesos chilenos — sin subunidad, siempre enteros.
	Precio    decimal.Decimal `gorm:"type:decimal(12,0);not null" json:"precio"`
	ExentoIVA bool            `gorm:"not null;default:false" json:"exento_iva"`
	// CategoriaID references Categoria; the combo flow keys off it.
	CategoriaID int `gorm:"index;not null" json:"categoria_id"`
	// Capacidad in mL, only meaningful for bottled drinks.
	Capacidad *int `json:"capacidad,omitempty"`
	// Wholesale pricing: buying CantidadMayorista or more units of a
	// non-promo line switches the unit price to PrecioMayorista.
	CantidadMayorista int              `gorm:"not null;default:0" json:"cantidad_mayorista"`
	PrecioMayorista   *decimal.Decimal `gorm:"type:decimal(12,0)" json:"precio_mayorista,omitempty"`
	Activo            bool             `gorm:"not null;default:true" json:"activo"`
	CreatedAt         time.Time        `json:"-"`
	UpdatedAt         time.Time        `json:"-"`
}

type Categoria struct {
	ID     int    `gorm:"primaryKey"`
	Nombre string `gorm:"uniqueIndex;not null"`
}
