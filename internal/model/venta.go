package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta is the durable snapshot of a finalized checkout. Line items carry
// the resolved unit price at sale time so later catalog edits never change
// what was charged.
type Venta struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Folio        int             `gorm:"uniqueIndex;not null"`
	SesionCajaID *uuid.UUID      `gorm:"type:uuid;index"`
	UsuarioID    uuid.UUID       `gorm:"type:uuid;not null"`
	TotalAfecto  decimal.Decimal `gorm:"type:decimal(12,0);not null"`
	TotalExento  decimal.Decimal `gorm:"type:decimal(12,0);not null"`
	TotalGeneral decimal.Decimal `gorm:"type:decimal(12,0);not null"`
	// Tipo: "pos" | "interna"
	Tipo string `gorm:"type:varchar(10);not null;default:'pos'"`
	// Boleteada marks the sale as declared/receipted. Opaque flag here;
	// fiscal handling belongs to an external system.
	Boleteada bool `gorm:"not null;default:false"`
	CreatedAt time.Time

	Items   []VentaItem `gorm:"foreignKey:VentaID"`
	Pagos   []VentaPago `gorm:"foreignKey:VentaID"`
	Usuario *Usuario    `gorm:"foreignKey:UsuarioID"`
}

type VentaItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID    uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null"`
	// Nombre is snapshotted for the ticket; gift lines have no catalog row.
	Nombre         string          `gorm:"not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,0);not null"`
	EsPromo        bool            `gorm:"not null;default:false"`
	ExentoIVA      bool            `gorm:"not null;default:false"`
	Total          decimal.Decimal `gorm:"type:decimal(12,0);not null"`
}

type VentaPago struct {
	ID      uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Metodo  string          `gorm:"type:varchar(20);not null"`
	Monto   decimal.Decimal `gorm:"type:decimal(12,0);not null"`
}
