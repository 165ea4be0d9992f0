package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SesionCaja is the cash-drawer shift. Estado: "abierta" | "cerrada".
// At most one session is abierta at any time; the store runs one register.
// Closing totals are filled in by the arqueo and are nil while open.
type SesionCaja struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID    uuid.UUID       `gorm:"type:uuid;not null"`
	MontoInicial decimal.Decimal `gorm:"type:decimal(12,0);not null"`
	Estado       string          `gorm:"type:varchar(10);not null;default:'abierta';index"`
	OpenedAt     time.Time
	ClosedAt     *time.Time

	// Arqueo — written once on close, never updated afterwards.
	VentasEfectivo *decimal.Decimal `gorm:"type:decimal(12,0)"`
	VentasDigital  *decimal.Decimal `gorm:"type:decimal(12,0)"`
	TotalIngresos  *decimal.Decimal `gorm:"type:decimal(12,0)"`
	TotalEgresos   *decimal.Decimal `gorm:"type:decimal(12,0)"`
	MontoEsperado  *decimal.Decimal `gorm:"type:decimal(12,0)"`
	MontoContado   *decimal.Decimal `gorm:"type:decimal(12,0)"`
	// Diferencia = contado - esperado. Positive: sobra, negative: falta.
	Diferencia *decimal.Decimal `gorm:"type:decimal(12,0)"`

	Movimientos []MovimientoCaja `gorm:"foreignKey:SesionCajaID"`
}

// MovimientoCaja is an immutable entry in the drawer ledger.
// Tipo: "venta" | "ingreso" | "egreso". Montos are always positive; the
// sign is implied by the tipo when deriving expected cash.
// Movements are never modified or deleted.
type MovimientoCaja struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SesionCajaID uuid.UUID `gorm:"type:uuid;index;not null"`
	Tipo         string    `gorm:"type:varchar(10);not null"`
	// Metodo is set on venta movements (one per payment instrument).
	Metodo    *string         `gorm:"type:varchar(20)"`
	Monto     decimal.Decimal `gorm:"type:decimal(12,0);not null"`
	Motivo    string          `gorm:"not null"`
	UsuarioID uuid.UUID       `gorm:"type:uuid;not null"`
	// VentaID links sale movements back to the originating Venta.
	VentaID   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
}
