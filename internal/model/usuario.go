package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario is the operator account. Administration of users lives in the
// back office; the engine only needs identity and role for the JWT.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	// Rol: "vendedor" | "administrador"
	Rol       string `gorm:"type:varchar(20);not null"`
	Activo    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
}
