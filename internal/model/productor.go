package model

import (
	"time"

	"github.com/google/uuid"
)

// Productor is an authenticated user that owns batches.
type Productor struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre       string    `gorm:"not null"`
	Apellido     string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides GORM's default pluralization.
func (Productor) TableName() string { return "productores" }

// NombreCompleto concatenates first and last name for responses and mails.
func (p *Productor) NombreCompleto() string {
	return p.Nombre + " " + p.Apellido
}
