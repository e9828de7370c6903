package model

import (
	"time"

	"github.com/google/uuid"
)

// TipoAnimal is the read-mostly lookup of animal kinds (vacuno, ovino, ...).
// Seeded by cmd/seed.
type TipoAnimal struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Descripcion string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's default pluralization (tipo_animals → tipos_animal).
func (TipoAnimal) TableName() string { return "tipos_animal" }
