package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de un lote. "reserved" solo se asigna al crear el lote —
// no existe una transición hacia reservado desde disponible.
const (
	EstadoDisponible = "available"
	EstadoVendido    = "sold"
	EstadoReservado  = "reserved"
)

// Lote represents a sellable cohort of animals of one type, owned by a producer.
// Remaining stock is never stored: it is always recomputed from the sale rows.
type Lote struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductorID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_lotes_productor_estado,priority:1"`
	TipoAnimalID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_lotes_tipo_estado,priority:1"`
	Cantidad          int             `gorm:"not null"`
	EdadMeses         int             `gorm:"not null"`
	PesoPromedioKg    decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	PrecioSugeridoARS decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioSugeridoUSD decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado            string          `gorm:"not null;default:'available';index:idx_lotes_productor_estado,priority:2;index:idx_lotes_tipo_estado,priority:2"`
	Notas             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Productor  *Productor        `gorm:"foreignKey:ProductorID"`
	TipoAnimal *TipoAnimal       `gorm:"foreignKey:TipoAnimalID"`
	Ventas     []Venta           `gorm:"foreignKey:LoteID;constraint:OnDelete:CASCADE"`
	Precios    []PrecioHistorico `gorm:"foreignKey:LoteID;constraint:OnDelete:CASCADE"`
}

// Codigo returns the display code ("Lot 001"-style, derived from the short uuid).
func (l *Lote) Codigo() string {
	s := l.ID.String()
	return "Lot " + s[:8]
}
