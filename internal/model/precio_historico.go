package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Fuentes de una observación de precio.
const (
	FuenteManual  = "manual"
	FuenteAdvisor = "advisor"
)

// PrecioHistorico registra una observación de precio de un lote en una fecha.
// Es el insumo del análisis de precios y de la restricción de eliminación de
// lotes reservados con actividad reciente.
type PrecioHistorico struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LoteID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_precios_lote_fecha,priority:1"`
	Fecha     time.Time       `gorm:"type:date;not null;index:idx_precios_lote_fecha,priority:2"`
	PrecioARS decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioUSD decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Fuente    string          `gorm:"not null;default:'manual'"` // manual | advisor
	CreatedAt time.Time

	Lote *Lote `gorm:"foreignKey:LoteID"`
}

// TableName overrides GORM's default pluralization.
func (PrecioHistorico) TableName() string { return "precio_historicos" }
