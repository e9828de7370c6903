package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PagoEfectivo      = "cash"
	PagoTransferencia = "transfer"
	PagoCheque        = "check"
	PagoCredito       = "credit"
)

// Venta is a transaction consuming part or all of a batch's quantity.
// A sale never exists without its batch; deletion of the batch cascades here.
type Venta struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LoteID             uuid.UUID       `gorm:"type:uuid;not null;index:idx_ventas_lote_fecha,priority:1"`
	CantidadVendida    int             `gorm:"not null"`
	PrecioUnitarioARS  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioUnitarioUSD  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MontoTotalARS      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	MontoTotalUSD      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	FechaVenta         time.Time       `gorm:"not null;index;index:idx_ventas_lote_fecha,priority:2"`
	CompradorNombre    string          `gorm:"not null"`
	CompradorContacto  *string
	MetodoPago         string `gorm:"not null;default:'transfer'"`
	Notas              *string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Lote *Lote `gorm:"foreignKey:LoteID"`
}
