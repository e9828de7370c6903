// Package stock is the ledger of batch availability. Every function here is a
// deterministic read over an already-loaded batch (with its sales and price
// history preloaded): nothing mutates, nothing touches the database. Callers
// own the transaction boundary around these checks.
package stock

import (
	"time"

	"github.com/google/uuid"

	"github.com/gabrielpiriz/hackathon-nova-backend/internal/apierror"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/model"
)

// ventanaActividadReciente is the lookback for the reserved-batch deletion
// restriction.
const ventanaActividadReciente = 7 * 24 * time.Hour

// Restante returns quantity minus everything already sold. By invariant it is
// never negative; a negative result means the data is corrupt and the caller
// must treat it as fatal.
func Restante(lote *model.Lote) int {
	return lote.Cantidad - TotalVendido(lote)
}

// TotalVendido sums quantity_sold across the batch's sales.
func TotalVendido(lote *model.Lote) int {
	total := 0
	for _, v := range lote.Ventas {
		total += v.CantidadVendida
	}
	return total
}

// PuedeVender reports whether the batch can absorb a new sale of cantidad units.
func PuedeVender(lote *model.Lote, cantidad int) bool {
	return cantidad <= Restante(lote)
}

// PuedeVenderEdicion reports whether a sale edit is legal: remaining stock is
// computed excluding the sale being edited, so its prior contribution is not
// double-counted.
func PuedeVenderEdicion(lote *model.Lote, ventaID uuid.UUID, nuevaCantidad int) bool {
	restante := lote.Cantidad
	for _, v := range lote.Ventas {
		if v.ID == ventaID {
			continue
		}
		restante -= v.CantidadVendida
	}
	return nuevaCantidad <= restante
}

// EstaVendido is the authoritative sold-out predicate: explicit status OR
// exhausted arithmetic. Status and remaining quantity can disagree; callers
// must never decide on raw status alone.
func EstaVendido(lote *model.Lote) bool {
	return lote.Estado == model.EstadoVendido || Restante(lote) <= 0
}

// ValidarEliminacion checks deletion eligibility and reports EVERY violated
// rule, so the caller can show all blocking reasons at once.
//
// A batch is deletable iff it has zero sales, is not sold, and — when
// reserved — has no price observation dated within the last 7 days.
func ValidarEliminacion(lote *model.Lote, ahora time.Time) (bool, []apierror.Restriccion) {
	var restricciones []apierror.Restriccion

	if n := len(lote.Ventas); n > 0 {
		restricciones = append(restricciones, apierror.Restriccion{
			Type:      "sales_exist",
			Message:   "El lote tiene ventas registradas",
			Count:     n,
			TotalSold: TotalVendido(lote),
		})
	}

	if lote.Estado == model.EstadoVendido {
		restricciones = append(restricciones, apierror.Restriccion{
			Type:    "status_sold",
			Message: "El lote está marcado como vendido",
			Status:  lote.Estado,
		})
	}

	if lote.Estado == model.EstadoReservado {
		recientes := 0
		limite := ahora.Add(-ventanaActividadReciente)
		for _, p := range lote.Precios {
			if !p.Fecha.Before(limite) {
				recientes++
			}
		}
		if recientes > 0 {
			restricciones = append(restricciones, apierror.Restriccion{
				Type:    "reserved_with_recent_activity",
				Message: "El lote está reservado con actividad reciente",
				Count:   recientes,
			})
		}
	}

	return len(restricciones) == 0, restricciones
}
