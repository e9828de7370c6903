package dto

import "github.com/shopspring/decimal"

// ─── Advisor wire types ──────────────────────────────────────────────────────
// Payload and response of the external price-analysis service.

type PuntoPrecio struct {
	Fecha  string  `json:"date"` // YYYY-MM-DD
	Precio float64 `json:"price"`
}

type HistorialLote struct {
	LoteID     string        `json:"batch_id"`
	TipoAnimal string        `json:"animal_type"`
	Historial  []PuntoPrecio `json:"price_history"`
}

type AnalisisPayload struct {
	Historiales []HistorialLote `json:"price_histories"`
}

type PrecioSugerido struct {
	LoteID          string          `json:"batch_id"`
	PrecioSugerido  decimal.Decimal `json:"suggested_price"`
	Confianza       float64         `json:"confidence,omitempty"`
}

type AnalisisAdvisorResponse struct {
	PreciosSugeridos []PrecioSugerido `json:"suggested_prices"`
}

// ─── API response ────────────────────────────────────────────────────────────

type AnalisisResponse struct {
	PreciosSugeridos  []PrecioSugerido `json:"suggested_prices"`
	LotesAnalizados   int              `json:"batches_analyzed"`
	LotesActualizados int              `json:"batches_updated"`
}
