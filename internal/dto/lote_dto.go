package dto

import "github.com/shopspring/decimal"

// ─── Filter ──────────────────────────────────────────────────────────────────

// LoteFilter is bound from the query string of GET /api/batches.
type LoteFilter struct {
	TipoAnimalID  string `form:"animal_type_id" validate:"omitempty,uuid"`
	Estado        string `form:"status"         validate:"omitempty,oneof=available sold reserved"`
	ProductorID   string `form:"producer_id"    validate:"omitempty,uuid"`
	Search        string `form:"search"`
	SortBy        string `form:"sort_by,default=created_at"`
	SortDirection string `form:"sort_direction,default=desc" validate:"omitempty,oneof=asc desc"`
	Page          int    `form:"page,default=1"      validate:"min=1"`
	PerPage       int    `form:"per_page,default=15" validate:"min=1"`
}

// ─── Requests ────────────────────────────────────────────────────────────────

type CrearLoteRequest struct {
	TipoAnimalID      string          `json:"animal_type_id"      validate:"required,uuid"`
	Cantidad          int             `json:"quantity"            validate:"required,min=1,max=10000"`
	EdadMeses         int             `json:"age_months"          validate:"required,min=1,max=120"`
	PesoPromedioKg    decimal.Decimal `json:"average_weight_kg"   validate:"required"`
	PrecioSugeridoARS decimal.Decimal `json:"suggested_price_ars" validate:"required"`
	PrecioSugeridoUSD decimal.Decimal `json:"suggested_price_usd" validate:"required"`
	// Estado admits the creation-time alternative "reserved"; empty = available.
	Estado string  `json:"status" validate:"omitempty,oneof=available reserved"`
	Notas  *string `json:"notes"  validate:"omitempty,max=1000"`
}

type CrearPrecioHistoricoRequest struct {
	Fecha     string          `json:"date"      validate:"required,datetime=2006-01-02"`
	PrecioARS decimal.Decimal `json:"price_ars" validate:"required"`
	PrecioUSD decimal.Decimal `json:"price_usd" validate:"required"`
	Fuente    string          `json:"source"    validate:"omitempty,oneof=manual advisor"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type ProductorResumen struct {
	ID     string `json:"id"`
	Nombre string `json:"name"`
	Email  string `json:"email"`
}

type TipoAnimalResponse struct {
	ID          string `json:"id"`
	Nombre      string `json:"name"`
	Descripcion string `json:"description"`
}

// LoteResponse is the batch representation shared by create/list/detail.
type LoteResponse struct {
	ID                string             `json:"id"`
	Codigo            string             `json:"lote_code"`
	Tipo              string             `json:"tipo"`
	EdadPromedio      string             `json:"edad_promedio"`
	PesoPromedio      string             `json:"peso_promedio"`
	PrecioARS         decimal.Decimal    `json:"suggested_price_ars"`
	PrecioUSD         decimal.Decimal    `json:"suggested_price_usd"`
	Vendido           bool               `json:"vendido"`
	VendidoLabel      string             `json:"vendido_label"`
	Estado            string             `json:"status"`
	EstadoLabel       string             `json:"status_label"`
	Cantidad          int                `json:"quantity"`
	CantidadRestante  int                `json:"remaining_quantity"`
	TotalVendido      int                `json:"total_sold"`
	VentasCount       int                `json:"sales_count"`
	Productor         ProductorResumen   `json:"producer"`
	TipoAnimal        TipoAnimalResponse `json:"animal_type"`
	Notas             *string            `json:"notes"`
	CreatedAt         string             `json:"created_at"`
	CreatedAtDisplay  string             `json:"created_at_formatted"`
	UpdatedAt         string             `json:"updated_at"`
	PuedeEditar       bool               `json:"can_edit"`
	PuedeEliminar     bool               `json:"can_delete"`
	PuedeVender       bool               `json:"can_sell"`
}

type Paginacion struct {
	CurrentPage  int   `json:"current_page"`
	LastPage     int   `json:"last_page"`
	PerPage      int   `json:"per_page"`
	Total        int64 `json:"total"`
	From         int   `json:"from"`
	To           int   `json:"to"`
	HasMorePages bool  `json:"has_more_pages"`
}

// LoteStatistics is the aggregate block attached to the batch listing.
type LoteStatistics struct {
	TotalLotes      int64 `json:"total_batches"`
	LotesDisponible int64 `json:"available_batches"`
	LotesVendidos   int64 `json:"sold_batches"`
	TotalAnimales   int64 `json:"total_animals"`
}

type LoteListResponse struct {
	Data       []LoteResponse `json:"data"`
	Pagination Paginacion     `json:"pagination"`
	Statistics LoteStatistics `json:"statistics"`
}

// MarcarVendidoResponse reports the status transition.
type MarcarVendidoResponse struct {
	LoteID         string `json:"batch_id"`
	EstadoAnterior string `json:"previous_status"`
	EstadoNuevo    string `json:"new_status"`
	UpdatedAt      string `json:"updated_at"`
}

// EliminarLoteResponse is the deleted-batch summary.
type EliminarLoteResponse struct {
	LoteID     string `json:"deleted_batch_id"`
	DeletedAt  string `json:"deleted_at"`
	Codigo     string `json:"lote_code"`
	TipoAnimal string `json:"animal_type"`
	Cantidad   int    `json:"quantity"`
}

type PrecioHistoricoResponse struct {
	ID        string          `json:"id"`
	LoteID    string          `json:"batch_id"`
	Fecha     string          `json:"date"`
	PrecioARS decimal.Decimal `json:"price_ars"`
	PrecioUSD decimal.Decimal `json:"price_usd"`
	Fuente    string          `json:"source"`
}
