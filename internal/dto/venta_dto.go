package dto

import "github.com/shopspring/decimal"

// ─── Filter ──────────────────────────────────────────────────────────────────

// VentaFilter is bound from the query string of GET /api/sales.
type VentaFilter struct {
	LoteID          string `form:"batch_id"       validate:"omitempty,uuid"`
	CompradorNombre string `form:"buyer_name"`
	MetodoPago      string `form:"payment_method" validate:"omitempty,oneof=cash transfer check credit"`
	FechaDesde      string `form:"date_from"      validate:"omitempty,datetime=2006-01-02"`
	FechaHasta      string `form:"date_to"        validate:"omitempty,datetime=2006-01-02"`
	SortBy          string `form:"sort_by,default=sale_date"`
	SortOrder       string `form:"sort_order,default=desc" validate:"omitempty,oneof=asc desc"`
	Page            int    `form:"page,default=1"      validate:"min=1"`
	PerPage         int    `form:"per_page,default=15" validate:"min=1"`
}

// EstadisticasFilter narrows GET /api/sales/statistics.
type EstadisticasFilter struct {
	LoteID      string `form:"batch_id"    validate:"omitempty,uuid"`
	ProductorID string `form:"producer_id" validate:"omitempty,uuid"`
	FechaDesde  string `form:"date_from"   validate:"omitempty,datetime=2006-01-02"`
	FechaHasta  string `form:"date_to"     validate:"omitempty,datetime=2006-01-02"`
}

// ─── Requests ────────────────────────────────────────────────────────────────

type CrearVentaRequest struct {
	LoteID            string          `json:"batch_id"          validate:"required,uuid"`
	CantidadVendida   int             `json:"quantity_sold"     validate:"required,min=1"`
	PrecioUnitarioARS decimal.Decimal `json:"unit_price_ars"    validate:"required"`
	PrecioUnitarioUSD decimal.Decimal `json:"unit_price_usd"    validate:"required"`
	MontoTotalARS     decimal.Decimal `json:"total_amount_ars"  validate:"required"`
	MontoTotalUSD     decimal.Decimal `json:"total_amount_usd"  validate:"required"`
	FechaVenta        string          `json:"sale_date"         validate:"required,datetime=2006-01-02"`
	CompradorNombre   string          `json:"buyer_name"        validate:"required,max=255"`
	CompradorContacto *string         `json:"buyer_contact"     validate:"omitempty,max=255"`
	MetodoPago        string          `json:"payment_method"    validate:"omitempty,oneof=cash transfer check credit"`
	Notas             *string         `json:"notes"             validate:"omitempty,max=1000"`
}

// ActualizarVentaRequest uses pointers: only the present fields change.
type ActualizarVentaRequest struct {
	LoteID            *string          `json:"batch_id"         validate:"omitempty,uuid"`
	CantidadVendida   *int             `json:"quantity_sold"    validate:"omitempty,min=1"`
	PrecioUnitarioARS *decimal.Decimal `json:"unit_price_ars"`
	PrecioUnitarioUSD *decimal.Decimal `json:"unit_price_usd"`
	MontoTotalARS     *decimal.Decimal `json:"total_amount_ars"`
	MontoTotalUSD     *decimal.Decimal `json:"total_amount_usd"`
	FechaVenta        *string          `json:"sale_date"        validate:"omitempty,datetime=2006-01-02"`
	CompradorNombre   *string          `json:"buyer_name"       validate:"omitempty,max=255"`
	CompradorContacto *string          `json:"buyer_contact"    validate:"omitempty,max=255"`
	MetodoPago        *string          `json:"payment_method"   validate:"omitempty,oneof=cash transfer check credit"`
	Notas             *string          `json:"notes"            validate:"omitempty,max=1000"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

// VentaResponse attaches batch/producer/animal-type context to the sale.
type VentaResponse struct {
	ID                string          `json:"id"`
	LoteID            string          `json:"batch_id"`
	CantidadVendida   int             `json:"quantity_sold"`
	PrecioUnitarioARS decimal.Decimal `json:"unit_price_ars"`
	PrecioUnitarioUSD decimal.Decimal `json:"unit_price_usd"`
	MontoTotalARS     decimal.Decimal `json:"total_amount_ars"`
	MontoTotalUSD     decimal.Decimal `json:"total_amount_usd"`
	FechaVenta        string          `json:"sale_date"`
	CompradorNombre   string          `json:"buyer_name"`
	CompradorContacto *string         `json:"buyer_contact"`
	MetodoPago        string          `json:"payment_method"`
	Notas             *string         `json:"notes"`
	CreatedAt         string          `json:"created_at"`

	Lote *VentaLoteContext `json:"batch,omitempty"`
}

// VentaLoteContext is the batch summary embedded in sale responses.
type VentaLoteContext struct {
	ID         string           `json:"id"`
	Codigo     string           `json:"lote_code"`
	TipoAnimal string           `json:"animal_type"`
	Productor  ProductorResumen `json:"producer"`
}

type VentaListResponse struct {
	Data       []VentaResponse `json:"data"`
	Pagination Paginacion      `json:"pagination"`
}

// ─── Statistics ──────────────────────────────────────────────────────────────

type VentasPorMetodoPago struct {
	MetodoPago string          `json:"payment_method"`
	Count      int64           `json:"count"`
	TotalARS   decimal.Decimal `json:"total_ars"`
}

type VentasPorMes struct {
	Anio     int             `json:"year"`
	Mes      int             `json:"month"`
	Count    int64           `json:"count"`
	TotalARS decimal.Decimal `json:"total_ars"`
	Cantidad int64           `json:"quantity"`
}

type EstadisticasVentas struct {
	TotalVentas         int64                 `json:"total_sales"`
	TotalCantidad       int64                 `json:"total_quantity_sold"`
	TotalMontoARS       decimal.Decimal       `json:"total_amount_ars"`
	TotalMontoUSD       decimal.Decimal       `json:"total_amount_usd"`
	PrecioPromedioARS   decimal.Decimal       `json:"average_price_ars"`
	PrecioPromedioUSD   decimal.Decimal       `json:"average_price_usd"`
	PorMetodoPago       []VentasPorMetodoPago `json:"sales_by_payment_method"`
	PorMes              []VentasPorMes        `json:"sales_by_month"`
}
