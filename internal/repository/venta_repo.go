package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gabrielpiriz/hackathon-nova-backend/internal/dto"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/model"
)

type VentaRepository interface {
	CreateTx(tx *gorm.DB, v *model.Venta) error
	UpdateTx(tx *gorm.DB, v *model.Venta) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Venta, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)
	ListByLote(ctx context.Context, loteID uuid.UUID) ([]model.Venta, error)
	Estadisticas(ctx context.Context, filter dto.EstadisticasFilter) (*dto.EstadisticasVentas, error)
	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) CreateTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Create(v).Error
}

func (r *ventaRepo) UpdateTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Save(v).Error
}

func (r *ventaRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Venta{}, "id = ?", id).Error
}

func (r *ventaRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	if err := tx.First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Lote.TipoAnimal").Preload("Lote.Productor").
		First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Venta{})

	if filter.LoteID != "" {
		q = q.Where("lote_id = ?", filter.LoteID)
	}
	if filter.CompradorNombre != "" {
		q = q.Where("comprador_nombre ILIKE ?", "%"+filter.CompradorNombre+"%")
	}
	if filter.MetodoPago != "" {
		q = q.Where("metodo_pago = ?", filter.MetodoPago)
	}
	if filter.FechaDesde != "" {
		q = q.Where("DATE(fecha_venta) >= ?", filter.FechaDesde)
	}
	if filter.FechaHasta != "" {
		q = q.Where("DATE(fecha_venta) <= ?", filter.FechaHasta)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := filter.SortBy
	switch sortBy {
	case "sale_date", "fecha_venta":
		sortBy = "fecha_venta"
	case "created_at", "cantidad_vendida", "monto_total_ars", "monto_total_usd":
	default:
		sortBy = "fecha_venta"
	}
	dir := "DESC"
	if filter.SortOrder == "asc" {
		dir = "ASC"
	}

	offset := (filter.Page - 1) * filter.PerPage
	err := q.Preload("Lote.TipoAnimal").Preload("Lote.Productor").
		Order(sortBy + " " + dir).
		Offset(offset).Limit(filter.PerPage).
		Find(&ventas).Error
	return ventas, total, err
}

func (r *ventaRepo) ListByLote(ctx context.Context, loteID uuid.UUID) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).
		Where("lote_id = ?", loteID).
		Order("fecha_venta DESC").
		Find(&ventas).Error
	return ventas, err
}

// filtered applies the shared statistics filters to a base query.
func (r *ventaRepo) filtered(ctx context.Context, filter dto.EstadisticasFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Venta{})
	if filter.LoteID != "" {
		q = q.Where("lote_id = ?", filter.LoteID)
	}
	if filter.ProductorID != "" {
		q = q.Where("lote_id IN (?)",
			r.db.Model(&model.Lote{}).Select("id").Where("productor_id = ?", filter.ProductorID))
	}
	if filter.FechaDesde != "" {
		q = q.Where("DATE(fecha_venta) >= ?", filter.FechaDesde)
	}
	if filter.FechaHasta != "" {
		q = q.Where("DATE(fecha_venta) <= ?", filter.FechaHasta)
	}
	return q
}

func (r *ventaRepo) Estadisticas(ctx context.Context, filter dto.EstadisticasFilter) (*dto.EstadisticasVentas, error) {
	stats := &dto.EstadisticasVentas{
		PorMetodoPago: []dto.VentasPorMetodoPago{},
		PorMes:        []dto.VentasPorMes{},
	}

	// Aggregate totals in one round trip; SUM/AVG return NULL on empty sets.
	var totals struct {
		TotalVentas       int64
		TotalCantidad     *int64
		TotalMontoARS     *decimal.Decimal
		TotalMontoUSD     *decimal.Decimal
		PrecioPromedioARS *decimal.Decimal
		PrecioPromedioUSD *decimal.Decimal
	}
	err := r.filtered(ctx, filter).
		Select(`COUNT(*) AS total_ventas,
			SUM(cantidad_vendida) AS total_cantidad,
			SUM(monto_total_ars) AS total_monto_ars,
			SUM(monto_total_usd) AS total_monto_usd,
			AVG(precio_unitario_ars) AS precio_promedio_ars,
			AVG(precio_unitario_usd) AS precio_promedio_usd`).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	stats.TotalVentas = totals.TotalVentas
	if totals.TotalCantidad != nil {
		stats.TotalCantidad = *totals.TotalCantidad
	}
	if totals.TotalMontoARS != nil {
		stats.TotalMontoARS = *totals.TotalMontoARS
	}
	if totals.TotalMontoUSD != nil {
		stats.TotalMontoUSD = *totals.TotalMontoUSD
	}
	if totals.PrecioPromedioARS != nil {
		stats.PrecioPromedioARS = totals.PrecioPromedioARS.Round(2)
	}
	if totals.PrecioPromedioUSD != nil {
		stats.PrecioPromedioUSD = totals.PrecioPromedioUSD.Round(2)
	}

	// Breakdown by payment method.
	err = r.filtered(ctx, filter).
		Select("metodo_pago, COUNT(*) AS count, SUM(monto_total_ars) AS total_ars").
		Group("metodo_pago").
		Scan(&stats.PorMetodoPago).Error
	if err != nil {
		return nil, err
	}

	// Breakdown by month, last 12 months.
	desde := time.Now().AddDate(0, -12, 0)
	err = r.filtered(ctx, filter).
		Select(`EXTRACT(YEAR FROM fecha_venta)::int AS anio,
			EXTRACT(MONTH FROM fecha_venta)::int AS mes,
			COUNT(*) AS count,
			SUM(monto_total_ars) AS total_ars,
			SUM(cantidad_vendida) AS cantidad`).
		Where("fecha_venta >= ?", desde).
		Group("anio, mes").
		Order("anio DESC, mes DESC").
		Scan(&stats.PorMes).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}
