package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gabrielpiriz/hackathon-nova-backend/internal/dto"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/model"
)

// LoteRepository defines the data access contract for batches.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type LoteRepository interface {
	Create(ctx context.Context, l *model.Lote) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Lote, error)
	List(ctx context.Context, filter dto.LoteFilter) ([]model.Lote, int64, error)
	ListByProductor(ctx context.Context, productorID uuid.UUID) ([]model.Lote, error)
	FindAllConPrecios(ctx context.Context) ([]model.Lote, error)
	Statistics(ctx context.Context) (dto.LoteStatistics, error)

	// Used inside transactions — callers must pass the tx instance.
	// FindByIDForUpdateTx takes a FOR UPDATE row lock on the batch: the stock
	// check and the write that depends on it must see a frozen batch row.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Lote, error)
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error
	UpdatePreciosSugeridosTx(tx *gorm.DB, id uuid.UUID, usd, ars decimal.Decimal) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type loteRepo struct{ db *gorm.DB }

func NewLoteRepository(db *gorm.DB) LoteRepository { return &loteRepo{db: db} }

func (r *loteRepo) DB() *gorm.DB { return r.db }

func (r *loteRepo) Create(ctx context.Context, l *model.Lote) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *loteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Lote, error) {
	var l model.Lote
	err := r.db.WithContext(ctx).
		Preload("Productor").Preload("TipoAnimal").Preload("Ventas").Preload("Precios").
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *loteRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Lote, error) {
	var l model.Lote
	// The lock covers the batch row only; the sales are re-read inside the
	// same transaction, after the lock, so no concurrent writer can slip a
	// sale in between the check and the insert.
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	if err := tx.Where("lote_id = ?", id).Find(&l.Ventas).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("lote_id = ?", id).Find(&l.Precios).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *loteRepo) List(ctx context.Context, filter dto.LoteFilter) ([]model.Lote, int64, error) {
	var lotes []model.Lote
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Lote{})

	if filter.TipoAnimalID != "" {
		q = q.Where("tipo_animal_id = ?", filter.TipoAnimalID)
	}
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.ProductorID != "" {
		q = q.Where("productor_id = ?", filter.ProductorID)
	}
	if filter.Search != "" {
		q = q.Where("notas ILIKE ?", "%"+filter.Search+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sort field whitelist — anything else falls back to created_at.
	sortBy := filter.SortBy
	switch sortBy {
	case "id", "created_at", "updated_at", "cantidad", "edad_meses",
		"peso_promedio_kg", "precio_sugerido_ars", "precio_sugerido_usd":
	default:
		sortBy = "created_at"
	}
	dir := "DESC"
	if filter.SortDirection == "asc" {
		dir = "ASC"
	}

	offset := (filter.Page - 1) * filter.PerPage
	err := q.Preload("Productor").Preload("TipoAnimal").Preload("Ventas").
		Order(sortBy + " " + dir).
		Offset(offset).Limit(filter.PerPage).
		Find(&lotes).Error
	return lotes, total, err
}

func (r *loteRepo) ListByProductor(ctx context.Context, productorID uuid.UUID) ([]model.Lote, error) {
	var lotes []model.Lote
	err := r.db.WithContext(ctx).
		Preload("Productor").Preload("TipoAnimal").Preload("Ventas").
		Where("productor_id = ?", productorID).
		Order("created_at DESC").
		Find(&lotes).Error
	return lotes, err
}

func (r *loteRepo) FindAllConPrecios(ctx context.Context) ([]model.Lote, error) {
	var lotes []model.Lote
	err := r.db.WithContext(ctx).
		Preload("TipoAnimal").
		Preload("Precios", func(db *gorm.DB) *gorm.DB { return db.Order("fecha ASC") }).
		Find(&lotes).Error
	return lotes, err
}

func (r *loteRepo) Statistics(ctx context.Context) (dto.LoteStatistics, error) {
	var stats dto.LoteStatistics
	db := r.db.WithContext(ctx).Model(&model.Lote{})

	if err := db.Count(&stats.TotalLotes).Error; err != nil {
		return stats, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Lote{}).
		Where("estado = ?", model.EstadoDisponible).Count(&stats.LotesDisponible).Error; err != nil {
		return stats, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Lote{}).
		Where("estado = ?", model.EstadoVendido).Count(&stats.LotesVendidos).Error; err != nil {
		return stats, err
	}
	var totalAnimales *int64
	if err := r.db.WithContext(ctx).Model(&model.Lote{}).
		Select("SUM(cantidad)").Scan(&totalAnimales).Error; err != nil {
		return stats, err
	}
	if totalAnimales != nil {
		stats.TotalAnimales = *totalAnimales
	}
	return stats, nil
}

func (r *loteRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.Lote{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *loteRepo) UpdatePreciosSugeridosTx(tx *gorm.DB, id uuid.UUID, usd, ars decimal.Decimal) error {
	return tx.Model(&model.Lote{}).Where("id = ?", id).Updates(map[string]interface{}{
		"precio_sugerido_usd": usd,
		"precio_sugerido_ars": ars,
	}).Error
}

func (r *loteRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	// Price history rows are owned by the batch and go with it; the FK
	// cascade covers sales too, but the explicit delete keeps the intent
	// visible and works on databases without the constraint applied.
	if err := tx.Where("lote_id = ?", id).Delete(&model.PrecioHistorico{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Lote{}, "id = ?", id).Error
}
