package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gabrielpiriz/hackathon-nova-backend/internal/model"
)

type PrecioHistoricoRepository interface {
	Create(ctx context.Context, p *model.PrecioHistorico) error
	CreateTx(tx *gorm.DB, p *model.PrecioHistorico) error
	ListByLote(ctx context.Context, loteID uuid.UUID) ([]model.PrecioHistorico, error)
}

type precioHistoricoRepo struct{ db *gorm.DB }

func NewPrecioHistoricoRepository(db *gorm.DB) PrecioHistoricoRepository {
	return &precioHistoricoRepo{db: db}
}

func (r *precioHistoricoRepo) Create(ctx context.Context, p *model.PrecioHistorico) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *precioHistoricoRepo) CreateTx(tx *gorm.DB, p *model.PrecioHistorico) error {
	return tx.Create(p).Error
}

func (r *precioHistoricoRepo) ListByLote(ctx context.Context, loteID uuid.UUID) ([]model.PrecioHistorico, error) {
	var precios []model.PrecioHistorico
	err := r.db.WithContext(ctx).
		Where("lote_id = ?", loteID).
		Order("fecha ASC").
		Find(&precios).Error
	return precios, err
}
