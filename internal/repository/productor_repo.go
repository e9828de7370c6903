package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gabrielpiriz/hackathon-nova-backend/internal/model"
)

type ProductorRepository interface {
	Create(ctx context.Context, p *model.Productor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Productor, error)
	FindByEmail(ctx context.Context, email string) (*model.Productor, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type productorRepo struct{ db *gorm.DB }

func NewProductorRepository(db *gorm.DB) ProductorRepository { return &productorRepo{db: db} }

func (r *productorRepo) Create(ctx context.Context, p *model.Productor) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Productor, error) {
	var p model.Productor
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productorRepo) FindByEmail(ctx context.Context, email string) (*model.Productor, error) {
	var p model.Productor
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productorRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Productor{}).
		Where("email = ?", email).Count(&count).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return count > 0, nil
}
