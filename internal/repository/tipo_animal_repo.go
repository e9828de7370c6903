package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gabrielpiriz/hackathon-nova-backend/internal/model"
)

type TipoAnimalRepository interface {
	List(ctx context.Context) ([]model.TipoAnimal, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.TipoAnimal, error)
	FirstOrCreate(ctx context.Context, nombre, descripcion string) (*model.TipoAnimal, error)
}

type tipoAnimalRepo struct{ db *gorm.DB }

func NewTipoAnimalRepository(db *gorm.DB) TipoAnimalRepository { return &tipoAnimalRepo{db: db} }

func (r *tipoAnimalRepo) List(ctx context.Context) ([]model.TipoAnimal, error) {
	var tipos []model.TipoAnimal
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&tipos).Error
	return tipos, err
}

func (r *tipoAnimalRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.TipoAnimal, error) {
	var t model.TipoAnimal
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tipoAnimalRepo) FirstOrCreate(ctx context.Context, nombre, descripcion string) (*model.TipoAnimal, error) {
	t := model.TipoAnimal{Nombre: nombre, Descripcion: descripcion}
	err := r.db.WithContext(ctx).
		Where(model.TipoAnimal{Nombre: nombre}).
		FirstOrCreate(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}
