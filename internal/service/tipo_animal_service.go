package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/gabrielpiriz/hackathon-nova-backend/internal/dto"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/repository"
)

const (
	cacheKeyTipos = "catalogo:tipos_animal"
	cacheTTLTipos = time.Hour
)

type TipoAnimalService interface {
	Listar(ctx context.Context) ([]dto.TipoAnimalResponse, error)
}

// tipoAnimalService serves the animal-type catalog through a Redis
// read-through cache. The catalog is seed data and changes essentially never.
type tipoAnimalService struct {
	repo repository.TipoAnimalRepository
	rdb  *redis.Client
}

func NewTipoAnimalService(repo repository.TipoAnimalRepository, rdb *redis.Client) TipoAnimalService {
	return &tipoAnimalService{repo: repo, rdb: rdb}
}

func (s *tipoAnimalService) Listar(ctx context.Context) ([]dto.TipoAnimalResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKeyTipos).Result(); err == nil {
			var resp []dto.TipoAnimalResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	tipos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TipoAnimalResponse, 0, len(tipos))
	for _, t := range tipos {
		resp = append(resp, dto.TipoAnimalResponse{
			ID:          t.ID.String(),
			Nombre:      t.Nombre,
			Descripcion: t.Descripcion,
		})
	}

	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, cacheKeyTipos, data, cacheTTLTipos).Err(); err != nil {
				log.Warn().Err(err).Msg("no se pudo cachear el catálogo de tipos")
			}
		}
	}
	return resp, nil
}
