package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gabrielpiriz/hackathon-nova-backend/internal/apierror"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/config"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/dto"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/infra"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/model"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/repository"
)

type AnalisisService interface {
	Analizar(ctx context.Context) (*dto.AnalisisResponse, error)
}

type analisisService struct {
	loteRepo   repository.LoteRepository
	precioRepo repository.PrecioHistoricoRepository
	advisor    infra.PriceAdvisor
	cfg        *config.Config
}

func NewAnalisisService(
	loteRepo repository.LoteRepository,
	precioRepo repository.PrecioHistoricoRepository,
	advisor infra.PriceAdvisor,
	cfg *config.Config,
) AnalisisService {
	return &analisisService{loteRepo: loteRepo, precioRepo: precioRepo, advisor: advisor, cfg: cfg}
}

// Analizar collects every batch's price history, submits it to the external
// advisor, and persists the suggested prices in one transaction. If the write
// fails the whole batch of updates rolls back — there is no partial apply and
// no retry; the caller decides whether to re-run.
func (s *analisisService) Analizar(ctx context.Context) (*dto.AnalisisResponse, error) {
	lotes, err := s.loteRepo.FindAllConPrecios(ctx)
	if err != nil {
		return nil, err
	}

	payload := dto.AnalisisPayload{Historiales: make([]dto.HistorialLote, 0, len(lotes))}
	for i := range lotes {
		l := &lotes[i]
		if len(l.Precios) == 0 {
			continue
		}
		historial := dto.HistorialLote{
			LoteID:    l.ID.String(),
			Historial: make([]dto.PuntoPrecio, 0, len(l.Precios)),
		}
		if l.TipoAnimal != nil {
			historial.TipoAnimal = l.TipoAnimal.Nombre
		}
		for _, p := range l.Precios {
			historial.Historial = append(historial.Historial, dto.PuntoPrecio{
				Fecha:  p.Fecha.Format(fechaFormato),
				Precio: p.PrecioUSD.InexactFloat64(),
			})
		}
		payload.Historiales = append(payload.Historiales, historial)
	}
	if len(payload.Historiales) == 0 {
		return &dto.AnalisisResponse{PreciosSugeridos: []dto.PrecioSugerido{}}, nil
	}

	advisorResp, err := s.advisor.Analizar(ctx, payload)
	if err != nil {
		log.Error().Err(err).Msg("análisis de precios: el advisor falló")
		return nil, apierror.Upstream("El servicio de análisis de precios no está disponible", err)
	}

	rate := decimal.NewFromInt(int64(s.cfg.USDARSRate))
	hoy := time.Now()
	actualizados := 0

	txErr := runTx(ctx, s.loteRepo.DB(), func(tx *gorm.DB) error {
		for _, sugerido := range advisorResp.PreciosSugeridos {
			loteID, err := uuid.Parse(sugerido.LoteID)
			if err != nil {
				log.Warn().Str("batch_id", sugerido.LoteID).Msg("advisor devolvió un batch_id inválido — ignorado")
				continue
			}
			usd := sugerido.PrecioSugerido.Round(2)
			ars := usd.Mul(rate).Round(2)
			if err := s.loteRepo.UpdatePreciosSugeridosTx(tx, loteID, usd, ars); err != nil {
				return err
			}
			// The accepted suggestion becomes a price observation itself, so
			// the next analysis sees it.
			precio := &model.PrecioHistorico{
				LoteID:    loteID,
				Fecha:     hoy,
				PrecioARS: ars,
				PrecioUSD: usd,
				Fuente:    model.FuenteAdvisor,
			}
			if err := s.precioRepo.CreateTx(tx, precio); err != nil {
				return err
			}
			actualizados++
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Int("lotes_analizados", len(payload.Historiales)).
		Int("lotes_actualizados", actualizados).
		Msg("análisis de precios completado")

	return &dto.AnalisisResponse{
		PreciosSugeridos:  advisorResp.PreciosSugeridos,
		LotesAnalizados:   len(payload.Historiales),
		LotesActualizados: actualizados,
	}, nil
}
