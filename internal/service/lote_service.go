package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/gabrielpiriz/hackathon-nova-backend/internal/apierror"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/dto"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/model"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/repository"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/stock"
)

type LoteService interface {
	Crear(ctx context.Context, productorID uuid.UUID, req dto.CrearLoteRequest) (*dto.LoteResponse, error)
	Listar(ctx context.Context, filter dto.LoteFilter) (*dto.LoteListResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.LoteResponse, error)
	MisLotes(ctx context.Context, productorID uuid.UUID) ([]dto.LoteResponse, error)
	VentasDeLote(ctx context.Context, id uuid.UUID) ([]dto.VentaResponse, error)
	MarcarVendido(ctx context.Context, id, productorID uuid.UUID) (*dto.MarcarVendidoResponse, error)
	Eliminar(ctx context.Context, id, productorID uuid.UUID) (*dto.EliminarLoteResponse, error)
	AgregarPrecio(ctx context.Context, id, productorID uuid.UUID, req dto.CrearPrecioHistoricoRequest) (*dto.PrecioHistoricoResponse, error)
	ListarPrecios(ctx context.Context, id uuid.UUID) ([]dto.PrecioHistoricoResponse, error)
}

type loteService struct {
	repo       repository.LoteRepository
	ventaRepo  repository.VentaRepository
	precioRepo repository.PrecioHistoricoRepository
	tipoRepo   repository.TipoAnimalRepository
}

func NewLoteService(
	repo repository.LoteRepository,
	ventaRepo repository.VentaRepository,
	precioRepo repository.PrecioHistoricoRepository,
	tipoRepo repository.TipoAnimalRepository,
) LoteService {
	return &loteService{repo: repo, ventaRepo: ventaRepo, precioRepo: precioRepo, tipoRepo: tipoRepo}
}

// ── Crear ─────────────────────────────────────────────────────────────────────

func (s *loteService) Crear(ctx context.Context, productorID uuid.UUID, req dto.CrearLoteRequest) (*dto.LoteResponse, error) {
	tipoID, err := uuid.Parse(req.TipoAnimalID)
	if err != nil {
		return nil, apierror.Validation(map[string]string{"animal_type_id": "El tipo de animal es inválido."})
	}
	if _, err := s.tipoRepo.FindByID(ctx, tipoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Validation(map[string]string{"animal_type_id": "El tipo de animal no existe."})
		}
		return nil, err
	}

	// "reserved" is only accepted here, at creation time. There is no
	// status-transition endpoint into reserved.
	estado := req.Estado
	if estado == "" {
		estado = model.EstadoDisponible
	}

	lote := &model.Lote{
		ProductorID:       productorID,
		TipoAnimalID:      tipoID,
		Cantidad:          req.Cantidad,
		EdadMeses:         req.EdadMeses,
		PesoPromedioKg:    req.PesoPromedioKg,
		PrecioSugeridoARS: req.PrecioSugeridoARS,
		PrecioSugeridoUSD: req.PrecioSugeridoUSD,
		Estado:            estado,
		Notas:             req.Notas,
	}
	if err := s.repo.Create(ctx, lote); err != nil {
		return nil, err
	}

	log.Info().
		Str("lote_id", lote.ID.String()).
		Str("productor_id", productorID.String()).
		Int("cantidad", lote.Cantidad).
		Msg("lote creado")

	completo, err := s.repo.FindByID(ctx, lote.ID)
	if err != nil {
		return loteToResponse(lote), nil
	}
	return loteToResponse(completo), nil
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

func (s *loteService) Listar(ctx context.Context, filter dto.LoteFilter) (*dto.LoteListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = 15
	}
	if filter.PerPage > 100 {
		filter.PerPage = 100
	}

	lotes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	stats, err := s.repo.Statistics(ctx)
	if err != nil {
		return nil, err
	}

	data := make([]dto.LoteResponse, 0, len(lotes))
	for i := range lotes {
		data = append(data, *loteToResponse(&lotes[i]))
	}
	return &dto.LoteListResponse{
		Data:       data,
		Pagination: paginacion(filter.Page, filter.PerPage, total, len(lotes)),
		Statistics: stats,
	}, nil
}

func (s *loteService) Obtener(ctx context.Context, id uuid.UUID) (*dto.LoteResponse, error) {
	lote, err := s.findLote(ctx, id)
	if err != nil {
		return nil, err
	}
	return loteToResponse(lote), nil
}

func (s *loteService) MisLotes(ctx context.Context, productorID uuid.UUID) ([]dto.LoteResponse, error) {
	lotes, err := s.repo.ListByProductor(ctx, productorID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.LoteResponse, 0, len(lotes))
	for i := range lotes {
		resp = append(resp, *loteToResponse(&lotes[i]))
	}
	return resp, nil
}

func (s *loteService) VentasDeLote(ctx context.Context, id uuid.UUID) ([]dto.VentaResponse, error) {
	if _, err := s.findLote(ctx, id); err != nil {
		return nil, err
	}
	ventas, err := s.ventaRepo.ListByLote(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		resp = append(resp, *ventaToResponse(&ventas[i]))
	}
	return resp, nil
}

// ── MarcarVendido ─────────────────────────────────────────────────────────────

func (s *loteService) MarcarVendido(ctx context.Context, id, productorID uuid.UUID) (*dto.MarcarVendidoResponse, error) {
	var anterior string
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		lote, err := s.repo.FindByIDForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("Lote no encontrado")
			}
			return err
		}
		if lote.ProductorID != productorID {
			return apierror.Forbidden("El lote pertenece a otro productor")
		}
		if lote.Estado == model.EstadoVendido {
			return apierror.BusinessRule("El lote ya está marcado como vendido.")
		}
		anterior = lote.Estado
		return s.repo.UpdateEstadoTx(tx, id, model.EstadoVendido)
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().Str("lote_id", id.String()).Str("estado_anterior", anterior).Msg("lote marcado como vendido")
	return &dto.MarcarVendidoResponse{
		LoteID:         id.String(),
		EstadoAnterior: anterior,
		EstadoNuevo:    model.EstadoVendido,
		UpdatedAt:      time.Now().Format("2006-01-02 15:04:05"),
	}, nil
}

// ── Eliminar ──────────────────────────────────────────────────────────────────
// Deletion checks EVERY restriction and reports them all together, so the
// caller sees the complete set of blocking reasons in one round trip.

func (s *loteService) Eliminar(ctx context.Context, id, productorID uuid.UUID) (*dto.EliminarLoteResponse, error) {
	var resumen dto.EliminarLoteResponse
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		lote, err := s.repo.FindByIDForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("Lote no encontrado")
			}
			return err
		}
		if lote.ProductorID != productorID {
			return apierror.Forbidden("El lote pertenece a otro productor")
		}

		ok, restricciones := stock.ValidarEliminacion(lote, time.Now())
		if !ok {
			return apierror.DeletionRestricted("El lote no puede ser eliminado", restricciones)
		}

		resumen = dto.EliminarLoteResponse{
			LoteID:   lote.ID.String(),
			Codigo:   lote.Codigo(),
			Cantidad: lote.Cantidad,
		}
		if lote.TipoAnimal != nil {
			resumen.TipoAnimal = lote.TipoAnimal.Nombre
		}
		return s.repo.DeleteTx(tx, id)
	})
	if txErr != nil {
		return nil, txErr
	}

	resumen.DeletedAt = time.Now().Format("2006-01-02 15:04:05")
	log.Info().Str("lote_id", id.String()).Msg("lote eliminado")
	return &resumen, nil
}

// ── Precio histórico ──────────────────────────────────────────────────────────

func (s *loteService) AgregarPrecio(ctx context.Context, id, productorID uuid.UUID, req dto.CrearPrecioHistoricoRequest) (*dto.PrecioHistoricoResponse, error) {
	lote, err := s.findLote(ctx, id)
	if err != nil {
		return nil, err
	}
	if lote.ProductorID != productorID {
		return nil, apierror.Forbidden("El lote pertenece a otro productor")
	}

	fecha, err := time.Parse(fechaFormato, req.Fecha)
	if err != nil {
		return nil, apierror.Validation(map[string]string{"date": "La fecha debe ser una fecha válida."})
	}
	fuente := req.Fuente
	if fuente == "" {
		fuente = model.FuenteManual
	}

	precio := &model.PrecioHistorico{
		LoteID:    id,
		Fecha:     fecha,
		PrecioARS: req.PrecioARS,
		PrecioUSD: req.PrecioUSD,
		Fuente:    fuente,
	}
	if err := s.precioRepo.Create(ctx, precio); err != nil {
		return nil, err
	}
	resp := precioToResponse(precio)
	return &resp, nil
}

func (s *loteService) ListarPrecios(ctx context.Context, id uuid.UUID) ([]dto.PrecioHistoricoResponse, error) {
	if _, err := s.findLote(ctx, id); err != nil {
		return nil, err
	}
	precios, err := s.precioRepo.ListByLote(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PrecioHistoricoResponse, 0, len(precios))
	for i := range precios {
		resp = append(resp, precioToResponse(&precios[i]))
	}
	return resp, nil
}

func (s *loteService) findLote(ctx context.Context, id uuid.UUID) (*model.Lote, error) {
	lote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Lote no encontrado")
		}
		return nil, err
	}
	return lote, nil
}

// ── Mapping ───────────────────────────────────────────────────────────────────

var estadoLabels = map[string]string{
	model.EstadoDisponible: "Disponible",
	model.EstadoVendido:    "Vendido",
	model.EstadoReservado:  "Reservado",
}

func loteToResponse(l *model.Lote) *dto.LoteResponse {
	vendido := stock.EstaVendido(l)
	vendidoLabel := "Disponible"
	if vendido {
		vendidoLabel = "Vendido"
	}

	puedeEliminar, _ := stock.ValidarEliminacion(l, time.Now())

	resp := &dto.LoteResponse{
		ID:               l.ID.String(),
		Codigo:           l.Codigo(),
		EdadPromedio:     fmt.Sprintf("%d meses", l.EdadMeses),
		PesoPromedio:     l.PesoPromedioKg.StringFixed(2) + " kg",
		PrecioARS:        l.PrecioSugeridoARS,
		PrecioUSD:        l.PrecioSugeridoUSD,
		Vendido:          vendido,
		VendidoLabel:     vendidoLabel,
		Estado:           l.Estado,
		EstadoLabel:      estadoLabels[l.Estado],
		Cantidad:         l.Cantidad,
		CantidadRestante: stock.Restante(l),
		TotalVendido:     stock.TotalVendido(l),
		VentasCount:      len(l.Ventas),
		Notas:            l.Notas,
		CreatedAt:        l.CreatedAt.Format(fechaFormato),
		CreatedAtDisplay: l.CreatedAt.Format("02/01/2006"),
		UpdatedAt:        l.UpdatedAt.Format("2006-01-02 15:04:05"),
		PuedeEditar:      l.Estado != model.EstadoVendido,
		PuedeEliminar:    puedeEliminar,
		PuedeVender:      !vendido,
	}
	if l.TipoAnimal != nil {
		resp.Tipo = l.TipoAnimal.Nombre
		resp.TipoAnimal = dto.TipoAnimalResponse{
			ID:          l.TipoAnimal.ID.String(),
			Nombre:      l.TipoAnimal.Nombre,
			Descripcion: l.TipoAnimal.Descripcion,
		}
	}
	if l.Productor != nil {
		resp.Productor = dto.ProductorResumen{
			ID:     l.Productor.ID.String(),
			Nombre: l.Productor.NombreCompleto(),
			Email:  l.Productor.Email,
		}
	}
	return resp
}

func precioToResponse(p *model.PrecioHistorico) dto.PrecioHistoricoResponse {
	return dto.PrecioHistoricoResponse{
		ID:        p.ID.String(),
		LoteID:    p.LoteID.String(),
		Fecha:     p.Fecha.Format(fechaFormato),
		PrecioARS: p.PrecioARS,
		PrecioUSD: p.PrecioUSD,
		Fuente:    p.Fuente,
	}
}
