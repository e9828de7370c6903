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
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/worker"
)

const (
	errStockExcedido     = "La cantidad vendida excede el stock disponible del lote."
	errStockExcedidoEdit = "La cantidad adicional excede el stock disponible del lote."
	fechaFormato         = "2006-01-02"
)

type VentaService interface {
	Crear(ctx context.Context, req dto.CrearVentaRequest) (*dto.VentaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarVentaRequest) (*dto.VentaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
	Estadisticas(ctx context.Context, filter dto.EstadisticasFilter) (*dto.EstadisticasVentas, error)
}

type ventaService struct {
	repo       repository.VentaRepository
	loteRepo   repository.LoteRepository
	dispatcher *worker.Dispatcher
}

func NewVentaService(
	repo repository.VentaRepository,
	loteRepo repository.LoteRepository,
	dispatcher *worker.Dispatcher,
) VentaService {
	return &ventaService{repo: repo, loteRepo: loteRepo, dispatcher: dispatcher}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// parseFechaVenta validates the sale date and rejects future dates.
func parseFechaVenta(s string) (time.Time, error) {
	fecha, err := time.Parse(fechaFormato, s)
	if err != nil {
		return time.Time{}, apierror.Validation(map[string]string{
			"sale_date": "La fecha de venta debe ser una fecha válida.",
		})
	}
	if fecha.After(time.Now()) {
		return time.Time{}, apierror.Validation(map[string]string{
			"sale_date": "La fecha de venta no puede ser futura.",
		})
	}
	return fecha, nil
}

// ── Crear ─────────────────────────────────────────────────────────────────────
// The stock check and the insert run in ONE transaction, with a FOR UPDATE
// lock on the batch row: two concurrent sales against the same batch serialize
// on the lock, so the remaining-quantity invariant holds under concurrency.

func (s *ventaService) Crear(ctx context.Context, req dto.CrearVentaRequest) (*dto.VentaResponse, error) {
	loteID, err := uuid.Parse(req.LoteID)
	if err != nil {
		return nil, apierror.Validation(map[string]string{"batch_id": "El ID del lote es inválido."})
	}
	fecha, err := parseFechaVenta(req.FechaVenta)
	if err != nil {
		return nil, err
	}

	metodoPago := req.MetodoPago
	if metodoPago == "" {
		metodoPago = model.PagoTransferencia
	}

	venta := model.Venta{
		LoteID:            loteID,
		CantidadVendida:   req.CantidadVendida,
		PrecioUnitarioARS: req.PrecioUnitarioARS,
		PrecioUnitarioUSD: req.PrecioUnitarioUSD,
		MontoTotalARS:     req.MontoTotalARS,
		MontoTotalUSD:     req.MontoTotalUSD,
		FechaVenta:        fecha,
		CompradorNombre:   req.CompradorNombre,
		CompradorContacto: req.CompradorContacto,
		MetodoPago:        metodoPago,
		Notas:             req.Notas,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		lote, err := s.loteRepo.FindByIDForUpdateTx(tx, loteID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("Lote no encontrado")
			}
			return err
		}

		restante := stock.Restante(lote)
		if restante < 0 {
			// Sum of sales exceeds batch quantity: the invariant is broken
			// outside this code path. Refuse to make it worse.
			return apierror.Unexpected("Inconsistencia de stock detectada",
				fmt.Errorf("lote %s: restante negativo (%d)", lote.ID, restante))
		}
		if !stock.PuedeVender(lote, req.CantidadVendida) {
			return apierror.BusinessRule(fmt.Sprintf(
				"%s Disponible: %d, solicitado: %d.",
				errStockExcedido, restante, req.CantidadVendida))
		}

		return s.repo.CreateTx(tx, &venta)
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("venta_id", venta.ID.String()).
		Str("lote_id", loteID.String()).
		Int("cantidad", venta.CantidadVendida).
		Msg("venta registrada")

	// Reload with batch/producer/animal-type context for the response.
	completa, err := s.repo.FindByID(ctx, venta.ID)
	if err != nil {
		return ventaToResponse(&venta), nil
	}
	s.notificarVenta(ctx, completa)
	return ventaToResponse(completa), nil
}

// notificarVenta enqueues a best-effort notification mail to the producer.
func (s *ventaService) notificarVenta(ctx context.Context, v *model.Venta) {
	if s.dispatcher == nil || v.Lote == nil || v.Lote.Productor == nil {
		return
	}
	payload := worker.NotificacionPayload{
		Email:   v.Lote.Productor.Email,
		Asunto:  fmt.Sprintf("Nueva venta del lote %s", v.Lote.Codigo()),
		Cuerpo: fmt.Sprintf(
			"Se registró una venta de %d animales del lote %s a %s por ARS %s.",
			v.CantidadVendida, v.Lote.Codigo(), v.CompradorNombre, v.MontoTotalARS.StringFixed(2)),
	}
	if err := s.dispatcher.EnqueueNotificacion(ctx, payload); err != nil {
		log.Warn().Err(err).Str("venta_id", v.ID.String()).Msg("no se pudo encolar la notificación")
	}
}

// ── Actualizar ────────────────────────────────────────────────────────────────

func (s *ventaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarVentaRequest) (*dto.VentaResponse, error) {
	var fecha *time.Time
	if req.FechaVenta != nil {
		f, err := parseFechaVenta(*req.FechaVenta)
		if err != nil {
			return nil, err
		}
		fecha = &f
	}

	var nuevoLoteID *uuid.UUID
	if req.LoteID != nil {
		lid, err := uuid.Parse(*req.LoteID)
		if err != nil {
			return nil, apierror.Validation(map[string]string{"batch_id": "El ID del lote es inválido."})
		}
		nuevoLoteID = &lid
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		venta, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("Venta no encontrada")
			}
			return err
		}

		cambiaLote := nuevoLoteID != nil && *nuevoLoteID != venta.LoteID
		cantidadFinal := venta.CantidadVendida
		if req.CantidadVendida != nil {
			cantidadFinal = *req.CantidadVendida
		}

		if cambiaLote {
			// Re-targeting: the old batch regains the vacated amount, the new
			// batch must absorb the FULL final quantity.
			nuevoLote, err := s.loteRepo.FindByIDForUpdateTx(tx, *nuevoLoteID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apierror.NotFound("Lote no encontrado")
				}
				return err
			}
			if !stock.PuedeVender(nuevoLote, cantidadFinal) {
				return apierror.BusinessRule(fmt.Sprintf(
					"%s Disponible: %d, solicitado: %d.",
					errStockExcedido, stock.Restante(nuevoLote), cantidadFinal))
			}
			venta.LoteID = *nuevoLoteID
		} else if req.CantidadVendida != nil && *req.CantidadVendida != venta.CantidadVendida {
			lote, err := s.loteRepo.FindByIDForUpdateTx(tx, venta.LoteID)
			if err != nil {
				return err
			}
			// Remaining stock is computed excluding this sale's own prior
			// contribution, so growing into exactly the leftover is legal.
			if !stock.PuedeVenderEdicion(lote, venta.ID, cantidadFinal) {
				return apierror.BusinessRule(errStockExcedidoEdit)
			}
		}

		venta.CantidadVendida = cantidadFinal
		if req.PrecioUnitarioARS != nil {
			venta.PrecioUnitarioARS = *req.PrecioUnitarioARS
		}
		if req.PrecioUnitarioUSD != nil {
			venta.PrecioUnitarioUSD = *req.PrecioUnitarioUSD
		}
		if req.MontoTotalARS != nil {
			venta.MontoTotalARS = *req.MontoTotalARS
		}
		if req.MontoTotalUSD != nil {
			venta.MontoTotalUSD = *req.MontoTotalUSD
		}
		if fecha != nil {
			venta.FechaVenta = *fecha
		}
		if req.CompradorNombre != nil {
			venta.CompradorNombre = *req.CompradorNombre
		}
		if req.CompradorContacto != nil {
			venta.CompradorContacto = req.CompradorContacto
		}
		if req.MetodoPago != nil {
			venta.MetodoPago = *req.MetodoPago
		}
		if req.Notas != nil {
			venta.Notas = req.Notas
		}

		return s.repo.UpdateTx(tx, venta)
	})
	if txErr != nil {
		return nil, txErr
	}

	completa, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ventaToResponse(completa), nil
}

// ── Eliminar ──────────────────────────────────────────────────────────────────
// No stock-side bookkeeping is needed: remaining quantity is always recomputed
// from live sale rows, never stored.

func (s *ventaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if _, err := s.repo.FindByIDTx(tx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("Venta no encontrada")
			}
			return err
		}
		return s.repo.DeleteTx(tx, id)
	})
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

func (s *ventaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Venta no encontrada")
		}
		return nil, err
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = 15
	}
	if filter.PerPage > 100 {
		filter.PerPage = 100
	}

	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		data = append(data, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{
		Data:       data,
		Pagination: paginacion(filter.Page, filter.PerPage, total, len(ventas)),
	}, nil
}

func (s *ventaService) Estadisticas(ctx context.Context, filter dto.EstadisticasFilter) (*dto.EstadisticasVentas, error) {
	return s.repo.Estadisticas(ctx, filter)
}

// ── Mapping ───────────────────────────────────────────────────────────────────

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	resp := &dto.VentaResponse{
		ID:                v.ID.String(),
		LoteID:            v.LoteID.String(),
		CantidadVendida:   v.CantidadVendida,
		PrecioUnitarioARS: v.PrecioUnitarioARS,
		PrecioUnitarioUSD: v.PrecioUnitarioUSD,
		MontoTotalARS:     v.MontoTotalARS,
		MontoTotalUSD:     v.MontoTotalUSD,
		FechaVenta:        v.FechaVenta.Format(fechaFormato),
		CompradorNombre:   v.CompradorNombre,
		CompradorContacto: v.CompradorContacto,
		MetodoPago:        v.MetodoPago,
		Notas:             v.Notas,
		CreatedAt:         v.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if v.Lote != nil {
		ctxLote := &dto.VentaLoteContext{
			ID:     v.Lote.ID.String(),
			Codigo: v.Lote.Codigo(),
		}
		if v.Lote.TipoAnimal != nil {
			ctxLote.TipoAnimal = v.Lote.TipoAnimal.Nombre
		}
		if v.Lote.Productor != nil {
			ctxLote.Productor = dto.ProductorResumen{
				ID:     v.Lote.Productor.ID.String(),
				Nombre: v.Lote.Productor.NombreCompleto(),
				Email:  v.Lote.Productor.Email,
			}
		}
		resp.Lote = ctxLote
	}
	return resp
}

// paginacion builds the shared pagination block.
func paginacion(page, perPage int, total int64, pageLen int) dto.Paginacion {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}
	from := 0
	to := 0
	if pageLen > 0 {
		from = (page-1)*perPage + 1
		to = from + pageLen - 1
	}
	return dto.Paginacion{
		CurrentPage:  page,
		LastPage:     lastPage,
		PerPage:      perPage,
		Total:        total,
		From:         from,
		To:           to,
		HasMorePages: page < lastPage,
	}
}
