package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gabrielpiriz/hackathon-nova-backend/internal/dto"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/model"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/repository"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
// In-memory repositories. The lote stub rebuilds each batch's sales and price
// history on every read, mirroring what the SQL preloads do, so the stock
// arithmetic in the services sees consistent data.

type stubStore struct {
	lotes   map[uuid.UUID]*model.Lote
	ventas  map[uuid.UUID]*model.Venta
	precios []*model.PrecioHistorico
	tipos   map[uuid.UUID]*model.TipoAnimal
}

func newStubStore() *stubStore {
	return &stubStore{
		lotes:  make(map[uuid.UUID]*model.Lote),
		ventas: make(map[uuid.UUID]*model.Venta),
		tipos:  make(map[uuid.UUID]*model.TipoAnimal),
	}
}

func (s *stubStore) hydrate(l *model.Lote) *model.Lote {
	out := *l
	out.Ventas = nil
	out.Precios = nil
	for _, v := range s.ventas {
		if v.LoteID == l.ID {
			out.Ventas = append(out.Ventas, *v)
		}
	}
	for _, p := range s.precios {
		if p.LoteID == l.ID {
			out.Precios = append(out.Precios, *p)
		}
	}
	sort.Slice(out.Precios, func(i, j int) bool { return out.Precios[i].Fecha.Before(out.Precios[j].Fecha) })
	if t, ok := s.tipos[l.TipoAnimalID]; ok {
		out.TipoAnimal = t
	}
	return &out
}

// ── LoteRepository ────────────────────────────────────────────────────────────

type stubLoteRepo struct{ store *stubStore }

var _ repository.LoteRepository = (*stubLoteRepo)(nil)

func (r *stubLoteRepo) DB() *gorm.DB { return nil }

func (r *stubLoteRepo) Create(_ context.Context, l *model.Lote) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	stored := *l
	r.store.lotes[l.ID] = &stored
	return nil
}

func (r *stubLoteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Lote, error) {
	l, ok := r.store.lotes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.store.hydrate(l), nil
}

func (r *stubLoteRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Lote, error) {
	l, ok := r.store.lotes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.store.hydrate(l), nil
}

func (r *stubLoteRepo) List(_ context.Context, _ dto.LoteFilter) ([]model.Lote, int64, error) {
	var out []model.Lote
	for _, l := range r.store.lotes {
		out = append(out, *r.store.hydrate(l))
	}
	return out, int64(len(out)), nil
}

func (r *stubLoteRepo) ListByProductor(_ context.Context, productorID uuid.UUID) ([]model.Lote, error) {
	var out []model.Lote
	for _, l := range r.store.lotes {
		if l.ProductorID == productorID {
			out = append(out, *r.store.hydrate(l))
		}
	}
	return out, nil
}

func (r *stubLoteRepo) FindAllConPrecios(_ context.Context) ([]model.Lote, error) {
	var out []model.Lote
	for _, l := range r.store.lotes {
		out = append(out, *r.store.hydrate(l))
	}
	return out, nil
}

func (r *stubLoteRepo) Statistics(_ context.Context) (dto.LoteStatistics, error) {
	var stats dto.LoteStatistics
	for _, l := range r.store.lotes {
		stats.TotalLotes++
		stats.TotalAnimales += int64(l.Cantidad)
		switch l.Estado {
		case model.EstadoDisponible:
			stats.LotesDisponible++
		case model.EstadoVendido:
			stats.LotesVendidos++
		}
	}
	return stats, nil
}

func (r *stubLoteRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	l, ok := r.store.lotes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	l.Estado = estado
	return nil
}

func (r *stubLoteRepo) UpdatePreciosSugeridosTx(_ *gorm.DB, id uuid.UUID, usd, ars decimal.Decimal) error {
	l, ok := r.store.lotes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	l.PrecioSugeridoUSD = usd
	l.PrecioSugeridoARS = ars
	return nil
}

func (r *stubLoteRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.store.lotes, id)
	return nil
}

// ── VentaRepository ───────────────────────────────────────────────────────────

type stubVentaRepo struct{ store *stubStore }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

func (r *stubVentaRepo) CreateTx(_ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	stored := *v
	r.store.ventas[v.ID] = &stored
	return nil
}

func (r *stubVentaRepo) UpdateTx(_ *gorm.DB, v *model.Venta) error {
	stored := *v
	r.store.ventas[v.ID] = &stored
	return nil
}

func (r *stubVentaRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.store.ventas, id)
	return nil
}

func (r *stubVentaRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.store.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *v
	return &out, nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.store.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *v
	if l, ok := r.store.lotes[v.LoteID]; ok {
		out.Lote = r.store.hydrate(l)
	}
	return &out, nil
}

func (r *stubVentaRepo) List(_ context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var out []model.Venta
	for _, v := range r.store.ventas {
		if filter.LoteID != "" && v.LoteID.String() != filter.LoteID {
			continue
		}
		if filter.CompradorNombre != "" &&
			!strings.Contains(strings.ToLower(v.CompradorNombre), strings.ToLower(filter.CompradorNombre)) {
			continue
		}
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) ListByLote(_ context.Context, loteID uuid.UUID) ([]model.Venta, error) {
	var out []model.Venta
	for _, v := range r.store.ventas {
		if v.LoteID == loteID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *stubVentaRepo) Estadisticas(_ context.Context, _ dto.EstadisticasFilter) (*dto.EstadisticasVentas, error) {
	stats := &dto.EstadisticasVentas{}
	for _, v := range r.store.ventas {
		stats.TotalVentas++
		stats.TotalCantidad += int64(v.CantidadVendida)
		stats.TotalMontoARS = stats.TotalMontoARS.Add(v.MontoTotalARS)
		stats.TotalMontoUSD = stats.TotalMontoUSD.Add(v.MontoTotalUSD)
	}
	return stats, nil
}

// ── PrecioHistoricoRepository ────────────────────────────────────────────────

type stubPrecioRepo struct{ store *stubStore }

var _ repository.PrecioHistoricoRepository = (*stubPrecioRepo)(nil)

func (r *stubPrecioRepo) Create(_ context.Context, p *model.PrecioHistorico) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	stored := *p
	r.store.precios = append(r.store.precios, &stored)
	return nil
}

func (r *stubPrecioRepo) CreateTx(_ *gorm.DB, p *model.PrecioHistorico) error {
	return r.Create(context.Background(), p)
}

func (r *stubPrecioRepo) ListByLote(_ context.Context, loteID uuid.UUID) ([]model.PrecioHistorico, error) {
	var out []model.PrecioHistorico
	for _, p := range r.store.precios {
		if p.LoteID == loteID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.Before(out[j].Fecha) })
	return out, nil
}

// ── TipoAnimalRepository ─────────────────────────────────────────────────────

type stubTipoRepo struct{ store *stubStore }

var _ repository.TipoAnimalRepository = (*stubTipoRepo)(nil)

func (r *stubTipoRepo) List(_ context.Context) ([]model.TipoAnimal, error) {
	var out []model.TipoAnimal
	for _, t := range r.store.tipos {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r *stubTipoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.TipoAnimal, error) {
	t, ok := r.store.tipos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *stubTipoRepo) FirstOrCreate(_ context.Context, nombre, descripcion string) (*model.TipoAnimal, error) {
	for _, t := range r.store.tipos {
		if t.Nombre == nombre {
			return t, nil
		}
	}
	t := &model.TipoAnimal{ID: uuid.New(), Nombre: nombre, Descripcion: descripcion}
	r.store.tipos[t.ID] = t
	return t, nil
}

// ── ProductorRepository ──────────────────────────────────────────────────────

type stubProductorRepo struct {
	productores map[uuid.UUID]*model.Productor
}

var _ repository.ProductorRepository = (*stubProductorRepo)(nil)

func newStubProductorRepo() *stubProductorRepo {
	return &stubProductorRepo{productores: make(map[uuid.UUID]*model.Productor)}
}

func (r *stubProductorRepo) Create(_ context.Context, p *model.Productor) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	stored := *p
	r.productores[p.ID] = &stored
	return nil
}

func (r *stubProductorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Productor, error) {
	p, ok := r.productores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductorRepo) FindByEmail(_ context.Context, email string) (*model.Productor, error) {
	for _, p := range r.productores {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductorRepo) EmailExists(_ context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(context.Background(), email)
	return err == nil, nil
}

// ── Fixture helpers ──────────────────────────────────────────────────────────

func seedTipo(store *stubStore, nombre string) *model.TipoAnimal {
	t := &model.TipoAnimal{ID: uuid.New(), Nombre: nombre}
	store.tipos[t.ID] = t
	return t
}

func seedLote(store *stubStore, productorID uuid.UUID, tipoID uuid.UUID, cantidad int, estado string) *model.Lote {
	l := &model.Lote{
		ID:           uuid.New(),
		ProductorID:  productorID,
		TipoAnimalID: tipoID,
		Cantidad:     cantidad,
		EdadMeses:    12,
		Estado:       estado,
	}
	store.lotes[l.ID] = l
	return l
}

func seedVenta(store *stubStore, loteID uuid.UUID, cantidad int) *model.Venta {
	v := &model.Venta{ID: uuid.New(), LoteID: loteID, CantidadVendida: cantidad, CompradorNombre: "Comprador"}
	store.ventas[v.ID] = v
	return v
}
