package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielpiriz/hackathon-nova-backend/internal/apierror"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/dto"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/model"
)

func buildVentaSvc() (VentaService, *stubStore) {
	store := newStubStore()
	ventaRepo := &stubVentaRepo{store: store}
	loteRepo := &stubLoteRepo{store: store}
	return NewVentaService(ventaRepo, loteRepo, nil), store
}

func crearReq(loteID uuid.UUID, cantidad int) dto.CrearVentaRequest {
	return dto.CrearVentaRequest{
		LoteID:            loteID.String(),
		CantidadVendida:   cantidad,
		PrecioUnitarioARS: decimal.NewFromInt(1000),
		PrecioUnitarioUSD: decimal.NewFromInt(25),
		MontoTotalARS:     decimal.NewFromInt(1000 * int64(cantidad)),
		MontoTotalUSD:     decimal.NewFromInt(25 * int64(cantidad)),
		FechaVenta:        time.Now().Format("2006-01-02"),
		CompradorNombre:   "Estancia La Esperanza",
	}
}

func TestCrearVenta_OK(t *testing.T) {
	svc, store := buildVentaSvc()
	tipo := seedTipo(store, "Vacuno")
	lote := seedLote(store, uuid.New(), tipo.ID, 100, model.EstadoDisponible)

	resp, err := svc.Crear(context.Background(), crearReq(lote.ID, 60))
	require.NoError(t, err)
	assert.Equal(t, 60, resp.CantidadVendida)
	assert.Equal(t, model.PagoTransferencia, resp.MetodoPago) // default
	assert.Len(t, store.ventas, 1)
}

func TestCrearVenta_ExcedeStock(t *testing.T) {
	// 100 animales, 60 vendidos: una venta de 41 debe fallar y no persistir.
	svc, store := buildVentaSvc()
	lote := seedLote(store, uuid.New(), uuid.New(), 100, model.EstadoDisponible)
	seedVenta(store, lote.ID, 60)

	_, err := svc.Crear(context.Background(), crearReq(lote.ID, 41))

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.CodeBusinessRule, apiErr.Code)
	assert.Equal(t, 422, apiErr.Status)
	assert.Contains(t, apiErr.Message, "excede el stock disponible")
	assert.Len(t, store.ventas, 1) // solo la venta original

	// 40 sí entra: es exactamente el restante.
	resp, err := svc.Crear(context.Background(), crearReq(lote.ID, 40))
	require.NoError(t, err)
	assert.Equal(t, 40, resp.CantidadVendida)
	assert.Len(t, store.ventas, 2)
}

func TestCrearVenta_LoteInexistente(t *testing.T) {
	svc, _ := buildVentaSvc()

	_, err := svc.Crear(context.Background(), crearReq(uuid.New(), 1))

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.CodeNotFound, apiErr.Code)
	assert.Equal(t, 404, apiErr.Status)
}

func TestCrearVenta_FechaFutura(t *testing.T) {
	svc, store := buildVentaSvc()
	lote := seedLote(store, uuid.New(), uuid.New(), 10, model.EstadoDisponible)

	req := crearReq(lote.ID, 1)
	req.FechaVenta = time.Now().AddDate(0, 0, 2).Format("2006-01-02")

	_, err := svc.Crear(context.Background(), req)

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.CodeValidation, apiErr.Code)
	assert.Contains(t, apiErr.Fields, "sale_date")
}

func TestActualizarVenta_CrecerHastaElRestante(t *testing.T) {
	// El restante para la edición excluye la propia venta: una venta de 60
	// sobre un lote de 100 puede crecer hasta 100.
	svc, store := buildVentaSvc()
	lote := seedLote(store, uuid.New(), uuid.New(), 100, model.EstadoDisponible)
	venta := seedVenta(store, lote.ID, 60)

	nueva := 100
	resp, err := svc.Actualizar(context.Background(), venta.ID, dto.ActualizarVentaRequest{
		CantidadVendida: &nueva,
	})
	require.NoError(t, err)
	assert.Equal(t, 100, resp.CantidadVendida)
}

func TestActualizarVenta_ExcedeEnEdicion(t *testing.T) {
	svc, store := buildVentaSvc()
	lote := seedLote(store, uuid.New(), uuid.New(), 100, model.EstadoDisponible)
	venta := seedVenta(store, lote.ID, 60)
	seedVenta(store, lote.ID, 30)

	// Excluyendo la venta editada quedan 70; 71 no entra.
	nueva := 71
	_, err := svc.Actualizar(context.Background(), venta.ID, dto.ActualizarVentaRequest{
		CantidadVendida: &nueva,
	})

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.CodeBusinessRule, apiErr.Code)

	// La venta conserva su cantidad original.
	assert.Equal(t, 60, store.ventas[venta.ID].CantidadVendida)
}

func TestActualizarVenta_CambioDeLote(t *testing.T) {
	// Re-apuntar una venta valida la cantidad COMPLETA contra el lote nuevo.
	svc, store := buildVentaSvc()
	origen := seedLote(store, uuid.New(), uuid.New(), 100, model.EstadoDisponible)
	chico := seedLote(store, uuid.New(), uuid.New(), 5, model.EstadoDisponible)
	grande := seedLote(store, uuid.New(), uuid.New(), 50, model.EstadoDisponible)
	venta := seedVenta(store, origen.ID, 10)

	chicoID := chico.ID.String()
	_, err := svc.Actualizar(context.Background(), venta.ID, dto.ActualizarVentaRequest{
		LoteID: &chicoID,
	})
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.CodeBusinessRule, apiErr.Code)
	assert.Equal(t, origen.ID, store.ventas[venta.ID].LoteID) // sin cambios

	grandeID := grande.ID.String()
	resp, err := svc.Actualizar(context.Background(), venta.ID, dto.ActualizarVentaRequest{
		LoteID: &grandeID,
	})
	require.NoError(t, err)
	assert.Equal(t, grande.ID.String(), resp.LoteID)
}

func TestActualizarVenta_Inexistente(t *testing.T) {
	svc, _ := buildVentaSvc()
	nueva := 5
	_, err := svc.Actualizar(context.Background(), uuid.New(), dto.ActualizarVentaRequest{
		CantidadVendida: &nueva,
	})
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.CodeNotFound, apiErr.Code)
}

func TestEliminarVenta_RestauraStock(t *testing.T) {
	svc, store := buildVentaSvc()
	lote := seedLote(store, uuid.New(), uuid.New(), 10, model.EstadoDisponible)
	venta := seedVenta(store, lote.ID, 10)

	// Con la venta viva el lote está agotado.
	_, err := svc.Crear(context.Background(), crearReq(lote.ID, 1))
	require.Error(t, err)

	require.NoError(t, svc.Eliminar(context.Background(), venta.ID))
	assert.Empty(t, store.ventas)

	// El restante se recalcula de las ventas vivas: vuelve a haber lugar.
	_, err = svc.Crear(context.Background(), crearReq(lote.ID, 10))
	assert.NoError(t, err)
}

func TestEliminarVenta_Inexistente(t *testing.T) {
	svc, _ := buildVentaSvc()
	err := svc.Eliminar(context.Background(), uuid.New())
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.CodeNotFound, apiErr.Code)
}
