package stock

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielpiriz/hackathon-nova-backend/internal/model"
)

func loteCon(cantidad int, estado string, vendidas ...int) *model.Lote {
	l := &model.Lote{ID: uuid.New(), Cantidad: cantidad, Estado: estado}
	for _, v := range vendidas {
		l.Ventas = append(l.Ventas, model.Venta{ID: uuid.New(), LoteID: l.ID, CantidadVendida: v})
	}
	return l
}

func TestRestante_SinVentas(t *testing.T) {
	l := loteCon(100, model.EstadoDisponible)
	assert.Equal(t, 100, Restante(l))
	assert.Equal(t, 0, TotalVendido(l))
}

func TestRestante_ConVentas(t *testing.T) {
	l := loteCon(100, model.EstadoDisponible, 60)
	assert.Equal(t, 40, Restante(l))
	assert.Equal(t, 60, TotalVendido(l))
}

func TestPuedeVender_ExcedeRestante(t *testing.T) {
	// 100 animales, 60 vendidos: caben 40, no 41.
	l := loteCon(100, model.EstadoDisponible, 60)
	assert.False(t, PuedeVender(l, 41))
	assert.True(t, PuedeVender(l, 40))
}

func TestPuedeVender_ExactamenteElRestante(t *testing.T) {
	l := loteCon(10, model.EstadoDisponible, 4, 3)
	assert.True(t, PuedeVender(l, 3))
	assert.False(t, PuedeVender(l, 4))
}

func TestPuedeVenderEdicion_ExcluyeLaVentaEditada(t *testing.T) {
	l := loteCon(100, model.EstadoDisponible, 60, 30)
	ventaEditada := l.Ventas[0].ID // la de 60

	// Sin excluirla solo quedan 10; excluyéndola hay 70 disponibles.
	assert.False(t, PuedeVender(l, 70))
	assert.True(t, PuedeVenderEdicion(l, ventaEditada, 70))
	assert.False(t, PuedeVenderEdicion(l, ventaEditada, 71))
}

func TestEstaVendido_PorEstado(t *testing.T) {
	l := loteCon(100, model.EstadoVendido)
	assert.True(t, EstaVendido(l))
}

func TestEstaVendido_PorAritmetica(t *testing.T) {
	// Estado disponible pero sin stock restante: vendido igual.
	l := loteCon(10, model.EstadoDisponible, 10)
	assert.True(t, EstaVendido(l))
}

func TestEstaVendido_Disponible(t *testing.T) {
	l := loteCon(10, model.EstadoDisponible, 5)
	assert.False(t, EstaVendido(l))
}

func TestValidarEliminacion_SinRestricciones(t *testing.T) {
	l := loteCon(10, model.EstadoDisponible)
	ok, restricciones := ValidarEliminacion(l, time.Now())
	assert.True(t, ok)
	assert.Empty(t, restricciones)
}

func TestValidarEliminacion_ConVentas(t *testing.T) {
	l := loteCon(10, model.EstadoDisponible, 3, 2)
	ok, restricciones := ValidarEliminacion(l, time.Now())
	require.False(t, ok)
	require.Len(t, restricciones, 1)
	assert.Equal(t, "sales_exist", restricciones[0].Type)
	assert.Equal(t, 2, restricciones[0].Count)
	assert.Equal(t, 5, restricciones[0].TotalSold)
}

func TestValidarEliminacion_ReportaTodasLasViolaciones(t *testing.T) {
	// Vendido Y con ventas: ambas restricciones a la vez, no solo la primera.
	l := loteCon(10, model.EstadoVendido, 10)
	ok, restricciones := ValidarEliminacion(l, time.Now())
	require.False(t, ok)
	require.Len(t, restricciones, 2)

	tipos := []string{restricciones[0].Type, restricciones[1].Type}
	assert.Contains(t, tipos, "sales_exist")
	assert.Contains(t, tipos, "status_sold")
}

func TestValidarEliminacion_ReservadoConActividadReciente(t *testing.T) {
	ahora := time.Now()
	l := loteCon(10, model.EstadoReservado)
	l.Precios = []model.PrecioHistorico{
		{LoteID: l.ID, Fecha: ahora.AddDate(0, 0, -2)},  // dentro de la ventana
		{LoteID: l.ID, Fecha: ahora.AddDate(0, 0, -30)}, // fuera
	}

	ok, restricciones := ValidarEliminacion(l, ahora)
	require.False(t, ok)
	require.Len(t, restricciones, 1)
	assert.Equal(t, "reserved_with_recent_activity", restricciones[0].Type)
	assert.Equal(t, 1, restricciones[0].Count)
}

func TestValidarEliminacion_ReservadoSinActividadReciente(t *testing.T) {
	ahora := time.Now()
	l := loteCon(10, model.EstadoReservado)
	l.Precios = []model.PrecioHistorico{
		{LoteID: l.ID, Fecha: ahora.AddDate(0, 0, -8)}, // justo fuera de los 7 días
	}

	ok, restricciones := ValidarEliminacion(l, ahora)
	assert.True(t, ok)
	assert.Empty(t, restricciones)
}

func TestValidarEliminacion_LimiteDeVentana(t *testing.T) {
	ahora := time.Now()
	l := loteCon(10, model.EstadoReservado)
	// Exactamente en el límite de 7 días cuenta como reciente.
	l.Precios = []model.PrecioHistorico{{LoteID: l.ID, Fecha: ahora.Add(-7 * 24 * time.Hour)}}

	ok, _ := ValidarEliminacion(l, ahora)
	assert.False(t, ok)
}
