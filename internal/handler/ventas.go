package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabrielpiriz/hackathon-nova-backend/internal/dto"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/middleware"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/service"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler { return &VentasHandler{svc: svc} }

// Crear godoc
// @Summary      Registrar una venta
// @Description  Crea la venta validando stock dentro de una transacción con bloqueo del lote.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearVentaRequest true "Detalle de la venta"
// @Success      201  {object} apierror.Respuesta
// @Failure      422  {object} apierror.APIError
// @Router       /api/sales [post]
func (h *VentasHandler) Crear(c *gin.Context) {
	var req dto.CrearVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.VentasRegistradas.WithLabelValues(resp.MetodoPago).Inc()
	respond(c, http.StatusCreated, "Venta registrada exitosamente", resp)
}

// Actualizar godoc
// @Summary      Actualizar una venta
// @Description  Edición parcial; los cambios de cantidad o de lote revalidan el stock.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                     true "UUID de la venta"
// @Param        body body dto.ActualizarVentaRequest true "Campos a modificar"
// @Success      200  {object} apierror.Respuesta
// @Failure      422  {object} apierror.APIError
// @Router       /api/sales/{id} [put]
func (h *VentasHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Venta actualizada", resp)
}

// Eliminar removes a sale; remaining stock is recomputed on the next read.
func (h *VentasHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Venta eliminada", nil)
}

// Obtener returns one sale with its batch context.
func (h *VentasHandler) Obtener(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", resp)
}

// Listar godoc
// @Summary      Listar ventas
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        batch_id       query string false "UUID del lote"
// @Param        buyer_name     query string false "Búsqueda por comprador"
// @Param        payment_method query string false "cash | transfer | check | credit"
// @Param        date_from      query string false "YYYY-MM-DD"
// @Param        date_to        query string false "YYYY-MM-DD"
// @Success      200 {object} apierror.Respuesta
// @Router       /api/sales [get]
func (h *VentasHandler) Listar(c *gin.Context) {
	var filter dto.VentaFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", resp)
}

// Estadisticas returns the sales dashboard aggregates.
func (h *VentasHandler) Estadisticas(c *gin.Context) {
	var filter dto.EstadisticasFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Estadisticas(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", resp)
}
