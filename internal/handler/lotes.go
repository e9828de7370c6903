package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabrielpiriz/hackathon-nova-backend/internal/dto"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/service"
)

type LotesHandler struct {
	svc         service.LoteService
	analisisSvc service.AnalisisService
}

func NewLotesHandler(svc service.LoteService, analisisSvc service.AnalisisService) *LotesHandler {
	return &LotesHandler{svc: svc, analisisSvc: analisisSvc}
}

// Crear godoc
// @Summary      Crear un lote
// @Description  Registra un lote de animales del productor autenticado.
// @Tags         lotes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearLoteRequest true "Datos del lote"
// @Success      201  {object} apierror.Respuesta
// @Failure      422  {object} apierror.APIError
// @Router       /api/batches [post]
func (h *LotesHandler) Crear(c *gin.Context) {
	productorID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.CrearLoteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), productorID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Lote creado exitosamente", resp)
}

// Listar godoc
// @Summary      Listar lotes
// @Description  Lista paginada con filtros, orden y estadísticas agregadas.
// @Tags         lotes
// @Produce      json
// @Security     BearerAuth
// @Param        animal_type_id query string false "UUID del tipo de animal"
// @Param        status         query string false "available | sold | reserved"
// @Param        producer_id    query string false "UUID del productor"
// @Param        search         query string false "Búsqueda en notas"
// @Success      200 {object} apierror.Respuesta
// @Router       /api/batches [get]
func (h *LotesHandler) Listar(c *gin.Context) {
	var filter dto.LoteFilter
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

// Obtener returns one batch with its computed stock fields.
func (h *LotesHandler) Obtener(c *gin.Context) {
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

// MisLotes returns the authenticated producer's batches.
func (h *LotesHandler) MisLotes(c *gin.Context) {
	productorID, ok := callerID(c)
	if !ok {
		return
	}
	resp, err := h.svc.MisLotes(c.Request.Context(), productorID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", resp)
}

// Ventas returns the sales recorded against one batch.
func (h *LotesHandler) Ventas(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.VentasDeLote(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", resp)
}

// MarcarVendido godoc
// @Summary      Marcar lote como vendido
// @Description  Transición manual de estado; falla con 422 si ya está vendido.
// @Tags         lotes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del lote"
// @Success      200 {object} apierror.Respuesta
// @Failure      403 {object} apierror.APIError
// @Failure      422 {object} apierror.APIError
// @Router       /api/batches/{id}/mark-as-sold [patch]
func (h *LotesHandler) MarcarVendido(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	productorID, ok := callerID(c)
	if !ok {
		return
	}
	resp, err := h.svc.MarcarVendido(c.Request.Context(), id, productorID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Lote marcado como vendido", resp)
}

// Eliminar godoc
// @Summary      Eliminar lote
// @Description  Elimina el lote si ninguna restricción lo bloquea; si hay varias, reporta todas.
// @Tags         lotes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del lote"
// @Success      200 {object} apierror.Respuesta
// @Failure      403 {object} apierror.APIError
// @Failure      422 {object} apierror.APIError
// @Router       /api/batches/{id} [delete]
func (h *LotesHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	productorID, ok := callerID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Eliminar(c.Request.Context(), id, productorID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Lote eliminado exitosamente", resp)
}

// AgregarPrecio records a manual price observation for one batch.
func (h *LotesHandler) AgregarPrecio(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	productorID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.CrearPrecioHistoricoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarPrecio(c.Request.Context(), id, productorID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Precio registrado", resp)
}

// ListarPrecios returns one batch's price history in chronological order.
func (h *LotesHandler) ListarPrecios(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListarPrecios(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", resp)
}

// Analizar godoc
// @Summary      Analizar precios
// @Description  Envía los historiales de precios al servicio externo y persiste las sugerencias.
// @Tags         lotes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} apierror.Respuesta
// @Failure      500 {object} apierror.APIError
// @Router       /api/batches/analyze [post]
func (h *LotesHandler) Analizar(c *gin.Context) {
	resp, err := h.analisisSvc.Analizar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Análisis completado", resp)
}
