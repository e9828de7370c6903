package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabrielpiriz/hackathon-nova-backend/internal/service"
)

type TiposAnimalHandler struct{ svc service.TipoAnimalService }

func NewTiposAnimalHandler(svc service.TipoAnimalService) *TiposAnimalHandler {
	return &TiposAnimalHandler{svc: svc}
}

// Listar godoc
// @Summary      Catálogo de tipos de animal
// @Description  Catálogo público, servido desde cache.
// @Tags         catalogo
// @Produce      json
// @Success      200 {object} apierror.Respuesta
// @Router       /api/animal-types [get]
func (h *TiposAnimalHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", resp)
}
