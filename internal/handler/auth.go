package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabrielpiriz/hackathon-nova-backend/internal/dto"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/middleware"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/service"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Registrar godoc
// @Summary      Registrar un productor
// @Description  Crea la cuenta del productor y devuelve un token de acceso.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.RegistroRequest true "Datos del productor"
// @Success      201  {object} apierror.Respuesta
// @Failure      422  {object} apierror.APIError
// @Router       /api/register [post]
func (h *AuthHandler) Registrar(c *gin.Context) {
	var req dto.RegistroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Productor registrado exitosamente", resp)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.LoginRequest true "Credenciales"
// @Success      200  {object} apierror.Respuesta
// @Failure      403  {object} apierror.APIError
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Sesión iniciada", resp)
}

// Logout revokes the caller's token until its natural expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), middleware.GetToken(c)); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Sesión cerrada", nil)
}

// Perfil returns the authenticated producer's profile.
func (h *AuthHandler) Perfil(c *gin.Context) {
	productorID, ok := callerID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Perfil(c.Request.Context(), productorID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", resp)
}
