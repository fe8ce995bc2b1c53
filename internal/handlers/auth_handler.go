package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/turnolibre/internal/auth"
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/middleware"
)

type AuthHandler struct {
	auth *auth.Authenticator
}

func NewAuthHandler(a *auth.Authenticator) *AuthHandler {
	return &AuthHandler{auth: a}
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bind(c, &req) {
		return
	}

	token, err := h.auth.Login(
		c.Request.Context(),
		c.Param("slug"),
		strings.TrimSpace(req.Username),
		req.Password,
	)
	h.respond(c, token, err)
}

func (h *AuthHandler) SuperLogin(c *gin.Context) {
	var req LoginRequest
	if !bind(c, &req) {
		return
	}

	token, err := h.auth.SuperAdminLogin(c.Request.Context(), strings.TrimSpace(req.Username), req.Password)
	h.respond(c, token, err)
}

func (h *AuthHandler) respond(c *gin.Context, token *auth.Token, err error) {
	if errors.Is(err, auth.ErrInvalidCredentials) {
		httperr.Unauthorized(c, "invalid_credentials", "Usuario o contraseña incorrectos.")
		return
	}
	if err != nil {
		httperr.Internal(c, "login_failed", "No se pudo iniciar sesión.")
		return
	}

	c.JSON(http.StatusOK, token)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	s := middleware.SessionFrom(c)
	if s == nil {
		httperr.Unauthorized(c, "unauthenticated", "Sesión inválida.")
		return
	}

	if err := h.auth.Logout(c.Request.Context(), s.ID); err != nil {
		httperr.Internal(c, "logout_failed", "No se pudo cerrar la sesión.")
		return
	}

	c.Status(http.StatusNoContent)
}
