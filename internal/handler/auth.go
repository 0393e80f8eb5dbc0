package handler

import (
	"errors"
	"net/http"

	"tienda/internal/apierror"
	"tienda/internal/dto"
	"tienda/internal/middleware"
	"tienda/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Register godoc
// @Summary Registro de usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "Datos de registro"
// @Success 201 {object} dto.UsuarioResponse
// @Failure 409 {object} apierror.APIError
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmailRegistrado) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Login de usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Failure 403 {object} apierror.APIError
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCredencialesInvalidas):
			c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		case errors.Is(err, service.ErrResetRequerido):
			c.JSON(http.StatusForbidden, apierror.New(err.Error()))
		default:
			internalError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the profile behind the bearer token.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Me(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUsuarioNoEncontrado) {
			c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
