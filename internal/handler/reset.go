package handler

import (
	"errors"
	"net/http"

	"tienda/internal/apierror"
	"tienda/internal/dto"
	"tienda/internal/service"

	"github.com/gin-gonic/gin"
)

type ResetHandler struct{ svc service.ResetService }

func NewResetHandler(svc service.ResetService) *ResetHandler { return &ResetHandler{svc: svc} }

// RequestReset always answers {ok:true}: the response must not reveal whether
// the email belongs to an account.
func (h *ResetHandler) RequestReset(c *gin.Context) {
	var req dto.RequestResetRequest
	if !bindAndValidate(c, &req) {
		return
	}
	_ = h.svc.RequestReset(c.Request.Context(), req.Email)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ResetPassword consumes a reset token exactly once.
func (h *ResetHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrTokenReset) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
