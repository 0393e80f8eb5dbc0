package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"tienda/internal/apierror"
	"tienda/internal/dto"
	"tienda/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

func bindRango(c *gin.Context) (dto.RangoFilter, bool) {
	var filter dto.RangoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return filter, false
	}
	return filter, true
}

func rangoError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrRangoInvalido) {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	internalError(c, err)
}

// Resumen godoc
// @Summary      Resumen de ventas
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        from query string false "YYYY-MM-DD"
// @Param        to   query string false "YYYY-MM-DD"
// @Success      200 {object} dto.ResumenVentasResponse
// @Failure      400 {object} apierror.APIError
// @Router       /admin/ventas/resumen [get]
func (h *ReportesHandler) Resumen(c *gin.Context) {
	filter, ok := bindRango(c)
	if !ok {
		return
	}
	resp, err := h.svc.Resumen(c.Request.Context(), filter)
	if err != nil {
		rangoError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Serie returns the zero-filled daily sales series.
func (h *ReportesHandler) Serie(c *gin.Context) {
	filter, ok := bindRango(c)
	if !ok {
		return
	}
	resp, err := h.svc.Serie(c.Request.Context(), filter)
	if err != nil {
		rangoError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportCSV streams the raw ledger rows in range as a CSV attachment.
func (h *ReportesHandler) ExportCSV(c *gin.Context) {
	filter, ok := bindRango(c)
	if !ok {
		return
	}

	filename := fmt.Sprintf("ventas_%s.csv", time.Now().UTC().Format("20060102"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.svc.ExportCSV(c.Request.Context(), filter, c.Writer); err != nil {
		// Headers may already be out; log and bail.
		rangoError(c, err)
		return
	}
}
