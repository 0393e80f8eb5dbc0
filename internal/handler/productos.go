package handler

import (
	"errors"
	"net/http"
	"strconv"

	"tienda/internal/apierror"
	"tienda/internal/dto"
	"tienda/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductosHandler struct{ svc service.CatalogoService }

func NewProductosHandler(svc service.CatalogoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

// Listar godoc
// @Summary      Listar productos
// @Description  Catalogo paginado con busqueda libre (q) y filtro por categoria (cat).
// @Tags         catalogo
// @Produce      json
// @Param        page query int    false "Pagina (default 1)"
// @Param        size query int    false "Items por pagina (default 12, max 100)"
// @Param        q    query string false "Busqueda en nombre y descripcion"
// @Param        cat  query string false "Categoria exacta"
// @Success      200 {object} dto.ProductoListResponse
// @Router       /productos [get]
func (h *ProductosHandler) Listar(c *gin.Context) {
	var filter dto.ProductoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) ObtenerPorID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductoNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) Categorias(c *gin.Context) {
	categorias, err := h.svc.Categorias(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, categorias)
}
