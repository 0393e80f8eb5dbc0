package handler

import (
	"errors"
	"net/http"

	"tienda/internal/apierror"
	"tienda/internal/dto"
	"tienda/internal/service"

	"github.com/gin-gonic/gin"
)

type ComprasHandler struct{ svc service.CompraService }

func NewComprasHandler(svc service.CompraService) *ComprasHandler {
	return &ComprasHandler{svc: svc}
}

// compraError maps the purchase failure taxonomy onto HTTP statuses.
func compraError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductoNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrStockInsuficiente):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrCheckoutVacio):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	default:
		internalError(c, err)
	}
}

// Comprar godoc
// @Summary      Registrar una compra
// @Description  Descuenta stock y registra la venta en una transaccion atomica.
// @Tags         compras
// @Accept       json
// @Produce      json
// @Param        body body dto.CrearCompraRequest true "Detalle de la compra"
// @Success      201 {object} dto.CompraResponse
// @Failure      404 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /compras [post]
func (h *ComprasHandler) Comprar(c *gin.Context) {
	var req dto.CrearCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Comprar(c.Request.Context(), req)
	if err != nil {
		compraError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Checkout godoc
// @Summary      Checkout multi-item
// @Description  Lote todo-o-nada: cualquier item sin stock aborta el lote completo.
// @Tags         compras
// @Accept       json
// @Produce      json
// @Param        body body dto.CheckoutRequest true "Items del carrito"
// @Success      201 {object} dto.CheckoutResponse
// @Failure      400 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /checkout [post]
func (h *ComprasHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Checkout(c.Request.Context(), req)
	if err != nil {
		compraError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
