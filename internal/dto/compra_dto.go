package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearCompraRequest struct {
	ProductoID uint `json:"producto_id" validate:"required,min=1"`
	Cantidad   int  `json:"cantidad"    validate:"required,min=1"`
}

type ItemCheckoutRequest struct {
	ProductoID uint `json:"producto_id" validate:"required,min=1"`
	Cantidad   int  `json:"cantidad"    validate:"required,min=1"`
}

// Items may bind empty; the service rejects an empty checkout with its own
// error so the client sees 400, not a field-validation 422.
type CheckoutRequest struct {
	Items []ItemCheckoutRequest `json:"items" validate:"dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CompraResponse struct {
	Status     string `json:"status"`
	CompraID   uint   `json:"compra_id"`
	ProductoID uint   `json:"producto_id"`
	Cantidad   int    `json:"cantidad"`
}

type CheckoutResponse struct {
	Status        string           `json:"status"`
	TotalItems    int              `json:"total_items"`
	TotalUnidades int              `json:"total_unidades"`
	Compras       []CompraResponse `json:"compras"`
}
