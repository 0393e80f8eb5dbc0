package dto

import "github.com/shopspring/decimal"

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// ProductoFilter is bound from the query string of GET /productos. Out-of-range
// page/size values are clamped by the service rather than rejected.
type ProductoFilter struct {
	Q         string `form:"q"`
	Categoria string `form:"cat"`
	Page      int    `form:"page,default=1"`
	Size      int    `form:"size,default=12"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID          uint            `json:"id"`
	Nombre      string          `json:"nombre"`
	Precio      decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	Categoria   string          `json:"categoria"`
	ImagenURL   *string         `json:"imagen_url"`
	Descripcion *string         `json:"descripcion"`
}

type ProductoListResponse struct {
	Page       int                `json:"page"`
	Size       int                `json:"size"`
	TotalItems int64              `json:"total_items"`
	TotalPages int                `json:"total_pages"`
	Items      []ProductoResponse `json:"items"`
}
