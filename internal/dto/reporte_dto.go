package dto

import "github.com/shopspring/decimal"

// RangoFilter is bound from the query string of the /admin/ventas endpoints.
// Dates are YYYY-MM-DD; both optional.
type RangoFilter struct {
	From string `form:"from"`
	To   string `form:"to"`
}

type ResumenVentasResponse struct {
	PurchaseCount int64           `json:"purchase_count"`
	UnitCount     int64           `json:"unit_count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// SerieDiaResponse is one calendar day of the sales series. Days without sales
// are present with zero values.
type SerieDiaResponse struct {
	Date          string          `json:"date"` // YYYY-MM-DD
	PurchaseCount int64           `json:"purchase_count"`
	UnitCount     int64           `json:"unit_count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}
