package model

import "github.com/shopspring/decimal"

// Producto is a catalog item. Stock never goes below zero: every decrement
// happens inside a transaction that re-checks availability under a row lock.
type Producto struct {
	ID          uint            `gorm:"primaryKey"`
	Nombre      string          `gorm:"size:120;index;not null"`
	Precio      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock       int             `gorm:"not null;default:0"`
	Categoria   string          `gorm:"size:80;index"`
	ImagenURL   *string
	Descripcion *string
}

func (Producto) TableName() string { return "productos" }
