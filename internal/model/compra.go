package model

import "time"

// Compra is one line of the append-only sales ledger. Rows are never updated
// or deleted once written.
type Compra struct {
	ID         uint      `gorm:"primaryKey"`
	ProductoID uint      `gorm:"index;not null"`
	Cantidad   int       `gorm:"not null"`
	Fecha      time.Time `gorm:"autoCreateTime;index"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (Compra) TableName() string { return "compras" }
