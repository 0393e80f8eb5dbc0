package repository

import (
	"context"
	"time"

	"tienda/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ResumenVentas is the scan target for the aggregated sales query.
type ResumenVentas struct {
	PurchaseCount int64
	UnitCount     int64
	TotalAmount   decimal.Decimal
}

// VentaDia is one aggregated calendar day. Days with no sales are absent here;
// the service zero-fills them.
type VentaDia struct {
	Dia           time.Time
	PurchaseCount int64
	UnitCount     int64
	TotalAmount   decimal.Decimal
}

// CompraRepository writes the append-only sales ledger and runs the reporting
// aggregations over it.
type CompraRepository interface {
	CreateTx(tx *gorm.DB, c *model.Compra) error
	Resumen(ctx context.Context, from, to time.Time) (*ResumenVentas, error)
	SerieDiaria(ctx context.Context, from, to time.Time) ([]VentaDia, error)
	// ListRango returns the raw ledger rows in range, product preloaded,
	// oldest first. Used by the CSV export.
	ListRango(ctx context.Context, from, to time.Time) ([]model.Compra, error)
	DB() *gorm.DB
}

type compraRepo struct{ db *gorm.DB }

func NewCompraRepository(db *gorm.DB) CompraRepository { return &compraRepo{db: db} }

func (r *compraRepo) CreateTx(tx *gorm.DB, c *model.Compra) error {
	return tx.Create(c).Error
}

func (r *compraRepo) Resumen(ctx context.Context, from, to time.Time) (*ResumenVentas, error) {
	var res ResumenVentas
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(c.id)                                   AS purchase_count,
		       COALESCE(SUM(c.cantidad), 0)                  AS unit_count,
		       COALESCE(SUM(c.cantidad * p.precio), 0)       AS total_amount
		FROM compras c
		JOIN productos p ON p.id = c.producto_id
		WHERE c.fecha >= ? AND c.fecha < ?`, from, to).Scan(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *compraRepo) SerieDiaria(ctx context.Context, from, to time.Time) ([]VentaDia, error) {
	var dias []VentaDia
	err := r.db.WithContext(ctx).Raw(`
		SELECT date_trunc('day', c.fecha)                    AS dia,
		       COUNT(c.id)                                   AS purchase_count,
		       COALESCE(SUM(c.cantidad), 0)                  AS unit_count,
		       COALESCE(SUM(c.cantidad * p.precio), 0)       AS total_amount
		FROM compras c
		JOIN productos p ON p.id = c.producto_id
		WHERE c.fecha >= ? AND c.fecha < ?
		GROUP BY 1
		ORDER BY 1 ASC`, from, to).Scan(&dias).Error
	return dias, err
}

func (r *compraRepo) ListRango(ctx context.Context, from, to time.Time) ([]model.Compra, error) {
	var compras []model.Compra
	err := r.db.WithContext(ctx).
		Preload("Producto").
		Where("fecha >= ? AND fecha < ?", from, to).
		Order("fecha ASC, id ASC").
		Find(&compras).Error
	return compras, err
}

func (r *compraRepo) DB() *gorm.DB { return r.db }
