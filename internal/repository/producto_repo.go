package repository

import (
	"context"

	"tienda/internal/dto"
	"tienda/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductoRepository defines the data access contract for the catalog.
type ProductoRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Producto, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	Categorias(ctx context.Context) ([]string, error)

	// LockByIDTx reads the product row under SELECT ... FOR UPDATE. Other
	// transactions block on the same row until this one commits or rolls back.
	LockByIDTx(tx *gorm.DB, id uint) (*model.Producto, error)
	// DecrementStockTx subtracts cantidad from the locked row.
	DecrementStockTx(tx *gorm.DB, id uint, cantidad int) error

	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) FindByID(ctx context.Context, id uint) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var productos []model.Producto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Producto{})

	if filter.Q != "" {
		term := "%" + filter.Q + "%"
		q = q.Where("nombre ILIKE ? OR descripcion ILIKE ?", term, term)
	}
	if filter.Categoria != "" {
		q = q.Where("categoria = ?", filter.Categoria)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Size
	err := q.Order("id ASC").Limit(filter.Size).Offset(offset).Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) Categorias(ctx context.Context) ([]string, error) {
	var categorias []string
	err := r.db.WithContext(ctx).Model(&model.Producto{}).
		Distinct("categoria").
		Where("categoria <> ''").
		Order("categoria ASC").
		Pluck("categoria", &categorias).Error
	return categorias, err
}

func (r *productoRepo) LockByIDTx(tx *gorm.DB, id uint) (*model.Producto, error) {
	var p model.Producto
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) DecrementStockTx(tx *gorm.DB, id uint, cantidad int) error {
	return tx.Model(&model.Producto{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock - ?", cantidad)).Error
}

func (r *productoRepo) DB() *gorm.DB { return r.db }
