package service

import (
	"context"
	"errors"
	"sort"

	"tienda/internal/dto"
	"tienda/internal/model"
	"tienda/internal/repository"

	"gorm.io/gorm"
)

// CompraService records sales. All stock invariants are enforced through the
// store's transaction and row-locking guarantees — the service itself holds
// no state between calls.
type CompraService interface {
	Comprar(ctx context.Context, req dto.CrearCompraRequest) (*dto.CompraResponse, error)
	Checkout(ctx context.Context, req dto.CheckoutRequest) (*dto.CheckoutResponse, error)
}

type compraService struct {
	compraRepo   repository.CompraRepository
	productoRepo repository.ProductoRepository
}

func NewCompraService(compraRepo repository.CompraRepository, productoRepo repository.ProductoRepository) CompraService {
	return &compraService{compraRepo: compraRepo, productoRepo: productoRepo}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// Comprar registers a single sale atomically:
// lock the product row, re-check stock under the lock, append the ledger row,
// decrement stock, commit. Any failure rolls the whole thing back.
func (s *compraService) Comprar(ctx context.Context, req dto.CrearCompraRequest) (*dto.CompraResponse, error) {
	var compra model.Compra
	txErr := runTx(ctx, s.compraRepo.DB(), func(tx *gorm.DB) error {
		p, err := s.productoRepo.LockByIDTx(tx, req.ProductoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductoNoEncontrado
			}
			return err
		}
		if p.Stock < req.Cantidad {
			return ErrStockInsuficiente
		}

		compra = model.Compra{ProductoID: p.ID, Cantidad: req.Cantidad}
		if err := s.compraRepo.CreateTx(tx, &compra); err != nil {
			return err
		}
		return s.productoRepo.DecrementStockTx(tx, p.ID, req.Cantidad)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.CompraResponse{
		Status:     "OK",
		CompraID:   compra.ID,
		ProductoID: compra.ProductoID,
		Cantidad:   compra.Cantidad,
	}, nil
}

// Checkout registers a batch of sales all-or-nothing.
//
// Duplicate product ids are consolidated by summing quantities BEFORE any
// validation, so splitting one oversized order across several lines cannot
// bypass the stock check. Rows are then locked in ascending id order — a
// deterministic order means two overlapping concurrent checkouts always
// contend on the first shared row instead of deadlocking. Only after every
// line passes validation does any write happen.
func (s *compraService) Checkout(ctx context.Context, req dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if len(req.Items) == 0 {
		return nil, ErrCheckoutVacio
	}

	// Consolidate duplicates.
	cantidades := make(map[uint]int, len(req.Items))
	for _, item := range req.Items {
		cantidades[item.ProductoID] += item.Cantidad
	}
	ids := make([]uint, 0, len(cantidades))
	for id := range cantidades {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	compras := make([]model.Compra, 0, len(ids))
	txErr := runTx(ctx, s.compraRepo.DB(), func(tx *gorm.DB) error {
		// Phase 1: lock and validate every row before touching anything.
		for _, id := range ids {
			p, err := s.productoRepo.LockByIDTx(tx, id)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductoNoEncontrado
				}
				return err
			}
			if p.Stock < cantidades[id] {
				return ErrStockInsuficiente
			}
		}

		// Phase 2: all lines passed — append ledger rows and decrement.
		for _, id := range ids {
			compra := model.Compra{ProductoID: id, Cantidad: cantidades[id]}
			if err := s.compraRepo.CreateTx(tx, &compra); err != nil {
				return err
			}
			if err := s.productoRepo.DecrementStockTx(tx, id, cantidades[id]); err != nil {
				return err
			}
			compras = append(compras, compra)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := &dto.CheckoutResponse{
		Status:  "OK",
		Compras: make([]dto.CompraResponse, 0, len(compras)),
	}
	for _, c := range compras {
		resp.TotalItems++
		resp.TotalUnidades += c.Cantidad
		resp.Compras = append(resp.Compras, dto.CompraResponse{
			Status:     "OK",
			CompraID:   c.ID,
			ProductoID: c.ProductoID,
			Cantidad:   c.Cantidad,
		})
	}
	return resp, nil
}
