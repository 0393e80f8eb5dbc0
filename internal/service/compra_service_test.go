package service_test

import (
	"context"
	"testing"
	"time"

	"tienda/internal/dto"
	"tienda/internal/model"
	"tienda/internal/repository"
	"tienda/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubProductoRepo is an in-memory ProductoRepository. lockOrder records the
// sequence of LockByIDTx calls so tests can assert the locking discipline.
type stubProductoRepo struct {
	productos map[uint]*model.Producto
	lockOrder []uint
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uint]*model.Producto)}
}

func (r *stubProductoRepo) seed(id uint, nombre string, precio float64, stock int) *model.Producto {
	p := &model.Producto{
		ID:     id,
		Nombre: nombre,
		Precio: decimal.NewFromFloat(precio),
		Stock:  stock,
	}
	r.productos[id] = p
	return p
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uint) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) List(_ context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var all []model.Producto
	for id := uint(1); id <= uint(len(r.productos)); id++ {
		if p, ok := r.productos[id]; ok {
			all = append(all, *p)
		}
	}
	total := int64(len(all))
	offset := (filter.Page - 1) * filter.Size
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + filter.Size
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *stubProductoRepo) Categorias(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, p := range r.productos {
		if p.Categoria != "" && !seen[p.Categoria] {
			seen[p.Categoria] = true
			out = append(out, p.Categoria)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) LockByIDTx(_ *gorm.DB, id uint) (*model.Producto, error) {
	r.lockOrder = append(r.lockOrder, id)
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) DecrementStockTx(_ *gorm.DB, id uint, cantidad int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock -= cantidad
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// stubCompraRepo captures ledger writes.
type stubCompraRepo struct {
	compras []model.Compra
	seq     uint
}

func (r *stubCompraRepo) CreateTx(_ *gorm.DB, c *model.Compra) error {
	r.seq++
	c.ID = r.seq
	c.Fecha = time.Now().UTC()
	r.compras = append(r.compras, *c)
	return nil
}

func (r *stubCompraRepo) Resumen(_ context.Context, from, to time.Time) (*repository.ResumenVentas, error) {
	var res repository.ResumenVentas
	res.TotalAmount = decimal.Zero
	for _, c := range r.compras {
		if c.Fecha.Before(from) || !c.Fecha.Before(to) {
			continue
		}
		res.PurchaseCount++
		res.UnitCount += int64(c.Cantidad)
	}
	return &res, nil
}

func (r *stubCompraRepo) SerieDiaria(_ context.Context, _, _ time.Time) ([]repository.VentaDia, error) {
	return nil, nil
}

func (r *stubCompraRepo) ListRango(_ context.Context, _, _ time.Time) ([]model.Compra, error) {
	return r.compras, nil
}

func (r *stubCompraRepo) DB() *gorm.DB { return nil }

var _ repository.CompraRepository = (*stubCompraRepo)(nil)

func buildCompraSvc() (service.CompraService, *stubCompraRepo, *stubProductoRepo) {
	productoRepo := newStubProductoRepo()
	compraRepo := &stubCompraRepo{}
	return service.NewCompraService(compraRepo, productoRepo), compraRepo, productoRepo
}

// ── Comprar ───────────────────────────────────────────────────────────────────

func TestComprar_DescuentaStock(t *testing.T) {
	svc, compraRepo, productoRepo := buildCompraSvc()
	productoRepo.seed(1, "Teclado", 19990, 5)

	resp, err := svc.Comprar(context.Background(), dto.CrearCompraRequest{ProductoID: 1, Cantidad: 3})
	require.NoError(t, err)

	assert.Equal(t, "OK", resp.Status)
	assert.Equal(t, uint(1), resp.ProductoID)
	assert.Equal(t, 3, resp.Cantidad)
	assert.NotZero(t, resp.CompraID)
	assert.Equal(t, 2, productoRepo.productos[1].Stock)
	assert.Len(t, compraRepo.compras, 1)
}

func TestComprar_StockInsuficiente(t *testing.T) {
	svc, compraRepo, productoRepo := buildCompraSvc()
	productoRepo.seed(1, "Teclado", 19990, 2)

	_, err := svc.Comprar(context.Background(), dto.CrearCompraRequest{ProductoID: 1, Cantidad: 3})
	assert.ErrorIs(t, err, service.ErrStockInsuficiente)

	// Nothing written, nothing decremented.
	assert.Equal(t, 2, productoRepo.productos[1].Stock)
	assert.Empty(t, compraRepo.compras)
}

func TestComprar_StockExacto(t *testing.T) {
	svc, _, productoRepo := buildCompraSvc()
	productoRepo.seed(1, "Mouse", 9990, 3)

	_, err := svc.Comprar(context.Background(), dto.CrearCompraRequest{ProductoID: 1, Cantidad: 3})
	require.NoError(t, err)
	assert.Equal(t, 0, productoRepo.productos[1].Stock)

	// Stock is now zero: the next unit must be rejected, never negative.
	_, err = svc.Comprar(context.Background(), dto.CrearCompraRequest{ProductoID: 1, Cantidad: 1})
	assert.ErrorIs(t, err, service.ErrStockInsuficiente)
	assert.Equal(t, 0, productoRepo.productos[1].Stock)
}

func TestComprar_ProductoInexistente(t *testing.T) {
	svc, _, _ := buildCompraSvc()

	_, err := svc.Comprar(context.Background(), dto.CrearCompraRequest{ProductoID: 99, Cantidad: 1})
	assert.ErrorIs(t, err, service.ErrProductoNoEncontrado)
}

// ── Checkout ──────────────────────────────────────────────────────────────────

func TestCheckout_Exitoso(t *testing.T) {
	svc, compraRepo, productoRepo := buildCompraSvc()
	productoRepo.seed(1, "Teclado", 19990, 5)
	productoRepo.seed(2, "Mouse", 9990, 10)

	resp, err := svc.Checkout(context.Background(), dto.CheckoutRequest{Items: []dto.ItemCheckoutRequest{
		{ProductoID: 1, Cantidad: 2},
		{ProductoID: 2, Cantidad: 4},
	}})
	require.NoError(t, err)

	assert.Equal(t, "OK", resp.Status)
	assert.Equal(t, 2, resp.TotalItems)
	assert.Equal(t, 6, resp.TotalUnidades)
	assert.Len(t, resp.Compras, 2)
	assert.Equal(t, 3, productoRepo.productos[1].Stock)
	assert.Equal(t, 6, productoRepo.productos[2].Stock)
	assert.Len(t, compraRepo.compras, 2)
}

func TestCheckout_TodoONada(t *testing.T) {
	svc, compraRepo, productoRepo := buildCompraSvc()
	productoRepo.seed(1, "Teclado", 19990, 5)
	productoRepo.seed(2, "Mouse", 9990, 1) // short on stock

	_, err := svc.Checkout(context.Background(), dto.CheckoutRequest{Items: []dto.ItemCheckoutRequest{
		{ProductoID: 1, Cantidad: 2},
		{ProductoID: 2, Cantidad: 4},
	}})
	assert.ErrorIs(t, err, service.ErrStockInsuficiente)

	// The valid line must not have been applied either.
	assert.Equal(t, 5, productoRepo.productos[1].Stock)
	assert.Equal(t, 1, productoRepo.productos[2].Stock)
	assert.Empty(t, compraRepo.compras)
}

func TestCheckout_ProductoInexistenteAbortaLote(t *testing.T) {
	svc, compraRepo, productoRepo := buildCompraSvc()
	productoRepo.seed(1, "Teclado", 19990, 5)

	_, err := svc.Checkout(context.Background(), dto.CheckoutRequest{Items: []dto.ItemCheckoutRequest{
		{ProductoID: 1, Cantidad: 1},
		{ProductoID: 77, Cantidad: 1},
	}})
	assert.ErrorIs(t, err, service.ErrProductoNoEncontrado)
	assert.Equal(t, 5, productoRepo.productos[1].Stock)
	assert.Empty(t, compraRepo.compras)
}

func TestCheckout_Vacio(t *testing.T) {
	svc, _, _ := buildCompraSvc()

	_, err := svc.Checkout(context.Background(), dto.CheckoutRequest{})
	assert.ErrorIs(t, err, service.ErrCheckoutVacio)
}

func TestCheckout_ConsolidaDuplicados(t *testing.T) {
	svc, compraRepo, productoRepo := buildCompraSvc()
	productoRepo.seed(1, "Teclado", 19990, 5)

	// 3 + 3 = 6 > 5: splitting the order across lines must not bypass the
	// stock check.
	_, err := svc.Checkout(context.Background(), dto.CheckoutRequest{Items: []dto.ItemCheckoutRequest{
		{ProductoID: 1, Cantidad: 3},
		{ProductoID: 1, Cantidad: 3},
	}})
	assert.ErrorIs(t, err, service.ErrStockInsuficiente)
	assert.Equal(t, 5, productoRepo.productos[1].Stock)
	assert.Empty(t, compraRepo.compras)
}

func TestCheckout_DuplicadosValidosSeSuman(t *testing.T) {
	svc, compraRepo, productoRepo := buildCompraSvc()
	productoRepo.seed(1, "Teclado", 19990, 5)

	resp, err := svc.Checkout(context.Background(), dto.CheckoutRequest{Items: []dto.ItemCheckoutRequest{
		{ProductoID: 1, Cantidad: 2},
		{ProductoID: 1, Cantidad: 2},
	}})
	require.NoError(t, err)

	// One consolidated ledger row of 4, equivalent to a single line.
	assert.Equal(t, 1, resp.TotalItems)
	assert.Equal(t, 4, resp.TotalUnidades)
	require.Len(t, compraRepo.compras, 1)
	assert.Equal(t, 4, compraRepo.compras[0].Cantidad)
	assert.Equal(t, 1, productoRepo.productos[1].Stock)
}

func TestCheckout_BloqueaEnOrdenAscendente(t *testing.T) {
	svc, _, productoRepo := buildCompraSvc()
	productoRepo.seed(1, "A", 100, 10)
	productoRepo.seed(2, "B", 100, 10)
	productoRepo.seed(3, "C", 100, 10)

	_, err := svc.Checkout(context.Background(), dto.CheckoutRequest{Items: []dto.ItemCheckoutRequest{
		{ProductoID: 3, Cantidad: 1},
		{ProductoID: 1, Cantidad: 1},
		{ProductoID: 2, Cantidad: 1},
	}})
	require.NoError(t, err)

	// Rows are always locked ascending by id regardless of request order.
	assert.Equal(t, []uint{1, 2, 3}, productoRepo.lockOrder)
}
