package service_test

import (
	"bytes"
	"context"
	"strings"
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

// stubReporteRepo returns canned aggregation results and records the range the
// service asked for.
type stubReporteRepo struct {
	resumen *repository.ResumenVentas
	dias    []repository.VentaDia
	compras []model.Compra

	gotFrom time.Time
	gotTo   time.Time
}

func (r *stubReporteRepo) CreateTx(_ *gorm.DB, _ *model.Compra) error { return nil }

func (r *stubReporteRepo) Resumen(_ context.Context, from, to time.Time) (*repository.ResumenVentas, error) {
	r.gotFrom, r.gotTo = from, to
	return r.resumen, nil
}

func (r *stubReporteRepo) SerieDiaria(_ context.Context, from, to time.Time) ([]repository.VentaDia, error) {
	r.gotFrom, r.gotTo = from, to
	return r.dias, nil
}

func (r *stubReporteRepo) ListRango(_ context.Context, from, to time.Time) ([]model.Compra, error) {
	r.gotFrom, r.gotTo = from, to
	return r.compras, nil
}

func (r *stubReporteRepo) DB() *gorm.DB { return nil }

var _ repository.CompraRepository = (*stubReporteRepo)(nil)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// ── Resumen ───────────────────────────────────────────────────────────────────

func TestResumen_RangoExplicito(t *testing.T) {
	repo := &stubReporteRepo{resumen: &repository.ResumenVentas{
		PurchaseCount: 4,
		UnitCount:     9,
		TotalAmount:   decimal.NewFromInt(123450),
	}}
	svc := service.NewReporteService(repo)

	resp, err := svc.Resumen(context.Background(), dto.RangoFilter{From: "2026-08-01", To: "2026-08-07"})
	require.NoError(t, err)

	assert.Equal(t, int64(4), resp.PurchaseCount)
	assert.Equal(t, int64(9), resp.UnitCount)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(123450)))

	// The inclusive day range becomes a half-open query bound.
	assert.Equal(t, day("2026-08-01"), repo.gotFrom)
	assert.Equal(t, day("2026-08-08"), repo.gotTo)
}

func TestResumen_RangoInvalido(t *testing.T) {
	svc := service.NewReporteService(&stubReporteRepo{})

	cases := []dto.RangoFilter{
		{From: "2026-08-07", To: "2026-08-01"}, // inverted
		{From: "07/08/2026"},                   // wrong layout
		{To: "ayer"},
		{From: "2006-01-01", To: "2026-08-01"}, // beyond the range cap
	}
	for _, f := range cases {
		_, err := svc.Resumen(context.Background(), f)
		assert.ErrorIs(t, err, service.ErrRangoInvalido, "filter %+v", f)
	}
}

func TestResumen_MismoDia(t *testing.T) {
	repo := &stubReporteRepo{resumen: &repository.ResumenVentas{}}
	svc := service.NewReporteService(repo)

	_, err := svc.Resumen(context.Background(), dto.RangoFilter{From: "2026-08-05", To: "2026-08-05"})
	require.NoError(t, err)
	assert.Equal(t, day("2026-08-05"), repo.gotFrom)
	assert.Equal(t, day("2026-08-06"), repo.gotTo)
}

// ── Serie ─────────────────────────────────────────────────────────────────────

func TestSerie_RellenaDiasSinVentas(t *testing.T) {
	repo := &stubReporteRepo{dias: []repository.VentaDia{
		{Dia: day("2026-08-02"), PurchaseCount: 2, UnitCount: 5, TotalAmount: decimal.NewFromInt(500)},
		{Dia: day("2026-08-04"), PurchaseCount: 1, UnitCount: 1, TotalAmount: decimal.NewFromInt(100)},
	}}
	svc := service.NewReporteService(repo)

	serie, err := svc.Serie(context.Background(), dto.RangoFilter{From: "2026-08-01", To: "2026-08-05"})
	require.NoError(t, err)
	require.Len(t, serie, 5)

	// Every calendar day present, gaps zero-filled.
	assert.Equal(t, "2026-08-01", serie[0].Date)
	assert.Zero(t, serie[0].PurchaseCount)
	assert.True(t, serie[0].TotalAmount.IsZero())

	assert.Equal(t, "2026-08-02", serie[1].Date)
	assert.Equal(t, int64(2), serie[1].PurchaseCount)
	assert.Equal(t, int64(5), serie[1].UnitCount)

	assert.Equal(t, "2026-08-03", serie[2].Date)
	assert.Zero(t, serie[2].PurchaseCount)

	assert.Equal(t, "2026-08-04", serie[3].Date)
	assert.Equal(t, int64(1), serie[3].PurchaseCount)

	assert.Equal(t, "2026-08-05", serie[4].Date)
	assert.Zero(t, serie[4].PurchaseCount)
}

func TestSerie_SinFechasUsaSemanaActual(t *testing.T) {
	repo := &stubReporteRepo{}
	svc := service.NewReporteService(repo)

	serie, err := svc.Serie(context.Background(), dto.RangoFilter{})
	require.NoError(t, err)
	assert.Len(t, serie, 7)
	assert.Equal(t, 7*24*time.Hour, repo.gotTo.Sub(repo.gotFrom))
}

// ── ExportCSV ─────────────────────────────────────────────────────────────────

func TestExportCSV(t *testing.T) {
	teclado := &model.Producto{ID: 1, Nombre: "Teclado", Precio: decimal.NewFromFloat(19990.50)}
	repo := &stubReporteRepo{compras: []model.Compra{
		{ID: 10, ProductoID: 1, Cantidad: 2, Fecha: day("2026-08-02"), Producto: teclado},
	}}
	svc := service.NewReporteService(repo)

	var buf bytes.Buffer
	err := svc.ExportCSV(context.Background(), dto.RangoFilter{From: "2026-08-01", To: "2026-08-07"}, &buf)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "fecha,compra_id,producto_id,producto,cantidad,precio_unitario,total", lines[0])
	assert.Equal(t, "2026-08-02T00:00:00Z,10,1,Teclado,2,19990.50,39981.00", lines[1])
}

func TestExportCSV_RangoInvalido(t *testing.T) {
	svc := service.NewReporteService(&stubReporteRepo{})

	var buf bytes.Buffer
	err := svc.ExportCSV(context.Background(), dto.RangoFilter{From: "2026-09-01", To: "2026-08-01"}, &buf)
	assert.ErrorIs(t, err, service.ErrRangoInvalido)
	assert.Zero(t, buf.Len())
}
