package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"tienda/internal/dto"
	"tienda/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	dateLayout = "2006-01-02"
	// maxRangeDays bounds an aggregation request (~10 years).
	maxRangeDays = 3660
	// defaultSerieDays is the trailing window when the series is requested
	// without dates.
	defaultSerieDays = 7
)

// ReporteService aggregates the sales ledger for the admin endpoints.
type ReporteService interface {
	Resumen(ctx context.Context, filter dto.RangoFilter) (*dto.ResumenVentasResponse, error)
	Serie(ctx context.Context, filter dto.RangoFilter) ([]dto.SerieDiaResponse, error)
	ExportCSV(ctx context.Context, filter dto.RangoFilter, w io.Writer) error
}

type reporteService struct {
	repo repository.CompraRepository
}

func NewReporteService(repo repository.CompraRepository) ReporteService {
	return &reporteService{repo: repo}
}

// parseRango resolves the requested range into half-open [from, to) day bounds.
// Missing dates fall back to a trailing window of defaultDays ending today.
func parseRango(filter dto.RangoFilter, defaultDays int) (time.Time, time.Time, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	to := today
	if filter.To != "" {
		t, err := time.Parse(dateLayout, filter.To)
		if err != nil {
			return time.Time{}, time.Time{}, ErrRangoInvalido
		}
		to = t
	}

	from := to.AddDate(0, 0, -(defaultDays - 1))
	if filter.From != "" {
		f, err := time.Parse(dateLayout, filter.From)
		if err != nil {
			return time.Time{}, time.Time{}, ErrRangoInvalido
		}
		from = f
	}

	if from.After(to) {
		return time.Time{}, time.Time{}, ErrRangoInvalido
	}
	if to.Sub(from) > time.Duration(maxRangeDays)*24*time.Hour {
		return time.Time{}, time.Time{}, ErrRangoInvalido
	}

	// to is inclusive as a calendar day; the queries use fecha < end.
	return from, to.AddDate(0, 0, 1), nil
}

func (s *reporteService) Resumen(ctx context.Context, filter dto.RangoFilter) (*dto.ResumenVentasResponse, error) {
	from, end, err := parseRango(filter, defaultSerieDays)
	if err != nil {
		return nil, err
	}
	res, err := s.repo.Resumen(ctx, from, end)
	if err != nil {
		return nil, err
	}
	return &dto.ResumenVentasResponse{
		PurchaseCount: res.PurchaseCount,
		UnitCount:     res.UnitCount,
		TotalAmount:   res.TotalAmount,
	}, nil
}

// Serie returns one entry per calendar day in range, zero-filled for days with
// no sales.
func (s *reporteService) Serie(ctx context.Context, filter dto.RangoFilter) ([]dto.SerieDiaResponse, error) {
	from, end, err := parseRango(filter, defaultSerieDays)
	if err != nil {
		return nil, err
	}
	dias, err := s.repo.SerieDiaria(ctx, from, end)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]repository.VentaDia, len(dias))
	for _, d := range dias {
		byDay[d.Dia.UTC().Format(dateLayout)] = d
	}

	var serie []dto.SerieDiaResponse
	for day := from; day.Before(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(dateLayout)
		entry := dto.SerieDiaResponse{Date: key, TotalAmount: decimal.Zero}
		if d, ok := byDay[key]; ok {
			entry.PurchaseCount = d.PurchaseCount
			entry.UnitCount = d.UnitCount
			entry.TotalAmount = d.TotalAmount
		}
		serie = append(serie, entry)
	}
	return serie, nil
}

func (s *reporteService) ExportCSV(ctx context.Context, filter dto.RangoFilter, w io.Writer) error {
	from, end, err := parseRango(filter, defaultSerieDays)
	if err != nil {
		return err
	}
	compras, err := s.repo.ListRango(ctx, from, end)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"fecha", "compra_id", "producto_id", "producto", "cantidad", "precio_unitario", "total"}); err != nil {
		return err
	}
	for _, c := range compras {
		nombre := ""
		precio := decimal.Zero
		if c.Producto != nil {
			nombre = c.Producto.Nombre
			precio = c.Producto.Precio
		}
		total := precio.Mul(decimal.NewFromInt(int64(c.Cantidad)))
		row := []string{
			c.Fecha.UTC().Format(time.RFC3339),
			fmt.Sprintf("%d", c.ID),
			fmt.Sprintf("%d", c.ProductoID),
			nombre,
			fmt.Sprintf("%d", c.Cantidad),
			precio.StringFixed(2),
			total.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
