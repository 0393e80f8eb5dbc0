package service

import (
	"context"
	"errors"

	"tienda/internal/dto"
	"tienda/internal/model"
	"tienda/internal/repository"

	"gorm.io/gorm"
)

// CatalogoService serves the public product catalog.
type CatalogoService interface {
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.ProductoResponse, error)
	Categorias(ctx context.Context) ([]string, error)
}

type catalogoService struct {
	repo repository.ProductoRepository
}

func NewCatalogoService(repo repository.ProductoRepository) CatalogoService {
	return &catalogoService{repo: repo}
}

func mapProducto(p model.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:          p.ID,
		Nombre:      p.Nombre,
		Precio:      p.Precio,
		Stock:       p.Stock,
		Categoria:   p.Categoria,
		ImagenURL:   p.ImagenURL,
		Descripcion: p.Descripcion,
	}
}

// Listar returns one page of the catalog. Pages past the end come back with an
// empty item list but accurate totals.
func (s *catalogoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Size < 1 {
		filter.Size = 12
	}
	if filter.Size > 100 {
		filter.Size = 100
	}

	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Size) - 1) / int64(filter.Size))
	items := make([]dto.ProductoResponse, 0, len(productos))
	for _, p := range productos {
		items = append(items, mapProducto(p))
	}
	return &dto.ProductoListResponse{
		Page:       filter.Page,
		Size:       filter.Size,
		TotalItems: total,
		TotalPages: totalPages,
		Items:      items,
	}, nil
}

func (s *catalogoService) ObtenerPorID(ctx context.Context, id uint) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}
	resp := mapProducto(*p)
	return &resp, nil
}

func (s *catalogoService) Categorias(ctx context.Context) ([]string, error) {
	return s.repo.Categorias(ctx)
}
