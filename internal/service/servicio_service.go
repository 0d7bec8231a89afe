package service

import (
	"context"
	"time"

	"clinicavet/internal/dto"
	"clinicavet/internal/model"
	"clinicavet/internal/repository"

	"github.com/google/uuid"
)

type ServicioService interface {
	Crear(ctx context.Context, req dto.CrearServicioRequest) (*dto.ServicioResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ServicioResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.ServicioResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarServicioRequest) (*dto.ServicioResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type servicioService struct {
	repo repository.ServicioRepository
}

func NewServicioService(repo repository.ServicioRepository) ServicioService {
	return &servicioService{repo: repo}
}

func (s *servicioService) Crear(ctx context.Context, req dto.CrearServicioRequest) (*dto.ServicioResponse, error) {
	sv := &model.Servicio{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Categoria:   req.Categoria,
		Precio:      req.Precio,
		DuracionMin: req.DuracionMin,
		Activo:      true,
	}
	if sv.Categoria == "" {
		sv.Categoria = "general"
	}
	if sv.DuracionMin == 0 {
		sv.DuracionMin = 30
	}
	if err := s.repo.Create(ctx, sv); err != nil {
		return nil, err
	}
	return servicioToResponse(sv), nil
}

func (s *servicioService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ServicioResponse, error) {
	sv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	return servicioToResponse(sv), nil
}

func (s *servicioService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.ServicioResponse, error) {
	servicios, err := s.repo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ServicioResponse, len(servicios))
	for i := range servicios {
		out[i] = *servicioToResponse(&servicios[i])
	}
	return out, nil
}

func (s *servicioService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarServicioRequest) (*dto.ServicioResponse, error) {
	sv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}

	if req.Nombre != "" {
		sv.Nombre = req.Nombre
	}
	if req.Descripcion != nil {
		sv.Descripcion = req.Descripcion
	}
	if req.Categoria != "" {
		sv.Categoria = req.Categoria
	}
	if req.Precio != nil {
		sv.Precio = *req.Precio
	}
	if req.DuracionMin != nil {
		sv.DuracionMin = *req.DuracionMin
	}

	if err := s.repo.Update(ctx, sv); err != nil {
		return nil, err
	}
	return servicioToResponse(sv), nil
}

func (s *servicioService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNoEncontrado
	}
	return s.repo.SoftDelete(ctx, id)
}

func servicioToResponse(sv *model.Servicio) *dto.ServicioResponse {
	return &dto.ServicioResponse{
		ID:          sv.ID.String(),
		Nombre:      sv.Nombre,
		Descripcion: sv.Descripcion,
		Categoria:   sv.Categoria,
		Precio:      sv.Precio,
		DuracionMin: sv.DuracionMin,
		Activo:      sv.Activo,
		CreatedAt:   sv.CreatedAt.Format(time.RFC3339),
	}
}
