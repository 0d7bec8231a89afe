package service

import (
	"context"
	"time"

	"clinicavet/internal/dto"
	"clinicavet/internal/model"
	"clinicavet/internal/repository"

	"github.com/google/uuid"
)

type PropietarioService interface {
	Crear(ctx context.Context, req dto.CrearPropietarioRequest) (*dto.PropietarioResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.PropietarioResponse, error)
	Listar(ctx context.Context, filter dto.PropietarioFilter) (*dto.PropietarioListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPropietarioRequest) (*dto.PropietarioResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type propietarioService struct {
	repo repository.PropietarioRepository
}

func NewPropietarioService(repo repository.PropietarioRepository) PropietarioService {
	return &propietarioService{repo: repo}
}

func (s *propietarioService) Crear(ctx context.Context, req dto.CrearPropietarioRequest) (*dto.PropietarioResponse, error) {
	p := &model.Propietario{
		Nombre:    req.Nombre,
		RTN:       req.RTN,
		Email:     req.Email,
		Telefono:  req.Telefono,
		Direccion: req.Direccion,
		Activo:    true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return propietarioToResponse(p), nil
}

func (s *propietarioService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.PropietarioResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	return propietarioToResponse(p), nil
}

func (s *propietarioService) Listar(ctx context.Context, filter dto.PropietarioFilter) (*dto.PropietarioListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	propietarios, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PropietarioResponse, len(propietarios))
	for i := range propietarios {
		data[i] = *propietarioToResponse(&propietarios[i])
	}
	return &dto.PropietarioListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *propietarioService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPropietarioRequest) (*dto.PropietarioResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}

	if req.Nombre != "" {
		p.Nombre = req.Nombre
	}
	if req.RTN != nil {
		p.RTN = req.RTN
	}
	if req.Email != nil {
		p.Email = req.Email
	}
	if req.Telefono != nil {
		p.Telefono = req.Telefono
	}
	if req.Direccion != nil {
		p.Direccion = req.Direccion
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return propietarioToResponse(p), nil
}

func (s *propietarioService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNoEncontrado
	}
	return s.repo.SoftDelete(ctx, id)
}

func propietarioToResponse(p *model.Propietario) *dto.PropietarioResponse {
	return &dto.PropietarioResponse{
		ID:        p.ID.String(),
		Nombre:    p.Nombre,
		RTN:       p.RTN,
		Email:     p.Email,
		Telefono:  p.Telefono,
		Direccion: p.Direccion,
		Activo:    p.Activo,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}
