package service

import (
	"context"
	"time"

	"clinicavet/internal/dto"
	"clinicavet/internal/model"
	"clinicavet/internal/repository"

	"github.com/google/uuid"
)

type MascotaService interface {
	Crear(ctx context.Context, req dto.CrearMascotaRequest) (*dto.MascotaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.MascotaResponse, error)
	Listar(ctx context.Context, filter dto.MascotaFilter) (*dto.MascotaListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarMascotaRequest) (*dto.MascotaResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type mascotaService struct {
	repo            repository.MascotaRepository
	propietarioRepo repository.PropietarioRepository
}

func NewMascotaService(repo repository.MascotaRepository, propietarioRepo repository.PropietarioRepository) MascotaService {
	return &mascotaService{repo: repo, propietarioRepo: propietarioRepo}
}

func (s *mascotaService) Crear(ctx context.Context, req dto.CrearMascotaRequest) (*dto.MascotaResponse, error) {
	pid, err := uuid.Parse(req.PropietarioID)
	if err != nil {
		return nil, errValidacion("propietario_id inválido")
	}
	if _, err := s.propietarioRepo.FindByID(ctx, pid); err != nil {
		return nil, errValidacion("el propietario no existe")
	}

	m := &model.Mascota{
		Nombre:        req.Nombre,
		Especie:       req.Especie,
		Raza:          req.Raza,
		Sexo:          req.Sexo,
		PesoKg:        req.PesoKg,
		PropietarioID: pid,
		Activo:        true,
	}
	if req.FechaNacimiento != nil {
		fecha, err := time.Parse("2006-01-02", *req.FechaNacimiento)
		if err != nil {
			return nil, errValidacion("fecha_nacimiento inválida, use YYYY-MM-DD")
		}
		m.FechaNacimiento = &fecha
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return mascotaToResponse(m), nil
}

func (s *mascotaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.MascotaResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	return mascotaToResponse(m), nil
}

func (s *mascotaService) Listar(ctx context.Context, filter dto.MascotaFilter) (*dto.MascotaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	mascotas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MascotaResponse, len(mascotas))
	for i := range mascotas {
		data[i] = *mascotaToResponse(&mascotas[i])
	}
	return &dto.MascotaListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *mascotaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarMascotaRequest) (*dto.MascotaResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}

	if req.Nombre != "" {
		m.Nombre = req.Nombre
	}
	if req.Especie != "" {
		m.Especie = req.Especie
	}
	if req.Raza != nil {
		m.Raza = req.Raza
	}
	if req.Sexo != nil {
		m.Sexo = req.Sexo
	}
	if req.PesoKg != nil {
		m.PesoKg = req.PesoKg
	}
	if req.FechaNacimiento != nil {
		fecha, err := time.Parse("2006-01-02", *req.FechaNacimiento)
		if err != nil {
			return nil, errValidacion("fecha_nacimiento inválida, use YYYY-MM-DD")
		}
		m.FechaNacimiento = &fecha
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return mascotaToResponse(m), nil
}

func (s *mascotaService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNoEncontrado
	}
	return s.repo.SoftDelete(ctx, id)
}

func mascotaToResponse(m *model.Mascota) *dto.MascotaResponse {
	resp := &dto.MascotaResponse{
		ID:            m.ID.String(),
		Nombre:        m.Nombre,
		Especie:       m.Especie,
		Raza:          m.Raza,
		Sexo:          m.Sexo,
		PesoKg:        m.PesoKg,
		PropietarioID: m.PropietarioID.String(),
		Activo:        m.Activo,
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
	}
	if m.FechaNacimiento != nil {
		f := m.FechaNacimiento.Format("2006-01-02")
		resp.FechaNacimiento = &f
	}
	if m.Propietario != nil {
		resp.Propietario = m.Propietario.Nombre
	}
	return resp
}
