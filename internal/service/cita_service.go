package service

import (
	"context"
	"time"

	"clinicavet/internal/dto"
	"clinicavet/internal/model"
	"clinicavet/internal/repository"

	"github.com/google/uuid"
)

type CitaService interface {
	Crear(ctx context.Context, req dto.CrearCitaRequest) (*dto.CitaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CitaResponse, error)
	Listar(ctx context.Context, filter dto.CitaFilter) (*dto.CitaListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCitaRequest) (*dto.CitaResponse, error)
	Cancelar(ctx context.Context, id uuid.UUID) error
}

type citaService struct {
	repo        repository.CitaRepository
	mascotaRepo repository.MascotaRepository
	usuarioRepo repository.UsuarioRepository
}

func NewCitaService(repo repository.CitaRepository, mascotaRepo repository.MascotaRepository, usuarioRepo repository.UsuarioRepository) CitaService {
	return &citaService{repo: repo, mascotaRepo: mascotaRepo, usuarioRepo: usuarioRepo}
}

func (s *citaService) Crear(ctx context.Context, req dto.CrearCitaRequest) (*dto.CitaResponse, error) {
	mid, err := uuid.Parse(req.MascotaID)
	if err != nil {
		return nil, errValidacion("mascota_id inválido")
	}
	vid, err := uuid.Parse(req.VeterinarioID)
	if err != nil {
		return nil, errValidacion("veterinario_id inválido")
	}
	fecha, err := time.Parse(time.RFC3339, req.Fecha)
	if err != nil {
		return nil, errValidacion("fecha inválida, use RFC 3339")
	}

	if _, err := s.mascotaRepo.FindByID(ctx, mid); err != nil {
		return nil, errValidacion("la mascota no existe")
	}
	vet, err := s.usuarioRepo.FindByID(ctx, vid)
	if err != nil || vet.Rol != "veterinario" {
		return nil, errValidacion("el veterinario no existe")
	}

	ocupado, err := s.repo.ExisteSolapada(ctx, vid, fecha, nil)
	if err != nil {
		return nil, err
	}
	if ocupado {
		return nil, errConflicto("el veterinario ya tiene una cita en ese horario")
	}

	c := &model.Cita{
		MascotaID:     mid,
		VeterinarioID: vid,
		Fecha:         fecha,
		Motivo:        req.Motivo,
		Notas:         req.Notas,
		Estado:        "programada",
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return s.ObtenerPorID(ctx, c.ID)
}

func (s *citaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CitaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	return citaToResponse(c), nil
}

func (s *citaService) Listar(ctx context.Context, filter dto.CitaFilter) (*dto.CitaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	citas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CitaResponse, len(citas))
	for i := range citas {
		data[i] = *citaToResponse(&citas[i])
	}
	return &dto.CitaListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *citaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCitaRequest) (*dto.CitaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}

	if req.Fecha != "" {
		fecha, err := time.Parse(time.RFC3339, req.Fecha)
		if err != nil {
			return nil, errValidacion("fecha inválida, use RFC 3339")
		}
		if !fecha.Equal(c.Fecha) {
			ocupado, err := s.repo.ExisteSolapada(ctx, c.VeterinarioID, fecha, &c.ID)
			if err != nil {
				return nil, err
			}
			if ocupado {
				return nil, errConflicto("el veterinario ya tiene una cita en ese horario")
			}
			c.Fecha = fecha
		}
	}
	if req.Motivo != "" {
		c.Motivo = req.Motivo
	}
	if req.Notas != nil {
		c.Notas = req.Notas
	}
	if req.Estado != "" {
		c.Estado = req.Estado
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.ObtenerPorID(ctx, c.ID)
}

func (s *citaService) Cancelar(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNoEncontrado
	}
	c.Estado = "cancelada"
	return s.repo.Update(ctx, c)
}

func citaToResponse(c *model.Cita) *dto.CitaResponse {
	resp := &dto.CitaResponse{
		ID:            c.ID.String(),
		MascotaID:     c.MascotaID.String(),
		VeterinarioID: c.VeterinarioID.String(),
		Fecha:         c.Fecha.Format(time.RFC3339),
		Motivo:        c.Motivo,
		Notas:         c.Notas,
		Estado:        c.Estado,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
	}
	if c.Mascota != nil {
		resp.Mascota = c.Mascota.Nombre
	}
	if c.Veterinario != nil {
		resp.Veterinario = c.Veterinario.Nombre
	}
	return resp
}
