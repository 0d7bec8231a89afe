package service

import (
	"context"
	"errors"
	"time"

	"clinicavet/internal/dto"
	"clinicavet/internal/model"
	"clinicavet/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CAIService is the invoice numbering authority: it administers the
// authorized lots and hands out sequential numbers, never past the
// authorized range and never on a failed attempt.
type CAIService interface {
	Crear(ctx context.Context, req dto.CrearCAIRequest) (*dto.CAIResponse, error)
	Listar(ctx context.Context) ([]dto.CAIResponse, error)
	Activar(ctx context.Context, id uuid.UUID) (*dto.CAIResponse, error)

	// VerificarActivo rechecks (read-only) that the active lot exists, is not
	// expired and has numbers left — the pre-flight gate before any mutation.
	VerificarActivo(ctx context.Context) error

	// ConsumirNumeroTx reserves the next number inside the caller's
	// transaction: re-reads the active lot, revalidates it and advances the
	// correlativo with an optimistic guard. A guard miss means a concurrent
	// creation took the number first and surfaces as ConflictoError.
	ConsumirNumeroTx(ctx context.Context, tx *gorm.DB) (*NumeroAsignado, error)
}

// NumeroAsignado is the reservation result: the formatted invoice number and
// the lot's fiscal fields to snapshot into the invoice.
type NumeroAsignado struct {
	Numero      string
	CAICodigo   string
	RangoDesde  string
	RangoHasta  string
	FechaLimite time.Time
}

type caiService struct {
	repo repository.CAIRepository
}

func NewCAIService(repo repository.CAIRepository) CAIService {
	return &caiService{repo: repo}
}

func (s *caiService) Crear(ctx context.Context, req dto.CrearCAIRequest) (*dto.CAIResponse, error) {
	if _, err := ParseRango(req.RangoDesde, req.RangoHasta); err != nil {
		return nil, errValidacion(err.Error())
	}
	fechaLimite, err := time.Parse("2006-01-02", req.FechaLimite)
	if err != nil {
		return nil, errValidacion("fecha_limite inválida")
	}

	cai := &model.CAI{
		Codigo:      req.Codigo,
		RangoDesde:  req.RangoDesde,
		RangoHasta:  req.RangoHasta,
		FechaLimite: fechaLimite,
	}
	if err := s.repo.Create(ctx, cai); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errConflicto("ya existe un CAI con ese código")
		}
		return nil, err
	}
	if req.Activar {
		if err := s.repo.Activar(ctx, cai.ID); err != nil {
			return nil, err
		}
		cai.Activo = true
	}
	return caiToResponse(cai), nil
}

func (s *caiService) Listar(ctx context.Context) ([]dto.CAIResponse, error) {
	cais, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CAIResponse, len(cais))
	for i := range cais {
		resp[i] = *caiToResponse(&cais[i])
	}
	return resp, nil
}

func (s *caiService) Activar(ctx context.Context, id uuid.UUID) (*dto.CAIResponse, error) {
	cai, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	if time.Now().After(cai.FechaLimite) {
		return nil, errValidacion("el CAI está vencido y no puede activarse")
	}
	if err := s.repo.Activar(ctx, id); err != nil {
		return nil, err
	}
	cai.Activo = true
	return caiToResponse(cai), nil
}

func (s *caiService) VerificarActivo(ctx context.Context) error {
	cai, err := s.repo.FindActivo(ctx)
	if err != nil {
		return errValidacion("no hay un CAI activo para emitir facturas")
	}
	return validarLote(cai)
}

func (s *caiService) ConsumirNumeroTx(ctx context.Context, tx *gorm.DB) (*NumeroAsignado, error) {
	cai, err := s.repo.FindActivoTx(tx)
	if err != nil {
		return nil, errValidacion("no hay un CAI activo para emitir facturas")
	}
	if err := validarLote(cai); err != nil {
		return nil, err
	}

	rango, err := ParseRango(cai.RangoDesde, cai.RangoHasta)
	if err != nil {
		return nil, errValidacion("el CAI activo tiene un rango malformado: " + err.Error())
	}
	numero := rango.Numero(cai.CorrelativoActual)

	filas, err := s.repo.AvanzarCorrelativoTx(tx, cai.ID, cai.CorrelativoActual)
	if err != nil {
		return nil, err
	}
	if filas == 0 {
		return nil, errConflicto("el número de factura fue consumido por otra operación concurrente")
	}

	return &NumeroAsignado{
		Numero:      numero,
		CAICodigo:   cai.Codigo,
		RangoDesde:  cai.RangoDesde,
		RangoHasta:  cai.RangoHasta,
		FechaLimite: cai.FechaLimite,
	}, nil
}

// validarLote rejects expired or exhausted lots.
func validarLote(cai *model.CAI) error {
	if time.Now().After(cai.FechaLimite) {
		return errValidacion("el CAI activo está vencido")
	}
	rango, err := ParseRango(cai.RangoDesde, cai.RangoHasta)
	if err != nil {
		return errValidacion("el CAI activo tiene un rango malformado: " + err.Error())
	}
	if rango.Agotado(cai.CorrelativoActual) {
		return errValidacion("el CAI activo agotó su rango autorizado")
	}
	return nil
}

func caiToResponse(c *model.CAI) *dto.CAIResponse {
	resp := &dto.CAIResponse{
		ID:                c.ID.String(),
		Codigo:            c.Codigo,
		RangoDesde:        c.RangoDesde,
		RangoHasta:        c.RangoHasta,
		CorrelativoActual: c.CorrelativoActual,
		FechaLimite:       c.FechaLimite.Format("2006-01-02"),
		Activo:            c.Activo,
		CreatedAt:         c.CreatedAt.Format(time.RFC3339),
	}
	if rango, err := ParseRango(c.RangoDesde, c.RangoHasta); err == nil {
		resp.Disponibles = rango.Disponibles(c.CorrelativoActual)
	}
	return resp
}
