package repository

import (
	"context"
	"time"

	"clinicavet/internal/dto"
	"clinicavet/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CitaRepository interface {
	Create(ctx context.Context, c *model.Cita) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cita, error)
	// ExisteSolapada reports whether the veterinarian already has a
	// non-cancelled cita at the exact instant, excluding excluir (for edits).
	ExisteSolapada(ctx context.Context, veterinarioID uuid.UUID, fecha time.Time, excluir *uuid.UUID) (bool, error)
	List(ctx context.Context, filter dto.CitaFilter) ([]model.Cita, int64, error)
	Update(ctx context.Context, c *model.Cita) error
}

type citaRepo struct{ db *gorm.DB }

func NewCitaRepository(db *gorm.DB) CitaRepository { return &citaRepo{db: db} }

func (r *citaRepo) Create(ctx context.Context, c *model.Cita) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *citaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cita, error) {
	var c model.Cita
	err := r.db.WithContext(ctx).
		Preload("Mascota").Preload("Veterinario").
		First(&c, id).Error
	return &c, err
}

func (r *citaRepo) ExisteSolapada(ctx context.Context, veterinarioID uuid.UUID, fecha time.Time, excluir *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.Cita{}).
		Where("veterinario_id = ? AND fecha = ? AND estado <> 'cancelada'", veterinarioID, fecha)
	if excluir != nil {
		q = q.Where("id <> ?", *excluir)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *citaRepo) List(ctx context.Context, filter dto.CitaFilter) ([]model.Cita, int64, error) {
	var citas []model.Cita
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Cita{})

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Fecha != "" {
		q = q.Where("DATE(fecha) = ?", filter.Fecha)
	}
	if filter.VeterinarioID != "" {
		q = q.Where("veterinario_id = ?", filter.VeterinarioID)
	}
	if filter.MascotaID != "" {
		q = q.Where("mascota_id = ?", filter.MascotaID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Mascota").Preload("Veterinario").
		Order("fecha ASC").
		Offset(offset).Limit(filter.Limit).
		Find(&citas).Error
	return citas, total, err
}

func (r *citaRepo) Update(ctx context.Context, c *model.Cita) error {
	return r.db.WithContext(ctx).Save(c).Error
}
