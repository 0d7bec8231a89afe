package repository

import (
	"context"

	"clinicavet/internal/dto"
	"clinicavet/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MascotaRepository interface {
	Create(ctx context.Context, m *model.Mascota) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Mascota, error)
	List(ctx context.Context, filter dto.MascotaFilter) ([]model.Mascota, int64, error)
	Update(ctx context.Context, m *model.Mascota) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type mascotaRepo struct{ db *gorm.DB }

func NewMascotaRepository(db *gorm.DB) MascotaRepository { return &mascotaRepo{db: db} }

func (r *mascotaRepo) Create(ctx context.Context, m *model.Mascota) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *mascotaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Mascota, error) {
	var m model.Mascota
	err := r.db.WithContext(ctx).Preload("Propietario").First(&m, id).Error
	return &m, err
}

func (r *mascotaRepo) List(ctx context.Context, filter dto.MascotaFilter) ([]model.Mascota, int64, error) {
	var mascotas []model.Mascota
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Mascota{}).Where("activo = true")

	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}
	if filter.Especie != "" {
		q = q.Where("especie = ?", filter.Especie)
	}
	if filter.PropietarioID != "" {
		q = q.Where("propietario_id = ?", filter.PropietarioID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Propietario").Order("nombre ASC").
		Limit(filter.Limit).Offset(offset).Find(&mascotas).Error
	return mascotas, total, err
}

func (r *mascotaRepo) Update(ctx context.Context, m *model.Mascota) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *mascotaRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Mascota{}).Where("id = ?", id).Update("activo", false).Error
}
