package repository

import (
	"context"

	"clinicavet/internal/dto"
	"clinicavet/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PropietarioRepository interface {
	Create(ctx context.Context, p *model.Propietario) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Propietario, error)
	List(ctx context.Context, filter dto.PropietarioFilter) ([]model.Propietario, int64, error)
	Update(ctx context.Context, p *model.Propietario) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type propietarioRepo struct{ db *gorm.DB }

func NewPropietarioRepository(db *gorm.DB) PropietarioRepository { return &propietarioRepo{db: db} }

func (r *propietarioRepo) Create(ctx context.Context, p *model.Propietario) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *propietarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Propietario, error) {
	var p model.Propietario
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *propietarioRepo) List(ctx context.Context, filter dto.PropietarioFilter) ([]model.Propietario, int64, error) {
	var propietarios []model.Propietario
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Propietario{})

	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
	default:
		q = q.Where("activo = true")
	}
	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&propietarios).Error
	return propietarios, total, err
}

func (r *propietarioRepo) Update(ctx context.Context, p *model.Propietario) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *propietarioRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Propietario{}).Where("id = ?", id).Update("activo", false).Error
}
