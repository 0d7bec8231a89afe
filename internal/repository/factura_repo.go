package repository

import (
	"context"

	"clinicavet/internal/dto"
	"clinicavet/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FacturaRepository interface {
	CreateTx(tx *gorm.DB, f *model.Factura) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Factura, error)
	List(ctx context.Context, filter dto.FacturaFilter) ([]model.Factura, int64, error)
	// UpdateTx overwrites the invoice and replaces its line items. Line rows
	// are deleted and re-inserted: an update rewrites the whole detail.
	UpdateTx(tx *gorm.DB, f *model.Factura) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) (int64, error)
	DB() *gorm.DB
}

type facturaRepo struct{ db *gorm.DB }

func NewFacturaRepository(db *gorm.DB) FacturaRepository { return &facturaRepo{db: db} }

func (r *facturaRepo) CreateTx(tx *gorm.DB, f *model.Factura) error {
	return tx.Create(f).Error
}

func (r *facturaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Factura, error) {
	var f model.Factura
	err := r.db.WithContext(ctx).
		Preload("Servicios").Preload("Productos").
		First(&f, id).Error
	return &f, err
}

func (r *facturaRepo) List(ctx context.Context, filter dto.FacturaFilter) ([]model.Factura, int64, error) {
	var facturas []model.Factura
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Factura{})

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Fecha != "" {
		q = q.Where("DATE(created_at) = ?", filter.Fecha)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Servicios").Preload("Productos").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&facturas).Error
	return facturas, total, err
}

func (r *facturaRepo) UpdateTx(tx *gorm.DB, f *model.Factura) error {
	if err := tx.Where("factura_id = ?", f.ID).Delete(&model.FacturaServicio{}).Error; err != nil {
		return err
	}
	if err := tx.Where("factura_id = ?", f.ID).Delete(&model.FacturaProducto{}).Error; err != nil {
		return err
	}
	return tx.Save(f).Error
}

func (r *facturaRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) (int64, error) {
	res := tx.Select("Servicios", "Productos").Delete(&model.Factura{ID: id})
	return res.RowsAffected, res.Error
}

func (r *facturaRepo) DB() *gorm.DB { return r.db }
