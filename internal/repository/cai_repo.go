package repository

import (
	"context"

	"clinicavet/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CAIRepository interface {
	Create(ctx context.Context, c *model.CAI) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CAI, error)
	// FindActivo returns the single active lot, gorm.ErrRecordNotFound if none.
	FindActivo(ctx context.Context) (*model.CAI, error)
	FindActivoTx(tx *gorm.DB) (*model.CAI, error)
	List(ctx context.Context) ([]model.CAI, error)
	// Activar marks one lot active and deactivates every other inside a single
	// transaction. The partial unique index on activo = true is the backstop
	// against interleaved activations.
	Activar(ctx context.Context, id uuid.UUID) error
	// AvanzarCorrelativoTx advances correlativo_actual by one with an
	// optimistic guard on the expected current value. Returns the number of
	// rows matched: 0 means a concurrent creation already consumed the number.
	AvanzarCorrelativoTx(tx *gorm.DB, id uuid.UUID, esperado int64) (int64, error)
	DB() *gorm.DB
}

type caiRepo struct{ db *gorm.DB }

func NewCAIRepository(db *gorm.DB) CAIRepository { return &caiRepo{db: db} }

func (r *caiRepo) Create(ctx context.Context, c *model.CAI) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *caiRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CAI, error) {
	var c model.CAI
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *caiRepo) FindActivo(ctx context.Context) (*model.CAI, error) {
	var c model.CAI
	err := r.db.WithContext(ctx).Where("activo = true").First(&c).Error
	return &c, err
}

func (r *caiRepo) FindActivoTx(tx *gorm.DB) (*model.CAI, error) {
	var c model.CAI
	err := tx.Where("activo = true").First(&c).Error
	return &c, err
}

func (r *caiRepo) List(ctx context.Context) ([]model.CAI, error) {
	var cais []model.CAI
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&cais).Error
	return cais, err
}

func (r *caiRepo) Activar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.CAI{}).Where("activo = true AND id <> ?", id).
			Update("activo", false).Error; err != nil {
			return err
		}
		return tx.Model(&model.CAI{}).Where("id = ?", id).Update("activo", true).Error
	})
}

func (r *caiRepo) AvanzarCorrelativoTx(tx *gorm.DB, id uuid.UUID, esperado int64) (int64, error) {
	res := tx.Model(&model.CAI{}).
		Where("id = ? AND correlativo_actual = ?", id, esperado).
		Update("correlativo_actual", gorm.Expr("correlativo_actual + 1"))
	return res.RowsAffected, res.Error
}

func (r *caiRepo) DB() *gorm.DB { return r.db }
