package infra

import (
	"fmt"

	"clinicavet/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create or update all tables, then applies the idempotent SQL patches that
// AutoMigrate cannot express (partial unique indexes, check constraints).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// TranslateError maps SQLSTATE 23505 onto gorm.ErrDuplicatedKey so
		// services can turn unique violations into 409s.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Propietario{},
		&model.Mascota{},
		&model.Usuario{},
		&model.Producto{},
		&model.Servicio{},
		&model.CAI{},
		&model.Factura{},
		&model.FacturaServicio{},
		&model.FacturaProducto{},
		&model.Cita{},
		&model.MovimientoStock{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot handle.
// Every statement is guarded so re-running on an already-patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// At most one active CAI lot, enforced at the database level. The
		// service deactivates the previous lot inside the activation tx; this
		// partial index is the backstop against concurrent activations.
		{"unique active cai", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_cais_activo') THEN
    CREATE UNIQUE INDEX uni_cais_activo ON cais (activo) WHERE activo = true;
  END IF;
END $$`},
		// Billed stock can never go negative even if a bug bypasses the
		// conditional UPDATE guard.
		{"stock non-negative check", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_productos_stock_no_negativo') THEN
    ALTER TABLE productos ADD CONSTRAINT chk_productos_stock_no_negativo CHECK (stock_actual >= 0);
  END IF;
END $$`},
		// Invoice listing is newest-first with optional day filter.
		{"facturas created_at index", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_facturas_created_at') THEN
    CREATE INDEX idx_facturas_created_at ON facturas (created_at DESC);
  END IF;
END $$`},
		{"movimientos_stock producto index", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_movimientos_stock_producto') THEN
    CREATE INDEX idx_movimientos_stock_producto ON movimientos_stock (producto_id, created_at DESC);
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
