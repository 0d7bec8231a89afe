package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto es un artículo de inventario vendible (medicamentos, alimentos,
// accesorios). StockActual nunca debe quedar negativo por facturación:
// los descuentos de stock usan updates condicionales (ver ProductoRepository).
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"index;not null"`
	Descripcion *string
	Categoria   string          `gorm:"not null"`
	Precio      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	StockActual int             `gorm:"not null;default:0"`
	// StockMinimo is the low-stock alert threshold
	StockMinimo  int    `gorm:"not null;default:5"`
	UnidadMedida string `gorm:"not null;default:'unidad'"`
	Activo       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
