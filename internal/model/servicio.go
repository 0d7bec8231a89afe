package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Servicio is a billable catalog entry (consulta, vacunación, cirugía, baño...).
// Read-only from the invoicing flow: invoices snapshot its name and price.
type Servicio struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"index;not null"`
	Descripcion *string
	Categoria   string          `gorm:"not null;default:'general'"`
	Precio      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// DuracionMin is informational, used by the citas module for agenda blocks
	DuracionMin int  `gorm:"not null;default:30"`
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
