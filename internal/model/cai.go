package model

import (
	"time"

	"github.com/google/uuid"
)

// CAI representa un bloque de numeración fiscal autorizado (Código de
// Autorización de Impresión). RangoDesde/RangoHasta usan el formato
// PPP-PPP-TT-NNNNNNNN; los primeros tres segmentos son el prefijo del
// establecimiento y los últimos 8 dígitos la secuencia autorizada.
//
// CorrelativoActual cuenta cuántos números del rango ya fueron consumidos:
// el próximo número de factura es desde+correlativo. Solo avanza dentro de
// la transacción que inserta la factura, nunca en un intento fallido.
//
// A lo sumo un CAI puede estar activo; lo respalda un índice único parcial
// sobre activo = true (ver infra.applySchemaPatches).
type CAI struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo string    `gorm:"uniqueIndex;not null"` // authorization code issued by the fiscal authority
	RangoDesde        string    `gorm:"type:varchar(20);not null"`
	RangoHasta        string    `gorm:"type:varchar(20);not null"`
	CorrelativoActual int64     `gorm:"not null;default:0"`
	FechaLimite       time.Time `gorm:"not null"`
	Activo            bool      `gorm:"not null;default:false"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName overrides GORM's default pluralization (cais, not c_a_is).
func (CAI) TableName() string { return "cais" }
