package model

import (
	"time"

	"github.com/google/uuid"
)

// Cita is an appointment slot for a mascota with a veterinarian.
// Estado: "programada" | "atendida" | "cancelada"
// The composite unique index backs the double-booking check: the same
// veterinarian cannot have two non-cancelled citas at the same instant.
type Cita struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MascotaID     uuid.UUID `gorm:"type:uuid;index;not null"`
	VeterinarioID uuid.UUID `gorm:"type:uuid;not null;index:idx_citas_vet_fecha,unique"`
	Fecha         time.Time `gorm:"not null;index:idx_citas_vet_fecha,unique"`
	Motivo        string    `gorm:"not null"`
	Notas         *string
	Estado        string `gorm:"type:varchar(12);not null;default:'programada'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Mascota     *Mascota `gorm:"foreignKey:MascotaID"`
	Veterinario *Usuario `gorm:"foreignKey:VeterinarioID"`
}
