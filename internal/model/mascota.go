package model

import (
	"time"

	"github.com/google/uuid"
)

// Mascota is a patient. Sexo: "macho" | "hembra".
type Mascota struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre          string    `gorm:"index;not null"`
	Especie         string    `gorm:"not null"`
	Raza            *string
	Sexo            *string `gorm:"type:varchar(10)"`
	FechaNacimiento *time.Time
	PesoKg          *float64
	PropietarioID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Activo          bool      `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Propietario *Propietario `gorm:"foreignKey:PropietarioID"`
}
