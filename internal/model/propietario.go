package model

import (
	"time"

	"github.com/google/uuid"
)

// Propietario is the pet owner and billing client. RTN is the Honduran tax id,
// optional because walk-in clients rarely provide one.
type Propietario struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"index;not null"`
	RTN       *string   `gorm:"type:varchar(20);column:rtn"`
	Email     *string
	Telefono  *string `gorm:"type:varchar(20)"`
	Direccion *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
