package dto

type CrearMascotaRequest struct {
	Nombre          string   `json:"nombre" validate:"required,min=1"`
	Especie         string   `json:"especie" validate:"required"`
	Raza            *string  `json:"raza"`
	Sexo            *string  `json:"sexo" validate:"omitempty,oneof=macho hembra"`
	FechaNacimiento *string  `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
	PesoKg          *float64 `json:"peso_kg" validate:"omitempty,gt=0"`
	PropietarioID   string   `json:"propietario_id" validate:"required,uuid"`
}

type ActualizarMascotaRequest struct {
	Nombre          string   `json:"nombre" validate:"omitempty,min=1"`
	Especie         string   `json:"especie"`
	Raza            *string  `json:"raza"`
	Sexo            *string  `json:"sexo" validate:"omitempty,oneof=macho hembra"`
	FechaNacimiento *string  `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
	PesoKg          *float64 `json:"peso_kg" validate:"omitempty,gt=0"`
}

type MascotaFilter struct {
	Nombre        string `form:"nombre"`
	Especie       string `form:"especie"`
	PropietarioID string `form:"propietario_id" validate:"omitempty,uuid"`
	Page          int    `form:"page,default=1"   validate:"min=1"`
	Limit         int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type MascotaResponse struct {
	ID              string   `json:"id"`
	Nombre          string   `json:"nombre"`
	Especie         string   `json:"especie"`
	Raza            *string  `json:"raza"`
	Sexo            *string  `json:"sexo"`
	FechaNacimiento *string  `json:"fecha_nacimiento"`
	PesoKg          *float64 `json:"peso_kg"`
	PropietarioID   string   `json:"propietario_id"`
	Propietario     string   `json:"propietario,omitempty"`
	Activo          bool     `json:"activo"`
	CreatedAt       string   `json:"created_at"`
}

type MascotaListResponse struct {
	Data  []MascotaResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
