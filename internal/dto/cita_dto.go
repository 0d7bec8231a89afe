package dto

type CrearCitaRequest struct {
	MascotaID     string  `json:"mascota_id" validate:"required,uuid"`
	VeterinarioID string  `json:"veterinario_id" validate:"required,uuid"`
	Fecha         string  `json:"fecha" validate:"required"` // RFC 3339
	Motivo        string  `json:"motivo" validate:"required,min=3"`
	Notas         *string `json:"notas"`
}

type ActualizarCitaRequest struct {
	Fecha  string  `json:"fecha"` // RFC 3339; empty = keep
	Motivo string  `json:"motivo" validate:"omitempty,min=3"`
	Notas  *string `json:"notas"`
	Estado string  `json:"estado" validate:"omitempty,oneof=programada atendida cancelada"`
}

type CitaFilter struct {
	Fecha         string `form:"fecha"` // YYYY-MM-DD
	VeterinarioID string `form:"veterinario_id" validate:"omitempty,uuid"`
	MascotaID     string `form:"mascota_id" validate:"omitempty,uuid"`
	Estado        string `form:"estado"` // programada | atendida | cancelada | all
	Page          int    `form:"page,default=1"   validate:"min=1"`
	Limit         int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CitaResponse struct {
	ID            string  `json:"id"`
	MascotaID     string  `json:"mascota_id"`
	Mascota       string  `json:"mascota,omitempty"`
	VeterinarioID string  `json:"veterinario_id"`
	Veterinario   string  `json:"veterinario,omitempty"`
	Fecha         string  `json:"fecha"`
	Motivo        string  `json:"motivo"`
	Notas         *string `json:"notas"`
	Estado        string  `json:"estado"`
	CreatedAt     string  `json:"created_at"`
}

type CitaListResponse struct {
	Data  []CitaResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
