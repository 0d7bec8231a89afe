package dto

import "github.com/shopspring/decimal"

type CrearServicioRequest struct {
	Nombre      string          `json:"nombre" validate:"required,min=2"`
	Descripcion *string         `json:"descripcion"`
	Categoria   string          `json:"categoria"`
	Precio      decimal.Decimal `json:"precio" validate:"required,min=0"`
	DuracionMin int             `json:"duracion_min" validate:"omitempty,min=5"`
}

type ActualizarServicioRequest struct {
	Nombre      string           `json:"nombre" validate:"omitempty,min=2"`
	Descripcion *string          `json:"descripcion"`
	Categoria   string           `json:"categoria"`
	Precio      *decimal.Decimal `json:"precio" validate:"omitempty,min=0"`
	DuracionMin *int             `json:"duracion_min" validate:"omitempty,min=5"`
}

type ServicioResponse struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Descripcion *string         `json:"descripcion"`
	Categoria   string          `json:"categoria"`
	Precio      decimal.Decimal `json:"precio"`
	DuracionMin int             `json:"duracion_min"`
	Activo      bool            `json:"activo"`
	CreatedAt   string          `json:"created_at"`
}
