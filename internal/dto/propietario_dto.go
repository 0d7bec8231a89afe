package dto

type CrearPropietarioRequest struct {
	Nombre    string  `json:"nombre" validate:"required,min=2"`
	RTN       *string `json:"rtn" validate:"omitempty,min=13,max=14"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
}

type ActualizarPropietarioRequest struct {
	Nombre    string  `json:"nombre" validate:"omitempty,min=2"`
	RTN       *string `json:"rtn" validate:"omitempty,min=13,max=14"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
}

type PropietarioFilter struct {
	Nombre string `form:"nombre"`
	Activo string `form:"activo"` // "false" | "all" | default activos
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type PropietarioResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	RTN       *string `json:"rtn"`
	Email     *string `json:"email"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
	Activo    bool    `json:"activo"`
	CreatedAt string  `json:"created_at"`
}

type PropietarioListResponse struct {
	Data  []PropietarioResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}
