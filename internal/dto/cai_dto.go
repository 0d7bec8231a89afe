package dto

type CrearCAIRequest struct {
	Codigo      string `json:"codigo" validate:"required,min=10"`
	RangoDesde  string `json:"rango_desde" validate:"required"`
	RangoHasta  string `json:"rango_hasta" validate:"required"`
	FechaLimite string `json:"fecha_limite" validate:"required,datetime=2006-01-02"`
	// Activar activates the lot immediately, deactivating any other active lot
	Activar bool `json:"activar"`
}

type CAIResponse struct {
	ID                string `json:"id"`
	Codigo            string `json:"codigo"`
	RangoDesde        string `json:"rango_desde"`
	RangoHasta        string `json:"rango_hasta"`
	CorrelativoActual int64  `json:"correlativo_actual"`
	// Disponibles is how many numbers remain in the authorized range
	Disponibles int64  `json:"disponibles"`
	FechaLimite string `json:"fecha_limite"`
	Activo      bool   `json:"activo"`
	CreatedAt   string `json:"created_at"`
}
