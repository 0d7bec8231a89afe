package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// LineaRequest references either a catalog entity (ServicioID/ProductoID) or
// carries client-supplied fallback data. Nombre/Precio are only honored when
// the catalog lookup fails or no id was sent; Cantidad defaults to 1 when nil.
type LineaRequest struct {
	ServicioID *string          `json:"servicio_id" validate:"omitempty,uuid"`
	ProductoID *string          `json:"producto_id" validate:"omitempty,uuid"`
	Nombre     *string          `json:"nombre"`
	Precio     *decimal.Decimal `json:"precio"   validate:"omitempty"`
	Cantidad   *int             `json:"cantidad" validate:"omitempty,min=1"`
}

type CrearFacturaRequest struct {
	PropietarioID  string          `json:"propietario_id" validate:"required,uuid"`
	MascotaID      string          `json:"mascota_id"     validate:"required,uuid"`
	Servicios      []LineaRequest  `json:"servicios"      validate:"dive"`
	Productos      []LineaRequest  `json:"productos"      validate:"dive"`
	DescuentoTipo  string          `json:"descuento_tipo" validate:"omitempty,oneof=monto porcentaje"`
	DescuentoValor decimal.Decimal `json:"descuento_valor" validate:"min=0"`
	MetodoPago     string          `json:"metodo_pago"    validate:"required,oneof=efectivo tarjeta transferencia"`
	Estado         string          `json:"estado"         validate:"omitempty,oneof=pendiente pagada"`
}

// ActualizarFacturaRequest shares the creation shape: an update replaces the
// invoice's client, pet, line items, discount and payment method wholesale.
type ActualizarFacturaRequest = CrearFacturaRequest

// FacturaFilter is bound from the query string of GET /v1/facturas.
type FacturaFilter struct {
	Estado string `form:"estado"` // pendiente | pagada | anulada | all
	Fecha  string `form:"fecha"`  // YYYY-MM-DD; empty = all dates
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LineaResponse struct {
	ID       *string         `json:"id,omitempty"` // catalog id when resolved, null for manual lines
	Nombre   string          `json:"nombre"`
	Precio   decimal.Decimal `json:"precio"`
	Cantidad int             `json:"cantidad"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// FaltanteStock is one entry of the itemized shortfall list returned with a
// 409 when an invoice requests more product than is on hand.
type FaltanteStock struct {
	ProductoID string `json:"producto_id"`
	Nombre     string `json:"nombre"`
	Solicitado int    `json:"solicitado"`
	Disponible int    `json:"disponible"`
}

type ClienteFacturaResponse struct {
	PropietarioID string  `json:"propietario_id"`
	Nombre        string  `json:"nombre"`
	RTN           *string `json:"rtn"`
	Email         *string `json:"email"`
	Telefono      *string `json:"telefono"`
}

type MascotaFacturaResponse struct {
	MascotaID string  `json:"mascota_id"`
	Nombre    string  `json:"nombre"`
	Especie   string  `json:"especie"`
	Raza      *string `json:"raza"`
}

type FacturaResponse struct {
	ID             string                 `json:"id"`
	Numero         string                 `json:"numero"`
	Cliente        ClienteFacturaResponse `json:"cliente"`
	Mascota        MascotaFacturaResponse `json:"mascota"`
	Servicios      []LineaResponse        `json:"servicios"`
	Productos      []LineaResponse        `json:"productos"`
	Subtotal       decimal.Decimal        `json:"subtotal"`
	DescuentoTipo  string                 `json:"descuento_tipo"`
	DescuentoValor decimal.Decimal        `json:"descuento_valor"`
	DescuentoTotal decimal.Decimal        `json:"descuento_total"`
	BaseImponible  decimal.Decimal        `json:"base_imponible"`
	Impuesto       decimal.Decimal        `json:"impuesto"`
	Total          decimal.Decimal        `json:"total"`
	CAI            string                 `json:"cai"`
	RangoDesde     string                 `json:"rango_desde"`
	RangoHasta     string                 `json:"rango_hasta"`
	FechaLimite    string                 `json:"fecha_limite"`
	MetodoPago     string                 `json:"metodo_pago"`
	Estado         string                 `json:"estado"`
	// Advertencias lists per-item stock adjustments that could not be applied
	// (e.g. a product deleted concurrently). The operation still succeeded.
	Advertencias []string `json:"advertencias,omitempty"`
	CreatedAt    string   `json:"created_at"`
}

type FacturaListResponse struct {
	Data  []FacturaResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
