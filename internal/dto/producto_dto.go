package dto

import "github.com/shopspring/decimal"

type ProductoFilter struct {
	Nombre    string `form:"nombre"`
	Categoria string `form:"categoria"`
	Activo    string `form:"activo"` // "false" = inactivos, "all" = todos, default activos
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CrearProductoRequest struct {
	Nombre       string          `json:"nombre" validate:"required,min=2"`
	Descripcion  *string         `json:"descripcion"`
	Categoria    string          `json:"categoria" validate:"required"`
	Precio       decimal.Decimal `json:"precio" validate:"required,min=0"`
	StockActual  int             `json:"stock_actual" validate:"min=0"`
	StockMinimo  int             `json:"stock_minimo" validate:"min=0"`
	UnidadMedida string          `json:"unidad_medida"`
}

type ActualizarProductoRequest struct {
	Nombre       string           `json:"nombre" validate:"omitempty,min=2"`
	Descripcion  *string          `json:"descripcion"`
	Categoria    string           `json:"categoria"`
	Precio       *decimal.Decimal `json:"precio" validate:"omitempty,min=0"`
	StockMinimo  *int             `json:"stock_minimo" validate:"omitempty,min=0"`
	UnidadMedida string           `json:"unidad_medida"`
}

// AjustarStockRequest is a manual inventory correction (PATCH /productos/:id/stock).
type AjustarStockRequest struct {
	Delta  int    `json:"delta" validate:"required"`
	Motivo string `json:"motivo" validate:"required,min=5"`
}

type ProductoResponse struct {
	ID           string          `json:"id"`
	Nombre       string          `json:"nombre"`
	Descripcion  *string         `json:"descripcion"`
	Categoria    string          `json:"categoria"`
	Precio       decimal.Decimal `json:"precio"`
	StockActual  int             `json:"stock_actual"`
	StockMinimo  int             `json:"stock_minimo"`
	UnidadMedida string          `json:"unidad_medida"`
	Activo       bool            `json:"activo"`
	CreatedAt    string          `json:"created_at"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// AlertaStockResponse is one row of GET /v1/inventario/alertas: products at
// or below their minimum stock threshold.
type AlertaStockResponse struct {
	ProductoID  string `json:"producto_id"`
	Nombre      string `json:"nombre"`
	StockActual int    `json:"stock_actual"`
	StockMinimo int    `json:"stock_minimo"`
}

type MovimientoStockResponse struct {
	ID            string  `json:"id"`
	ProductoID    string  `json:"producto_id"`
	Producto      string  `json:"producto"`
	Tipo          string  `json:"tipo"`
	Cantidad      int     `json:"cantidad"`
	StockAnterior int     `json:"stock_anterior"`
	StockNuevo    int     `json:"stock_nuevo"`
	Motivo        string  `json:"motivo"`
	ReferenciaID  *string `json:"referencia_id"`
	CreatedAt     string  `json:"created_at"`
}

// ConsultaPrecioResponse is served by the public cached price check endpoint.
type ConsultaPrecioResponse struct {
	Nombre          string          `json:"nombre"`
	Precio          decimal.Decimal `json:"precio"`
	StockDisponible int             `json:"stock_disponible"`
	Categoria       string          `json:"categoria"`
}
