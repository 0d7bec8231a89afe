package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClienteSnapshot copia los datos del propietario al momento de facturar,
// para que la factura histórica no cambie si el propietario se edita después.
type ClienteSnapshot struct {
	PropietarioID uuid.UUID `gorm:"type:uuid;index;not null"`
	Nombre        string    `gorm:"not null"`
	RTN           *string   `gorm:"type:varchar(20);column:rtn"`
	Email         *string
	Telefono      *string `gorm:"type:varchar(20)"`
}

// MascotaSnapshot copia los datos de la mascota al momento de facturar.
type MascotaSnapshot struct {
	MascotaID uuid.UUID `gorm:"type:uuid;index;not null"`
	Nombre    string    `gorm:"not null"`
	Especie   string
	Raza      *string
}

// Factura es la transacción facturada.
// Estado: "pendiente" | "pagada" | "anulada"
// DescuentoTipo: "monto" | "porcentaje"
type Factura struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Numero is the sequential business invoice number taken from the active
	// CAI lot. The unique index is the backstop against concurrent creates
	// consuming the same correlativo.
	Numero string `gorm:"uniqueIndex;type:varchar(20);not null"`

	Cliente ClienteSnapshot `gorm:"embedded;embeddedPrefix:cliente_"`
	Mascota MascotaSnapshot `gorm:"embedded;embeddedPrefix:mascota_"`

	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DescuentoTipo  string          `gorm:"type:varchar(12);not null;default:'monto'"`
	DescuentoValor decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DescuentoTotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	BaseImponible  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Impuesto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	// Fiscal snapshot copied from the active CAI lot at creation time
	CAICodigo       string    `gorm:"type:varchar(60);not null;column:cai_codigo"`
	CAIRangoDesde   string    `gorm:"type:varchar(20);not null;column:cai_rango_desde"`
	CAIRangoHasta   string    `gorm:"type:varchar(20);not null;column:cai_rango_hasta"`
	CAIFechaLimite  time.Time `gorm:"not null;column:cai_fecha_limite"`

	MetodoPago string `gorm:"type:varchar(20);not null;default:'efectivo'"`
	Estado     string `gorm:"type:varchar(12);not null;default:'pendiente'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Servicios []FacturaServicio `gorm:"foreignKey:FacturaID;constraint:OnDelete:CASCADE"`
	Productos []FacturaProducto `gorm:"foreignKey:FacturaID;constraint:OnDelete:CASCADE"`
}

// FacturaServicio is a priced service line item embedded in an invoice.
// ServicioID is nil when the line could not be resolved against the catalog
// and the client-supplied name/price was used instead.
type FacturaServicio struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FacturaID  uuid.UUID  `gorm:"type:uuid;index;not null"`
	ServicioID *uuid.UUID `gorm:"type:uuid"`
	Nombre     string     `gorm:"not null"`
	Precio     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Cantidad   int             `gorm:"not null"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// FacturaProducto is a priced product line item embedded in an invoice.
type FacturaProducto struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FacturaID  uuid.UUID  `gorm:"type:uuid;index;not null"`
	ProductoID *uuid.UUID `gorm:"type:uuid"`
	Nombre     string     `gorm:"not null"`
	Precio     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Cantidad   int             `gorm:"not null"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
