package service

import "github.com/shopspring/decimal"

// Discount types accepted on an invoice.
const (
	DescuentoMonto      = "monto"
	DescuentoPorcentaje = "porcentaje"
)

// tasaISV is the fixed sales tax rate (15%). A domain constant, not
// configurable per invoice.
var tasaISV = decimal.NewFromFloat(0.15)

var cien = decimal.NewFromInt(100)

// Totales holds every derived monetary field of an invoice, all rounded to
// two decimals.
type Totales struct {
	Subtotal       decimal.Decimal
	DescuentoTotal decimal.Decimal
	BaseImponible  decimal.Decimal
	Impuesto       decimal.Decimal
	Total          decimal.Decimal
}

// CalcularTotales derives an invoice's totals from its resolved line items
// and discount spec. Pure function: no I/O, deterministic, independently
// testable.
//
// The discount is capped at the subtotal so over-discounting can never
// produce a negative base, and a negative descuentoValor is treated as zero.
func CalcularTotales(servicios, productos []LineaResuelta, descuentoTipo string, descuentoValor decimal.Decimal) Totales {
	subtotal := decimal.Zero
	for _, l := range servicios {
		subtotal = subtotal.Add(l.Subtotal)
	}
	for _, l := range productos {
		subtotal = subtotal.Add(l.Subtotal)
	}
	subtotal = subtotal.Round(2)

	if descuentoValor.IsNegative() {
		descuentoValor = decimal.Zero
	}

	var descuento decimal.Decimal
	switch descuentoTipo {
	case DescuentoPorcentaje:
		descuento = subtotal.Mul(descuentoValor).Div(cien)
	default: // DescuentoMonto
		descuento = descuentoValor
	}
	if descuento.GreaterThan(subtotal) {
		descuento = subtotal
	}
	descuento = descuento.Round(2)

	base := subtotal.Sub(descuento)
	if base.IsNegative() {
		base = decimal.Zero
	}
	base = base.Round(2)

	impuesto := base.Mul(tasaISV).Round(2)
	total := base.Add(impuesto).Round(2)

	return Totales{
		Subtotal:       subtotal,
		DescuentoTotal: descuento,
		BaseImponible:  base,
		Impuesto:       impuesto,
		Total:          total,
	}
}
