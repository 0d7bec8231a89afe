package service

import (
	"context"

	"clinicavet/internal/dto"
	"clinicavet/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrigenLinea tags how a line item's name and price were obtained, so callers
// never have to guess whether a zero price means "free" or "unresolved".
type OrigenLinea string

const (
	// OrigenCatalogo: the catalog lookup succeeded; canonical name and price.
	OrigenCatalogo OrigenLinea = "catalogo"
	// OrigenManual: no id was sent, or the lookup failed; client-supplied
	// name/price were used (quantity defaults to 1, absent price to 0).
	OrigenManual OrigenLinea = "manual"
)

// LineaResuelta is one priced, named line item ready for totals and stock
// processing.
type LineaResuelta struct {
	ID       *uuid.UUID // catalog id when Origen == OrigenCatalogo
	Origen   OrigenLinea
	Nombre   string
	Precio   decimal.Decimal
	Cantidad int
	Subtotal decimal.Decimal
}

// ResolverLineasServicio turns raw requested items into priced service lines.
// Each lookup runs independently: one miss falls back to the client-supplied
// data without aborting the batch.
func ResolverLineasServicio(ctx context.Context, repo repository.ServicioRepository, items []dto.LineaRequest) []LineaResuelta {
	lineas := make([]LineaResuelta, 0, len(items))
	for _, item := range items {
		linea := lineaManual(item)
		if item.ServicioID != nil {
			if id, err := uuid.Parse(*item.ServicioID); err == nil {
				if s, err := repo.FindByID(ctx, id); err == nil {
					linea.ID = &s.ID
					linea.Origen = OrigenCatalogo
					linea.Nombre = s.Nombre
					linea.Precio = s.Precio
				}
			}
		}
		linea.Subtotal = linea.Precio.Mul(decimal.NewFromInt(int64(linea.Cantidad))).Round(2)
		lineas = append(lineas, linea)
	}
	return lineas
}

// ResolverLineasProducto is the product-catalog counterpart of
// ResolverLineasServicio.
func ResolverLineasProducto(ctx context.Context, repo repository.ProductoRepository, items []dto.LineaRequest) []LineaResuelta {
	lineas := make([]LineaResuelta, 0, len(items))
	for _, item := range items {
		linea := lineaManual(item)
		if item.ProductoID != nil {
			if id, err := uuid.Parse(*item.ProductoID); err == nil {
				if p, err := repo.FindByID(ctx, id); err == nil {
					linea.ID = &p.ID
					linea.Origen = OrigenCatalogo
					linea.Nombre = p.Nombre
					linea.Precio = p.Precio
				}
			}
		}
		linea.Subtotal = linea.Precio.Mul(decimal.NewFromInt(int64(linea.Cantidad))).Round(2)
		lineas = append(lineas, linea)
	}
	return lineas
}

// lineaManual builds the fallback line from client-supplied fields: quantity
// defaults to 1, an absent or negative price to 0.
func lineaManual(item dto.LineaRequest) LineaResuelta {
	linea := LineaResuelta{Origen: OrigenManual, Cantidad: 1, Precio: decimal.Zero}
	if item.Cantidad != nil && *item.Cantidad > 0 {
		linea.Cantidad = *item.Cantidad
	}
	if item.Nombre != nil {
		linea.Nombre = *item.Nombre
	}
	if item.Precio != nil && !item.Precio.IsNegative() {
		linea.Precio = *item.Precio
	}
	return linea
}
