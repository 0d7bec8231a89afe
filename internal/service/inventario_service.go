package service

import (
	"context"
	"fmt"

	"clinicavet/internal/dto"
	"clinicavet/internal/model"
	"clinicavet/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeltaStock is one product quantity affected by an invoice operation.
type DeltaStock struct {
	ProductoID uuid.UUID
	Nombre     string
	Cantidad   int
}

// ResultadoStock is the outcome of a stock validation pass. OK is true iff
// Faltantes is empty.
type ResultadoStock struct {
	OK        bool
	Faltantes []dto.FaltanteStock
}

// InventarioService owns every read and write of Producto.StockActual done on
// behalf of invoicing, plus manual inventory adjustments and low-stock alerts.
type InventarioService interface {
	// ValidarStockTx checks every delta against current on-hand stock and
	// returns ALL shortfalls in one pass. Read-only: a pre-commit gate.
	ValidarStockTx(ctx context.Context, tx *gorm.DB, deltas []DeltaStock) (*ResultadoStock, error)

	// AplicarDeltasTx applies cantidad*signo to each product's stock with one
	// conditional update per item (decrements only apply when enough is on
	// hand). Per-item failures become warnings, never abort the batch; the
	// enclosing transaction provides invoice-level atomicity.
	AplicarDeltasTx(ctx context.Context, tx *gorm.DB, deltas []DeltaStock, signo int, tipo string, referencia uuid.UUID, motivo string) []string

	AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error)
	ObtenerAlertas(ctx context.Context) ([]dto.AlertaStockResponse, error)
	ListarMovimientos(ctx context.Context, productoID *uuid.UUID, limit int) ([]dto.MovimientoStockResponse, error)
}

type inventarioService struct {
	productoRepo   repository.ProductoRepository
	movimientoRepo repository.MovimientoStockRepository
}

func NewInventarioService(productoRepo repository.ProductoRepository, movimientoRepo repository.MovimientoStockRepository) InventarioService {
	return &inventarioService{productoRepo: productoRepo, movimientoRepo: movimientoRepo}
}

func (s *inventarioService) ValidarStockTx(ctx context.Context, tx *gorm.DB, deltas []DeltaStock) (*ResultadoStock, error) {
	resultado := &ResultadoStock{}
	for _, d := range deltas {
		p, err := s.findProducto(ctx, tx, d.ProductoID)
		if err != nil {
			resultado.Faltantes = append(resultado.Faltantes, dto.FaltanteStock{
				ProductoID: d.ProductoID.String(),
				Nombre:     d.Nombre,
				Solicitado: d.Cantidad,
				Disponible: 0,
			})
			continue
		}
		if d.Cantidad <= 0 || p.StockActual < d.Cantidad {
			disponible := p.StockActual
			if disponible < 0 {
				disponible = 0
			}
			resultado.Faltantes = append(resultado.Faltantes, dto.FaltanteStock{
				ProductoID: d.ProductoID.String(),
				Nombre:     p.Nombre,
				Solicitado: d.Cantidad,
				Disponible: disponible,
			})
		}
	}
	resultado.OK = len(resultado.Faltantes) == 0
	return resultado, nil
}

func (s *inventarioService) AplicarDeltasTx(ctx context.Context, tx *gorm.DB, deltas []DeltaStock, signo int, tipo string, referencia uuid.UUID, motivo string) []string {
	var advertencias []string
	for _, d := range deltas {
		if d.Cantidad <= 0 {
			continue
		}

		// Current stock for the movement record — best effort.
		stockAntes := 0
		if p, err := s.findProducto(ctx, tx, d.ProductoID); err == nil {
			stockAntes = p.StockActual
		}

		var filas int64
		var err error
		if signo < 0 {
			filas, err = s.productoRepo.DescontarStockCondTx(tx, d.ProductoID, d.Cantidad)
		} else {
			filas, err = s.productoRepo.DevolverStockTx(tx, d.ProductoID, d.Cantidad)
		}
		if err != nil {
			advertencias = append(advertencias, fmt.Sprintf("no se pudo ajustar stock de %s: %v", d.Nombre, err))
			continue
		}
		if filas == 0 {
			advertencias = append(advertencias, fmt.Sprintf("ajuste de stock omitido para %s: producto inexistente o stock insuficiente", d.Nombre))
			continue
		}

		ref := referencia
		mov := &model.MovimientoStock{
			ProductoID:    d.ProductoID,
			Tipo:          tipo,
			Cantidad:      d.Cantidad * signo,
			StockAnterior: stockAntes,
			StockNuevo:    stockAntes + d.Cantidad*signo,
			Motivo:        motivo,
			ReferenciaID:  &ref,
		}
		if err := s.movimientoRepo.CreateTx(tx, mov); err != nil {
			advertencias = append(advertencias, fmt.Sprintf("movimiento de stock no registrado para %s: %v", d.Nombre, err))
		}
	}
	return advertencias
}

func (s *inventarioService) AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error) {
	p, err := s.productoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	// Capture both sides of the movement before the repo mutates anything,
	// so the record stays correct regardless of how FindByID shares state.
	anterior := p.StockActual
	nuevo := anterior + req.Delta
	if nuevo < 0 {
		return nil, errValidacion(fmt.Sprintf("el ajuste dejaría stock negativo (actual %d, delta %d)", anterior, req.Delta))
	}

	if err := s.productoRepo.AjustarStock(ctx, id, req.Delta); err != nil {
		return nil, err
	}
	mov := &model.MovimientoStock{
		ProductoID:    id,
		Tipo:          "ajuste_manual",
		Cantidad:      req.Delta,
		StockAnterior: anterior,
		StockNuevo:    nuevo,
		Motivo:        req.Motivo,
	}
	// The movement log is an audit trail; a failed insert does not undo the adjustment.
	_ = s.movimientoRepo.Create(ctx, mov)

	p.StockActual = nuevo
	return productoToResponse(p), nil
}

func (s *inventarioService) ObtenerAlertas(ctx context.Context) ([]dto.AlertaStockResponse, error) {
	productos, err := s.productoRepo.ListBajoStock(ctx)
	if err != nil {
		return nil, err
	}
	alertas := make([]dto.AlertaStockResponse, len(productos))
	for i, p := range productos {
		alertas[i] = dto.AlertaStockResponse{
			ProductoID:  p.ID.String(),
			Nombre:      p.Nombre,
			StockActual: p.StockActual,
			StockMinimo: p.StockMinimo,
		}
	}
	return alertas, nil
}

func (s *inventarioService) ListarMovimientos(ctx context.Context, productoID *uuid.UUID, limit int) ([]dto.MovimientoStockResponse, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	var movimientos []model.MovimientoStock
	var err error
	if productoID != nil {
		movimientos, err = s.movimientoRepo.ListByProducto(ctx, *productoID, limit)
	} else {
		movimientos, err = s.movimientoRepo.ListRecientes(ctx, limit)
	}
	if err != nil {
		return nil, err
	}

	resp := make([]dto.MovimientoStockResponse, len(movimientos))
	for i, m := range movimientos {
		nombre := ""
		if m.Producto != nil {
			nombre = m.Producto.Nombre
		}
		var ref *string
		if m.ReferenciaID != nil {
			r := m.ReferenciaID.String()
			ref = &r
		}
		resp[i] = dto.MovimientoStockResponse{
			ID:            m.ID.String(),
			ProductoID:    m.ProductoID.String(),
			Producto:      nombre,
			Tipo:          m.Tipo,
			Cantidad:      m.Cantidad,
			StockAnterior: m.StockAnterior,
			StockNuevo:    m.StockNuevo,
			Motivo:        m.Motivo,
			ReferenciaID:  ref,
			CreatedAt:     m.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}
	return resp, nil
}

// findProducto reads through the transaction when one is live so validation
// sees uncommitted reversals during an update.
func (s *inventarioService) findProducto(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	if tx != nil {
		return s.productoRepo.FindByIDTx(tx, id)
	}
	return s.productoRepo.FindByID(ctx, id)
}
