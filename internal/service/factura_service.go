package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinicavet/internal/dto"
	"clinicavet/internal/model"
	"clinicavet/internal/repository"
	"clinicavet/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FacturaService interface {
	Crear(ctx context.Context, req dto.CrearFacturaRequest) (*dto.FacturaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarFacturaRequest) (*dto.FacturaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) ([]string, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.FacturaResponse, error)
	Listar(ctx context.Context, filter dto.FacturaFilter) (*dto.FacturaListResponse, error)
}

type facturaService struct {
	repo            repository.FacturaRepository
	propietarioRepo repository.PropietarioRepository
	mascotaRepo     repository.MascotaRepository
	servicioRepo    repository.ServicioRepository
	productoRepo    repository.ProductoRepository
	cai             CAIService
	inventario      InventarioService
	dispatcher      *worker.Dispatcher
}

func NewFacturaService(
	repo repository.FacturaRepository,
	propietarioRepo repository.PropietarioRepository,
	mascotaRepo repository.MascotaRepository,
	servicioRepo repository.ServicioRepository,
	productoRepo repository.ProductoRepository,
	cai CAIService,
	inventario InventarioService,
	dispatcher *worker.Dispatcher,
) FacturaService {
	return &facturaService{
		repo:            repo,
		propietarioRepo: propietarioRepo,
		mascotaRepo:     mascotaRepo,
		servicioRepo:    servicioRepo,
		productoRepo:    productoRepo,
		cai:             cai,
		inventario:      inventario,
		dispatcher:      dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available, or calls
// fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Crear ─────────────────────────────────────────────────────────────────────
// All domain validation happens before any mutation: invalid owner/pet, a
// missing/expired/exhausted CAI lot, and stock shortfalls each reject the
// request with nothing persisted. The insert, the correlativo advance and the
// stock decrements then commit or abort as one transaction.

func (s *facturaService) Crear(ctx context.Context, req dto.CrearFacturaRequest) (*dto.FacturaResponse, error) {
	propietario, mascota, err := s.resolverClienteMascota(ctx, req.PropietarioID, req.MascotaID)
	if err != nil {
		return nil, err
	}

	if err := s.cai.VerificarActivo(ctx); err != nil {
		return nil, err
	}

	servicios := ResolverLineasServicio(ctx, s.servicioRepo, req.Servicios)
	productos := ResolverLineasProducto(ctx, s.productoRepo, req.Productos)
	if len(servicios)+len(productos) == 0 {
		return nil, errValidacion("la factura debe tener al menos una línea")
	}

	deltas := deltasDeLineas(productos)
	resultado, err := s.inventario.ValidarStockTx(ctx, nil, deltas)
	if err != nil {
		return nil, err
	}
	if !resultado.OK {
		return nil, &StockInsuficienteError{Faltantes: resultado.Faltantes}
	}

	totales := CalcularTotales(servicios, productos, req.DescuentoTipo, req.DescuentoValor)

	estado := req.Estado
	if estado == "" {
		estado = "pendiente"
	}
	descuentoTipo := req.DescuentoTipo
	if descuentoTipo == "" {
		descuentoTipo = DescuentoMonto
	}

	var factura model.Factura
	var advertencias []string
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		numero, err := s.cai.ConsumirNumeroTx(ctx, tx)
		if err != nil {
			return err
		}

		factura = model.Factura{
			Numero: numero.Numero,
			Cliente: model.ClienteSnapshot{
				PropietarioID: propietario.ID,
				Nombre:        propietario.Nombre,
				RTN:           propietario.RTN,
				Email:         propietario.Email,
				Telefono:      propietario.Telefono,
			},
			Mascota: model.MascotaSnapshot{
				MascotaID: mascota.ID,
				Nombre:    mascota.Nombre,
				Especie:   mascota.Especie,
				Raza:      mascota.Raza,
			},
			Subtotal:       totales.Subtotal,
			DescuentoTipo:  descuentoTipo,
			DescuentoValor: req.DescuentoValor,
			DescuentoTotal: totales.DescuentoTotal,
			BaseImponible:  totales.BaseImponible,
			Impuesto:       totales.Impuesto,
			Total:          totales.Total,
			CAICodigo:      numero.CAICodigo,
			CAIRangoDesde:  numero.RangoDesde,
			CAIRangoHasta:  numero.RangoHasta,
			CAIFechaLimite: numero.FechaLimite,
			MetodoPago:     req.MetodoPago,
			Estado:         estado,
			Servicios:      lineasAServicios(servicios),
			Productos:      lineasAProductos(productos),
		}

		if err := s.repo.CreateTx(tx, &factura); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errConflicto("el número de factura ya fue utilizado")
			}
			return err
		}

		advertencias = s.inventario.AplicarDeltasTx(ctx, tx, deltas, -1, "factura",
			factura.ID, fmt.Sprintf("Factura %s", factura.Numero))
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Async receipt delivery — fire & forget, never affects the committed invoice.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueRecibo(ctx, worker.ReciboJobPayload{FacturaID: factura.ID.String()})
	}

	resp := facturaToResponse(&factura)
	resp.Advertencias = advertencias
	return resp, nil
}

// ── Actualizar ────────────────────────────────────────────────────────────────
// The old product quantities are reversed BEFORE validating the new ones, so
// editing an invoice down in quantity frees capacity for its own new lines.
// A rejection re-applies the old deltas, leaving stock exactly as it was.

func (s *facturaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarFacturaRequest) (*dto.FacturaResponse, error) {
	existente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}

	propietario, mascota, err := s.resolverClienteMascota(ctx, req.PropietarioID, req.MascotaID)
	if err != nil {
		return nil, err
	}

	viejos := deltasDeFacturaProductos(existente.Productos)

	servicios := ResolverLineasServicio(ctx, s.servicioRepo, req.Servicios)
	productos := ResolverLineasProducto(ctx, s.productoRepo, req.Productos)
	if len(servicios)+len(productos) == 0 {
		return nil, errValidacion("la factura debe tener al menos una línea")
	}
	nuevos := deltasDeLineas(productos)

	var advertencias []string
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		motivo := fmt.Sprintf("Edición factura %s", existente.Numero)

		// 1. Free the old usage so the new request validates against the
		//    combined capacity.
		advertencias = s.inventario.AplicarDeltasTx(ctx, tx, viejos, +1, "reverso_factura", existente.ID, motivo)

		// 2. Gate the new request.
		resultado, err := s.inventario.ValidarStockTx(ctx, tx, nuevos)
		if err != nil {
			return err
		}
		if !resultado.OK {
			// Compensate the reversal so a rejected update is stock-neutral
			// even outside a rollback (and in unit-test mode, where there is
			// no transaction to roll back).
			s.inventario.AplicarDeltasTx(ctx, tx, viejos, -1, "factura", existente.ID, motivo)
			return &StockInsuficienteError{Faltantes: resultado.Faltantes}
		}

		// 3. Overwrite and persist.
		totales := CalcularTotales(servicios, productos, req.DescuentoTipo, req.DescuentoValor)
		existente.Cliente = model.ClienteSnapshot{
			PropietarioID: propietario.ID,
			Nombre:        propietario.Nombre,
			RTN:           propietario.RTN,
			Email:         propietario.Email,
			Telefono:      propietario.Telefono,
		}
		existente.Mascota = model.MascotaSnapshot{
			MascotaID: mascota.ID,
			Nombre:    mascota.Nombre,
			Especie:   mascota.Especie,
			Raza:      mascota.Raza,
		}
		existente.Subtotal = totales.Subtotal
		existente.DescuentoTipo = req.DescuentoTipo
		if existente.DescuentoTipo == "" {
			existente.DescuentoTipo = DescuentoMonto
		}
		existente.DescuentoValor = req.DescuentoValor
		existente.DescuentoTotal = totales.DescuentoTotal
		existente.BaseImponible = totales.BaseImponible
		existente.Impuesto = totales.Impuesto
		existente.Total = totales.Total
		existente.MetodoPago = req.MetodoPago
		if req.Estado != "" {
			existente.Estado = req.Estado
		}
		existente.Servicios = lineasAServicios(servicios)
		existente.Productos = lineasAProductos(productos)
		for i := range existente.Servicios {
			existente.Servicios[i].FacturaID = existente.ID
		}
		for i := range existente.Productos {
			existente.Productos[i].FacturaID = existente.ID
		}

		if err := s.repo.UpdateTx(tx, existente); err != nil {
			return err
		}

		// 4. Consume stock for the new detail.
		advertencias = append(advertencias,
			s.inventario.AplicarDeltasTx(ctx, tx, nuevos, -1, "factura", existente.ID,
				fmt.Sprintf("Factura %s", existente.Numero))...)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := facturaToResponse(existente)
	resp.Advertencias = advertencias
	return resp, nil
}

// ── Eliminar ──────────────────────────────────────────────────────────────────
// The row removal and the compensating stock reversal share one transaction:
// a crash can no longer leave stock un-reversed for a deleted invoice.

func (s *facturaService) Eliminar(ctx context.Context, id uuid.UUID) ([]string, error) {
	factura, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}

	deltas := deltasDeFacturaProductos(factura.Productos)

	var advertencias []string
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		filas, err := s.repo.DeleteTx(tx, id)
		if err != nil {
			return err
		}
		if filas == 0 {
			return ErrNoEncontrado
		}
		advertencias = s.inventario.AplicarDeltasTx(ctx, tx, deltas, +1, "reverso_factura",
			id, fmt.Sprintf("Eliminación factura %s", factura.Numero))
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return advertencias, nil
}

func (s *facturaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.FacturaResponse, error) {
	factura, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	return facturaToResponse(factura), nil
}

func (s *facturaService) Listar(ctx context.Context, filter dto.FacturaFilter) (*dto.FacturaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	facturas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.FacturaResponse, len(facturas))
	for i := range facturas {
		data[i] = *facturaToResponse(&facturas[i])
	}
	return &dto.FacturaListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (s *facturaService) resolverClienteMascota(ctx context.Context, propietarioID, mascotaID string) (*model.Propietario, *model.Mascota, error) {
	pid, err := uuid.Parse(propietarioID)
	if err != nil {
		return nil, nil, errValidacion("propietario_id inválido")
	}
	mid, err := uuid.Parse(mascotaID)
	if err != nil {
		return nil, nil, errValidacion("mascota_id inválido")
	}

	propietario, err := s.propietarioRepo.FindByID(ctx, pid)
	if err != nil {
		return nil, nil, errValidacion("cliente no válido")
	}
	mascota, err := s.mascotaRepo.FindByID(ctx, mid)
	if err != nil {
		return nil, nil, errValidacion("mascota no válida")
	}
	if mascota.PropietarioID != propietario.ID {
		return nil, nil, errValidacion("la mascota no pertenece al propietario indicado")
	}
	return propietario, mascota, nil
}

// deltasDeLineas extracts the stock-affecting quantities from resolved
// product lines. Manual lines (no catalog id) carry no stock effect.
func deltasDeLineas(lineas []LineaResuelta) []DeltaStock {
	deltas := make([]DeltaStock, 0, len(lineas))
	for _, l := range lineas {
		if l.ID == nil {
			continue
		}
		deltas = append(deltas, DeltaStock{ProductoID: *l.ID, Nombre: l.Nombre, Cantidad: l.Cantidad})
	}
	return deltas
}

func deltasDeFacturaProductos(lineas []model.FacturaProducto) []DeltaStock {
	deltas := make([]DeltaStock, 0, len(lineas))
	for _, l := range lineas {
		if l.ProductoID == nil {
			continue
		}
		deltas = append(deltas, DeltaStock{ProductoID: *l.ProductoID, Nombre: l.Nombre, Cantidad: l.Cantidad})
	}
	return deltas
}

func lineasAServicios(lineas []LineaResuelta) []model.FacturaServicio {
	out := make([]model.FacturaServicio, len(lineas))
	for i, l := range lineas {
		out[i] = model.FacturaServicio{
			ServicioID: l.ID,
			Nombre:     l.Nombre,
			Precio:     l.Precio,
			Cantidad:   l.Cantidad,
			Subtotal:   l.Subtotal,
		}
	}
	return out
}

func lineasAProductos(lineas []LineaResuelta) []model.FacturaProducto {
	out := make([]model.FacturaProducto, len(lineas))
	for i, l := range lineas {
		out[i] = model.FacturaProducto{
			ProductoID: l.ID,
			Nombre:     l.Nombre,
			Precio:     l.Precio,
			Cantidad:   l.Cantidad,
			Subtotal:   l.Subtotal,
		}
	}
	return out
}

func facturaToResponse(f *model.Factura) *dto.FacturaResponse {
	servicios := make([]dto.LineaResponse, len(f.Servicios))
	for i, l := range f.Servicios {
		var id *string
		if l.ServicioID != nil {
			s := l.ServicioID.String()
			id = &s
		}
		servicios[i] = dto.LineaResponse{ID: id, Nombre: l.Nombre, Precio: l.Precio, Cantidad: l.Cantidad, Subtotal: l.Subtotal}
	}
	productos := make([]dto.LineaResponse, len(f.Productos))
	for i, l := range f.Productos {
		var id *string
		if l.ProductoID != nil {
			s := l.ProductoID.String()
			id = &s
		}
		productos[i] = dto.LineaResponse{ID: id, Nombre: l.Nombre, Precio: l.Precio, Cantidad: l.Cantidad, Subtotal: l.Subtotal}
	}

	return &dto.FacturaResponse{
		ID:     f.ID.String(),
		Numero: f.Numero,
		Cliente: dto.ClienteFacturaResponse{
			PropietarioID: f.Cliente.PropietarioID.String(),
			Nombre:        f.Cliente.Nombre,
			RTN:           f.Cliente.RTN,
			Email:         f.Cliente.Email,
			Telefono:      f.Cliente.Telefono,
		},
		Mascota: dto.MascotaFacturaResponse{
			MascotaID: f.Mascota.MascotaID.String(),
			Nombre:    f.Mascota.Nombre,
			Especie:   f.Mascota.Especie,
			Raza:      f.Mascota.Raza,
		},
		Servicios:      servicios,
		Productos:      productos,
		Subtotal:       f.Subtotal,
		DescuentoTipo:  f.DescuentoTipo,
		DescuentoValor: f.DescuentoValor,
		DescuentoTotal: f.DescuentoTotal,
		BaseImponible:  f.BaseImponible,
		Impuesto:       f.Impuesto,
		Total:          f.Total,
		CAI:            f.CAICodigo,
		RangoDesde:     f.CAIRangoDesde,
		RangoHasta:     f.CAIRangoHasta,
		FechaLimite:    f.CAIFechaLimite.Format("2006-01-02"),
		MetodoPago:     f.MetodoPago,
		Estado:         f.Estado,
		CreatedAt:      f.CreatedAt.Format(time.RFC3339),
	}
}
