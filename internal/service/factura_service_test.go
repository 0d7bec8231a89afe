package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinicavet/internal/dto"
	"clinicavet/internal/model"
	"clinicavet/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// entornoFactura agrupa el servicio bajo prueba con sus stubs y los datos
// de catálogo precargados que usan la mayoría de los escenarios.
type entornoFactura struct {
	svc         service.FacturaService
	facturas    *stubFacturaRepo
	productos   *stubProductoRepo
	movimientos *stubMovimientoRepo
	cais        *stubCAIRepo

	propietario    *model.Propietario
	mascota        *model.Mascota
	consulta       *model.Servicio
	desparasitante *model.Producto
	cai            *model.CAI
}

func nuevoEntornoFactura() *entornoFactura {
	e := &entornoFactura{
		propietario: &model.Propietario{
			Nombre:   "María López",
			RTN:      strPtr("08011985123960"),
			Telefono: strPtr("9999-1234"),
			Activo:   true,
		},
		consulta: &model.Servicio{
			Nombre:    "Consulta general",
			Categoria: "consulta",
			Precio:    precio(250),
			Activo:    true,
		},
		desparasitante: &model.Producto{
			Nombre:      "Desparasitante canino",
			Categoria:   "medicamento",
			Precio:      precio(70),
			StockActual: 10,
			StockMinimo: 5,
			Activo:      true,
		},
		cai: &model.CAI{
			Codigo:      "254F8-612021-9100B",
			RangoDesde:  "001-001-01-00000001",
			RangoHasta:  "001-001-01-00005000",
			FechaLimite: time.Now().AddDate(1, 0, 0),
			Activo:      true,
		},
	}

	propietarios := newStubPropietarioRepo(e.propietario)
	e.mascota = &model.Mascota{
		Nombre:        "Firulais",
		Especie:       "perro",
		Raza:          strPtr("labrador"),
		PropietarioID: e.propietario.ID,
		Activo:        true,
	}
	mascotas := newStubMascotaRepo(e.mascota)

	servicios := newStubServicioRepo(e.consulta)
	e.productos = newStubProductoRepo(e.desparasitante)
	e.facturas = newStubFacturaRepo()
	e.movimientos = newStubMovimientoRepo()
	e.cais = newStubCAIRepo(e.cai)

	e.svc = service.NewFacturaService(
		e.facturas, propietarios, mascotas, servicios, e.productos,
		service.NewCAIService(e.cais),
		service.NewInventarioService(e.productos, e.movimientos),
		nil,
	)
	return e
}

func (e *entornoFactura) reqBase() dto.CrearFacturaRequest {
	return dto.CrearFacturaRequest{
		PropietarioID: e.propietario.ID.String(),
		MascotaID:     e.mascota.ID.String(),
		MetodoPago:    "efectivo",
	}
}

func lineaServicio(id uuid.UUID, cantidad int) dto.LineaRequest {
	s := id.String()
	return dto.LineaRequest{ServicioID: &s, Cantidad: intPtr(cantidad)}
}

func lineaProducto(id uuid.UUID, cantidad int) dto.LineaRequest {
	s := id.String()
	return dto.LineaRequest{ProductoID: &s, Cantidad: intPtr(cantidad)}
}

// ── Crear ─────────────────────────────────────────────────────────────────────

func TestCrearFactura(t *testing.T) {
	e := nuevoEntornoFactura()
	req := e.reqBase()
	req.Servicios = []dto.LineaRequest{lineaServicio(e.consulta.ID, 1)}
	req.Productos = []dto.LineaRequest{lineaProducto(e.desparasitante.ID, 3)}

	resp, err := e.svc.Crear(context.Background(), req)
	require.NoError(t, err)

	// Primer número del lote activo, con la secuencia rellenada a 8 dígitos.
	assert.Equal(t, "001-001-01-00000001", resp.Numero)
	assert.Equal(t, int64(1), e.cai.CorrelativoActual)

	// 250 + 3×70 = 460; sin descuento; ISV 15% = 69.
	assert.True(t, resp.Subtotal.Equal(precio(460)), "subtotal: %s", resp.Subtotal)
	assert.True(t, resp.Impuesto.Equal(precio(69)), "impuesto: %s", resp.Impuesto)
	assert.True(t, resp.Total.Equal(precio(529)), "total: %s", resp.Total)
	assert.Equal(t, "monto", resp.DescuentoTipo)
	assert.Equal(t, "pendiente", resp.Estado)

	// Snapshot fiscal del lote.
	assert.Equal(t, e.cai.Codigo, resp.CAI)
	assert.Equal(t, e.cai.RangoDesde, resp.RangoDesde)
	assert.Equal(t, e.cai.RangoHasta, resp.RangoHasta)

	// Snapshot del cliente y la mascota.
	assert.Equal(t, "María López", resp.Cliente.Nombre)
	require.NotNil(t, resp.Cliente.RTN)
	assert.Equal(t, "08011985123960", *resp.Cliente.RTN)
	assert.Equal(t, "Firulais", resp.Mascota.Nombre)
	assert.Equal(t, "perro", resp.Mascota.Especie)

	// Stock descontado y movimiento registrado.
	assert.Equal(t, 7, e.desparasitante.StockActual)
	assert.Equal(t, 1, e.movimientos.porTipo("factura"))
	assert.Equal(t, -3, e.movimientos.movimientos[0].Cantidad)
	assert.Empty(t, resp.Advertencias)
}

func TestCrearFacturaNumerosConsecutivos(t *testing.T) {
	e := nuevoEntornoFactura()
	req := e.reqBase()
	req.Servicios = []dto.LineaRequest{lineaServicio(e.consulta.ID, 1)}

	primera, err := e.svc.Crear(context.Background(), req)
	require.NoError(t, err)
	segunda, err := e.svc.Crear(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "001-001-01-00000001", primera.Numero)
	assert.Equal(t, "001-001-01-00000002", segunda.Numero)
	assert.Equal(t, int64(2), e.cai.CorrelativoActual)
}

func TestCrearFacturaStockInsuficienteListaTodosLosFaltantes(t *testing.T) {
	e := nuevoEntornoFactura()
	otro := &model.Producto{
		Nombre:      "Shampoo medicado",
		Categoria:   "higiene",
		Precio:      precio(120),
		StockActual: 1,
		Activo:      true,
	}
	require.NoError(t, e.productos.Create(context.Background(), otro))

	req := e.reqBase()
	req.Productos = []dto.LineaRequest{
		lineaProducto(e.desparasitante.ID, 15), // hay 10
		lineaProducto(otro.ID, 4),              // hay 1
	}

	_, err := e.svc.Crear(context.Background(), req)

	var stockErr *service.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	require.Len(t, stockErr.Faltantes, 2)

	faltantes := map[string]dto.FaltanteStock{}
	for _, f := range stockErr.Faltantes {
		faltantes[f.ProductoID] = f
	}
	assert.Equal(t, 15, faltantes[e.desparasitante.ID.String()].Solicitado)
	assert.Equal(t, 10, faltantes[e.desparasitante.ID.String()].Disponible)
	assert.Equal(t, 4, faltantes[otro.ID.String()].Solicitado)
	assert.Equal(t, 1, faltantes[otro.ID.String()].Disponible)

	// Nada persistido: ni factura, ni consumo de número, ni stock tocado.
	assert.Empty(t, e.facturas.facturas)
	assert.Equal(t, int64(0), e.cai.CorrelativoActual)
	assert.Equal(t, 10, e.desparasitante.StockActual)
	assert.Equal(t, 1, otro.StockActual)
}

func TestCrearFacturaSinCAIActivo(t *testing.T) {
	e := nuevoEntornoFactura()
	e.cai.Activo = false

	req := e.reqBase()
	req.Servicios = []dto.LineaRequest{lineaServicio(e.consulta.ID, 1)}

	_, err := e.svc.Crear(context.Background(), req)

	var valErr *service.ValidacionError
	require.ErrorAs(t, err, &valErr)
	assert.Empty(t, e.facturas.facturas)
}

func TestCrearFacturaCAIVencido(t *testing.T) {
	e := nuevoEntornoFactura()
	e.cai.FechaLimite = time.Now().AddDate(0, 0, -1)

	req := e.reqBase()
	req.Servicios = []dto.LineaRequest{lineaServicio(e.consulta.ID, 1)}

	_, err := e.svc.Crear(context.Background(), req)

	var valErr *service.ValidacionError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Detalle, "vencido")
}

func TestCrearFacturaCAIAgotado(t *testing.T) {
	e := nuevoEntornoFactura()
	e.cai.RangoHasta = "001-001-01-00000002"
	e.cai.CorrelativoActual = 2 // ambos números del lote ya consumidos

	req := e.reqBase()
	req.Servicios = []dto.LineaRequest{lineaServicio(e.consulta.ID, 1)}

	_, err := e.svc.Crear(context.Background(), req)

	var valErr *service.ValidacionError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Detalle, "agotó")
	assert.Equal(t, int64(2), e.cai.CorrelativoActual)
}

func TestCrearFacturaSinLineas(t *testing.T) {
	e := nuevoEntornoFactura()

	_, err := e.svc.Crear(context.Background(), e.reqBase())

	var valErr *service.ValidacionError
	require.ErrorAs(t, err, &valErr)
}

func TestCrearFacturaMascotaDeOtroPropietario(t *testing.T) {
	e := nuevoEntornoFactura()
	req := e.reqBase()
	req.PropietarioID = uuid.NewString() // existe la mascota, no este dueño
	req.Servicios = []dto.LineaRequest{lineaServicio(e.consulta.ID, 1)}

	_, err := e.svc.Crear(context.Background(), req)

	var valErr *service.ValidacionError
	require.ErrorAs(t, err, &valErr)
}

func TestCrearFacturaLineaManualNoAfectaStock(t *testing.T) {
	e := nuevoEntornoFactura()
	req := e.reqBase()
	// Sin producto_id: cargo libre que no existe en el catálogo.
	req.Productos = []dto.LineaRequest{{
		Nombre:   strPtr("Collar isabelino (donación)"),
		Precio:   decimalPtr(precio(90)),
		Cantidad: intPtr(2),
	}}

	resp, err := e.svc.Crear(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Productos, 1)
	assert.Nil(t, resp.Productos[0].ID)
	assert.Equal(t, "Collar isabelino (donación)", resp.Productos[0].Nombre)
	assert.True(t, resp.Subtotal.Equal(precio(180)), "subtotal: %s", resp.Subtotal)

	// El stock del catálogo no se toca y no se registra movimiento.
	assert.Equal(t, 10, e.desparasitante.StockActual)
	assert.Empty(t, e.movimientos.movimientos)
}

func TestCrearFacturaCarreraDeNumeracion(t *testing.T) {
	e := nuevoEntornoFactura()
	e.cais.simularCarrera = true

	req := e.reqBase()
	req.Servicios = []dto.LineaRequest{lineaServicio(e.consulta.ID, 1)}
	req.Productos = []dto.LineaRequest{lineaProducto(e.desparasitante.ID, 3)}

	_, err := e.svc.Crear(context.Background(), req)

	var confErr *service.ConflictoError
	require.ErrorAs(t, err, &confErr)
	// El intento perdedor no deja factura ni descuenta stock.
	assert.Empty(t, e.facturas.facturas)
	assert.Equal(t, 10, e.desparasitante.StockActual)
}

// ── Actualizar ────────────────────────────────────────────────────────────────

func TestActualizarFacturaReaplicaStock(t *testing.T) {
	e := nuevoEntornoFactura()
	req := e.reqBase()
	req.Servicios = []dto.LineaRequest{lineaServicio(e.consulta.ID, 1)}
	req.Productos = []dto.LineaRequest{lineaProducto(e.desparasitante.ID, 3)}

	creada, err := e.svc.Crear(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 7, e.desparasitante.StockActual)

	// Subir la cantidad a 8: válido porque primero se reversa el consumo
	// original (7 + 3 = 10 disponibles ≥ 8).
	id := uuid.MustParse(creada.ID)
	edicion := e.reqBase()
	edicion.Productos = []dto.LineaRequest{lineaProducto(e.desparasitante.ID, 8)}

	resp, err := e.svc.Actualizar(context.Background(), id, edicion)
	require.NoError(t, err)

	assert.Equal(t, 2, e.desparasitante.StockActual)
	assert.GreaterOrEqual(t, e.movimientos.porTipo("reverso_factura"), 1)

	// El número y el snapshot fiscal nunca cambian en una edición.
	assert.Equal(t, creada.Numero, resp.Numero)
	assert.Equal(t, creada.CAI, resp.CAI)
	assert.Equal(t, int64(1), e.cai.CorrelativoActual)

	// Totales recalculados: 8×70 = 560, ISV 84, total 644.
	assert.True(t, resp.Total.Equal(precio(644)), "total: %s", resp.Total)
}

func TestActualizarFacturaRechazadaEsNeutraEnStock(t *testing.T) {
	e := nuevoEntornoFactura()
	req := e.reqBase()
	req.Productos = []dto.LineaRequest{lineaProducto(e.desparasitante.ID, 3)}

	creada, err := e.svc.Crear(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 7, e.desparasitante.StockActual)

	id := uuid.MustParse(creada.ID)
	edicion := e.reqBase()
	edicion.Productos = []dto.LineaRequest{lineaProducto(e.desparasitante.ID, 25)}

	_, err = e.svc.Actualizar(context.Background(), id, edicion)

	var stockErr *service.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	require.Len(t, stockErr.Faltantes, 1)
	assert.Equal(t, 25, stockErr.Faltantes[0].Solicitado)
	assert.Equal(t, 10, stockErr.Faltantes[0].Disponible)

	// La reversión temporal se compensó: el stock queda como estaba.
	assert.Equal(t, 7, e.desparasitante.StockActual)

	// La factura original sigue intacta.
	guardada, err := e.svc.Obtener(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, creada.Numero, guardada.Numero)
	require.Len(t, guardada.Productos, 1)
	assert.Equal(t, 3, guardada.Productos[0].Cantidad)
}

func TestActualizarFacturaNoExiste(t *testing.T) {
	e := nuevoEntornoFactura()
	edicion := e.reqBase()
	edicion.Servicios = []dto.LineaRequest{lineaServicio(e.consulta.ID, 1)}

	_, err := e.svc.Actualizar(context.Background(), uuid.New(), edicion)
	assert.True(t, errors.Is(err, service.ErrNoEncontrado))
}

// ── Eliminar ──────────────────────────────────────────────────────────────────

func TestEliminarFacturaDevuelveStock(t *testing.T) {
	e := nuevoEntornoFactura()
	req := e.reqBase()
	req.Productos = []dto.LineaRequest{lineaProducto(e.desparasitante.ID, 4)}

	creada, err := e.svc.Crear(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 6, e.desparasitante.StockActual)

	id := uuid.MustParse(creada.ID)
	advertencias, err := e.svc.Eliminar(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, advertencias)

	assert.Equal(t, 10, e.desparasitante.StockActual)
	assert.Equal(t, 1, e.movimientos.porTipo("reverso_factura"))

	_, err = e.svc.Obtener(context.Background(), id)
	assert.True(t, errors.Is(err, service.ErrNoEncontrado))

	_, err = e.svc.Eliminar(context.Background(), id)
	assert.True(t, errors.Is(err, service.ErrNoEncontrado))
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }
