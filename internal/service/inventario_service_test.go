package service_test

import (
	"context"
	"errors"
	"testing"

	"clinicavet/internal/dto"
	"clinicavet/internal/model"
	"clinicavet/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nuevoInventario(productos ...*model.Producto) (service.InventarioService, *stubProductoRepo, *stubMovimientoRepo) {
	repo := newStubProductoRepo(productos...)
	movimientos := newStubMovimientoRepo()
	return service.NewInventarioService(repo, movimientos), repo, movimientos
}

func TestAjustarStockManual(t *testing.T) {
	p := &model.Producto{Nombre: "Antipulgas", Categoria: "medicamento", Precio: precio(150), StockActual: 3, StockMinimo: 5, Activo: true}
	svc, _, movimientos := nuevoInventario(p)

	resp, err := svc.AjustarStock(context.Background(), p.ID, dto.AjustarStockRequest{
		Delta:  12,
		Motivo: "Recepción de pedido #4411",
	})
	require.NoError(t, err)

	// El delta se aplica exactamente una vez, tanto en la respuesta como en
	// el producto almacenado.
	assert.Equal(t, 15, resp.StockActual)
	assert.Equal(t, 15, p.StockActual)
	require.Len(t, movimientos.movimientos, 1)
	assert.Equal(t, "ajuste_manual", movimientos.movimientos[0].Tipo)
	assert.Equal(t, 12, movimientos.movimientos[0].Cantidad)
	assert.Equal(t, 3, movimientos.movimientos[0].StockAnterior)
	assert.Equal(t, 15, movimientos.movimientos[0].StockNuevo)
}

func TestAjustarStockNoPermiteNegativo(t *testing.T) {
	p := &model.Producto{Nombre: "Antipulgas", Categoria: "medicamento", Precio: precio(150), StockActual: 3, Activo: true}
	svc, _, movimientos := nuevoInventario(p)

	_, err := svc.AjustarStock(context.Background(), p.ID, dto.AjustarStockRequest{
		Delta:  -5,
		Motivo: "Merma por vencimiento",
	})

	var valErr *service.ValidacionError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, 3, p.StockActual)
	assert.Empty(t, movimientos.movimientos)
}

func TestAjustarStockProductoInexistente(t *testing.T) {
	svc, _, _ := nuevoInventario()

	_, err := svc.AjustarStock(context.Background(), uuid.New(), dto.AjustarStockRequest{
		Delta:  1,
		Motivo: "Conteo físico",
	})
	assert.True(t, errors.Is(err, service.ErrNoEncontrado))
}

func TestValidarStockReportaProductoInexistente(t *testing.T) {
	svc, _, _ := nuevoInventario()
	fantasma := uuid.New()

	resultado, err := svc.ValidarStockTx(context.Background(), nil, []service.DeltaStock{
		{ProductoID: fantasma, Nombre: "Producto retirado", Cantidad: 2},
	})
	require.NoError(t, err)

	assert.False(t, resultado.OK)
	require.Len(t, resultado.Faltantes, 1)
	assert.Equal(t, 0, resultado.Faltantes[0].Disponible)
	assert.Equal(t, 2, resultado.Faltantes[0].Solicitado)
}

func TestAplicarDeltasReportaAdvertenciaSinAbortar(t *testing.T) {
	p := &model.Producto{Nombre: "Jeringa 5ml", Categoria: "insumo", Precio: precio(8), StockActual: 50, Activo: true}
	svc, _, movimientos := nuevoInventario(p)

	ref := uuid.New()
	advertencias := svc.AplicarDeltasTx(context.Background(), nil, []service.DeltaStock{
		{ProductoID: uuid.New(), Nombre: "Producto borrado", Cantidad: 1},
		{ProductoID: p.ID, Nombre: p.Nombre, Cantidad: 10},
	}, -1, "factura", ref, "Factura 001-001-01-00000009")

	// El producto inexistente genera advertencia; el resto del lote se aplica.
	require.Len(t, advertencias, 1)
	assert.Contains(t, advertencias[0], "Producto borrado")
	assert.Equal(t, 40, p.StockActual)
	require.Len(t, movimientos.movimientos, 1)
	require.NotNil(t, movimientos.movimientos[0].ReferenciaID)
	assert.Equal(t, ref, *movimientos.movimientos[0].ReferenciaID)
}

func TestObtenerAlertas(t *testing.T) {
	bajo := &model.Producto{Nombre: "Suero", Categoria: "insumo", Precio: precio(95), StockActual: 2, StockMinimo: 5, Activo: true}
	sano := &model.Producto{Nombre: "Gasas", Categoria: "insumo", Precio: precio(15), StockActual: 80, StockMinimo: 10, Activo: true}
	svc, _, _ := nuevoInventario(bajo, sano)

	alertas, err := svc.ObtenerAlertas(context.Background())
	require.NoError(t, err)

	require.Len(t, alertas, 1)
	assert.Equal(t, "Suero", alertas[0].Nombre)
	assert.Equal(t, 2, alertas[0].StockActual)
	assert.Equal(t, 5, alertas[0].StockMinimo)
}
