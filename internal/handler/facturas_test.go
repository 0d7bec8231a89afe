package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinicavet/internal/dto"
	"clinicavet/internal/handler"
	"clinicavet/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFacturaService fija las respuestas del servicio para probar el
// contrato HTTP del handler sin tocar repositorios.
type stubFacturaService struct {
	advertencias []string
	eliminarErr  error
}

func (s *stubFacturaService) Crear(context.Context, dto.CrearFacturaRequest) (*dto.FacturaResponse, error) {
	return nil, nil
}

func (s *stubFacturaService) Actualizar(context.Context, uuid.UUID, dto.ActualizarFacturaRequest) (*dto.FacturaResponse, error) {
	return nil, nil
}

func (s *stubFacturaService) Eliminar(context.Context, uuid.UUID) ([]string, error) {
	return s.advertencias, s.eliminarErr
}

func (s *stubFacturaService) Obtener(context.Context, uuid.UUID) (*dto.FacturaResponse, error) {
	return nil, nil
}

func (s *stubFacturaService) Listar(context.Context, dto.FacturaFilter) (*dto.FacturaListResponse, error) {
	return nil, nil
}

var _ service.FacturaService = (*stubFacturaService)(nil)

func eliminarFactura(t *testing.T, svc service.FacturaService, id string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/v1/facturas/:id", handler.NewFacturasHandler(svc).Eliminar)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/v1/facturas/"+id, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestEliminarFacturaResponde200ConConfirmacion(t *testing.T) {
	w := eliminarFactura(t, &stubFacturaService{}, uuid.NewString())

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Factura eliminada", body["detail"])
	assert.NotContains(t, body, "advertencias")
}

func TestEliminarFacturaIncluyeAdvertencias(t *testing.T) {
	svc := &stubFacturaService{advertencias: []string{"ajuste de stock omitido para Desparasitante canino: producto inexistente o stock insuficiente"}}
	w := eliminarFactura(t, svc, uuid.NewString())

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Factura eliminada", body["detail"])
	require.Contains(t, body, "advertencias")
	assert.Len(t, body["advertencias"], 1)
}

func TestEliminarFacturaNoEncontrada(t *testing.T) {
	svc := &stubFacturaService{eliminarErr: service.ErrNoEncontrado}
	w := eliminarFactura(t, svc, uuid.NewString())

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEliminarFacturaIDInvalido(t *testing.T) {
	w := eliminarFactura(t, &stubFacturaService{}, "no-es-un-uuid")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
