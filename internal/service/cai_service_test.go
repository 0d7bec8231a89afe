package service_test

import (
	"context"
	"testing"
	"time"

	"clinicavet/internal/dto"
	"clinicavet/internal/model"
	"clinicavet/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func caiVigente(activo bool) *model.CAI {
	return &model.CAI{
		Codigo:      "254F8-612021-9100B",
		RangoDesde:  "001-001-01-00000001",
		RangoHasta:  "001-001-01-00000100",
		FechaLimite: time.Now().AddDate(0, 6, 0),
		Activo:      activo,
	}
}

func TestCrearCAI(t *testing.T) {
	repo := newStubCAIRepo()
	svc := service.NewCAIService(repo)

	resp, err := svc.Crear(context.Background(), dto.CrearCAIRequest{
		Codigo:      "254F8-612021-9100B",
		RangoDesde:  "001-001-01-00000001",
		RangoHasta:  "001-001-01-00000100",
		FechaLimite: "2027-03-31",
		Activar:     true,
	})
	require.NoError(t, err)

	assert.True(t, resp.Activo)
	assert.Equal(t, int64(100), resp.Disponibles)
	assert.Equal(t, int64(0), resp.CorrelativoActual)
}

func TestCrearCAIRangoInvalido(t *testing.T) {
	svc := service.NewCAIService(newStubCAIRepo())

	_, err := svc.Crear(context.Background(), dto.CrearCAIRequest{
		Codigo:      "XYZ",
		RangoDesde:  "001-001-01-00000100",
		RangoHasta:  "001-001-01-00000001",
		FechaLimite: "2027-03-31",
	})

	var valErr *service.ValidacionError
	require.ErrorAs(t, err, &valErr)
}

func TestCrearCAICodigoDuplicado(t *testing.T) {
	repo := newStubCAIRepo(caiVigente(false))
	svc := service.NewCAIService(repo)

	_, err := svc.Crear(context.Background(), dto.CrearCAIRequest{
		Codigo:      "254F8-612021-9100B",
		RangoDesde:  "001-001-02-00000001",
		RangoHasta:  "001-001-02-00000100",
		FechaLimite: "2027-03-31",
	})

	var confErr *service.ConflictoError
	require.ErrorAs(t, err, &confErr)
}

func TestActivarCAIDesactivaElAnterior(t *testing.T) {
	anterior := caiVigente(true)
	nuevo := caiVigente(false)
	nuevo.Codigo = "9A2C1-887314-5520D"
	repo := newStubCAIRepo(anterior, nuevo)
	svc := service.NewCAIService(repo)

	resp, err := svc.Activar(context.Background(), nuevo.ID)
	require.NoError(t, err)

	assert.True(t, resp.Activo)
	assert.False(t, anterior.Activo)
}

func TestActivarCAIVencidoRechazado(t *testing.T) {
	vencido := caiVigente(false)
	vencido.FechaLimite = time.Now().AddDate(0, 0, -1)
	svc := service.NewCAIService(newStubCAIRepo(vencido))

	_, err := svc.Activar(context.Background(), vencido.ID)

	var valErr *service.ValidacionError
	require.ErrorAs(t, err, &valErr)
	assert.False(t, vencido.Activo)
}

func TestVerificarActivoSinLote(t *testing.T) {
	svc := service.NewCAIService(newStubCAIRepo())

	err := svc.VerificarActivo(context.Background())

	var valErr *service.ValidacionError
	require.ErrorAs(t, err, &valErr)
}

func TestConsumirNumeroAvanzaElCorrelativo(t *testing.T) {
	cai := caiVigente(true)
	repo := newStubCAIRepo(cai)
	svc := service.NewCAIService(repo)

	asignado, err := svc.ConsumirNumeroTx(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, "001-001-01-00000001", asignado.Numero)
	assert.Equal(t, cai.Codigo, asignado.CAICodigo)
	assert.Equal(t, int64(1), cai.CorrelativoActual)

	siguiente, err := svc.ConsumirNumeroTx(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "001-001-01-00000002", siguiente.Numero)
}

func TestConsumirNumeroCarreraConcurrente(t *testing.T) {
	cai := caiVigente(true)
	repo := newStubCAIRepo(cai)
	repo.simularCarrera = true
	svc := service.NewCAIService(repo)

	_, err := svc.ConsumirNumeroTx(context.Background(), nil)

	var confErr *service.ConflictoError
	require.ErrorAs(t, err, &confErr)
}
