package service_test

import (
	"testing"

	"clinicavet/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRango(t *testing.T) {
	rango, err := service.ParseRango("001-001-01-00000001", "001-001-01-00005000")
	require.NoError(t, err)

	assert.Equal(t, "001-001-01", rango.Prefijo)
	assert.Equal(t, int64(1), rango.Desde)
	assert.Equal(t, int64(5000), rango.Hasta)
}

func TestParseRangoInvalido(t *testing.T) {
	casos := []struct {
		nombre string
		desde  string
		hasta  string
	}{
		{"prefijos distintos", "001-001-01-00000001", "001-002-01-00005000"},
		{"rango invertido", "001-001-01-00005000", "001-001-01-00000001"},
		{"secuencia corta", "001-001-01-001", "001-001-01-00005000"},
		{"secuencia no numérica", "001-001-01-0000000X", "001-001-01-00005000"},
		{"sin guiones", "00100101000000001", "001-001-01-00005000"},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := service.ParseRango(c.desde, c.hasta)
			assert.Error(t, err)
		})
	}
}

func TestNumeroFormato(t *testing.T) {
	rango, err := service.ParseRango("001-001-01-00000001", "001-001-01-00005000")
	require.NoError(t, err)

	assert.Equal(t, "001-001-01-00000001", rango.Numero(0))
	assert.Equal(t, "001-001-01-00000043", rango.Numero(42))
}

func TestRangoAgotado(t *testing.T) {
	// Lote de exactamente dos números: 01 y 02.
	rango, err := service.ParseRango("001-001-01-00000001", "001-001-01-00000002")
	require.NoError(t, err)

	assert.False(t, rango.Agotado(0))
	assert.False(t, rango.Agotado(1))
	assert.True(t, rango.Agotado(2))

	assert.Equal(t, int64(2), rango.Disponibles(0))
	assert.Equal(t, int64(1), rango.Disponibles(1))
	assert.Equal(t, int64(0), rango.Disponibles(2))
	assert.Equal(t, int64(0), rango.Disponibles(5))
}
