package infra_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"clinicavet/internal/infra"
	"clinicavet/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func facturaDePrueba() *model.Factura {
	raza := "labrador"
	rtn := "08011985123960"
	servicioID := uuid.New()
	productoID := uuid.New()
	return &model.Factura{
		ID:     uuid.New(),
		Numero: "001-001-01-00000042",
		Cliente: model.ClienteSnapshot{
			PropietarioID: uuid.New(),
			Nombre:        "María López",
			RTN:           &rtn,
		},
		Mascota: model.MascotaSnapshot{
			MascotaID: uuid.New(),
			Nombre:    "Firulais",
			Especie:   "perro",
			Raza:      &raza,
		},
		Subtotal:       decimal.NewFromInt(460),
		DescuentoTipo:  "monto",
		DescuentoValor: decimal.NewFromInt(50),
		DescuentoTotal: decimal.NewFromInt(50),
		BaseImponible:  decimal.NewFromInt(410),
		Impuesto:       decimal.NewFromFloat(61.50),
		Total:          decimal.NewFromFloat(471.50),
		CAICodigo:      "254F8-612021-9100B",
		CAIRangoDesde:  "001-001-01-00000001",
		CAIRangoHasta:  "001-001-01-00005000",
		CAIFechaLimite: time.Date(2027, 3, 31, 0, 0, 0, 0, time.UTC),
		MetodoPago:     "efectivo",
		Estado:         "pagada",
		CreatedAt:      time.Now(),
		Servicios: []model.FacturaServicio{
			{ServicioID: &servicioID, Nombre: "Consulta general", Precio: decimal.NewFromInt(250), Cantidad: 1, Subtotal: decimal.NewFromInt(250)},
		},
		Productos: []model.FacturaProducto{
			{ProductoID: &productoID, Nombre: "Desparasitante canino", Precio: decimal.NewFromInt(70), Cantidad: 3, Subtotal: decimal.NewFromInt(210)},
		},
	}
}

func TestGenerateFacturaPDF(t *testing.T) {
	dir := t.TempDir()

	path, err := infra.GenerateFacturaPDF(facturaDePrueba(), "Clínica Veterinaria San Martín", "08019995123960", dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "factura_001-001-01-00000042.pdf"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(500), "el PDF generado está vacío")

	// Firma %PDF al inicio del archivo.
	contenido, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(contenido[:4]))
}

func TestGenerateFacturaPDFCreaElDirectorio(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "recibos", "2026")

	_, err := infra.GenerateFacturaPDF(facturaDePrueba(), "Clínica Veterinaria San Martín", "", dir)
	require.NoError(t, err)

	_, err = os.Stat(dir)
	assert.NoError(t, err)
}
