package infra

// pdf.go — invoice PDF generation using go-pdf/fpdf.
// Half-letter invoices with the clinic header, fiscal CAI block, client and
// pet data, service/product tables, discount and ISV breakdown and total.
// The output file is saved to storagePath/factura_{numero}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"clinicavet/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateFacturaPDF renders a committed invoice to PDF. storagePath is the
// directory where the file is written (created if needed). Returns the
// absolute path of the generated file.
func GenerateFacturaPDF(f *model.Factura, nombreClinica, rtnClinica, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("factura_%s.pdf", f.Numero)
	filePath := filepath.Join(storagePath, fileName)

	// Half letter (140mm × 216mm), the pre-printed form size used locally.
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 140, Ht: 216},
	})
	pdf.SetMargins(8, 8, 8)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 16

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 7, nombreClinica, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	if rtnClinica != "" {
		pdf.CellFormat(contentW, 4, "RTN: "+rtnClinica, "", 1, "C", false, 0, "")
	}
	pdf.Ln(2)

	// ── Fiscal block ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, "FACTURA "+f.Numero, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, "CAI: "+f.CAICodigo, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4,
		fmt.Sprintf("Rango autorizado: %s a %s", f.CAIRangoDesde, f.CAIRangoHasta), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4,
		"Fecha límite de emisión: "+f.CAIFechaLimite.Format("02/01/2006"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4,
		"Emitida: "+f.CreatedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// ── Client / patient ─────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 4, "Cliente: "+f.Cliente.Nombre, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	if f.Cliente.RTN != nil {
		pdf.CellFormat(contentW, 4, "RTN: "+*f.Cliente.RTN, "", 1, "L", false, 0, "")
	}
	mascota := f.Mascota.Nombre + " (" + f.Mascota.Especie + ")"
	pdf.CellFormat(contentW, 4, "Paciente: "+mascota, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(8, pdf.GetY(), pageW-8, pdf.GetY())
	pdf.Ln(2)

	// ── Line items ───────────────────────────────────────────────────────────
	col1 := contentW * 0.50
	col2 := contentW * 0.12
	col3 := contentW * 0.19
	col4 := contentW * 0.19

	writeHeader := func(titulo string) {
		pdf.SetFont("Helvetica", "B", 7)
		pdf.CellFormat(col1, 5, titulo, "B", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "Precio", "B", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 5, "Subtotal", "B", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 7)
	}
	writeRow := func(nombre string, cantidad int, precio, subtotal string) {
		if len(nombre) > 34 {
			nombre = nombre[:33] + "…"
		}
		pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "L "+precio, "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 5, "L "+subtotal, "", 1, "R", false, 0, "")
	}

	if len(f.Servicios) > 0 {
		writeHeader("Servicio")
		for _, l := range f.Servicios {
			writeRow(l.Nombre, l.Cantidad, l.Precio.StringFixed(2), l.Subtotal.StringFixed(2))
		}
		pdf.Ln(1)
	}
	if len(f.Productos) > 0 {
		writeHeader("Producto")
		for _, l := range f.Productos {
			writeRow(l.Nombre, l.Cantidad, l.Precio.StringFixed(2), l.Subtotal.StringFixed(2))
		}
	}

	pdf.Ln(2)
	pdf.Line(8, pdf.GetY(), pageW-8, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	labelW := col1 + col2 + col3
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(labelW, 4, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 4, "L "+f.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	if !f.DescuentoTotal.IsZero() {
		pdf.CellFormat(labelW, 4, "Descuento:", "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 4, "-L "+f.DescuentoTotal.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.CellFormat(labelW, 4, "Base imponible:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 4, "L "+f.BaseImponible.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(labelW, 4, "ISV (15%):", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 4, "L "+f.Impuesto.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(labelW, 6, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "L "+f.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Gracias por confiar en nosotros", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
