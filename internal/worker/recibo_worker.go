package worker

// recibo_worker.go
// Processes invoice delivery jobs from QueueRecibo: renders the invoice PDF
// and, when the client has an email on file, enqueues an email job with the
// attachment. Runs after the invoice transaction has committed, so failures
// here never affect the invoice itself.

import (
	"context"
	"encoding/json"
	"fmt"

	"clinicavet/internal/infra"
	"clinicavet/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReciboJobPayload is the job envelope sent to QueueRecibo.
type ReciboJobPayload struct {
	FacturaID string `json:"factura_id"`
}

type ReciboWorker struct {
	facturaRepo    repository.FacturaRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
	nombreClinica  string
	rtnClinica     string
}

func NewReciboWorker(
	facturaRepo repository.FacturaRepository,
	dispatcher *Dispatcher,
	pdfStoragePath, nombreClinica, rtnClinica string,
) *ReciboWorker {
	return &ReciboWorker{
		facturaRepo:    facturaRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
		nombreClinica:  nombreClinica,
		rtnClinica:     rtnClinica,
	}
}

func (w *ReciboWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReciboJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("recibo_worker: invalid payload")
		return nil // malformed jobs are not retryable
	}

	facturaID, err := uuid.Parse(payload.FacturaID)
	if err != nil {
		log.Error().Str("factura_id", payload.FacturaID).Msg("recibo_worker: invalid factura_id")
		return nil
	}

	factura, err := w.facturaRepo.FindByID(ctx, facturaID)
	if err != nil {
		return fmt.Errorf("recibo_worker: factura %s: %w", payload.FacturaID, err)
	}

	pdfPath, err := infra.GenerateFacturaPDF(factura, w.nombreClinica, w.rtnClinica, w.pdfStoragePath)
	if err != nil {
		return fmt.Errorf("recibo_worker: pdf: %w", err)
	}
	log.Info().Str("pdf", pdfPath).Str("numero", factura.Numero).Msg("recibo_worker: PDF generated")

	if factura.Cliente.Email == nil || *factura.Cliente.Email == "" {
		return nil
	}

	emailJob := EmailJobPayload{
		ToEmail: *factura.Cliente.Email,
		Subject: fmt.Sprintf("Factura %s - %s", factura.Numero, w.nombreClinica),
		Body: fmt.Sprintf("Estimado/a %s:\n\nAdjunto encontrará su factura %s.\nTotal: L %s\n\nGracias por su preferencia.",
			factura.Cliente.Nombre, factura.Numero, factura.Total.StringFixed(2)),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Warn().Err(err).Str("email", *factura.Cliente.Email).Msg("recibo_worker: failed to enqueue email")
	}
	return nil
}
