package service

import (
	"errors"

	"clinicavet/internal/dto"
)

// Domain error taxonomy. Handlers map these onto HTTP status codes:
// ValidacionError → 400, ConflictoError / StockInsuficienteError → 409,
// ErrNoEncontrado → 404, anything else → 500.

// ErrNoEncontrado signals that the addressed resource does not exist.
var ErrNoEncontrado = errors.New("recurso no encontrado")

// ValidacionError is a client-correctable rejection: fix the input and retry.
type ValidacionError struct {
	Detalle string
}

func (e *ValidacionError) Error() string { return e.Detalle }

func errValidacion(detalle string) error { return &ValidacionError{Detalle: detalle} }

// ConflictoError signals a concurrent collision (invoice numbering race,
// double-booked cita). The caller should retry the whole operation rather
// than fix its input.
type ConflictoError struct {
	Detalle string
}

func (e *ConflictoError) Error() string { return e.Detalle }

func errConflicto(detalle string) error { return &ConflictoError{Detalle: detalle} }

// StockInsuficienteError carries the full itemized shortfall list so the
// caller can correct the whole order in one pass.
type StockInsuficienteError struct {
	Faltantes []dto.FaltanteStock
}

func (e *StockInsuficienteError) Error() string { return "stock insuficiente" }
