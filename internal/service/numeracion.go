package service

import (
	"fmt"
	"strconv"
	"strings"
)

// Invoice numbers follow the fiscal format PPP-PPP-TT-NNNNNNNN: a fixed
// establishment/document prefix plus an 8-digit sequence. A CAI lot
// authorizes the inclusive sequence window [Desde, Hasta] under one prefix.

const largoSecuencia = 8

// RangoCAI is the parsed numbering window of a lot.
type RangoCAI struct {
	Prefijo string // "PPP-PPP-TT"
	Desde   int64
	Hasta   int64
}

// ParseRango parses and cross-validates the two bounds of a lot.
func ParseRango(rangoDesde, rangoHasta string) (RangoCAI, error) {
	prefijoDesde, desde, err := parseNumero(rangoDesde)
	if err != nil {
		return RangoCAI{}, fmt.Errorf("rango_desde: %w", err)
	}
	prefijoHasta, hasta, err := parseNumero(rangoHasta)
	if err != nil {
		return RangoCAI{}, fmt.Errorf("rango_hasta: %w", err)
	}
	if prefijoDesde != prefijoHasta {
		return RangoCAI{}, fmt.Errorf("los prefijos del rango no coinciden: %q vs %q", prefijoDesde, prefijoHasta)
	}
	if desde > hasta {
		return RangoCAI{}, fmt.Errorf("rango invertido: %d > %d", desde, hasta)
	}
	return RangoCAI{Prefijo: prefijoDesde, Desde: desde, Hasta: hasta}, nil
}

// Numero formats the invoice number consumed at position correlativo
// (0-based count of numbers already used).
func (r RangoCAI) Numero(correlativo int64) string {
	return fmt.Sprintf("%s-%0*d", r.Prefijo, largoSecuencia, r.Desde+correlativo)
}

// Agotado reports whether the lot has no number left at position correlativo.
func (r RangoCAI) Agotado(correlativo int64) bool {
	return r.Desde+correlativo > r.Hasta
}

// Disponibles returns how many numbers remain, floored at zero.
func (r RangoCAI) Disponibles(correlativo int64) int64 {
	restantes := r.Hasta - r.Desde + 1 - correlativo
	if restantes < 0 {
		return 0
	}
	return restantes
}

func parseNumero(numero string) (prefijo string, secuencia int64, err error) {
	idx := strings.LastIndex(numero, "-")
	if idx <= 0 || idx == len(numero)-1 {
		return "", 0, fmt.Errorf("formato inválido %q", numero)
	}
	sec := numero[idx+1:]
	if len(sec) != largoSecuencia {
		return "", 0, fmt.Errorf("la secuencia debe tener %d dígitos: %q", largoSecuencia, numero)
	}
	secuencia, err = strconv.ParseInt(sec, 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("secuencia no numérica %q", sec)
	}
	return numero[:idx], secuencia, nil
}
