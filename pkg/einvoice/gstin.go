// Package einvoice contiene validaciones y cálculos del esquema de factura electrónica GST
// (India): GSTIN, IRN y contenido del código QR impreso.
package einvoice

import (
	"fmt"
	"regexp"
	"strings"
)

const gstinAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// NormalizeGSTIN quita espacios y pasa a mayúsculas.
func NormalizeGSTIN(gstin string) string {
	return strings.ToUpper(strings.TrimSpace(gstin))
}

// ValidateGSTIN valida formato (15 caracteres) y dígito de control (módulo 36).
func ValidateGSTIN(gstin string) error {
	g := NormalizeGSTIN(gstin)
	if len(g) != 15 {
		return fmt.Errorf("einvoice: GSTIN debe tener 15 caracteres, se recibieron %d", len(g))
	}
	if !gstinPattern.MatchString(g) {
		return fmt.Errorf("einvoice: formato de GSTIN inválido %q", g)
	}
	expected, err := ComputeGSTINCheckChar(g[:14])
	if err != nil {
		return err
	}
	if g[14] != expected {
		return fmt.Errorf("einvoice: dígito de control del GSTIN inválido: esperado %c, recibido %c", expected, g[14])
	}
	return nil
}

// ComputeGSTINCheckChar calcula el carácter de control para los 14 primeros caracteres.
// Factores alternos 1 y 2; cada producto suma cociente y resto en base 36.
func ComputeGSTINCheckChar(first14 string) (byte, error) {
	if len(first14) < 14 {
		return 0, fmt.Errorf("einvoice: se requieren 14 caracteres, se encontraron %d", len(first14))
	}
	var sum int
	for i := 0; i < 14; i++ {
		v := strings.IndexByte(gstinAlphabet, first14[i])
		if v < 0 {
			return 0, fmt.Errorf("einvoice: carácter inválido %q en GSTIN", first14[i])
		}
		factor := 1
		if i%2 == 1 {
			factor = 2
		}
		p := v * factor
		sum += p/36 + p%36
	}
	return gstinAlphabet[(36-sum%36)%36], nil
}

// StateCodeFromGSTIN devuelve los dos primeros dígitos (código de estado).
func StateCodeFromGSTIN(gstin string) string {
	g := NormalizeGSTIN(gstin)
	if len(g) < 2 {
		return ""
	}
	return g[:2]
}
