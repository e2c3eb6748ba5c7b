package einvoice

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Tipos de documento del esquema e-invoice.
const (
	DocTypeInvoice    = "INV"
	DocTypeCreditNote = "CRN"
	DocTypeDebitNote  = "DBN"
)

var spaces = regexp.MustCompile(`\s+`)

// IRNParams datos para el Invoice Reference Number.
type IRNParams struct {
	SupplierGSTIN string
	DocType       string // INV, CRN, DBN
	DocNumber     string
	DocDate       time.Time
}

// FinancialYear año fiscal indio (abril a marzo) en formato "2024-25".
func FinancialYear(t time.Time) string {
	start := t.Year()
	if t.Month() < time.April {
		start--
	}
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}

// CalculateIRN genera el IRN: SHA-256 (hex minúsculas) de GSTIN + año fiscal + tipo + número.
func CalculateIRN(p IRNParams) (string, error) {
	gstin := NormalizeGSTIN(p.SupplierGSTIN)
	if err := ValidateGSTIN(gstin); err != nil {
		return "", err
	}
	docType := strings.ToUpper(strings.TrimSpace(p.DocType))
	switch docType {
	case DocTypeInvoice, DocTypeCreditNote, DocTypeDebitNote:
	default:
		return "", fmt.Errorf("einvoice: tipo de documento inválido %q", p.DocType)
	}
	number := spaces.ReplaceAllString(strings.TrimSpace(p.DocNumber), "")
	if number == "" {
		return "", fmt.Errorf("einvoice: número de documento obligatorio")
	}
	if len(number) > 16 {
		return "", fmt.Errorf("einvoice: número de documento supera 16 caracteres")
	}
	if p.DocDate.IsZero() {
		return "", fmt.Errorf("einvoice: fecha de documento obligatoria")
	}
	cadena := gstin + FinancialYear(p.DocDate) + docType + strings.ToUpper(number)
	hash := sha256.Sum256([]byte(cadena))
	return hex.EncodeToString(hash[:]), nil
}
