package gst

import (
	"strings"
)

// Códigos de estado GST (primeros dos dígitos del GSTIN).
var stateCodes = []Option{
	{"01", "Jammu and Kashmir"},
	{"02", "Himachal Pradesh"},
	{"03", "Punjab"},
	{"04", "Chandigarh"},
	{"05", "Uttarakhand"},
	{"06", "Haryana"},
	{"07", "Delhi"},
	{"08", "Rajasthan"},
	{"09", "Uttar Pradesh"},
	{"10", "Bihar"},
	{"11", "Sikkim"},
	{"12", "Arunachal Pradesh"},
	{"13", "Nagaland"},
	{"14", "Manipur"},
	{"15", "Mizoram"},
	{"16", "Tripura"},
	{"17", "Meghalaya"},
	{"18", "Assam"},
	{"19", "West Bengal"},
	{"20", "Jharkhand"},
	{"21", "Odisha"},
	{"22", "Chhattisgarh"},
	{"23", "Madhya Pradesh"},
	{"24", "Gujarat"},
	{"26", "Dadra and Nagar Haveli and Daman and Diu"},
	{"27", "Maharashtra"},
	{"29", "Karnataka"},
	{"30", "Goa"},
	{"31", "Lakshadweep"},
	{"32", "Kerala"},
	{"33", "Tamil Nadu"},
	{"34", "Puducherry"},
	{"35", "Andaman and Nicobar Islands"},
	{"36", "Telangana"},
	{"37", "Andhra Pradesh"},
	{"38", "Ladakh"},
	{"97", "Other Territory"},
	{"96", "Other Country"},
}

// StateOptions devuelve los códigos de estado como opciones.
func StateOptions() []Option {
	out := make([]Option, len(stateCodes))
	copy(out, stateCodes)
	return out
}

// NormalizeStateCode deja el código en dos dígitos ("7" -> "07"). No valida pertenencia.
func NormalizeStateCode(code string) string {
	code = strings.TrimSpace(code)
	if len(code) == 1 && code[0] >= '0' && code[0] <= '9' {
		return "0" + code
	}
	return strings.ToUpper(code)
}

// IsValidStateCode informa si el código pertenece a la lista cerrada.
func IsValidStateCode(code string) bool {
	code = NormalizeStateCode(code)
	for _, s := range stateCodes {
		if s.Value == code {
			return true
		}
	}
	return false
}

// StateName devuelve el nombre del estado o "" si no existe.
func StateName(code string) string {
	code = NormalizeStateCode(code)
	for _, s := range stateCodes {
		if s.Value == code {
			return s.Label
		}
	}
	return ""
}

// IsIntraState decide la política de impuesto: mismo estado => CGST+SGST, distinto => IGST.
// Un lugar de suministro vacío se trata como venta dentro del estado de la empresa.
func IsIntraState(placeOfSupply, homeStateCode string) bool {
	pos := NormalizeStateCode(placeOfSupply)
	if pos == "" {
		return true
	}
	return pos == NormalizeStateCode(homeStateCode)
}
