package einvoice_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-GST/pkg/einvoice"
)

// ──────────────────────────────────────────────────────────────────────────────
// GSTIN
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateGSTIN_Valid(t *testing.T) {
	for _, g := range []string{"27AAPFU0939F1ZV", "29AAGCB7383J1Z4", " 29aagcb7383j1z4 "} {
		assert.NoError(t, einvoice.ValidateGSTIN(g), g)
	}
}

func TestValidateGSTIN_Invalid(t *testing.T) {
	cases := map[string]string{
		"longitud":          "29AAGCB7383J1Z",
		"formato":           "2XAAGCB7383J1Z4",
		"dígito de control": "29AAGCB7383J1Z5",
		"sin Z":             "29AAGCB7383J1A4",
	}
	for name, g := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, einvoice.ValidateGSTIN(g))
		})
	}
}

func TestComputeGSTINCheckChar(t *testing.T) {
	cases := map[string]byte{
		"29ABCDE1234F1Z": 'W',
		"07AAACI1681G1Z": 'R',
		"29FGHIJ5678K1Z": 'X',
	}
	for in, want := range cases {
		got, err := einvoice.ComputeGSTINCheckChar(in)
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got), in)
	}

	_, err := einvoice.ComputeGSTINCheckChar("29ABC")
	assert.Error(t, err)
}

func TestStateCodeFromGSTIN(t *testing.T) {
	assert.Equal(t, "29", einvoice.StateCodeFromGSTIN("29AAGCB7383J1Z4"))
	assert.Equal(t, "", einvoice.StateCodeFromGSTIN(""))
}

// ──────────────────────────────────────────────────────────────────────────────
// IRN
// ──────────────────────────────────────────────────────────────────────────────

func TestFinancialYear(t *testing.T) {
	assert.Equal(t, "2024-25", einvoice.FinancialYear(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2023-24", einvoice.FinancialYear(time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2099-00", einvoice.FinancialYear(time.Date(2099, time.December, 1, 0, 0, 0, 0, time.UTC)))
}

func TestCalculateIRN_KnownVector(t *testing.T) {
	irn, err := einvoice.CalculateIRN(einvoice.IRNParams{
		SupplierGSTIN: "29AAGCB7383J1Z4",
		DocType:       einvoice.DocTypeInvoice,
		DocNumber:     "INV-000001",
		DocDate:       time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, "586ec73ff3d9b2d80ed99e567d40cfd8074fc63723616201a87c3d251caee540", irn)
	assert.Len(t, irn, 64)
}

func TestCalculateIRN_Errors(t *testing.T) {
	date := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	cases := map[string]einvoice.IRNParams{
		"gstin inválido":   {SupplierGSTIN: "29AAGCB7383J1Z5", DocType: "INV", DocNumber: "1", DocDate: date},
		"tipo inválido":    {SupplierGSTIN: "29AAGCB7383J1Z4", DocType: "XYZ", DocNumber: "1", DocDate: date},
		"sin número":       {SupplierGSTIN: "29AAGCB7383J1Z4", DocType: "INV", DocNumber: "  ", DocDate: date},
		"número muy largo": {SupplierGSTIN: "29AAGCB7383J1Z4", DocType: "INV", DocNumber: "INV-0000000000001", DocDate: date},
		"sin fecha":        {SupplierGSTIN: "29AAGCB7383J1Z4", DocType: "CRN", DocNumber: "SR-1"},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := einvoice.CalculateIRN(p)
			assert.Error(t, err)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// QR
// ──────────────────────────────────────────────────────────────────────────────

func TestQRData_String(t *testing.T) {
	q := einvoice.QRData{
		SupplierGSTIN: "29aagcb7383j1z4",
		DocNumber:     "INV-000001",
		DocType:       "INV",
		DocDate:       "15/06/2024",
		TotalAmount:   decimal.RequireFromString("212.4"),
		ItemCount:     1,
		MainHSNCode:   "7318",
		IRN:           "abc",
	}

	assert.Equal(t, "29AAGCB7383J1Z4|URP|INV-000001|INV|15/06/2024|212.40|1|7318|abc", q.String())
}
