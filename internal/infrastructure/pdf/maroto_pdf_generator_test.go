package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-GST/internal/domain/entity"
	"github.com/jhoicas/Facturacion-GST/internal/infrastructure/pdf"
)

func sampleDocument(irn string) (*entity.SalesDocument, *entity.Company, *entity.Customer, []*entity.SalesDocumentItem) {
	d := decimal.RequireFromString
	doc := &entity.SalesDocument{
		ID:            "doc-1",
		Kind:          "invoice",
		Number:        "INV-000001",
		Date:          time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		PlaceOfSupply: "27",
		Subtotal:      d("180.00"),
		TotalTax:      d("32.40"),
		IGSTAmount:    d("32.40"),
		RoundOff:      d("-0.40"),
		TotalAmount:   d("212.00"),
		IRN:           irn,
	}
	company := &entity.Company{Name: "Acme Traders", GSTIN: "29AAGCB7383J1Z4", StateCode: "29"}
	customer := &entity.Customer{Name: "Globex", GSTIN: "27AAPFU0939F1ZV", StateCode: "27"}
	items := []*entity.SalesDocumentItem{{
		Position:        1,
		Description:     "Widget",
		HSNCode:         "7318",
		Quantity:        d("2"),
		UnitPrice:       d("100"),
		DiscountPercent: d("10"),
		GSTRate:         d("18"),
		IGSTRate:        d("18"),
		TaxableAmount:   d("180.00"),
		TaxAmount:       d("32.40"),
		TotalAmount:     d("212.40"),
	}}
	return doc, company, customer, items
}

func TestGenerateDocumentPDF(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator()

	t.Run("factura con IRN", func(t *testing.T) {
		doc, company, customer, items := sampleDocument("586ec73ff3d9b2d80ed99e567d40cfd8074fc63723616201a87c3d251caee540")
		out, err := g.GenerateDocumentPDF(context.Background(), doc, company, customer, items)
		require.NoError(t, err)
		require.Greater(t, len(out), 5)
		assert.Equal(t, "%PDF-", string(out[:5]))
	})

	t.Run("cotización sin líneas ni IRN", func(t *testing.T) {
		doc, company, customer, _ := sampleDocument("")
		doc.Kind = "quotation"
		out, err := g.GenerateDocumentPDF(context.Background(), doc, company, customer, nil)
		require.NoError(t, err)
		assert.NotEmpty(t, out)
	})
}

func TestFormatINR(t *testing.T) {
	cases := map[string]string{
		"0":          "0.00",
		"999.5":      "999.50",
		"1000":       "1,000.00",
		"125050.5":   "1,25,050.50",
		"12345678.9": "1,23,45,678.90",
		"-100000":    "-1,00,000.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, pdf.FormatINR(decimal.RequireFromString(in)), in)
	}
}
