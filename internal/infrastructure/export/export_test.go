package export_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Facturacion-GST/internal/domain/entity"
	"github.com/jhoicas/Facturacion-GST/internal/infrastructure/export"
)

var company = &entity.Company{Name: "Acme Traders", GSTIN: "29AAGCB7383J1Z4", StateCode: "29"}

func docs() []*entity.SalesDocument {
	d := decimal.RequireFromString
	date := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	return []*entity.SalesDocument{
		{
			Kind: "invoice", Number: "INV-000001", Date: date, CustomerName: "Globex",
			PlaceOfSupply: "29", Status: "issued",
			Subtotal: d("180.00"), CGSTAmount: d("16.20"), SGSTAmount: d("16.20"), TotalTax: d("32.40"),
			FreightCharges: d("50.00"), RoundOff: d("0.60"), TotalAmount: d("263.00"),
		},
		{
			Kind: "sales_return", Number: "SR-000001", Date: date, CustomerName: "=cmd|evil",
			PlaceOfSupply: "27", Status: "approved",
			Subtotal: d("100.00"), IGSTAmount: d("18.00"), TotalTax: d("18.00"), TotalAmount: d("118.00"),
		},
	}
}

func TestExcelRegister(t *testing.T) {
	out, err := export.NewExcelRegister().ExportRegister(context.Background(), company, docs())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{export.RegisterSheet}, f.GetSheetList())

	title, _ := f.GetCellValue(export.RegisterSheet, "A1")
	assert.Equal(t, "Acme Traders (GSTIN 29AAGCB7383J1Z4)", title)

	number, _ := f.GetCellValue(export.RegisterSheet, "B4")
	assert.Equal(t, "INV-000001", number)

	customer, _ := f.GetCellValue(export.RegisterSheet, "D5")
	assert.Equal(t, "'=cmd|evil", customer, "las fórmulas se neutralizan")

	total, _ := f.GetCellValue(export.RegisterSheet, "D6")
	assert.Equal(t, "TOTAL", total)
}

func TestExcelRegister_Empty(t *testing.T) {
	out, err := export.NewExcelRegister().ExportRegister(context.Background(), company, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestExcelRegister_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := export.NewExcelRegister().ExportRegister(ctx, company, docs())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTallyExporter(t *testing.T) {
	out, err := export.NewTallyExporter(export.Ledgers{}).ExportVouchers(context.Background(), company, docs())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	assert.Equal(t, "Acme Traders", doc.FindElement("//SVCURRENTCOMPANY").Text())

	vouchers := doc.FindElements("//VOUCHER")
	require.Len(t, vouchers, 2)

	inv := vouchers[0]
	assert.Equal(t, "Sales", inv.SelectAttrValue("VCHTYPE", ""))
	assert.Equal(t, "20240615", inv.FindElement("DATE").Text())
	assert.Equal(t, "Karnataka", inv.FindElement("PLACEOFSUPPLY").Text())

	amounts := map[string]string{}
	sum := decimal.Zero
	for _, e := range inv.FindElements("ALLLEDGERENTRIES.LIST") {
		amt := e.FindElement("AMOUNT").Text()
		amounts[e.FindElement("LEDGERNAME").Text()] = amt
		sum = sum.Add(decimal.RequireFromString(amt))
	}
	assert.True(t, sum.IsZero(), "el asiento debe cuadrar, suma=%s", sum)
	assert.Equal(t, "-263.00", amounts["Globex"])
	assert.Equal(t, "180.00", amounts["Sales"])
	assert.Equal(t, "16.20", amounts["Output CGST"])
	assert.Equal(t, "50.00", amounts["Freight Charges"])
	assert.Equal(t, "0.60", amounts["Round Off"])
	assert.NotContains(t, amounts, "Output IGST")

	ret := vouchers[1]
	assert.Equal(t, "Credit Note", ret.SelectAttrValue("VCHTYPE", ""))
	retAmounts := map[string]string{}
	for _, e := range ret.FindElements("ALLLEDGERENTRIES.LIST") {
		retAmounts[e.FindElement("LEDGERNAME").Text()] = e.FindElement("AMOUNT").Text()
	}
	assert.Equal(t, "118.00", retAmounts["=cmd|evil"])
	assert.Equal(t, "-100.00", retAmounts["Sales Returns"])
	assert.Equal(t, "-18.00", retAmounts["Output IGST"])
}
