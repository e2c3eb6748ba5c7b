// Package pdf genera la representación impresa de los documentos de venta GST
// (Tax Invoice, Quotation, Sales Order, Credit Note) con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + GSTIN     │  Título + N° + Fecha         │
//	│  EMISOR / RECEPTOR: direcciones, GSTIN, lugar de suministro │
//	│  TABLA: # | Item | HSN | Qty | Rate | Disc% | Taxable | GST │
//	│  TOTALES: subtotal, cargos, CGST/SGST o IGST, round off     │
//	│  MONTO EN LETRAS                                            │
//	│  FOOTER: IRN + QR (solo facturas y devoluciones con IRN)    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appbilling "github.com/jhoicas/Facturacion-GST/internal/application/billing"
	"github.com/jhoicas/Facturacion-GST/internal/domain/entity"
	"github.com/jhoicas/Facturacion-GST/internal/domain/gst"
	"github.com/jhoicas/Facturacion-GST/pkg/einvoice"
)

var _ appbilling.DocumentPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var titles = map[string]string{
	string(gst.KindInvoice):    "TAX INVOICE",
	string(gst.KindQuotation):  "QUOTATION",
	string(gst.KindSalesOrder): "SALES ORDER",
	string(gst.KindReturn):     "CREDIT NOTE (SALES RETURN)",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.DocumentPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateDocumentPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateDocumentPDF(
	_ context.Context,
	doc *entity.SalesDocument,
	company *entity.Company,
	customer *entity.Customer,
	items []*entity.SalesDocumentItem,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title(doc.Kind)+" "+doc.Number, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(doc, company, customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableItemRows(items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(doc)...)
	m.AddRows(wordsRow(doc))

	if doc.IRN != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(irnRows(doc, company, customer, items)...)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(doc *entity.SalesDocument, company *entity.Company) core.Row {
	right := []core.Component{
		text.New(title(doc.Kind), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
		}),
		text.New(doc.Number, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
		}),
		text.New("Date: "+doc.Date.Format("02/01/2006"), props.Text{
			Size: 8, Align: align.Right, Top: 14, Color: colorGray,
		}),
	}
	if doc.DueDate != nil {
		right = append(right, text.New("Due: "+doc.DueDate.Format("02/01/2006"), props.Text{
			Size: 8, Align: align.Right, Top: 18, Color: colorGray,
		}))
	}
	return row.New(22).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("GSTIN: "+nonEmpty(company.GSTIN, "Unregistered"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
			text.New("State: "+stateLabel(company.StateCode), props.Text{
				Size: 8, Top: 14, Color: colorGray,
			}),
		),
		col.New(5).Add(right...),
	)
}

func partiesRow(doc *entity.SalesDocument, company *entity.Company, customer *entity.Customer) core.Row {
	return row.New(26).Add(
		col.New(6).Add(
			text.New("SUPPLIER", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(company.Address, "-"), props.Text{Size: 8, Top: 6}),
			text.New(fmt.Sprintf("Tel: %s   |   Email: %s",
				nonEmpty(company.Phone, "-"), nonEmpty(company.Email, "-"),
			), props.Text{Size: 8, Top: 16, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("BILL TO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(customer.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New("GSTIN: "+nonEmpty(customer.GSTIN, "URP"), props.Text{Size: 8, Top: 12, Color: colorGray}),
			text.New(nonEmpty(customer.Address, "-"), props.Text{Size: 8, Top: 16, Color: colorGray}),
			text.New("Place of supply: "+stateLabel(doc.PlaceOfSupply), props.Text{
				Size: 8, Top: 21, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	headerCell := &props.Cell{BackgroundColor: colorPrimary}
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})).WithStyle(headerCell)
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Item", 3, align.Left),
		h("HSN", 1, align.Center),
		h("Qty", 1, align.Right),
		h("Rate", 1, align.Right),
		h("Disc%", 1, align.Right),
		h("Taxable", 2, align.Right),
		h("GST%", 1, align.Center),
		h("Amount", 1, align.Right),
	)
}

func tableItemRows(items []*entity.SalesDocumentItem) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	out := make([]core.Row, 0, len(items))
	for _, it := range items {
		desc := it.Description
		if it.ItemCode != "" {
			desc = it.ItemCode + " - " + desc
		}
		out = append(out, row.New(7).Add(
			cell(fmt.Sprint(it.Position), 1, align.Center),
			cell(desc, 3, align.Left),
			cell(it.HSNCode, 1, align.Center),
			cell(it.Quantity.String(), 1, align.Right),
			cell(FormatINR(it.UnitPrice), 1, align.Right),
			cell(it.DiscountPercent.String(), 1, align.Right),
			cell(FormatINR(it.TaxableAmount), 2, align.Right),
			cell(it.GSTRate.String(), 1, align.Center),
			cell(FormatINR(it.TotalAmount), 1, align.Right),
		))
	}
	return out
}

// totalsRows solo imprime los renglones con valor, salvo subtotal y total.
func totalsRows(doc *entity.SalesDocument) []core.Row {
	type entry struct {
		label string
		value decimal.Decimal
		grand bool
	}
	entries := []entry{{label: "Subtotal", value: doc.Subtotal}}
	optional := []entry{
		{label: "Item discount", value: doc.ItemDiscountTotal.Neg()},
		{label: "Discount on all", value: doc.DiscountOnAllAmount.Neg()},
		{label: "Freight", value: doc.FreightCharges},
		{label: "Packing & forwarding", value: doc.PFCharges},
		{label: "CGST", value: doc.CGSTAmount},
		{label: "SGST", value: doc.SGSTAmount},
		{label: "IGST", value: doc.IGSTAmount},
		{label: "Coupon", value: doc.CouponValue.Neg()},
		{label: "Round off", value: doc.RoundOff},
	}
	for _, e := range optional {
		if !e.value.IsZero() {
			entries = append(entries, e)
		}
	}
	entries = append(entries, entry{label: "TOTAL", value: doc.TotalAmount, grand: true})

	out := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		p := props.Text{Size: 9, Align: align.Right, Right: 1}
		if e.grand {
			p = props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1}
		}
		lp := p
		lp.Style = fontstyle.Bold
		out = append(out, row.New(5).Add(
			col.New(6),
			col.New(3).Add(text.New(e.label+":", lp)),
			col.New(3).Add(text.New("Rs. "+FormatINR(e.value), p)),
		))
	}
	return out
}

func wordsRow(doc *entity.SalesDocument) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("Amount in words: "+gst.AmountInWords(doc.TotalAmount), props.Text{
			Style: fontstyle.Italic, Size: 8, Top: 3,
		}),
	))
}

func irnRows(doc *entity.SalesDocument, company *entity.Company, customer *entity.Customer, items []*entity.SalesDocumentItem) []core.Row {
	qr := einvoice.QRData{
		SupplierGSTIN: company.GSTIN,
		BuyerGSTIN:    customer.GSTIN,
		DocNumber:     doc.Number,
		DocType:       docType(doc.Kind),
		DocDate:       doc.Date.Format("02/01/2006"),
		TotalAmount:   doc.TotalAmount,
		ItemCount:     len(items),
		MainHSNCode:   mainHSN(items),
		IRN:           doc.IRN,
	}
	return []core.Row{
		row.New(5).Add(col.New(12).Add(
			text.New("IRN:", props.Text{Style: fontstyle.Bold, Size: 7, Top: 1}),
		)),
		row.New(4).Add(col.New(12).Add(
			text.New(doc.IRN, props.Text{Size: 7, Color: colorGray, Left: 2}),
		)),
		row.New(40).Add(
			col.New(4).Add(code.NewQr(qr.String(), props.Rect{Percent: 95, Center: true})),
			col.New(8).Add(
				text.New("Scan the QR code to verify this e-invoice.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
			),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func title(kind string) string {
	if t, ok := titles[kind]; ok {
		return t
	}
	return strings.ToUpper(kind)
}

func docType(kind string) string {
	if kind == string(gst.KindReturn) {
		return "CRN"
	}
	return "INV"
}

// mainHSN el HSN de la línea con mayor valor gravable.
func mainHSN(items []*entity.SalesDocumentItem) string {
	var best *entity.SalesDocumentItem
	for _, it := range items {
		if it.HSNCode == "" {
			continue
		}
		if best == nil || it.TaxableAmount.GreaterThan(best.TaxableAmount) {
			best = it
		}
	}
	if best == nil {
		return ""
	}
	return best.HSNCode
}

func stateLabel(code string) string {
	if code == "" {
		return "-"
	}
	if name := gst.StateName(code); name != "" {
		return code + " - " + name
	}
	return code
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// FormatINR formatea con 2 decimales y agrupación india: 1250050.5 -> "12,50,050.50".
func FormatINR(d decimal.Decimal) string {
	s := d.Round(2).StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	if len(intPart) > 3 {
		head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		intPart = strings.Join(groups, ",") + "," + tail
	}
	return sign + intPart + "." + frac
}
