package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	appbilling "github.com/jhoicas/Facturacion-GST/internal/application/billing"
	"github.com/jhoicas/Facturacion-GST/internal/domain/entity"
	"github.com/jhoicas/Facturacion-GST/internal/domain/gst"
)

var _ appbilling.VoucherExporter = (*TallyExporter)(nil)

// Ledgers nombres de las cuentas contables en Tally.
type Ledgers struct {
	Sales       string
	SalesReturn string
	CGST        string
	SGST        string
	IGST        string
	Freight     string
	Packing     string
	RoundOff    string
}

// DefaultLedgers nombres que trae Tally en una empresa nueva con GST activo.
var DefaultLedgers = Ledgers{
	Sales:       "Sales",
	SalesReturn: "Sales Returns",
	CGST:        "Output CGST",
	SGST:        "Output SGST",
	IGST:        "Output IGST",
	Freight:     "Freight Charges",
	Packing:     "Packing & Forwarding",
	RoundOff:    "Round Off",
}

// TallyExporter genera el XML de importación de comprobantes (ENVELOPE / IMPORTDATA).
type TallyExporter struct {
	ledgers Ledgers
}

// NewTallyExporter construye el exportador con los ledgers dados (vacíos = DefaultLedgers).
func NewTallyExporter(l Ledgers) *TallyExporter {
	if l == (Ledgers{}) {
		l = DefaultLedgers
	}
	return &TallyExporter{ledgers: l}
}

// ExportVouchers un VOUCHER por documento. En Tally los débitos van negativos y los
// créditos positivos; una devolución invierte los signos.
func (e *TallyExporter) ExportVouchers(ctx context.Context, company *entity.Company, docs []*entity.SalesDocument) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	env := doc.CreateElement("ENVELOPE")
	env.CreateElement("HEADER").CreateElement("TALLYREQUEST").SetText("Import Data")
	imp := env.CreateElement("BODY").CreateElement("IMPORTDATA")
	desc := imp.CreateElement("REQUESTDESC")
	desc.CreateElement("REPORTNAME").SetText("Vouchers")
	desc.CreateElement("STATICVARIABLES").CreateElement("SVCURRENTCOMPANY").SetText(company.Name)
	data := imp.CreateElement("REQUESTDATA")

	for _, d := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		msg := data.CreateElement("TALLYMESSAGE")
		msg.CreateAttr("xmlns:UDF", "TallyUDF")
		e.voucher(msg, d)
	}

	doc.Indent(2)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("tally: serializar XML: %w", err)
	}
	return out.Bytes(), nil
}

func (e *TallyExporter) voucher(parent *etree.Element, d *entity.SalesDocument) {
	vchType, salesLedger, sign := "Sales", e.ledgers.Sales, decimal.NewFromInt(1)
	if d.Kind == string(gst.KindReturn) {
		vchType, salesLedger, sign = "Credit Note", e.ledgers.SalesReturn, decimal.NewFromInt(-1)
	}

	v := parent.CreateElement("VOUCHER")
	v.CreateAttr("VCHTYPE", vchType)
	v.CreateAttr("ACTION", "Create")
	v.CreateElement("DATE").SetText(d.Date.Format("20060102"))
	v.CreateElement("VOUCHERTYPENAME").SetText(vchType)
	v.CreateElement("VOUCHERNUMBER").SetText(d.Number)
	v.CreateElement("PARTYLEDGERNAME").SetText(d.CustomerName)
	if name := gst.StateName(d.PlaceOfSupply); name != "" {
		v.CreateElement("PLACEOFSUPPLY").SetText(name)
	}
	if d.IRN != "" {
		v.CreateElement("IRN").SetText(d.IRN)
	}
	if d.Notes != "" {
		v.CreateElement("NARRATION").SetText(d.Notes)
	}

	// La cuenta de ventas absorbe descuentos y cupón para que el asiento cuadre con el total.
	sales := d.TotalAmount.Sub(d.TotalTax).Sub(d.FreightCharges).Sub(d.PFCharges).Sub(d.RoundOff)

	entry(v, d.CustomerName, d.TotalAmount.Neg().Mul(sign), true)
	entry(v, salesLedger, sales.Mul(sign), false)
	for _, l := range []struct {
		name   string
		amount decimal.Decimal
	}{
		{e.ledgers.CGST, d.CGSTAmount},
		{e.ledgers.SGST, d.SGSTAmount},
		{e.ledgers.IGST, d.IGSTAmount},
		{e.ledgers.Freight, d.FreightCharges},
		{e.ledgers.Packing, d.PFCharges},
		{e.ledgers.RoundOff, d.RoundOff},
	} {
		if !l.amount.IsZero() {
			entry(v, l.name, l.amount.Mul(sign), false)
		}
	}
}

func entry(v *etree.Element, ledger string, amount decimal.Decimal, party bool) {
	list := v.CreateElement("ALLLEDGERENTRIES.LIST")
	list.CreateElement("LEDGERNAME").SetText(ledger)
	deemed := "No"
	if amount.IsNegative() {
		deemed = "Yes"
	}
	list.CreateElement("ISDEEMEDPOSITIVE").SetText(deemed)
	if party {
		list.CreateElement("ISPARTYLEDGER").SetText("Yes")
	}
	list.CreateElement("AMOUNT").SetText(amount.StringFixed(2))
}
