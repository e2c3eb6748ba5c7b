package gst

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// LineItem una fila del documento (producto/cantidad/precio/descuento/impuesto).
// Los campos derivados se recalculan con Recompute; nunca se editan directamente.
type LineItem struct {
	ProductID       string          `json:"product_id,omitempty"`
	ItemCode        string          `json:"item_code,omitempty"`
	Description     string          `json:"description"`
	HSNCode         string          `json:"hsn_code,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	GSTRate         decimal.Decimal `json:"gst_rate"`

	// Derivados
	CGSTRate       decimal.Decimal `json:"cgst_rate"`
	SGSTRate       decimal.Decimal `json:"sgst_rate"`
	IGSTRate       decimal.Decimal `json:"igst_rate"`
	LineTotal      decimal.Decimal `json:"line_total"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxableAmount  decimal.Decimal `json:"taxable_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

// lineAmounts importes sin redondear de una línea.
type lineAmounts struct {
	lineTotal decimal.Decimal
	discount  decimal.Decimal
	taxable   decimal.Decimal
	tax       decimal.Decimal
}

func computeLine(quantity, unitPrice, discountPercent, gstRate decimal.Decimal) lineAmounts {
	lineTotal := quantity.Mul(unitPrice)
	discount := decimal.Zero
	if discountPercent.GreaterThan(decimal.Zero) {
		discount = lineTotal.Mul(discountPercent).Div(hundred)
	}
	taxable := lineTotal.Sub(discount)
	return lineAmounts{
		lineTotal: lineTotal,
		discount:  discount,
		taxable:   taxable,
		tax:       taxable.Mul(gstRate).Div(hundred),
	}
}

// splitRates devuelve las tarifas CGST, SGST e IGST para la línea según la política.
func splitRates(gstRate decimal.Decimal, intraState bool) (cgst, sgst, igst decimal.Decimal) {
	if intraState {
		half := gstRate.Div(two)
		return half, half, decimal.Zero
	}
	return decimal.Zero, decimal.Zero, gstRate
}

// Recompute devuelve una copia con todos los campos derivados consistentes con sus entradas.
// Los importes derivados se redondean a 2 decimales; las tarifas no.
func (it LineItem) Recompute(placeOfSupply, homeStateCode string) LineItem {
	a := computeLine(it.Quantity, it.UnitPrice, it.DiscountPercent, it.GSTRate)
	it.CGSTRate, it.SGSTRate, it.IGSTRate = splitRates(it.GSTRate, IsIntraState(placeOfSupply, homeStateCode))
	it.LineTotal = round2(a.lineTotal)
	it.DiscountAmount = round2(a.discount)
	it.TaxableAmount = round2(a.taxable)
	it.TaxAmount = round2(a.tax)
	it.TotalAmount = round2(a.taxable.Add(a.tax))
	return it
}

// NewLineItem construye una línea vacía con tarifa por defecto y derivados consistentes.
func NewLineItem(placeOfSupply, homeStateCode string) LineItem {
	return LineItem{
		Quantity: decimal.NewFromInt(1),
		GSTRate:  DefaultGSTRate,
	}.Recompute(placeOfSupply, homeStateCode)
}

// ApplyPlaceOfSupply recalcula la división CGST/SGST/IGST de cada línea para el nuevo lugar
// de suministro. No modifica gstRate, cantidad ni precio, ni el slice recibido.
func ApplyPlaceOfSupply(items []LineItem, placeOfSupply, homeStateCode string) []LineItem {
	out := make([]LineItem, len(items))
	for i, it := range items {
		out[i] = it.Recompute(placeOfSupply, homeStateCode)
	}
	return out
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
