package gst

import "github.com/shopspring/decimal"

// TotalsBreakdown totales del documento, cada campo redondeado a 2 decimales.
type TotalsBreakdown struct {
	Subtotal            decimal.Decimal `json:"subtotal"`
	ItemDiscountTotal   decimal.Decimal `json:"item_discount_total"`
	TotalTax            decimal.Decimal `json:"total_tax"`
	CGST                decimal.Decimal `json:"cgst_amount"`
	SGST                decimal.Decimal `json:"sgst_amount"`
	IGST                decimal.Decimal `json:"igst_amount"`
	FreightCharges      decimal.Decimal `json:"freight_charges"`
	PFCharges           decimal.Decimal `json:"pf_charges"`
	CouponValue         decimal.Decimal `json:"coupon_value"`
	DiscountOnAllAmount decimal.Decimal `json:"discount_on_all_amount"`
	RoundOff            decimal.Decimal `json:"round_off"`
	AfterTax            decimal.Decimal `json:"after_tax"`
	GrandTotal          decimal.Decimal `json:"total_amount"`
	IntraState          bool            `json:"intra_state"`
}

// CalculateTotals calcula los totales del documento a partir de las líneas y los cargos.
// Es pura: no modifica items ni charges y siempre devuelve lo mismo para la misma entrada.
// Los derivados de cada línea se recalculan desde sus entradas (no se confía en ellos).
//
// Orden del pipeline: subtotal + impuesto -> + flete + P&F -> - cupón -> - descuento global
// -> + redondeo. Solo se redondean los valores emitidos.
func CalculateTotals(items []LineItem, charges DocumentCharges, placeOfSupply, homeStateCode string) TotalsBreakdown {
	intra := IsIntraState(placeOfSupply, homeStateCode)

	var subtotal, totalTax, itemDiscount, cgst, sgst, igst decimal.Decimal
	for _, it := range items {
		a := computeLine(it.Quantity, it.UnitPrice, it.DiscountPercent, it.GSTRate)
		subtotal = subtotal.Add(a.taxable)
		totalTax = totalTax.Add(a.tax)
		itemDiscount = itemDiscount.Add(a.discount)
		if intra {
			half := a.tax.Div(two)
			cgst = cgst.Add(half)
			sgst = sgst.Add(half)
		} else {
			igst = igst.Add(a.tax)
		}
	}

	freight := charges.Freight.Gross()
	pf := charges.PackingForwarding.Gross()
	discountAll := charges.DiscountOnAll.Amount(subtotal)
	roundOff := charges.RoundOff.Signed()

	afterTax := subtotal.Add(totalTax)
	afterCharges := afterTax.Add(freight).Add(pf)
	afterCoupon := afterCharges.Sub(charges.CouponValue)
	afterDiscountAll := afterCoupon.Sub(discountAll)
	grandTotal := afterDiscountAll.Add(roundOff)

	return TotalsBreakdown{
		Subtotal:            round2(subtotal),
		ItemDiscountTotal:   round2(itemDiscount),
		TotalTax:            round2(totalTax),
		CGST:                round2(cgst),
		SGST:                round2(sgst),
		IGST:                round2(igst),
		FreightCharges:      round2(freight),
		PFCharges:           round2(pf),
		CouponValue:         round2(charges.CouponValue),
		DiscountOnAllAmount: round2(discountAll),
		RoundOff:            round2(roundOff),
		AfterTax:            round2(afterTax),
		GrandTotal:          round2(grandTotal),
		IntraState:          intra,
	}
}

// PreRoundTotal total antes de aplicar el redondeo (para sugerir el ajuste a la rupia).
func PreRoundTotal(items []LineItem, charges DocumentCharges, placeOfSupply, homeStateCode string) decimal.Decimal {
	c := charges
	c.RoundOff = RoundOff{Type: RoundOffNone}
	return CalculateTotals(items, c, placeOfSupply, homeStateCode).GrandTotal
}
