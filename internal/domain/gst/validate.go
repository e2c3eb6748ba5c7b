package gst

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ValidateForSubmission revisa líneas y cargos antes de confiar en los totales para enviar
// el documento. No corrige valores: devuelve todos los problemas encontrados o nil.
func ValidateForSubmission(items []LineItem, charges DocumentCharges, placeOfSupply string) error {
	var errs ValidationErrors
	add := func(idx int, field string, err error, details string) {
		errs = append(errs, &FieldError{Index: idx, Field: field, Err: err, Details: details})
	}

	if len(items) == 0 {
		add(-1, "items", ErrNoItems, "")
	}
	for i, it := range items {
		if !it.Quantity.GreaterThan(decimal.Zero) {
			add(i, FieldQuantity, ErrNonPositiveQty, it.Quantity.String())
		}
		if it.UnitPrice.IsNegative() {
			add(i, FieldUnitPrice, ErrNegativeAmount, it.UnitPrice.String())
		}
		if it.DiscountPercent.IsNegative() || it.DiscountPercent.GreaterThan(hundred) {
			add(i, FieldDiscountPercent, ErrDiscountOutOfRange, it.DiscountPercent.String())
		}
		if !IsValidRate(it.GSTRate) {
			add(i, FieldGSTRate, ErrInvalidRate, it.GSTRate.String())
		}
	}

	checkCharge := func(field string, c Charge) {
		if c.Amount.IsNegative() {
			add(-1, field+".amount", ErrNegativeAmount, c.Amount.String())
		}
		if _, _, err := ParseChargeType(c.Type); err != nil {
			add(-1, field+".type", ErrInvalidChargeType, c.Type)
		}
	}
	checkCharge("freight", charges.Freight)
	checkCharge("packing_forwarding", charges.PackingForwarding)

	if charges.CouponValue.IsNegative() {
		add(-1, "coupon_value", ErrNegativeAmount, charges.CouponValue.String())
	}

	d := charges.DiscountOnAll
	switch strings.ToLower(strings.TrimSpace(d.Type)) {
	case "", DiscountFixed, "amount", DiscountPercentage, "percent":
	default:
		add(-1, "discount_on_all.type", ErrInvalidDiscount, d.Type)
	}
	if d.Value.IsNegative() {
		add(-1, "discount_on_all.value", ErrNegativeAmount, d.Value.String())
	}
	if d.IsPercentage() && d.Value.GreaterThan(hundred) {
		add(-1, "discount_on_all.value", ErrDiscountOutOfRange, d.Value.String())
	}

	if placeOfSupply != "" && !IsValidStateCode(placeOfSupply) {
		add(-1, "place_of_supply", ErrInvalidState, placeOfSupply)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
