package gst

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ChargeTypeFixed el monto del cargo se usa tal cual.
const ChargeTypeFixed = "fixed"

var taxTagPattern = regexp.MustCompile(`^tax@(\d+(?:\.\d+)?)%?$`)

// Charge cargo a nivel documento (flete, P&F). Type es "fixed" o "tax@N%".
type Charge struct {
	Amount decimal.Decimal `json:"amount"`
	Type   string          `json:"type"`
}

// ParseChargeType interpreta el tipo del cargo. Devuelve la tarifa y si aplica impuesto.
// "" se considera "fixed".
func ParseChargeType(t string) (rate decimal.Decimal, taxed bool, err error) {
	t = strings.ToLower(strings.TrimSpace(t))
	if t == "" || t == ChargeTypeFixed {
		return decimal.Zero, false, nil
	}
	m := taxTagPattern.FindStringSubmatch(t)
	if m == nil {
		return decimal.Zero, false, fmt.Errorf("tipo de cargo desconocido %q", t)
	}
	rate, err = decimal.NewFromString(m[1])
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("tarifa de cargo inválida %q: %w", t, err)
	}
	return rate, true, nil
}

// TaxTag construye la etiqueta "tax@N%" para una tarifa.
func TaxTag(rate decimal.Decimal) string {
	return "tax@" + rate.String() + "%"
}

// Gross devuelve el monto del cargo: fijo sin cambios o incrementado por la tarifa del tag.
// Un tipo no reconocido se trata como fijo; la validación previa al envío lo rechaza.
func (c Charge) Gross() decimal.Decimal {
	rate, taxed, err := ParseChargeType(c.Type)
	if err != nil || !taxed {
		return c.Amount
	}
	return c.Amount.Mul(decimal.NewFromInt(1).Add(rate.Div(hundred)))
}

// Tipos de descuento global.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// DiscountOnAll descuento sobre todo el documento.
type DiscountOnAll struct {
	Type  string          `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// IsPercentage informa si el descuento es porcentual ("percentage" o "percent").
func (d DiscountOnAll) IsPercentage() bool {
	t := strings.ToLower(strings.TrimSpace(d.Type))
	return t == DiscountPercentage || t == "percent"
}

// Amount calcula el monto del descuento sobre el subtotal.
func (d DiscountOnAll) Amount(subtotal decimal.Decimal) decimal.Decimal {
	if d.IsPercentage() {
		return subtotal.Mul(d.Value).Div(hundred)
	}
	return d.Value
}

// Sentido del redondeo.
type RoundOffType string

const (
	RoundOffNone  RoundOffType = "none"
	RoundOffPlus  RoundOffType = "plus"
	RoundOffMinus RoundOffType = "minus"
)

// RoundOff ajuste de redondeo. Se acepta en JSON como número con signo (-0.40) o como
// {"type": "none|plus|minus", "amount": 0.40}; ambas formas representan lo mismo.
type RoundOff struct {
	Type   RoundOffType    `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// SignedRoundOff construye el ajuste desde un monto con signo.
func SignedRoundOff(v decimal.Decimal) RoundOff {
	switch v.Sign() {
	case 1:
		return RoundOff{Type: RoundOffPlus, Amount: v}
	case -1:
		return RoundOff{Type: RoundOffMinus, Amount: v.Neg()}
	}
	return RoundOff{Type: RoundOffNone, Amount: decimal.Zero}
}

// Signed devuelve el ajuste con signo: plus suma, minus resta, none no aplica.
func (r RoundOff) Signed() decimal.Decimal {
	switch r.Type {
	case RoundOffPlus:
		return r.Amount.Abs()
	case RoundOffMinus:
		return r.Amount.Abs().Neg()
	}
	return decimal.Zero
}

// UnmarshalJSON acepta las dos codificaciones.
func (r *RoundOff) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = RoundOff{Type: RoundOffNone}
		return nil
	}
	if data[0] != '{' {
		var v decimal.Decimal
		if err := v.UnmarshalJSON(data); err != nil {
			return fmt.Errorf("round_off: %w", err)
		}
		*r = SignedRoundOff(v)
		return nil
	}
	var raw struct {
		Type   string          `json:"type"`
		Amount decimal.Decimal `json:"amount"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("round_off: %w", err)
	}
	t := RoundOffType(strings.ToLower(strings.TrimSpace(raw.Type)))
	switch t {
	case "", RoundOffNone:
		*r = RoundOff{Type: RoundOffNone, Amount: raw.Amount.Abs()}
	case RoundOffPlus, RoundOffMinus:
		*r = RoundOff{Type: t, Amount: raw.Amount.Abs()}
	default:
		return fmt.Errorf("round_off: tipo desconocido %q", raw.Type)
	}
	return nil
}

// SuggestRoundOff ajuste necesario para llevar amount a la rupia más cercana (0.50 sube).
func SuggestRoundOff(amount decimal.Decimal) RoundOff {
	return SignedRoundOff(amount.Round(0).Sub(amount))
}

// DocumentCharges cargos, cupón, descuento global y redondeo de un documento.
type DocumentCharges struct {
	Freight           Charge          `json:"freight"`
	PackingForwarding Charge          `json:"packing_forwarding"`
	CouponValue       decimal.Decimal `json:"coupon_value"`
	DiscountOnAll     DiscountOnAll   `json:"discount_on_all"`
	RoundOff          RoundOff        `json:"round_off"`
}
