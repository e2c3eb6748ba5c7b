package gst

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Campos editables de una línea.
const (
	FieldProductID       = "productId"
	FieldItemCode        = "itemCode"
	FieldDescription     = "description"
	FieldHSNCode         = "hsnCode"
	FieldQuantity        = "quantity"
	FieldUnitPrice       = "unitPrice"
	FieldDiscountPercent = "discountPercent"
	FieldGSTRate         = "gstRate"
)

// ProductRef datos del producto que necesita la edición de una línea.
// GSTRate nil significa "sin tarifa configurada" (se usa DefaultGSTRate).
type ProductRef struct {
	ID           string
	SKU          string
	Name         string
	Description  string
	HSNCode      string
	SellingPrice decimal.Decimal
	GSTRate      *decimal.Decimal
}

// EditContext contexto de la edición: productos disponibles y política de impuesto.
type EditContext struct {
	Products      []ProductRef
	PlaceOfSupply string
	HomeStateCode string
}

func (c EditContext) product(id string) (ProductRef, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return ProductRef{}, false
}

// ApplyItemEdit aplica la edición de un campo (o la selección de un producto) y devuelve una
// nueva línea con los derivados recalculados. value puede ser número o string.
func ApplyItemEdit(item LineItem, field string, value any, ctx EditContext) (LineItem, error) {
	switch NormalizeField(field) {
	case FieldProductID:
		id := strings.TrimSpace(cast.ToString(value))
		if id == "" {
			item.ProductID = ""
			break
		}
		p, ok := ctx.product(id)
		if !ok {
			return item, &FieldError{Field: FieldProductID, Err: ErrUnknownProduct, Details: id}
		}
		item = selectProduct(item, p)
	case FieldItemCode:
		item.ItemCode = strings.TrimSpace(cast.ToString(value))
	case FieldDescription:
		item.Description = cast.ToString(value)
	case FieldHSNCode:
		item.HSNCode = strings.TrimSpace(cast.ToString(value))
	case FieldQuantity:
		d, err := toDecimal(value)
		if err != nil {
			return item, &FieldError{Field: FieldQuantity, Err: ErrNotNumeric, Details: err.Error()}
		}
		item.Quantity = d
	case FieldUnitPrice:
		d, err := toDecimal(value)
		if err != nil {
			return item, &FieldError{Field: FieldUnitPrice, Err: ErrNotNumeric, Details: err.Error()}
		}
		item.UnitPrice = d
	case FieldDiscountPercent:
		d, err := toDecimal(value)
		if err != nil {
			return item, &FieldError{Field: FieldDiscountPercent, Err: ErrNotNumeric, Details: err.Error()}
		}
		if d.IsNegative() || d.GreaterThan(hundred) {
			return item, &FieldError{Field: FieldDiscountPercent, Err: ErrDiscountOutOfRange, Details: d.String()}
		}
		item.DiscountPercent = d
	case FieldGSTRate:
		d, err := toDecimal(value)
		if err != nil {
			return item, &FieldError{Field: FieldGSTRate, Err: ErrNotNumeric, Details: err.Error()}
		}
		if !IsValidRate(d) {
			return item, &FieldError{Field: FieldGSTRate, Err: ErrInvalidRate, Details: d.String()}
		}
		item.GSTRate = d
	default:
		return item, &FieldError{Field: field, Err: ErrUnknownField}
	}
	return item.Recompute(ctx.PlaceOfSupply, ctx.HomeStateCode), nil
}

// selectProduct sobrescribe descripción, precio, tarifa y HSN. El código de ítem escrito por
// el usuario se conserva; solo se completa con el SKU si está vacío.
func selectProduct(item LineItem, p ProductRef) LineItem {
	item.ProductID = p.ID
	item.Description = p.Name
	if item.Description == "" {
		item.Description = p.Description
	}
	item.UnitPrice = p.SellingPrice
	item.GSTRate = DefaultGSTRate
	if p.GSTRate != nil {
		item.GSTRate = *p.GSTRate
	}
	item.HSNCode = p.HSNCode
	if item.ItemCode == "" {
		item.ItemCode = p.SKU
	}
	return item
}

// NormalizeField acepta camelCase y snake_case ("unit_price" == "unitPrice").
func NormalizeField(f string) string {
	f = strings.TrimSpace(f)
	switch strings.ToLower(strings.ReplaceAll(f, "_", "")) {
	case "productid":
		return FieldProductID
	case "itemcode", "sku":
		return FieldItemCode
	case "description":
		return FieldDescription
	case "hsncode", "hsn":
		return FieldHSNCode
	case "quantity", "qty":
		return FieldQuantity
	case "unitprice", "price":
		return FieldUnitPrice
	case "discountpercent", "discount":
		return FieldDiscountPercent
	case "gstrate", "taxrate":
		return FieldGSTRate
	}
	return f
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, nil
	case *decimal.Decimal:
		if t == nil {
			return decimal.Zero, fmt.Errorf("valor vacío")
		}
		return *t, nil
	case float32, float64:
		return decimal.NewFromFloat(cast.ToFloat64(t)), nil
	}
	s := strings.TrimSpace(cast.ToString(v))
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q no es numérico", s)
	}
	return d, nil
}
