package einvoice

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// QRData contenido del QR impreso en la factura.
type QRData struct {
	SupplierGSTIN string
	BuyerGSTIN    string
	DocNumber     string
	DocType       string
	DocDate       string // dd/mm/yyyy
	TotalAmount   decimal.Decimal
	ItemCount     int
	MainHSNCode   string
	IRN           string
}

// String serializa el contenido separado por "|" (montos con 2 decimales).
func (q QRData) String() string {
	buyer := q.BuyerGSTIN
	if buyer == "" {
		buyer = "URP" // comprador no registrado
	}
	return strings.Join([]string{
		NormalizeGSTIN(q.SupplierGSTIN),
		NormalizeGSTIN(buyer),
		q.DocNumber,
		q.DocType,
		q.DocDate,
		q.TotalAmount.Round(2).StringFixed(2),
		strconv.Itoa(q.ItemCount),
		q.MainHSNCode,
		q.IRN,
	}, "|")
}
