// Package gst contiene el motor de cálculo de documentos de venta con GST (India):
// líneas de detalle, división CGST/SGST/IGST, cargos del documento y total general.
// No tiene dependencias de infraestructura: decimal para los montos y cast para las ediciones.
package gst

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Option par valor/etiqueta para listas cerradas (tarifas, estados, códigos de estado).
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Tarifas GST permitidas (porcentaje).
var rateTiers = []int64{0, 5, 12, 18, 28}

// DefaultGSTRate se usa cuando el producto no tiene tarifa configurada.
var DefaultGSTRate = decimal.NewFromInt(18)

// RateOptions devuelve las tarifas GST como opciones {value, label}.
func RateOptions() []Option {
	out := make([]Option, 0, len(rateTiers))
	for _, r := range rateTiers {
		out = append(out, Option{Value: fmt.Sprintf("%d", r), Label: fmt.Sprintf("GST %d%%", r)})
	}
	return out
}

// IsValidRate informa si rate pertenece al conjunto {0, 5, 12, 18, 28}.
func IsValidRate(rate decimal.Decimal) bool {
	for _, r := range rateTiers {
		if rate.Equal(decimal.NewFromInt(r)) {
			return true
		}
	}
	return false
}

// Tipos de documento de venta.
type DocumentKind string

const (
	KindInvoice    DocumentKind = "invoice"
	KindQuotation  DocumentKind = "quotation"
	KindSalesOrder DocumentKind = "sales_order"
	KindReturn     DocumentKind = "sales_return"
)

// ParseKind valida el tipo de documento.
func ParseKind(s string) (DocumentKind, bool) {
	k := DocumentKind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindInvoice, KindQuotation, KindSalesOrder, KindReturn:
		return k, true
	}
	return "", false
}

// Estados de documento.
const (
	StatusDraft     = "draft"
	StatusIssued    = "issued"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
	StatusSent      = "sent"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusExpired   = "expired"
	StatusConfirmed = "confirmed"
	StatusDelivered = "delivered"
	StatusApproved  = "approved"
	StatusRefunded  = "refunded"
)

var statusesByKind = map[DocumentKind][]Option{
	KindInvoice: {
		{StatusDraft, "Draft"}, {StatusIssued, "Issued"}, {StatusPaid, "Paid"}, {StatusCancelled, "Cancelled"},
	},
	KindQuotation: {
		{StatusDraft, "Draft"}, {StatusSent, "Sent"}, {StatusAccepted, "Accepted"},
		{StatusRejected, "Rejected"}, {StatusExpired, "Expired"},
	},
	KindSalesOrder: {
		{StatusDraft, "Draft"}, {StatusConfirmed, "Confirmed"}, {StatusDelivered, "Delivered"}, {StatusCancelled, "Cancelled"},
	},
	KindReturn: {
		{StatusDraft, "Draft"}, {StatusApproved, "Approved"}, {StatusRefunded, "Refunded"}, {StatusCancelled, "Cancelled"},
	},
}

// StatusOptions devuelve los estados válidos para el tipo de documento.
func StatusOptions(kind DocumentKind) []Option {
	src := statusesByKind[kind]
	out := make([]Option, len(src))
	copy(out, src)
	return out
}

// IsValidStatus informa si status es válido para kind.
func IsValidStatus(kind DocumentKind, status string) bool {
	for _, o := range statusesByKind[kind] {
		if o.Value == status {
			return true
		}
	}
	return false
}
