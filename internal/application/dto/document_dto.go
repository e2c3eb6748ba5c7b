package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-GST/internal/domain/gst"
)

// CalculateRequest instantánea del formulario: lugar de suministro, líneas y cargos.
// Los derivados que traigan las líneas se ignoran y se recalculan.
type CalculateRequest struct {
	PlaceOfSupply string              `json:"place_of_supply"`
	Items         []gst.LineItem      `json:"items"`
	Charges       gst.DocumentCharges `json:"charges"`
}

// EditItemRequest edición de un campo de la línea Index. Index == len(items) agrega una línea.
type EditItemRequest struct {
	CalculateRequest
	Index int    `json:"index"`
	Field string `json:"field"`
	Value any    `json:"value"`
}

// CalculateResponse líneas recalculadas y totales del documento.
type CalculateResponse struct {
	Items             []gst.LineItem      `json:"items"`
	Totals            gst.TotalsBreakdown `json:"totals"`
	AmountInWords     string              `json:"amount_in_words"`
	SuggestedRoundOff gst.RoundOff        `json:"suggested_round_off"`
}

// SubmitDocumentRequest body para crear un documento (factura, cotización, orden o devolución).
type SubmitDocumentRequest struct {
	CustomerID    string              `json:"customer_id"`
	SalesPersonID string              `json:"salesperson_id,omitempty"`
	Number        string              `json:"number,omitempty"`   // vacío = consecutivo automático
	Date          string              `json:"date,omitempty"`     // YYYY-MM-DD; vacío = hoy
	DueDate       string              `json:"due_date,omitempty"` // YYYY-MM-DD
	PlaceOfSupply string              `json:"place_of_supply,omitempty"`
	ReferenceID   string              `json:"reference_id,omitempty"`
	Status        string              `json:"status,omitempty"`
	Notes         string              `json:"notes,omitempty"`
	Items         []gst.LineItem      `json:"items"`
	Charges       gst.DocumentCharges `json:"charges"`
}

// UpdateStatusRequest body para PATCH .../documents/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// DocumentResponse documento con líneas y totales. Los nombres de los totales son los del
// contrato del frontend (subtotal, total_tax, cgst_amount...).
type DocumentResponse struct {
	ID            string              `json:"id"`
	CompanyID     string              `json:"company_id"`
	Kind          string              `json:"kind"`
	Number        string              `json:"number"`
	Date          string              `json:"date"`
	DueDate       string              `json:"due_date,omitempty"`
	CustomerID    string              `json:"customer_id"`
	CustomerName  string              `json:"customer_name,omitempty"`
	SalesPersonID string              `json:"salesperson_id,omitempty"`
	PlaceOfSupply string              `json:"place_of_supply"`
	ReferenceID   string              `json:"reference_id,omitempty"`
	Status        string              `json:"status"`
	Notes         string              `json:"notes,omitempty"`
	IRN           string              `json:"irn,omitempty"`
	Items         []gst.LineItem      `json:"items"`
	Charges       gst.DocumentCharges `json:"charges"`

	Subtotal            decimal.Decimal `json:"subtotal"`
	ItemDiscountTotal   decimal.Decimal `json:"item_discount_total"`
	TotalTax            decimal.Decimal `json:"total_tax"`
	CGSTAmount          decimal.Decimal `json:"cgst_amount"`
	SGSTAmount          decimal.Decimal `json:"sgst_amount"`
	IGSTAmount          decimal.Decimal `json:"igst_amount"`
	FreightCharges      decimal.Decimal `json:"freight_charges"`
	PFCharges           decimal.Decimal `json:"pf_charges"`
	CouponValue         decimal.Decimal `json:"coupon_value"`
	DiscountOnAllAmount decimal.Decimal `json:"discount_on_all_amount"`
	RoundOff            decimal.Decimal `json:"round_off"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	AmountInWords       string          `json:"amount_in_words"`

	CreatedAt time.Time `json:"created_at"`
}

// DocumentSummary fila del registro de documentos.
type DocumentSummary struct {
	ID           string          `json:"id"`
	Kind         string          `json:"kind"`
	Number       string          `json:"number"`
	Date         string          `json:"date"`
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Status       string          `json:"status"`
	TotalTax     decimal.Decimal `json:"total_tax"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// DocumentListResponse registro paginado.
type DocumentListResponse struct {
	Items []DocumentSummary `json:"items"`
	Page  PageResponse      `json:"page"`
}

// OptionsResponse listas cerradas para los selectores del formulario.
type OptionsResponse struct {
	GSTRates []gst.Option `json:"gst_rates"`
	States   []gst.Option `json:"states"`
	Statuses []gst.Option `json:"statuses,omitempty"`
}
