package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesDocument cabecera de un documento de venta: factura, cotización, orden o devolución.
// Los totales se guardan ya calculados por gst.CalculateTotals al momento del envío.
type SalesDocument struct {
	ID            string
	CompanyID     string
	Kind          string // invoice, quotation, sales_order, sales_return
	Number        string
	Date          time.Time
	DueDate       *time.Time
	CustomerID    string
	CustomerName  string // solo lectura (join con customers)
	SalesPersonID string // opcional
	PlaceOfSupply string
	ReferenceID   string // documento origen (cotización -> orden -> factura -> devolución)
	Status        string
	Notes         string

	FreightAmount  decimal.Decimal
	FreightType    string
	PFAmount       decimal.Decimal
	PFType         string
	CouponValue    decimal.Decimal
	DiscountType   string
	DiscountValue  decimal.Decimal
	RoundOffType   string
	RoundOffAmount decimal.Decimal

	Subtotal            decimal.Decimal
	ItemDiscountTotal   decimal.Decimal
	TotalTax            decimal.Decimal
	CGSTAmount          decimal.Decimal
	SGSTAmount          decimal.Decimal
	IGSTAmount          decimal.Decimal
	FreightCharges      decimal.Decimal
	PFCharges           decimal.Decimal
	DiscountOnAllAmount decimal.Decimal
	RoundOff            decimal.Decimal // con signo
	TotalAmount         decimal.Decimal

	IRN       string // hash IRN (solo facturas y devoluciones de empresas con GSTIN)
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SalesDocumentItem línea persistida de un documento.
type SalesDocumentItem struct {
	ID              string
	DocumentID      string
	Position        int
	ProductID       string // vacío en líneas de texto libre
	ItemCode        string
	Description     string
	HSNCode         string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	GSTRate         decimal.Decimal
	CGSTRate        decimal.Decimal
	SGSTRate        decimal.Decimal
	IGSTRate        decimal.Decimal
	DiscountAmount  decimal.Decimal
	TaxableAmount   decimal.Decimal
	TaxAmount       decimal.Decimal
	TotalAmount     decimal.Decimal
}
