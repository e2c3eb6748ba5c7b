package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o servicio vendible.
type Product struct {
	ID           string
	CompanyID    string
	SKU          string // código único por empresa
	Name         string
	Description  string
	HSNCode      string
	SellingPrice decimal.Decimal
	GSTRate      decimal.NullDecimal // NULL = sin tarifa configurada (se usa 18%)
	Unit         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
