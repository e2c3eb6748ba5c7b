package entity

import "time"

// SalesPerson vendedor asignable a un documento.
type SalesPerson struct {
	ID        string
	CompanyID string
	Name      string
	Email     string
	Phone     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
