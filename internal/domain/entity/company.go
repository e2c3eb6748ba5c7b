package entity

import "time"

// Company representa una organización/tenant del sistema (multi-tenant, GST India).
type Company struct {
	ID        string
	Name      string
	GSTIN     string // GSTIN de 15 caracteres (vacío si no está registrada)
	StateCode string // estado de origen para decidir CGST+SGST vs IGST
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Módulos SaaS disponibles (deben coincidir con el CHECK de la tabla company_modules).
const (
	ModuleSales      = "sales"
	ModuleQuotations = "quotations"
	ModuleOrders     = "orders"
	ModuleReturns    = "returns"
)

// AllModules módulos que conoce la aplicación.
var AllModules = []string{ModuleSales, ModuleQuotations, ModuleOrders, ModuleReturns}
