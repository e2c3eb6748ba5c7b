package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleSales    = "sales"
	RoleAccounts = "accounts"
)

// Estados de usuario. Solo UserActive puede iniciar sesión.
const (
	UserActive    = "active"
	UserInactive  = "inactive"
	UserSuspended = "suspended"
)

// IsValidRole informa si role es uno de los roles de la aplicación.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSales, RoleAccounts:
		return true
	}
	return false
}

// User usuario de una empresa. Su rol decide qué puede hacer con los documentos de venta:
// admin todo, sales crear y enviar, accounts consultar y exportar.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
