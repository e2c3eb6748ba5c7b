package billing

import (
	"fmt"

	"github.com/jhoicas/Facturacion-GST/internal/domain"
)

// Session identidad del usuario que opera: se deriva del JWT en la capa HTTP y se pasa
// explícitamente a cada caso de uso.
type Session struct {
	UserID    string
	CompanyID string
	Role      string
}

// Authorize verifica que la sesión sea válida y pertenezca a la empresa indicada.
// companyID vacío solo exige una sesión válida.
func (s Session) Authorize(companyID string) error {
	if s.UserID == "" || s.CompanyID == "" {
		return domain.ErrUnauthorized
	}
	if companyID != "" && companyID != s.CompanyID {
		return fmt.Errorf("%w: la empresa %s no corresponde a la sesión", domain.ErrForbidden, companyID)
	}
	return nil
}
