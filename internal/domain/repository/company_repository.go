package repository

import (
	"context"

	"github.com/jhoicas/Facturacion-GST/internal/domain/entity"
)

// CompanyRepository persistencia de empresas y de sus módulos SaaS.
type CompanyRepository interface {
	// Create guarda la empresa y activa los módulos indicados en la misma transacción.
	Create(company *entity.Company, modules []string) error
	GetByID(id string) (*entity.Company, error)
	GetByGSTIN(gstin string) (*entity.Company, error)
	Update(company *entity.Company) error
	List(limit, offset int) ([]*entity.Company, error)
	Delete(id string) error
	HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error)
}
