package repository

import "github.com/jhoicas/Facturacion-GST/internal/domain/entity"

// SalesPersonRepository define el puerto de persistencia para vendedores.
type SalesPersonRepository interface {
	Create(sp *entity.SalesPerson) error
	GetByID(id string) (*entity.SalesPerson, error)
	ListByCompany(companyID string) ([]*entity.SalesPerson, error)
}
