package repository

import "github.com/jhoicas/Facturacion-GST/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer (facturación).
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByCompanyAndGSTIN(companyID, gstin string) (*entity.Customer, error)
	// Search lista clientes de la empresa cuyo nombre, GSTIN o teléfono contengan search
	// (vacío = todos) y devuelve también el total sin paginar.
	Search(companyID, search string, limit, offset int) ([]*entity.Customer, int, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
}
