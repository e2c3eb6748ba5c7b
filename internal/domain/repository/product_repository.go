package repository

import "github.com/jhoicas/Facturacion-GST/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByIDs(companyID string, ids []string) ([]*entity.Product, error)
	GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	Search(companyID, search string, limit, offset int) ([]*entity.Product, int, error)
	Delete(id string) error
}
