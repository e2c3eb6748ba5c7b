package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Facturacion-GST/internal/application/dto"
	"github.com/jhoicas/Facturacion-GST/internal/domain"
	"github.com/jhoicas/Facturacion-GST/internal/domain/gst"
	"github.com/jhoicas/Facturacion-GST/internal/domain/repository"
)

// ReferenceDataUseCase datos de referencia del formulario: clientes, productos, vendedores
// y listas cerradas.
type ReferenceDataUseCase struct {
	customerRepo    repository.CustomerRepository
	productRepo     repository.ProductRepository
	salesPersonRepo repository.SalesPersonRepository
}

// NewReferenceDataUseCase construye el caso de uso.
func NewReferenceDataUseCase(
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	salesPersonRepo repository.SalesPersonRepository,
) *ReferenceDataUseCase {
	return &ReferenceDataUseCase{
		customerRepo:    customerRepo,
		productRepo:     productRepo,
		salesPersonRepo: salesPersonRepo,
	}
}

// ListCustomers clientes de la empresa de la sesión (paginado, búsqueda por nombre/GSTIN/teléfono).
func (uc *ReferenceDataUseCase) ListCustomers(ctx context.Context, s Session, q dto.ListQuery) (*dto.CustomerListResponse, error) {
	if err := s.Authorize(""); err != nil {
		return nil, err
	}
	q.Normalize()
	list, total, err := uc.customerRepo.Search(s.CompanyID, q.Search, q.PageSize, q.Offset())
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{Items: items, Page: dto.NewPageResponse(q, total)}, nil
}

// ListProducts productos de la empresa de la sesión (paginado, búsqueda por SKU/nombre/HSN).
func (uc *ReferenceDataUseCase) ListProducts(ctx context.Context, s Session, q dto.ListQuery) (*dto.ProductListResponse, error) {
	if err := s.Authorize(""); err != nil {
		return nil, err
	}
	q.Normalize()
	list, total, err := uc.productRepo.Search(s.CompanyID, q.Search, q.PageSize, q.Offset())
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Page: dto.NewPageResponse(q, total)}, nil
}

// ListSalesPersons vendedores de la empresa de la sesión.
func (uc *ReferenceDataUseCase) ListSalesPersons(ctx context.Context, s Session) ([]dto.SalesPersonResponse, error) {
	if err := s.Authorize(""); err != nil {
		return nil, err
	}
	list, err := uc.salesPersonRepo.ListByCompany(s.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("listar vendedores: %w", err)
	}
	out := make([]dto.SalesPersonResponse, 0, len(list))
	for _, sp := range list {
		out = append(out, toSalesPersonResponse(sp))
	}
	return out, nil
}

// Options tarifas GST, códigos de estado y, si kind no es vacío, los estados del documento.
func (uc *ReferenceDataUseCase) Options(kind string) (*dto.OptionsResponse, error) {
	out := &dto.OptionsResponse{
		GSTRates: gst.RateOptions(),
		States:   gst.StateOptions(),
	}
	if kind == "" {
		return out, nil
	}
	k, ok := gst.ParseKind(kind)
	if !ok {
		return nil, fmt.Errorf("%w: tipo de documento %q", domain.ErrInvalidInput, kind)
	}
	out.Statuses = gst.StatusOptions(k)
	return out, nil
}
