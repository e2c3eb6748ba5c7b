package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturacion-GST/internal/application/dto"
	"github.com/jhoicas/Facturacion-GST/internal/domain"
	"github.com/jhoicas/Facturacion-GST/internal/domain/entity"
	"github.com/jhoicas/Facturacion-GST/internal/domain/gst"
	"github.com/jhoicas/Facturacion-GST/internal/domain/repository"
	"github.com/jhoicas/Facturacion-GST/pkg/einvoice"
)

// CustomerUseCase casos de uso para clientes (facturación).
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un nuevo cliente. Con GSTIN se valida el dígito de control y el estado se toma
// de sus dos primeros dígitos si no viene informado.
func (uc *CustomerUseCase) Create(companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	gstin := einvoice.NormalizeGSTIN(in.GSTIN)
	stateCode := gst.NormalizeStateCode(in.StateCode)
	if gstin != "" {
		if err := einvoice.ValidateGSTIN(gstin); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		existing, _ := uc.repo.GetByCompanyAndGSTIN(companyID, gstin)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		if stateCode == "" {
			stateCode = einvoice.StateCodeFromGSTIN(gstin)
		}
	}
	if stateCode != "" && !gst.IsValidStateCode(stateCode) {
		return nil, fmt.Errorf("%w: código de estado %q", domain.ErrInvalidInput, in.StateCode)
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      strings.TrimSpace(in.Name),
		GSTIN:     gstin,
		StateCode: stateCode,
		Address:   in.Address,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	out := toCustomerResponse(customer)
	return &out, nil
}

// GetByID obtiene un cliente verificando que pertenezca a la empresa.
func (uc *CustomerUseCase) GetByID(companyID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	out := toCustomerResponse(customer)
	return &out, nil
}
