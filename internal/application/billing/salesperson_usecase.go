package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturacion-GST/internal/application/dto"
	"github.com/jhoicas/Facturacion-GST/internal/domain"
	"github.com/jhoicas/Facturacion-GST/internal/domain/entity"
	"github.com/jhoicas/Facturacion-GST/internal/domain/repository"
)

// SalesPersonUseCase alta de vendedores.
type SalesPersonUseCase struct {
	repo repository.SalesPersonRepository
}

// NewSalesPersonUseCase construye el caso de uso.
func NewSalesPersonUseCase(repo repository.SalesPersonRepository) *SalesPersonUseCase {
	return &SalesPersonUseCase{repo: repo}
}

// Create registra un vendedor activo.
func (uc *SalesPersonUseCase) Create(companyID string, in dto.CreateSalesPersonRequest) (*dto.SalesPersonResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	sp := &entity.SalesPerson{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      strings.TrimSpace(in.Name),
		Email:     in.Email,
		Phone:     in.Phone,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(sp); err != nil {
		return nil, err
	}
	out := toSalesPersonResponse(sp)
	return &out, nil
}
