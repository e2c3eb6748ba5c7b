package usecase

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

// CompanyUseCase alta y mantenimiento de empresas.
type CompanyUseCase struct {
	repo           repository.CompanyRepository
	defaultModules []string
}

// NewCompanyUseCase recibe los módulos que se activan al crear una empresa; sin módulos se activan todos.
func NewCompanyUseCase(repo repository.CompanyRepository, defaultModules ...string) *CompanyUseCase {
	if len(defaultModules) == 0 {
		defaultModules = entity.AllModules
	}
	return &CompanyUseCase{repo: repo, defaultModules: defaultModules}
}

// Create crea una nueva empresa. Genera ID y estado inicial. Devuelve domain.ErrDuplicate si el
// GSTIN ya existe. El estado de origen se toma del GSTIN cuando no se informa.
func (uc *CompanyUseCase) Create(in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	gstin := einvoice.NormalizeGSTIN(in.GSTIN)
	stateCode := gst.NormalizeStateCode(in.StateCode)
	if gstin != "" {
		if err := einvoice.ValidateGSTIN(gstin); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		existing, _ := uc.repo.GetByGSTIN(gstin)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		fromGSTIN := einvoice.StateCodeFromGSTIN(gstin)
		if stateCode == "" {
			stateCode = fromGSTIN
		}
		if stateCode != fromGSTIN {
			return nil, fmt.Errorf("%w: el estado %s no coincide con el GSTIN", domain.ErrInvalidInput, stateCode)
		}
	}
	if !gst.IsValidStateCode(stateCode) {
		return nil, fmt.Errorf("%w: código de estado %q", domain.ErrInvalidInput, in.StateCode)
	}
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		GSTIN:     gstin,
		StateCode: stateCode,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(company, uc.defaultModules); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	return entityToCompanyResponse(company), nil
}

// Update actualiza los datos editables. Con GSTIN registrado el estado no puede cambiar.
func (uc *CompanyUseCase) Update(id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		company.Name = *in.Name
	}
	if in.StateCode != nil {
		code := gst.NormalizeStateCode(*in.StateCode)
		if !gst.IsValidStateCode(code) {
			return nil, fmt.Errorf("%w: código de estado %q", domain.ErrInvalidInput, *in.StateCode)
		}
		if company.GSTIN != "" && code != einvoice.StateCodeFromGSTIN(company.GSTIN) {
			return nil, fmt.Errorf("%w: el estado %s no coincide con el GSTIN", domain.ErrInvalidInput, code)
		}
		company.StateCode = code
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.Phone != nil {
		company.Phone = *in.Phone
	}
	if in.Email != nil {
		company.Email = *in.Email
	}
	if in.Status != nil {
		company.Status = *in.Status
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(q dto.ListQuery) (*dto.CompanyListResponse, error) {
	q.Normalize()
	list, err := uc.repo.List(q.PageSize, q.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.NewPageResponse(q, len(items)),
	}, nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		GSTIN:     c.GSTIN,
		StateCode: c.StateCode,
		StateName: gst.StateName(c.StateCode),
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
