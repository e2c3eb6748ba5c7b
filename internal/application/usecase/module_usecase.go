package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/Facturacion-GST/internal/domain"
	"github.com/jhoicas/Facturacion-GST/internal/domain/entity"
	"github.com/jhoicas/Facturacion-GST/internal/domain/gst"
	"github.com/jhoicas/Facturacion-GST/internal/domain/repository"
)

var moduleByKind = map[gst.DocumentKind]string{
	gst.KindInvoice:    entity.ModuleSales,
	gst.KindQuotation:  entity.ModuleQuotations,
	gst.KindSalesOrder: entity.ModuleOrders,
	gst.KindReturn:     entity.ModuleReturns,
}

// ModuleFor módulo SaaS que habilita el tipo de documento ("" si el tipo no existe).
func ModuleFor(kind gst.DocumentKind) string {
	return moduleByKind[kind]
}

func knownModule(name string) bool {
	for _, m := range entity.AllModules {
		if m == name {
			return true
		}
	}
	return false
}

type moduleEntry struct {
	active  bool
	expires time.Time
}

// ModuleService verifica qué módulos SaaS tiene activos una empresa.
// Las respuestas se guardan en memoria durante ttl; ttl 0 consulta siempre la DB.
type ModuleService struct {
	companyRepo repository.CompanyRepository
	ttl         time.Duration
	now         func() time.Time

	mu    sync.Mutex
	cache map[string]moduleEntry
}

func NewModuleService(companyRepo repository.CompanyRepository, ttl time.Duration) *ModuleService {
	return &ModuleService{
		companyRepo: companyRepo,
		ttl:         ttl,
		now:         time.Now,
		cache:       make(map[string]moduleEntry),
	}
}

// HasActiveModule informa si la empresa tiene el módulo activo y sin vencer.
// El error queda para fallos de infraestructura o argumentos inválidos; un fallo no se cachea.
func (s *ModuleService) HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error) {
	if companyID == "" || !knownModule(moduleName) {
		return false, fmt.Errorf("%w: módulo %q para empresa %q", domain.ErrInvalidInput, moduleName, companyID)
	}
	key := companyID + "|" + moduleName
	if s.ttl > 0 {
		s.mu.Lock()
		e, ok := s.cache[key]
		s.mu.Unlock()
		if ok && s.now().Before(e.expires) {
			return e.active, nil
		}
	}

	active, err := s.companyRepo.HasActiveModule(ctx, companyID, moduleName)
	if err != nil {
		return false, err
	}
	if s.ttl > 0 {
		s.mu.Lock()
		s.cache[key] = moduleEntry{active: active, expires: s.now().Add(s.ttl)}
		s.mu.Unlock()
	}
	return active, nil
}
