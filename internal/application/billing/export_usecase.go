package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Facturacion-GST/internal/domain"
	"github.com/jhoicas/Facturacion-GST/internal/domain/entity"
	"github.com/jhoicas/Facturacion-GST/internal/domain/gst"
	"github.com/jhoicas/Facturacion-GST/internal/domain/repository"
)

// exportPageSize tamaño de cada lote leído del repositorio al exportar.
const exportPageSize = 500

// ExportUseCase exporta el registro de documentos a Excel y a Tally (XML).
type ExportUseCase struct {
	docRepo     repository.SalesDocumentRepository
	companyRepo repository.CompanyRepository
	register    RegisterExporter
	vouchers    VoucherExporter
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	docRepo repository.SalesDocumentRepository,
	companyRepo repository.CompanyRepository,
	register RegisterExporter,
	vouchers VoucherExporter,
) *ExportUseCase {
	return &ExportUseCase{docRepo: docRepo, companyRepo: companyRepo, register: register, vouchers: vouchers}
}

// ExportRegister genera el registro de ventas (xlsx) del tipo indicado, con filtro opcional de estado.
func (uc *ExportUseCase) ExportRegister(ctx context.Context, s Session, kind gst.DocumentKind, status string) ([]byte, string, error) {
	company, docs, err := uc.load(ctx, s, kind, status)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.register.ExportRegister(ctx, company, docs)
	if err != nil {
		return nil, "", fmt.Errorf("export: registro: %w", err)
	}
	return data, fmt.Sprintf("%s_register_%s.xlsx", kind, time.Now().Format("20060102")), nil
}

// ExportTally genera los comprobantes de venta en XML de importación de Tally. Solo facturas y
// devoluciones (las cotizaciones y órdenes no son asientos contables); los anulados se omiten.
func (uc *ExportUseCase) ExportTally(ctx context.Context, s Session, kind gst.DocumentKind) ([]byte, string, error) {
	if kind != gst.KindInvoice && kind != gst.KindReturn {
		return nil, "", fmt.Errorf("%w: %s no se exporta a contabilidad", domain.ErrInvalidInput, kind)
	}
	company, docs, err := uc.load(ctx, s, kind, "")
	if err != nil {
		return nil, "", err
	}
	active := docs[:0]
	for _, d := range docs {
		if d.Status != gst.StatusCancelled {
			active = append(active, d)
		}
	}
	data, err := uc.vouchers.ExportVouchers(ctx, company, active)
	if err != nil {
		return nil, "", fmt.Errorf("export: tally: %w", err)
	}
	return data, fmt.Sprintf("%s_tally_%s.xml", kind, time.Now().Format("20060102")), nil
}

// load lee todos los documentos del tipo en lotes.
func (uc *ExportUseCase) load(ctx context.Context, s Session, kind gst.DocumentKind, status string) (*entity.Company, []*entity.SalesDocument, error) {
	if err := s.Authorize(""); err != nil {
		return nil, nil, err
	}
	if _, ok := gst.ParseKind(string(kind)); !ok {
		return nil, nil, fmt.Errorf("%w: tipo de documento %q", domain.ErrInvalidInput, kind)
	}
	if status != "" && !gst.IsValidStatus(kind, status) {
		return nil, nil, fmt.Errorf("%w: estado %q no válido para %s", domain.ErrInvalidInput, status, kind)
	}
	company, err := uc.companyRepo.GetByID(s.CompanyID)
	if err != nil {
		return nil, nil, fmt.Errorf("obtener empresa: %w", err)
	}
	if company == nil {
		return nil, nil, domain.ErrNotFound
	}

	var all []*entity.SalesDocument
	for offset := 0; ; offset += exportPageSize {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		page, total, err := uc.docRepo.List(ctx, repository.DocumentFilter{
			CompanyID: s.CompanyID,
			Kind:      string(kind),
			Status:    status,
			Limit:     exportPageSize,
			Offset:    offset,
		})
		if err != nil {
			return nil, nil, err
		}
		all = append(all, page...)
		if len(page) < exportPageSize || len(all) >= total {
			break
		}
	}
	return company, all, nil
}
