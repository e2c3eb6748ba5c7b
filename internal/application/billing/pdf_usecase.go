package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Facturacion-GST/internal/domain"
	"github.com/jhoicas/Facturacion-GST/internal/domain/gst"
	"github.com/jhoicas/Facturacion-GST/internal/domain/repository"
)

// PDFUseCase genera la representación impresa (PDF) de un documento de venta.
// Los borradores se imprimen con la marca del estado; los anulados no se imprimen.
type PDFUseCase struct {
	docRepo      repository.SalesDocumentRepository
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	generator    DocumentPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	docRepo repository.SalesDocumentRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	generator DocumentPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		docRepo:      docRepo,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		generator:    generator,
	}
}

// DownloadPDF recupera el documento con sus líneas y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el documento no existe.
//   - domain.ErrForbidden        si el documento no pertenece a la empresa de la sesión.
//   - domain.ErrInvalidInput     si el documento está anulado.
func (uc *PDFUseCase) DownloadPDF(ctx context.Context, s Session, documentID string) (pdfBytes []byte, filename string, err error) {
	if err := s.Authorize(""); err != nil {
		return nil, "", err
	}

	// ── 1. Cargar documento ───────────────────────────────────────────────────
	doc, err := uc.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener documento: %w", err)
	}
	if doc == nil {
		return nil, "", domain.ErrNotFound
	}
	if doc.CompanyID != s.CompanyID {
		return nil, "", domain.ErrForbidden
	}
	if doc.Status == gst.StatusCancelled {
		return nil, "", fmt.Errorf("%w: el documento %s está anulado", domain.ErrInvalidInput, doc.Number)
	}

	// ── 2. Cargar empresa y cliente ───────────────────────────────────────────
	company, err := uc.companyRepo.GetByID(doc.CompanyID)
	if err != nil || company == nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	customer, err := uc.customerRepo.GetByID(doc.CustomerID)
	if err != nil || customer == nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}

	// ── 3. Cargar líneas ──────────────────────────────────────────────────────
	items, err := uc.docRepo.GetItems(ctx, doc.ID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}

	// ── 4. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateDocumentPDF(ctx, doc, company, customer, items)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("%s_%s.pdf", doc.Kind, strings.ReplaceAll(doc.Number, "/", "-"))
	return pdfBytes, filename, nil
}
