package billing

import (
	"context"

	"github.com/jhoicas/Facturacion-GST/internal/domain/entity"
	"github.com/jhoicas/Facturacion-GST/internal/domain/repository"
)

// SalesTxRunner ejecuta una función dentro de una transacción con el repositorio de documentos.
// Si fn retorna error se hace rollback: un envío rechazado nunca queda a medias.
type SalesTxRunner interface {
	RunSales(ctx context.Context, fn func(docRepo repository.SalesDocumentRepository) error) error
}

// DocumentPDFGenerator genera la representación impresa de un documento de venta.
type DocumentPDFGenerator interface {
	GenerateDocumentPDF(
		ctx context.Context,
		doc *entity.SalesDocument,
		company *entity.Company,
		customer *entity.Customer,
		items []*entity.SalesDocumentItem,
	) ([]byte, error)
}

// RegisterExporter genera el registro de ventas (hoja de cálculo).
type RegisterExporter interface {
	ExportRegister(ctx context.Context, company *entity.Company, docs []*entity.SalesDocument) ([]byte, error)
}

// VoucherExporter genera los comprobantes para importar en contabilidad (Tally XML).
type VoucherExporter interface {
	ExportVouchers(ctx context.Context, company *entity.Company, docs []*entity.SalesDocument) ([]byte, error)
}
