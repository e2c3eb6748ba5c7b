package repository

import (
	"context"

	"github.com/jhoicas/Facturacion-GST/internal/domain/entity"
)

// DocumentFilter filtros del registro de documentos.
type DocumentFilter struct {
	CompanyID string
	Kind      string
	Status    string // vacío = todos
	Search    string // número o nombre del cliente
	Limit     int
	Offset    int
}

// SalesDocumentRepository define el puerto de persistencia para documentos de venta.
type SalesDocumentRepository interface {
	Create(ctx context.Context, doc *entity.SalesDocument) error
	CreateItem(ctx context.Context, item *entity.SalesDocumentItem) error
	GetByID(ctx context.Context, id string) (*entity.SalesDocument, error)
	GetItems(ctx context.Context, documentID string) ([]*entity.SalesDocumentItem, error)
	List(ctx context.Context, f DocumentFilter) ([]*entity.SalesDocument, int, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// NextSequence reserva el siguiente consecutivo por empresa y tipo de documento.
	NextSequence(ctx context.Context, companyID, kind string) (int64, error)
}
