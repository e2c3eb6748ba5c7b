package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Facturacion-GST/internal/domain"
	"github.com/jhoicas/Facturacion-GST/internal/domain/entity"
	"github.com/jhoicas/Facturacion-GST/internal/domain/repository"
)

var _ repository.SalesDocumentRepository = (*SalesDocumentRepo)(nil)

// SalesDocumentRepo documentos de venta y sus líneas (usable con pool o tx).
type SalesDocumentRepo struct {
	q Querier
}

// NewSalesDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesDocumentRepository(q Querier) *SalesDocumentRepo {
	return &SalesDocumentRepo{q: q}
}

const documentSelect = `
	SELECT d.id, d.company_id, d.kind, d.number, d.date, d.due_date, d.customer_id, c.name,
	       d.sales_person_id, d.place_of_supply, d.reference_id, d.status, d.notes,
	       d.freight_amount, d.freight_type, d.pf_amount, d.pf_type, d.coupon_value,
	       d.discount_type, d.discount_value, d.round_off_type, d.round_off_amount,
	       d.subtotal, d.item_discount_total, d.total_tax, d.cgst_amount, d.sgst_amount, d.igst_amount,
	       d.freight_charges, d.pf_charges, d.discount_on_all_amount, d.round_off, d.total_amount,
	       d.irn, d.created_by, d.created_at, d.updated_at
	FROM sales_documents d
	JOIN customers c ON c.id = d.customer_id`

func scanDocument(row rowScanner) (*entity.SalesDocument, error) {
	var d entity.SalesDocument
	var salesPersonID, referenceID, irn *string
	err := row.Scan(
		&d.ID, &d.CompanyID, &d.Kind, &d.Number, &d.Date, &d.DueDate, &d.CustomerID, &d.CustomerName,
		&salesPersonID, &d.PlaceOfSupply, &referenceID, &d.Status, &d.Notes,
		&d.FreightAmount, &d.FreightType, &d.PFAmount, &d.PFType, &d.CouponValue,
		&d.DiscountType, &d.DiscountValue, &d.RoundOffType, &d.RoundOffAmount,
		&d.Subtotal, &d.ItemDiscountTotal, &d.TotalTax, &d.CGSTAmount, &d.SGSTAmount, &d.IGSTAmount,
		&d.FreightCharges, &d.PFCharges, &d.DiscountOnAllAmount, &d.RoundOff, &d.TotalAmount,
		&irn, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.SalesPersonID = derefString(salesPersonID)
	d.ReferenceID = derefString(referenceID)
	d.IRN = derefString(irn)
	return &d, nil
}

// Create persiste la cabecera. El número es único por empresa y tipo.
func (r *SalesDocumentRepo) Create(ctx context.Context, doc *entity.SalesDocument) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sales_documents (
			id, company_id, kind, number, date, due_date, customer_id, sales_person_id, place_of_supply,
			reference_id, status, notes,
			freight_amount, freight_type, pf_amount, pf_type, coupon_value,
			discount_type, discount_value, round_off_type, round_off_amount,
			subtotal, item_discount_total, total_tax, cgst_amount, sgst_amount, igst_amount,
			freight_charges, pf_charges, discount_on_all_amount, round_off, total_amount,
			irn, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
		        $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33, $34, $35, $36)`
	_, err := r.q.Exec(ctx, query,
		doc.ID, doc.CompanyID, doc.Kind, doc.Number, doc.Date, doc.DueDate, doc.CustomerID,
		nullIfEmpty(doc.SalesPersonID), doc.PlaceOfSupply, nullIfEmpty(doc.ReferenceID), doc.Status, doc.Notes,
		doc.FreightAmount, doc.FreightType, doc.PFAmount, doc.PFType, doc.CouponValue,
		doc.DiscountType, doc.DiscountValue, doc.RoundOffType, doc.RoundOffAmount,
		doc.Subtotal, doc.ItemDiscountTotal, doc.TotalTax, doc.CGSTAmount, doc.SGSTAmount, doc.IGSTAmount,
		doc.FreightCharges, doc.PFCharges, doc.DiscountOnAllAmount, doc.RoundOff, doc.TotalAmount,
		nullIfEmpty(doc.IRN), nullIfEmpty(doc.CreatedBy), doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el número %s ya existe", domain.ErrDuplicate, doc.Number)
		}
		return fmt.Errorf("insert sales document: %w", err)
	}
	return nil
}

// CreateItem persiste una línea del documento.
func (r *SalesDocumentRepo) CreateItem(ctx context.Context, item *entity.SalesDocumentItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sales_document_items (
			id, document_id, position, product_id, item_code, description, hsn_code,
			quantity, unit_price, discount_percent, gst_rate, cgst_rate, sgst_rate, igst_rate,
			discount_amount, taxable_amount, tax_amount, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.DocumentID, item.Position, nullIfEmpty(item.ProductID), item.ItemCode,
		item.Description, item.HSNCode,
		item.Quantity, item.UnitPrice, item.DiscountPercent, item.GSTRate,
		item.CGSTRate, item.SGSTRate, item.IGSTRate,
		item.DiscountAmount, item.TaxableAmount, item.TaxAmount, item.TotalAmount,
	)
	if err != nil {
		return fmt.Errorf("insert sales document item: %w", err)
	}
	return nil
}

// GetByID obtiene un documento por ID con el nombre del cliente.
func (r *SalesDocumentRepo) GetByID(ctx context.Context, id string) (*entity.SalesDocument, error) {
	d, err := scanDocument(r.q.QueryRow(ctx, documentSelect+` WHERE d.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales document: %w", err)
	}
	return d, nil
}

// GetItems devuelve las líneas en el orden en que se capturaron.
func (r *SalesDocumentRepo) GetItems(ctx context.Context, documentID string) ([]*entity.SalesDocumentItem, error) {
	query := `
		SELECT id, document_id, position, product_id, item_code, description, hsn_code,
		       quantity, unit_price, discount_percent, gst_rate, cgst_rate, sgst_rate, igst_rate,
		       discount_amount, taxable_amount, tax_amount, total_amount
		FROM sales_document_items WHERE document_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list sales document items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesDocumentItem
	for rows.Next() {
		var it entity.SalesDocumentItem
		var productID *string
		if err := rows.Scan(&it.ID, &it.DocumentID, &it.Position, &productID, &it.ItemCode,
			&it.Description, &it.HSNCode,
			&it.Quantity, &it.UnitPrice, &it.DiscountPercent, &it.GSTRate,
			&it.CGSTRate, &it.SGSTRate, &it.IGSTRate,
			&it.DiscountAmount, &it.TaxableAmount, &it.TaxAmount, &it.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan sales document item: %w", err)
		}
		it.ProductID = derefString(productID)
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List registro de documentos filtrado por tipo, estado y búsqueda (número o cliente), más el total.
func (r *SalesDocumentRepo) List(ctx context.Context, f repository.DocumentFilter) ([]*entity.SalesDocument, int, error) {
	pattern := likePattern(f.Search)
	const where = `
		WHERE d.company_id = $1
		  AND ($2 = '' OR d.kind = $2)
		  AND ($3 = '' OR d.status = $3)
		  AND ($4 = '' OR d.number ILIKE $4 OR c.name ILIKE $4)`
	args := []any{f.CompanyID, f.Kind, f.Status, pattern}

	var total int
	countQuery := `SELECT COUNT(*) FROM sales_documents d JOIN customers c ON c.id = d.customer_id` + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales documents: %w", err)
	}

	query := documentSelect + where + ` ORDER BY d.date DESC, d.number DESC LIMIT $5 OFFSET $6`
	rows, err := r.q.Query(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesDocument
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan sales document: %w", err)
		}
		list = append(list, d)
	}
	return list, total, rows.Err()
}

// UpdateStatus cambia el estado del documento.
func (r *SalesDocumentRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE sales_documents SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update sales document status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// NextSequence reserva el siguiente consecutivo. El upsert bloquea la fila de la secuencia hasta
// el fin de la transacción, así dos envíos concurrentes no obtienen el mismo número.
func (r *SalesDocumentRepo) NextSequence(ctx context.Context, companyID, kind string) (int64, error) {
	const query = `
		INSERT INTO document_sequences (company_id, kind, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, kind)
		DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value`
	var next int64
	if err := r.q.QueryRow(ctx, query, companyID, kind).Scan(&next); err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", kind, err)
	}
	return next, nil
}
