package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Facturacion-GST/internal/domain"
	"github.com/jhoicas/Facturacion-GST/internal/domain/entity"
	"github.com/jhoicas/Facturacion-GST/internal/domain/repository"
)

var _ repository.SalesPersonRepository = (*SalesPersonRepo)(nil)

// SalesPersonRepo vendedores sobre PostgreSQL.
type SalesPersonRepo struct {
	q Querier
}

// NewSalesPersonRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesPersonRepository(q Querier) *SalesPersonRepo {
	return &SalesPersonRepo{q: q}
}

const salesPersonColumns = `id, company_id, name, email, phone, active, created_at, updated_at`

func scanSalesPerson(row rowScanner) (*entity.SalesPerson, error) {
	var sp entity.SalesPerson
	if err := row.Scan(&sp.ID, &sp.CompanyID, &sp.Name, &sp.Email, &sp.Phone, &sp.Active,
		&sp.CreatedAt, &sp.UpdatedAt); err != nil {
		return nil, err
	}
	return &sp, nil
}

// Create persiste un vendedor.
func (r *SalesPersonRepo) Create(sp *entity.SalesPerson) error {
	query := `
		INSERT INTO sales_persons (` + salesPersonColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		sp.ID, sp.CompanyID, sp.Name, sp.Email, sp.Phone, sp.Active, sp.CreatedAt, sp.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sales person: %w", err)
	}
	return nil
}

// GetByID obtiene un vendedor por ID.
func (r *SalesPersonRepo) GetByID(id string) (*entity.SalesPerson, error) {
	query := `SELECT ` + salesPersonColumns + ` FROM sales_persons WHERE id = $1`
	sp, err := scanSalesPerson(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales person: %w", err)
	}
	return sp, nil
}

// ListByCompany lista los vendedores activos de la empresa.
func (r *SalesPersonRepo) ListByCompany(companyID string) ([]*entity.SalesPerson, error) {
	query := `SELECT ` + salesPersonColumns + ` FROM sales_persons WHERE company_id = $1 AND active ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list sales persons: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesPerson
	for rows.Next() {
		sp, err := scanSalesPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sales person: %w", err)
		}
		list = append(list, sp)
	}
	return list, rows.Err()
}
