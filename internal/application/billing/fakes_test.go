package billing_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/Facturacion-GST/internal/domain"
	"github.com/jhoicas/Facturacion-GST/internal/domain/entity"
	"github.com/jhoicas/Facturacion-GST/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func (r *fakeCompanyRepo) Create(c *entity.Company, _ []string) error {
	r.companies[c.ID] = c
	return nil
}
func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return r.companies[id], nil
}
func (r *fakeCompanyRepo) GetByGSTIN(gstin string) (*entity.Company, error) {
	for _, c := range r.companies {
		if c.GSTIN == gstin {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeCompanyRepo) Update(c *entity.Company) error { r.companies[c.ID] = c; return nil }
func (r *fakeCompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	return nil, nil
}
func (r *fakeCompanyRepo) Delete(id string) error { delete(r.companies, id); return nil }
func (r *fakeCompanyRepo) HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error) {
	return true, nil
}

type fakeCustomerRepo struct {
	customers []*entity.Customer
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	r.customers = append(r.customers, c)
	return nil
}
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeCustomerRepo) GetByCompanyAndGSTIN(companyID, gstin string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.CompanyID == companyID && c.GSTIN == gstin {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeCustomerRepo) Search(companyID, search string, limit, offset int) ([]*entity.Customer, int, error) {
	var matched []*entity.Customer
	for _, c := range r.customers {
		if c.CompanyID == companyID && strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			matched = append(matched, c)
		}
	}
	return paginate(matched, limit, offset), len(matched), nil
}
func (r *fakeCustomerRepo) Update(c *entity.Customer) error { return nil }
func (r *fakeCustomerRepo) Delete(id string) error          { return nil }

type fakeProductRepo struct {
	products []*entity.Product
	err      error // simula fallos de consulta
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.products = append(r.products, p)
	return nil
}
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) GetByIDs(companyID string, ids []string) ([]*entity.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*entity.Product
	for _, p := range r.products {
		for _, id := range ids {
			if p.ID == id && p.CompanyID == companyID {
				out = append(out, p)
			}
		}
	}
	return out, nil
}
func (r *fakeProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { return nil }
func (r *fakeProductRepo) Search(companyID, search string, limit, offset int) ([]*entity.Product, int, error) {
	var matched []*entity.Product
	for _, p := range r.products {
		if p.CompanyID == companyID {
			matched = append(matched, p)
		}
	}
	return paginate(matched, limit, offset), len(matched), nil
}
func (r *fakeProductRepo) Delete(id string) error { return nil }

type fakeSalesPersonRepo struct {
	people []*entity.SalesPerson
}

func (r *fakeSalesPersonRepo) Create(sp *entity.SalesPerson) error {
	r.people = append(r.people, sp)
	return nil
}
func (r *fakeSalesPersonRepo) GetByID(id string) (*entity.SalesPerson, error) {
	for _, sp := range r.people {
		if sp.ID == id {
			return sp, nil
		}
	}
	return nil, nil
}
func (r *fakeSalesPersonRepo) ListByCompany(companyID string) ([]*entity.SalesPerson, error) {
	var out []*entity.SalesPerson
	for _, sp := range r.people {
		if sp.CompanyID == companyID {
			out = append(out, sp)
		}
	}
	return out, nil
}

// fakeDocRepo repositorio de documentos. createItemErr hace fallar la inserción de líneas.
type fakeDocRepo struct {
	mu            sync.Mutex
	docs          map[string]*entity.SalesDocument
	items         map[string][]*entity.SalesDocumentItem
	seq           map[string]int64
	createItemErr error
}

func newFakeDocRepo() *fakeDocRepo {
	return &fakeDocRepo{
		docs:  map[string]*entity.SalesDocument{},
		items: map[string][]*entity.SalesDocumentItem{},
		seq:   map[string]int64{},
	}
}

func (r *fakeDocRepo) Create(ctx context.Context, d *entity.SalesDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.docs {
		if existing.CompanyID == d.CompanyID && existing.Kind == d.Kind && existing.Number == d.Number {
			return domain.ErrDuplicate
		}
	}
	cp := *d
	r.docs[d.ID] = &cp
	return nil
}
func (r *fakeDocRepo) CreateItem(ctx context.Context, it *entity.SalesDocumentItem) error {
	if r.createItemErr != nil {
		return r.createItemErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[it.DocumentID] = append(r.items[it.DocumentID], it)
	return nil
}
func (r *fakeDocRepo) GetByID(ctx context.Context, id string) (*entity.SalesDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}
func (r *fakeDocRepo) GetItems(ctx context.Context, documentID string) ([]*entity.SalesDocumentItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[documentID], nil
}
func (r *fakeDocRepo) List(ctx context.Context, f repository.DocumentFilter) ([]*entity.SalesDocument, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.SalesDocument
	for _, d := range r.docs {
		if d.CompanyID != f.CompanyID || (f.Kind != "" && d.Kind != f.Kind) || (f.Status != "" && d.Status != f.Status) {
			continue
		}
		if f.Search != "" && !strings.Contains(d.Number, f.Search) && !strings.Contains(d.CustomerName, f.Search) {
			continue
		}
		matched = append(matched, d)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Number < matched[j].Number })
	return paginate(matched, f.Limit, f.Offset), len(matched), nil
}
func (r *fakeDocRepo) UpdateStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.Status = status
	return nil
}
func (r *fakeDocRepo) NextSequence(ctx context.Context, companyID, kind string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq[companyID+"/"+kind]++
	return r.seq[companyID+"/"+kind], nil
}

func (r *fakeDocRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.docs)
}

// fakeTx simula la transacción: trabaja sobre una copia y solo la publica si fn no falla.
type fakeTx struct {
	repo *fakeDocRepo
}

func (t *fakeTx) RunSales(ctx context.Context, fn func(docRepo repository.SalesDocumentRepository) error) error {
	t.repo.mu.Lock()
	staged := newFakeDocRepo()
	for k, v := range t.repo.docs {
		staged.docs[k] = v
	}
	for k, v := range t.repo.items {
		staged.items[k] = v
	}
	for k, v := range t.repo.seq {
		staged.seq[k] = v
	}
	staged.createItemErr = t.repo.createItemErr
	t.repo.mu.Unlock()

	if err := fn(staged); err != nil {
		return err
	}

	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	t.repo.docs, t.repo.items, t.repo.seq = staged.docs, staged.items, staged.seq
	return nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}

var errDBDown = errors.New("conexión rechazada")
