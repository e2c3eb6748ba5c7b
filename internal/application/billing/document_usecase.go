package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"

	"github.com/jhoicas/Facturacion-GST/internal/application/dto"
	"github.com/jhoicas/Facturacion-GST/internal/domain"
	"github.com/jhoicas/Facturacion-GST/internal/domain/entity"
	"github.com/jhoicas/Facturacion-GST/internal/domain/gst"
	"github.com/jhoicas/Facturacion-GST/internal/domain/repository"
	"github.com/jhoicas/Facturacion-GST/pkg/einvoice"
	"github.com/jhoicas/Facturacion-GST/pkg/logger"
)

// DocumentConfig numeración y redondeo de documentos.
type DocumentConfig struct {
	AutoRoundOff  bool
	Prefixes      map[gst.DocumentKind]string
	NumberPadding int
}

var defaultPrefixes = map[gst.DocumentKind]string{
	gst.KindInvoice:    "INV",
	gst.KindQuotation:  "QT",
	gst.KindSalesOrder: "SO",
	gst.KindReturn:     "SR",
}

// FormatNumber arma el número del documento: INV-000001.
func (c DocumentConfig) FormatNumber(kind gst.DocumentKind, seq int64) string {
	prefix := c.Prefixes[kind]
	if prefix == "" {
		prefix = defaultPrefixes[kind]
	}
	padding := c.NumberPadding
	if padding <= 0 {
		padding = 6
	}
	return fmt.Sprintf("%s-%0*d", prefix, padding, seq)
}

// Conversiones permitidas: cotización -> orden -> factura -> devolución.
var conversions = map[gst.DocumentKind]gst.DocumentKind{
	gst.KindQuotation:  gst.KindSalesOrder,
	gst.KindSalesOrder: gst.KindInvoice,
	gst.KindInvoice:    gst.KindReturn,
}

// ConversionTarget tipo de documento que genera Convert a partir de kind.
func ConversionTarget(kind gst.DocumentKind) (gst.DocumentKind, bool) {
	target, ok := conversions[kind]
	return target, ok
}

// DocumentUseCase cálculo, envío y ciclo de vida de documentos de venta.
type DocumentUseCase struct {
	txRunner        SalesTxRunner
	docRepo         repository.SalesDocumentRepository
	companyRepo     repository.CompanyRepository
	customerRepo    repository.CustomerRepository
	productRepo     repository.ProductRepository
	salesPersonRepo repository.SalesPersonRepository
	cfg             DocumentConfig
	log             *logger.Logger
	now             func() time.Time
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(
	txRunner SalesTxRunner,
	docRepo repository.SalesDocumentRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	salesPersonRepo repository.SalesPersonRepository,
	cfg DocumentConfig,
	log *logger.Logger,
) *DocumentUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DocumentUseCase{
		txRunner:        txRunner,
		docRepo:         docRepo,
		companyRepo:     companyRepo,
		customerRepo:    customerRepo,
		productRepo:     productRepo,
		salesPersonRepo: salesPersonRepo,
		cfg:             cfg,
		log:             log,
		now:             time.Now,
	}
}

// ─── Cálculo (sin persistencia) ──────────────────────────────────────────────

// Calculate recalcula líneas y totales de la instantánea recibida con el estado de la empresa.
func (uc *DocumentUseCase) Calculate(ctx context.Context, s Session, in dto.CalculateRequest) (*dto.CalculateResponse, error) {
	if err := s.Authorize(""); err != nil {
		return nil, err
	}
	company, err := uc.company(s.CompanyID)
	if err != nil {
		return nil, err
	}
	pos, err := normalizePlaceOfSupply(in.PlaceOfSupply)
	if err != nil {
		return nil, err
	}
	return calculate(company, pos, in.Items, in.Charges), nil
}

// ChangePlaceOfSupply vuelve a dividir el impuesto de todas las líneas para el nuevo lugar de
// suministro. gstRate, cantidad y precio de cada línea se conservan.
func (uc *DocumentUseCase) ChangePlaceOfSupply(ctx context.Context, s Session, in dto.CalculateRequest) (*dto.CalculateResponse, error) {
	return uc.Calculate(ctx, s, in)
}

// EditItem aplica la edición de un campo sobre la línea in.Index y devuelve el documento
// recalculado. Index igual a la cantidad de líneas agrega una línea nueva.
func (uc *DocumentUseCase) EditItem(ctx context.Context, s Session, in dto.EditItemRequest) (*dto.CalculateResponse, error) {
	if err := s.Authorize(""); err != nil {
		return nil, err
	}
	company, err := uc.company(s.CompanyID)
	if err != nil {
		return nil, err
	}
	pos, err := normalizePlaceOfSupply(in.PlaceOfSupply)
	if err != nil {
		return nil, err
	}

	items := append([]gst.LineItem(nil), in.Items...)
	switch {
	case in.Index == len(items):
		items = append(items, gst.NewLineItem(pos, company.StateCode))
	case in.Index < 0 || in.Index > len(items):
		return nil, fmt.Errorf("%w: línea %d fuera de rango", domain.ErrInvalidInput, in.Index)
	}

	editCtx := gst.EditContext{PlaceOfSupply: pos, HomeStateCode: company.StateCode}
	if gst.NormalizeField(in.Field) == gst.FieldProductID {
		editCtx.Products = uc.lookupProducts(s.CompanyID, cast.ToString(in.Value))
	}
	edited, err := gst.ApplyItemEdit(items[in.Index], in.Field, in.Value, editCtx)
	if err != nil {
		var fe *gst.FieldError
		if errors.As(err, &fe) {
			fe.Index = in.Index
		}
		return nil, err
	}
	items[in.Index] = edited
	return calculate(company, pos, items, in.Charges), nil
}

// lookupProducts busca el producto seleccionado. Un fallo de consulta se registra y se
// continúa con la lista vacía (la selección queda como producto desconocido).
func (uc *DocumentUseCase) lookupProducts(companyID, productID string) []gst.ProductRef {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil
	}
	products, err := uc.productRepo.GetByIDs(companyID, []string{productID})
	if err != nil {
		uc.log.Warn().Err(err).
			Str("company_id", companyID).
			Str("product_id", productID).
			Msg("billing: no se pudo consultar el producto; se continúa sin productos")
		return nil
	}
	refs := make([]gst.ProductRef, 0, len(products))
	for _, p := range products {
		refs = append(refs, productRef(p))
	}
	return refs
}

func calculate(company *entity.Company, pos string, items []gst.LineItem, charges gst.DocumentCharges) *dto.CalculateResponse {
	lines := gst.ApplyPlaceOfSupply(items, pos, company.StateCode)
	totals := gst.CalculateTotals(lines, charges, pos, company.StateCode)
	return &dto.CalculateResponse{
		Items:             lines,
		Totals:            totals,
		AmountInWords:     gst.AmountInWords(totals.GrandTotal),
		SuggestedRoundOff: gst.SuggestRoundOff(gst.PreRoundTotal(lines, charges, pos, company.StateCode)),
	}
}

// ─── Envío ───────────────────────────────────────────────────────────────────

// Submit valida, recalcula y persiste un documento del tipo indicado en una sola transacción.
func (uc *DocumentUseCase) Submit(ctx context.Context, s Session, kind gst.DocumentKind, in dto.SubmitDocumentRequest) (*dto.DocumentResponse, error) {
	if err := s.Authorize(""); err != nil {
		return nil, err
	}
	if _, ok := gst.ParseKind(string(kind)); !ok {
		return nil, fmt.Errorf("%w: tipo de documento %q", domain.ErrInvalidInput, kind)
	}
	if strings.TrimSpace(in.CustomerID) == "" {
		return nil, fmt.Errorf("%w: customer_id es obligatorio", domain.ErrInvalidInput)
	}
	if err := gst.ValidateForSubmission(in.Items, in.Charges, in.PlaceOfSupply); err != nil {
		return nil, err
	}

	company, err := uc.company(s.CompanyID)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
	}
	if customer.CompanyID != company.ID {
		return nil, domain.ErrForbidden
	}
	if in.SalesPersonID != "" {
		sp, err := uc.salesPersonRepo.GetByID(in.SalesPersonID)
		if err != nil {
			return nil, fmt.Errorf("obtener vendedor: %w", err)
		}
		if sp == nil {
			return nil, fmt.Errorf("%w: vendedor %s", domain.ErrNotFound, in.SalesPersonID)
		}
		if sp.CompanyID != company.ID {
			return nil, domain.ErrForbidden
		}
	}
	if in.ReferenceID != "" {
		if _, err := uc.owned(ctx, s, in.ReferenceID); err != nil {
			return nil, err
		}
	}

	// Sin lugar de suministro explícito se usa el estado del cliente.
	pos := in.PlaceOfSupply
	if strings.TrimSpace(pos) == "" {
		pos = customer.StateCode
	}
	pos, err = normalizePlaceOfSupply(pos)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	date, err := parseDate(in.Date, now)
	if err != nil {
		return nil, err
	}
	var dueDate *time.Time
	if in.DueDate != "" {
		d, err := parseDate(in.DueDate, now)
		if err != nil {
			return nil, err
		}
		if d.Before(date) {
			return nil, fmt.Errorf("%w: due_date anterior a la fecha del documento", domain.ErrInvalidInput)
		}
		dueDate = &d
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = gst.StatusDraft
	}
	if !gst.IsValidStatus(kind, status) {
		return nil, fmt.Errorf("%w: estado %q no válido para %s", domain.ErrInvalidInput, status, kind)
	}

	lines := gst.ApplyPlaceOfSupply(in.Items, pos, company.StateCode)
	charges := in.Charges
	if uc.cfg.AutoRoundOff && charges.RoundOff.Type == "" {
		charges.RoundOff = gst.SuggestRoundOff(gst.PreRoundTotal(lines, charges, pos, company.StateCode))
	}
	totals := gst.CalculateTotals(lines, charges, pos, company.StateCode)

	doc := &entity.SalesDocument{
		ID:            uuid.New().String(),
		CompanyID:     company.ID,
		Kind:          string(kind),
		Number:        strings.TrimSpace(in.Number),
		Date:          date,
		DueDate:       dueDate,
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		SalesPersonID: in.SalesPersonID,
		PlaceOfSupply: pos,
		ReferenceID:   in.ReferenceID,
		Status:        status,
		Notes:         in.Notes,
		CreatedBy:     s.UserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	applyCharges(doc, charges)
	applyTotals(doc, totals)

	items := make([]*entity.SalesDocumentItem, 0, len(lines))
	for i, it := range lines {
		items = append(items, itemToEntity(doc.ID, i+1, it))
	}

	autoNumber := doc.Number == ""
	err = uc.txRunner.RunSales(ctx, func(docRepo repository.SalesDocumentRepository) error {
		if autoNumber {
			seq, err := docRepo.NextSequence(ctx, company.ID, doc.Kind)
			if err != nil {
				return fmt.Errorf("reservar consecutivo: %w", err)
			}
			doc.Number = uc.cfg.FormatNumber(kind, seq)
		}
		doc.IRN = uc.irn(company, kind, doc.Number, doc.Date)
		if err := docRepo.Create(ctx, doc); err != nil {
			return err
		}
		for _, it := range items {
			if err := docRepo.CreateItem(ctx, it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("company_id", company.ID).
		Str("document_id", doc.ID).
		Str("kind", doc.Kind).
		Str("number", doc.Number).
		Str("total_amount", doc.TotalAmount.StringFixed(2)).
		Msg("billing: documento creado")
	return toDocumentResponse(doc, items), nil
}

// irn calcula el IRN para facturas y devoluciones de empresas con GSTIN. Si no se puede
// calcular (p. ej. número demasiado largo) el documento se guarda sin IRN.
func (uc *DocumentUseCase) irn(company *entity.Company, kind gst.DocumentKind, number string, date time.Time) string {
	if company.GSTIN == "" {
		return ""
	}
	var docType string
	switch kind {
	case gst.KindInvoice:
		docType = einvoice.DocTypeInvoice
	case gst.KindReturn:
		docType = einvoice.DocTypeCreditNote
	default:
		return ""
	}
	irn, err := einvoice.CalculateIRN(einvoice.IRNParams{
		SupplierGSTIN: company.GSTIN,
		DocType:       docType,
		DocNumber:     number,
		DocDate:       date,
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("company_id", company.ID).Str("number", number).Msg("billing: IRN no calculado")
		return ""
	}
	return irn
}

// ─── Consulta y ciclo de vida ────────────────────────────────────────────────

// Get devuelve el documento con sus líneas. kind vacío acepta cualquier tipo.
func (uc *DocumentUseCase) Get(ctx context.Context, s Session, kind gst.DocumentKind, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.owned(ctx, s, id)
	if err != nil {
		return nil, err
	}
	if kind != "" && doc.Kind != string(kind) {
		return nil, domain.ErrNotFound
	}
	items, err := uc.docRepo.GetItems(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("obtener líneas: %w", err)
	}
	return toDocumentResponse(doc, items), nil
}

// List registro paginado de documentos con búsqueda por número o cliente y filtro de estado.
func (uc *DocumentUseCase) List(ctx context.Context, s Session, kind gst.DocumentKind, q dto.ListQuery) (*dto.DocumentListResponse, error) {
	if err := s.Authorize(""); err != nil {
		return nil, err
	}
	q.Normalize()
	if q.Status != "" && kind != "" && !gst.IsValidStatus(kind, q.Status) {
		return nil, fmt.Errorf("%w: estado %q no válido para %s", domain.ErrInvalidInput, q.Status, kind)
	}
	docs, total, err := uc.docRepo.List(ctx, repository.DocumentFilter{
		CompanyID: s.CompanyID,
		Kind:      string(kind),
		Status:    q.Status,
		Search:    q.Search,
		Limit:     q.PageSize,
		Offset:    q.Offset(),
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.DocumentSummary, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentSummary(d))
	}
	return &dto.DocumentListResponse{Items: out, Page: dto.NewPageResponse(q, total)}, nil
}

// UpdateStatus cambia el estado dentro del conjunto cerrado del tipo. Un documento anulado
// no admite más cambios.
func (uc *DocumentUseCase) UpdateStatus(ctx context.Context, s Session, id, status string) (*dto.DocumentResponse, error) {
	doc, err := uc.owned(ctx, s, id)
	if err != nil {
		return nil, err
	}
	kind := gst.DocumentKind(doc.Kind)
	status = strings.TrimSpace(status)
	if !gst.IsValidStatus(kind, status) {
		return nil, fmt.Errorf("%w: estado %q no válido para %s", domain.ErrInvalidInput, status, kind)
	}
	if doc.Status == gst.StatusCancelled && status != gst.StatusCancelled {
		return nil, domain.ErrInvalidTransition
	}
	if err := uc.docRepo.UpdateStatus(ctx, doc.ID, status); err != nil {
		return nil, err
	}
	uc.log.Info().Str("document_id", doc.ID).Str("from", doc.Status).Str("to", status).Msg("billing: estado actualizado")
	return uc.Get(ctx, s, "", doc.ID)
}

// Convert crea el documento siguiente de la cadena (cotización -> orden -> factura ->
// devolución) copiando cliente, líneas y cargos, enlazado por reference_id.
func (uc *DocumentUseCase) Convert(ctx context.Context, s Session, id string) (*dto.DocumentResponse, error) {
	src, err := uc.owned(ctx, s, id)
	if err != nil {
		return nil, err
	}
	target, ok := ConversionTarget(gst.DocumentKind(src.Kind))
	if !ok || src.Status == gst.StatusCancelled {
		return nil, fmt.Errorf("%w: %s en estado %s no se puede convertir", domain.ErrInvalidTransition, src.Kind, src.Status)
	}
	srcItems, err := uc.docRepo.GetItems(ctx, src.ID)
	if err != nil {
		return nil, fmt.Errorf("obtener líneas: %w", err)
	}
	lines := make([]gst.LineItem, 0, len(srcItems))
	for _, it := range srcItems {
		lines = append(lines, itemFromEntity(it))
	}
	return uc.Submit(ctx, s, target, dto.SubmitDocumentRequest{
		CustomerID:    src.CustomerID,
		SalesPersonID: src.SalesPersonID,
		PlaceOfSupply: src.PlaceOfSupply,
		ReferenceID:   src.ID,
		Notes:         src.Notes,
		Items:         lines,
		Charges:       chargesFromEntity(src),
	})
}

// ─── Auxiliares ──────────────────────────────────────────────────────────────

func (uc *DocumentUseCase) company(companyID string) (*entity.Company, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, fmt.Errorf("obtener empresa: %w", err)
	}
	if company == nil {
		return nil, fmt.Errorf("%w: empresa %s", domain.ErrNotFound, companyID)
	}
	return company, nil
}

// owned carga un documento y verifica que pertenezca a la empresa de la sesión.
func (uc *DocumentUseCase) owned(ctx context.Context, s Session, id string) (*entity.SalesDocument, error) {
	if err := s.Authorize(""); err != nil {
		return nil, err
	}
	doc, err := uc.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener documento: %w", err)
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if doc.CompanyID != s.CompanyID {
		return nil, domain.ErrForbidden
	}
	return doc, nil
}

func normalizePlaceOfSupply(pos string) (string, error) {
	pos = strings.TrimSpace(pos)
	if pos == "" {
		return "", nil
	}
	if !gst.IsValidStateCode(pos) {
		return "", &gst.FieldError{Index: -1, Field: "place_of_supply", Err: gst.ErrInvalidState, Details: pos}
	}
	return gst.NormalizeStateCode(pos), nil
}

func parseDate(s string, def time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		y, m, d := def.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q (formato YYYY-MM-DD)", domain.ErrInvalidInput, s)
	}
	return t, nil
}
