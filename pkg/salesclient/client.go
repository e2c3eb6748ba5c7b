// Package salesclient es el cliente Go de la API de ventas GST: datos de referencia,
// cálculo en vivo y envío de documentos. La sesión (token y empresa) se inyecta; el
// cliente nunca la guarda ni la lee de almacenamiento global.
package salesclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Facturacion-GST/internal/application/dto"
	"github.com/jhoicas/Facturacion-GST/internal/domain"
	"github.com/jhoicas/Facturacion-GST/internal/domain/gst"
)

// maxBody límite de lectura de respuestas JSON; los PDF usan maxFileBody.
const (
	maxBody     = 4 << 20
	maxFileBody = 32 << 20
)

// Session credenciales de la petición en curso.
type Session struct {
	Token     string
	CompanyID string
}

// SessionFunc entrega la sesión vigente en cada llamada (p. ej. renovando el token).
type SessionFunc func(ctx context.Context) (Session, error)

// StaticSession sesión fija, útil en scripts y tests.
func StaticSession(token, companyID string) SessionFunc {
	return func(context.Context) (Session, error) {
		return Session{Token: token, CompanyID: companyID}, nil
	}
}

// Client cliente HTTP de la API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    SessionFunc
}

// Option configura el cliente.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (transporte, proxies, timeouts).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New construye el cliente. baseURL sin la ruta /api (ej. http://localhost:8080).
func New(baseURL string, session SessionFunc, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		session:    session,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// APIError respuesta de error de la API.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details []dto.FieldErrorResponse
}

func (e *APIError) Error() string {
	return fmt.Sprintf("salesclient: %d %s: %s", e.Status, e.Code, e.Message)
}

// Unwrap traduce el status HTTP al error de dominio equivalente para usar errors.Is.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest:
		return domain.ErrInvalidInput
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		switch e.Code {
		case "DUPLICATE":
			return domain.ErrDuplicate
		case "INVALID_TRANSITION":
			return domain.ErrInvalidTransition
		}
		return domain.ErrConflict
	}
	return nil
}

var kindPaths = map[gst.DocumentKind]string{
	gst.KindInvoice:    "invoices",
	gst.KindQuotation:  "quotations",
	gst.KindSalesOrder: "sales-orders",
	gst.KindReturn:     "sales-returns",
}

func kindPath(kind gst.DocumentKind) (string, error) {
	p, ok := kindPaths[kind]
	if !ok {
		return "", fmt.Errorf("%w: tipo de documento %q", domain.ErrInvalidInput, kind)
	}
	return p, nil
}

// ─── Auth ────────────────────────────────────────────────────────────────────

// Login no usa la sesión: devuelve el token con el que armarla.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	err := c.do(ctx, "", http.MethodPost, "/api/auth/login", nil, dto.LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ─── Datos de referencia ─────────────────────────────────────────────────────

// ListCustomers clientes de la empresa de la sesión.
func (c *Client) ListCustomers(ctx context.Context, q dto.ListQuery) (*dto.CustomerListResponse, error) {
	var out dto.CustomerListResponse
	if err := c.companyCall(ctx, http.MethodGet, "/customers", listValues(q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListProducts productos de la empresa de la sesión.
func (c *Client) ListProducts(ctx context.Context, q dto.ListQuery) (*dto.ProductListResponse, error) {
	var out dto.ProductListResponse
	if err := c.companyCall(ctx, http.MethodGet, "/products", listValues(q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListSalesPersons vendedores activos.
func (c *Client) ListSalesPersons(ctx context.Context) ([]dto.SalesPersonResponse, error) {
	var out []dto.SalesPersonResponse
	if err := c.companyCall(ctx, http.MethodGet, "/salespersons", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Options tarifas GST, estados de la India y, si se indica el tipo, sus estados de documento.
func (c *Client) Options(ctx context.Context, kind gst.DocumentKind) (*dto.OptionsResponse, error) {
	var q url.Values
	if kind != "" {
		q = url.Values{"kind": {string(kind)}}
	}
	var out dto.OptionsResponse
	if err := c.companyCall(ctx, http.MethodGet, "/options", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ─── Documentos ──────────────────────────────────────────────────────────────

// Calculate recalcula líneas y totales en el servidor.
func (c *Client) Calculate(ctx context.Context, in dto.CalculateRequest) (*dto.CalculateResponse, error) {
	return c.calc(ctx, "/documents/calculate", in)
}

// ChangePlaceOfSupply re-deriva el reparto CGST/SGST/IGST para el nuevo lugar de suministro.
func (c *Client) ChangePlaceOfSupply(ctx context.Context, in dto.CalculateRequest) (*dto.CalculateResponse, error) {
	return c.calc(ctx, "/documents/place-of-supply", in)
}

// EditItem aplica la edición de un campo de una línea.
func (c *Client) EditItem(ctx context.Context, in dto.EditItemRequest) (*dto.CalculateResponse, error) {
	return c.calc(ctx, "/documents/edit-item", in)
}

func (c *Client) calc(ctx context.Context, path string, body any) (*dto.CalculateResponse, error) {
	var out dto.CalculateResponse
	if err := c.companyCall(ctx, http.MethodPost, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Submit envía el documento; los totales los recalcula el servidor.
func (c *Client) Submit(ctx context.Context, kind gst.DocumentKind, in dto.SubmitDocumentRequest) (*dto.DocumentResponse, error) {
	p, err := kindPath(kind)
	if err != nil {
		return nil, err
	}
	var out dto.DocumentResponse
	if err := c.companyCall(ctx, http.MethodPost, "/"+p, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListDocuments registro de documentos del tipo indicado.
func (c *Client) ListDocuments(ctx context.Context, kind gst.DocumentKind, q dto.ListQuery) (*dto.DocumentListResponse, error) {
	p, err := kindPath(kind)
	if err != nil {
		return nil, err
	}
	var out dto.DocumentListResponse
	if err := c.companyCall(ctx, http.MethodGet, "/"+p, listValues(q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDocument documento con líneas y totales.
func (c *Client) GetDocument(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	var out dto.DocumentResponse
	if err := c.companyCall(ctx, http.MethodGet, "/documents/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DownloadPDF devuelve el PDF del documento.
func (c *Client) DownloadPDF(ctx context.Context, id string) ([]byte, error) {
	s, err := c.session(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := c.send(ctx, s.Token, http.MethodGet, companyPath(s, "/documents/"+url.PathEscape(id)+"/pdf"), nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFileBody))
	if err != nil {
		return nil, fmt.Errorf("salesclient: leer PDF: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return data, nil
}

// ─── Transporte ──────────────────────────────────────────────────────────────

func (c *Client) companyCall(ctx context.Context, method, path string, q url.Values, body, out any) error {
	s, err := c.session(ctx)
	if err != nil {
		return fmt.Errorf("salesclient: sesión: %w", err)
	}
	if s.Token == "" || s.CompanyID == "" {
		return domain.ErrUnauthorized
	}
	return c.do(ctx, s.Token, method, companyPath(s, path), q, body, out)
}

func companyPath(s Session, path string) string {
	return "/api/companies/" + url.PathEscape(s.CompanyID) + path
}

func (c *Client) do(ctx context.Context, token, method, path string, q url.Values, body, out any) error {
	resp, err := c.send(ctx, token, method, path, q, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(out); err != nil {
		return fmt.Errorf("salesclient: decodificar respuesta: %w", err)
	}
	// Una respuesta que llega después de cancelar no se entrega.
	return ctx.Err()
}

func (c *Client) send(ctx context.Context, token, method, path string, q url.Values, body any) (*http.Response, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("salesclient: serializar request: %w", err)
		}
		r = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, r)
	if err != nil {
		return nil, fmt.Errorf("salesclient: crear request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("salesclient: %s %s: %w", method, path, err)
	}
	return resp, nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Code: http.StatusText(resp.StatusCode)}
	var body dto.ErrorResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err := json.Unmarshal(raw, &body); err == nil && body.Code != "" {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
		apiErr.Details = body.Details
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}

func listValues(q dto.ListQuery) url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	return v
}

// IsValidation informa si err es un rechazo de validación y devuelve sus detalles por campo.
func IsValidation(err error) ([]dto.FieldErrorResponse, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
		return apiErr.Details, true
	}
	return nil, false
}
