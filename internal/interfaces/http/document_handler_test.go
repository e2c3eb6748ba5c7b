package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-GST/internal/application/billing"
	"github.com/jhoicas/Facturacion-GST/internal/application/dto"
	"github.com/jhoicas/Facturacion-GST/internal/domain"
	"github.com/jhoicas/Facturacion-GST/internal/domain/gst"
	apphttp "github.com/jhoicas/Facturacion-GST/internal/interfaces/http"
)

// stubDocs implementa el servicio de documentos con respuestas fijas.
type stubDocs struct {
	submitErr   error
	gotKind     gst.DocumentKind
	gotSession  billing.Session
	statusErr   error
	lastStatus  string
	calculateFn func(in dto.CalculateRequest) (*dto.CalculateResponse, error)
	getKind     gst.DocumentKind
	converted   []string
}

func (s *stubDocs) Calculate(_ context.Context, sess billing.Session, in dto.CalculateRequest) (*dto.CalculateResponse, error) {
	s.gotSession = sess
	if s.calculateFn != nil {
		return s.calculateFn(in)
	}
	return &dto.CalculateResponse{Items: in.Items}, nil
}

func (s *stubDocs) ChangePlaceOfSupply(ctx context.Context, sess billing.Session, in dto.CalculateRequest) (*dto.CalculateResponse, error) {
	return s.Calculate(ctx, sess, in)
}

func (s *stubDocs) EditItem(_ context.Context, _ billing.Session, _ dto.EditItemRequest) (*dto.CalculateResponse, error) {
	return &dto.CalculateResponse{}, nil
}

func (s *stubDocs) Submit(_ context.Context, sess billing.Session, kind gst.DocumentKind, in dto.SubmitDocumentRequest) (*dto.DocumentResponse, error) {
	s.gotKind = kind
	s.gotSession = sess
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	return &dto.DocumentResponse{ID: "doc-1", Kind: string(kind), Number: "INV-000001", Status: "draft", CustomerID: in.CustomerID}, nil
}

func (s *stubDocs) Get(_ context.Context, _ billing.Session, _ gst.DocumentKind, id string) (*dto.DocumentResponse, error) {
	if id == "missing" {
		return nil, domain.ErrNotFound
	}
	return &dto.DocumentResponse{ID: id, Kind: string(s.getKind)}, nil
}

func (s *stubDocs) List(_ context.Context, _ billing.Session, kind gst.DocumentKind, _ dto.ListQuery) (*dto.DocumentListResponse, error) {
	s.gotKind = kind
	return &dto.DocumentListResponse{Items: []dto.DocumentSummary{}}, nil
}

func (s *stubDocs) UpdateStatus(_ context.Context, _ billing.Session, id, status string) (*dto.DocumentResponse, error) {
	s.lastStatus = status
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	return &dto.DocumentResponse{ID: id, Status: status}, nil
}

func (s *stubDocs) Convert(_ context.Context, _ billing.Session, id string) (*dto.DocumentResponse, error) {
	s.converted = append(s.converted, id)
	return &dto.DocumentResponse{ID: "doc-2", ReferenceID: id}, nil
}

type stubPDF struct{}

func (stubPDF) DownloadPDF(_ context.Context, _ billing.Session, documentID string) ([]byte, string, error) {
	return []byte("%PDF-1.4 stub"), "INV-000001.pdf", nil
}

type stubExports struct{}

func (stubExports) ExportRegister(_ context.Context, _ billing.Session, kind gst.DocumentKind, _ string) ([]byte, string, error) {
	return []byte("xlsx"), string(kind) + "-register.xlsx", nil
}

func (stubExports) ExportTally(_ context.Context, _ billing.Session, kind gst.DocumentKind) ([]byte, string, error) {
	if kind == gst.KindQuotation {
		return nil, "", domain.ErrInvalidInput
	}
	return []byte("<ENVELOPE/>"), "tally.xml", nil
}

// buildDocumentApp monta las rutas de documentos con auth y verificación de empresa.
func buildDocumentApp(docs *stubDocs) *fiber.App {
	h := apphttp.NewDocumentHandler(docs, stubPDF{}, stubExports{})
	app := fiber.New()
	company := app.Group("/companies/:companyId", apphttp.AuthMiddleware(testJWTSecret, testIssuer), apphttp.RequireCompany())
	company.Post("/documents/calculate", h.Calculate)
	company.Get("/documents/:id", h.GetByID)
	company.Patch("/documents/:id/status", h.UpdateStatus)
	company.Get("/documents/:id/pdf", h.DownloadPDF)
	company.Post("/invoices", h.Submit(gst.KindInvoice))
	company.Get("/quotations/export/tally", h.ExportTally(gst.KindQuotation))
	company.Get("/invoices/export/tally", h.ExportTally(gst.KindInvoice))
	return app
}

func send(t *testing.T, app *fiber.App, method, path string, body any, role string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestDocumentHandler_Submit_Created(t *testing.T) {
	docs := &stubDocs{}
	app := buildDocumentApp(docs)

	resp := send(t, app, http.MethodPost, "/companies/"+testCompanyID+"/invoices",
		dto.SubmitDocumentRequest{CustomerID: "cust-1"}, "sales")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, gst.KindInvoice, docs.gotKind)
	assert.Equal(t, testCompanyID, docs.gotSession.CompanyID)
	assert.Equal(t, testUserID, docs.gotSession.UserID)

	var out dto.DocumentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "INV-000001", out.Number)
	assert.Equal(t, "cust-1", out.CustomerID)
}

func TestDocumentHandler_Submit_ValidationDetails(t *testing.T) {
	docs := &stubDocs{submitErr: gst.ValidationErrors{
		{Index: 0, Field: gst.FieldQuantity, Err: gst.ErrNonPositiveQty, Details: "0"},
		{Index: -1, Field: "freight.type", Err: gst.ErrInvalidChargeType, Details: "weird"},
	}}
	app := buildDocumentApp(docs)

	resp := send(t, app, http.MethodPost, "/companies/"+testCompanyID+"/invoices",
		dto.SubmitDocumentRequest{CustomerID: "cust-1"}, "admin")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := decodeError(t, resp)
	assert.Equal(t, "VALIDATION", out.Code)
	require.Len(t, out.Details, 2)
	assert.Equal(t, 0, out.Details[0].Index)
	assert.Equal(t, gst.FieldQuantity, out.Details[0].Field)
	assert.Equal(t, -1, out.Details[1].Index)
	assert.Contains(t, out.Details[1].Message, "weird")
}

func TestDocumentHandler_Submit_NumeroDuplicado_Retorna409(t *testing.T) {
	app := buildDocumentApp(&stubDocs{submitErr: domain.ErrDuplicate})

	resp := send(t, app, http.MethodPost, "/companies/"+testCompanyID+"/invoices",
		dto.SubmitDocumentRequest{CustomerID: "cust-1", Number: "INV-1"}, "admin")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decodeError(t, resp).Code)
}

func TestDocumentHandler_EmpresaAjena_Retorna403(t *testing.T) {
	docs := &stubDocs{}
	app := buildDocumentApp(docs)

	resp := send(t, app, http.MethodPost, "/companies/otra-empresa/invoices",
		dto.SubmitDocumentRequest{CustomerID: "cust-1"}, "admin")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Empty(t, docs.gotKind, "el caso de uso no debe ejecutarse")
}

func TestDocumentHandler_Calculate_DevuelveLineas(t *testing.T) {
	docs := &stubDocs{calculateFn: func(in dto.CalculateRequest) (*dto.CalculateResponse, error) {
		items := gst.ApplyPlaceOfSupply(in.Items, in.PlaceOfSupply, "29")
		return &dto.CalculateResponse{Items: items, Totals: gst.CalculateTotals(items, in.Charges, in.PlaceOfSupply, "29")}, nil
	}}
	app := buildDocumentApp(docs)

	in := dto.CalculateRequest{
		PlaceOfSupply: "27",
		Items: []gst.LineItem{{
			Quantity:  decimal.NewFromInt(2),
			UnitPrice: decimal.NewFromInt(100),
			GSTRate:   decimal.NewFromInt(18),
		}},
	}
	resp := send(t, app, http.MethodPost, "/companies/"+testCompanyID+"/documents/calculate", in, "accounts")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.CalculateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Items, 1)
	assert.True(t, out.Totals.IGST.Equal(decimal.NewFromInt(36)), "inter-estatal: IGST 36, got %s", out.Totals.IGST)
	assert.True(t, out.Totals.CGST.IsZero())
	assert.True(t, out.Totals.GrandTotal.Equal(decimal.NewFromInt(236)), "got %s", out.Totals.GrandTotal)
}

func TestDocumentHandler_GetByID_NoEncontrado(t *testing.T) {
	app := buildDocumentApp(&stubDocs{})

	resp := send(t, app, http.MethodGet, "/companies/"+testCompanyID+"/documents/missing", nil, "sales")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)
}

func TestDocumentHandler_UpdateStatus_TransicionInvalida(t *testing.T) {
	docs := &stubDocs{statusErr: domain.ErrInvalidTransition}
	app := buildDocumentApp(docs)

	resp := send(t, app, http.MethodPatch, "/companies/"+testCompanyID+"/documents/doc-1/status",
		dto.UpdateStatusRequest{Status: "draft"}, "admin")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "draft", docs.lastStatus)
	assert.Equal(t, "INVALID_TRANSITION", decodeError(t, resp).Code)
}

func TestDocumentHandler_DownloadPDF_Headers(t *testing.T) {
	app := buildDocumentApp(&stubDocs{})

	resp := send(t, app, http.MethodGet, "/companies/"+testCompanyID+"/documents/doc-1/pdf", nil, "sales")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="INV-000001.pdf"`)
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
}

func TestDocumentHandler_ExportTally(t *testing.T) {
	app := buildDocumentApp(&stubDocs{})

	resp := send(t, app, http.MethodGet, "/companies/"+testCompanyID+"/invoices/export/tally", nil, "accounts")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "xml")

	resp2 := send(t, app, http.MethodGet, "/companies/"+testCompanyID+"/quotations/export/tally", nil, "accounts")
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}
