package salesclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-GST/internal/application/dto"
	"github.com/jhoicas/Facturacion-GST/internal/domain"
	"github.com/jhoicas/Facturacion-GST/internal/domain/gst"
	"github.com/jhoicas/Facturacion-GST/pkg/salesclient"
)

const (
	testToken   = "tok-123"
	testCompany = "comp-1"
)

func newClient(t *testing.T, h http.HandlerFunc) *salesclient.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return salesclient.New(srv.URL, salesclient.StaticSession(testToken, testCompany))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestListCustomers_InyectaSesionYConsulta(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/companies/comp-1/customers", r.URL.Path)
		assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("page_size"))
		assert.Equal(t, "acme", r.URL.Query().Get("search"))
		writeJSON(w, http.StatusOK, dto.CustomerListResponse{
			Items: []dto.CustomerResponse{{ID: "c1", Name: "Acme Traders"}},
			Page:  dto.PageResponse{Page: 2, PageSize: 10, Total: 11},
		})
	})

	out, err := c.ListCustomers(context.Background(), dto.ListQuery{Page: 2, PageSize: 10, Search: "acme"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Acme Traders", out.Items[0].Name)
	assert.Equal(t, 11, out.Page.Total)
}

func TestSubmit_RutaPorTipo(t *testing.T) {
	cases := []struct {
		kind gst.DocumentKind
		path string
	}{
		{gst.KindInvoice, "/api/companies/comp-1/invoices"},
		{gst.KindQuotation, "/api/companies/comp-1/quotations"},
		{gst.KindSalesOrder, "/api/companies/comp-1/sales-orders"},
		{gst.KindReturn, "/api/companies/comp-1/sales-returns"},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, tc.path, r.URL.Path)
				var in dto.SubmitDocumentRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
				writeJSON(w, http.StatusCreated, dto.DocumentResponse{ID: "d1", Kind: string(tc.kind), CustomerID: in.CustomerID})
			})
			out, err := c.Submit(context.Background(), tc.kind, dto.SubmitDocumentRequest{CustomerID: "cust-9"})
			require.NoError(t, err)
			assert.Equal(t, "cust-9", out.CustomerID)
		})
	}
}

func TestSubmit_TipoDesconocido(t *testing.T) {
	c := salesclient.New("http://127.0.0.1:0", salesclient.StaticSession(testToken, testCompany))
	_, err := c.Submit(context.Background(), gst.DocumentKind("delivery_note"), dto.SubmitDocumentRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubmit_ErrorDeValidacion(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "el documento tiene errores",
			Details: []dto.FieldErrorResponse{{Index: 0, Field: "quantity", Message: "la cantidad debe ser mayor que cero (0)"}},
		})
	})

	_, err := c.Submit(context.Background(), gst.KindInvoice, dto.SubmitDocumentRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	details, ok := salesclient.IsValidation(err)
	require.True(t, ok)
	require.Len(t, details, 1)
	assert.Equal(t, "quantity", details[0].Field)

	var apiErr *salesclient.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "VALIDATION", apiErr.Code)
}

func TestErrores_MapeoDeStatus(t *testing.T) {
	cases := []struct {
		status int
		code   string
		want   error
	}{
		{http.StatusUnauthorized, "INVALID_TOKEN", domain.ErrUnauthorized},
		{http.StatusForbidden, "FORBIDDEN", domain.ErrForbidden},
		{http.StatusNotFound, "NOT_FOUND", domain.ErrNotFound},
		{http.StatusConflict, "DUPLICATE", domain.ErrDuplicate},
		{http.StatusConflict, "INVALID_TRANSITION", domain.ErrInvalidTransition},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tc.status, dto.ErrorResponse{Code: tc.code, Message: "x"})
			})
			_, err := c.GetDocument(context.Background(), "d1")
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCalculate_DevuelveTotales(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/companies/comp-1/documents/calculate", r.URL.Path)
		var in dto.CalculateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		items := gst.ApplyPlaceOfSupply(in.Items, in.PlaceOfSupply, "29")
		writeJSON(w, http.StatusOK, dto.CalculateResponse{
			Items:  items,
			Totals: gst.CalculateTotals(items, in.Charges, in.PlaceOfSupply, "29"),
		})
	})

	out, err := c.Calculate(context.Background(), dto.CalculateRequest{
		PlaceOfSupply: "29",
		Items: []gst.LineItem{{
			Quantity:  decimal.NewFromInt(1),
			UnitPrice: decimal.NewFromInt(1000),
			GSTRate:   decimal.NewFromInt(12),
		}},
	})
	require.NoError(t, err)
	assert.True(t, out.Totals.CGST.Equal(decimal.NewFromInt(60)), "got %s", out.Totals.CGST)
	assert.True(t, out.Totals.SGST.Equal(decimal.NewFromInt(60)), "got %s", out.Totals.SGST)
	assert.True(t, out.Totals.GrandTotal.Equal(decimal.NewFromInt(1120)), "got %s", out.Totals.GrandTotal)
}

func TestCancelacion_NoEntregaDatos(t *testing.T) {
	release := make(chan struct{})
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
		writeJSON(w, http.StatusOK, dto.ProductListResponse{})
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	out, err := c.ListProducts(ctx, dto.ListQuery{Search: "bolt"})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSesionIncompleta_Retorna401(t *testing.T) {
	c := salesclient.New("http://127.0.0.1:0", salesclient.StaticSession("", ""))
	_, err := c.ListSalesPersons(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestDownloadPDF(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/companies/comp-1/documents/d1/pdf", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.7"))
	})
	data, err := c.DownloadPDF(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(data))
}
