package http_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-GST/internal/application/dto"
	"github.com/jhoicas/Facturacion-GST/internal/application/usecase"
	"github.com/jhoicas/Facturacion-GST/internal/domain/entity"
	"github.com/jhoicas/Facturacion-GST/internal/domain/gst"
	apphttp "github.com/jhoicas/Facturacion-GST/internal/interfaces/http"
	"github.com/jhoicas/Facturacion-GST/pkg/logger"
)

// companyModules repositorio de empresas en memoria: solo responde módulos.
type companyModules struct {
	active map[string]bool
	checks []string
}

func (r *companyModules) Create(*entity.Company, []string) error     { return nil }
func (r *companyModules) GetByID(string) (*entity.Company, error)    { return nil, nil }
func (r *companyModules) GetByGSTIN(string) (*entity.Company, error) { return nil, nil }
func (r *companyModules) Update(*entity.Company) error               { return nil }
func (r *companyModules) List(int, int) ([]*entity.Company, error)   { return nil, nil }
func (r *companyModules) Delete(string) error                        { return nil }
func (r *companyModules) HasActiveModule(_ context.Context, _, module string) (bool, error) {
	r.checks = append(r.checks, module)
	return r.active[module], nil
}

func buildRouterApp(docs *stubDocs, modules *companyModules) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		DocumentUC:    docs,
		ModuleService: usecase.NewModuleService(modules, 0),
		JWTSecret:     testJWTSecret,
		JWTIssuer:     testIssuer,
		Log:           logger.Nop(),
	})
	return app
}

func TestRouter_SinModulos_NiEnvioNiConversion(t *testing.T) {
	docs := &stubDocs{getKind: gst.KindQuotation}
	modules := &companyModules{}
	app := buildRouterApp(docs, modules)
	base := "/api/companies/" + testCompanyID

	resp := send(t, app, http.MethodPost, base+"/sales-orders", dto.SubmitDocumentRequest{CustomerID: "cust-1"}, "sales")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "MODULE_DISABLED", decodeError(t, resp).Code)

	resp = send(t, app, http.MethodPost, base+"/documents/q-1/convert", nil, "sales")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "MODULE_DISABLED", decodeError(t, resp).Code)

	assert.Empty(t, docs.gotKind, "no debe enviarse ningún documento")
	assert.Empty(t, docs.converted, "no debe convertirse ningún documento")
	assert.Equal(t, []string{entity.ModuleOrders, entity.ModuleOrders}, modules.checks)
}

func TestRouter_Convertir_ExigeModuloDelDestino(t *testing.T) {
	cases := []struct {
		name     string
		source   gst.DocumentKind
		active   string
		wantCode int
		wantMod  string
	}{
		{"cotización a orden con ventas activo", gst.KindQuotation, entity.ModuleSales, http.StatusForbidden, entity.ModuleOrders},
		{"cotización a orden con órdenes activo", gst.KindQuotation, entity.ModuleOrders, http.StatusCreated, entity.ModuleOrders},
		{"orden a factura", gst.KindSalesOrder, entity.ModuleSales, http.StatusCreated, entity.ModuleSales},
		{"factura a devolución sin devoluciones", gst.KindInvoice, entity.ModuleSales, http.StatusForbidden, entity.ModuleReturns},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			docs := &stubDocs{getKind: tc.source}
			modules := &companyModules{active: map[string]bool{tc.active: true}}
			app := buildRouterApp(docs, modules)

			resp := send(t, app, http.MethodPost, "/api/companies/"+testCompanyID+"/documents/doc-9/convert", nil, "admin")
			defer resp.Body.Close()

			assert.Equal(t, tc.wantCode, resp.StatusCode)
			assert.Equal(t, []string{tc.wantMod}, modules.checks)
			if tc.wantCode == http.StatusCreated {
				assert.Equal(t, []string{"doc-9"}, docs.converted)
			} else {
				assert.Empty(t, docs.converted)
			}
		})
	}
}

func TestRouter_Convertir_SinDestinoLlegaAlHandler(t *testing.T) {
	docs := &stubDocs{getKind: gst.KindReturn}
	modules := &companyModules{}
	app := buildRouterApp(docs, modules)

	resp := send(t, app, http.MethodPost, "/api/companies/"+testCompanyID+"/documents/sr-1/convert", nil, "sales")
	defer resp.Body.Close()

	require.Equal(t, []string{"sr-1"}, docs.converted)
	assert.Empty(t, modules.checks)
}

func TestRouter_Convertir_DocumentoInexistente(t *testing.T) {
	modules := &companyModules{}
	app := buildRouterApp(&stubDocs{}, modules)

	resp := send(t, app, http.MethodPost, "/api/companies/"+testCompanyID+"/documents/missing/convert", nil, "sales")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Empty(t, modules.checks)
}
