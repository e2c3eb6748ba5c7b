package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Facturacion-GST/internal/application/auth"
	"github.com/jhoicas/Facturacion-GST/internal/application/billing"
	"github.com/jhoicas/Facturacion-GST/internal/application/usecase"
	"github.com/jhoicas/Facturacion-GST/internal/domain/entity"
	"github.com/jhoicas/Facturacion-GST/internal/domain/gst"
	"github.com/jhoicas/Facturacion-GST/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC     *usecase.CompanyUseCase
	ProductUC     *usecase.ProductUseCase
	UserUC        *usecase.UserUseCase
	CustomerUC    *billing.CustomerUseCase
	SalesPersonUC *billing.SalesPersonUseCase
	ReferenceUC   *billing.ReferenceDataUseCase
	DocumentUC    DocumentService
	PDFUC         *billing.PDFUseCase
	ExportUC      *billing.ExportUseCase
	AuthUC        *auth.AuthUseCase
	ModuleService *usecase.ModuleService
	JWTSecret     string
	JWTIssuer     string
	Log           *logger.Logger
}

// kindRoutes segmento de URL de cada tipo de documento.
var kindRoutes = []struct {
	path string
	kind gst.DocumentKind
}{
	{"/invoices", gst.KindInvoice},
	{"/quotations", gst.KindQuotation},
	{"/sales-orders", gst.KindSalesOrder},
	{"/sales-returns", gst.KindReturn},
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Alta de empresa (público: es el primer paso antes de registrar usuarios)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	api.Post("/companies", companyHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	protected.Get("/companies", RequireRole(entity.RoleAdmin), companyHandler.List)

	userHandler := NewUserHandler(deps.UserUC)
	protected.Get("/me", userHandler.Me)

	company := protected.Group("/companies/:companyId", RequireCompany())
	company.Get("/", companyHandler.GetByID)
	company.Put("/", RequireRole(entity.RoleAdmin), companyHandler.Update)
	company.Get("/users", RequireRole(entity.RoleAdmin), userHandler.List)
	company.Post("/users", RequireRole(entity.RoleAdmin), authHandler.CreateUser)

	writers := RequireRole(entity.RoleAdmin, entity.RoleSales)
	accounts := RequireRole(entity.RoleAdmin, entity.RoleAccounts)

	// Datos de referencia
	refHandler := NewReferenceHandler(deps.ReferenceUC)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	productHandler := NewProductHandler(deps.ProductUC)
	salesPersonHandler := NewSalesPersonHandler(deps.SalesPersonUC)

	customers := company.Group("/customers")
	customers.Get("/", refHandler.ListCustomers)
	customers.Post("/", writers, customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)

	products := company.Group("/products")
	products.Get("/", refHandler.ListProducts)
	products.Post("/", RequireRole(entity.RoleAdmin), productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole(entity.RoleAdmin), productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	salesPersons := company.Group("/salespersons")
	salesPersons.Get("/", refHandler.ListSalesPersons)
	salesPersons.Post("/", RequireRole(entity.RoleAdmin), salesPersonHandler.Create)

	company.Get("/options", refHandler.Options)

	// Documentos: cálculo en vivo y operaciones por ID
	docHandler := NewDocumentHandler(deps.DocumentUC, deps.PDFUC, deps.ExportUC)
	documents := company.Group("/documents")
	documents.Post("/calculate", docHandler.Calculate)
	documents.Post("/place-of-supply", docHandler.ChangePlaceOfSupply)
	documents.Post("/edit-item", docHandler.EditItem)
	documents.Get("/:id", docHandler.GetByID)
	documents.Patch("/:id/status", writers, docHandler.UpdateStatus)
	documents.Post("/:id/convert", writers, RequireConvertModule(deps.DocumentUC, deps.ModuleService, deps.Log), docHandler.Convert)
	documents.Get("/:id/pdf", docHandler.DownloadPDF)

	// Registro, envío y exportación por tipo de documento, cada uno tras su módulo
	for _, kr := range kindRoutes {
		g := company.Group(kr.path, RequireModule(kr.kind, deps.ModuleService, deps.Log))
		g.Get("/", docHandler.List(kr.kind))
		g.Post("/", writers, docHandler.Submit(kr.kind))
		g.Get("/export/register", accounts, docHandler.ExportRegister(kr.kind))
		g.Get("/export/tally", accounts, docHandler.ExportTally(kr.kind))
	}
}
