package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Facturacion-GST/docs"
	"github.com/jhoicas/Facturacion-GST/internal/application/auth"
	"github.com/jhoicas/Facturacion-GST/internal/application/billing"
	"github.com/jhoicas/Facturacion-GST/internal/application/usecase"
	"github.com/jhoicas/Facturacion-GST/internal/domain/gst"
	infraexport "github.com/jhoicas/Facturacion-GST/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/Facturacion-GST/internal/infrastructure/pdf"
	"github.com/jhoicas/Facturacion-GST/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Facturacion-GST/internal/interfaces/http"
	"github.com/jhoicas/Facturacion-GST/pkg/config"
	"github.com/jhoicas/Facturacion-GST/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema de base de datos")
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	salesPersonRepo := postgres.NewSalesPersonRepository(pool)
	docRepo := postgres.NewSalesDocumentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	docCfg := billing.DocumentConfig{
		AutoRoundOff: cfg.Billing.AutoRoundOff,
		Prefixes: map[gst.DocumentKind]string{
			gst.KindInvoice:    cfg.Billing.InvoicePrefix,
			gst.KindQuotation:  cfg.Billing.QuotationPrefix,
			gst.KindSalesOrder: cfg.Billing.OrderPrefix,
			gst.KindReturn:     cfg.Billing.ReturnPrefix,
		},
		NumberPadding: cfg.Billing.NumberPadding,
	}
	documentUC := billing.NewDocumentUseCase(
		txRunner, docRepo, companyRepo, customerRepo, productRepo, salesPersonRepo, docCfg, log.Component("billing"),
	)

	// PDF y exportaciones (registro Excel, comprobantes Tally)
	pdfUC := billing.NewPDFUseCase(docRepo, companyRepo, customerRepo, infrapdf.NewMarotoPDFGenerator())
	exportUC := billing.NewExportUseCase(
		docRepo, companyRepo,
		infraexport.NewExcelRegister(),
		infraexport.NewTallyExporter(infraexport.DefaultLedgers),
	)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		TTL:    time.Duration(cfg.JWT.Expiration) * time.Minute,
		Issuer: cfg.JWT.Issuer,
	}, log.Component("auth"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "Facturación GST API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:     usecase.NewCompanyUseCase(companyRepo, cfg.Billing.DefaultModules...),
		ProductUC:     usecase.NewProductUseCase(productRepo),
		UserUC:        usecase.NewUserUseCase(userRepo),
		CustomerUC:    billing.NewCustomerUseCase(customerRepo),
		SalesPersonUC: billing.NewSalesPersonUseCase(salesPersonRepo),
		ReferenceUC:   billing.NewReferenceDataUseCase(customerRepo, productRepo, salesPersonRepo),
		DocumentUC:    documentUC,
		PDFUC:         pdfUC,
		ExportUC:      exportUC,
		AuthUC:        authUC,
		ModuleService: usecase.NewModuleService(companyRepo, time.Duration(cfg.Billing.ModuleCacheSeconds)*time.Second),
		JWTSecret:     cfg.JWT.Secret,
		JWTIssuer:     cfg.JWT.Issuer,
		Log:           log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
