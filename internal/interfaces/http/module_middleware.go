package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Facturacion-GST/internal/application/billing"
	"github.com/jhoicas/Facturacion-GST/internal/application/dto"
	"github.com/jhoicas/Facturacion-GST/internal/application/usecase"
	"github.com/jhoicas/Facturacion-GST/internal/domain"
	"github.com/jhoicas/Facturacion-GST/internal/domain/gst"
	"github.com/jhoicas/Facturacion-GST/pkg/logger"
)

// moduleChecker lo implementa *usecase.ModuleService.
type moduleChecker interface {
	HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error)
}

// RequireModule corta las rutas de un tipo de documento cuando la empresa de la sesión
// no tiene contratado su módulo. Va después de AuthMiddleware.
//
//   - 403 MODULE_DISABLED: módulo no contratado o vencido.
//   - 503 MODULE_CHECK_FAILED: la consulta falló.
func RequireModule(kind gst.DocumentKind, checker moduleChecker, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetCompanyID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id no encontrado en el token",
			})
		}
		return checkModule(c, kind, checker, log)
	}
}

// RequireConvertModule exige el módulo del documento que generaría la conversión de :id
// (una cotización pide el módulo de órdenes, una orden el de ventas, una factura el de devoluciones).
// Si el documento no admite conversión deja que el handler responda la transición inválida.
func RequireConvertModule(docs DocumentService, checker moduleChecker, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetCompanyID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id no encontrado en el token",
			})
		}
		src, err := docs.Get(c.UserContext(), sessionFrom(c), "", c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		target, ok := billing.ConversionTarget(gst.DocumentKind(src.Kind))
		if !ok {
			return c.Next()
		}
		return checkModule(c, target, checker, log)
	}
}

func checkModule(c *fiber.Ctx, kind gst.DocumentKind, checker moduleChecker, log *logger.Logger) error {
	companyID := GetCompanyID(c)
	module := usecase.ModuleFor(kind)
	active, err := checker.HasActiveModule(c.UserContext(), companyID, module)
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "tipo de documento desconocido: " + string(kind),
		})
	}
	if err != nil {
		log.Error().Err(err).Str("company_id", companyID).Str("module", module).Msg("http: verificación de módulo falló")
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code:    "MODULE_CHECK_FAILED",
			Message: "no se pudo verificar el módulo, intente más tarde",
		})
	}
	if !active {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "MODULE_DISABLED",
			Message: "el módulo '" + module + "' no está activo para esta empresa",
		})
	}
	return c.Next()
}
