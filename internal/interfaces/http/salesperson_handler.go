package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Facturacion-GST/internal/application/billing"
	"github.com/jhoicas/Facturacion-GST/internal/application/dto"
)

// SalesPersonHandler alta de vendedores.
type SalesPersonHandler struct {
	uc *billing.SalesPersonUseCase
}

// NewSalesPersonHandler construye el handler.
func NewSalesPersonHandler(uc *billing.SalesPersonUseCase) *SalesPersonHandler {
	return &SalesPersonHandler{uc: uc}
}

// Create godoc
// @Summary      Crear vendedor
// @Tags         salespersons
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        companyId  path  string                        true  "ID de la empresa"
// @Param        body       body  dto.CreateSalesPersonRequest  true  "Vendedor"
// @Success      201  {object}  dto.SalesPersonResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId}/salespersons [post]
func (h *SalesPersonHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSalesPersonRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
