package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Facturacion-GST/internal/application/billing"
	"github.com/jhoicas/Facturacion-GST/internal/application/dto"
)

// ReferenceHandler datos de referencia del formulario de documentos.
type ReferenceHandler struct {
	uc *billing.ReferenceDataUseCase
}

// NewReferenceHandler construye el handler.
func NewReferenceHandler(uc *billing.ReferenceDataUseCase) *ReferenceHandler {
	return &ReferenceHandler{uc: uc}
}

// parseListQuery lee page, page_size, search y status. Si falla, la respuesta 400 ya
// quedó escrita y ok es false.
func parseListQuery(c *fiber.Ctx) (q dto.ListQuery, ok bool) {
	if err := c.QueryParser(&q); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
		return q, false
	}
	return q, true
}

// ListCustomers godoc
// @Summary      Listar clientes
// @Tags         reference
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path   string  true   "ID de la empresa"
// @Param        page       query  int     false  "Página"  default(1)
// @Param        page_size  query  int     false  "Tamaño"  default(20)
// @Param        search     query  string  false  "Nombre, GSTIN o teléfono"
// @Success      200  {object}  dto.CustomerListResponse
// @Router       /api/companies/{companyId}/customers [get]
func (h *ReferenceHandler) ListCustomers(c *fiber.Ctx) error {
	q, ok := parseListQuery(c)
	if !ok {
		return nil
	}
	out, err := h.uc.ListCustomers(c.UserContext(), sessionFrom(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListProducts godoc
// @Summary      Listar productos
// @Tags         reference
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path   string  true   "ID de la empresa"
// @Param        page       query  int     false  "Página"  default(1)
// @Param        page_size  query  int     false  "Tamaño"  default(20)
// @Param        search     query  string  false  "SKU, nombre o HSN"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/companies/{companyId}/products [get]
func (h *ReferenceHandler) ListProducts(c *fiber.Ctx) error {
	q, ok := parseListQuery(c)
	if !ok {
		return nil
	}
	out, err := h.uc.ListProducts(c.UserContext(), sessionFrom(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListSalesPersons godoc
// @Summary      Listar vendedores activos
// @Tags         reference
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  string  true  "ID de la empresa"
// @Success      200  {array}  dto.SalesPersonResponse
// @Router       /api/companies/{companyId}/salespersons [get]
func (h *ReferenceHandler) ListSalesPersons(c *fiber.Ctx) error {
	out, err := h.uc.ListSalesPersons(c.UserContext(), sessionFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Options godoc
// @Summary      Listas cerradas (tarifas GST, estados, estados de documento)
// @Tags         reference
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path   string  true   "ID de la empresa"
// @Param        kind       query  string  false  "invoice, quotation, sales_order, sales_return"
// @Success      200  {object}  dto.OptionsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId}/options [get]
func (h *ReferenceHandler) Options(c *fiber.Ctx) error {
	out, err := h.uc.Options(c.Query("kind"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
