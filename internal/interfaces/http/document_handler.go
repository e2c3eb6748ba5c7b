package http

import (
	"context"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Facturacion-GST/internal/application/billing"
	"github.com/jhoicas/Facturacion-GST/internal/application/dto"
	"github.com/jhoicas/Facturacion-GST/internal/domain/gst"
)

// DocumentService operaciones de documentos que usan el handler y el router (lo implementa *billing.DocumentUseCase).
type DocumentService interface {
	Calculate(ctx context.Context, s billing.Session, in dto.CalculateRequest) (*dto.CalculateResponse, error)
	ChangePlaceOfSupply(ctx context.Context, s billing.Session, in dto.CalculateRequest) (*dto.CalculateResponse, error)
	EditItem(ctx context.Context, s billing.Session, in dto.EditItemRequest) (*dto.CalculateResponse, error)
	Submit(ctx context.Context, s billing.Session, kind gst.DocumentKind, in dto.SubmitDocumentRequest) (*dto.DocumentResponse, error)
	Get(ctx context.Context, s billing.Session, kind gst.DocumentKind, id string) (*dto.DocumentResponse, error)
	List(ctx context.Context, s billing.Session, kind gst.DocumentKind, q dto.ListQuery) (*dto.DocumentListResponse, error)
	UpdateStatus(ctx context.Context, s billing.Session, id, status string) (*dto.DocumentResponse, error)
	Convert(ctx context.Context, s billing.Session, id string) (*dto.DocumentResponse, error)
}

type pdfService interface {
	DownloadPDF(ctx context.Context, s billing.Session, documentID string) ([]byte, string, error)
}

type exportService interface {
	ExportRegister(ctx context.Context, s billing.Session, kind gst.DocumentKind, status string) ([]byte, string, error)
	ExportTally(ctx context.Context, s billing.Session, kind gst.DocumentKind) ([]byte, string, error)
}

// DocumentHandler cálculo en vivo, envío, registro, PDF y exportación de documentos de venta.
type DocumentHandler struct {
	docs    DocumentService
	pdf     pdfService
	exports exportService
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(docs DocumentService, pdf pdfService, exports exportService) *DocumentHandler {
	return &DocumentHandler{docs: docs, pdf: pdf, exports: exports}
}

// Calculate godoc
// @Summary      Recalcular líneas y totales
// @Description  Stateless: recibe la instantánea del formulario y devuelve líneas y totales recalculados.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  string                true  "ID de la empresa"
// @Param        body       body  dto.CalculateRequest  true  "Líneas y cargos"
// @Success      200  {object}  dto.CalculateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId}/documents/calculate [post]
func (h *DocumentHandler) Calculate(c *fiber.Ctx) error {
	var in dto.CalculateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.docs.Calculate(c.UserContext(), sessionFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangePlaceOfSupply godoc
// @Summary      Cambiar lugar de suministro
// @Description  Re-deriva CGST/SGST/IGST de todas las líneas y recalcula los totales.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  string                true  "ID de la empresa"
// @Param        body       body  dto.CalculateRequest  true  "Instantánea con el nuevo place_of_supply"
// @Success      200  {object}  dto.CalculateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId}/documents/place-of-supply [post]
func (h *DocumentHandler) ChangePlaceOfSupply(c *fiber.Ctx) error {
	var in dto.CalculateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.docs.ChangePlaceOfSupply(c.UserContext(), sessionFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// EditItem godoc
// @Summary      Editar un campo de una línea
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  string               true  "ID de la empresa"
// @Param        body       body  dto.EditItemRequest  true  "Instantánea + index, field, value"
// @Success      200  {object}  dto.CalculateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId}/documents/edit-item [post]
func (h *DocumentHandler) EditItem(c *fiber.Ctx) error {
	var in dto.EditItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.docs.EditItem(c.UserContext(), sessionFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Crear documento
// @Description  Valida, recalcula con el estado de la empresa, numera y persiste. Mismo contrato para invoices, quotations, sales-orders y sales-returns.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  string                     true  "ID de la empresa"
// @Param        body       body  dto.SubmitDocumentRequest  true  "Documento"
// @Success      201  {object}  dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId}/invoices [post]
func (h *DocumentHandler) Submit(kind gst.DocumentKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in dto.SubmitDocumentRequest
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		out, err := h.docs.Submit(c.UserContext(), sessionFrom(c), kind, in)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// List godoc
// @Summary      Registro de documentos
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path   string  true   "ID de la empresa"
// @Param        page       query  int     false  "Página"  default(1)
// @Param        page_size  query  int     false  "Tamaño"  default(20)
// @Param        search     query  string  false  "Número o cliente"
// @Param        status     query  string  false  "Estado"
// @Success      200  {object}  dto.DocumentListResponse
// @Router       /api/companies/{companyId}/invoices [get]
func (h *DocumentHandler) List(kind gst.DocumentKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, ok := parseListQuery(c)
		if !ok {
			return nil
		}
		out, err := h.docs.List(c.UserContext(), sessionFrom(c), kind, q)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// GetByID godoc
// @Summary      Obtener documento
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  string  true  "ID de la empresa"
// @Param        id         path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId}/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.docs.Get(c.UserContext(), sessionFrom(c), "", c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  string                   true  "ID de la empresa"
// @Param        id         path  string                   true  "ID del documento"
// @Param        body       body  dto.UpdateStatusRequest  true  "Nuevo estado"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId}/documents/{id}/status [patch]
func (h *DocumentHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.docs.UpdateStatus(c.UserContext(), sessionFrom(c), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Convert godoc
// @Summary      Convertir al siguiente documento
// @Description  cotización → orden → factura → devolución.
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  string  true  "ID de la empresa"
// @Param        id         path  string  true  "ID del documento origen"
// @Success      201  {object}  dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse  "MODULE_DISABLED: el módulo del documento destino no está activo"
// @Router       /api/companies/{companyId}/documents/{id}/convert [post]
func (h *DocumentHandler) Convert(c *fiber.Ctx) error {
	out, err := h.docs.Convert(c.UserContext(), sessionFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar PDF
// @Tags         documents
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        companyId  path  string  true  "ID de la empresa"
// @Param        id         path  string  true  "ID del documento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId}/documents/{id}/pdf [get]
func (h *DocumentHandler) DownloadPDF(c *fiber.Ctx) error {
	data, filename, err := h.pdf.DownloadPDF(c.UserContext(), sessionFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, "application/pdf", filename, data)
}

// ExportRegister godoc
// @Summary      Exportar registro a Excel
// @Tags         exports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        companyId  path   string  true   "ID de la empresa"
// @Param        status     query  string  false  "Estado"
// @Success      200  {file}  binary
// @Router       /api/companies/{companyId}/invoices/export/register [get]
func (h *DocumentHandler) ExportRegister(kind gst.DocumentKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, filename, err := h.exports.ExportRegister(c.UserContext(), sessionFrom(c), kind, c.Query("status"))
		if err != nil {
			return writeError(c, err)
		}
		return sendFile(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", filename, data)
	}
}

// ExportTally godoc
// @Summary      Exportar comprobantes a Tally (XML)
// @Tags         exports
// @Produce      xml
// @Security     BearerAuth
// @Param        companyId  path  string  true  "ID de la empresa"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId}/invoices/export/tally [get]
func (h *DocumentHandler) ExportTally(kind gst.DocumentKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, filename, err := h.exports.ExportTally(c.UserContext(), sessionFrom(c), kind)
		if err != nil {
			return writeError(c, err)
		}
		return sendFile(c, fiber.MIMEApplicationXMLCharsetUTF8, filename, data)
	}
}

func sendFile(c *fiber.Ctx, contentType, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+url.PathEscape(filename)+`"`)
	return c.Send(data)
}
