package dto

import "strings"

// Límites de paginación para listados.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage tope de página: con MaxPageSize el offset cabe en int32.
	MaxPage = 100000
)

// ListQuery parámetros de listado: página (desde 1), tamaño y búsqueda libre.
type ListQuery struct {
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
	Search   string `query:"search"`
	Status   string `query:"status"`
}

// Normalize aplica valores por defecto y recorta el tamaño de página.
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	q.Search = strings.TrimSpace(q.Search)
	q.Status = strings.TrimSpace(q.Status)
}

// Offset desplazamiento equivalente a la página. Normaliza una copia, así nunca desborda.
func (q ListQuery) Offset() int {
	q.Normalize()
	return (q.Page - 1) * q.PageSize
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

// NewPageResponse construye los metadatos a partir de la consulta normalizada.
func NewPageResponse(q ListQuery, total int) PageResponse {
	return PageResponse{Page: q.Page, PageSize: q.PageSize, Total: total}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Details errores por campo (solo en validaciones de documentos).
	Details []FieldErrorResponse `json:"details,omitempty"`
}

// FieldErrorResponse error de un campo: índice de línea (-1 = documento), campo y motivo.
type FieldErrorResponse struct {
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Message string `json:"message"`
}
