package gst

import (
	"errors"
	"strings"

	"github.com/jhoicas/Facturacion-GST/internal/domain"
)

// Errores de validación de líneas y cargos. Todos cumplen errors.Is(err, domain.ErrInvalidInput)
// cuando llegan envueltos en FieldError.
var (
	ErrNotNumeric         = errors.New("valor no numérico")
	ErrNegativeAmount     = errors.New("monto negativo")
	ErrNonPositiveQty     = errors.New("la cantidad debe ser mayor que cero")
	ErrDiscountOutOfRange = errors.New("el descuento debe estar entre 0 y 100")
	ErrInvalidRate        = errors.New("tarifa GST no permitida")
	ErrInvalidChargeType  = errors.New("tipo de cargo inválido")
	ErrInvalidDiscount    = errors.New("tipo de descuento inválido")
	ErrInvalidState       = errors.New("código de estado inválido")
	ErrUnknownField       = errors.New("campo desconocido")
	ErrUnknownProduct     = errors.New("producto no encontrado")
	ErrNoItems            = errors.New("el documento no tiene líneas")
)

// FieldError error de un campo concreto. Index es la línea (-1 si es del documento).
type FieldError struct {
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Err     error  `json:"-"`
	Details string `json:"details,omitempty"`
}

func (e *FieldError) Error() string {
	msg := e.Field + ": " + e.Err.Error()
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return msg
}

// Unwrap permite errors.Is contra el error concreto y contra domain.ErrInvalidInput.
func (e *FieldError) Unwrap() []error {
	return []error{e.Err, domain.ErrInvalidInput}
}

// ValidationErrors lista de errores de validación previos al envío.
type ValidationErrors []*FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return "validación: " + strings.Join(parts, "; ")
}

// Unwrap expone cada FieldError para errors.Is / errors.As.
func (v ValidationErrors) Unwrap() []error {
	out := make([]error, 0, len(v))
	for _, e := range v {
		out = append(out, e)
	}
	return out
}
