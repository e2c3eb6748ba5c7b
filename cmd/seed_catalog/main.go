// seed_catalog genera un script SQL para cargar el catálogo de productos de una empresa
// a partir de un CSV exportado desde Excel (Windows-1252, separado por comas).
//
// Uso: go run ./cmd/seed_catalog <company_id> [ruta/catalogo.csv]
// Columnas esperadas: sku, name, hsn_code, selling_price, gst_rate, unit.
// Escribe: seed_catalog.sql en la raíz del módulo.
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/Facturacion-GST/internal/domain/gst"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type catalogRow struct {
	SKU          string
	Name         string
	HSNCode      string
	SellingPrice decimal.Decimal
	GSTRate      decimal.NullDecimal
	Unit         string
}

var expectedHeader = []string{"sku", "name", "hsn_code", "selling_price", "gst_rate", "unit"}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: seed_catalog <company_id> [catalogo.csv]")
		os.Exit(2)
	}
	companyID := os.Args[1]
	if _, err := uuid.Parse(companyID); err != nil {
		fmt.Fprintf(os.Stderr, "company_id inválido: %v\n", err)
		os.Exit(2)
	}
	csvPath := "catalogo.csv"
	if len(os.Args) > 2 {
		csvPath = os.Args[2]
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, rowErrs := parseCatalog(transform.NewReader(f, charmap.Windows1252.NewDecoder()))
	for _, e := range rowErrs {
		fmt.Fprintf(os.Stderr, "Omitida: %v\n", e)
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "No hay productos válidos en el CSV")
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, companyID, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d productos, %d filas omitidas\n", outPath, len(rows), len(rowErrs))
}

// parseCatalog lee el CSV ya decodificado a UTF-8. Las filas inválidas se reportan y se omiten.
func parseCatalog(r io.Reader) ([]catalogRow, []error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, []error{fmt.Errorf("encabezado: %w", err)}
	}
	if err := checkHeader(header); err != nil {
		return nil, []error{err}
	}

	var (
		rows []catalogRow
		errs []error
		seen = make(map[string]bool)
	)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("línea %d: %w", line, err))
			continue
		}
		row, err := parseRow(rec)
		if err != nil {
			errs = append(errs, fmt.Errorf("línea %d: %w", line, err))
			continue
		}
		key := strings.ToUpper(row.SKU)
		if seen[key] {
			errs = append(errs, fmt.Errorf("línea %d: sku %s repetido", line, row.SKU))
			continue
		}
		seen[key] = true
		rows = append(rows, row)
	}
	return rows, errs
}

func checkHeader(h []string) error {
	if len(h) < len(expectedHeader) {
		return fmt.Errorf("encabezado: se esperaban %d columnas, hay %d", len(expectedHeader), len(h))
	}
	for i, want := range expectedHeader {
		// Excel suele anteponer el BOM a la primera celda.
		got := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h[i], "\ufeff")))
		if got != want {
			return fmt.Errorf("encabezado: columna %d es %q, se esperaba %q", i+1, h[i], want)
		}
	}
	return nil
}

func parseRow(rec []string) (catalogRow, error) {
	if len(rec) < len(expectedHeader) {
		return catalogRow{}, fmt.Errorf("faltan columnas (%d)", len(rec))
	}
	row := catalogRow{
		SKU:     strings.TrimSpace(rec[0]),
		Name:    strings.TrimSpace(rec[1]),
		HSNCode: strings.TrimSpace(rec[2]),
		Unit:    strings.ToUpper(strings.TrimSpace(rec[5])),
	}
	if row.SKU == "" || row.Name == "" {
		return catalogRow{}, errors.New("sku y name son obligatorios")
	}
	if row.Unit == "" {
		row.Unit = "NOS"
	}
	if len(row.HSNCode) > 8 {
		return catalogRow{}, fmt.Errorf("hsn_code %q excede 8 dígitos", row.HSNCode)
	}

	price, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[3]), ",", ""))
	if err != nil {
		return catalogRow{}, fmt.Errorf("selling_price %q: %w", rec[3], err)
	}
	if price.IsNegative() {
		return catalogRow{}, fmt.Errorf("selling_price %s negativo", price)
	}
	row.SellingPrice = price.Round(2)

	rate := strings.TrimSuffix(strings.TrimSpace(rec[4]), "%")
	if rate != "" {
		r, err := decimal.NewFromString(rate)
		if err != nil {
			return catalogRow{}, fmt.Errorf("gst_rate %q: %w", rec[4], err)
		}
		if !gst.IsValidRate(r) {
			return catalogRow{}, fmt.Errorf("gst_rate %s no permitida", r)
		}
		row.GSTRate = decimal.NullDecimal{Decimal: r, Valid: true}
	}
	return row, nil
}

func writeSQL(w io.Writer, companyID string, rows []catalogRow) error {
	var b strings.Builder
	b.WriteString("-- Catálogo de productos\n")
	b.WriteString("-- Generado por cmd/seed_catalog\n\n")
	b.WriteString("INSERT INTO products (id, company_id, sku, name, hsn_code, selling_price, gst_rate, unit) VALUES\n")
	for i, r := range rows {
		rate := "NULL"
		if r.GSTRate.Valid {
			rate = r.GSTRate.Decimal.String()
		}
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s', '%s', %s, %s, '%s')",
			uuid.NewString(), companyID, escapeSQL(r.SKU), escapeSQL(r.Name), escapeSQL(r.HSNCode),
			r.SellingPrice.StringFixed(2), rate, escapeSQL(r.Unit))
		if i < len(rows)-1 {
			b.WriteString(",\n")
		} else {
			b.WriteString("\n")
		}
	}
	b.WriteString("ON CONFLICT (company_id, sku) DO UPDATE SET\n")
	b.WriteString("  name = EXCLUDED.name, hsn_code = EXCLUDED.hsn_code, selling_price = EXCLUDED.selling_price,\n")
	b.WriteString("  gst_rate = EXCLUDED.gst_rate, unit = EXCLUDED.unit, updated_at = now();\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
