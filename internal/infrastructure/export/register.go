// Package export genera los archivos de salida del registro de ventas: libro en Excel
// (excelize) y comprobantes de importación para Tally (XML con etree).
package export

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	appbilling "github.com/jhoicas/Facturacion-GST/internal/application/billing"
	"github.com/jhoicas/Facturacion-GST/internal/domain/entity"
	"github.com/jhoicas/Facturacion-GST/internal/domain/gst"
)

var _ appbilling.RegisterExporter = (*ExcelRegister)(nil)

// RegisterSheet nombre de la hoja del libro.
const RegisterSheet = "Sales Register"

var registerHeaders = []string{
	"Date", "Number", "Kind", "Customer", "Place of Supply", "Status",
	"Subtotal", "Discounts", "CGST", "SGST", "IGST", "Total Tax",
	"Freight", "P&F", "Coupon", "Round Off", "Total", "IRN",
}

// ExcelRegister escribe el registro de ventas en xlsx.
type ExcelRegister struct{}

// NewExcelRegister construye el exportador.
func NewExcelRegister() *ExcelRegister { return &ExcelRegister{} }

// ExportRegister una fila por documento (fila 4 en adelante) y una fila final de totales.
func (e *ExcelRegister) ExportRegister(ctx context.Context, company *entity.Company, docs []*entity.SalesDocument) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), RegisterSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 10},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#00467F"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	moneyFmt := "#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt, Border: thinBorders()})
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &moneyFmt,
		Border:       thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	title := company.Name
	if company.GSTIN != "" {
		title += " (GSTIN " + company.GSTIN + ")"
	}
	_ = f.SetCellValue(RegisterSheet, "A1", sanitizeExcelCell(title))
	_ = f.SetCellStyle(RegisterSheet, "A1", "A1", titleStyle)

	const headerRow = 3
	for i, h := range registerHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		_ = f.SetCellValue(RegisterSheet, cell, h)
	}
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(registerHeaders), headerRow)
	_ = f.SetCellStyle(RegisterSheet, first, last, headerStyle)

	widths := []float64{12, 14, 12, 30, 18, 11, 14, 12, 12, 12, 12, 12, 11, 11, 11, 10, 14, 66}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(RegisterSheet, col, col, w); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	sums := make([]decimal.Decimal, 11)
	r := headerRow + 1
	for _, d := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		amounts := []decimal.Decimal{
			d.Subtotal, d.ItemDiscountTotal.Add(d.DiscountOnAllAmount),
			d.CGSTAmount, d.SGSTAmount, d.IGSTAmount, d.TotalTax,
			d.FreightCharges, d.PFCharges, d.CouponValue, d.RoundOff, d.TotalAmount,
		}
		values := []any{
			d.Date.Format("2006-01-02"), sanitizeExcelCell(d.Number), d.Kind, sanitizeExcelCell(d.CustomerName),
			placeOfSupply(d.PlaceOfSupply), d.Status,
		}
		for i, a := range amounts {
			values = append(values, a.InexactFloat64())
			sums[i] = sums[i].Add(a)
		}
		values = append(values, d.IRN)

		cell, _ := excelize.CoordinatesToCellName(1, r)
		if err := f.SetSheetRow(RegisterSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", r, err)
		}
		from, _ := excelize.CoordinatesToCellName(7, r)
		to, _ := excelize.CoordinatesToCellName(17, r)
		_ = f.SetCellStyle(RegisterSheet, from, to, moneyStyle)
		r++
	}

	totals := []any{"", "", "", "TOTAL", "", fmt.Sprintf("%d docs", len(docs))}
	for _, s := range sums {
		totals = append(totals, s.InexactFloat64())
	}
	cell, _ := excelize.CoordinatesToCellName(1, r)
	if err := f.SetSheetRow(RegisterSheet, cell, &totals); err != nil {
		return nil, fmt.Errorf("write totals: %w", err)
	}
	from, _ := excelize.CoordinatesToCellName(4, r)
	to, _ := excelize.CoordinatesToCellName(17, r)
	_ = f.SetCellStyle(RegisterSheet, from, to, totalStyle)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func placeOfSupply(code string) string {
	if name := gst.StateName(code); name != "" {
		return code + "-" + name
	}
	return code
}

// sanitizeExcelCell evita inyección de fórmulas anteponiendo comilla a los caracteres peligrosos.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
