package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func TestParseCatalog_FilasValidasEInvalidas(t *testing.T) {
	csvData := "sku,name,hsn_code,selling_price,gst_rate,unit\n" +
		"P-001,Steel Rod,7214,\"1,250.50\",18%,kg\n" +
		"P-002,Service Visit,,500,,\n" +
		"P-003,Bad Rate,1234,10,7,NOS\n" +
		"p-001,Duplicate,7214,1,18,NOS\n" +
		",Sin SKU,1,1,5,NOS\n"

	rows, errs := parseCatalog(strings.NewReader(csvData))

	require.Len(t, rows, 2)
	assert.Equal(t, "P-001", rows[0].SKU)
	assert.Equal(t, "KG", rows[0].Unit)
	assert.Equal(t, "1250.5", rows[0].SellingPrice.String())
	require.True(t, rows[0].GSTRate.Valid)
	assert.Equal(t, "18", rows[0].GSTRate.Decimal.String())

	assert.Equal(t, "NOS", rows[1].Unit)
	assert.False(t, rows[1].GSTRate.Valid, "tarifa vacía queda sin definir")

	require.Len(t, errs, 3)
	assert.Contains(t, errs[0].Error(), "línea 4")
	assert.Contains(t, errs[1].Error(), "repetido")
	assert.Contains(t, errs[2].Error(), "obligatorios")
}

func TestParseCatalog_EncabezadoIncorrecto(t *testing.T) {
	rows, errs := parseCatalog(strings.NewReader("code,name\nX,Y\n"))
	assert.Empty(t, rows)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "encabezado")
}

func TestParseCatalog_Windows1252(t *testing.T) {
	encoded, err := charmap.Windows1252.NewEncoder().String(
		"sku,name,hsn_code,selling_price,gst_rate,unit\nC-1,Café Crème,0901,99,5,NOS\n")
	require.NoError(t, err)

	rows, errs := parseCatalog(transform.NewReader(strings.NewReader(encoded), charmap.Windows1252.NewDecoder()))
	require.Empty(t, errs)
	require.Len(t, rows, 1)
	assert.Equal(t, "Café Crème", rows[0].Name)
}

func TestWriteSQL_EscapaYUpsert(t *testing.T) {
	rows, errs := parseCatalog(strings.NewReader(
		"sku,name,hsn_code,selling_price,gst_rate,unit\nA-1,O'Brien Bolt,7318,12,28,NOS\nA-2,Misc,,3,,\n"))
	require.Empty(t, errs)

	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, "11111111-1111-1111-1111-111111111111", rows))
	sql := buf.String()

	assert.Contains(t, sql, "'O''Brien Bolt'")
	assert.Contains(t, sql, "12.00, 28, 'NOS'")
	assert.Contains(t, sql, "3.00, NULL, 'NOS'")
	assert.Contains(t, sql, "ON CONFLICT (company_id, sku) DO UPDATE SET")
	assert.Equal(t, 1, strings.Count(sql, "INSERT INTO products"))
}
