package gst_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-GST/internal/domain"
	"github.com/jhoicas/Facturacion-GST/internal/domain/gst"
)

func editCtx(pos string) gst.EditContext {
	twelve := dec("12")
	return gst.EditContext{
		Products: []gst.ProductRef{
			{ID: "p-1", SKU: "SKU-1", Name: "Steel Bolt", HSNCode: "7318", SellingPrice: dec("250"), GSTRate: &twelve},
			{ID: "p-2", SKU: "SKU-2", Description: "Servicio de instalación", SellingPrice: dec("1000")},
		},
		PlaceOfSupply: pos,
		HomeStateCode: homeState,
	}
}

func TestApplyItemEdit_SelectProductFillsLine(t *testing.T) {
	item := gst.NewLineItem(homeState, homeState)

	got, err := gst.ApplyItemEdit(item, gst.FieldProductID, "p-1", editCtx(homeState))

	require.NoError(t, err)
	assert.Equal(t, "p-1", got.ProductID)
	assert.Equal(t, "Steel Bolt", got.Description)
	assert.Equal(t, "SKU-1", got.ItemCode, "itemCode vacío se completa con el SKU")
	assert.Equal(t, "7318", got.HSNCode)
	assertDec(t, "250", got.UnitPrice)
	assertDec(t, "12", got.GSTRate)
	assertDec(t, "6", got.CGSTRate)
	assertDec(t, "280", got.TotalAmount)
}

func TestApplyItemEdit_SelectProductKeepsUserItemCode(t *testing.T) {
	item := gst.NewLineItem(homeState, homeState)
	item.ItemCode = "MI-CODIGO"

	got, err := gst.ApplyItemEdit(item, "productId", "p-1", editCtx(homeState))

	require.NoError(t, err)
	assert.Equal(t, "MI-CODIGO", got.ItemCode)
}

func TestApplyItemEdit_SelectProductWithoutRateUsesDefault(t *testing.T) {
	item := gst.NewLineItem(otherState, homeState)
	item.GSTRate = dec("5")

	got, err := gst.ApplyItemEdit(item, gst.FieldProductID, "p-2", editCtx(otherState))

	require.NoError(t, err)
	assert.Equal(t, "Servicio de instalación", got.Description, "sin nombre se usa la descripción")
	assertDec(t, "18", got.GSTRate)
	assertDec(t, "18", got.IGSTRate)
	assertDec(t, "1180", got.TotalAmount)
}

func TestApplyItemEdit_UnknownProduct(t *testing.T) {
	item := gst.NewLineItem(homeState, homeState)

	got, err := gst.ApplyItemEdit(item, gst.FieldProductID, "no-existe", editCtx(homeState))

	require.Error(t, err)
	assert.True(t, errors.Is(err, gst.ErrUnknownProduct))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, item, got, "la línea no cambia si la edición falla")
}

func TestApplyItemEdit_NumericFields(t *testing.T) {
	item := gst.NewLineItem(homeState, homeState)
	ctx := editCtx(homeState)

	var err error
	item, err = gst.ApplyItemEdit(item, "unit_price", "100", ctx)
	require.NoError(t, err)
	item, err = gst.ApplyItemEdit(item, gst.FieldQuantity, 2, ctx)
	require.NoError(t, err)
	item, err = gst.ApplyItemEdit(item, gst.FieldDiscountPercent, 10.0, ctx)
	require.NoError(t, err)

	assertDec(t, "180", item.TaxableAmount)
	assertDec(t, "32.40", item.TaxAmount)
	assertDec(t, "212.40", item.TotalAmount)
}

func TestApplyItemEdit_EmptyNumericIsZero(t *testing.T) {
	item := gst.NewLineItem(homeState, homeState)

	got, err := gst.ApplyItemEdit(item, gst.FieldUnitPrice, "", editCtx(homeState))

	require.NoError(t, err)
	assertDec(t, "0", got.UnitPrice)
}

func TestApplyItemEdit_Errors(t *testing.T) {
	cases := []struct {
		name  string
		field string
		value any
		want  error
	}{
		{"cantidad no numérica", gst.FieldQuantity, "abc", gst.ErrNotNumeric},
		{"precio no numérico", gst.FieldUnitPrice, "1,5x", gst.ErrNotNumeric},
		{"tarifa fuera de los tramos", gst.FieldGSTRate, "7", gst.ErrInvalidRate},
		{"descuento mayor a 100", gst.FieldDiscountPercent, "150", gst.ErrDiscountOutOfRange},
		{"descuento negativo", gst.FieldDiscountPercent, -5, gst.ErrDiscountOutOfRange},
		{"campo desconocido", "color", "rojo", gst.ErrUnknownField},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gst.ApplyItemEdit(gst.NewLineItem(homeState, homeState), tc.field, tc.value, editCtx(homeState))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "error esperado %v, obtenido %v", tc.want, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))

			var fe *gst.FieldError
			require.True(t, errors.As(err, &fe))
		})
	}
}

func TestApplyItemEdit_TextFields(t *testing.T) {
	item := gst.NewLineItem(homeState, homeState)
	ctx := editCtx(homeState)

	item, err := gst.ApplyItemEdit(item, "description", "Tornillo", ctx)
	require.NoError(t, err)
	item, err = gst.ApplyItemEdit(item, "hsn", " 7318 ", ctx)
	require.NoError(t, err)
	item, err = gst.ApplyItemEdit(item, "item_code", "T-1", ctx)
	require.NoError(t, err)

	assert.Equal(t, "Tornillo", item.Description)
	assert.Equal(t, "7318", item.HSNCode)
	assert.Equal(t, "T-1", item.ItemCode)
}

func TestApplyItemEdit_DescuentoFueraDeRangoNoTocaLaLinea(t *testing.T) {
	item := sampleItem().Recompute(homeState, homeState)

	got, err := gst.ApplyItemEdit(item, gst.FieldDiscountPercent, "150", editCtx(homeState))
	require.ErrorIs(t, err, gst.ErrDiscountOutOfRange)
	assertDec(t, "10", got.DiscountPercent)
	assertDec(t, "212.40", got.TotalAmount)

	got, err = gst.ApplyItemEdit(item, gst.FieldDiscountPercent, "100", editCtx(homeState))
	require.NoError(t, err)
	assertDec(t, "0", got.TotalAmount)
}
