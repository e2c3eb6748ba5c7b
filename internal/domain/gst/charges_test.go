package gst_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-GST/internal/domain/gst"
)

func TestParseChargeType(t *testing.T) {
	rate, taxed, err := gst.ParseChargeType("tax@18%")
	require.NoError(t, err)
	assert.True(t, taxed)
	assertDec(t, "18", rate)

	rate, taxed, err = gst.ParseChargeType(" TAX@5 ")
	require.NoError(t, err)
	assert.True(t, taxed)
	assertDec(t, "5", rate)

	for _, fixed := range []string{"", "fixed", "FIXED"} {
		_, taxed, err = gst.ParseChargeType(fixed)
		require.NoError(t, err)
		assert.False(t, taxed, "%q es fijo", fixed)
	}

	_, _, err = gst.ParseChargeType("gratis")
	assert.Error(t, err)
}

func TestCharge_Gross(t *testing.T) {
	assertDec(t, "118", gst.Charge{Amount: dec("100"), Type: "tax@18%"}.Gross())
	assertDec(t, "100", gst.Charge{Amount: dec("100"), Type: "fixed"}.Gross())
	assertDec(t, "100", gst.Charge{Amount: dec("100"), Type: "desconocido"}.Gross(), "tipo desconocido se trata como fijo")
	assert.Equal(t, "tax@12%", gst.TaxTag(dec("12")))
}

func TestDiscountOnAll_Amount(t *testing.T) {
	assertDec(t, "18", gst.DiscountOnAll{Type: "percentage", Value: dec("10")}.Amount(dec("180")))
	assertDec(t, "18", gst.DiscountOnAll{Type: "percent", Value: dec("10")}.Amount(dec("180")))
	assertDec(t, "10", gst.DiscountOnAll{Type: "fixed", Value: dec("10")}.Amount(dec("180")))
	assertDec(t, "0", gst.DiscountOnAll{}.Amount(dec("180")))
}

func TestRoundOff_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		wantType gst.RoundOffType
		signed   string
	}{
		{"número negativo", `-0.40`, gst.RoundOffMinus, "-0.40"},
		{"número positivo en string", `"0.25"`, gst.RoundOffPlus, "0.25"},
		{"cero", `0`, gst.RoundOffNone, "0"},
		{"null", `null`, gst.RoundOffNone, "0"},
		{"objeto plus", `{"type":"plus","amount":0.6}`, gst.RoundOffPlus, "0.6"},
		{"objeto minus con monto negativo", `{"type":"minus","amount":-0.3}`, gst.RoundOffMinus, "-0.3"},
		{"objeto none", `{"type":"none","amount":4}`, gst.RoundOffNone, "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var r gst.RoundOff
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &r))
			assert.Equal(t, tc.wantType, r.Type)
			assertDec(t, tc.signed, r.Signed())
		})
	}

	var r gst.RoundOff
	assert.Error(t, json.Unmarshal([]byte(`{"type":"sideways","amount":1}`), &r))
}

func TestDocumentCharges_DecodesBothRoundOffEncodings(t *testing.T) {
	var a, b gst.DocumentCharges
	require.NoError(t, json.Unmarshal([]byte(`{"round_off": -0.4}`), &a))
	require.NoError(t, json.Unmarshal([]byte(`{"round_off": {"type": "minus", "amount": 0.4}}`), &b))

	assert.True(t, a.RoundOff.Signed().Equal(b.RoundOff.Signed()))
}

func TestSuggestRoundOff(t *testing.T) {
	r := gst.SuggestRoundOff(dec("352.40"))
	assert.Equal(t, gst.RoundOffMinus, r.Type)
	assertDec(t, "0.40", r.Amount)

	r = gst.SuggestRoundOff(dec("100.50"))
	assert.Equal(t, gst.RoundOffPlus, r.Type)
	assertDec(t, "0.50", r.Amount)

	r = gst.SuggestRoundOff(dec("99"))
	assert.Equal(t, gst.RoundOffNone, r.Type)
}
