package gst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Facturacion-GST/internal/domain/gst"
)

func TestRateOptions(t *testing.T) {
	opts := gst.RateOptions()

	values := make([]string, 0, len(opts))
	for _, o := range opts {
		values = append(values, o.Value)
	}
	assert.Equal(t, []string{"0", "5", "12", "18", "28"}, values)
	assert.True(t, gst.IsValidRate(dec("28.00")))
	assert.False(t, gst.IsValidRate(dec("3")))
}

func TestParseKindAndStatuses(t *testing.T) {
	k, ok := gst.ParseKind(" Invoice ")
	assert.True(t, ok)
	assert.Equal(t, gst.KindInvoice, k)

	_, ok = gst.ParseKind("receipt")
	assert.False(t, ok)

	assert.True(t, gst.IsValidStatus(gst.KindQuotation, gst.StatusAccepted))
	assert.False(t, gst.IsValidStatus(gst.KindInvoice, gst.StatusAccepted))
	assert.NotEmpty(t, gst.StatusOptions(gst.KindReturn))
}

func TestStates(t *testing.T) {
	assert.Equal(t, "07", gst.NormalizeStateCode("7"))
	assert.True(t, gst.IsValidStateCode("29"))
	assert.False(t, gst.IsValidStateCode("99"))
	assert.Equal(t, "Karnataka", gst.StateName("29"))
	assert.Equal(t, "", gst.StateName("00"))

	assert.True(t, gst.IsIntraState("7", "07"))
	assert.False(t, gst.IsIntraState(otherState, homeState))
	assert.Len(t, gst.StateOptions(), 38)
}
