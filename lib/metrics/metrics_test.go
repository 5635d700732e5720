package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}

func TestObjectMetrics(t *testing.T) {
	o := NewObjectMetrics("test_object")
	before := gaugeValue(t, o.Live)

	o.Created()
	o.Created()
	o.Deleted()
	assert.Equal(t, before+1, gaugeValue(t, o.Live))

	// same label, same series
	assert.Equal(t, before+1, gaugeValue(t, NewObjectMetrics("test_object").Live))
}
