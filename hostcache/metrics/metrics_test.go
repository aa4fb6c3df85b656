package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Collector) float64 {
	t.Helper()
	ch := make(chan prometheus.Metric, 8)
	c.Collect(ch)
	close(ch)

	var total float64
	for m := range ch {
		var d dto.Metric
		require.NoError(t, m.Write(&d))
		total += d.GetCounter().GetValue()
	}
	return total
}

func TestCollectorCountersIncrement(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveFresh()
	c.ObserveFresh()
	c.ObserveStale()
	c.ObserveRevalidated()
	c.ObserveBypass()
	c.ObserveBypass()
	c.ObserveBypass()

	require.Equal(t, float64(2), counterValue(t, c.Fresh))
	require.Equal(t, float64(1), counterValue(t, c.Stale))
	require.Equal(t, float64(1), counterValue(t, c.Revalidated))
	require.Equal(t, float64(3), counterValue(t, c.Bypass))
}
