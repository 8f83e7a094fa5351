// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T) map[string]*dto.MetricFamily {
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	out := make(map[string]*dto.MetricFamily)
	for _, mf := range families {
		out[mf.GetName()] = mf
	}
	return out
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()

	count := Counter("test_count")
	countVec := CounterVec("test_count_vec", []string{"zeroOrOne"})
	gauge := Gauge("test_gauge")
	gaugeVec := GaugeVec("test_gauge_vec", []string{"zeroOrOne"})
	hist := Histogram("test_hist", []int64{1, 10, 100})

	total := 0
	for i := range 10 {
		label := map[string]string{"zeroOrOne": strconv.Itoa(i % 2)}
		count.Add(1)
		countVec.AddWithLabel(int64(i), label)
		gaugeVec.AddWithLabel(int64(i), label)
		hist.Observe(int64(i))
		total += i
	}
	gauge.Set(42)

	// same name resolves to the same meter
	Counter("test_count").Add(5)

	families := gather(t)
	require.Equal(t, float64(15), families["econ_test_count"].Metric[0].GetCounter().GetValue())
	require.Equal(t, float64(42), families["econ_test_gauge"].Metric[0].GetGauge().GetValue())
	require.Equal(t, float64(total), families["econ_test_hist"].Metric[0].GetHistogram().GetSampleSum())

	sum := families["econ_test_count_vec"].Metric[0].GetCounter().GetValue() +
		families["econ_test_count_vec"].Metric[1].GetCounter().GetValue()
	require.Equal(t, float64(total), sum)

	sum = families["econ_test_gauge_vec"].Metric[0].GetGauge().GetValue() +
		families["econ_test_gauge_vec"].Metric[1].GetGauge().GetValue()
	require.Equal(t, float64(total), sum)
}

func TestLazyLoading(t *testing.T) {
	metrics = defaultNoopMetrics()
	t.Cleanup(func() { metrics = defaultNoopMetrics() })

	for _, a := range []any{
		Gauge("noop_gauge"),
		GaugeVec("noop_gauge", nil),
		Counter("noop_counter"),
		CounterVec("noop_counter", nil),
		Histogram("noop_hist", nil),
		HistogramVec("noop_hist", nil, nil),
	} {
		require.IsType(t, &noopMeters{}, a)
	}

	lazyGauge := LazyLoadGauge("lazy_gauge")
	lazyGaugeVec := LazyLoadGaugeVec("lazy_gauge_vec", nil)
	lazyCounter := LazyLoadCounter("lazy_counter")
	lazyCounterVec := LazyLoadCounterVec("lazy_counter_vec", nil)
	lazyHistogram := LazyLoadHistogram("lazy_histogram", nil)
	lazyHistogramVec := LazyLoadHistogramVec("lazy_histogram_vec", nil, nil)

	// after initialization, newly created metrics become of the prometheus type
	InitializePrometheusMetrics()

	require.IsType(t, &promGaugeMeter{}, lazyGauge())
	require.IsType(t, &promGaugeVecMeter{}, lazyGaugeVec())
	require.IsType(t, &promCountMeter{}, lazyCounter())
	require.IsType(t, &promCountVecMeter{}, lazyCounterVec())
	require.IsType(t, &promHistogramMeter{}, lazyHistogram())
	require.IsType(t, &promHistogramVecMeter{}, lazyHistogramVec())
}
