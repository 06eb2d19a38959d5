// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T) map[string]*dto.MetricFamily {
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		out[f.GetName()] = f
	}
	return out
}

func TestNoopBackend(t *testing.T) {
	var b backend = noopBackend{}

	b.counter("c").Add(1)
	b.counterVec("cv", []string{"a"}).AddWithLabel(1, map[string]string{"a": "b"})
	b.gauge("g").Set(3)
	b.gaugeVec("gv", []string{"a"}).SetWithLabel(3, map[string]string{"a": "b"})
	b.histogramVec("h", []string{"a"}, BucketHTTPReqs).ObserveWithLabels(1, map[string]string{"a": "b"})

	rec := httptest.NewRecorder()
	b.handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPrometheusMetrics(t *testing.T) {
	lazyCounter := LazyLoadCounter("lazy_count")

	InitializePrometheusMetrics()
	assert.True(t, Enabled())

	Counter("test_count").Add(2)
	Counter("test_count").Add(3)
	lazyCounter().Add(1)

	CounterVec("test_count_vec", []string{"op"}).AddWithLabel(4, map[string]string{"op": "stake"})
	LazyLoadCounterVec("test_count_vec", []string{"op"})().AddWithLabel(1, map[string]string{"op": "claim"})

	gauge := Gauge("test_gauge")
	gauge.Set(10)
	gauge.Add(-3)

	tiers := LazyLoadGaugeVec("test_gauge_vec", []string{"tier"})
	tiers().SetWithLabel(4, map[string]string{"tier": "0"})
	tiers().SetWithLabel(2, map[string]string{"tier": "1"})
	tiers().SetWithLabel(1, map[string]string{"tier": "1"})

	HistogramVec("test_hist", []string{"code"}, []int64{1, 10, 100}).
		ObserveWithLabels(7, map[string]string{"code": "200"})

	families := gather(t)

	require.Contains(t, families, "stakevault_test_count")
	assert.Equal(t, float64(5), families["stakevault_test_count"].GetMetric()[0].GetCounter().GetValue())

	require.Contains(t, families, "stakevault_lazy_count")
	assert.Equal(t, float64(1), families["stakevault_lazy_count"].GetMetric()[0].GetCounter().GetValue())

	vec := families["stakevault_test_count_vec"]
	require.NotNil(t, vec)
	total := 0.0
	for _, m := range vec.GetMetric() {
		total += m.GetCounter().GetValue()
	}
	assert.Len(t, vec.GetMetric(), 2)
	assert.Equal(t, float64(5), total)

	assert.Equal(t, float64(7), families["stakevault_test_gauge"].GetMetric()[0].GetGauge().GetValue())

	byTier := map[string]float64{}
	for _, m := range families["stakevault_test_gauge_vec"].GetMetric() {
		byTier[m.GetLabel()[0].GetValue()] = m.GetGauge().GetValue()
	}
	assert.Equal(t, map[string]float64{"0": 4, "1": 1}, byTier)

	hist := families["stakevault_test_hist"].GetMetric()[0].GetHistogram()
	assert.Equal(t, uint64(1), hist.GetSampleCount())
	assert.Equal(t, float64(7), hist.GetSampleSum())

	rec := httptest.NewRecorder()
	HTTPHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stakevault_test_count 5")
}
