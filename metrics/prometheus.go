// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vechain/stakevault/log"
)

const namespace = "stakevault"

var logger = log.WithContext("pkg", "metrics")

// InitializePrometheusMetrics selects the Prometheus backend. Later calls are no-ops.
func InitializePrometheusMetrics() {
	if !Enabled() {
		current = &promBackend{}
	}
}

// promBackend registers each meter with the default registry on first use.
type promBackend struct {
	meters sync.Map // name -> meter
}

func getOrCreate[T any](b *promBackend, name string, create func() T) T {
	if m, ok := b.meters.Load(name); ok {
		return m.(T)
	}
	m, _ := b.meters.LoadOrStore(name, create())
	return m.(T)
}

func mustRegister[C prometheus.Collector](c C) C {
	if err := prometheus.Register(c); err != nil {
		logger.Warn("failed to register meter", "err", err)
	}
	return c
}

func (b *promBackend) handler() http.Handler { return promhttp.Handler() }

func (b *promBackend) counter(name string) CountMeter {
	return getOrCreate(b, name, func() CountMeter {
		c := mustRegister(prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name}))
		return countMeter{c}
	})
}

func (b *promBackend) counterVec(name string, labels []string) CountVecMeter {
	return getOrCreate(b, name, func() CountVecMeter {
		v := mustRegister(prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name}, labels))
		return countVecMeter{v}
	})
}

func (b *promBackend) gauge(name string) GaugeMeter {
	return getOrCreate(b, name, func() GaugeMeter {
		g := mustRegister(prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name}))
		return gaugeMeter{g}
	})
}

func (b *promBackend) gaugeVec(name string, labels []string) GaugeVecMeter {
	return getOrCreate(b, name, func() GaugeVecMeter {
		v := mustRegister(prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: namespace, Name: name}, labels))
		return gaugeVecMeter{v}
	})
}

func (b *promBackend) histogramVec(name string, labels []string, buckets []int64) HistogramVecMeter {
	return getOrCreate(b, name, func() HistogramVecMeter {
		bounds := make([]float64, len(buckets))
		for i, v := range buckets {
			bounds[i] = float64(v)
		}
		v := mustRegister(prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Buckets:   bounds,
		}, labels))
		return histogramVecMeter{v}
	})
}

type countMeter struct{ prometheus.Counter }

func (m countMeter) Add(n int64) { m.Counter.Add(float64(n)) }

type countVecMeter struct{ *prometheus.CounterVec }

func (m countVecMeter) AddWithLabel(n int64, labels map[string]string) {
	m.With(labels).Add(float64(n))
}

type gaugeMeter struct{ prometheus.Gauge }

func (m gaugeMeter) Add(n int64) { m.Gauge.Add(float64(n)) }
func (m gaugeMeter) Set(n int64) { m.Gauge.Set(float64(n)) }

type gaugeVecMeter struct{ *prometheus.GaugeVec }

func (m gaugeVecMeter) SetWithLabel(n int64, labels map[string]string) {
	m.With(labels).Set(float64(n))
}

type histogramVecMeter struct{ *prometheus.HistogramVec }

func (m histogramVecMeter) ObserveWithLabels(n int64, labels map[string]string) {
	m.With(labels).Observe(float64(n))
}
