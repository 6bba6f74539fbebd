// Package metrics регистрирует Prometheus-метрики загрузчика новостей.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics — набор счётчиков и гистограмм одного экземпляра приложения.
type Metrics struct {
	registry      *prometheus.Registry
	Loads         *prometheus.CounterVec
	FetchDuration prometheus.Histogram
	Items         prometheus.Gauge
	Opens         prometheus.Counter
}

// New создаёт метрики в отдельном реестре.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "newsreader",
			Name:      "loads_total",
			Help:      "News loads by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "newsreader",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of search API requests.",
			Buckets:   prometheus.DefBuckets,
		}),
		Items: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "newsreader",
			Name:      "items",
			Help:      "Number of items currently in the list.",
		}),
		Opens: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "newsreader",
			Name:      "opens_total",
			Help:      "Articles opened from the list.",
		}),
	}
	m.registry.MustRegister(m.Loads, m.FetchDuration, m.Items, m.Opens)
	return m
}

// Handler отдаёт метрики в формате Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry нужен тестам для чтения значений.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
