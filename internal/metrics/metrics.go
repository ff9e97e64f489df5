// Package metrics exposes Prometheus collectors for the HTTP API and the
// catalog query path.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	catalogQueries  *prometheus.CounterVec
	catalogResults  *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "catalog",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "catalog",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		catalogQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "catalog",
			Name:      "queries_total",
			Help:      "Catalog browse and suggest queries by surface.",
		}, []string{"surface", "kind"}),
		catalogResults: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "catalog",
			Name:      "query_results",
			Help:      "Number of products returned by a catalog query.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		}, []string{"surface"}),
	}

	m.registry.MustRegister(
		m.requests,
		m.requestDuration,
		m.catalogQueries,
		m.catalogResults,
		collectors.NewGoCollector(),
	)
	return m
}

// Middleware records request counts and latency keyed by the route pattern,
// not the raw path, to keep label cardinality bounded.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			route := c.Path()
			method := c.Request().Method
			m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
			m.requestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

func (m *Metrics) ObserveCatalogQuery(surface, kind string, results int) {
	m.catalogQueries.WithLabelValues(surface, kind).Inc()
	m.catalogResults.WithLabelValues(surface).Observe(float64(results))
}

func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
