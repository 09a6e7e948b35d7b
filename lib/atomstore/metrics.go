// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package atomstore

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for one store. Each Metrics
// owns its registry, so several stores (or tests) can coexist in one
// process.
type Metrics struct {
	registry *prometheus.Registry

	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Mutations       *prometheus.CounterVec
}

// NewMetrics creates the collectors and a gauge reporting the number
// of atoms in store.
func NewMetrics(store *Store) *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	metrics := &Metrics{
		registry: registry,
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atomstore_requests_total",
			Help: "HTTP requests served, by method, route and status code",
		}, []string{"method", "route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "atomstore_request_duration_seconds",
			Help:    "HTTP request latency, by method and route",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "route"}),
		Mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atomstore_mutations_total",
			Help: "Successful mutations of the collection, by operation",
		}, []string{"operation"}),
	}
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "atomstore_atoms",
		Help: "Number of atoms in the collection",
	}, func() float64 { return float64(store.Len()) })

	return metrics
}

// Handler serves the registry in the Prometheus exposition format.
func (metrics *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(metrics.registry, promhttp.HandlerOpts{})
}

// recordMutation counts a successful create or update. Safe on a nil
// receiver.
func (metrics *Metrics) recordMutation(operation string) {
	if metrics == nil {
		return
	}
	metrics.Mutations.WithLabelValues(operation).Inc()
}

// instrument counts each request under its chi route pattern, so
// /atoms/{id} is one series rather than one per atom.
func (metrics *Metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		started := time.Now()
		wrapped := middleware.NewWrapResponseWriter(writer, request.ProtoMajor)
		next.ServeHTTP(wrapped, request)

		route := "unmatched"
		if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := wrapped.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.Requests.WithLabelValues(request.Method, route, strconv.Itoa(status)).Inc()
		metrics.RequestDuration.WithLabelValues(request.Method, route).Observe(time.Since(started).Seconds())
	})
}
