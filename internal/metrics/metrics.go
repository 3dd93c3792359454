// Package metrics exposes engine activity as Prometheus collectors.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Amr-9/crat/pkg/generator"
	"github.com/Amr-9/crat/pkg/generator/cpu"
)

// Metrics implements cpu.Observer.
type Metrics struct {
	registry *prometheus.Registry

	attemptsTotal  *prometheus.CounterVec
	searchesTotal  *prometheus.CounterVec
	searchDuration *prometheus.HistogramVec
	activeWorkers  prometheus.Gauge
}

var _ cpu.Observer = (*Metrics)(nil)

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		attemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crat_attempts_total",
				Help: "Candidate keypairs generated and tested",
			},
			[]string{"chain"},
		),
		searchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crat_searches_total",
				Help: "Finished searches by outcome",
			},
			[]string{"chain", "outcome"},
		),
		searchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "crat_search_duration_seconds",
				Help:    "Wall time of finished searches",
				Buckets: prometheus.ExponentialBuckets(0.1, 4, 10),
			},
			[]string{"chain", "outcome"},
		),
		activeWorkers: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "crat_active_workers",
				Help: "Workers of the running search",
			},
		),
	}
}

func (m *Metrics) SearchStarted(_ generator.Chain, workers int) {
	m.activeWorkers.Set(float64(workers))
}

func (m *Metrics) AttemptsAdded(chain generator.Chain, n uint64) {
	m.attemptsTotal.WithLabelValues(chain.String()).Add(float64(n))
}

func (m *Metrics) SearchFinished(chain generator.Chain, outcome cpu.Outcome, elapsed time.Duration) {
	m.activeWorkers.Set(0)
	m.searchesTotal.WithLabelValues(chain.String(), string(outcome)).Inc()
	m.searchDuration.WithLabelValues(chain.String(), string(outcome)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, log *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("metrics endpoint listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("metrics endpoint failed", zap.Error(err))
	}
}
