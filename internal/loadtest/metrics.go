package loadtest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/flightgateproject/flightgate/pkg/client/domain"
)

const metricsPrefix = "flightgate_loadtest_"

// Metrics exposes per-request load test counters and latencies to Prometheus,
// scrapeable while a long run is in progress.
type Metrics struct {
	registry        *prometheus.Registry
	requestsCounter *prometheus.CounterVec
	rowsCounter     prometheus.Counter
	bytesCounter    prometheus.Counter
	latencyHist     prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricsPrefix + "requests",
				Help: "Number of requests issued against the gateway",
			},
			[]string{"tenant", "status"},
		),
		rowsCounter: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricsPrefix + "rows",
				Help: "Number of rows received from the gateway",
			},
		),
		bytesCounter: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricsPrefix + "bytes",
				Help: "Number of payload bytes received from the gateway",
			},
		),
		latencyHist: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricsPrefix + "request_latency_seconds",
				Help:    "End to end latency of successful requests",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
			},
		),
	}
	m.registry.MustRegister(m.requestsCounter, m.rowsCounter, m.bytesCounter, m.latencyHist)
	return m
}

func (m *Metrics) Observe(metrics *domain.QueryMetrics) {
	m.requestsCounter.WithLabelValues(metrics.Tenant, string(metrics.Status)).Inc()
	if metrics.Succeeded() {
		m.rowsCounter.Add(float64(metrics.Rows))
		m.bytesCounter.Add(float64(metrics.Bytes))
		m.latencyHist.Observe(metrics.TotalLatency.Seconds())
	}
}

// Serve exposes the metrics on /metrics until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, port uint16) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("metrics server failed")
		}
	}()
}
