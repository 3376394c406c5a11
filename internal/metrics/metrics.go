package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "party"

// Metrics holds the collectors for the team shard. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	teams       prometheus.Gauge
	players     prometheus.Gauge
	operations  *prometheus.CounterVec
	evictions   prometheus.Counter
	queueWait   prometheus.Histogram
	rateLimited *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. A nil reg uses
// prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		teams: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "shard",
			Name:      "teams",
			Help:      "Number of live teams.",
		}),
		players: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "shard",
			Name:      "teamed_players",
			Help:      "Number of players currently on a team.",
		}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "shard",
			Name:      "operations_total",
			Help:      "Team operations by name and result code.",
		}, []string{"op", "code"}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "shard",
			Name:      "applicant_evictions_total",
			Help:      "Applicants dropped from a full queue.",
		}),
		queueWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "shard",
			Name:      "queue_wait_seconds",
			Help:      "Time an operation waited before the shard picked it up.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8), // 100us .. ~1.6s
		}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "rate_limit_hits_total",
			Help:      "Number of rate-limited requests.",
		}, []string{"route"}),
	}

	reg.MustRegister(m.teams, m.players, m.operations, m.evictions, m.queueWait, m.rateLimited)
	return m
}

func (m *Metrics) SetState(teams, players int) {
	if m == nil {
		return
	}
	m.teams.Set(float64(teams))
	m.players.Set(float64(players))
}

// ObserveOp counts one operation. code is the numeric result code, 0 on success.
func (m *Metrics) ObserveOp(op string, code uint32) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, strconv.FormatUint(uint64(code), 10)).Inc()
}

func (m *Metrics) ApplicantEvicted() {
	if m == nil {
		return
	}
	m.evictions.Inc()
}

func (m *Metrics) ObserveQueueWait(d time.Duration) {
	if m == nil {
		return
	}
	m.queueWait.Observe(d.Seconds())
}

func (m *Metrics) RateLimited(route string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(route).Inc()
}

// Serve exposes g on addr under /metrics until ctx is cancelled.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
