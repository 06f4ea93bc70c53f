package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"netflux/internal/config"
	"netflux/pkg/format"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	SkipNoInterface = "no_interface"
	SkipQueryFailed = "query_failed"
	SkipNoSample    = "no_sample"
)

type Metrics struct {
	DownRate         prometheus.Gauge
	UpRate           prometheus.Gauge
	DownTier         prometheus.Gauge
	TicksTotal       prometheus.Counter
	SamplesTotal     prometheus.Counter
	SkippedTicks     *prometheus.CounterVec
	InterfaceChanges prometheus.Counter
	QueryDuration    prometheus.Histogram
	ticksCount       atomic.Uint64
	samplesCount     atomic.Uint64
	skippedCount     atomic.Uint64
	changesCount     atomic.Uint64
	downRate         atomic.Uint64
	upRate           atomic.Uint64
	mu               sync.Mutex
	skippedByReason  map[string]uint64
}

func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DownRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "netflux_down_bytes_per_second",
			Help: "Inbound rate of the selected interface",
		}),
		UpRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "netflux_up_bytes_per_second",
			Help: "Outbound rate of the selected interface",
		}),
		DownTier: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "netflux_down_tier",
			Help: "Severity tier of the inbound rate (0 idle .. 3 peak)",
		}),
		TicksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "netflux_ticks_total",
			Help: "Total number of sampling ticks",
		}),
		SamplesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "netflux_samples_total",
			Help: "Total number of ticks that produced a rate sample",
		}),
		SkippedTicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "netflux_skipped_ticks_total",
			Help: "Ticks that produced no sample, by reason",
		}, []string{"reason"}),
		InterfaceChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "netflux_interface_changes_total",
			Help: "Number of times the selected interface changed",
		}),
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "netflux_interface_query_seconds",
			Help:    "Duration of the OS interface query",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5},
		}),
		skippedByReason: map[string]uint64{},
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.DownRate,
		m.UpRate,
		m.DownTier,
		m.TicksTotal,
		m.SamplesTotal,
		m.SkippedTicks,
		m.InterfaceChanges,
		m.QueryDuration,
	)
	return m
}

func (m *Metrics) IncTicks() {
	m.ticksCount.Add(1)
	m.TicksTotal.Inc()
}

func (m *Metrics) ObserveSample(down, up uint64) {
	m.samplesCount.Add(1)
	m.SamplesTotal.Inc()
	m.downRate.Store(down)
	m.upRate.Store(up)
	m.DownRate.Set(float64(down))
	m.UpRate.Set(float64(up))
	m.DownTier.Set(float64(format.Classify(down)))
}

func (m *Metrics) IncSkip(reason string) {
	if reason == "" {
		return
	}
	m.skippedCount.Add(1)
	m.SkippedTicks.WithLabelValues(reason).Inc()
	m.mu.Lock()
	m.skippedByReason[reason]++
	m.mu.Unlock()
}

func (m *Metrics) IncInterfaceChange() {
	m.changesCount.Add(1)
	m.InterfaceChanges.Inc()
}

func (m *Metrics) ObserveQuery(d time.Duration) {
	m.QueryDuration.Observe(d.Seconds())
}

type Snapshot struct {
	Ticks            uint64
	Samples          uint64
	Skipped          uint64
	SkippedByReason  map[string]uint64
	InterfaceChanges uint64
	DownBps          uint64
	UpBps            uint64
}

func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	reasons := make(map[string]uint64, len(m.skippedByReason))
	for k, v := range m.skippedByReason {
		reasons[k] = v
	}
	m.mu.Unlock()
	return Snapshot{
		Ticks:            m.ticksCount.Load(),
		Samples:          m.samplesCount.Load(),
		Skipped:          m.skippedCount.Load(),
		SkippedByReason:  reasons,
		InterfaceChanges: m.changesCount.Load(),
		DownBps:          m.downRate.Load(),
		UpBps:            m.upRate.Load(),
	}
}

func StartServer(ctx context.Context, cfg config.MetricsConfig, gatherer prometheus.Gatherer) error {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
