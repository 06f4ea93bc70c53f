package monitor

import (
	"context"
	"io"
	"sync"
	"time"

	"netflux/internal/logger"
	"netflux/internal/metrics"
	"netflux/internal/observability"
	"netflux/pkg/network"
	"netflux/pkg/rate"
	"netflux/pkg/view"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
)

type Options struct {
	Source       network.InterfaceSource
	Policy       network.Policy
	QueryTimeout time.Duration
	Clock        clock.Clock
	State        *view.State
	Metrics      *metrics.Metrics
	Alerts       *observability.Store[observability.Alert]
	AlertsConfig observability.AlertsConfig
	Logger       *logger.Logger
}

// Monitor runs the tick pipeline: query, select, sample, update. It owns the
// view state; readers get copies through Snapshot.
type Monitor struct {
	source       network.InterfaceSource
	policy       network.Policy
	queryTimeout time.Duration
	clock        clock.Clock
	sampler      *rate.Sampler
	metrics      *metrics.Metrics
	alerts       *observability.Store[observability.Alert]
	alertsCfg    observability.AlertsConfig
	log          *logger.Logger

	mu       sync.RWMutex
	state    *view.State
	last     rate.Sample
	lastName string

	subMu       sync.Mutex
	subscribers []func(view.Snapshot)
}

// TickResult describes what one tick did. Skipped is empty when the tick
// produced a sample.
type TickResult struct {
	Sample    rate.Sample
	Interface string
	Skipped   string
}

func New(opts Options) *Monitor {
	m := &Monitor{
		source:       opts.Source,
		policy:       opts.Policy,
		queryTimeout: opts.QueryTimeout,
		clock:        opts.Clock,
		sampler:      rate.NewSampler(),
		metrics:      opts.Metrics,
		alerts:       opts.Alerts,
		alertsCfg:    opts.AlertsConfig,
		log:          opts.Logger,
		state:        opts.State,
	}
	if m.clock == nil {
		m.clock = clock.New()
	}
	if m.state == nil {
		m.state = view.NewDefaultState()
	}
	if m.metrics == nil {
		m.metrics = metrics.NewWithRegistry(prometheus.NewRegistry())
	}
	if m.log == nil {
		m.log = logger.NewWithWriter("error", io.Discard)
	}
	return m
}

// Subscribe registers fn to receive a snapshot after every state change.
// fn runs on the tick goroutine and must not block.
func (m *Monitor) Subscribe(fn func(view.Snapshot)) {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

// Run ticks every interval until ctx is done. Ticks never overlap; a slow
// tick delays the next one.
func (m *Monitor) Run(ctx context.Context, interval time.Duration) {
	ticker := m.clock.Ticker(interval)
	defer ticker.Stop()
	m.log.Info("sampler started", map[string]any{"interval": interval.String()})
	for {
		select {
		case <-ctx.Done():
			m.log.Info("sampler stopped", nil)
			return
		case <-ticker.C:
			m.Tick(ctx)
		}
	}
}

func (m *Monitor) Tick(ctx context.Context) TickResult {
	m.metrics.IncTicks()

	qctx := ctx
	if m.queryTimeout > 0 {
		var cancel context.CancelFunc
		qctx, cancel = context.WithTimeout(ctx, m.queryTimeout)
		defer cancel()
	}
	start := m.clock.Now()
	snaps, err := m.source.Interfaces(qctx)
	m.metrics.ObserveQuery(m.clock.Since(start))
	if err != nil {
		m.metrics.IncSkip(metrics.SkipQueryFailed)
		m.log.Warn("interface query failed", map[string]any{"err": err.Error()})
		return TickResult{Skipped: metrics.SkipQueryFailed}
	}

	selected, ok := network.SelectWith(snaps, m.policy)
	if !ok {
		m.metrics.IncSkip(metrics.SkipNoInterface)
		m.log.Debug("no eligible interface", map[string]any{"candidates": len(snaps)})
		return TickResult{Skipped: metrics.SkipNoInterface}
	}

	now := m.clock.Now()
	if prevID, tracking := m.sampler.Tracking(); tracking && prevID != selected.ID {
		m.metrics.IncInterfaceChange()
		m.log.Info("selected interface changed", map[string]any{"from": m.lastName, "to": selected.Name})
		if m.alerts != nil {
			m.alerts.Add(observability.InterfaceChanged(m.lastName, selected.Name, now))
		}
	}
	m.lastName = selected.Name

	sample, ok := m.sampler.Sample(selected, now)
	if !ok {
		m.metrics.IncSkip(metrics.SkipNoSample)
		m.log.Debug("tick produced no sample", map[string]any{"interface": selected.Name})
		return TickResult{Interface: selected.Name, Skipped: metrics.SkipNoSample}
	}

	m.mu.Lock()
	prev := m.last
	m.last = sample
	m.state.Update(sample.DownBps, sample.UpBps, selected.Name)
	snap := m.state.Snapshot()
	m.mu.Unlock()

	m.metrics.ObserveSample(sample.DownBps, sample.UpBps)
	m.raiseTierAlerts(prev, sample, now)
	m.publish(snap)

	return TickResult{Sample: sample, Interface: selected.Name}
}

func (m *Monitor) raiseTierAlerts(prev, curr rate.Sample, now time.Time) {
	if m.alerts == nil {
		return
	}
	found := observability.EvaluateTier(view.Download.String(), prev.DownBps, curr.DownBps, m.alertsCfg, now)
	found = append(found, observability.EvaluateTier(view.Upload.String(), prev.UpBps, curr.UpBps, m.alertsCfg, now)...)
	for _, a := range found {
		m.alerts.Add(a)
		m.log.Info("rate tier alert", map[string]any{"direction": a.Direction, "tier": a.Tier, "bps": a.Value})
	}
}

func (m *Monitor) Snapshot() view.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Snapshot()
}

func (m *Monitor) SetMode(mode view.Mode) {
	m.mu.Lock()
	m.state.SetMode(mode)
	snap := m.state.Snapshot()
	m.mu.Unlock()
	m.log.Info("view mode changed", map[string]any{"mode": mode.String()})
	m.publish(snap)
}

func (m *Monitor) Mode() view.Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Mode()
}

func (m *Monitor) Metrics() *metrics.Metrics {
	return m.metrics
}

func (m *Monitor) publish(snap view.Snapshot) {
	m.subMu.Lock()
	subs := append([]func(view.Snapshot){}, m.subscribers...)
	m.subMu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}
