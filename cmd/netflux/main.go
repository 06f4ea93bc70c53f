package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"netflux/api"
	"netflux/internal/config"
	"netflux/internal/logger"
	"netflux/internal/metrics"
	"netflux/internal/monitor"
	"netflux/internal/observability"
	"netflux/internal/platform"
	"netflux/internal/tui"
	"netflux/pkg/integrations/logs"
	"netflux/pkg/network"
	"netflux/pkg/view"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	headless := flag.Bool("headless", false, "run without the terminal dashboard")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		panic(err)
	}
	if *headless {
		cfg.UI.Enabled = false
	}

	log, closer, err := buildLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer closer.Close()
	defer func() { _ = log.Sync() }()
	log.Info("config loaded", map[string]any{"path": *configPath})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metricsSrv := metrics.NewWithRegistry(reg)
	if cfg.Metrics.Enabled {
		go func() {
			if err := metrics.StartServer(ctx, cfg.Metrics, reg); err != nil {
				log.Error("metrics server error", map[string]any{"err": err.Error()})
			}
		}()
	}

	if cfg.MetricsExport.Enabled {
		token, err := cfg.MetricsExport.Token()
		if err != nil {
			log.Warn("remote write token unavailable", map[string]any{"err": err.Error()})
		}
		metrics.StartRemoteWrite(ctx, cfg.MetricsExport, token, metricsSrv, func(err error) {
			log.Warn("remote write failed", map[string]any{"err": err.Error()})
		})
	}

	alerts := observability.NewAlertStore(cfg.Observability.AlertsLimit)
	traces := observability.NewTraceStore(cfg.Observability.TracesLimit)
	log.AddHook(observability.AlertHook(alerts))
	startLogShipping(ctx, cfg.Logging, log, reg)

	mon := buildMonitor(cfg, platform.NewSource(), metricsSrv, alerts, log)

	if cfg.API.Enabled {
		gin.SetMode(gin.ReleaseMode)
		handlers := &api.Handlers{
			Monitor: mon,
			Metrics: metricsSrv,
			Alerts:  alerts,
			Traces:  traces,
		}
		router := api.NewRouter(cfg.API, handlers, log)
		go func() {
			if err := api.StartServer(ctx, cfg.API, router); err != nil {
				log.Error("api server error", map[string]any{"err": err.Error()})
			}
		}()
		log.Info("api listening", map[string]any{"address": cfg.API.Address})
	}

	interval := time.Duration(cfg.Sampler.IntervalMs) * time.Millisecond
	if !cfg.UI.Enabled {
		mon.Run(ctx, interval)
		log.Info("shutdown", nil)
		return
	}

	updates := subscribeUpdates(mon)
	go mon.Run(ctx, interval)
	if err := tui.New(mon).Run(ctx, updates); err != nil {
		log.Error("dashboard error", map[string]any{"err": err.Error()})
	}
	stop()
	log.Info("shutdown", nil)
}

// buildLogger keeps log output off the terminal while the dashboard owns it.
func buildLogger(cfg *config.Config) (*logger.Logger, io.Closer, error) {
	if cfg.Logging.File != "" {
		return logger.NewFile(cfg.Logging.Level, cfg.Logging.File)
	}
	if cfg.UI.Enabled {
		return logger.NewWithWriter(cfg.Logging.Level, io.Discard), io.NopCloser(nil), nil
	}
	return logger.New(cfg.Logging.Level), io.NopCloser(nil), nil
}

func startLogShipping(ctx context.Context, cfg config.LoggingConfig, log *logger.Logger, reg prometheus.Registerer) map[string]*logs.Shipper {
	shippers := make(map[string]*logs.Shipper)
	if cfg.LokiURL != "" {
		shippers["loki"] = logs.NewLoki(cfg.LokiURL, "netflux", cfg.ShipLevel)
	}
	if cfg.ElasticURL != "" {
		shippers["elastic"] = logs.NewElastic(cfg.ElasticURL, cfg.ShipLevel)
	}
	for sink, s := range shippers {
		if err := metrics.RegisterLogShipper(reg, sink, s.Stats); err != nil {
			log.Warn("log shipper metrics unavailable", map[string]any{"sink": sink, "err": err.Error()})
		}
		log.AddHook(s.Hook())
		go s.Run(ctx)
	}
	return shippers
}

func buildMonitor(
	cfg *config.Config,
	source network.InterfaceSource,
	metricsSrv *metrics.Metrics,
	alerts *observability.Store[observability.Alert],
	log *logger.Logger,
) *monitor.Monitor {
	state := view.NewState(cfg.History.PanelCapacity, cfg.History.IconCapacity)
	state.SetMode(cfg.InitialMode())
	return monitor.New(monitor.Options{
		Source:       source,
		Policy:       network.Policy{Ignore: cfg.Sampler.Ignore},
		QueryTimeout: time.Duration(cfg.Sampler.QueryTimeoutMs) * time.Millisecond,
		State:        state,
		Metrics:      metricsSrv,
		Alerts:       alerts,
		AlertsConfig: observability.AlertsConfig{MinTier: cfg.AlertTier()},
		Logger:       log,
	})
}

// subscribeUpdates hands snapshots to the dashboard. Only the latest matters,
// so a pending one is replaced rather than queued.
func subscribeUpdates(mon *monitor.Monitor) <-chan view.Snapshot {
	ch := make(chan view.Snapshot, 1)
	mon.Subscribe(func(snap view.Snapshot) {
		for {
			select {
			case ch <- snap:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	})
	return ch
}
