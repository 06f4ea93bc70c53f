package metrics

import (
	"fmt"

	"netflux/pkg/integrations/logs"

	"github.com/prometheus/client_golang/prometheus"
)

// RegisterLogShipper exposes a shipper's delivery counters, labelled by sink
// (loki, elastic). The counters are read from stats on every scrape.
func RegisterLogShipper(reg prometheus.Registerer, sink string, stats func() logs.Stats) error {
	labels := prometheus.Labels{"sink": sink}
	counters := []struct {
		name string
		help string
		read func(logs.Stats) uint64
	}{
		{"netflux_log_entries_shipped_total", "Log entries delivered to the sink", func(s logs.Stats) uint64 { return s.Sent }},
		{"netflux_log_entries_dropped_total", "Log entries dropped because the ship queue was full", func(s logs.Stats) uint64 { return s.Dropped }},
		{"netflux_log_entries_failed_total", "Log entries the sink rejected or never received", func(s logs.Stats) uint64 { return s.Failed }},
	}
	for _, c := range counters {
		read := c.read
		collector := prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name:        c.name,
			Help:        c.help,
			ConstLabels: labels,
		}, func() float64 { return float64(read(stats())) })
		if err := reg.Register(collector); err != nil {
			return fmt.Errorf("register %s for %s: %w", c.name, sink, err)
		}
	}
	return nil
}
