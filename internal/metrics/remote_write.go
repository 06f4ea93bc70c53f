package metrics

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"netflux/internal/config"

	"github.com/golang/snappy"
	"github.com/prometheus/prometheus/prompb"
)

// StartRemoteWrite pushes a snapshot to cfg.RemoteWriteURL every interval
// until ctx is done. Failed pushes are reported to onError and not retried;
// the next interval sends a fresh snapshot.
func StartRemoteWrite(ctx context.Context, cfg config.MetricsExportConfig, token string, m *Metrics, onError func(error)) {
	if !cfg.Enabled || cfg.RemoteWriteURL == "" {
		return
	}
	interval := time.Duration(cfg.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 15 * time.Second
	}
	client := &http.Client{Timeout: 5 * time.Second}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				err := sendSnapshot(ctx, client, cfg.RemoteWriteURL, token, m.Snapshot())
				if err != nil && onError != nil {
					onError(err)
				}
			}
		}
	}()
}

func sendSnapshot(ctx context.Context, client *http.Client, url string, token string, snap Snapshot) error {
	now := time.Now().UnixMilli()
	series := []prompb.TimeSeries{
		newSeries("netflux_down_bytes_per_second", snap.DownBps, now),
		newSeries("netflux_up_bytes_per_second", snap.UpBps, now),
		newSeries("netflux_ticks_total", snap.Ticks, now),
		newSeries("netflux_samples_total", snap.Samples, now),
		newSeries("netflux_skipped_ticks_total", snap.Skipped, now),
		newSeries("netflux_interface_changes_total", snap.InterfaceChanges, now),
	}
	req := &prompb.WriteRequest{Timeseries: series}
	data, err := req.Marshal()
	if err != nil {
		return fmt.Errorf("marshal write request: %w", err)
	}
	compressed := snappy.Encode(nil, data)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(compressed))
	if err != nil {
		return fmt.Errorf("build write request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-protobuf")
	httpReq.Header.Set("Content-Encoding", "snappy")
	httpReq.Header.Set("X-Prometheus-Remote-Write-Version", "0.1.0")
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("remote write: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("remote write: unexpected status %s", resp.Status)
	}
	return nil
}

func newSeries(name string, value uint64, ts int64) prompb.TimeSeries {
	return prompb.TimeSeries{
		Labels:  []prompb.Label{{Name: "__name__", Value: name}, {Name: "job", Value: "netflux"}},
		Samples: []prompb.Sample{{Value: float64(value), Timestamp: ts}},
	}
}
