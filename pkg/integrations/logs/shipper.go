package logs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap/zapcore"
)

const queueSize = 256

// Shipper forwards log entries to a remote collector. Hook never blocks the
// caller; entries that arrive while the queue is full are dropped and
// counted.
type Shipper struct {
	url      string
	client   *http.Client
	encode   func(entry map[string]any) ([]byte, error)
	minLevel zapcore.Level
	queue    chan map[string]any
	sent     atomic.Uint64
	dropped  atomic.Uint64
	failed   atomic.Uint64
}

// NewLoki pushes each entry as a single-line stream labelled app=<app>.
func NewLoki(url, app, minLevel string) *Shipper {
	return newShipper(url, minLevel, func(entry map[string]any) ([]byte, error) {
		line, err := json.Marshal(entry)
		if err != nil {
			return nil, err
		}
		return json.Marshal(map[string]any{
			"streams": []any{
				map[string]any{
					"stream": map[string]string{"app": app, "level": levelOf(entry)},
					"values": [][]string{
						{fmt.Sprintf("%d", time.Now().UnixNano()), string(line)},
					},
				},
			},
		})
	})
}

// NewElastic posts each entry as one JSON document.
func NewElastic(url, minLevel string) *Shipper {
	return newShipper(url, minLevel, func(entry map[string]any) ([]byte, error) {
		return json.Marshal(entry)
	})
}

func newShipper(url, minLevel string, encode func(map[string]any) ([]byte, error)) *Shipper {
	return &Shipper{
		url:      url,
		client:   &http.Client{Timeout: 3 * time.Second},
		encode:   encode,
		minLevel: parseLevel(minLevel),
		queue:    make(chan map[string]any, queueSize),
	}
}

func (s *Shipper) Hook() func(map[string]any) {
	return func(entry map[string]any) {
		if parseLevel(levelOf(entry)) < s.minLevel {
			return
		}
		copied := make(map[string]any, len(entry))
		for k, v := range entry {
			copied[k] = v
		}
		select {
		case s.queue <- copied:
		default:
			s.dropped.Add(1)
		}
	}
}

// Run delivers queued entries until ctx is done.
func (s *Shipper) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry := <-s.queue:
			if err := s.send(ctx, entry); err != nil {
				s.failed.Add(1)
				continue
			}
			s.sent.Add(1)
		}
	}
}

func (s *Shipper) send(ctx context.Context, entry map[string]any) error {
	body, err := s.encode(entry)
	if err != nil {
		return fmt.Errorf("encode log entry: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build log request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("ship log entry: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("ship log entry: status %d", resp.StatusCode)
	}
	return nil
}

type Stats struct {
	Sent    uint64 `json:"sent"`
	Dropped uint64 `json:"dropped"`
	Failed  uint64 `json:"failed"`
}

func (s *Shipper) Stats() Stats {
	return Stats{
		Sent:    s.sent.Load(),
		Dropped: s.dropped.Load(),
		Failed:  s.failed.Load(),
	}
}

func levelOf(entry map[string]any) string {
	level, _ := entry["level"].(string)
	return level
}

// parseLevel accepts level names in any case. Unknown names are info.
func parseLevel(level string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
