package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())
	m.IncTicks()
	m.IncTicks()
	m.IncTicks()
	m.IncSkip(SkipNoSample)
	m.IncSkip(SkipNoInterface)
	m.IncSkip(SkipNoSample)
	m.IncSkip("")
	m.IncInterfaceChange()
	m.ObserveSample(30*1024*1024, 512)
	m.ObserveQuery(3 * time.Millisecond)

	s := m.Snapshot()
	if s.Ticks != 3 {
		t.Fatalf("expected ticks 3, got %d", s.Ticks)
	}
	if s.Samples != 1 {
		t.Fatalf("expected samples 1, got %d", s.Samples)
	}
	if s.Skipped != 3 {
		t.Fatalf("expected skipped 3, got %d", s.Skipped)
	}
	if s.SkippedByReason[SkipNoSample] != 2 || s.SkippedByReason[SkipNoInterface] != 1 {
		t.Fatalf("unexpected skip reasons %v", s.SkippedByReason)
	}
	if s.InterfaceChanges != 1 {
		t.Fatalf("expected interface changes 1, got %d", s.InterfaceChanges)
	}
	if s.DownBps != 30*1024*1024 || s.UpBps != 512 {
		t.Fatalf("unexpected rates %d/%d", s.DownBps, s.UpBps)
	}
	if got := testutil.ToFloat64(m.DownTier); got != 3 {
		t.Fatalf("expected peak tier gauge 3, got %v", got)
	}
	if got := testutil.ToFloat64(m.SkippedTicks.WithLabelValues(SkipNoSample)); got != 2 {
		t.Fatalf("expected no_sample counter 2, got %v", got)
	}
}

func TestSnapshotReasonsAreCopied(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())
	m.IncSkip(SkipQueryFailed)
	s := m.Snapshot()
	s.SkippedByReason[SkipQueryFailed] = 100
	if m.Snapshot().SkippedByReason[SkipQueryFailed] != 1 {
		t.Fatalf("expected snapshot map to be a copy")
	}
}
