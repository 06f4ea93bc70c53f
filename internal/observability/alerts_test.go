package observability

import (
	"testing"
	"time"

	"netflux/pkg/format"
)

func TestEvaluateTierRaisesOnCrossing(t *testing.T) {
	cfg := AlertsConfig{MinTier: format.TierPeak}
	now := time.Unix(1700000000, 0)

	alerts := EvaluateTier("download", 10*format.MiB, 25*format.MiB, cfg, now)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	a := alerts[0]
	if a.Type != AlertTierRise || a.Tier != "peak" || a.Direction != "download" {
		t.Fatalf("unexpected alert %+v", a)
	}
	if a.Value != 25*format.MiB || a.Threshold != format.ActiveBelow {
		t.Fatalf("unexpected value/threshold %d/%d", a.Value, a.Threshold)
	}
	if a.Timestamp != now.Unix() || a.ID == "" {
		t.Fatalf("expected id and timestamp, got %+v", a)
	}
}

func TestEvaluateTierNoAlert(t *testing.T) {
	cfg := AlertsConfig{MinTier: format.TierActive}
	now := time.Now()
	tests := []struct {
		name       string
		prev, curr uint64
	}{
		{"stays below", 0, 200_000},
		{"stays above", 6 * format.MiB, 30 * format.MiB},
		{"falls", 30 * format.MiB, 0},
	}
	for _, tc := range tests {
		if alerts := EvaluateTier("upload", tc.prev, tc.curr, cfg, now); len(alerts) != 0 {
			t.Fatalf("%s: expected no alerts, got %+v", tc.name, alerts)
		}
	}
}

func TestInterfaceChanged(t *testing.T) {
	a := InterfaceChanged("eth0", "wlan0", time.Unix(5, 0))
	if a.Type != AlertInterfaceChange || a.Interface != "wlan0" || a.Timestamp != 5 {
		t.Fatalf("unexpected alert %+v", a)
	}
	b := InterfaceChanged("eth0", "wlan0", time.Unix(5, 0))
	if a.ID == b.ID {
		t.Fatalf("expected unique alert ids")
	}
}

func TestAlertStoreLimit(t *testing.T) {
	store := NewAlertStore(2)
	store.Add(Alert{ID: "a"})
	store.Add(Alert{ID: "b"})
	store.Add(Alert{ID: "c"})
	latest := store.List()
	if len(latest) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(latest))
	}
	if latest[0].ID != "b" || latest[1].ID != "c" {
		t.Fatalf("unexpected alerts order: %#v", latest)
	}
}

func TestAlertHookRecordsErrorsOnly(t *testing.T) {
	store := NewAlertStore(5)
	hook := AlertHook(store)

	hook(map[string]any{"level": "warn", "msg": "interface query failed"})
	hook(map[string]any{"level": "error", "msg": "api server error", "err": "address in use"})
	hook(map[string]any{"level": "error", "msg": "metrics server error"})

	list := store.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 alerts, got %+v", list)
	}
	if list[0].Type != AlertError || list[0].Message != "api server error: address in use" {
		t.Fatalf("unexpected alert %+v", list[0])
	}
	if list[1].Message != "metrics server error" || list[1].ID == "" {
		t.Fatalf("unexpected alert %+v", list[1])
	}
}
