package format

import "testing"

func TestFull(t *testing.T) {
	tests := []struct {
		bps  uint64
		want string
	}{
		{0, "0 B/s"},
		{512, "512 B/s"},
		{1023, "1023 B/s"},
		{1024, "1.0 KB/s"},
		{1536, "1.5 KB/s"},
		{10 * KiB, "10.0 KB/s"},
		{1_572_864, "1.5 MB/s"},
		{MiB, "1.0 MB/s"},
		{MiB - 1, "1024.0 KB/s"},
		{GiB, "1.0 GB/s"},
		{3 * GiB / 2, "1.5 GB/s"},
		{1100 * GiB, "1100.0 GB/s"},
	}
	for _, tc := range tests {
		if got := Full(tc.bps); got != tc.want {
			t.Fatalf("Full(%d)=%q, want %q", tc.bps, got, tc.want)
		}
	}
}

func TestCompact(t *testing.T) {
	tests := []struct {
		bps         uint64
		value, unit string
	}{
		{0, "0", "B"},
		{999, "999", "B"},
		{1024, "1", "KB"},
		{1536, "2", "KB"},
		{2560, "2", "KB"},
		{300 * KiB, "300", "KB"},
		{MiB, "1.0", "MB"},
		{1_572_864, "1.5", "MB"},
		{25 * MiB, "25.0", "MB"},
		{2 * GiB, "2.0", "GB"},
	}
	for _, tc := range tests {
		v, u := Compact(tc.bps)
		if v != tc.value || u != tc.unit {
			t.Fatalf("Compact(%d)=(%q,%q), want (%q,%q)", tc.bps, v, u, tc.value, tc.unit)
		}
	}
}

func TestIcon(t *testing.T) {
	tests := []struct {
		bps  uint64
		want string
	}{
		{0, "0K"},
		{100 * KiB, "100K"},
		{MiB, "1.0M"},
		{1_572_864, "1.5M"},
		{10 * MiB, "10M"},
		{123 * MiB, "123M"},
	}
	for _, tc := range tests {
		if got := Icon(tc.bps); got != tc.want {
			t.Fatalf("Icon(%d)=%q, want %q", tc.bps, got, tc.want)
		}
	}
}

func TestTooltip(t *testing.T) {
	got := Tooltip(1536, 512)
	if got != "Down: 1.5 KB/s | Up: 512 B/s" {
		t.Fatalf("unexpected tooltip %q", got)
	}
}
