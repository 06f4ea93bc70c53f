package format

import (
	"fmt"
	"strconv"
)

const (
	KiB = 1024
	MiB = 1024 * KiB
	GiB = 1024 * MiB
)

// Full renders a rate with one decimal and a binary unit suffix, e.g.
// "512 B/s", "1.5 KB/s".
func Full(bps uint64) string {
	switch {
	case bps < KiB:
		return strconv.FormatUint(bps, 10) + " B/s"
	case bps < MiB:
		return fmt.Sprintf("%.1f KB/s", float64(bps)/KiB)
	case bps < GiB:
		return fmt.Sprintf("%.1f MB/s", float64(bps)/MiB)
	default:
		return fmt.Sprintf("%.1f GB/s", float64(bps)/GiB)
	}
}

// Compact splits a rate into value and unit for layouts that draw them in
// different font sizes. KB values are whole numbers; MB and GB keep one
// decimal.
func Compact(bps uint64) (string, string) {
	switch {
	case bps < KiB:
		return strconv.FormatUint(bps, 10), "B"
	case bps < MiB:
		return fmt.Sprintf("%.0f", float64(bps)/KiB), "KB"
	case bps < GiB:
		return fmt.Sprintf("%.1f", float64(bps)/MiB), "MB"
	default:
		return fmt.Sprintf("%.1f", float64(bps)/GiB), "GB"
	}
}

// Icon is the single-string label used on the smallest surface: whole KB
// below 1 MB/s, one decimal below 10 MB/s, whole MB above.
func Icon(bps uint64) string {
	if bps < MiB {
		return fmt.Sprintf("%.0fK", float64(bps)/KiB)
	}
	m := float64(bps) / MiB
	if m < 10 {
		return fmt.Sprintf("%.1fM", m)
	}
	return fmt.Sprintf("%.0fM", m)
}

func Tooltip(down, up uint64) string {
	return "Down: " + Full(down) + " | Up: " + Full(up)
}
