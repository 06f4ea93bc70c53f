package format

import (
	"fmt"
	"image/color"
	"strings"
)

type Tier int

const (
	TierIdle Tier = iota
	TierLoad
	TierActive
	TierPeak
)

// Upper bounds (exclusive) of each tier in bytes/sec.
const (
	IdleBelow   = 100_000
	LoadBelow   = 5 * MiB
	ActiveBelow = 20 * MiB
)

func Classify(bps uint64) Tier {
	switch {
	case bps < IdleBelow:
		return TierIdle
	case bps < LoadBelow:
		return TierLoad
	case bps < ActiveBelow:
		return TierActive
	default:
		return TierPeak
	}
}

func (t Tier) String() string {
	switch t {
	case TierIdle:
		return "idle"
	case TierLoad:
		return "load"
	case TierActive:
		return "active"
	case TierPeak:
		return "peak"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "idle":
		return TierIdle, nil
	case "load":
		return TierLoad, nil
	case "active":
		return TierActive, nil
	case "peak":
		return TierPeak, nil
	default:
		return TierIdle, fmt.Errorf("unknown tier %q", s)
	}
}

var tierColors = [...]color.RGBA{
	TierIdle:   {R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff},
	TierLoad:   {R: 0x4a, G: 0xde, B: 0x80, A: 0xff},
	TierActive: {R: 0xea, G: 0xb3, B: 0x08, A: 0xff},
	TierPeak:   {R: 0xef, G: 0x44, B: 0x44, A: 0xff},
}

// Color is the presentation color renderers use for the tier's label.
func (t Tier) Color() color.RGBA {
	if t < TierIdle || t > TierPeak {
		return tierColors[TierIdle]
	}
	return tierColors[t]
}
