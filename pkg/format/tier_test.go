package format

import "testing"

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		bps  uint64
		want Tier
	}{
		{0, TierIdle},
		{99_000, TierIdle},
		{99_999, TierIdle},
		{100_000, TierLoad},
		{5*1024*1024 - 1, TierLoad},
		{5 * 1024 * 1024, TierActive},
		{20*1024*1024 - 1, TierActive},
		{20 * 1024 * 1024, TierPeak},
		{^uint64(0), TierPeak},
	}
	for _, tc := range tests {
		if got := Classify(tc.bps); got != tc.want {
			t.Fatalf("Classify(%d)=%s, want %s", tc.bps, got, tc.want)
		}
	}
}

func TestTierColorsDistinct(t *testing.T) {
	seen := map[[4]uint8]Tier{}
	for _, tier := range []Tier{TierIdle, TierLoad, TierActive, TierPeak} {
		c := tier.Color()
		key := [4]uint8{c.R, c.G, c.B, c.A}
		if prev, ok := seen[key]; ok {
			t.Fatalf("tiers %s and %s share color %v", prev, tier, c)
		}
		seen[key] = tier
	}
	if Tier(42).Color() != TierIdle.Color() {
		t.Fatalf("expected unknown tier to fall back to idle color")
	}
}

func TestParseTier(t *testing.T) {
	for _, tier := range []Tier{TierIdle, TierLoad, TierActive, TierPeak} {
		got, err := ParseTier(tier.String())
		if err != nil {
			t.Fatalf("ParseTier(%q): %v", tier.String(), err)
		}
		if got != tier {
			t.Fatalf("ParseTier(%q)=%s", tier.String(), got)
		}
	}
	if _, err := ParseTier(" PEAK "); err != nil {
		t.Fatalf("expected case-insensitive parse, got %v", err)
	}
	if _, err := ParseTier("extreme"); err == nil {
		t.Fatalf("expected error for unknown tier")
	}
}
