package rate

import (
	"math"
	"time"

	"netflux/pkg/network"
)

// Sample is a bytes-per-second reading for one tick.
type Sample struct {
	DownBps uint64 `json:"down_bps"`
	UpBps   uint64 `json:"up_bps"`
}

type observation struct {
	id        uint64
	inOctets  uint64
	outOctets uint64
	at        time.Time
}

// Sampler turns cumulative interface counters into rates. It tracks a single
// interface at a time; switching interfaces costs one tick without a sample.
// A Sampler is not safe for concurrent use.
type Sampler struct {
	last *observation
}

func NewSampler() *Sampler {
	return &Sampler{}
}

// Sample records the selected interface and returns the rate against the
// previous tick. It reports false on the first observation, after an
// interface change and when the clock did not advance.
func (s *Sampler) Sample(selected network.InterfaceSnapshot, now time.Time) (Sample, bool) {
	prev := s.last
	s.last = &observation{
		id:        selected.ID,
		inOctets:  selected.InOctets,
		outOctets: selected.OutOctets,
		at:        now,
	}

	if prev == nil || prev.id != selected.ID {
		return Sample{}, false
	}
	dt := now.Sub(prev.at).Seconds()
	if dt <= 0 {
		return Sample{}, false
	}

	return Sample{
		DownBps: perSecond(satSub(selected.InOctets, prev.inOctets), dt),
		UpBps:   perSecond(satSub(selected.OutOctets, prev.outOctets), dt),
	}, true
}

// Tracking reports the interface identity continuity is held for.
func (s *Sampler) Tracking() (uint64, bool) {
	if s.last == nil {
		return 0, false
	}
	return s.last.id, true
}

func satSub(cur, prev uint64) uint64 {
	if cur < prev {
		return 0
	}
	return cur - prev
}

func perSecond(delta uint64, dt float64) uint64 {
	v := math.Floor(float64(delta) / dt)
	if v >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(v)
}
