package view

import (
	"netflux/pkg/format"
	"netflux/pkg/history"
)

// State is what the renderers draw from. It is mutated by the tick path
// (Update) and by user mode selection (SetMode) only.
type State struct {
	downBps   uint64
	upBps     uint64
	iface     string
	mode      Mode
	down      *history.Buffer
	up        *history.Buffer
	iconTrail *history.Buffer
	updates   uint64
}

func NewState(panelCapacity, iconCapacity int) *State {
	return &State{
		mode:      ModeAll,
		down:      history.New(panelCapacity),
		up:        history.New(panelCapacity),
		iconTrail: history.New(iconCapacity),
	}
}

func NewDefaultState() *State {
	return NewState(history.PanelCapacity, history.IconCapacity)
}

// Update records one successful tick. The interface name always follows
// the latest resolved interface.
func (s *State) Update(down, up uint64, iface string) {
	s.downBps = down
	s.upBps = up
	s.iface = iface
	s.down.Push(down)
	s.up.Push(up)
	s.iconTrail.Push(down)
	s.updates++
}

func (s *State) SetMode(m Mode) {
	s.mode = m
}

func (s *State) Mode() Mode {
	return s.mode
}

type Snapshot struct {
	DownBps     uint64      `json:"down_bps"`
	UpBps       uint64      `json:"up_bps"`
	Interface   string      `json:"interface"`
	Mode        Mode        `json:"-"`
	DownHistory []uint64    `json:"down_history"`
	UpHistory   []uint64    `json:"up_history"`
	IconHistory []uint64    `json:"icon_history"`
	DownPeak    uint64      `json:"down_peak"`
	UpPeak      uint64      `json:"up_peak"`
	DownTier    format.Tier `json:"-"`
	UpTier      format.Tier `json:"-"`
	Updates     uint64      `json:"updates"`
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{
		DownBps:     s.downBps,
		UpBps:       s.upBps,
		Interface:   s.iface,
		Mode:        s.mode,
		DownHistory: s.down.Snapshot(),
		UpHistory:   s.up.Snapshot(),
		IconHistory: s.iconTrail.Snapshot(),
		DownPeak:    s.down.Max(),
		UpPeak:      s.up.Max(),
		DownTier:    format.Classify(s.downBps),
		UpTier:      format.Classify(s.upBps),
		Updates:     s.updates,
	}
}

func (s Snapshot) Tooltip() string {
	return format.Tooltip(s.DownBps, s.UpBps)
}
