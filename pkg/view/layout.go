package view

import (
	"math"

	"netflux/pkg/format"
)

type Direction int

const (
	Download Direction = iota
	Upload
)

func (d Direction) String() string {
	if d == Upload {
		return "upload"
	}
	return "download"
}

func (d Direction) Label() string {
	if d == Upload {
		return "↑ UPLOAD"
	}
	return "↓ DOWNLOAD"
}

const (
	PanelWidth      = 240
	panelFullHeight = 220
	panelHalfHeight = 110
	graphHeight     = 50
	labelX          = 16

	// PanelScaleFloor keeps quiet links from filling the graph with noise.
	PanelScaleFloor = format.MiB
)

type Section struct {
	Direction   Direction `json:"direction"`
	LabelX      int       `json:"label_x"`
	LabelY      int       `json:"label_y"`
	ValueY      int       `json:"value_y"`
	Baseline    int       `json:"baseline"`
	GraphHeight int       `json:"graph_height"`
}

type PanelLayout struct {
	Width    int       `json:"width"`
	Height   int       `json:"height"`
	Sections []Section `json:"sections"`
}

// LayoutFor maps a view mode to panel geometry. Sections are stacked top to
// bottom in the order they are drawn.
func LayoutFor(m Mode) PanelLayout {
	top := func(d Direction) Section {
		return Section{Direction: d, LabelX: labelX, LabelY: 12, ValueY: 30, Baseline: 100, GraphHeight: graphHeight}
	}
	switch m {
	case ModeDownloadOnly:
		return PanelLayout{Width: PanelWidth, Height: panelHalfHeight, Sections: []Section{top(Download)}}
	case ModeUploadOnly:
		return PanelLayout{Width: PanelWidth, Height: panelHalfHeight, Sections: []Section{top(Upload)}}
	default:
		return PanelLayout{
			Width:  PanelWidth,
			Height: panelFullHeight,
			Sections: []Section{
				top(Download),
				{Direction: Upload, LabelX: labelX, LabelY: 120, ValueY: 138, Baseline: 210, GraphHeight: graphHeight},
			},
		}
	}
}

func scaleBase(values []uint64, floor uint64) float64 {
	peak := floor
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}
	return float64(peak)
}

// Heights scales values into [0, height] against max(values, floor),
// truncating. Used for the panel area graphs.
func Heights(values []uint64, height int, floor uint64) []int {
	base := scaleBase(values, floor)
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = int(float64(v) / base * float64(height))
	}
	return out
}

// BarHeights is Heights rounded up, so any non-zero value shows at least
// one pixel. Used for the icon bar graph.
func BarHeights(values []uint64, height int, floor uint64) []int {
	base := scaleBase(values, floor)
	out := make([]int, len(values))
	for i, v := range values {
		h := int(math.Ceil(float64(v) / base * float64(height)))
		if h > height {
			h = height
		}
		out[i] = h
	}
	return out
}
