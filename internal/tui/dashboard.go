package tui

import (
	"context"
	"fmt"

	"netflux/pkg/format"
	"netflux/pkg/view"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
)

// Controller is the part of the monitor the dashboard drives.
type Controller interface {
	Snapshot() view.Snapshot
	SetMode(view.Mode)
}

// Dashboard is the terminal version of the detail panel: a header line and
// one sparkline per visible direction.
type Dashboard struct {
	ctrl      Controller
	header    *widgets.Paragraph
	down      *widgets.Sparkline
	up        *widgets.Sparkline
	downGroup *widgets.SparklineGroup
	upGroup   *widgets.SparklineGroup
	grid      *ui.Grid
	mode      view.Mode
	width     int
	height    int
}

func New(ctrl Controller) *Dashboard {
	header := widgets.NewParagraph()
	header.Title = " netflux "
	header.BorderStyle.Fg = ui.ColorCyan

	down := widgets.NewSparkline()
	down.LineColor = ui.ColorGreen
	downGroup := widgets.NewSparklineGroup(down)
	downGroup.BorderStyle.Fg = ui.ColorGreen

	up := widgets.NewSparkline()
	up.LineColor = ui.ColorMagenta
	upGroup := widgets.NewSparklineGroup(up)
	upGroup.BorderStyle.Fg = ui.ColorMagenta

	return &Dashboard{
		ctrl:      ctrl,
		header:    header,
		down:      down,
		up:        up,
		downGroup: downGroup,
		upGroup:   upGroup,
		grid:      ui.NewGrid(),
	}
}

// Run owns the terminal until ctx is done or the user quits. Keys: a, d, u
// switch the view mode; q or Ctrl-C quits.
func (d *Dashboard) Run(ctx context.Context, updates <-chan view.Snapshot) error {
	if err := ui.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer ui.Close()

	w, h := ui.TerminalDimensions()
	snap := d.ctrl.Snapshot()
	d.resize(w, h, snap.Mode)
	d.Update(snap)
	ui.Render(d.grid)

	events := ui.PollEvents()
	for {
		select {
		case <-ctx.Done():
			return nil
		case e := <-events:
			switch e.Type {
			case ui.KeyboardEvent:
				if e.ID == "q" || e.ID == "<C-c>" {
					return nil
				}
				if mode, ok := keyToMode(e.ID); ok {
					d.ctrl.SetMode(mode)
				}
			case ui.ResizeEvent:
				payload := e.Payload.(ui.Resize)
				d.resize(payload.Width, payload.Height, d.mode)
				d.Update(d.ctrl.Snapshot())
				ui.Clear()
				ui.Render(d.grid)
			}
		case snap := <-updates:
			if snap.Mode != d.mode {
				d.resize(d.width, d.height, snap.Mode)
				ui.Clear()
			}
			d.Update(snap)
			ui.Render(d.grid)
		}
	}
}

// Update copies a snapshot into the widgets without drawing.
func (d *Dashboard) Update(snap view.Snapshot) {
	d.header.Text = headerText(snap)

	points := d.width - 2
	height := graphHeight(snap.Mode)
	d.down.Data = tail(scaled(snap.DownHistory, height), points)
	d.down.MaxVal = float64(height)
	d.downGroup.Title = sectionTitle(view.Download, snap.DownBps, snap.DownPeak)

	d.up.Data = tail(scaled(snap.UpHistory, height), points)
	d.up.MaxVal = float64(height)
	d.upGroup.Title = sectionTitle(view.Upload, snap.UpBps, snap.UpPeak)
}

func (d *Dashboard) resize(w, h int, mode view.Mode) {
	d.width, d.height, d.mode = w, h, mode
	d.grid = ui.NewGrid()
	d.grid.SetRect(0, 0, w, h)

	sections := view.LayoutFor(mode).Sections
	share := 0.8 / float64(len(sections))
	rows := []interface{}{ui.NewRow(0.2, d.header)}
	for _, s := range sections {
		if s.Direction == view.Download {
			rows = append(rows, ui.NewRow(share, d.downGroup))
		} else {
			rows = append(rows, ui.NewRow(share, d.upGroup))
		}
	}
	d.grid.Set(rows...)
}

func keyToMode(id string) (view.Mode, bool) {
	switch id {
	case "a":
		return view.ModeAll, true
	case "d":
		return view.ModeDownloadOnly, true
	case "u":
		return view.ModeUploadOnly, true
	default:
		return view.ModeAll, false
	}
}

func headerText(snap view.Snapshot) string {
	iface := snap.Interface
	if iface == "" {
		iface = "waiting for an active interface"
	}
	return fmt.Sprintf("%s  [%s](fg:cyan)\n%s\n[a]ll  [d]ownload  [u]pload  [q]uit",
		iface, snap.Mode, snap.Tooltip())
}

func sectionTitle(dir view.Direction, current, peak uint64) string {
	return fmt.Sprintf(" %s  %s  (peak %s, %s) ",
		dir.Label(), format.Full(current), format.Full(peak), format.Classify(current))
}

// graphHeight is the panel graph height for mode. Every section of a layout
// shares it.
func graphHeight(mode view.Mode) int {
	return view.LayoutFor(mode).Sections[0].GraphHeight
}

// scaled maps a history onto the same 0..height scale the panel graphs use,
// so the terminal and the panel agree on what a full graph means.
func scaled(history []uint64, height int) []float64 {
	heights := view.Heights(history, height, view.PanelScaleFloor)
	out := make([]float64, len(heights))
	for i, h := range heights {
		out[i] = float64(h)
	}
	return out
}

func tail(values []float64, n int) []float64 {
	if n <= 0 || len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}
