package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"netflux/internal/metrics"
	"netflux/internal/monitor"
	"netflux/internal/observability"
	"netflux/internal/render"
	"netflux/pkg/format"
	"netflux/pkg/view"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Monitor *monitor.Monitor
	Metrics *metrics.Metrics
	Alerts  *observability.Store[observability.Alert]
	Traces  *observability.Store[observability.Trace]
}

type rateView struct {
	Bps     uint64 `json:"bps"`
	Display string `json:"display"`
	Tier    string `json:"tier"`
	Color   string `json:"color"`
}

func newRateView(bps uint64) rateView {
	tier := format.Classify(bps)
	c := tier.Color()
	return rateView{
		Bps:     bps,
		Display: format.Full(bps),
		Tier:    tier.String(),
		Color:   hexColor(c.R, c.G, c.B),
	}
}

func (h *Handlers) GetState(c *gin.Context) {
	snap := h.Monitor.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"interface": snap.Interface,
		"mode":      snap.Mode.String(),
		"download":  newRateView(snap.DownBps),
		"upload":    newRateView(snap.UpBps),
		"icon":      format.Icon(snap.DownBps),
		"tooltip":   snap.Tooltip(),
		"updates":   snap.Updates,
	})
}

// GetHistory returns the rolling series. Large enough to be worth
// compressing, so it honors Accept-Encoding: br.
func (h *Handlers) GetHistory(c *gin.Context) {
	snap := h.Monitor.Snapshot()
	body := gin.H{
		"download": snap.DownHistory,
		"upload":   snap.UpHistory,
		"icon":     snap.IconHistory,
	}
	if !acceptsBrotli(c.GetHeader("Accept-Encoding")) {
		c.JSON(http.StatusOK, body)
		return
	}
	compressed, err := brotliJSON(body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "encode failed"})
		return
	}
	c.Header("Content-Encoding", "br")
	c.Header("Vary", "Accept-Encoding")
	c.Data(http.StatusOK, "application/json; charset=utf-8", compressed)
}

func (h *Handlers) GetTooltip(c *gin.Context) {
	c.String(http.StatusOK, h.Monitor.Snapshot().Tooltip())
}

func (h *Handlers) GetIcon(c *gin.Context) {
	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, render.Icon(h.Monitor.Snapshot())); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (h *Handlers) GetMode(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"mode": h.Monitor.Mode().String()})
}

func (h *Handlers) SetMode(c *gin.Context) {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	mode, err := view.ParseMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.Monitor.SetMode(mode)
	c.JSON(http.StatusOK, gin.H{"mode": mode.String()})
}

// GetLayout describes the panel for the current mode, or for ?mode= when
// given.
func (h *Handlers) GetLayout(c *gin.Context) {
	mode := h.Monitor.Mode()
	if q := strings.TrimSpace(c.Query("mode")); q != "" {
		parsed, err := view.ParseMode(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		mode = parsed
	}
	c.JSON(http.StatusOK, view.LayoutFor(mode))
}

func (h *Handlers) GetStats(c *gin.Context) {
	snapshot := h.Metrics.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":            "ok",
		"ticks_total":       snapshot.Ticks,
		"samples_total":     snapshot.Samples,
		"skipped_total":     snapshot.Skipped,
		"skipped_by_reason": snapshot.SkippedByReason,
		"interface_changes": snapshot.InterfaceChanges,
		"down_bps":          snapshot.DownBps,
		"up_bps":            snapshot.UpBps,
	})
}

func hexColor(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
