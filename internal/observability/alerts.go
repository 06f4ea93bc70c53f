package observability

import (
	"fmt"
	"time"

	"netflux/pkg/format"

	"github.com/google/uuid"
)

type AlertType string

const (
	AlertTierRise        AlertType = "tier_rise"
	AlertInterfaceChange AlertType = "interface_change"
	AlertError           AlertType = "error"
)

type Alert struct {
	ID        string    `json:"id"`
	Type      AlertType `json:"type"`
	Message   string    `json:"message"`
	Direction string    `json:"direction,omitempty"`
	Tier      string    `json:"tier,omitempty"`
	Value     uint64    `json:"value,omitempty"`
	Threshold uint64    `json:"threshold,omitempty"`
	Interface string    `json:"interface,omitempty"`
	Timestamp int64     `json:"timestamp"`
}

type AlertsConfig struct {
	// MinTier is the tier whose entry raises an alert.
	MinTier format.Tier
}

// EvaluateTier raises an alert when a rate crosses into cfg.MinTier or
// above. Staying at or above the tier does not alert again.
func EvaluateTier(direction string, prev, curr uint64, cfg AlertsConfig, now time.Time) []Alert {
	prevTier := format.Classify(prev)
	currTier := format.Classify(curr)
	if currTier < cfg.MinTier || prevTier >= cfg.MinTier {
		return nil
	}
	return []Alert{{
		ID:        newAlertID(),
		Type:      AlertTierRise,
		Message:   fmt.Sprintf("%s rate entered %s tier", direction, currTier),
		Direction: direction,
		Tier:      currTier.String(),
		Value:     curr,
		Threshold: tierFloor(cfg.MinTier),
		Timestamp: now.Unix(),
	}}
}

func InterfaceChanged(from, to string, now time.Time) Alert {
	return Alert{
		ID:        newAlertID(),
		Type:      AlertInterfaceChange,
		Message:   fmt.Sprintf("selected interface changed from %q to %q", from, to),
		Interface: to,
		Timestamp: now.Unix(),
	}
}

// AlertHook returns a logger hook that records error entries in store.
func AlertHook(store *Store[Alert]) func(map[string]any) {
	return func(entry map[string]any) {
		if entry["level"] != "error" {
			return
		}
		msg, _ := entry["msg"].(string)
		if detail, ok := entry["err"].(string); ok && detail != "" {
			msg = msg + ": " + detail
		}
		store.Add(Alert{
			ID:        newAlertID(),
			Type:      AlertError,
			Message:   msg,
			Timestamp: time.Now().Unix(),
		})
	}
}

func tierFloor(t format.Tier) uint64 {
	switch t {
	case format.TierLoad:
		return format.IdleBelow
	case format.TierActive:
		return format.LoadBelow
	case format.TierPeak:
		return format.ActiveBelow
	default:
		return 0
	}
}

func newAlertID() string {
	return uuid.NewString()
}
