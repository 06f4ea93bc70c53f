package network

import "context"

type Status int

const (
	StatusDown Status = iota
	StatusUp
)

func (s Status) String() string {
	if s == StatusUp {
		return "up"
	}
	return "down"
}

type LinkType int

const (
	LinkOther LinkType = iota
	LinkEthernet
	LinkLoopback
	LinkPointToPoint
)

func (t LinkType) String() string {
	switch t {
	case LinkEthernet:
		return "ethernet"
	case LinkLoopback:
		return "loopback"
	case LinkPointToPoint:
		return "ptp"
	default:
		return "other"
	}
}

// InterfaceSnapshot is one adapter as reported by a single OS query.
// Counters are cumulative since the adapter came up.
type InterfaceSnapshot struct {
	ID        uint64
	Name      string
	InOctets  uint64
	OutOctets uint64
	Status    Status
	Type      LinkType
}

func (s InterfaceSnapshot) IsLoopback() bool {
	return s.Type == LinkLoopback
}

func (s InterfaceSnapshot) IsUp() bool {
	return s.Status == StatusUp
}

// TotalOctets saturates at the maximum uint64 instead of wrapping.
func (s InterfaceSnapshot) TotalOctets() uint64 {
	total := s.InOctets + s.OutOctets
	if total < s.InOctets {
		return ^uint64(0)
	}
	return total
}

type InterfaceSource interface {
	Interfaces(ctx context.Context) ([]InterfaceSnapshot, error)
}
