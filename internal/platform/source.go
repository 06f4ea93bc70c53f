package platform

import (
	"context"
	"fmt"
	"hash/fnv"

	"netflux/pkg/network"

	psnet "github.com/shirou/gopsutil/v3/net"
)

// Source queries the OS for per-interface status and counters.
type Source struct {
	listInterfaces func(ctx context.Context) (psnet.InterfaceStatList, error)
	listCounters   func(ctx context.Context, pernic bool) ([]psnet.IOCountersStat, error)
}

func NewSource() *Source {
	return &Source{
		listInterfaces: psnet.InterfacesWithContext,
		listCounters:   psnet.IOCountersWithContext,
	}
}

func (s *Source) Interfaces(ctx context.Context) ([]network.InterfaceSnapshot, error) {
	ifaces, err := s.listInterfaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("list interfaces: %w", err)
	}
	counters, err := s.listCounters(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("read interface counters: %w", err)
	}
	return join(ifaces, counters), nil
}

// join pairs interface metadata with counters by name. Interfaces the OS
// reports no counters for are left out.
func join(ifaces []psnet.InterfaceStat, counters []psnet.IOCountersStat) []network.InterfaceSnapshot {
	byName := make(map[string]psnet.IOCountersStat, len(counters))
	for _, c := range counters {
		byName[c.Name] = c
	}
	out := make([]network.InterfaceSnapshot, 0, len(ifaces))
	for _, iface := range ifaces {
		c, ok := byName[iface.Name]
		if !ok {
			continue
		}
		out = append(out, network.InterfaceSnapshot{
			ID:        identity(iface),
			Name:      iface.Name,
			InOctets:  c.BytesRecv,
			OutOctets: c.BytesSent,
			Status:    status(iface.Flags),
			Type:      linkType(iface),
		})
	}
	return out
}

func identity(iface psnet.InterfaceStat) uint64 {
	if iface.Index > 0 {
		return uint64(iface.Index)
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(iface.Name))
	return h.Sum64()
}

// status reports the operational state. "up" alone is only the admin state;
// a link without carrier is up but not running.
func status(flags []string) network.Status {
	if hasFlag(flags, "up") && hasFlag(flags, "running") {
		return network.StatusUp
	}
	return network.StatusDown
}

func linkType(iface psnet.InterfaceStat) network.LinkType {
	switch {
	case hasFlag(iface.Flags, "loopback"):
		return network.LinkLoopback
	case hasFlag(iface.Flags, "pointtopoint"):
		return network.LinkPointToPoint
	case iface.HardwareAddr != "":
		return network.LinkEthernet
	default:
		return network.LinkOther
	}
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if f == want {
			return true
		}
	}
	return false
}
