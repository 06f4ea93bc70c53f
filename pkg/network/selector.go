package network

// Policy narrows the set of eligible interfaces before the busiest one is
// picked. The zero value applies no extra filtering.
type Policy struct {
	Ignore []string
}

func (p Policy) ignored(name string) bool {
	for _, n := range p.Ignore {
		if n == name {
			return true
		}
	}
	return false
}

// Select returns the up, non-loopback interface with the largest lifetime
// in+out octet total. Ties keep the first candidate in snaps order.
func Select(snaps []InterfaceSnapshot) (InterfaceSnapshot, bool) {
	return SelectWith(snaps, Policy{})
}

func SelectWith(snaps []InterfaceSnapshot, policy Policy) (InterfaceSnapshot, bool) {
	var best InterfaceSnapshot
	found := false
	for _, s := range snaps {
		if !s.IsUp() || s.IsLoopback() {
			continue
		}
		if policy.ignored(s.Name) {
			continue
		}
		if !found || s.TotalOctets() > best.TotalOctets() {
			best = s
			found = true
		}
	}
	return best, found
}
